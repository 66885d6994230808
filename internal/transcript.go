package internal

import "time"

// Transcript is an exportable snapshot of the conversation log
type Transcript struct {
	ExportedAt time.Time `json:"exportedAt" yaml:"exported_at"`
	Provider   string    `json:"provider,omitempty" yaml:"provider,omitempty"`
	APIBaseURL string    `json:"apiBaseUrl,omitempty" yaml:"api_base_url,omitempty"`
	Messages   []Message `json:"messages" yaml:"messages"`
}

// NewTranscript snapshots the given log for export
func NewTranscript(messages []Message, provider, apiBaseURL string) *Transcript {
	return &Transcript{
		ExportedAt: time.Now(),
		Provider:   provider,
		APIBaseURL: apiBaseURL,
		Messages:   messages,
	}
}

// Resolved returns the number of messages carrying a result
func (t *Transcript) Resolved() int {
	count := 0
	for _, m := range t.Messages {
		if m.Result != nil {
			count++
		}
	}
	return count
}
