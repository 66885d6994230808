package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/abarbosa/mail-triage/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range t.Messages {
		obj := map[string]interface{}{
			"id":   msg.ID,
			"role": msg.Role,
		}
		if msg.Text != "" {
			obj["text"] = msg.Text
		}
		if msg.Attachment != nil {
			obj["attachment"] = msg.Attachment
		}
		if msg.Result != nil {
			obj["result"] = msg.Result
		}
		if msg.Provider != "" {
			obj["provider"] = msg.Provider
		}
		if !msg.CreatedAt.IsZero() {
			obj["createdAt"] = msg.CreatedAt.Format(time.RFC3339)
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
