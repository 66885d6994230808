package internal

import (
	"sort"
	"strings"
	"time"
)

// Role identifies who authored a message in the conversation log
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Category is the classification assigned to an email
type Category string

const (
	CategoryProductive   Category = "Productive"
	CategoryUnproductive Category = "Unproductive"
)

// Wire values used by the classification API for categories
const (
	wireCategoryProductive   = "Produtivo"
	wireCategoryUnproductive = "Improdutivo"
)

// CategoryFromWire maps an API category value to a Category.
// Unknown values map to CategoryUnproductive.
func CategoryFromWire(s string) Category {
	if strings.EqualFold(strings.TrimSpace(s), wireCategoryProductive) {
		return CategoryProductive
	}
	return CategoryUnproductive
}

// Attachment describes a file-based submission
type Attachment struct {
	Name      string `json:"name" yaml:"name"`
	SizeBytes int64  `json:"sizeBytes" yaml:"size_bytes"`
}

// Outcome is the result of one classification
type Outcome struct {
	Category       Category `json:"category" yaml:"category"`
	Confidence     float64  `json:"confidence" yaml:"confidence"`
	SuggestedReply string   `json:"suggestedReply" yaml:"suggested_reply"`
	Subject        string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Sender         string   `json:"sender,omitempty" yaml:"sender,omitempty"`
	Recipient      string   `json:"recipient,omitempty" yaml:"recipient,omitempty"`
	ModelUsed      string   `json:"modelUsed,omitempty" yaml:"model_used,omitempty"`
}

// HighConfidence reports whether the classification cleared the 80% bar
func (o *Outcome) HighConfidence() bool {
	return o.Confidence >= 0.8
}

// ConfidencePercent returns the confidence as a 0-100 value
func (o *Outcome) ConfidencePercent() float64 {
	return o.Confidence * 100
}

// FileOutcome is an Outcome plus the server-reported file name
type FileOutcome struct {
	Outcome
	FileName string `json:"fileName"`
}

// Message is one entry in the conversation log
type Message struct {
	ID         string      `json:"id" yaml:"id"`
	Role       Role        `json:"role" yaml:"role"`
	Text       string      `json:"text,omitempty" yaml:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty" yaml:"attachment,omitempty"`
	Result     *Outcome    `json:"result,omitempty" yaml:"result,omitempty"`
	Provider   string      `json:"provider,omitempty" yaml:"provider,omitempty"`
	CreatedAt  time.Time   `json:"createdAt" yaml:"created_at"`
	Pending    bool        `json:"pending" yaml:"pending"`
	SourceText string      `json:"sourceText,omitempty" yaml:"source_text,omitempty"`
}

// PreviewSubject derives a subject line for display from the retained
// source text, falling back to the attachment name.
func (m *Message) PreviewSubject() string {
	for _, line := range strings.Split(m.SourceText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 72 {
			return line[:69] + "..."
		}
		return line
	}
	if m.Attachment != nil {
		return m.Attachment.Name
	}
	return ""
}

// ProviderStatus describes one AI backend as reported by the API
type ProviderStatus struct {
	Available bool   `json:"available"`
	Model     string `json:"model"`
}

// ProvidersInfo is the provider-list response
type ProvidersInfo struct {
	Default   string                    `json:"default"`
	Providers map[string]ProviderStatus `json:"providers"`
}

// Names returns the provider identifiers in sorted order
func (p *ProvidersInfo) Names() []string {
	names := make([]string, 0, len(p.Providers))
	for name := range p.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// classifyRequest is the JSON body for text classification
type classifyRequest struct {
	Conteudo string `json:"conteudo"`
	Provider string `json:"provider,omitempty"`
}

// outcomePayload mirrors the API's classification response fields
type outcomePayload struct {
	Categoria        string  `json:"categoria"`
	Confianca        float64 `json:"confianca"`
	RespostaSugerida string  `json:"resposta_sugerida"`
	Assunto          string  `json:"assunto,omitempty"`
	Remetente        string  `json:"remetente,omitempty"`
	Destinatario     string  `json:"destinatario,omitempty"`
	ModeloUsado      string  `json:"modelo_usado,omitempty"`
	NomeArquivo      string  `json:"nome_arquivo,omitempty"`
}

// toOutcome converts a wire payload into an Outcome, clamping
// confidence into [0,1]
func (p *outcomePayload) toOutcome() *Outcome {
	conf := p.Confianca
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return &Outcome{
		Category:       CategoryFromWire(p.Categoria),
		Confidence:     conf,
		SuggestedReply: p.RespostaSugerida,
		Subject:        p.Assunto,
		Sender:         p.Remetente,
		Recipient:      p.Destinatario,
		ModelUsed:      p.ModeloUsado,
	}
}

// ErrorReplyPrefix marks a synthetic outcome written in place of a
// failed classification
const ErrorReplyPrefix = "classification failed: "

// SyntheticErrorOutcome builds the outcome recorded when a submission
// fails. Confidence is always zero and the reply carries the detail.
func SyntheticErrorOutcome(detail string) *Outcome {
	if strings.TrimSpace(detail) == "" {
		detail = "unexpected error"
	}
	return &Outcome{
		Category:       CategoryUnproductive,
		Confidence:     0,
		SuggestedReply: ErrorReplyPrefix + detail,
	}
}

// IsErrorOutcome reports whether an outcome is a synthetic failure record
func IsErrorOutcome(o *Outcome) bool {
	return o != nil && strings.HasPrefix(o.SuggestedReply, ErrorReplyPrefix)
}

// timestampLayout keeps millisecond precision across persist round-trips
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// persistedMessage is the stored shape of a Message; createdAt travels
// as an RFC3339 string and is rehydrated on load
type persistedMessage struct {
	ID         string      `json:"id"`
	Role       string      `json:"role"`
	Text       string      `json:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Result     *Outcome    `json:"result,omitempty"`
	Provider   string      `json:"provider,omitempty"`
	CreatedAt  string      `json:"createdAt"`
	Pending    bool        `json:"pending"`
	SourceText string      `json:"sourceText,omitempty"`
}

func toPersisted(m Message) persistedMessage {
	return persistedMessage{
		ID:         m.ID,
		Role:       string(m.Role),
		Text:       m.Text,
		Attachment: m.Attachment,
		Result:     m.Result,
		Provider:   m.Provider,
		CreatedAt:  m.CreatedAt.Format(timestampLayout),
		Pending:    m.Pending,
		SourceText: m.SourceText,
	}
}

func fromPersisted(p persistedMessage) Message {
	created, err := time.Parse(timestampLayout, p.CreatedAt)
	if err != nil {
		// Older records may carry plain RFC3339
		created, _ = time.Parse(time.RFC3339, p.CreatedAt)
	}
	return Message{
		ID:         p.ID,
		Role:       Role(p.Role),
		Text:       p.Text,
		Attachment: p.Attachment,
		Result:     p.Result,
		Provider:   p.Provider,
		CreatedAt:  created,
		Pending:    p.Pending,
		SourceText: p.SourceText,
	}
}
