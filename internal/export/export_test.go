package export

import (
	"time"

	"github.com/abarbosa/mail-triage/internal"
)

// sampleTranscript builds a resolved user/assistant exchange plus one
// failed classification
func sampleTranscript() *internal.Transcript {
	created := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	messages := []internal.Message{
		{
			ID:        "msg-1-100",
			Role:      internal.RoleUser,
			Text:      "Qual o status do pedido #42?",
			CreatedAt: created,
		},
		{
			ID:       "msg-2-100",
			Role:     internal.RoleAssistant,
			Provider: "openai",
			Result: &internal.Outcome{
				Category:       internal.CategoryProductive,
				Confidence:     0.95,
				SuggestedReply: "Prezado(a), seu pedido está em separação.",
				ModelUsed:      "gpt-4o-mini",
			},
			CreatedAt:  created,
			SourceText: "Qual o status do pedido #42?",
		},
		{
			ID:         "msg-3-200",
			Role:       internal.RoleUser,
			Attachment: &internal.Attachment{Name: "fatura.pdf", SizeBytes: 2048},
			CreatedAt:  created.Add(time.Minute),
		},
		{
			ID:        "msg-4-200",
			Role:      internal.RoleAssistant,
			Provider:  "openai",
			Result:    internal.SyntheticErrorOutcome("connection refused"),
			CreatedAt: created.Add(time.Minute),
		},
	}
	t := internal.NewTranscript(messages, "openai", "http://localhost:8000/api/v1")
	t.ExportedAt = created.Add(2 * time.Minute)
	return t
}
