package internal

import (
	"testing"
)

func TestNewTranscript(t *testing.T) {
	messages := []Message{
		CreateTestMessage("msg-1-1", RoleUser, "hi"),
		{ID: "msg-2-1", Role: RoleAssistant, Result: CreateTestOutcome(0.9)},
	}

	transcript := NewTranscript(messages, "gemini", "http://localhost:8000/api/v1")

	if len(transcript.Messages) != 2 {
		t.Errorf("Messages = %d, want 2", len(transcript.Messages))
	}
	if transcript.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", transcript.Provider)
	}
	if transcript.ExportedAt.IsZero() {
		t.Error("ExportedAt not set")
	}
}

func TestTranscriptResolved(t *testing.T) {
	transcript := NewTranscript([]Message{
		{ID: "a", Role: RoleUser, Text: "one"},
		{ID: "b", Role: RoleAssistant, Result: CreateTestOutcome(0.9)},
		{ID: "c", Role: RoleAssistant, Pending: true},
	}, "", "")

	if got := transcript.Resolved(); got != 1 {
		t.Errorf("Resolved() = %d, want 1", got)
	}
}
