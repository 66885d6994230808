package internal

import (
	"context"
	"io"
	"time"
)

// CreateTestMessage creates a resolved user/assistant pair for tests
func CreateTestMessage(id string, role Role, text string) Message {
	return Message{
		ID:        id,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// CreateTestOutcome creates a productive classification outcome
func CreateTestOutcome(confidence float64) *Outcome {
	return &Outcome{
		Category:       CategoryProductive,
		Confidence:     confidence,
		SuggestedReply: "Prezado(a), recebemos sua solicitação e estamos analisando.",
		ModelUsed:      "gpt-4o-mini",
	}
}

// CreateTestProvidersInfo creates a provider list with both backends available
func CreateTestProvidersInfo(defaultProvider string) *ProvidersInfo {
	return &ProvidersInfo{
		Default: defaultProvider,
		Providers: map[string]ProviderStatus{
			"openai": {Available: true, Model: "gpt-4o-mini"},
			"gemini": {Available: true, Model: "gemini-2.0-flash"},
		},
	}
}

// StubClassifier is a canned Classifier for Controller tests. Each
// field overrides one operation; nil fields return benign defaults.
type StubClassifier struct {
	ProvidersFn    func(ctx context.Context) (*ProvidersInfo, error)
	ClassifyTextFn func(ctx context.Context, content, provider string) (*Outcome, error)
	ClassifyFileFn func(ctx context.Context, name string, r io.Reader, provider string) (*FileOutcome, error)
}

func (s *StubClassifier) Providers(ctx context.Context) (*ProvidersInfo, error) {
	if s.ProvidersFn != nil {
		return s.ProvidersFn(ctx)
	}
	return CreateTestProvidersInfo("openai"), nil
}

func (s *StubClassifier) ClassifyText(ctx context.Context, content, provider string) (*Outcome, error) {
	if s.ClassifyTextFn != nil {
		return s.ClassifyTextFn(ctx, content, provider)
	}
	return CreateTestOutcome(0.9), nil
}

func (s *StubClassifier) ClassifyFile(ctx context.Context, name string, r io.Reader, provider string) (*FileOutcome, error) {
	if s.ClassifyFileFn != nil {
		return s.ClassifyFileFn(ctx, name, r, provider)
	}
	return &FileOutcome{Outcome: *CreateTestOutcome(0.9), FileName: name}, nil
}
