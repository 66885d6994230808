package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		FileName: "virus.exe",
		Reason:   "unsupported extension",
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "virus.exe") {
		t.Errorf("ValidationError.Error() should contain file name, got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "unsupported extension") {
		t.Errorf("ValidationError.Error() should contain reason, got: %q", errorMsg)
	}
}

func TestAPIError(t *testing.T) {
	t.Run("status response", func(t *testing.T) {
		err := &APIError{Op: "classify", Status: 422, Detail: "conteúdo vazio"}

		errorMsg := err.Error()
		if !strings.Contains(errorMsg, "classify") {
			t.Errorf("APIError.Error() should contain op, got: %q", errorMsg)
		}
		if !strings.Contains(errorMsg, "422") {
			t.Errorf("APIError.Error() should contain status, got: %q", errorMsg)
		}
		if got := err.HumanDetail(); got != "conteúdo vazio" {
			t.Errorf("HumanDetail() = %q, want the detail string", got)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		originalErr := errors.New("connection refused")
		err := &APIError{Op: "providers", Err: originalErr}

		if !errors.Is(err, originalErr) {
			t.Error("APIError.Unwrap() should return original error")
		}
		if got := err.HumanDetail(); got != "connection refused" {
			t.Errorf("HumanDetail() = %q, want wrapped error text", got)
		}
	})

	t.Run("status without detail", func(t *testing.T) {
		err := &APIError{Op: "classify", Status: 500}
		if got := err.HumanDetail(); !strings.Contains(got, "500") {
			t.Errorf("HumanDetail() = %q, want status mentioned", got)
		}
	})
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database is locked")
	err := &StoreError{Op: "save", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "store error") {
		t.Errorf("StoreError.Error() should contain 'store error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "save") {
		t.Errorf("StoreError.Error() should contain op, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("StoreError.Unwrap() should return original error")
	}
}

func TestPreviewError(t *testing.T) {
	originalErr := errors.New("no such file")
	err := &PreviewError{Path: "/tmp/mail.eml", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "/tmp/mail.eml") {
		t.Errorf("PreviewError.Error() should contain path, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("PreviewError.Unwrap() should return original error")
	}
}
