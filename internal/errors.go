package internal

import "fmt"

// ValidationError rejects a submission before it starts
type ValidationError struct {
	FileName string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid file %s: %s", e.FileName, e.Reason)
}

// APIError represents a non-2xx response or transport failure from the
// classification API
type APIError struct {
	Op     string // "providers", "classify", "classifyFile"
	Status int    // 0 when the request never got a response
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error [%s] status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("api error [%s]: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HumanDetail returns the text worth showing to the user
func (e *APIError) HumanDetail() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// StoreError represents errors accessing the chat store
type StoreError struct {
	Op  string // "open", "load", "save", "clear"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// PreviewError represents errors reading a local email file for preview
type PreviewError struct {
	Path string
	Err  error
}

func (e *PreviewError) Error() string {
	return fmt.Sprintf("preview error %s: %v", e.Path, e.Err)
}

func (e *PreviewError) Unwrap() error {
	return e.Err
}
