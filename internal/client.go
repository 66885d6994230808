package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the email classification API. It issues plain
// request/response pairs with no retry or backoff; failures surface
// immediately as *APIError.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Providers fetches the available AI backends and the server default
func (c *Client) Providers(ctx context.Context) (*ProvidersInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/emails/providers", nil)
	if err != nil {
		return nil, &APIError{Op: "providers", Err: err}
	}

	var info ProvidersInfo
	if err := c.do(req, "providers", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ClassifyText classifies raw email text. An empty provider lets the
// backend choose its default.
func (c *Client) ClassifyText(ctx context.Context, content, provider string) (*Outcome, error) {
	body, err := json.Marshal(classifyRequest{Conteudo: content, Provider: provider})
	if err != nil {
		return nil, &APIError{Op: "classify", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails/classificar", bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Op: "classify", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var payload outcomePayload
	if err := c.do(req, "classify", &payload); err != nil {
		return nil, err
	}
	return payload.toOutcome(), nil
}

// ClassifyFile uploads an email file for classification. The provider
// travels as a query parameter when set.
func (c *Client) ClassifyFile(ctx context.Context, name string, r io.Reader, provider string) (*FileOutcome, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("arquivo", name)
	if err != nil {
		return nil, &APIError{Op: "classifyFile", Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &APIError{Op: "classifyFile", Err: fmt.Errorf("read file: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &APIError{Op: "classifyFile", Err: err}
	}

	endpoint := c.baseURL + "/emails/classificar/arquivo"
	if provider != "" {
		endpoint += "?provider=" + url.QueryEscape(provider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, &APIError{Op: "classifyFile", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var payload outcomePayload
	if err := c.do(req, "classifyFile", &payload); err != nil {
		return nil, err
	}
	return &FileOutcome{Outcome: *payload.toOutcome(), FileName: payload.NomeArquivo}, nil
}

// Health probes the API's health endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/emails/health", nil)
	if err != nil {
		return &APIError{Op: "health", Err: err}
	}
	var status struct {
		Status string `json:"status"`
	}
	return c.do(req, "health", &status)
}

// do executes a request and decodes a 2xx JSON body into out. Non-2xx
// responses become an *APIError with the detail string the backend
// includes in its error bodies.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Op: op, Status: resp.StatusCode, Detail: extractDetail(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// extractDetail pulls the human-readable message out of an error body.
// The backend wraps messages as {"detail": "..."}; anything else is
// returned as-is.
func extractDetail(body []byte) string {
	var wrapped struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Detail != "" {
		return wrapped.Detail
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
