package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultProvider is used when the provider list cannot be fetched
const DefaultProvider = "openai"

// Classifier is the slice of the API client the Controller depends on
type Classifier interface {
	Providers(ctx context.Context) (*ProvidersInfo, error)
	ClassifyText(ctx context.Context, content, provider string) (*Outcome, error)
	ClassifyFile(ctx context.Context, name string, r io.Reader, provider string) (*FileOutcome, error)
}

// Controller owns the conversation log and drives every mutation of it:
// submissions append an optimistic user/pending-assistant pair, the
// eventual API result is reconciled back into the pending entry by id,
// and the store is written after each change.
//
// Submissions may run concurrently; reconciliation never relies on log
// position, only on the pending entry's id, so late responses resolving
// out of order (or after a Clear wiped their entry) are safe.
type Controller struct {
	mu        sync.Mutex
	log       []Message
	provider  string
	providers *ProvidersInfo
	inflight  int
	seq       int

	client      Classifier
	store       *ChatStore
	subscribers []func()
	now         func() time.Time
}

// NewController builds a Controller, restores any persisted log, and
// fetches the provider list. A provider-list failure is not surfaced:
// the controller falls back to DefaultProvider.
func NewController(ctx context.Context, client Classifier, store *ChatStore) *Controller {
	c := &Controller{
		client:   client,
		store:    store,
		provider: DefaultProvider,
		now:      time.Now,
	}

	restored, err := store.Load()
	if err != nil {
		// A broken store never kills the session; start empty
		LogWarn("Failed to restore conversation log: %v", err)
	} else {
		c.log = restored
	}

	info, err := client.Providers(ctx)
	if err != nil {
		LogWarn("Provider list unavailable, defaulting to %s: %v", DefaultProvider, err)
	} else {
		c.providers = info
		if info.Default != "" {
			c.provider = info.Default
		}
	}

	return c
}

// Subscribe registers fn to run after every log mutation. The returned
// function removes the subscription.
func (c *Controller) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
	idx := len(c.subscribers) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subscribers[idx] = nil
	}
}

// notifyLocked runs subscribers; callers hold c.mu
func (c *Controller) notifyLocked() {
	for _, fn := range c.subscribers {
		if fn != nil {
			fn()
		}
	}
}

// Messages returns a copy of the conversation log
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.log))
	copy(out, c.log)
	return out
}

// Busy reports whether any submission is still outstanding
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Provider returns the currently selected provider
func (c *Controller) Provider() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

// AvailableProviders returns the provider list fetched at construction,
// or nil when the fetch failed
func (c *Controller) AvailableProviders() *ProvidersInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.providers
}

// SetProvider switches the provider for future submissions. Requests
// already in flight keep the provider they were issued with.
func (c *Controller) SetProvider(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = id
}

// nextIDLocked generates a message id unique within the session:
// a strictly increasing counter plus wall-clock millis
func (c *Controller) nextIDLocked() string {
	c.seq++
	return fmt.Sprintf("msg-%d-%d", c.seq, c.now().UnixMilli())
}

// SubmitText classifies typed email text. It appends the user message
// and a pending assistant message, persists, issues the API call, then
// reconciles the pending entry with the outcome (or a synthetic error
// outcome). Returns the resolved assistant message.
//
// The error return covers preconditions only (empty content, unreadable
// file). A failed API call still resolves the pending entry, with an
// error-prefixed reply and zero confidence; check IsErrorOutcome.
func (c *Controller) SubmitText(ctx context.Context, content string) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, fmt.Errorf("content is empty")
	}

	c.mu.Lock()
	provider := c.provider
	now := c.now()
	userMsg := Message{
		ID:        c.nextIDLocked(),
		Role:      RoleUser,
		Text:      content,
		CreatedAt: now,
	}
	pending := Message{
		ID:         c.nextIDLocked(),
		Role:       RoleAssistant,
		Provider:   provider,
		CreatedAt:  now,
		Pending:    true,
		SourceText: content,
	}
	c.appendLocked(userMsg, pending)
	c.mu.Unlock()

	outcome, err := c.client.ClassifyText(ctx, content, provider)
	return c.resolve(pending.ID, provider, outcome, err), nil
}

// SubmitFile classifies an email file. The file is validated against
// the extension allowlist and size ceiling before anything is appended.
func (c *Controller) SubmitFile(ctx context.Context, path string) (Message, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Message{}, fmt.Errorf("stat file: %w", err)
	}

	name := info.Name()
	if err := ValidateFile(name, info.Size()); err != nil {
		return Message{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Message{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	c.mu.Lock()
	provider := c.provider
	now := c.now()
	userMsg := Message{
		ID:         c.nextIDLocked(),
		Role:       RoleUser,
		Attachment: &Attachment{Name: name, SizeBytes: info.Size()},
		CreatedAt:  now,
	}
	pending := Message{
		ID:        c.nextIDLocked(),
		Role:      RoleAssistant,
		Provider:  provider,
		CreatedAt: now,
		Pending:   true,
	}
	c.appendLocked(userMsg, pending)
	c.mu.Unlock()

	fileOutcome, err := c.client.ClassifyFile(ctx, name, f, provider)
	var outcome *Outcome
	if fileOutcome != nil {
		outcome = &fileOutcome.Outcome
	}
	return c.resolve(pending.ID, provider, outcome, err), nil
}

// appendLocked adds messages to the log, persists, and notifies;
// callers hold c.mu
func (c *Controller) appendLocked(msgs ...Message) {
	c.log = append(c.log, msgs...)
	c.inflight++
	c.persistLocked()
	c.notifyLocked()
}

// resolve reconciles the pending entry identified by id. Every
// submission path funnels through here, so no entry is ever left
// pending. When the id is gone (the session was cleared while the
// request was in flight) the resolution is a silent no-op.
func (c *Controller) resolve(id, provider string, outcome *Outcome, callErr error) Message {
	if callErr != nil {
		outcome = SyntheticErrorOutcome(classifyErrorDetail(callErr))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight--

	for i := range c.log {
		if c.log[i].ID != id {
			continue
		}
		c.log[i].Pending = false
		c.log[i].Result = outcome
		c.log[i].Provider = provider
		c.persistLocked()
		c.notifyLocked()
		return c.log[i]
	}

	LogDebug("Resolution for %s dropped: entry no longer in log", id)
	return Message{}
}

// classifyErrorDetail extracts the display text for a failed call
func classifyErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.HumanDetail()
	}
	return err.Error()
}

// persistLocked writes the full log; storage trouble is logged and
// swallowed, never fatal to the session. Callers hold c.mu.
func (c *Controller) persistLocked() {
	if err := c.store.Save(c.log); err != nil {
		LogWarn("Failed to persist conversation log: %v", err)
	}
}

// Clear replaces the log with an empty one and deletes the persisted
// copy. In-flight requests are not cancelled; their resolutions will
// find no matching entry and drop silently.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log = nil
	if err := c.store.Clear(); err != nil {
		LogWarn("Failed to clear persisted log: %v", err)
	}
	c.notifyLocked()
}
