package internal

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
)

// ConversationLogKey is the single fixed key the conversation log lives
// under in the chatStore table
const ConversationLogKey = "conversationLog"

// ChatStore persists the conversation log. A disabled store is inert:
// it touches no storage and every operation succeeds as a no-op, so the
// Controller can run in contexts where persistence makes no sense
// (piped one-shot invocations, tests).
type ChatStore struct {
	db      *sql.DB
	enabled bool
}

// NewChatStore opens the chat store at dir/chat.db. When enabled is
// false no file is opened or created.
func NewChatStore(dir string, enabled bool) (*ChatStore, error) {
	if !enabled {
		return &ChatStore{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	db, err := OpenStoreDB(filepath.Join(dir, "chat.db"))
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	return &ChatStore{db: db, enabled: true}, nil
}

// Enabled reports whether the store persists anything
func (s *ChatStore) Enabled() bool {
	return s.enabled
}

// Load reads the persisted conversation log. A missing or disabled
// store yields a nil log with no error.
func (s *ChatStore) Load() ([]Message, error) {
	if !s.enabled {
		return nil, nil
	}

	value, ok, err := GetStoreValue(s.db, ConversationLogKey)
	if err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	if !ok {
		return nil, nil
	}

	var records []persistedMessage
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}

	messages := make([]Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, fromPersisted(rec))
	}
	return messages, nil
}

// Save writes the full conversation log. Every log mutation triggers a
// complete rewrite; logs stay small enough that deltas are not worth it.
func (s *ChatStore) Save(messages []Message) error {
	if !s.enabled {
		return nil
	}

	records := make([]persistedMessage, 0, len(messages))
	for _, m := range messages {
		records = append(records, toPersisted(m))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}

	if err := PutStoreValue(s.db, ConversationLogKey, string(data)); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}

// Clear deletes the persisted conversation log
func (s *ChatStore) Clear() error {
	if !s.enabled {
		return nil
	}
	if err := DeleteStoreValue(s.db, ConversationLogKey); err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	return nil
}

// Close releases the underlying database
func (s *ChatStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
