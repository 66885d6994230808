package internal

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abarbosa/mail-triage/testutil"
)

func newTempStore(t *testing.T) *ChatStore {
	t.Helper()
	store, err := NewChatStore(testutil.CreateTempDir(t), true)
	if err != nil {
		t.Fatalf("NewChatStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestChatStoreRoundTrip(t *testing.T) {
	store := newTempStore(t)

	base := time.Date(2026, 8, 31, 14, 30, 0, 123_000_000, time.UTC)
	var messages []Message
	for i := 0; i < 5; i++ {
		msg := Message{
			ID:        fmt.Sprintf("msg-%d-1000", i+1),
			Role:      RoleUser,
			Text:      fmt.Sprintf("email body %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i%2 == 1 {
			msg.Role = RoleAssistant
			msg.Text = ""
			msg.Provider = "openai"
			msg.SourceText = fmt.Sprintf("email body %d", i-1)
			msg.Result = CreateTestOutcome(0.87)
		}
		messages = append(messages, msg)
	}

	if err := store.Save(messages); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(messages, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	// CreatedAt survives to the millisecond and stays a usable timestamp
	for i, msg := range loaded {
		if !msg.CreatedAt.Equal(messages[i].CreatedAt) {
			t.Errorf("message %d createdAt = %v, want %v", i, msg.CreatedAt, messages[i].CreatedAt)
		}
	}
}

func TestChatStoreLoad_MissingKey(t *testing.T) {
	store := newTempStore(t)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != nil {
		t.Errorf("Load() = %v entries from fresh store, want nil", len(loaded))
	}
}

func TestChatStoreLoad_CorruptPayload(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	store, err := NewChatStore(dir, true)
	if err != nil {
		t.Fatalf("NewChatStore() error = %v", err)
	}
	defer store.Close()

	if err := PutStoreValue(store.db, ConversationLogKey, "{not json"); err != nil {
		t.Fatalf("PutStoreValue() error = %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("Load() accepted corrupt payload")
	}
}

func TestChatStoreClear(t *testing.T) {
	store := newTempStore(t)

	if err := store.Save([]Message{CreateTestMessage("msg-1-1", RoleUser, "hi")}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() after Clear() error = %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Load() after Clear() = %d entries, want 0", len(loaded))
	}
}

func TestChatStoreDisabled(t *testing.T) {
	store, err := NewChatStore("", false)
	if err != nil {
		t.Fatalf("NewChatStore() error = %v", err)
	}

	if store.Enabled() {
		t.Error("Enabled() = true for disabled store")
	}
	if err := store.Save([]Message{CreateTestMessage("msg-1-1", RoleUser, "hi")}); err != nil {
		t.Errorf("Save() on disabled store error = %v, want nil", err)
	}
	loaded, err := store.Load()
	if err != nil || loaded != nil {
		t.Errorf("Load() on disabled store = (%v, %v), want (nil, nil)", loaded, err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on disabled store error = %v, want nil", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() on disabled store error = %v, want nil", err)
	}
}

func TestChatStorePersistsAcrossReopen(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	first, err := NewChatStore(dir, true)
	if err != nil {
		t.Fatalf("NewChatStore() error = %v", err)
	}
	saved := []Message{
		CreateTestMessage("msg-1-1", RoleUser, "does my order ship today?"),
	}
	if err := first.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	first.Close()

	second, err := NewChatStore(dir, true)
	if err != nil {
		t.Fatalf("reopen NewChatStore() error = %v", err)
	}
	defer second.Close()

	loaded, err := second.Load()
	if err != nil {
		t.Fatalf("Load() after reopen error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != saved[0].Text {
		t.Errorf("Load() after reopen = %+v, want the saved message back", loaded)
	}
}
