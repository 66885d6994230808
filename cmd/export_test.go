package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/abarbosa/mail-triage/testutil"
)

// seedHistory writes a resolved exchange into a chat store under dir
func seedHistory(t *testing.T, dir string) {
	t.Helper()
	store, err := internal.NewChatStore(dir, true)
	if err != nil {
		t.Fatalf("NewChatStore() error = %v", err)
	}
	defer store.Close()

	messages := []internal.Message{
		internal.CreateTestMessage("msg-1-1", internal.RoleUser, "Qual o status do pedido?"),
		{
			ID:       "msg-2-1",
			Role:     internal.RoleAssistant,
			Provider: "openai",
			Result:   internal.CreateTestOutcome(0.95),
		},
	}
	if err := store.Save(messages); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	stateDirArg := testutil.CreateTempDir(t)
	seedHistory(t, stateDirArg)
	outPath := filepath.Join(testutil.CreateTempDir(t), "transcript.jsonl")

	rootCmd.SetArgs([]string{"export", "--state", stateDirArg, "--format", "jsonl", "--out", outPath})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer resetPersistentFlags()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("exported %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Qual o status do pedido?") {
		t.Errorf("line 0 = %q, want user text", lines[0])
	}
}

func TestExportCommand_InvalidFormat(t *testing.T) {
	stateDirArg := testutil.CreateTempDir(t)
	seedHistory(t, stateDirArg)

	rootCmd.SetArgs([]string{"export", "--state", stateDirArg, "--format", "xml"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer resetPersistentFlags()

	if err := rootCmd.Execute(); err == nil {
		t.Error("export accepted an unsupported format")
	}
}

func TestExportCommand_EmptyHistory(t *testing.T) {
	rootCmd.SetArgs([]string{"export", "--state", testutil.CreateTempDir(t)})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer resetPersistentFlags()

	if err := rootCmd.Execute(); err == nil {
		t.Error("export succeeded with an empty conversation log")
	}
}

// resetPersistentFlags clears flag state shared between subcommand tests
func resetPersistentFlags() {
	apiURL = ""
	stateDir = ""
	noState = false
	configPath = ""
	providerArg = ""
	exportFormat = "jsonl"
	exportOut = ""
}
