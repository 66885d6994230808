package cmd

import (
	"bytes"
	"testing"

	"github.com/abarbosa/mail-triage/testutil"
)

func TestPeekCommand(t *testing.T) {
	eml := "From: cliente@example.com\r\nSubject: Chamado 42\r\n\r\ncorpo\r\n"
	path := testutil.WriteTempFile(t, "chamado.eml", []byte(eml))

	rootCmd.SetArgs([]string{"peek", path})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("peek error = %v", err)
	}
}

func TestPeekCommand_BinaryFile(t *testing.T) {
	path := testutil.WriteTempFile(t, "doc.pdf", []byte("%PDF"))

	rootCmd.SetArgs([]string{"peek", path})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("peek succeeded on a binary format with no local preview")
	}
}
