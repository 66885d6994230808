package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abarbosa/mail-triage/internal"
)

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONExporter{}

	if err := exporter.Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.Transcript
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Messages) != 4 {
		t.Errorf("messages = %d, want 4", len(decoded.Messages))
	}
	if decoded.Provider != "openai" {
		t.Errorf("provider = %q, want openai", decoded.Provider)
	}
	if decoded.Messages[1].Result == nil || decoded.Messages[1].Result.Confidence != 0.95 {
		t.Errorf("resolved message lost its result: %+v", decoded.Messages[1])
	}

	// Pretty-printed output
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output is not indented")
	}
}
