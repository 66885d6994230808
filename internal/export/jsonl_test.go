package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONLExporter{}

	if err := exporter.Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("output has %d lines, want one per message (4)", len(lines))
	}

	for i, line := range lines {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if obj["id"] == "" {
			t.Errorf("line %d missing id", i)
		}
		if obj["role"] == "" {
			t.Errorf("line %d missing role", i)
		}
	}

	// First user line carries its text; attachment line carries the file
	if !strings.Contains(lines[0], "pedido #42") {
		t.Errorf("line 0 = %q, want user text", lines[0])
	}
	if !strings.Contains(lines[2], "fatura.pdf") {
		t.Errorf("line 2 = %q, want attachment name", lines[2])
	}
}

func TestJSONLExporterEmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONLExporter{}

	transcript := sampleTranscript()
	transcript.Messages = nil

	if err := exporter.Export(transcript, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty transcript produced output: %q", buf.String())
	}
}
