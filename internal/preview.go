package internal

import (
	"bufio"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	mboxlib "github.com/emersion/go-mbox"
)

// EmailPreview holds the header fields shown before a file is submitted
type EmailPreview struct {
	FileName string
	Subject  string
	From     string
	To       string
	Date     string
	Snippet  string
}

// PreviewFile reads just enough of a local email file to display its
// headers. Parsing happens entirely client-side; nothing is uploaded.
// Supported: .eml (single message), .mbox (first message), .txt (first
// lines as snippet). Other allowed upload formats (.pdf, .msg) are
// binary and report that no preview is available.
func PreviewFile(path string) (*EmailPreview, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	switch ext {
	case "eml":
		return previewEML(path, name)
	case "mbox":
		return previewMbox(path, name)
	case "txt":
		return previewText(path, name)
	case "pdf", "msg":
		return nil, &PreviewError{Path: path, Err: fmt.Errorf("no local preview for .%s files", ext)}
	default:
		return nil, &PreviewError{Path: path, Err: fmt.Errorf("unsupported file type .%s", ext)}
	}
}

func previewEML(path, name string) (*EmailPreview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PreviewError{Path: path, Err: err}
	}
	defer f.Close()

	msg, err := mail.ReadMessage(bufio.NewReader(f))
	if err != nil {
		return nil, &PreviewError{Path: path, Err: fmt.Errorf("parse message: %w", err)}
	}
	return previewFromHeader(name, msg), nil
}

func previewMbox(path, name string) (*EmailPreview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PreviewError{Path: path, Err: err}
	}
	defer f.Close()

	reader := mboxlib.NewReader(f)
	msgReader, err := reader.NextMessage()
	if err != nil {
		return nil, &PreviewError{Path: path, Err: fmt.Errorf("read mbox: %w", err)}
	}

	msg, err := mail.ReadMessage(msgReader)
	if err != nil {
		return nil, &PreviewError{Path: path, Err: fmt.Errorf("parse message: %w", err)}
	}

	preview := previewFromHeader(name, msg)
	return preview, nil
}

func previewFromHeader(name string, msg *mail.Message) *EmailPreview {
	preview := &EmailPreview{
		FileName: name,
		Subject:  msg.Header.Get("Subject"),
		From:     msg.Header.Get("From"),
		To:       msg.Header.Get("To"),
		Date:     msg.Header.Get("Date"),
	}
	preview.Snippet = readSnippet(msg.Body, 3)
	return preview
}

func previewText(path, name string) (*EmailPreview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PreviewError{Path: path, Err: err}
	}
	defer f.Close()

	preview := &EmailPreview{FileName: name}
	preview.Snippet = readSnippet(f, 3)

	// The first non-empty line doubles as a subject for plain text
	for _, line := range strings.Split(preview.Snippet, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			preview.Subject = trimmed
			break
		}
	}
	return preview, nil
}

// readSnippet collects up to n non-empty lines for display
func readSnippet(r io.Reader, n int) string {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() && len(lines) < n {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) > 100 {
			line = line[:97] + "..."
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
