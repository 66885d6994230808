package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/abarbosa/mail-triage/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Mail Triage Transcript\n\n")
	_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", t.ExportedAt.Format("2006-01-02 15:04"))
	if t.Provider != "" {
		_, _ = fmt.Fprintf(w, "**Provider:** %s  \n", t.Provider)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d (%d classified)\n\n", len(t.Messages), t.Resolved())

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range t.Messages {
		timestamp := ""
		if !msg.CreatedAt.IsZero() {
			timestamp = fmt.Sprintf(" (%s)", msg.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		switch msg.Role {
		case internal.RoleUser:
			_, _ = fmt.Fprintf(w, "**User:**%s\n\n", timestamp)
			if msg.Attachment != nil {
				_, _ = fmt.Fprintf(w, "Uploaded `%s` (%d bytes)\n\n", msg.Attachment.Name, msg.Attachment.SizeBytes)
			}
			if msg.Text != "" {
				_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(msg.Text))
			}
		case internal.RoleAssistant:
			_, _ = fmt.Fprintf(w, "**Assistant:**%s\n\n", timestamp)
			writeOutcome(w, &msg)
		}

		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func writeOutcome(w io.Writer, msg *internal.Message) {
	if msg.Pending {
		_, _ = fmt.Fprintf(w, "_classification still pending_\n\n")
		return
	}
	if msg.Result == nil {
		return
	}

	res := msg.Result
	if internal.IsErrorOutcome(res) {
		_, _ = fmt.Fprintf(w, "> %s\n\n", res.SuggestedReply)
		return
	}

	marker := ""
	if res.HighConfidence() {
		marker = " ✓"
	}
	_, _ = fmt.Fprintf(w, "**Category:** %s (%.0f%%%s)\n\n", res.Category, res.ConfidencePercent(), marker)
	if res.Subject != "" {
		_, _ = fmt.Fprintf(w, "**Subject:** %s  \n", res.Subject)
	}
	if res.Sender != "" {
		_, _ = fmt.Fprintf(w, "**From:** %s  \n", res.Sender)
	}
	if res.ModelUsed != "" {
		_, _ = fmt.Fprintf(w, "**Model:** %s\n", res.ModelUsed)
	}
	if res.Subject != "" || res.Sender != "" || res.ModelUsed != "" {
		_, _ = fmt.Fprintf(w, "\n")
	}
	if res.SuggestedReply != "" {
		_, _ = fmt.Fprintf(w, "Suggested reply:\n\n> %s\n\n", strings.ReplaceAll(res.SuggestedReply, "\n", "\n> "))
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
