package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Shared styles for rendering the conversation log
	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageBodyStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	productiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	unproductiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("62"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	attachmentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// displayMessage renders one conversation log entry
func displayMessage(msg internal.Message) {
	var header string
	switch msg.Role {
	case internal.RoleUser:
		header = userLabelStyle.Render("👤 You")
	case internal.RoleAssistant:
		header = assistantLabelStyle.Render("🤖 Classifier")
	default:
		header = metaStyle.Render(string(msg.Role))
	}

	if !msg.CreatedAt.IsZero() {
		header += " " + timestampStyle.Render(msg.CreatedAt.Format("15:04:05"))
	}
	if msg.Provider != "" {
		header += " " + metaStyle.Render("["+msg.Provider+"]")
	}
	fmt.Println(header)

	switch msg.Role {
	case internal.RoleUser:
		if msg.Attachment != nil {
			fmt.Println(messageBodyStyle.Render(attachmentStyle.Render(
				fmt.Sprintf("📎 %s (%s)", msg.Attachment.Name, formatSize(msg.Attachment.SizeBytes)))))
		}
		if msg.Text != "" {
			fmt.Println(messageBodyStyle.Render(truncateBody(msg.Text, 6)))
		}
	case internal.RoleAssistant:
		displayOutcome(msg)
	}
}

// displayOutcome renders a pending marker, failure, or classification result
func displayOutcome(msg internal.Message) {
	if msg.Pending {
		fmt.Println(messageBodyStyle.Render(pendingStyle.Render("⏳ classifying...")))
		return
	}
	if msg.Result == nil {
		return
	}

	res := msg.Result
	if internal.IsErrorOutcome(res) {
		fmt.Println(messageBodyStyle.Render(failureStyle.Render("✗ " + res.SuggestedReply)))
		return
	}

	categoryStyle := unproductiveStyle
	if res.Category == internal.CategoryProductive {
		categoryStyle = productiveStyle
	}

	marker := ""
	if res.HighConfidence() {
		marker = " ✓"
	}
	line := categoryStyle.Render(string(res.Category)) +
		metaStyle.Render(fmt.Sprintf(" — %.0f%% confidence%s", res.ConfidencePercent(), marker))
	if res.ModelUsed != "" {
		line += " " + metaStyle.Render("("+res.ModelUsed+")")
	}
	fmt.Println(messageBodyStyle.Render(line))

	var details []string
	if res.Subject != "" {
		details = append(details, "Subject: "+res.Subject)
	}
	if res.Sender != "" {
		details = append(details, "From: "+res.Sender)
	}
	if res.Recipient != "" {
		details = append(details, "To: "+res.Recipient)
	}
	if len(details) > 0 {
		fmt.Println(messageBodyStyle.Render(metaStyle.Render(strings.Join(details, " • "))))
	}

	if res.SuggestedReply != "" {
		fmt.Println(replyStyle.Render(res.SuggestedReply))
		fmt.Println()
	}
}

// displayLog renders the whole conversation log
func displayLog(messages []internal.Message) {
	for _, msg := range messages {
		displayMessage(msg)
	}
}

// truncateBody keeps at most n lines of a message body for display
func truncateBody(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	kept := append([]string{}, lines[:n]...)
	kept = append(kept, metaStyle.Render(fmt.Sprintf("... (%d more line(s))", len(lines)-n)))
	return strings.Join(kept, "\n")
}

// formatSize renders a byte count for humans
func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// formatRelativeDate renders a timestamp the way the session list does
func formatRelativeDate(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}
