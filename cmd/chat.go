package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	chatBannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	chatHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	chatErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive classification session",
	Long: `Start an interactive chat session with the classification backend.

Type or paste email text and press Enter to classify it. Commands:

  /file <path>    Stage an email file for submission (clears typed staging)
  /send           Submit the staged file
  /peek           Preview the staged file's headers locally
  /provider <id>  Switch AI provider for future submissions
  /new            Clear the session (log and persisted copy)
  /help           Show commands
  /quit           Leave the session (history is kept)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		ctrl := internal.NewController(ctx, newClient(cfg), store)
		if cfg.Provider != "" {
			ctrl.SetProvider(cfg.Provider)
		}

		printChatBanner(ctrl)

		return runChatLoop(ctx, ctrl, bufio.NewScanner(os.Stdin))
	},
}

func printChatBanner(ctrl *internal.Controller) {
	fmt.Println(chatBannerStyle.Render("📬 mail-triage"))

	parts := []string{fmt.Sprintf("provider: %s", ctrl.Provider())}
	if restored := len(ctrl.Messages()); restored > 0 {
		parts = append(parts, fmt.Sprintf("%d message(s) restored", restored))
	}
	fmt.Println(chatHintStyle.Render(strings.Join(parts, " • ")))
	fmt.Println(chatHintStyle.Render("Type email text to classify it, /help for commands"))
	fmt.Println()
}

// runChatLoop reads intents from the scanner until /quit or EOF.
// Typing text submits it immediately and drops any staged file; /file
// stages a file for an explicit /send. A submission is always one or
// the other, never both.
func runChatLoop(ctx context.Context, ctrl *internal.Controller, scanner *bufio.Scanner) error {
	stagedFile := ""

	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			if stagedFile != "" {
				fmt.Println(chatHintStyle.Render("(staged file dropped)"))
				stagedFile = ""
			}
			submitText(ctx, ctrl, line)
			continue
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "/quit", "/exit", "/q":
			fmt.Println(chatHintStyle.Render("Session saved. Bye!"))
			return nil

		case "/help", "/h":
			printChatHelp()

		case "/file", "/f":
			if arg == "" {
				fmt.Println(chatErrorStyle.Render("usage: /file <path>"))
				continue
			}
			info, err := os.Stat(arg)
			if err != nil {
				fmt.Println(chatErrorStyle.Render(fmt.Sprintf("cannot read %s: %v", arg, err)))
				continue
			}
			if err := internal.ValidateFile(info.Name(), info.Size()); err != nil {
				fmt.Println(chatErrorStyle.Render(err.Error()))
				continue
			}
			stagedFile = arg
			fmt.Println(chatHintStyle.Render(fmt.Sprintf("Staged %s (%s) — /send to submit, /peek to preview", info.Name(), formatSize(info.Size()))))

		case "/send", "/s":
			if stagedFile == "" {
				fmt.Println(chatErrorStyle.Render("nothing staged; use /file <path> first"))
				continue
			}
			submitFile(ctx, ctrl, stagedFile)
			stagedFile = ""

		case "/peek":
			path := arg
			if path == "" {
				path = stagedFile
			}
			if path == "" {
				fmt.Println(chatErrorStyle.Render("usage: /peek [path] (or stage a file first)"))
				continue
			}
			preview, err := internal.PreviewFile(path)
			if err != nil {
				fmt.Println(chatErrorStyle.Render(err.Error()))
				continue
			}
			displayPreview(preview)

		case "/provider":
			if arg == "" {
				fmt.Println(chatHintStyle.Render("current provider: " + ctrl.Provider()))
				continue
			}
			if info := ctrl.AvailableProviders(); info != nil {
				if _, ok := info.Providers[arg]; !ok {
					fmt.Println(chatErrorStyle.Render(fmt.Sprintf("unknown provider %q (available: %s)", arg, strings.Join(info.Names(), ", "))))
					continue
				}
			}
			ctrl.SetProvider(arg)
			fmt.Println(chatHintStyle.Render("provider set to " + arg))

		case "/new":
			ctrl.Clear()
			stagedFile = ""
			fmt.Println(chatHintStyle.Render("Session cleared."))

		case "/history":
			displayLog(ctrl.Messages())

		default:
			fmt.Println(chatErrorStyle.Render(fmt.Sprintf("unknown command %s (/help for commands)", cmd)))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func submitText(ctx context.Context, ctrl *internal.Controller, content string) {
	fmt.Println(pendingStyle.Render("⏳ classifying via " + ctrl.Provider() + "..."))
	resolved, err := ctrl.SubmitText(ctx, content)
	if err != nil {
		fmt.Println(chatErrorStyle.Render(err.Error()))
		return
	}
	displayMessage(resolved)
}

func submitFile(ctx context.Context, ctrl *internal.Controller, path string) {
	fmt.Println(pendingStyle.Render("⏳ uploading and classifying via " + ctrl.Provider() + "..."))
	resolved, err := ctrl.SubmitFile(ctx, path)
	if err != nil {
		fmt.Println(chatErrorStyle.Render(err.Error()))
		return
	}
	displayMessage(resolved)
}

func displayPreview(p *internal.EmailPreview) {
	fmt.Println(chatBannerStyle.Render("✉️  " + p.FileName))
	if p.Subject != "" {
		fmt.Println(messageBodyStyle.Render("Subject: " + p.Subject))
	}
	if p.From != "" {
		fmt.Println(messageBodyStyle.Render("From: " + p.From))
	}
	if p.To != "" {
		fmt.Println(messageBodyStyle.Render("To: " + p.To))
	}
	if p.Date != "" {
		fmt.Println(messageBodyStyle.Render("Date: " + p.Date))
	}
	if p.Snippet != "" {
		fmt.Println(metaStyle.Render(p.Snippet))
	}
}

func printChatHelp() {
	help := []string{
		"/file <path>    stage an email file (.txt, .pdf, .eml, .msg, .mbox)",
		"/send           submit the staged file",
		"/peek [path]    preview email headers locally (no upload)",
		"/provider <id>  switch AI provider",
		"/history        re-render the conversation log",
		"/new            clear the session",
		"/quit           leave (history is kept)",
	}
	for _, line := range help {
		fmt.Println(chatHintStyle.Render("  " + line))
	}
}

// splitCommand separates "/file path with spaces" into command and argument
func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := parts[0]
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
