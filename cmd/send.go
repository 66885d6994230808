package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/spf13/cobra"
)

var (
	sendFilePath string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Classify one email and print the result",
	Long: `Classify a single email without entering the interactive session.

The email text comes from the arguments, from stdin when piped, or from
a file via --file. The exchange is appended to the persistent history
unless --no-state is set.

Examples:
  mail-triage send "Gostaria de saber o status do chamado #123"
  cat email.txt | mail-triage send
  mail-triage send --file invoice.pdf --provider gemini`,
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

		var resolved internal.Message
		if sendFilePath != "" {
			if len(args) > 0 {
				return fmt.Errorf("--file and text arguments are mutually exclusive")
			}
			resolved, err = ctrl.SubmitFile(ctx, sendFilePath)
		} else {
			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				content, err = readStdin()
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("nothing to classify: pass text, pipe stdin, or use --file")
			}
			resolved, err = ctrl.SubmitText(ctx, content)
		}
		if err != nil {
			return err
		}

		displayMessage(resolved)
		if internal.IsErrorOutcome(resolved.Result) {
			os.Exit(1)
		}
		return nil
	},
}

func readStdin() (string, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("stat stdin: %w", err)
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendFilePath, "file", "f", "", "Classify an email file instead of text")
}
