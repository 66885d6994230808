package cmd

import (
	"github.com/abarbosa/mail-triage/internal"
	"github.com/spf13/cobra"
)

// peekCmd represents the peek command
var peekCmd = &cobra.Command{
	Use:   "peek <path>",
	Short: "Preview an email file's headers without uploading it",
	Long: `Parse a local email file and show its subject, sender, and first
lines. Nothing is sent to the classification API.

Supported: .eml (single message), .mbox (first message), .txt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preview, err := internal.PreviewFile(args[0])
		if err != nil {
			return err
		}
		displayPreview(preview)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(peekCmd)
}
