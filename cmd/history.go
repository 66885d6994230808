package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the persisted conversation log",
	Long:  `Render the conversation log saved by previous chat and send runs.`,
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

		messages, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(messages) == 0 {
			fmt.Println(headerStyle.Render("📋 No history yet"))
			fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).
				Render("Run `mail-triage chat` or `mail-triage send` to start classifying."))
			return nil
		}

		header := fmt.Sprintf("📋 %d message(s)", len(messages))
		if !messages[0].CreatedAt.IsZero() {
			header += " since " + formatRelativeDate(messages[0].CreatedAt)
		}
		fmt.Println(headerStyle.Render(header))
		fmt.Println()

		toShow := messages
		if historyLimit > 0 && historyLimit < len(toShow) {
			toShow = toShow[len(toShow)-historyLimit:]
			fmt.Println(metaStyle.Render(fmt.Sprintf("... (%d earlier message(s) hidden)", len(messages)-historyLimit)))
			fmt.Println()
		}

		displayLog(toShow)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show only the most recent N messages")
}
