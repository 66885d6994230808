package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	availableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	unavailableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	defaultMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Italic(true)
)

// providersCmd represents the providers command
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the AI backends the classification service offers",
	Long:  `Query the classification API for its available AI providers and their status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		info, err := newClient(cfg).Providers(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch providers: %w", err)
		}

		displayProviders(info)
		return nil
	},
}

func displayProviders(info *internal.ProvidersInfo) {
	if len(info.Providers) == 0 {
		fmt.Println(headerStyle.Render("🧠 No providers reported"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("🧠 %d provider(s)", len(info.Providers))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Provider")+"\t"+titleStyle.Render("Status")+"\t"+titleStyle.Render("Model")+"\t")

	for _, name := range info.Names() {
		status := info.Providers[name]

		statusText := unavailableStyle.Render("unavailable")
		if status.Available {
			statusText = availableStyle.Render("available")
		}

		label := name
		if name == info.Default {
			label += " " + defaultMarkStyle.Render("(default)")
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", label, statusText, status.Model)
	}

	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
