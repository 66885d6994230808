package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check configuration, chat store, and API reachability",
	Long: `Check the health of mail-triage by verifying:
  • Config resolution
  • Chat store accessibility
  • Classification API reachability
  • Provider availability

This command is useful for debugging connectivity and storage issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 Mail Triage Health Check"))
		fmt.Println()

		// Step 1: Resolve configuration
		fmt.Println(infoStyle.Render("Step 1: Resolving configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to resolve configuration:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Configuration resolved"))
		if healthcheckVerbose {
			fmt.Printf("   API URL: %s\n", cfg.APIURL)
			fmt.Printf("   State dir: %s\n", cfg.StateDir)
			if cfg.Provider != "" {
				fmt.Printf("   Provider: %s\n", cfg.Provider)
			}
		}
		fmt.Println()

		// Step 2: Check the chat store
		fmt.Println(infoStyle.Render("Step 2: Checking chat store..."))
		store, err := openStore(cfg)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to open chat store:"), err)
		} else if !store.Enabled() {
			fmt.Println(warningStyle.Render("⚠️  Chat store disabled (--no-state); history will not persist"))
		} else {
			messages, loadErr := store.Load()
			if loadErr != nil {
				fmt.Println(warningStyle.Render("⚠️  Chat store opened but log unreadable:"), loadErr)
			} else {
				fmt.Println(successStyle.Render(fmt.Sprintf("✅ Chat store OK (%d message(s) persisted)", len(messages))))
			}
			_ = store.Close()
		}
		fmt.Println()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		client := newClient(cfg)

		// Step 3: Probe the API
		fmt.Println(infoStyle.Render("Step 3: Probing classification API..."))
		apiOK := true
		if err := client.Health(ctx); err != nil {
			apiOK = false
			fmt.Println(errorStyle.Render("❌ API unreachable:"), err)
		} else {
			fmt.Println(successStyle.Render("✅ API reachable"))
		}
		fmt.Println()

		// Step 4: Check providers
		fmt.Println(infoStyle.Render("Step 4: Checking AI providers..."))
		if !apiOK {
			fmt.Println(warningStyle.Render("⚠️  Skipped (API unreachable)"))
		} else {
			info, err := client.Providers(ctx)
			if err != nil {
				fmt.Println(warningStyle.Render("⚠️  Provider list unavailable:"), err)
				fmt.Println(warningStyle.Render(fmt.Sprintf("   Sessions will fall back to %q", internal.DefaultProvider)))
			} else {
				available := 0
				for _, status := range info.Providers {
					if status.Available {
						available++
					}
				}
				if available == 0 {
					fmt.Println(warningStyle.Render("⚠️  No provider has an API key configured server-side"))
				} else {
					fmt.Println(successStyle.Render(fmt.Sprintf("✅ %d of %d provider(s) available (default: %s)", available, len(info.Providers), info.Default)))
				}
				if healthcheckVerbose {
					for _, name := range info.Names() {
						status := info.Providers[name]
						fmt.Printf("   %s: available=%t model=%s\n", name, status.Available, status.Model)
					}
				}
			}
		}
		fmt.Println()

		if apiOK {
			fmt.Println(successStyle.Render("Health check passed"))
			return nil
		}
		fmt.Println(errorStyle.Render("Health check found problems"))
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "verbose-checks", false, "Show detailed diagnostic output")
}
