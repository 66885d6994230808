package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	apiURL      string
	stateDir    string
	noState     bool
	configPath  string
	providerArg string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mail-triage",
	Short: "Chat with an AI email classification service",
	Long: `A terminal chat client for an email classification API.

Paste email text or upload an email file and mail-triage sends it to the
backend, which classifies it as Produtivo/Improdutivo via OpenAI or Gemini
and suggests an automatic reply. The conversation log persists between
runs, so results stay reviewable and exportable.

Features:
  • Interactive chat session with optimistic pending entries
  • Classify typed text or local files (.txt, .pdf, .eml, .msg, .mbox)
  • Pick the AI provider per session (openai or gemini)
  • Preview .eml/.mbox headers locally before uploading
  • Persistent conversation history with export (JSONL, Markdown, YAML, JSON)

Quick Start:
  mail-triage chat                       # Start an interactive session
  mail-triage send "Segue o contrato"    # One-shot classification
  mail-triage providers                  # Show available AI backends

For detailed usage, see: https://github.com/abarbosa/mail-triage`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Classification API base URL (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state", "", "Directory for the persistent chat store")
	rootCmd.PersistentFlags().BoolVar(&noState, "no-state", false, "Run without reading or writing the chat store")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&providerArg, "provider", "p", "", "AI provider to use (openai or gemini)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves settings from defaults, config file, and flags
func loadConfig() (internal.Config, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return internal.Config{}, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if providerArg != "" {
		cfg.Provider = providerArg
	}
	return cfg, nil
}

// newClient builds the API client from resolved config
func newClient(cfg internal.Config) *internal.Client {
	return internal.NewClient(cfg.APIURL, http.DefaultClient)
}

// openStore opens the chat store; --no-state yields an inert store
func openStore(cfg internal.Config) (*internal.ChatStore, error) {
	store, err := internal.NewChatStore(cfg.StateDir, !noState)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat store: %w", err)
	}
	return store, nil
}
