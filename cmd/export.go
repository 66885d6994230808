package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abarbosa/mail-triage/internal"
	"github.com/abarbosa/mail-triage/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversation log to a file",
	Long: `Export the persisted conversation log in one of several formats
(jsonl, md, yaml, json).

By default the transcript is written to the current directory with a
timestamped name; use --out to pick a path, or "-" for stdout.`,
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
			return fmt.Errorf("nothing to export: the conversation log is empty")
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		transcript := internal.NewTranscript(messages, cfg.Provider, cfg.APIURL)

		if exportOut == "-" {
			return exporter.Export(transcript, os.Stdout)
		}

		outPath := exportOut
		if outPath == "" {
			outPath = fmt.Sprintf("mail-triage_%s.%s", time.Now().Format("20060102_150405"), exporter.Extension())
		}
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer func() { _ = file.Close() }()

		if err := exporter.Export(transcript, file); err != nil {
			return fmt.Errorf("failed to export transcript: %w", err)
		}

		fmt.Printf("Exported %d message(s) to %s\n", len(messages), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (\"-\" for stdout)")
}
