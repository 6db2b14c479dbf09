package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwinters-dev/chatstate/internal"
	"github.com/mwinters-dev/chatstate/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat    string
	exportOutDir    string
	exportSessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session transcripts to file",
	Long: `Export persisted chat sessions to various formats (jsonl, md, yaml, json).

You can export all sessions or a specific session by ID.
Use 'chatstate list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, closeDB, err := loadStore()
		if err != nil {
			return err
		}
		defer closeDB()

		sessions := store.SessionsByRecency()

		// Filter by session ID if specified
		if exportSessionID != "" {
			id, err := resolveSessionID(store, exportSessionID)
			if err != nil {
				return err
			}
			filtered := make([]internal.Session, 0, 1)
			for _, session := range sessions {
				if session.ID == id {
					filtered = append(filtered, session)
					break
				}
			}
			sessions = filtered
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(exportOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for _, session := range sessions {
			transcript, ok := store.Transcript(session.ID)
			if !ok {
				internal.LogWarn("Skipping vanished session %s", session.ID)
				continue
			}

			filename := fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension())
			outPath := filepath.Join(exportOutDir, filename)

			file, err := os.Create(outPath)
			if err != nil {
				internal.LogError("Failed to create file %s: %v", outPath, err)
				continue
			}

			if err := exporter.Export(&transcript, file); err != nil {
				_ = file.Close()
				internal.LogError("Failed to export session %s: %v", session.ID, err)
				continue
			}

			if err := file.Close(); err != nil {
				internal.LogWarn("Failed to close file %s: %v", outPath, err)
				continue
			}
			exported++
		}

		fmt.Printf("Export complete: %d session(s) exported to %s\n", exported, exportOutDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&exportSessionID, "session-id", "", "Export a specific session by ID")
}
