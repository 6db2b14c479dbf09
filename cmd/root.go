package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mwinters-dev/chatstate/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatstate",
	Short: "Inspect and export persisted chat application state",
	Long: `An offline inspector for the chat application's persisted state.

The application stores its sessions, chat histories, and view flags as a
JSON snapshot in a single key-value slot. This tool reads that slot to
list sessions, display transcripts, export them in various formats, and
verify that the persisted data still honors the store's invariants.

Quick Start:
  chatstate list                    # List persisted sessions
  chatstate show <session-id>       # View a session's transcript
  chatstate export --format md      # Export transcripts as Markdown
  chatstate healthcheck             # Verify snapshot integrity`,
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
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Custom state database location")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openArchive opens the state database from --db or the default location.
func openArchive() (*sql.DB, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = internal.DefaultArchivePath()
		if err != nil {
			return nil, err
		}
	}

	internal.LogDebug("Opening state database at %s", path)
	db, err := internal.OpenArchive(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return db, nil
}

// loadStore opens the archive and hydrates a store from its snapshot.
// The returned close function releases the database.
func loadStore() (*internal.Store, *internal.KV, func(), error) {
	db, err := openArchive()
	if err != nil {
		return nil, nil, nil, err
	}

	kv := internal.NewKV(db)
	store := internal.NewPersistedStore(internal.NewPersister(kv))
	return store, kv, func() { _ = db.Close() }, nil
}
