package cmd

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwinters-dev/chatstate/internal"
	"github.com/spf13/cobra"
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
	Short: "Verify the persisted state database and snapshot integrity",
	Long: `Check the health of the persisted application state by verifying:
  • State database accessibility
  • Snapshot presence and parseability
  • Store invariants on the persisted record (tab references, capacity bounds)

This command is useful for debugging a state database that no longer loads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("Chat State Health Check"))
		fmt.Println()

		// Step 1: open the database
		fmt.Println(infoStyle.Render("Step 1: Opening state database..."))
		db, err := openArchive()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to open state database:"), err)
			return fmt.Errorf("health check failed: database unavailable")
		}
		defer func() { _ = db.Close() }()
		fmt.Println(successStyle.Render("✓ State database opened"))
		fmt.Println()

		// Step 2: read the snapshot slot
		fmt.Println(infoStyle.Render("Step 2: Reading snapshot slot..."))
		kv := internal.NewKV(db)
		raw, ok, err := kv.Get(internal.StateKey)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to read snapshot:"), err)
			return fmt.Errorf("health check failed: snapshot unreadable")
		}
		if !ok {
			fmt.Println(warningStyle.Render("⚠ No snapshot stored yet"))
			fmt.Println("   The application has not persisted any state; a fresh start will use defaults.")
			return nil
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Snapshot present (%d bytes)", len(raw))))
		fmt.Println()

		// Step 3: parse the snapshot
		fmt.Println(infoStyle.Render("Step 3: Parsing snapshot..."))
		var snap internal.PersistedState
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			fmt.Println(warningStyle.Render("⚠ Snapshot does not parse as a whole:"), err)
			fmt.Println("   Rehydration will fall back to defaults field by field.")
			return nil
		}
		fmt.Println(successStyle.Render("✓ Snapshot parses"))
		if verbose {
			fmt.Printf("   Version: %d\n", snap.Version)
			fmt.Printf("   Sessions: %d, histories: %d, tabs: %d\n",
				len(snap.Sessions), len(snap.ChatHistory), len(snap.Tabs))
		}
		fmt.Println()

		// Step 4: check store invariants on the persisted record
		fmt.Println(infoStyle.Render("Step 4: Checking invariants..."))
		problems := checkSnapshotInvariants(&snap)
		if len(problems) == 0 {
			fmt.Println(successStyle.Render("✓ All invariants hold"))
		} else {
			for _, p := range problems {
				fmt.Println(warningStyle.Render("⚠ " + p))
			}
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("Summary"))
		fmt.Println()
		if len(problems) == 0 {
			fmt.Println(successStyle.Render("✓ Health check passed"))
			fmt.Println(successStyle.Render(fmt.Sprintf("   • %d session(s), %d persisted history(ies)", len(snap.Sessions), len(snap.ChatHistory))))
			return nil
		}
		fmt.Println(warningStyle.Render(fmt.Sprintf("⚠ Health check found %d issue(s)", len(problems))))
		fmt.Println("   Rehydration tolerates these, but the writing application may be misbehaving.")
		return nil
	},
}

// checkSnapshotInvariants validates the persisted record against the store's
// capacity bounds and reference invariants.
func checkSnapshotInvariants(snap *internal.PersistedState) []string {
	var problems []string

	known := make(map[string]bool, len(snap.Sessions))
	seen := make(map[string]bool, len(snap.Sessions))
	for _, session := range snap.Sessions {
		if seen[session.ID] {
			problems = append(problems, fmt.Sprintf("duplicate session id %s", session.ID))
		}
		seen[session.ID] = true
		known[session.ID] = true
		if utf8.RuneCountInString(session.Title) > internal.MaxTitleLength {
			problems = append(problems, fmt.Sprintf("session %s title exceeds %d characters", session.ID, internal.MaxTitleLength))
		}
	}

	if len(snap.Sessions) > internal.MaxSessions {
		problems = append(problems, fmt.Sprintf("registry holds %d sessions (limit %d)", len(snap.Sessions), internal.MaxSessions))
	}
	if len(snap.ChatHistory) > internal.MaxPersistedHistories {
		problems = append(problems, fmt.Sprintf("snapshot holds %d histories (limit %d)", len(snap.ChatHistory), internal.MaxPersistedHistories))
	}

	for id, msgs := range snap.ChatHistory {
		if len(msgs) > internal.MaxMessagesPerSession {
			problems = append(problems, fmt.Sprintf("history %s holds %d messages (limit %d)", id, len(msgs), internal.MaxMessagesPerSession))
		}
		for i, msg := range msgs {
			if utf8.RuneCountInString(msg.Content) > internal.MaxContentLength {
				problems = append(problems, fmt.Sprintf("history %s message %d exceeds %d characters", id, i, internal.MaxContentLength))
				break
			}
		}
	}

	sessionsWithTabs := make(map[string]bool, len(snap.Tabs))
	for _, tab := range snap.Tabs {
		if !known[tab.SessionID] {
			problems = append(problems, fmt.Sprintf("tab %s references unknown session %s", tab.ID, tab.SessionID))
		}
		if sessionsWithTabs[tab.SessionID] {
			problems = append(problems, fmt.Sprintf("session %s has more than one tab", tab.SessionID))
		}
		sessionsWithTabs[tab.SessionID] = true
	}

	if snap.ActiveTabID != "" {
		found := false
		for _, tab := range snap.Tabs {
			if tab.ID == snap.ActiveTabID {
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, fmt.Sprintf("active tab %s is not in the tab list", snap.ActiveTabID))
		}
	}

	if snap.CurrentSessionID != "" && !known[snap.CurrentSessionID] {
		problems = append(problems, fmt.Sprintf("current session %s is not in the registry", snap.CurrentSessionID))
	}

	return problems
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
