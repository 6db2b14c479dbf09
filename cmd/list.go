package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwinters-dev/chatstate/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted sessions",
	Long:  `List all chat sessions found in the persisted state snapshot, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, closeDB, err := loadStore()
		if err != nil {
			return err
		}
		defer closeDB()

		displaySessions(store)
		return nil
	},
}

func displaySessions(store *internal.Store) {
	sessions := store.SessionsByRecency()
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	currentID := store.CurrentSessionID()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Created")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, session := range sessions {
		title := session.Title
		if title == "" {
			title = internal.DefaultSessionTitle
		}
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		if session.ID == currentID {
			title = currentStyle.Render(title + " *")
		} else {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(title)
		}

		msgCount := countStyle.Render(strconv.Itoa(store.MessageCount(session.ID)))
		created := dateStyle.Render(formatRelativeDate(session.CreatedAt))

		// Show short ID (first 8 chars) for readability
		shortID := session.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		id := idStyle.Render(shortID)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, title, msgCount, created)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID) +
		idStyle.Render(") with `chatstate show <id>`"))
}

// formatRelativeDate renders recent dates compactly, older ones as full dates
func formatRelativeDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
