package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwinters-dev/chatstate/internal"
	"github.com/spf13/cobra"
)

var showLimit int

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	systemMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the transcript of a specific session",
	Long:  `Display the messages of one persisted chat session. A unique id prefix is accepted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, closeDB, err := loadStore()
		if err != nil {
			return err
		}
		defer closeDB()

		sessionID, err := resolveSessionID(store, args[0])
		if err != nil {
			return err
		}

		transcript, ok := store.Transcript(sessionID)
		if !ok {
			return fmt.Errorf("session not found: %s (use 'chatstate list' to see available sessions)", args[0])
		}

		displayTranscript(&transcript)
		return nil
	},
}

// resolveSessionID matches an exact session id or a unique prefix.
func resolveSessionID(store *internal.Store, query string) (string, error) {
	sessions := store.SessionsByRecency()

	var matches []string
	for _, session := range sessions {
		if session.ID == query {
			return session.ID, nil
		}
		if strings.HasPrefix(session.ID, query) {
			matches = append(matches, session.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session not found: %s (use 'chatstate list' to see available sessions)", query)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous session id %s: matches %d sessions", query, len(matches))
	}
}

func displayTranscript(t *internal.Transcript) {
	fmt.Println(sessionHeaderStyle.Render(t.Session.Title))

	meta := fmt.Sprintf("ID: %s", t.Session.ID)
	if !t.Session.CreatedAt.IsZero() {
		meta += fmt.Sprintf("  •  Created: %s", t.Session.CreatedAt.Format("2006-01-02 15:04"))
	}
	meta += fmt.Sprintf("  •  %d message(s)", len(t.Messages))
	fmt.Println(sessionMetaStyle.Render(meta))

	messages := t.Messages
	if showLimit > 0 && len(messages) > showLimit {
		skipped := len(messages) - showLimit
		messages = messages[skipped:]
		fmt.Println(timestampStyle.Render(fmt.Sprintf("... %d earlier message(s) hidden (--limit %d)", skipped, showLimit)))
		fmt.Println()
	}

	for _, msg := range messages {
		label := string(msg.Role)
		var style lipgloss.Style
		switch msg.Role {
		case internal.RoleUser:
			style = userMessageStyle
		case internal.RoleAssistant:
			style = assistantMessageStyle
		default:
			style = systemMessageStyle
		}

		header := style.Render(label)
		if !msg.Timestamp.IsZero() {
			header += " " + timestampStyle.Render(msg.Timestamp.Format(time.RFC3339))
		}
		if msg.Model != "" {
			header += " " + timestampStyle.Render("["+msg.Model+"]")
		}

		fmt.Println(header)
		fmt.Println(messageContentStyle.Render(msg.Content))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Show only the last N messages (0 = all)")
}
