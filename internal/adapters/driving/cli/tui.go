package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for hubdeck.

The TUI connects to HubSpot and provides keyboard-driven browsing of
your contacts with live search, filters, sorting, and pagination.

Controls:
  ↑/k, ↓/j - Navigate contacts
  ←/→      - Previous / next page
  /        - Search
  f        - Toggle filters
  s        - Cycle sort field
  Enter    - Open contact
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive UI requires a terminal; use the subcommands for scripting")
	}

	userID, orgID := identity()
	ports := &tui.Ports{
		Session:  sessionService,
		Contacts: contactService,
		Prefs:    prefStore,
		UserID:   userID,
		OrgID:    orgID,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
