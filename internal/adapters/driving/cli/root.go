// Package cli implements the hubdeck command-line interface using cobra.
// Services are injected by main via SetServices before Execute runs.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Commands check for nil and fail with a clear
// message when main has not wired them.
var (
	sessionService driving.SessionService
	contactService driving.ContactService
	prefStore      driven.PrefStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hubdeck",
	Short: "HubSpot contact manager for the terminal",
	Long: `Hubdeck connects to your HubSpot account and lets you browse,
search, and manage contacts from the terminal.

Run without arguments to launch the interactive UI, or use the
subcommands for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the application services into the CLI commands.
func SetServices(session driving.SessionService, contacts driving.ContactService, prefs driven.PrefStore) {
	sessionService = session
	contactService = contacts
	prefStore = prefs
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
