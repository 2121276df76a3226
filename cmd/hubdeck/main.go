// Command hubdeck is a terminal client for HubSpot contacts.
package main

import (
	"fmt"
	"os"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driven/api"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driven/browser"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driven/config/file"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/cli"
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/services"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

func main() {
	// Driven adapters.
	prefs, err := file.NewPrefStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open preferences: %v\n", err)
		os.Exit(1)
	}
	defer prefs.Close()

	// Pick up edits to the preference file while running.
	if err := prefs.Watch(func() {
		logger.Debug("Preferences reloaded from %s", prefs.Path())
	}); err != nil {
		logger.Warn("Preference watching unavailable: %v", err)
	}

	client := api.NewClient(api.ResolveBaseURL(nil), nil)
	opener := browser.NewOpener()
	store := memory.NewContactStore()

	// Core services.
	session := services.NewConnectionService(client, opener)
	session.OnStateChange(func(state domain.ConnectionState) {
		logger.Debug("Connection state: %s", state)
	})
	contacts := services.NewContactService(client, store, session)

	// Driving adapter.
	cli.SetServices(session, contacts, prefs)
	cli.Execute()
}
