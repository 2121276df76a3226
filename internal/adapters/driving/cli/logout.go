package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Disconnect from HubSpot",
	Long: `Ends the backend session and clears local credentials. Local state
is cleared even if the backend cannot be reached.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	userID, orgID := identity()

	if err := sessionService.Disconnect(cmd.Context(), userID, orgID); err != nil {
		cmd.Println("Disconnected locally, but the backend session may still be open:", err)
		return nil
	}

	cmd.Println("Disconnected.")
	return nil
}
