package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect to HubSpot",
	Long: `Opens the HubSpot authorization page in a browser window and waits
for you to complete the flow. Close the window when HubSpot confirms
the connection; hubdeck then fetches your credentials.`,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	userID, orgID := identity()

	cmd.Println("Opening HubSpot authorization window...")
	cmd.Println("Complete the flow and close the window to continue. Press Ctrl+C to abort.")

	if err := sessionService.Connect(cmd.Context(), userID, orgID); err != nil {
		if errors.Is(err, domain.ErrConnectInProgress) {
			return errors.New("a connection attempt is already in progress")
		}
		return err
	}

	cmd.Println("Connected to HubSpot.")
	return nil
}
