package cli

import (
	"github.com/google/uuid"

	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

var (
	userFlag string
	orgFlag  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user ID for the backend session (defaults to a persisted install ID)")
	rootCmd.PersistentFlags().StringVar(&orgFlag, "org", "", "organisation ID for the backend session")
}

// identity resolves the (user, org) pair for backend sessions. Flags
// win; otherwise IDs are generated once and persisted so reconnects
// reach the same backend session.
func identity() (userID, orgID string) {
	userID = userFlag
	orgID = orgFlag

	if userID == "" && prefStore != nil {
		userID = prefStore.GetString(driven.PrefUserID)
		if userID == "" {
			userID = uuid.NewString()
			if err := prefStore.Set(driven.PrefUserID, userID); err != nil {
				logger.Warn("Could not persist user ID: %v", err)
			}
		}
	}
	if orgID == "" && prefStore != nil {
		orgID = prefStore.GetString(driven.PrefOrgID)
		if orgID == "" {
			orgID = uuid.NewString()
			if err := prefStore.Set(driven.PrefOrgID, orgID); err != nil {
				logger.Warn("Could not persist org ID: %v", err)
			}
		}
	}
	return userID, orgID
}
