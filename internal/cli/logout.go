package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long: `Logout from the stockd server. The refresh token is revoked server-side
and the session cookies are cleared locally. The local session is cleared
even if the server cannot be reached.`,
		RunE: runLogout,
	}
}

// runLogout handles the logout command execution
func runLogout(cmd *cobra.Command, args []string) error {
	c, err := newAPIClient()
	if err != nil {
		return err
	}

	logoutErr := c.Logout(cmd.Context())

	if err := setAuthenticated(false); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if logoutErr != nil {
		errorLabel.Printf("Server logout failed: %v\n", logoutErr)
		okLabel.Println("Local session cleared")
		return nil
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"status": "success"})
		return nil
	}

	okLabel.Println("Logged out")
	return nil
}
