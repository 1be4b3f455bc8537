package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the stockd server",
		Long: `Login to the stockd server with email and password.
The server sets the session cookies; they are stored in a local cookie jar
next to the configuration file. No token is ever written to the config.

Example:
  stockctl login --email jane@example.com --passwd mypassword`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "Email address to authenticate with")
	cmd.Flags().String("passwd", "", "Password for authentication")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("passwd")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	passwd, _ := cmd.Flags().GetString("passwd")

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	profile, err := c.Login(cmd.Context(), email, passwd)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := setAuthenticated(true); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"status": "success",
			"user":   profile,
		})
		return nil
	}

	okLabel.Printf("Logged in as %s\n", profile.Email)
	return nil
}
