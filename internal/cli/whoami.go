package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newWhoamiCmd creates and returns a new whoami command
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		Long: `Show the profile of the currently authenticated user. If the stored
session has expired and cannot be refreshed, the session is cleared and
the command reports that you are not logged in.`,
		RunE: runWhoami,
	}
}

// runWhoami handles the whoami command execution
func runWhoami(cmd *cobra.Command, args []string) error {
	c, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := c.Hydrate(cmd.Context()); err != nil {
		return fmt.Errorf("could not reach server: %w", err)
	}

	if !c.Session().IsAuthenticated() {
		if err := setAuthenticated(false); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		if jsonOutput {
			printJSON(map[string]interface{}{"authenticated": false})
			return nil
		}
		fmt.Println("Not logged in")
		return nil
	}

	profile := c.Session().Profile()

	if jsonOutput {
		printJSON(map[string]interface{}{
			"authenticated": true,
			"user":          profile,
		})
		return nil
	}

	okLabel.Printf("Logged in as %s\n", profile.Email)
	if profile.FirstName != "" || profile.LastName != "" {
		fmt.Printf("  Name:    %s %s\n", profile.FirstName, profile.LastName)
	}
	if profile.PhoneNumber != "" {
		fmt.Printf("  Phone:   %s\n", profile.PhoneNumber)
	}
	if profile.Address != "" {
		fmt.Printf("  Address: %s\n", profile.Address)
	}
	return nil
}
