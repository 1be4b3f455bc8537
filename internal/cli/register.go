package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockd/stockd/client"
)

// newRegisterCmd creates and returns a new register command
func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long: `Register a new account on the stockd server. Registration does not log
you in; run "stockctl login" afterwards.

Example:
  stockctl register --email jane@example.com --passwd Secret123 --first-name Jane`,
		RunE: runRegister,
	}

	cmd.Flags().String("email", "", "Email address for the new account")
	cmd.Flags().String("passwd", "", "Password for the new account")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("address", "", "Postal address")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("passwd")
	return cmd
}

// runRegister handles the register command execution
func runRegister(cmd *cobra.Command, args []string) error {
	params := client.RegisterParams{}
	params.Email, _ = cmd.Flags().GetString("email")
	params.Password, _ = cmd.Flags().GetString("passwd")
	params.FirstName, _ = cmd.Flags().GetString("first-name")
	params.LastName, _ = cmd.Flags().GetString("last-name")
	params.PhoneNumber, _ = cmd.Flags().GetString("phone")
	params.Address, _ = cmd.Flags().GetString("address")

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := c.Register(cmd.Context(), params); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"status": "success"})
		return nil
	}

	okLabel.Printf("Account created for %s\n", params.Email)
	return nil
}
