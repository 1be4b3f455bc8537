package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stockd/stockd/client"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockctl [command] [flags]",
	Short: "stockctl - A command line interface for the stockd inventory server",
	Long: `stockctl is a command line interface for the stockd inventory server.
It signs in with email and password, keeps the session cookies in a local
jar, and silently refreshes an expired session before retrying a request.

Examples:
  # Log in
  stockctl login --email jane@example.com --passwd secret

  # List all products
  stockctl product list

  # Create a product
  stockctl product create --name "Widget" --price 19.99 --quantity 5`,
	PersistentPreRun: preRunHandlePersistents,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newProductCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// preRunHandlePersistents loads configuration before command execution
func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	if configFile == "" {
		var err error
		configFile, err = GetDefaultConfigPath()
		if err != nil {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := LoadConfig(configFile); err != nil {
		errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newAPIClient builds a client over the persisted cookie jar. When the
// session terminates irrecoverably the persisted authenticated flag is
// dropped, so the next invocation hydrates to a clean logged-out state
// instead of redirect-looping against the server.
func newAPIClient() (*client.Client, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	jar, err := NewFileJar(cookieJarPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar: %w", err)
	}

	return client.New(cfg, client.ClientOptions{
		Jar: jar,
		OnSessionExpired: func() {
			if err := setAuthenticated(false); err != nil {
				errorLabel.Fprintf(os.Stderr, "Warning: failed to update config: %v\n", err)
			}
		},
	})
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
