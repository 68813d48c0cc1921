// ABOUTME: Root command for the bookreader-admin CLI
// ABOUTME: Handles global flags, env config, and shared client wiring

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/config"
	"github.com/Abdooo2235/bookreader-admin/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command; running it bare launches the TUI
var rootCmd = &cobra.Command{
	Use:   "bookreader-admin",
	Short: "Admin console for the Book Reader platform",
	Long: `bookreader-admin is the administration console for the Book Reader
book-sharing platform. Run it without arguments for the interactive
terminal UI, or use subcommands for scripting and CI.

Environment Variables:
  BOOKREADER_API_URL  Backend API URL (default: http://localhost:8000/api)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

// Execute runs the root command
func Execute() error {
	// A .env next to the binary is a dev convenience, never a requirement
	_ = config.LoadEnv()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BOOKREADER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	return config.APIBaseURL(apiURL)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession builds the shared client plus the persisted session store
func newSession() (*api.Client, *session.Store) {
	client := api.New(GetAPIURL())
	sess := session.New(config.DefaultConfigDir(), client)
	return client, sess
}
