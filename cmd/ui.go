// ABOUTME: Launches the interactive terminal UI
// ABOUTME: Same entry as the bare root command, kept addressable for scripts

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Abdooo2235/bookreader-admin/internal/config"
	"github.com/Abdooo2235/bookreader-admin/internal/debuglog"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
	"github.com/Abdooo2235/bookreader-admin/internal/theme"
	"github.com/Abdooo2235/bookreader-admin/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive admin console",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// runUI wires the full stack and blocks until the TUI exits
func runUI() error {
	configDir := config.DefaultConfigDir()
	if err := debuglog.Init(configDir); err == nil {
		defer debuglog.Close()
	}

	client, sess := newSession()
	cache := fetch.New()
	themes := theme.NewStore(configDir)

	return tui.Run(client, sess, cache, themes)
}
