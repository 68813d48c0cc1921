// ABOUTME: Whoami command that re-validates the persisted session
// ABOUTME: Exit code 2 means no valid admin session exists

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in administrator",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami checks the session against the backend and returns an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, sess := newSession()
	if !sess.CheckAuth(ctx) {
		fmt.Fprintln(w, "Not signed in.")
		return 2
	}

	user := sess.User()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return 0
}
