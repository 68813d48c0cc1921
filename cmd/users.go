// ABOUTME: Users command listing every platform account

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

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List platform user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(ctx context.Context, w io.Writer) int {
	client, _ := newSession()

	users, err := client.ListUsers(ctx)
	if err != nil {
		return printCmdError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return 0
	}
	for _, u := range users {
		verified := " "
		if u.EmailVerifiedAt != nil {
			verified = "*"
		}
		fmt.Fprintf(w, "%-6d %-8s %s %-24s %s\n", u.ID, u.Role, verified, truncate(u.Name, 24), u.Email)
	}
	fmt.Fprintf(w, "\n%d account(s), * = email verified\n", len(users))
	return 0
}
