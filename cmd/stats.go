// ABOUTME: Stats command printing the platform dashboard counters
// ABOUTME: Suited to cron checks that alert on moderation backlog

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

	"github.com/Abdooo2235/bookreader-admin/internal/api"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform statistics",
	Long:  `Display aggregate counters: users, books by moderation status, and categories.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats fetches the counters and returns an exit code
func runStats(ctx context.Context, w io.Writer) int {
	client, _ := newSession()

	stats, err := client.GetDashboardStats(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if api.IsKind(err, api.KindUnauthorized) || api.IsKind(err, api.KindForbidden) {
			return 2
		}
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, `Users:       %d
Books:       %d
  Approved:  %d
  Pending:   %d
  Rejected:  %d
Categories:  %d
`,
		stats.TotalUsers,
		stats.TotalBooks,
		stats.ApprovedBooks,
		stats.PendingBooks,
		stats.RejectedBooks,
		stats.TotalCategories)
	return 0
}
