// ABOUTME: Book moderation commands: list, approve, reject
// ABOUTME: Designed for scripting bulk moderation outside the TUI

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
)

var (
	booksStatus   string
	booksCategory int
	booksSearch   string
	booksPage     int
	booksPerPage  int
	rejectReason  string
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage shared books",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books with optional filters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var booksApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksApprove(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var booksRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksReject(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	booksListCmd.Flags().StringVar(&booksStatus, "status", "", "Filter by status (pending, approved, rejected)")
	booksListCmd.Flags().IntVar(&booksCategory, "category", 0, "Filter by category ID")
	booksListCmd.Flags().StringVar(&booksSearch, "search", "", "Filter by title substring")
	booksListCmd.Flags().IntVar(&booksPage, "page", 1, "Page number")
	booksListCmd.Flags().IntVar(&booksPerPage, "per-page", 0, "Results per page")
	booksRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "Reason shown to the submitter")

	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksApproveCmd)
	booksCmd.AddCommand(booksRejectCmd)
	rootCmd.AddCommand(booksCmd)
}

// runBooksList fetches one page and returns an exit code
func runBooksList(ctx context.Context, w io.Writer) int {
	client, _ := newSession()

	page, err := client.ListBooks(ctx, api.BookFilters{
		Status:     api.BookStatus(booksStatus),
		CategoryID: booksCategory,
		Search:     booksSearch,
		Page:       booksPage,
		PerPage:    booksPerPage,
	})
	if err != nil {
		return printCmdError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(page.Data) == 0 {
		fmt.Fprintln(w, "No books match.")
		return 0
	}

	for _, book := range page.Data {
		category := "-"
		if book.Category != nil {
			category = book.Category.Name
		}
		fmt.Fprintf(w, "%-6d %-10s %-30s %-20s %s\n",
			book.ID, book.Status, truncate(book.Title, 30), truncate(book.Author, 20), category)
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d total)\n", page.CurrentPage, page.LastPage, page.Total)
	return 0
}

func runBooksApprove(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book ID %q\n", idArg)
		return 1
	}

	client, _ := newSession()
	book, err := client.ApproveBook(ctx, id)
	if err != nil {
		return printCmdError(w, err)
	}

	fmt.Fprintf(w, "Approved %q\n", book.Title)
	return 0
}

func runBooksReject(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book ID %q\n", idArg)
		return 1
	}

	client, _ := newSession()
	book, err := client.RejectBook(ctx, id, strings.TrimSpace(rejectReason))
	if err != nil {
		return printCmdError(w, err)
	}

	fmt.Fprintf(w, "Rejected %q\n", book.Title)
	return 0
}

// printCmdError reports an API failure; auth problems exit 2, the rest 1
func printCmdError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	if api.IsKind(err, api.KindUnauthorized) || api.IsKind(err, api.KindForbidden) {
		return 2
	}
	return 1
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
