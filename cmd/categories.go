// ABOUTME: Category management commands: list, create, rename, delete

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "Manage book categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCategoriesList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCategoriesCreate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var categoriesRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCategoriesRename(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCategoriesDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesRenameCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(ctx context.Context, w io.Writer) int {
	client, _ := newSession()

	categories, err := client.ListCategories(ctx)
	if err != nil {
		return printCmdError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(categories, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories.")
		return 0
	}
	for _, c := range categories {
		fmt.Fprintf(w, "%-6d %-30s %d book(s)\n", c.ID, c.Name, c.BooksCount)
	}
	return 0
}

func runCategoriesCreate(ctx context.Context, w io.Writer, name string) int {
	client, _ := newSession()

	category, err := client.CreateCategory(ctx, name)
	if err != nil {
		return printCmdError(w, err)
	}

	fmt.Fprintf(w, "Created %q (id %d)\n", category.Name, category.ID)
	return 0
}

func runCategoriesRename(ctx context.Context, w io.Writer, idArg, name string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid category ID %q\n", idArg)
		return 1
	}

	client, _ := newSession()
	category, err := client.UpdateCategory(ctx, id, name)
	if err != nil {
		return printCmdError(w, err)
	}

	fmt.Fprintf(w, "Renamed to %q\n", category.Name)
	return 0
}

func runCategoriesDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid category ID %q\n", idArg)
		return 1
	}

	client, _ := newSession()
	if err := client.DeleteCategory(ctx, id); err != nil {
		return printCmdError(w, err)
	}

	fmt.Fprintf(w, "Deleted category %d\n", id)
	return 0
}
