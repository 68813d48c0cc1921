// ABOUTME: Login command for scripted authentication
// ABOUTME: Prompts for the password without echo unless provided via stdin

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Abdooo2235/bookreader-admin/internal/session"
)

var loginPasswordStdin bool

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in with an administrator account",
	Long: `Authenticate against the backend and persist the session for
subsequent commands. Only accounts with the admin role are accepted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from standard input")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the sign-in and returns an exit code
func runLogin(ctx context.Context, w io.Writer, email string) int {
	password, err := readPassword()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	_, sess := newSession()
	if err := sess.Login(ctx, email, password); err != nil {
		if errors.Is(err, session.ErrAccessDenied) {
			fmt.Fprintln(w, "Error: this account does not have administrator access")
			return 2
		}
		fmt.Fprintf(w, "Error: %s\n", sess.LastError())
		return 2
	}

	user := sess.User()
	fmt.Fprintf(w, "Signed in as %s <%s>\n", user.Name, user.Email)
	return 0
}

// readPassword reads from stdin, without echo when attached to a terminal
func readPassword() (string, error) {
	if loginPasswordStdin {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
