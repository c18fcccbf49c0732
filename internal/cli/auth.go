package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	mentorsphere "github.com/mentorsphere/mentorsphere-go"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		result, err := client.Login(cmd.Context(), args[0], password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", result.User.Name, result.User.Role)
		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard: %s\n", result.RedirectTo)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("clearing local session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		sess := client.Session()
		if !sess.Authenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", sess.User.Name, sess.User.Email, sess.Role)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Revalidate the cached user against the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		user, err := client.RefreshUser(cmd.Context())
		if err != nil {
			if errors.Is(err, mentorsphere.ErrUnauthorized) {
				fmt.Fprintln(cmd.OutOrStdout(), "Session expired; sign in again.")
				return nil
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

// readPassword prompts on a TTY, falls back to the --password flag for
// scripted use.
func readPassword(cmd *cobra.Command) (string, error) {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, refreshCmd)
}
