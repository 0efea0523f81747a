package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	api "airvend/pkg/api/vend"
)

func newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the AirVend platform",
		Long: `Authenticate with your AirVend account email and password.

The session token and account record are stored in ~/.airvend/ and reused
until you log out or the platform rejects the session.

Examples:
  airvend login                      # Prompt for email and password
  airvend login --email you@mail.com # Prompt for password only
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newSessionStore()
			if err != nil {
				return err
			}

			if snap := store.Snapshot(); snap.IsAuthenticated {
				fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s.\n", snap.User.Email)
				fmt.Fprint(cmd.OutOrStdout(), "Replace existing session? [y/N]: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				confirm, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(confirm)) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Keeping existing session.")
					return nil
				}
			}

			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, _ := reader.ReadString('\n')
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return fmt.Errorf("no email provided")
			}

			password, err := promptPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return fmt.Errorf("no password provided")
			}

			cli, err := newPlatformClient(store, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store.LoginStart()
			resp, err := cli.Login(ctx, api.LoginRequest{Email: email, Password: password})
			if err != nil {
				loginErr := mutationError(err, "Login failed")
				store.LoginFailure(loginErr.Error())
				return loginErr
			}

			user := resp.Data
			if err := store.LoginSuccess(resp.Token, &user); err != nil {
				return err
			}

			successColor.Fprintln(cmd.OutOrStdout(), "Welcome back! Login successful")
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet balance: %s\n", formatNaira(user.Wallet.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

// promptPassword reads a password with terminal echo disabled, falling back to
// plain input when no terminal is available (pipes, tests).
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout()) // newline after hidden input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(pw)), nil
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line), nil
}
