package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	api "airvend/pkg/api/vend"
)

func newRegisterCmd() *cobra.Command {
	var email string
	var firstName string
	var lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new AirVend account",
		Long: `Create a new AirVend account. New accounts start with a signup bonus
already credited to the wallet, and the CLI is logged in immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newSessionStore()
			if err != nil {
				return err
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
			confirm, err := promptPassword(cmd, "Confirm password: ")
			if err != nil {
				return err
			}
			if confirm != password {
				return fmt.Errorf("passwords do not match")
			}

			cli, err := newPlatformClient(store, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store.LoginStart()
			resp, err := cli.Register(ctx, api.RegisterRequest{
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				regErr := mutationError(err, "Registration failed")
				store.LoginFailure(regErr.Error())
				return regErr
			}

			user := resp.Data
			if err := store.LoginSuccess(resp.Token, &user); err != nil {
				return err
			}

			successColor.Fprintf(cmd.OutOrStdout(), "Welcome! Account created with %s bonus\n", formatNaira(user.Wallet.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	return cmd
}
