package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"airvend/pkg/models"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newSessionStore()
			if err != nil {
				return err
			}
			if _, err := requireSession(store); err != nil {
				return err
			}

			cli, err := newPlatformClient(store, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			user, err := cli.CurrentUser(ctx)
			if err != nil {
				return mutationError(err, "Failed to load account")
			}

			// Refresh the stored record with the server's copy.
			if err := store.UpdateUser(func(u *models.User) { *u = *user }); err != nil && log != nil {
				log.WithError(err).Warn("Failed to refresh stored user")
			}

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(user)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as: %s\n", user.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet balance: %s\n", formatNaira(user.Wallet.Balance))
			if exp, ok := store.TokenExpiry(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Session expires: %s\n", formatDate(exp))
			}
			return nil
		},
	}
}
