package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"airvend/internal/session"
	vendclient "airvend/pkg/clients/vend"
	"airvend/pkg/validation"
)

func newTopUpCmd() *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "topup",
		Short: "Add funds to your wallet",
		Long: fmt.Sprintf(`Add funds to your wallet balance.

Amounts are whole naira: minimum ₦%d, maximum ₦%d.`,
			validation.MinTopUpAmount, validation.MaxTopUpAmount),
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

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			return runTopUp(ctx, cli, store, cmd.OutOrStdout(), amount)
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "amount to add in naira")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// runTopUp validates the amount locally, submits the credit, applies the
// server-confirmed balance immediately, then re-fetches the wallet snapshot.
// The re-fetch is the reconciliation step: its result wins if it disagrees
// with the optimistic update.
func runTopUp(ctx context.Context, cli *vendclient.Client, store *session.Store, out io.Writer, amount int64) error {
	if err := validation.ValidateTopUp(amount); err != nil {
		return err
	}

	result, err := cli.AddFunds(ctx, amount)
	if err != nil {
		return mutationError(err, "Top up failed. Please try again.")
	}

	if err := store.SetWalletBalance(result.NewBalance); err != nil {
		return err
	}
	successColor.Fprintf(out, "Top-up successful! New balance: %s\n", formatNaira(result.NewBalance))

	reconcileBalance(ctx, cli, store, out)
	return nil
}

// reconcileBalance re-fetches the wallet snapshot after a mutation and lets
// the server state win over the optimistic update. A failed re-fetch does not
// fail the already-confirmed mutation.
func reconcileBalance(ctx context.Context, cli *vendclient.Client, store *session.Store, out io.Writer) {
	snapshot, err := cli.Wallet(ctx)
	if err != nil {
		if log != nil {
			log.WithError(err).Warn("Failed to refresh wallet after mutation")
		}
		return
	}
	if err := store.SetWalletBalance(snapshot.Balance); err != nil && log != nil {
		log.WithError(err).Warn("Failed to persist refreshed balance")
	}
}
