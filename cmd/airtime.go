package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"airvend/internal/session"
	api "airvend/pkg/api/vend"
	vendclient "airvend/pkg/clients/vend"
	"airvend/pkg/validation"
)

func newAirtimeCmd() *cobra.Command {
	var phone string
	var network string
	var amount int64

	cmd := &cobra.Command{
		Use:   "airtime",
		Short: "Buy prepaid airtime from your wallet",
		Long: fmt.Sprintf(`Buy prepaid airtime for any phone number, funded from your wallet.

Supported networks: %s.
Amounts are whole naira: minimum ₦%d, maximum ₦%d, and no more than your
current balance.`,
			strings.Join(validation.Networks, ", "),
			validation.MinPurchaseAmount, validation.MaxPurchaseAmount),
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

			return runPurchase(ctx, cli, store, cmd.OutOrStdout(), phone, network, amount)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number to receive airtime")
	cmd.Flags().StringVar(&network, "network", "", "network provider ("+strings.Join(validation.Networks, "|")+")")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in naira")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("network")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// runPurchase validates the request against the displayed balance, submits
// it, applies the confirmed balance, then reconciles with a fresh snapshot.
// The balance check is advisory: a server rejection is authoritative even
// when the local check passed on stale data.
func runPurchase(ctx context.Context, cli *vendclient.Client, store *session.Store, out io.Writer, phone, network string, amount int64) error {
	snap := store.Snapshot()
	balance := int64(0)
	if snap.User != nil {
		balance = snap.User.Wallet.Balance
	}

	if err := validation.ValidatePurchase(phone, network, amount, balance); err != nil {
		return err
	}

	result, err := cli.PurchaseAirtime(ctx, api.PurchaseRequest{
		PhoneNumber: strings.TrimSpace(phone),
		Amount:      amount,
		Network:     validation.NormalizeNetwork(network),
	})
	if err != nil {
		return mutationError(err, "Purchase failed. Please try again.")
	}

	if err := store.SetWalletBalance(result.NewBalance); err != nil {
		return err
	}
	successColor.Fprintf(out, "Airtime purchase successful! %s sent to %s\n", formatNaira(amount), strings.TrimSpace(phone))
	fmt.Fprintf(out, "New balance: %s\n", formatNaira(result.NewBalance))

	reconcileBalance(ctx, cli, store, out)
	return nil
}
