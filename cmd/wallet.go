package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"airvend/internal/session"
	api "airvend/pkg/api/vend"
	vendclient "airvend/pkg/clients/vend"
)

func newWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Show wallet balance, statistics and recent activity",
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

			overview, err := fetchWalletOverview(ctx, cli, store)
			if err != nil {
				return err
			}

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(overview)
			}
			renderWalletOverview(cmd.OutOrStdout(), overview)
			return nil
		},
	}
}

type walletOverview struct {
	Wallet  *api.WalletSnapshot   `json:"wallet"`
	History *api.TransactionsPage `json:"transactions"`
}

// fetchWalletOverview loads the wallet snapshot and the first history page
// concurrently, then propagates the fetched balance into the session's user
// record so the persisted copy tracks the server.
func fetchWalletOverview(ctx context.Context, cli *vendclient.Client, store *session.Store) (*walletOverview, error) {
	var overview walletOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot, err := cli.Wallet(gctx)
		if err != nil {
			return err
		}
		overview.Wallet = snapshot
		return nil
	})
	g.Go(func() error {
		page, err := cli.Transactions(gctx, 1, 10)
		if err != nil {
			return err
		}
		overview.History = page
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, mutationError(err, "Failed to load wallet data")
	}

	if err := store.SetWalletBalance(overview.Wallet.Balance); err != nil {
		return nil, err
	}
	return &overview, nil
}

func renderWalletOverview(out io.Writer, overview *walletOverview) {
	snapshot := overview.Wallet

	fmt.Fprint(out, "Wallet balance: ")
	accentColor.Fprintln(out, formatNaira(snapshot.Balance))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total received:     %s\n", formatNaira(snapshot.Statistics.TotalReceived))
	fmt.Fprintf(out, "Total spent:        %s\n", formatNaira(snapshot.Statistics.TotalSpent))
	fmt.Fprintf(out, "Total transactions: %d\n", snapshot.Statistics.TotalTransactions)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent transactions:")
	renderTransactions(out, overview.History.Transactions)
}
