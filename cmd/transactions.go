package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"airvend/pkg/models"
)

func newTransactionsCmd() *cobra.Command {
	var page int
	var limit int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List wallet transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			if limit < 1 || limit > 100 {
				return fmt.Errorf("--limit must be between 1 and 100")
			}

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

			history, err := cli.Transactions(ctx, page, limit)
			if err != nil {
				return mutationError(err, "Failed to load transactions")
			}

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(history)
			}

			renderTransactions(cmd.OutOrStdout(), history.Transactions)
			if history.Pages > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d total)\n", history.Page, history.Pages, history.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "entries per page")

	return cmd
}

func renderTransactions(out io.Writer, transactions []models.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	for _, tx := range transactions {
		sign := "-"
		c := errorColor
		if tx.IsCredit() {
			sign = "+"
			c = successColor
		}
		c.Fprintf(out, "  %s%-10s", sign, formatNaira(tx.Amount))
		fmt.Fprintf(out, " %-40s balance %s  %s\n", tx.Description, formatNaira(tx.BalanceAfter), formatDate(tx.CreatedAt))
	}
}
