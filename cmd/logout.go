package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newSessionStore()
			if err != nil {
				return err
			}
			if !store.Snapshot().IsAuthenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err := store.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			successColor.Fprintln(cmd.OutOrStdout(), "Logged out successfully")
			return nil
		},
	}
}
