package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/auth"
	"levelup/internal/storage"
	"levelup/internal/ui"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}

	cmd.AddCommand(newTokenMintCmd(), newTokenRevokeCmd())

	return cmd
}

func newTokenMintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint [user]",
		Short: "Mint a token; prints the plaintext value once",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, cfg, cleanup, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			user := cfg.User
			if len(args) == 1 {
				user = args[0]
			}

			svc := auth.NewService(storage.NewTokenRepo(db))
			token, err := svc.Mint(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Token for %s (store it now, it is not shown again):\n%s\n", ui.IconShield, ui.Key.Render(user), token)
			return nil
		},
	}

	return cmd
}

func newTokenRevokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke <token>",
		Short: "Revoke a token by its plaintext value",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("token is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, _, cleanup, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := auth.NewService(storage.NewTokenRepo(db))
			if err := svc.Revoke(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token revoked.")
			return nil
		},
	}

	return cmd
}
