package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newFreezeCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Grant streak-freeze credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.GrantFreeze(ctx, cfg.User, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Streak freezes: %d\n", ui.IconFreeze, p.StreakFreezes)
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of freezes to grant")

	return cmd
}
