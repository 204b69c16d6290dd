package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newRedeemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Trade streak consistency for one penalty point",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.RedeemPenalty(ctx, cfg.User)
			if err != nil {
				return err
			}
			if !res.Redeemed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf(
					"Nothing redeemed: needs a %d-day streak and at least one penalty point (currently %d).",
					engine.RedeemStreakDays, res.PenaltyPoints)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Penalty point redeemed — %d remaining.\n", ui.Good.Render(ui.IconShield), res.PenaltyPoints)
			return nil
		},
	}

	return cmd
}
