package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Settle yesterday: consume a freeze or take the penalty",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.EvaluateMissedDay(ctx, cfg.User)
			if err != nil {
				return err
			}
			printCheckin(cmd, res)
			if !res.FreezeUsed && !res.PenaltyApplied {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Nothing to settle for "+res.Date+"."))
			}
			return nil
		},
	}

	return cmd
}
