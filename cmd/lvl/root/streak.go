package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the streak and the last week of history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			info, err := svc.StreakInfo(ctx, cfg.User)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconFlame, "Streak"))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Key.Render("Current:"), ui.StreakText(info.CurrentStreak),
				ui.Muted.Render(fmt.Sprintf("(xp x%.1f)", info.Multiplier)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Longest", info.LongestStreak))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Penalty points", fmt.Sprintf("%d (xp x%.2f)", info.PenaltyPoints, info.PenaltyReduction)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Freezes", info.StreakFreezes))
			if info.AtRisk {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Today is not maintained yet — streak at risk."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			if len(info.WeeklyHistory) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no history yet)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconCalendar+" Last 7 days"))
			for _, e := range info.WeeklyHistory {
				mark := ui.Bad.Render("✗")
				if e.StreakMaintained {
					mark = ui.Good.Render("✓")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %d/%d (%.0f%%)\n", e.Date, mark, e.QuestsCompleted, e.QuestsTotal, e.CompletionPct)
			}
			return nil
		},
	}

	return cmd
}
