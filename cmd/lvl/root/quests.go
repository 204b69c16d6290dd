package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/storage"
	"levelup/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show today's quests, generating them if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Opportunistic check-in: settle yesterday before today starts.
			checkin, err := svc.EvaluateMissedDay(ctx, cfg.User)
			if err != nil {
				return err
			}
			printCheckin(cmd, checkin)

			res, err := svc.GenerateDailyQuests(ctx, cfg.User)
			if err != nil {
				return err
			}

			if res.Generated {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "New quests for "+res.Date))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, "Quests for "+res.Date))
			}
			printQuests(cmd, res.Quests)
			return nil
		},
	}

	return cmd
}

func printQuests(cmd *cobra.Command, quests []storage.Quest) {
	done := 0
	for _, q := range quests {
		if q.Completed {
			done++
		}
	}
	for i, q := range quests {
		box := "[ ]"
		if q.Completed {
			box = ui.Good.Render("[x]")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %s %s — %s %s\n",
			i+1, box, q.Title, ui.MandatoryTag(q.Mandatory),
			ui.Key.Render(q.Stat), ui.Muted.Render(fmt.Sprintf("(xp %d)", q.XPReward)))
	}
	pct := engine.CompletionPct(done, len(quests))
	line := fmt.Sprintf("%d/%d complete (%.0f%%)", done, len(quests), pct)
	if engine.DayMaintained(pct) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(line+" — streak safe"))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(line))
	}
}

func printCheckin(cmd *cobra.Command, res *engine.CheckinResult) {
	switch {
	case res.FreezeUsed:
		fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconFreeze+" A streak freeze covered "+res.Date+"."))
	case res.PenaltyApplied:
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.Bad.Render(fmt.Sprintf("%s Missed %s: streak of %d lost, penalty points now %d.", ui.IconSkull, res.Date, res.StreakLost, res.PenaltyPoints)))
	}
}
