package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newDoCmd() *cobra.Command {
	var reflection string

	cmd := &cobra.Command{
		Use:   "do <quest-id>",
		Short: "Complete a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteQuest(ctx, cfg.User, args[0], reflection)
			if err != nil {
				return err
			}

			if res.AlreadyCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already completed; nothing changed."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconDone, "Quest complete"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("+%d (base %d, x%.1f streak, x%.2f penalty)",
				res.EffectiveXP, res.BaseXP, res.MultiplierApplied, res.PenaltyApplied)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stat", fmt.Sprintf("%s lvl %d → %d", res.Stat, res.StatLevelBefore, res.StatLevelAfter)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s Player level %d → %d\n", ui.BadgeLevelUp, ui.IconTrophy, res.PlayerLevelBefore, res.PlayerLevelAfter)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Today", fmt.Sprintf("%d/%d (%.0f%%)", res.QuestsCompleted, res.QuestsTotal, res.CompletionPct)))
			if res.StreakAdvanced {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Streak: %s\n", ui.IconFlame, ui.StreakText(res.CurrentStreak))
			} else if res.StreakMaintained {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Streak safe for today."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reflection, "reflection", "r", "", "optional note stored with the completion")

	return cmd
}
