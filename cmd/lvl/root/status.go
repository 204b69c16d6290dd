package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

var statIcons = map[engine.Stat]string{
	engine.StatStrength:     "💪",
	engine.StatAgility:      "🏃",
	engine.StatVitality:     "❤️",
	engine.StatIntelligence: "🧠",
	engine.StatDiscipline:   "🎯",
	engine.StatCharisma:     "🗣️",
	engine.StatWealth:       "💰",
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, stats, streak, and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx, cfg.User)
			if err != nil {
				return err
			}
			st, err := svc.Stats(ctx, cfg.User)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Status — "+p.UserID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.PlayerLevel))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP", p.TotalXP))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Key.Render("Streak:"), ui.IconFlame, ui.StreakText(p.CurrentStreak))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Longest streak", p.LongestStreak))
			if p.PenaltyPoints > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d %s\n", ui.Key.Render("Penalty points:"), ui.IconSkull, p.PenaltyPoints,
					ui.Muted.Render(fmt.Sprintf("(xp x%.2f)", engine.PenaltyReduction(p.PenaltyPoints))))
			}
			if p.StreakFreezes > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", ui.Key.Render("Streak freezes:"), ui.IconFreeze, p.StreakFreezes)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📊 Stats"))
			levels := engine.StatLevels(st)
			for _, stat := range engine.StatOrder {
				name := strings.ToUpper(string(stat)[:3])
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s: lvl %d (xp %d)\n", statIcons[stat], name, levels[stat], engine.StatXP(st, stat))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			achievements, err := svc.Achievements(ctx, cfg.User)
			if err != nil {
				return err
			}
			earned := 0
			for _, a := range achievements {
				if a.Earned {
					earned++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, earned, len(achievements))))
			for _, a := range achievements {
				if !a.Earned {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description))
			}

			return nil
		},
	}

	return cmd
}
