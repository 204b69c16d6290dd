package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lvl",
	Short:         "Levelup — daily quests with RPG progression",
	Long:          "Levelup turns daily habits into quests: complete them to earn XP, level stats, and keep a streak alive.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newQuestsCmd(),
		newDoCmd(),
		newStatusCmd(),
		newStreakCmd(),
		newCheckinCmd(),
		newRedeemCmd(),
		newFreezeCmd(),
		newSeedCmd(),
		newTokenCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
