package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/storage"
	"levelup/internal/ui"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install the built-in quest template catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := storage.SeedTemplates(ctx, svc.TemplateRepo())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Seeded %d quest templates.\n", ui.IconScroll, n)
			return nil
		},
	}

	return cmd
}
