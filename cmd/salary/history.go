package main

import (
	"fmt"

	"github.com/Veraticus/salary-oracle/internal/cli"
	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := openHistory(ctx, s)
			if err != nil {
				return err
			}
			if store == nil {
				return common.NewUserError("prediction history is disabled (history.enabled=false)", nil)
			}
			defer func() { _ = store.Close() }()

			predictions, err := store.ListPredictions(ctx, limit)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderHistory(predictions))
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of predictions to show")

	return cmd
}
