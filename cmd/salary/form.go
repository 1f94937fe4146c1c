package main

import (
	"log/slog"

	"github.com/Veraticus/salary-oracle/internal/config"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/Veraticus/salary-oracle/internal/tui"
	"github.com/Veraticus/salary-oracle/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Interactive prediction form",
		Long: `Open an interactive form to enter employee details and predict a salary.

Press ctrl+t to switch between the local model and the remote deployment.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := loadSettings()
			if err != nil {
				return err
			}
			theme, err := themes.Named(s.Theme)
			if err != nil {
				return err
			}

			rec, closeHistory := historyRecorder(ctx, s)
			defer closeHistory()

			opts := []tui.Option{tui.WithTheme(theme), tui.WithMode(s.Mode)}

			b, err := loadBundle(s)
			switch {
			case err == nil:
				local, localErr := newPredictor(s, model.ModeLocal, b)
				if localErr != nil {
					return localErr
				}
				opts = append(opts, tui.WithPredictor(predict.NewRecording(local, rec)))
			case s.Mode == model.ModeLocal:
				return err
			default:
				slog.Warn("Local prediction unavailable", "error", err)
			}

			remote, err := newPredictor(s, model.ModeRemote, nil)
			if err != nil {
				return err
			}
			opts = append(opts, tui.WithPredictor(predict.NewRecording(remote, rec)))

			return tui.Run(ctx, opts...)
		},
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin)")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}
