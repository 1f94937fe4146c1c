package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/salary-oracle/internal/cli"
	"github.com/Veraticus/salary-oracle/internal/regressor"
	"github.com/Veraticus/salary-oracle/internal/training"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func trainCmd() *cobra.Command {
	var (
		dataPath string
		cfg      = training.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the local model from historical employee records",
		Long: `Train the local salary model from a CSV of employee records.

The CSV needs a header with Employee_ID, Employee_Name, Age, Country, Department,
Position, Joining_Date and Salary. Rows with missing values are dropped. The
model, scaler and label encoders are written to the model directory.

Examples:
  salary train --data employee_records.csv
  salary train --data records.csv --model-dir ~/models/salary --trees 400`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			cfg.OnRound = func(int) {
				if addErr := bar.Add(1); addErr != nil {
					slog.Debug("Failed to advance progress bar", "error", addErr)
				}
			}
			trainer, err := training.New(cfg)
			if err != nil {
				return err
			}
			bar = cli.NewTrainingProgress(cmd.ErrOrStderr(), trainer.Rounds())

			result, err := trainer.Run(cmd.Context(), dataPath, s.ModelDir)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTrainingSummary(result, s.ModelDir))
			return err
		},
	}

	def := regressor.DefaultParams()
	cmd.Flags().StringVarP(&dataPath, "data", "d", "employee_records.csv", "training CSV file")
	cmd.Flags().IntVar(&cfg.Params.NumTrees, "trees", def.NumTrees, "number of boosting rounds")
	cmd.Flags().Float64Var(&cfg.Params.LearningRate, "learning-rate", def.LearningRate, "shrinkage per tree")
	cmd.Flags().IntVar(&cfg.Params.MaxDepth, "max-depth", def.MaxDepth, "maximum tree depth")
	cmd.Flags().Float64Var(&cfg.TestFraction, "test-fraction", training.DefaultTestFraction, "share of rows held out for evaluation")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", training.DefaultSeed, "shuffle seed for the train/test split")

	return cmd
}
