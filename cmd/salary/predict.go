package main

import (
	"fmt"

	"github.com/Veraticus/salary-oracle/internal/bundle"
	"github.com/Veraticus/salary-oracle/internal/cli"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	var (
		raw   model.RawRecord
		width int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a salary from employee attributes",
		Long: `Predict a salary for one employee.

Department and position accept the same free-form values as the form; they are
mapped to the model's categories before encoding. Remote mode forwards the
employee id, name and joining date when given and fills in placeholders otherwise.

Examples:
  salary predict --age 30 --country India --department IT --position "Software Engineer" --experience 5
  salary predict --mode remote --age 41 --country UK --department HR --position "HR Executive"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := loadSettings()
			if err != nil {
				return err
			}
			if err := raw.Validate(); err != nil {
				return err
			}

			var b *bundle.Bundle
			if s.Mode == model.ModeLocal {
				if b, err = loadBundle(s); err != nil {
					return err
				}
			}

			p, err := newPredictor(s, s.Mode, b)
			if err != nil {
				return err
			}
			rec, closeHistory := historyRecorder(ctx, s)
			defer closeHistory()
			p = predict.NewRecording(p, rec)

			salary, err := p.Predict(ctx, raw)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderPrediction(raw, p.Mode(), salary, width))
			return err
		},
	}

	cmd.Flags().IntVar(&raw.Age, "age", 30, "age in years (18-65)")
	cmd.Flags().StringVar(&raw.Country, "country", "India", "country")
	cmd.Flags().StringVar(&raw.Department, "department", "IT", "department")
	cmd.Flags().StringVar(&raw.Position, "position", "Software Engineer", "position")
	cmd.Flags().IntVar(&raw.YearsExperience, "experience", 5, "years of experience (0-40)")
	cmd.Flags().StringVar(&raw.EmployeeID, "employee-id", "", "employee id (remote mode)")
	cmd.Flags().StringVar(&raw.EmployeeName, "employee-name", "", "employee name (remote mode)")
	cmd.Flags().StringVar(&raw.JoiningDate, "joining-date", "", "joining date YYYY-MM-DD, overrides --experience")
	cmd.Flags().IntVar(&width, "width", 40, "width of the salary range chart")

	return cmd
}
