package training

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Veraticus/salary-oracle/internal/bundle"
	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/pipeline"
	"github.com/Veraticus/salary-oracle/internal/regressor"
)

// Defaults matching the reference training run.
const (
	DefaultTestFraction = 0.2
	DefaultSeed         = 42
)

// Config controls a training run.
type Config struct {
	Now          func() time.Time
	OnRound      func(round int)
	Params       regressor.Params
	TestFraction float64
	Seed         int64
}

// DefaultConfig returns the standard training configuration.
func DefaultConfig() Config {
	return Config{
		Params:       regressor.DefaultParams(),
		TestFraction: DefaultTestFraction,
		Seed:         DefaultSeed,
	}
}

// Result summarizes a finished training run.
type Result struct {
	Bundle    *bundle.Bundle
	R2        float64
	RMSE      float64
	TrainRows int
	TestRows  int
	Dropped   int
}

// Trainer fits encoders, scaler and regressor on employee records.
type Trainer struct {
	cfg Config
}

// New creates a trainer from cfg, usually DefaultConfig with overrides.
// A nil Now uses time.Now.
func New(cfg Config) (*Trainer, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if cfg.TestFraction < 0 || cfg.TestFraction >= 1 || math.IsNaN(cfg.TestFraction) {
		return nil, fmt.Errorf("%w: test fraction must be in [0, 1), got %v",
			common.ErrInvalidConfig, cfg.TestFraction)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Trainer{cfg: cfg}, nil
}

// Rounds returns the number of boosting rounds a run will report.
func (t *Trainer) Rounds() int {
	return t.cfg.Params.NumTrees
}

// Run loads the CSV at dataPath, trains and writes the bundle into modelDir.
func (t *Trainer) Run(ctx context.Context, dataPath, modelDir string) (*Result, error) {
	table, err := LoadCSV(dataPath)
	if err != nil {
		return nil, err
	}

	employees, dropped := Prepare(table, t.cfg.Now())
	slog.Info("Prepared training data",
		"path", dataPath,
		"rows", len(table.Rows),
		"usable", len(employees),
		"dropped", dropped)

	result, err := t.Train(ctx, employees)
	if err != nil {
		return nil, err
	}
	result.Dropped = dropped

	if err := bundle.Save(modelDir, result.Bundle); err != nil {
		return nil, err
	}
	return result, nil
}

// Train fits a bundle on already prepared employees and evaluates it on a
// held-out split.
func (t *Trainer) Train(ctx context.Context, employees []model.Employee) (*Result, error) {
	if len(employees) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 rows, have %d", common.ErrEmptyDataset, len(employees))
	}

	rows := make([]model.CanonicalRecord, len(employees))
	y := make([]float64, len(employees))
	for i, e := range employees {
		rows[i] = e.Canonical()
		y[i] = e.Salary
	}

	encoders := pipeline.FitEncoderBank(rows, model.CategoricalColumns)
	encoded := make([][]float64, len(rows))
	for i, row := range rows {
		rec, err := encoders.Encode(row, model.FeatureColumns)
		if err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		encoded[i] = rec.Values
	}

	scaler, err := pipeline.FitScaler(model.FeatureColumns, encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to fit scaler: %w", err)
	}
	X := make([][]float64, len(encoded))
	for i, row := range encoded {
		X[i] = scaler.Scale(row)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trainIdx, testIdx := regressor.TrainTestSplit(len(X), t.cfg.TestFraction, t.cfg.Seed)
	xTrain, yTrain := regressor.Rows(X, y, trainIdx)
	xTest, yTest := regressor.Rows(X, y, testIdx)

	start := time.Now()
	m, err := regressor.Fit(xTrain, yTrain, t.cfg.Params, t.cfg.OnRound)
	if err != nil {
		return nil, fmt.Errorf("failed to fit model: %w", err)
	}
	slog.Debug("Fitted regressor", "trees", len(m.Trees), "duration", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Bundle: &bundle.Bundle{
			TrainedAt: t.cfg.Now().UTC(),
			Model:     m,
			Preprocessor: pipeline.Preprocessor{
				Columns:  model.FeatureColumns,
				Encoders: encoders,
				Scaler:   scaler,
			},
		},
		TrainRows: len(trainIdx),
		TestRows:  len(testIdx),
	}

	if len(testIdx) > 0 {
		pred := make([]float64, len(xTest))
		for i, row := range xTest {
			p, err := m.Predict(row)
			if err != nil {
				return nil, err
			}
			pred[i] = p
		}
		result.R2 = regressor.R2Score(yTest, pred)
		result.RMSE = regressor.RMSE(yTest, pred)
	}

	slog.Info("Evaluated model",
		"train_rows", result.TrainRows,
		"test_rows", result.TestRows,
		"r2", result.R2,
		"rmse", result.RMSE)

	return result, nil
}
