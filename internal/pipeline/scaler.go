package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/Veraticus/salary-oracle/internal/model"
)

// ErrDimensionMismatch is returned when rows and columns disagree in length.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// ScalerParams standardizes each column as (x - Mean[i]) / Std[i].
type ScalerParams struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Std     []float64 `json:"scale"`
}

// FitScaler computes population mean and standard deviation per column.
// Constant columns get a deviation of 1 so they map to zero.
func FitScaler(columns []string, rows [][]float64) (ScalerParams, error) {
	if len(rows) == 0 {
		return ScalerParams{}, fmt.Errorf("%w: no rows to fit", ErrDimensionMismatch)
	}
	n := len(columns)
	mean := make([]float64, n)
	scale := make([]float64, n)

	for r, row := range rows {
		if len(row) != n {
			return ScalerParams{}, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, r, len(row), n)
		}
		for i, v := range row {
			mean[i] += v
		}
	}
	count := float64(len(rows))
	for i := range mean {
		mean[i] /= count
	}

	for _, row := range rows {
		for i, v := range row {
			d := v - mean[i]
			scale[i] += d * d
		}
	}
	for i := range scale {
		scale[i] = math.Sqrt(scale[i] / count)
		if scale[i] == 0 {
			scale[i] = 1
		}
	}

	cols := make([]string, n)
	copy(cols, columns)
	return ScalerParams{Columns: cols, Mean: mean, Std: scale}, nil
}

// Scale applies the fitted transform. Callers guarantee x is in the fitted
// column order; values beyond the fitted width are copied unchanged.
func (p ScalerParams) Scale(x []float64) model.FeatureVector {
	out := make(model.FeatureVector, len(x))
	for i, v := range x {
		if i >= len(p.Mean) {
			out[i] = v
			continue
		}
		out[i] = (v - p.Mean[i]) / p.Std[i]
	}
	return out
}

// Validate checks the parameters are internally consistent.
func (p ScalerParams) Validate() error {
	if len(p.Mean) != len(p.Columns) || len(p.Std) != len(p.Columns) {
		return fmt.Errorf("%w: scaler has %d columns, %d means, %d scales",
			ErrDimensionMismatch, len(p.Columns), len(p.Mean), len(p.Std))
	}
	for i, s := range p.Std {
		if s == 0 || math.IsNaN(s) {
			return fmt.Errorf("scaler column %s has invalid scale %v", p.Columns[i], s)
		}
	}
	return nil
}
