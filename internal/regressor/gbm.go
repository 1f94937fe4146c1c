// Package regressor implements gradient-boosted regression trees with squared
// error loss. A fitted Model is immutable and safe to share.
package regressor

import (
	"errors"
	"fmt"
	"math"
)

// ErrFeatureCount is returned when a feature vector has the wrong width.
var ErrFeatureCount = errors.New("feature count mismatch")

// Params configures boosting.
type Params struct {
	NumTrees       int
	MaxDepth       int
	MinSamplesLeaf int
	LearningRate   float64
}

// DefaultParams returns the settings the salary model is trained with.
func DefaultParams() Params {
	return Params{
		NumTrees:       200,
		LearningRate:   0.05,
		MaxDepth:       6,
		MinSamplesLeaf: 1,
	}
}

// Validate checks that every parameter is in range.
func (p Params) Validate() error {
	if p.NumTrees <= 0 {
		return fmt.Errorf("number of trees must be positive, got %d", p.NumTrees)
	}
	if p.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", p.MaxDepth)
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %v", p.LearningRate)
	}
	if p.MinSamplesLeaf <= 0 {
		return fmt.Errorf("min samples per leaf must be positive, got %d", p.MinSamplesLeaf)
	}
	return nil
}

// Model is a fitted ensemble: BaseScore + LearningRate * sum(tree outputs).
type Model struct {
	Trees        []Tree  `json:"trees"`
	BaseScore    float64 `json:"base_score"`
	LearningRate float64 `json:"learning_rate"`
	NumFeatures  int     `json:"num_features"`
}

// Predict returns the model output for one feature vector.
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != m.NumFeatures {
		return 0, fmt.Errorf("%w: got %d features, model expects %d", ErrFeatureCount, len(x), m.NumFeatures)
	}
	sum := 0.0
	for i := range m.Trees {
		sum += m.Trees[i].Predict(x)
	}
	return m.BaseScore + m.LearningRate*sum, nil
}

// Validate checks that every tree is well formed for the model's width.
func (m *Model) Validate() error {
	if m.NumFeatures <= 0 {
		return fmt.Errorf("model has no features")
	}
	for i, t := range m.Trees {
		if err := t.validate(m.NumFeatures); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Fit trains a model on rows X with targets y. onRound, when non-nil, is
// called after each tree is added.
func Fit(X [][]float64, y []float64, params Params, onRound func(round int)) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(X) == 0 {
		return nil, errors.New("no training rows")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("%d rows but %d targets", len(X), len(y))
	}
	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrFeatureCount, i, len(row), width)
		}
	}

	base := mean(y)
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = base
	}

	m := &Model{
		BaseScore:    base,
		LearningRate: params.LearningRate,
		NumFeatures:  width,
		Trees:        make([]Tree, 0, params.NumTrees),
	}

	residual := make([]float64, len(y))
	all := make([]int, len(y))
	for i := range all {
		all[i] = i
	}

	for round := 0; round < params.NumTrees; round++ {
		for i := range y {
			residual[i] = y[i] - pred[i]
		}
		b := &treeBuilder{x: X, target: residual, params: params}
		b.build(all, 0)
		tree := Tree{Nodes: b.nodes}
		for i, row := range X {
			pred[i] += params.LearningRate * tree.Predict(row)
		}
		m.Trees = append(m.Trees, tree)
		if onRound != nil {
			onRound(round + 1)
		}
	}

	return m, nil
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// R2Score is the coefficient of determination of pred against truth.
func R2Score(truth, pred []float64) float64 {
	mu := mean(truth)
	var ssRes, ssTot float64
	for i := range truth {
		d := truth[i] - pred[i]
		ssRes += d * d
		t := truth[i] - mu
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// RMSE is the root mean squared error of pred against truth.
func RMSE(truth, pred []float64) float64 {
	if len(truth) == 0 {
		return 0
	}
	var sum float64
	for i := range truth {
		d := truth[i] - pred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(truth)))
}
