package bundle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/pipeline"
	"github.com/Veraticus/salary-oracle/internal/regressor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()

	X := [][]float64{
		{-1, 0, 0, 0, -1},
		{0, 1, 0, 1, 0},
		{1, 0, 1, 0, 1},
		{0.5, 1, 1, 1, 0.5},
	}
	y := []float64{300000, 500000, 900000, 700000}
	m, err := regressor.Fit(X, y, regressor.Params{NumTrees: 4, LearningRate: 0.5, MaxDepth: 2, MinSamplesLeaf: 1}, nil)
	require.NoError(t, err)

	return &Bundle{
		TrainedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Model:     m,
		Preprocessor: pipeline.Preprocessor{
			Columns: model.FeatureColumns,
			Encoders: pipeline.EncoderBank{
				model.ColumnCountry:    {"India", "USA"},
				model.ColumnDepartment: {"Engineering", "Sales"},
				model.ColumnPosition:   {"Developer", "Executive"},
			},
			Scaler: pipeline.ScalerParams{
				Columns: model.FeatureColumns,
				Mean:    []float64{35, 0.5, 0.5, 0.5, 8},
				Std:     []float64{6, 0.5, 0.5, 0.5, 4},
			},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	b := testBundle(t)

	require.NoError(t, Save(dir, b))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{ModelFile, ScalerFile, EncodersFile}, names, "no temporary files left behind")

	scalerJSON, err := os.ReadFile(filepath.Join(dir, ScalerFile))
	require.NoError(t, err)
	assert.Contains(t, string(scalerJSON), `"scale": [`)
	assert.Contains(t, string(scalerJSON), `"trained_at"`)

	loaded, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, b.TrainedAt.Equal(loaded.TrainedAt))
	assert.Equal(t, b.Preprocessor.Columns, loaded.Preprocessor.Columns)
	assert.Equal(t, b.Preprocessor.Encoders, loaded.Preprocessor.Encoders)
	assert.Equal(t, b.Preprocessor.Scaler, loaded.Preprocessor.Scaler)

	x := []float64{0.2, 1, 0, 1, -0.3}
	want, err := b.Model.Predict(x)
	require.NoError(t, err)
	got, err := loaded.Model.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ModelFile)
}

func TestLoad_CorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, testBundle(t)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ScalerFile), []byte("{not json"), 0600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ScalerFile)
}

func TestLoad_ColumnMismatch(t *testing.T) {
	dir := t.TempDir()
	b := testBundle(t)
	require.NoError(t, Save(dir, b))

	swapped := b.Preprocessor.Scaler
	swapped.Columns = []string{"Country", "Age", "Department", "Position", "YearsExperience"}
	require.NoError(t, writeJSON(filepath.Join(dir, ScalerFile), scalerFile{TrainedAt: b.TrainedAt, ScalerParams: swapped}))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrIncompatible)
	assert.ErrorIs(t, err, pipeline.ErrDimensionMismatch)
}

func TestLoad_MixedTrainingRuns(t *testing.T) {
	older := t.TempDir()
	newer := t.TempDir()

	first := testBundle(t)
	require.NoError(t, Save(older, first))

	second := testBundle(t)
	second.TrainedAt = first.TrainedAt.Add(time.Hour)
	second.Preprocessor.Encoders[model.ColumnPosition] = pipeline.Vocabulary{"Analyst", "Developer"}
	require.NoError(t, Save(newer, second))

	data, err := os.ReadFile(filepath.Join(newer, EncodersFile))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(older, EncodersFile), data, 0600))

	_, err = Load(older)
	assert.ErrorIs(t, err, ErrIncompatible)
	assert.Contains(t, err.Error(), EncodersFile)
}

func TestSave_ReplacesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	first := testBundle(t)
	require.NoError(t, Save(dir, first))

	second := testBundle(t)
	second.TrainedAt = first.TrainedAt.Add(time.Hour)
	require.NoError(t, Save(dir, second))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, second.TrainedAt.Equal(loaded.TrainedAt))
}

func TestValidate(t *testing.T) {
	b := testBundle(t)
	require.NoError(t, b.Validate())

	noModel := testBundle(t)
	noModel.Model = nil
	assert.ErrorIs(t, noModel.Validate(), ErrIncompatible)

	narrow := testBundle(t)
	narrow.Model.NumFeatures = 3
	assert.ErrorIs(t, narrow.Validate(), ErrIncompatible)

	assert.ErrorIs(t, Save(t.TempDir(), noModel), ErrIncompatible)
}
