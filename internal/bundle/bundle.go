// Package bundle persists the fitted model together with the preprocessing
// state it depends on. The trainer is the only writer; every inference path
// loads a bundle once at startup and treats it as read-only.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/salary-oracle/internal/pipeline"
	"github.com/Veraticus/salary-oracle/internal/regressor"
)

// Artifact file names inside a model directory.
const (
	ModelFile    = "salary_model.json"
	ScalerFile   = "scaler.json"
	EncodersFile = "label_encoders.json"
)

// ErrIncompatible is returned when the artifacts of a bundle disagree.
var ErrIncompatible = errors.New("incompatible model artifacts")

// Bundle is a trained model plus the preprocessing it was trained behind.
type Bundle struct {
	TrainedAt    time.Time
	Model        *regressor.Model
	Preprocessor pipeline.Preprocessor
}

// Every artifact carries the same trained_at stamp so files from different
// training runs are never combined.
type modelFile struct {
	TrainedAt time.Time        `json:"trained_at"`
	Model     *regressor.Model `json:"model"`
	Columns   []string         `json:"columns"`
}

type scalerFile struct {
	TrainedAt time.Time `json:"trained_at"`
	pipeline.ScalerParams
}

type encodersFile struct {
	TrainedAt    time.Time            `json:"trained_at"`
	Vocabularies pipeline.EncoderBank `json:"vocabularies"`
}

// Validate checks that model, scaler and encoders describe the same columns.
func (b *Bundle) Validate() error {
	if b.Model == nil {
		return fmt.Errorf("%w: missing model", ErrIncompatible)
	}
	if err := b.Preprocessor.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompatible, err)
	}
	if b.Model.NumFeatures != len(b.Preprocessor.Columns) {
		return fmt.Errorf("%w: model expects %d features, preprocessing yields %d",
			ErrIncompatible, b.Model.NumFeatures, len(b.Preprocessor.Columns))
	}
	if err := b.Model.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompatible, err)
	}
	return nil
}

// Save writes the three artifacts into dir, creating it if needed. Each file
// is replaced atomically; the model file is written last.
func Save(dir string, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	files := []struct {
		name string
		v    any
	}{
		{ScalerFile, scalerFile{TrainedAt: b.TrainedAt, ScalerParams: b.Preprocessor.Scaler}},
		{EncodersFile, encodersFile{TrainedAt: b.TrainedAt, Vocabularies: b.Preprocessor.Encoders}},
		{ModelFile, modelFile{TrainedAt: b.TrainedAt, Columns: b.Preprocessor.Columns, Model: b.Model}},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return err
		}
	}

	slog.Info("Saved model bundle", "dir", dir, "trees", len(b.Model.Trees))
	return nil
}

// Load reads and validates the artifacts in dir.
func Load(dir string) (*Bundle, error) {
	var mf modelFile
	if err := readJSON(filepath.Join(dir, ModelFile), &mf); err != nil {
		return nil, err
	}
	var sf scalerFile
	if err := readJSON(filepath.Join(dir, ScalerFile), &sf); err != nil {
		return nil, err
	}
	var ef encodersFile
	if err := readJSON(filepath.Join(dir, EncodersFile), &ef); err != nil {
		return nil, err
	}

	for name, stamp := range map[string]time.Time{ScalerFile: sf.TrainedAt, EncodersFile: ef.TrainedAt} {
		if !stamp.Equal(mf.TrainedAt) {
			return nil, fmt.Errorf("%w: %s was trained at %s, %s at %s",
				ErrIncompatible, name, stamp.Format(time.RFC3339), ModelFile, mf.TrainedAt.Format(time.RFC3339))
		}
	}

	b := &Bundle{
		TrainedAt: mf.TrainedAt,
		Model:     mf.Model,
		Preprocessor: pipeline.Preprocessor{
			Columns:  mf.Columns,
			Encoders: ef.Vocabularies,
			Scaler:   sf.ScalerParams,
		},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("Loaded model bundle",
		"dir", dir,
		"trees", len(b.Model.Trees),
		"columns", b.Preprocessor.Columns,
		"trained_at", b.TrainedAt)
	return b, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from the configured model directory
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
