package pipeline

import (
	"fmt"
	"time"

	"github.com/Veraticus/salary-oracle/internal/model"
)

// Preprocessor chains normalization, encoding and scaling with the
// parameters captured at training time.
type Preprocessor struct {
	Encoders EncoderBank
	Columns  []string
	Scaler   ScalerParams
}

// Validate checks that the encoders and scaler agree with the column order.
func (p Preprocessor) Validate() error {
	if len(p.Columns) == 0 {
		return fmt.Errorf("%w: no feature columns", ErrDimensionMismatch)
	}
	if err := p.Scaler.Validate(); err != nil {
		return err
	}
	if len(p.Scaler.Columns) != len(p.Columns) {
		return fmt.Errorf("%w: scaler has %d columns, model has %d",
			ErrDimensionMismatch, len(p.Scaler.Columns), len(p.Columns))
	}
	for i, col := range p.Columns {
		if p.Scaler.Columns[i] != col {
			return fmt.Errorf("%w: column %d is %q in scaler but %q in model",
				ErrDimensionMismatch, i, p.Scaler.Columns[i], col)
		}
		if model.IsCategorical(col) {
			if vocab, ok := p.Encoders[col]; !ok || len(vocab) == 0 {
				return fmt.Errorf("%w: %s", ErrUnencodedColumn, col)
			}
		}
	}
	return nil
}

// Transform runs the full pipeline on a raw record.
func (p Preprocessor) Transform(raw model.RawRecord, now time.Time) (model.FeatureVector, error) {
	return p.TransformCanonical(Normalize(raw, raw.ExperienceAt(now)))
}

// TransformCanonical encodes and scales an already normalized record.
func (p Preprocessor) TransformCanonical(rec model.CanonicalRecord) (model.FeatureVector, error) {
	encoded, err := p.Encoders.Encode(rec, p.Columns)
	if err != nil {
		return nil, err
	}
	return p.Scaler.Scale(encoded.Values), nil
}
