package predict

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/salary-oracle/internal/bundle"
	"github.com/Veraticus/salary-oracle/internal/model"
)

// Local predicts with an in-process model bundle.
type Local struct {
	bundle *bundle.Bundle
	now    func() time.Time
}

// NewLocal wraps a loaded bundle. A nil now uses time.Now.
func NewLocal(b *bundle.Bundle, now func() time.Time) *Local {
	if now == nil {
		now = time.Now
	}
	return &Local{bundle: b, now: now}
}

// Mode implements Predictor.
func (l *Local) Mode() model.Mode {
	return model.ModeLocal
}

// Predict implements Predictor.
func (l *Local) Predict(ctx context.Context, raw model.RawRecord) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	features, err := l.bundle.Preprocessor.Transform(raw, l.now())
	if err != nil {
		return 0, err
	}

	salary, err := l.bundle.Model.Predict(features)
	if err != nil {
		return 0, err
	}

	slog.Debug("Local prediction", "features", []float64(features), "salary", salary)
	return salary, nil
}
