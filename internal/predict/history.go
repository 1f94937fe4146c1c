package predict

import (
	"context"
	"log/slog"

	"github.com/Veraticus/salary-oracle/internal/model"
)

// Recorder persists prediction attempts.
type Recorder interface {
	SavePrediction(ctx context.Context, p *model.Prediction) error
}

// Recording wraps a Predictor and records every attempt. Recording failures
// are logged and never change the prediction outcome.
type Recording struct {
	next     Predictor
	recorder Recorder
}

// NewRecording returns p unchanged when rec is nil.
func NewRecording(p Predictor, rec Recorder) Predictor {
	if rec == nil {
		return p
	}
	return &Recording{next: p, recorder: rec}
}

// Mode implements Predictor.
func (r *Recording) Mode() model.Mode {
	return r.next.Mode()
}

// Predict implements Predictor.
func (r *Recording) Predict(ctx context.Context, raw model.RawRecord) (float64, error) {
	salary, err := r.next.Predict(ctx, raw)

	entry := &model.Prediction{
		Mode:  r.next.Mode(),
		Input: raw,
	}
	if err != nil {
		entry.Error = err.Error()
	} else {
		entry.Salary = &salary
	}

	if recErr := r.recorder.SavePrediction(context.WithoutCancel(ctx), entry); recErr != nil {
		slog.Warn("Failed to record prediction", "error", recErr, "mode", entry.Mode)
	}

	return salary, err
}
