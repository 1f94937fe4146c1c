// Package predict turns a raw employee record into a salary, either with the
// locally trained model bundle or with the remote Watsonx deployment.
package predict

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Veraticus/salary-oracle/internal/bundle"
	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/Veraticus/salary-oracle/internal/model"
)

// Predictor produces a salary for one raw record.
type Predictor interface {
	Predict(ctx context.Context, raw model.RawRecord) (float64, error)
	Mode() model.Mode
}

// Config selects and configures a Predictor.
type Config struct {
	HTTPClient *http.Client
	Bundle     *bundle.Bundle
	Now        func() time.Time
	Mode       model.Mode
	APIKey     string
	IAMURL     string
	ScoringURL string
}

// New creates the predictor named by cfg.Mode.
func New(cfg Config) (Predictor, error) {
	switch cfg.Mode {
	case model.ModeLocal:
		if cfg.Bundle == nil {
			return nil, fmt.Errorf("%w: local prediction needs a trained model bundle", common.ErrMissingConfig)
		}
		return NewLocal(cfg.Bundle, cfg.Now), nil
	case model.ModeRemote:
		return NewRemote(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unsupported predictor mode: %q", common.ErrInvalidConfig, cfg.Mode)
	}
}
