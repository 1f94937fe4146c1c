package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/salary-oracle/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidLimit      = errors.New("limit must be positive")
	ErrInvalidPrediction = errors.New("invalid prediction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePrediction checks a prediction before it is written.
func validatePrediction(p *model.Prediction) error {
	if p == nil {
		return fmt.Errorf("%w: prediction", ErrNilParameter)
	}
	if _, ok := model.ParseMode(string(p.Mode)); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidPrediction, p.Mode)
	}
	if p.Salary == nil && strings.TrimSpace(p.Error) == "" {
		return fmt.Errorf("%w: needs either a salary or an error", ErrInvalidPrediction)
	}
	if p.Salary != nil && p.Error != "" {
		return fmt.Errorf("%w: has both a salary and an error", ErrInvalidPrediction)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return nil
}
