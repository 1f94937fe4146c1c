package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/salary-oracle/internal/bundle"
	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/Veraticus/salary-oracle/internal/config"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/Veraticus/salary-oracle/internal/storage"
	"github.com/spf13/viper"
)

func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// loadBundle reads the trained model artifacts once for the whole command.
func loadBundle(s config.Settings) (*bundle.Bundle, error) {
	b, err := bundle.Load(s.ModelDir)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("no usable model in %s (run 'salary train' first)", s.ModelDir), err)
	}
	return b, nil
}

// newPredictor builds the predictor for mode. b may be nil in remote mode.
func newPredictor(s config.Settings, mode model.Mode, b *bundle.Bundle) (predict.Predictor, error) {
	return predict.New(predict.Config{
		Mode:       mode,
		Bundle:     b,
		APIKey:     s.APIKey,
		IAMURL:     s.IAMURL,
		ScoringURL: s.ScoringURL,
	})
}

// openHistory opens the prediction history, or returns nil when disabled.
func openHistory(ctx context.Context, s config.Settings) (*storage.SQLiteStorage, error) {
	if !s.HistoryEnabled {
		return nil, nil
	}

	store, err := storage.Open(ctx, s.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open prediction history: %w", err)
	}
	return store, nil
}

// historyRecorder returns the history store as a recorder, or nil when
// history is disabled or cannot be opened. Recording is best effort.
func historyRecorder(ctx context.Context, s config.Settings) (predict.Recorder, func()) {
	store, err := openHistory(ctx, s)
	if err != nil {
		slog.Warn("Prediction history disabled", "error", err)
		return nil, func() {}
	}
	if store == nil {
		return nil, func() {}
	}
	return store, func() { _ = store.Close() }
}
