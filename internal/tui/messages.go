package tui

import "github.com/Veraticus/salary-oracle/internal/model"

// predictionResultMsg carries the outcome of one prediction back to the form.
type predictionResultMsg struct {
	err    error
	mode   model.Mode
	raw    model.RawRecord
	salary float64
}
