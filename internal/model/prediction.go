package model

import "time"

// Mode selects which predictor produced a value.
type Mode string

// Predictor modes.
const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLocal, ModeRemote:
		return Mode(s), true
	}
	return "", false
}

// Prediction is one recorded prediction attempt.
// Salary is nil when the attempt failed; Error then holds the message.
type Prediction struct {
	CreatedAt time.Time
	Salary    *float64
	ID        string
	Mode      Mode
	Error     string
	Input     RawRecord
}

// Succeeded reports whether the attempt produced a salary.
func (p Prediction) Succeeded() bool {
	return p.Salary != nil
}
