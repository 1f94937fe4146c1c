// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/salary-oracle/internal/common"
)

// DateLayout is the layout of joining dates in forms, CSV files and remote payloads.
const DateLayout = "2006-01-02"

// Form bounds.
const (
	MinAge        = 18
	MaxAge        = 65
	MinExperience = 0
	MaxExperience = 40
)

// ErrInvalidRecord is returned when a raw record falls outside the form bounds.
var ErrInvalidRecord = fmt.Errorf("%w: employee record", common.ErrInvalidInput)

// RawRecord is an employee exactly as entered by the user.
// Department and Position are still free-form strings.
type RawRecord struct {
	EmployeeID      string
	EmployeeName    string
	Country         string
	Department      string
	Position        string
	JoiningDate     string
	Age             int
	YearsExperience int
}

// Validate checks the record against the input form bounds.
func (r RawRecord) Validate() error {
	if r.Age < MinAge || r.Age > MaxAge {
		return fmt.Errorf("%w: age %d is outside [%d, %d]", ErrInvalidRecord, r.Age, MinAge, MaxAge)
	}
	if r.YearsExperience < MinExperience || r.YearsExperience > MaxExperience {
		return fmt.Errorf("%w: years of experience %d is outside [%d, %d]",
			ErrInvalidRecord, r.YearsExperience, MinExperience, MaxExperience)
	}
	if strings.TrimSpace(r.Country) == "" {
		return fmt.Errorf("%w: missing country", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.Department) == "" {
		return fmt.Errorf("%w: missing department", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.Position) == "" {
		return fmt.Errorf("%w: missing position", ErrInvalidRecord)
	}
	if r.JoiningDate != "" {
		if _, err := time.Parse(DateLayout, r.JoiningDate); err != nil {
			return fmt.Errorf("%w: joining date %q is not YYYY-MM-DD", ErrInvalidRecord, r.JoiningDate)
		}
	}
	return nil
}

// ExperienceAt returns the years of experience as of now. A joining date, when
// present, takes precedence and is converted the same way training data is.
func (r RawRecord) ExperienceAt(now time.Time) float64 {
	if r.JoiningDate != "" {
		if joined, err := time.Parse(DateLayout, r.JoiningDate); err == nil {
			return float64(now.Year() - joined.Year())
		}
	}
	return float64(r.YearsExperience)
}

// CanonicalRecord is a RawRecord whose Department and Position have been
// rewritten into the canonical vocabulary. Nothing has been encoded yet.
type CanonicalRecord struct {
	Country         string
	Department      string
	Position        string
	Age             float64
	YearsExperience float64
}

// Text returns the categorical value of a column.
func (c CanonicalRecord) Text(column string) (string, bool) {
	switch column {
	case ColumnCountry:
		return c.Country, true
	case ColumnDepartment:
		return c.Department, true
	case ColumnPosition:
		return c.Position, true
	}
	return "", false
}

// Number returns the numeric value of a column.
func (c CanonicalRecord) Number(column string) (float64, bool) {
	switch column {
	case ColumnAge:
		return c.Age, true
	case ColumnYearsExperience:
		return c.YearsExperience, true
	}
	return 0, false
}

// EncodedRecord holds one row with every categorical column replaced by its
// integer code. Values are ordered like Columns, which is the training order.
type EncodedRecord struct {
	Columns []string
	Values  []float64
}

// FeatureVector is an EncodedRecord after scaling, in training column order.
type FeatureVector []float64
