// Package pipeline turns raw employee records into the feature vectors the
// salary model was trained on: category normalization, label encoding and
// feature scaling. Training and every inference path share this code.
package pipeline

import "github.com/Veraticus/salary-oracle/internal/model"

// Table maps free-form category strings to canonical values.
type Table map[string]string

// PositionTable rewrites job titles into the canonical positions
// Developer, Executive, Support, Consultant and Analyst.
var PositionTable = Table{
	"Software Engineer":   "Developer",
	"Engineer":            "Developer",
	"Software Developer":  "Developer",
	"Senior Developer":    "Developer",
	"Software Dev":        "Developer",
	"HR Executive":        "Executive",
	"Sales Executive":     "Executive",
	"Support Staff":       "Support",
	"Marketing Executive": "Executive",
	"Consulting Engineer": "Consultant",
	"Accountant":          "Analyst",
}

// DepartmentTable rewrites department names into the canonical departments
// Engineering, HR, Support and Sales.
var DepartmentTable = Table{
	"Software":         "Engineering",
	"Tech":             "Engineering",
	"Technical":        "Engineering",
	"IT":               "Engineering",
	"People":           "HR",
	"Customer Service": "Support",
	"Business":         "Sales",
}

// NormalizeValue returns table[value] when present and value otherwise.
func NormalizeValue(table Table, value string) string {
	if canonical, ok := table[value]; ok {
		return canonical
	}
	return value
}

// Normalize rewrites Position and Department into the canonical vocabulary.
// Unrecognized strings pass through unchanged and are left for the encoder
// to reject.
func Normalize(raw model.RawRecord, experience float64) model.CanonicalRecord {
	return model.CanonicalRecord{
		Age:             float64(raw.Age),
		Country:         raw.Country,
		Department:      NormalizeValue(DepartmentTable, raw.Department),
		Position:        NormalizeValue(PositionTable, raw.Position),
		YearsExperience: experience,
	}
}
