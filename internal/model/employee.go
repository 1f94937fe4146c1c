package model

// Column names shared by the training CSV, the model bundle and the remote payload.
const (
	ColumnEmployeeID      = "Employee_ID"
	ColumnEmployeeName    = "Employee_Name"
	ColumnAge             = "Age"
	ColumnCountry         = "Country"
	ColumnDepartment      = "Department"
	ColumnPosition        = "Position"
	ColumnJoiningDate     = "Joining_Date"
	ColumnSalary          = "Salary"
	ColumnYearsExperience = "YearsExperience"
)

// FeatureColumns is the column order the model is trained on.
var FeatureColumns = []string{
	ColumnAge,
	ColumnCountry,
	ColumnDepartment,
	ColumnPosition,
	ColumnYearsExperience,
}

// CategoricalColumns are the feature columns that get label encoded.
var CategoricalColumns = []string{
	ColumnCountry,
	ColumnDepartment,
	ColumnPosition,
}

// IsCategorical reports whether a feature column holds text.
func IsCategorical(column string) bool {
	for _, c := range CategoricalColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Employee is one row of historical training data after cleaning.
type Employee struct {
	Country         string
	Department      string
	Position        string
	Age             float64
	YearsExperience float64
	Salary          float64
}

// Canonical returns the feature part of the row.
func (e Employee) Canonical() CanonicalRecord {
	return CanonicalRecord{
		Age:             e.Age,
		Country:         e.Country,
		Department:      e.Department,
		Position:        e.Position,
		YearsExperience: e.YearsExperience,
	}
}

// Form choices offered by the interactive form.
var (
	Countries   = []string{"India", "USA", "UK", "Germany", "Canada"}
	Departments = []string{"IT", "Software", "Technical", "HR", "Customer Service", "Business"}
	Positions   = []string{
		"Software Engineer",
		"Engineer",
		"Senior Developer",
		"HR Executive",
		"Sales Executive",
		"Support Staff",
		"Marketing Executive",
		"Consulting Engineer",
		"Accountant",
	}
)
