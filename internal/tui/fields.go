package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/charmbracelet/bubbles/textinput"
)

type fieldID int

const (
	fieldEmployeeID fieldID = iota
	fieldEmployeeName
	fieldAge
	fieldCountry
	fieldDepartment
	fieldPosition
	fieldExperience
	fieldJoiningDate
	fieldCount
)

// Fields shown per mode, in tab order.
var modeFields = map[model.Mode][]fieldID{
	model.ModeLocal:  {fieldAge, fieldCountry, fieldDepartment, fieldPosition, fieldExperience},
	model.ModeRemote: {fieldEmployeeID, fieldEmployeeName, fieldAge, fieldCountry, fieldDepartment, fieldPosition, fieldJoiningDate},
}

// field is either free text or a fixed list of options.
type field struct {
	label   string
	options []string
	input   textinput.Model
	choice  int
}

func (f *field) isChoice() bool {
	return len(f.options) > 0
}

func (f *field) value() string {
	if f.isChoice() {
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

func (f *field) cycle(step int) {
	if !f.isChoice() {
		return
	}
	n := len(f.options)
	f.choice = ((f.choice+step)%n + n) % n
}

func newTextField(label, placeholder, initial string, limit int) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 24
	ti.Prompt = ""
	ti.SetValue(initial)
	return field{label: label, input: ti}
}

func newChoiceField(label string, options []string) field {
	return field{label: label, options: options}
}

func newFields() []field {
	fields := make([]field, fieldCount)
	fields[fieldEmployeeID] = newTextField("Employee ID", "EMP102", "", 16)
	fields[fieldEmployeeName] = newTextField("Employee Name", "Test User", "", 64)
	fields[fieldAge] = newTextField("Age", "18-65", "30", 2)
	fields[fieldCountry] = newChoiceField("Country", model.Countries)
	fields[fieldDepartment] = newChoiceField("Department", model.Departments)
	fields[fieldPosition] = newChoiceField("Position", model.Positions)
	fields[fieldExperience] = newTextField("Years Experience", "0-40", "5", 2)
	fields[fieldJoiningDate] = newTextField("Joining Date", "YYYY-MM-DD", "", 10)
	return fields
}

// buildRecord reads the fields visible in mode into a validated record.
func buildRecord(fields []field, mode model.Mode) (model.RawRecord, error) {
	age, err := parseWhole(fields[fieldAge].value(), "age")
	if err != nil {
		return model.RawRecord{}, err
	}

	raw := model.RawRecord{
		Age:        age,
		Country:    fields[fieldCountry].value(),
		Department: fields[fieldDepartment].value(),
		Position:   fields[fieldPosition].value(),
	}

	switch mode {
	case model.ModeRemote:
		raw.EmployeeID = fields[fieldEmployeeID].value()
		raw.EmployeeName = fields[fieldEmployeeName].value()
		raw.JoiningDate = fields[fieldJoiningDate].value()
	default:
		exp, err := parseWhole(fields[fieldExperience].value(), "years of experience")
		if err != nil {
			return model.RawRecord{}, err
		}
		raw.YearsExperience = exp
	}

	if err := raw.Validate(); err != nil {
		return model.RawRecord{}, err
	}
	return raw, nil
}

func parseWhole(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", model.ErrInvalidRecord, name)
	}
	return v, nil
}
