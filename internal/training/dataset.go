// Package training builds a model bundle from historical employee records.
package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/pipeline"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("training data is missing a required column")

// RequiredColumns must all appear in the CSV header. Employee_ID and
// Employee_Name may be present but are ignored.
var RequiredColumns = []string{
	model.ColumnAge,
	model.ColumnCountry,
	model.ColumnDepartment,
	model.ColumnPosition,
	model.ColumnJoiningDate,
	model.ColumnSalary,
}

var joiningLayouts = []string{
	model.DateLayout,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// missingMarkers are cell values read as missing, matching the markers
// common dataframe tools write for absent data.
var missingMarkers = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "1.#IND": true, "1.#QNAN": true,
	"-NaN": true, "-nan": true, "NaN": true, "nan": true,
	"<NA>": true, "N/A": true, "n/a": true, "NA": true,
	"NULL": true, "null": true, "None": true,
}

// Table is a CSV file keyed by header name.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// LoadCSV reads the training file at path.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path) // #nosec G304 -- user supplied training file
	if err != nil {
		return nil, fmt.Errorf("failed to open training data: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f)
}

// ReadCSV parses CSV data with a header row. Column order comes from the
// header, not from position. Missing markers such as NaN or N/A are read as
// empty cells.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	table := &Table{Header: header}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			if i >= len(record) {
				continue
			}
			v := strings.TrimSpace(record[i])
			if missingMarkers[v] {
				v = ""
			}
			row[h] = v
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Prepare cleans raw rows into training examples. Department and Position
// are normalized with the inference tables, experience is derived from the
// joining date as of now, and any row with a missing or unparsable value is
// dropped.
func Prepare(table *Table, now time.Time) (employees []model.Employee, dropped int) {
	for _, row := range table.Rows {
		e, ok := prepareRow(row, now)
		if !ok {
			dropped++
			continue
		}
		employees = append(employees, e)
	}
	return employees, dropped
}

func prepareRow(row map[string]string, now time.Time) (model.Employee, bool) {
	age, ok := parseNumber(row[model.ColumnAge])
	if !ok {
		return model.Employee{}, false
	}
	salary, ok := parseNumber(row[model.ColumnSalary])
	if !ok {
		return model.Employee{}, false
	}
	joined, ok := parseDate(row[model.ColumnJoiningDate])
	if !ok {
		return model.Employee{}, false
	}

	country := row[model.ColumnCountry]
	department := pipeline.NormalizeValue(pipeline.DepartmentTable, row[model.ColumnDepartment])
	position := pipeline.NormalizeValue(pipeline.PositionTable, row[model.ColumnPosition])
	if country == "" || department == "" || position == "" {
		return model.Employee{}, false
	}

	return model.Employee{
		Age:             age,
		Country:         country,
		Department:      department,
		Position:        position,
		YearsExperience: float64(now.Year() - joined.Year()),
		Salary:          salary,
	}, true
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range joiningLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
