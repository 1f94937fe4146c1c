package training

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/salary-oracle/internal/bundle"
	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/regressor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

const sampleCSV = `Employee_ID,Employee_Name,Age,Country,Department,Position,Joining_Date,Salary
EMP001,Asha Rao,30,India,IT,Software Engineer,2020-01-15,800000
EMP002,Ben Cole,45,USA,Business,Sales Executive,2005-06-01,1500000
EMP003,Cara Diaz,,UK,HR,HR Executive,2015-03-10,900000
EMP004,Dev Shah,28,Canada,Customer Service,Support Staff,not-a-date,400000
EMP005,Eli Park,52,Germany,Technical,Consulting Engineer,2001-09-30,
EMP006,Fay Lin,38,UK,People,Accountant,2012-11-11,950000
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Len(t, table.Rows, 6)
	assert.Equal(t, "Asha Rao", table.Rows[0][model.ColumnEmployeeName])
	assert.Equal(t, "2020-01-15", table.Rows[0][model.ColumnJoiningDate])
}

func TestReadCSV_HeaderOrder(t *testing.T) {
	data := "\ufeffSalary, Position ,Age,Joining_Date,Department,Country\n700000,Engineer,33,2019-02-02,Tech,India\n"

	table, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Engineer", table.Rows[0][model.ColumnPosition])
	assert.Equal(t, "700000", table.Rows[0][model.ColumnSalary])
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Age,Country,Department,Position,Salary\n30,India,IT,Engineer,1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), model.ColumnJoiningDate)

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestPrepare(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	employees, dropped := Prepare(table, now)

	assert.Equal(t, 3, dropped, "missing age, bad date and missing salary are dropped")
	require.Len(t, employees, 3)

	assert.Equal(t, model.Employee{
		Age:             30,
		Country:         "India",
		Department:      "Engineering",
		Position:        "Developer",
		YearsExperience: 5,
		Salary:          800000,
	}, employees[0])
	assert.Equal(t, "Sales", employees[1].Department)
	assert.Equal(t, "Executive", employees[1].Position)
	assert.InDelta(t, 20, employees[1].YearsExperience, 0)
	assert.Equal(t, "HR", employees[2].Department)
	assert.Equal(t, "Analyst", employees[2].Position)
}

func TestPrepare_MissingMarkers(t *testing.T) {
	data := `Employee_ID,Employee_Name,Age,Country,Department,Position,Joining_Date,Salary
EMP001,Asha Rao,30,India,IT,Software Engineer,2020-01-15,800000
EMP002,Ben Cole,45,USA,Business,Sales Executive,2005-06-01,NaN
EMP003,Cara Diaz,33,N/A,HR,HR Executive,2015-03-10,900000
EMP004,Dev Shah,28,Canada,null,Support Staff,2019-02-02,400000
EMP005,Eli Park,None,Germany,Technical,Consulting Engineer,2001-09-30,1200000
EMP006,Fay Lin,38,UK,People,Accountant,NA,950000
EMP007,Gus Hale,41,USA,IT,Engineer,2010-01-01,inf
EMP008,Hana Ito,29,UK,Tech,Senior Developer,2018-07-07,-Inf
EMP009,Ivo Kral,36,Germany,Software,Software Dev,2014-04-04,1000000
`
	table, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, table.Rows[1][model.ColumnSalary])
	assert.Empty(t, table.Rows[2][model.ColumnCountry])

	employees, dropped := Prepare(table, now)
	assert.Equal(t, 7, dropped)
	require.Len(t, employees, 2)
	assert.Equal(t, "India", employees[0].Country)
	assert.Equal(t, "Germany", employees[1].Country)
	for _, e := range employees {
		assert.False(t, math.IsNaN(e.Salary) || math.IsInf(e.Salary, 0))
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"1.5e3", 1500, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func syntheticEmployees(n int) []model.Employee {
	countries := []string{"India", "USA", "UK", "Germany", "Canada"}
	departments := []string{"Engineering", "HR", "Support", "Sales"}
	positions := []string{"Developer", "Executive", "Support", "Consultant", "Analyst"}

	employees := make([]model.Employee, n)
	for i := 0; i < n; i++ {
		exp := float64(i % 30)
		age := 22 + exp + float64(i%5)
		employees[i] = model.Employee{
			Age:             age,
			Country:         countries[i%len(countries)],
			Department:      departments[i%len(departments)],
			Position:        positions[(i/3)%len(positions)],
			YearsExperience: exp,
			Salary:          300000 + 40000*exp + 10000*float64((i/3)%len(positions)),
		}
	}
	return employees
}

func newTrainer(t *testing.T, configure func(*Config)) *Trainer {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return now }
	cfg.Params = regressor.Params{NumTrees: 10, LearningRate: 0.2, MaxDepth: 3, MinSamplesLeaf: 1}
	if configure != nil {
		configure(&cfg)
	}
	tr, err := New(cfg)
	require.NoError(t, err)
	return tr
}

func TestTrainer_Train(t *testing.T) {
	rounds := 0
	tr := newTrainer(t, func(cfg *Config) {
		cfg.OnRound = func(int) { rounds++ }
		cfg.Params = regressor.Params{NumTrees: 60, LearningRate: 0.1, MaxDepth: 4, MinSamplesLeaf: 1}
	})

	result, err := tr.Train(context.Background(), syntheticEmployees(150))
	require.NoError(t, err)

	assert.Equal(t, 60, rounds)
	assert.Equal(t, 60, tr.Rounds())
	assert.Equal(t, 30, result.TestRows)
	assert.Equal(t, 120, result.TrainRows)
	assert.Greater(t, result.R2, 0.9)
	assert.Greater(t, result.RMSE, 0.0)
	assert.True(t, now.Equal(result.Bundle.TrainedAt))

	require.NoError(t, result.Bundle.Validate())
	assert.Equal(t, model.FeatureColumns, result.Bundle.Preprocessor.Columns)
	assert.Equal(t, []string{"Canada", "Germany", "India", "UK", "USA"},
		[]string(result.Bundle.Preprocessor.Encoders[model.ColumnCountry]))
}

func TestTrainer_TooFewRows(t *testing.T) {
	_, err := newTrainer(t, nil).Train(context.Background(), syntheticEmployees(1))
	assert.ErrorIs(t, err, common.ErrEmptyDataset)
}

func TestTrainer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTrainer(t, nil).Train(ctx, syntheticEmployees(20))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Defaults(t *testing.T) {
	tr, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, regressor.DefaultParams(), tr.cfg.Params)
	assert.InDelta(t, DefaultTestFraction, tr.cfg.TestFraction, 0)
	assert.Equal(t, int64(DefaultSeed), tr.cfg.Seed)
	assert.NotNil(t, tr.cfg.Now)
}

func TestNew_ZeroValuesAreKept(t *testing.T) {
	tr := newTrainer(t, func(cfg *Config) {
		cfg.Seed = 0
		cfg.TestFraction = 0
	})
	assert.Equal(t, int64(0), tr.cfg.Seed)
	assert.Zero(t, tr.cfg.TestFraction)

	result, err := tr.Train(context.Background(), syntheticEmployees(20))
	require.NoError(t, err)
	assert.Equal(t, 0, result.TestRows)
	assert.Equal(t, 20, result.TrainRows)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*Config)
	}{
		{"negative test fraction", func(cfg *Config) { cfg.TestFraction = -0.1 }},
		{"whole dataset held out", func(cfg *Config) { cfg.TestFraction = 1 }},
		{"zero trees", func(cfg *Config) { cfg.Params.NumTrees = 0 }},
		{"zero params", func(cfg *Config) { cfg.Params = regressor.Params{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.configure(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestTrainer_Run(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "employee_records.csv")

	var sb strings.Builder
	sb.WriteString("Employee_ID,Employee_Name,Age,Country,Department,Position,Joining_Date,Salary\n")
	for i, e := range syntheticEmployees(60) {
		joined := now.Year() - int(e.YearsExperience)
		fmt.Fprintf(&sb, "EMP%03d,Person %d,%d,%s,%s,%s,%d-04-01,%.0f\n",
			i, i, int(e.Age), e.Country, e.Department, e.Position, joined, e.Salary)
	}
	sb.WriteString("EMP999,Broken Row,,India,IT,Engineer,2020-01-01,1\n")
	require.NoError(t, os.WriteFile(dataPath, []byte(sb.String()), 0600))

	modelDir := filepath.Join(dir, "model")
	tr := newTrainer(t, nil)

	result, err := tr.Run(context.Background(), dataPath, modelDir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, 12, result.TestRows)

	loaded, err := bundle.Load(modelDir)
	require.NoError(t, err)
	assert.Len(t, loaded.Model.Trees, 10)
}

func TestTrainer_RunMissingFile(t *testing.T) {
	_, err := newTrainer(t, nil).Run(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), t.TempDir())
	assert.Error(t, err)
}
