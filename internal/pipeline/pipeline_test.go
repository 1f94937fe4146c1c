package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue_TableEntries(t *testing.T) {
	for raw, want := range PositionTable {
		assert.Equal(t, want, NormalizeValue(PositionTable, raw), raw)
	}
	for raw, want := range DepartmentTable {
		assert.Equal(t, want, NormalizeValue(DepartmentTable, raw), raw)
	}
}

func TestNormalizeValue_IdentityOnUnknown(t *testing.T) {
	for _, raw := range []string{"", "HR", "Developer", "software engineer", "Totally Unknown Title", " IT"} {
		assert.Equal(t, raw, NormalizeValue(PositionTable, raw))
		assert.Equal(t, raw, NormalizeValue(DepartmentTable, raw))
	}
}

func TestNormalize(t *testing.T) {
	raw := model.RawRecord{
		Age:             30,
		Country:         "India",
		Department:      "IT",
		Position:        "Software Engineer",
		YearsExperience: 5,
	}

	got := Normalize(raw, 5)

	assert.Equal(t, model.CanonicalRecord{
		Age:             30,
		Country:         "India",
		Department:      "Engineering",
		Position:        "Developer",
		YearsExperience: 5,
	}, got)
	assert.Equal(t, "IT", raw.Department, "raw record is left untouched")
}

func TestFitVocabulary(t *testing.T) {
	vocab := FitVocabulary([]string{"USA", "India", "UK", "India", "Canada"})
	assert.Equal(t, Vocabulary{"Canada", "India", "UK", "USA"}, vocab)

	idx, ok := vocab.Index("UK")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = vocab.Index("France")
	assert.False(t, ok)
}

func testBank() EncoderBank {
	return EncoderBank{
		model.ColumnCountry:    {"Canada", "Germany", "India", "UK", "USA"},
		model.ColumnDepartment: {"Engineering", "HR", "Sales", "Support"},
		model.ColumnPosition:   {"Analyst", "Consultant", "Developer", "Executive", "Support"},
	}
}

func TestEncoderBank_EncodeDeterministic(t *testing.T) {
	bank := testBank()
	rec := model.CanonicalRecord{Age: 30, Country: "India", Department: "Engineering", Position: "Developer", YearsExperience: 5}

	first, err := bank.Encode(rec, model.FeatureColumns)
	require.NoError(t, err)
	assert.Equal(t, model.FeatureColumns, first.Columns)
	assert.Equal(t, []float64{30, 2, 0, 2, 5}, first.Values)

	for i := 0; i < 10; i++ {
		again, err := bank.Encode(rec, model.FeatureColumns)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncoderBank_EveryVocabularyValue(t *testing.T) {
	bank := testBank()
	for col, vocab := range bank {
		for want, label := range vocab {
			rec := model.CanonicalRecord{Country: "India", Department: "HR", Position: "Analyst"}
			switch col {
			case model.ColumnCountry:
				rec.Country = label
			case model.ColumnDepartment:
				rec.Department = label
			case model.ColumnPosition:
				rec.Position = label
			}
			encoded, err := bank.Encode(rec, []string{col})
			require.NoError(t, err)
			assert.Equal(t, float64(want), encoded.Values[0], "%s=%s", col, label)
		}
	}
}

func TestEncoderBank_UnknownLabel(t *testing.T) {
	bank := testBank()
	before := len(bank[model.ColumnPosition])
	rec := model.CanonicalRecord{Age: 30, Country: "India", Department: "Engineering", Position: "Totally Unknown Title"}

	encoded, err := bank.Encode(rec, model.FeatureColumns)

	require.Error(t, err)
	var unknown *UnknownLabelError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Position", unknown.Column)
	assert.Equal(t, "Totally Unknown Title", unknown.Value)
	assert.Empty(t, encoded.Values, "no partial result")
	assert.Len(t, bank[model.ColumnPosition], before, "vocabulary is not mutated")
	assert.Equal(t, "unknown label 'Totally Unknown Title' in column 'Position'", err.Error())
}

func TestEncoderBank_MissingVocabulary(t *testing.T) {
	bank := testBank()
	delete(bank, model.ColumnCountry)

	_, err := bank.Encode(model.CanonicalRecord{Country: "India"}, []string{model.ColumnCountry})
	assert.ErrorIs(t, err, ErrUnencodedColumn)
}

func TestFitScaler(t *testing.T) {
	rows := [][]float64{
		{1, 10, 7},
		{3, 20, 7},
		{5, 30, 7},
	}
	params, err := FitScaler([]string{"a", "b", "c"}, rows)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{3, 20, 7}, params.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/3.0), params.Std[0], 1e-12)
	assert.InDelta(t, math.Sqrt(200.0/3.0), params.Std[1], 1e-12)
	assert.Equal(t, 1.0, params.Std[2], "constant column gets unit scale")

	_, err = FitScaler([]string{"a", "b"}, rows)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = FitScaler([]string{"a"}, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestScalerParams_ScaleZeroVector(t *testing.T) {
	params := ScalerParams{
		Columns: []string{"a", "b", "c"},
		Mean:    []float64{10, -4, 0.5},
		Std:     []float64{2, 8, 0.25},
	}

	got := params.Scale([]float64{0, 0, 0})

	for i := range got {
		assert.InDelta(t, -params.Mean[i]/params.Std[i], got[i], 1e-12)
	}
}

func TestScalerParams_Linear(t *testing.T) {
	params := ScalerParams{
		Columns: []string{"a", "b"},
		Mean:    []float64{3, 1},
		Std:     []float64{2, 4},
	}
	x := []float64{7, 9}
	y := []float64{-1, 5}
	sum := []float64{x[0] + y[0], x[1] + y[1]}

	sx, sy, ssum, s0 := params.Scale(x), params.Scale(y), params.Scale(sum), params.Scale([]float64{0, 0})
	for i := range x {
		assert.InDelta(t, sx[i]+sy[i]-s0[i], ssum[i], 1e-12)
	}
}

func TestScalerParams_Idempotence(t *testing.T) {
	identity := ScalerParams{Columns: []string{"a", "b"}, Mean: []float64{0, 0}, Std: []float64{1, 1}}
	x := []float64{4, -2}
	assert.Equal(t, identity.Scale(x), identity.Scale(identity.Scale(x)))

	fitted := ScalerParams{Columns: []string{"a", "b"}, Mean: []float64{1, 1}, Std: []float64{2, 2}}
	once := fitted.Scale(x)
	twice := fitted.Scale(once)
	assert.NotEqual(t, once, twice, "scaling twice with fitted params changes the vector")
}

func TestScalerParams_Validate(t *testing.T) {
	ok := ScalerParams{Columns: []string{"a"}, Mean: []float64{0}, Std: []float64{1}}
	require.NoError(t, ok.Validate())

	short := ScalerParams{Columns: []string{"a", "b"}, Mean: []float64{0}, Std: []float64{1}}
	assert.ErrorIs(t, short.Validate(), ErrDimensionMismatch)

	zero := ScalerParams{Columns: []string{"a"}, Mean: []float64{0}, Std: []float64{0}}
	assert.Error(t, zero.Validate())
}

func testPreprocessor() Preprocessor {
	return Preprocessor{
		Columns:  model.FeatureColumns,
		Encoders: testBank(),
		Scaler: ScalerParams{
			Columns: model.FeatureColumns,
			Mean:    []float64{35, 2, 1, 2, 8},
			Std:     []float64{5, 1, 1, 1, 4},
		},
	}
}

func TestPreprocessor_Transform(t *testing.T) {
	p := testPreprocessor()
	require.NoError(t, p.Validate())

	raw := model.RawRecord{Age: 30, Country: "India", Department: "IT", Position: "Software Engineer", YearsExperience: 5}
	vec, err := p.Transform(raw, time.Now())
	require.NoError(t, err)

	// encoded: Age 30, India 2, Engineering 0, Developer 2, 5 years
	assert.InDeltaSlice(t, []float64{-1, 0, -1, 0, -0.75}, []float64(vec), 1e-12)
}

func TestPreprocessor_TransformUnknownPosition(t *testing.T) {
	p := testPreprocessor()
	raw := model.RawRecord{Age: 30, Country: "India", Department: "IT", Position: "Totally Unknown Title", YearsExperience: 5}

	vec, err := p.Transform(raw, time.Now())

	assert.Nil(t, vec)
	var unknown *UnknownLabelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, &UnknownLabelError{Column: "Position", Value: "Totally Unknown Title"}, unknown)
}

func TestPreprocessor_Validate(t *testing.T) {
	reordered := testPreprocessor()
	reordered.Scaler.Columns = []string{"Country", "Age", "Department", "Position", "YearsExperience"}
	assert.ErrorIs(t, reordered.Validate(), ErrDimensionMismatch)

	missingVocab := testPreprocessor()
	missingVocab.Encoders = EncoderBank{model.ColumnCountry: {"India"}}
	assert.ErrorIs(t, missingVocab.Validate(), ErrUnencodedColumn)

	empty := Preprocessor{}
	assert.Error(t, empty.Validate())
}
