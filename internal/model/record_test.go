package model

import (
	"testing"
	"time"

	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() RawRecord {
	return RawRecord{
		Age:             30,
		Country:         "India",
		Department:      "IT",
		Position:        "Software Engineer",
		YearsExperience: 5,
	}
}

func TestRawRecord_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*RawRecord)
		name    string
		wantErr bool
	}{
		{name: "valid record", mutate: func(*RawRecord) {}},
		{name: "youngest allowed", mutate: func(r *RawRecord) { r.Age = MinAge }},
		{name: "oldest allowed", mutate: func(r *RawRecord) { r.Age = MaxAge }},
		{name: "too young", mutate: func(r *RawRecord) { r.Age = 17 }, wantErr: true},
		{name: "too old", mutate: func(r *RawRecord) { r.Age = 66 }, wantErr: true},
		{name: "negative experience", mutate: func(r *RawRecord) { r.YearsExperience = -1 }, wantErr: true},
		{name: "too much experience", mutate: func(r *RawRecord) { r.YearsExperience = 41 }, wantErr: true},
		{name: "missing country", mutate: func(r *RawRecord) { r.Country = " " }, wantErr: true},
		{name: "missing department", mutate: func(r *RawRecord) { r.Department = "" }, wantErr: true},
		{name: "missing position", mutate: func(r *RawRecord) { r.Position = "" }, wantErr: true},
		{name: "valid joining date", mutate: func(r *RawRecord) { r.JoiningDate = "2019-04-01" }},
		{name: "bad joining date", mutate: func(r *RawRecord) { r.JoiningDate = "04/01/2019" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRecord)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRawRecord_ExperienceAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rec := validRecord()
	assert.Equal(t, 5.0, rec.ExperienceAt(now))

	rec.JoiningDate = "2018-11-30"
	assert.Equal(t, 7.0, rec.ExperienceAt(now), "joining date wins and uses calendar years")
}

func TestCanonicalRecord_Accessors(t *testing.T) {
	c := CanonicalRecord{Age: 30, Country: "India", Department: "Engineering", Position: "Developer", YearsExperience: 5}

	for _, col := range CategoricalColumns {
		_, ok := c.Text(col)
		assert.True(t, ok, col)
		_, ok = c.Number(col)
		assert.False(t, ok, col)
	}

	age, ok := c.Number(ColumnAge)
	require.True(t, ok)
	assert.Equal(t, 30.0, age)

	_, ok = c.Text("Salary")
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("local")
	assert.True(t, ok)
	assert.Equal(t, ModeLocal, m)

	m, ok = ParseMode("remote")
	assert.True(t, ok)
	assert.Equal(t, ModeRemote, m)

	_, ok = ParseMode("watsonx")
	assert.False(t, ok)
}
