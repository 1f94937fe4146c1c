package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Veraticus/salary-oracle/internal/model"
)

// ErrUnencodedColumn is returned when a categorical column has no vocabulary.
var ErrUnencodedColumn = errors.New("categorical column has no vocabulary")

// UnknownLabelError reports a category value the model never saw in training.
type UnknownLabelError struct {
	Column string
	Value  string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label '%s' in column '%s'", e.Value, e.Column)
}

// Vocabulary is the ordered set of distinct labels of one column.
// A label's code is its index.
type Vocabulary []string

// FitVocabulary builds a vocabulary from observed values: distinct, sorted.
func FitVocabulary(values []string) Vocabulary {
	seen := make(map[string]struct{}, len(values))
	vocab := make(Vocabulary, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vocab = append(vocab, v)
	}
	sort.Strings(vocab)
	return vocab
}

// Index returns the code of a label.
func (v Vocabulary) Index(label string) (int, bool) {
	for i, l := range v {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// EncoderBank holds one vocabulary per categorical column.
type EncoderBank map[string]Vocabulary

// FitEncoderBank fits a vocabulary for every categorical column of the rows.
func FitEncoderBank(rows []model.CanonicalRecord, columns []string) EncoderBank {
	bank := make(EncoderBank, len(columns))
	for _, col := range columns {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if v, ok := row.Text(col); ok {
				values = append(values, v)
			}
		}
		bank[col] = FitVocabulary(values)
	}
	return bank
}

// Encode lays the record out in column order, replacing every categorical
// value by its code. It fails on the first out-of-vocabulary value and
// returns no partial result.
func (b EncoderBank) Encode(rec model.CanonicalRecord, columns []string) (model.EncodedRecord, error) {
	values := make([]float64, len(columns))
	for i, col := range columns {
		if text, ok := rec.Text(col); ok {
			vocab, known := b[col]
			if !known {
				return model.EncodedRecord{}, fmt.Errorf("%w: %s", ErrUnencodedColumn, col)
			}
			code, found := vocab.Index(text)
			if !found {
				return model.EncodedRecord{}, &UnknownLabelError{Column: col, Value: text}
			}
			values[i] = float64(code)
			continue
		}
		num, ok := rec.Number(col)
		if !ok {
			return model.EncodedRecord{}, fmt.Errorf("unknown feature column %q", col)
		}
		values[i] = num
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return model.EncodedRecord{Columns: cols, Values: values}, nil
}
