package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/salary-oracle/internal/common"
	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/google/uuid"
)

// SavePrediction records one prediction attempt. An empty ID is filled with
// a new UUID and a zero CreatedAt with the current time.
func (s *SQLiteStorage) SavePrediction(ctx context.Context, p *model.Prediction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePrediction(p); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	return s.savePredictionTx(ctx, s.db, p)
}

func (s *SQLiteStorage) savePredictionTx(ctx context.Context, q queryable, p *model.Prediction) error {
	var salary sql.NullFloat64
	if p.Salary != nil {
		salary = sql.NullFloat64{Float64: *p.Salary, Valid: true}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO predictions (
			id, created_at, mode,
			employee_id, employee_name, age, country, department, position,
			years_experience, joining_date, salary, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.CreatedAt, string(p.Mode),
		p.Input.EmployeeID, p.Input.EmployeeName, p.Input.Age,
		p.Input.Country, p.Input.Department, p.Input.Position,
		p.Input.YearsExperience, p.Input.JoiningDate, salary, p.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// GetPrediction retrieves one prediction by ID.
func (s *SQLiteStorage) GetPrediction(ctx context.Context, id string) (*model.Prediction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectPredictions+` WHERE id = ?`, id)
	p, err := scanPrediction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPredictions returns the most recent predictions, newest first.
func (s *SQLiteStorage) ListPredictions(ctx context.Context, limit int) ([]model.Prediction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectPredictions+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var predictions []model.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

// CountPredictions returns how many attempts were recorded per mode.
func (s *SQLiteStorage) CountPredictions(ctx context.Context) (map[model.Mode]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT mode, COUNT(*) FROM predictions GROUP BY mode`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Mode]int)
	for rows.Next() {
		var mode string
		var n int
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[model.Mode(mode)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}
	return counts, nil
}

const selectPredictions = `
	SELECT id, created_at, mode,
		employee_id, employee_name, age, country, department, position,
		years_experience, joining_date, salary, error
	FROM predictions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*model.Prediction, error) {
	var (
		p                                 model.Prediction
		mode                              string
		employeeID, employeeName, joining sql.NullString
		errText                           sql.NullString
		salary                            sql.NullFloat64
	)

	err := row.Scan(
		&p.ID, &p.CreatedAt, &mode,
		&employeeID, &employeeName, &p.Input.Age,
		&p.Input.Country, &p.Input.Department, &p.Input.Position,
		&p.Input.YearsExperience, &joining, &salary, &errText,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}

	p.Mode = model.Mode(mode)
	p.Input.EmployeeID = employeeID.String
	p.Input.EmployeeName = employeeName.String
	p.Input.JoiningDate = joining.String
	p.Error = errText.String
	if salary.Valid {
		v := salary.Float64
		p.Salary = &v
	}

	return &p, nil
}
