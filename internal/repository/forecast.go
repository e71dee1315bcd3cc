package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/service"
	"github.com/lib/pq"
)

// Forecasts are stored as whole JSON documents: one addressable record
// per forecast, with user_id and status lifted into columns for querying.

// CreateForecast persists a freshly generated forecast atomically.
func (r *Repository) CreateForecast(ctx context.Context, f *models.Forecast) error {
	doc, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	query := `
		INSERT INTO forecasts (id, user_id, status, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, f.ID, f.UserID, f.Status, doc, f.CreatedAt, f.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create forecast: %w", err)
	}
	return nil
}

// FindForecastByID retrieves one forecast owned by the user.
func (r *Repository) FindForecastByID(ctx context.Context, id string, userID int64) (*models.Forecast, error) {
	query := `SELECT doc FROM forecasts WHERE id = $1 AND user_id = $2`
	var doc []byte
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, service.ErrForecastNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find forecast: %w", err)
	}
	return decodeForecast(doc)
}

// FindForecastsByUser retrieves the user's forecasts, optionally
// filtered by status, newest first.
func (r *Repository) FindForecastsByUser(ctx context.Context, userID int64, statuses []string) ([]*models.Forecast, error) {
	query := `SELECT doc FROM forecasts WHERE user_id = $1`
	args := []interface{}{userID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, pq.Array(statuses))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []*models.Forecast
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		f, err := decodeForecast(doc)
		if err != nil {
			return nil, err
		}
		forecasts = append(forecasts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read forecasts: %w", err)
	}
	return forecasts, nil
}

// UpdateForecast applies mutate to the stored document under a row lock
// and persists it only when the callback reports a change. Two
// concurrent accuracy runs therefore serialize on the row, and the
// second sees the first's appended entries before deciding.
func (r *Repository) UpdateForecast(ctx context.Context, id string, mutate func(*models.Forecast) (bool, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM forecasts WHERE id = $1 FOR UPDATE`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return service.ErrForecastNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock forecast: %w", err)
	}

	f, err := decodeForecast(doc)
	if err != nil {
		return err
	}

	changed, err := mutate(f)
	if err != nil {
		return err
	}
	if !changed {
		return tx.Commit()
	}

	updated, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	query := `UPDATE forecasts SET status = $2, doc = $3, updated_at = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id, f.Status, updated, f.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update forecast: %w", err)
	}
	return tx.Commit()
}

// ListForecastUserIDs returns every user owning at least one active
// forecast, for the scheduled accuracy sweep.
func (r *Repository) ListForecastUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM forecasts WHERE status = 'active'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecast users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read forecast users: %w", err)
	}
	return ids, nil
}

func decodeForecast(doc []byte) (*models.Forecast, error) {
	f := &models.Forecast{}
	if err := json.Unmarshal(doc, f); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	return f, nil
}
