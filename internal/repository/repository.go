package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FetchTransactions returns the user's expense transactions in [start, end),
// filtered by category when category is non-empty, ordered by date.
func (r *Repository) FetchTransactions(ctx context.Context, userID int64, category string, start, end time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, category, amount, description, date, created_at
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3`
	args := []interface{}{userID, start, end}
	if category != "" {
		query += ` AND category = $4`
		args = append(args, category)
	}
	query += ` ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Category, &tx.Amount, &tx.Description, &tx.Date, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txs, nil
}

// FetchActualSpending sums the user's realized spend for one month, or
// returns nil when no transactions exist for that month yet.
func (r *Repository) FetchActualSpending(ctx context.Context, userID int64, category string, monthStart, monthEnd time.Time) (*float64, error) {
	query := `
		SELECT SUM(amount)
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3`
	args := []interface{}{userID, monthStart, monthEnd}
	if category != "" {
		query += ` AND category = $4`
		args = append(args, category)
	}

	var total sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to fetch actual spending: %w", err)
	}
	if !total.Valid {
		return nil, nil
	}
	return &total.Float64, nil
}

// FetchActiveBudget returns the user's active budget for the category,
// or the overall budget when category is empty. nil when none exists.
func (r *Repository) FetchActiveBudget(ctx context.Context, userID int64, category string) (*models.Budget, error) {
	budget := &models.Budget{}
	var row *sql.Row
	if category == "" {
		query := `
			SELECT id, user_id, COALESCE(category, ''), amount, active, created_at, updated_at
			FROM budgets
			WHERE user_id = $1 AND active AND category IS NULL`
		row = r.db.QueryRowContext(ctx, query, userID)
	} else {
		query := `
			SELECT id, user_id, COALESCE(category, ''), amount, active, created_at, updated_at
			FROM budgets
			WHERE user_id = $1 AND active AND category = $2`
		row = r.db.QueryRowContext(ctx, query, userID, category)
	}

	err := row.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Amount, &budget.Active, &budget.CreatedAt, &budget.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active budget: %w", err)
	}
	return budget, nil
}
