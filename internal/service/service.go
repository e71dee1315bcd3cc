package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/config"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// TransactionSource provides the spending history a forecast is fitted on.
type TransactionSource interface {
	// FetchTransactions returns all expense transactions for the user in
	// [start, end), filtered by category when category is non-empty.
	FetchTransactions(ctx context.Context, userID int64, category string, start, end time.Time) ([]models.Transaction, error)

	// FetchActualSpending returns the realized spend for one calendar
	// month, or nil when no data exists for that month yet.
	FetchActualSpending(ctx context.Context, userID int64, category string, monthStart, monthEnd time.Time) (*float64, error)
}

// BudgetSource provides the active budget for a forecast's scope.
type BudgetSource interface {
	// FetchActiveBudget returns the user's active budget for the category
	// (overall budget when category is empty), or nil when none exists.
	FetchActiveBudget(ctx context.Context, userID int64, category string) (*models.Budget, error)
}

// ForecastStore persists forecasts as whole documents. UpdateForecast must
// run the mutate callback under a write lock on the document and persist
// only when the callback reports a change; this is what keeps concurrent
// accuracy-tracker runs from double-appending an entry for the same month.
type ForecastStore interface {
	CreateForecast(ctx context.Context, f *models.Forecast) error
	FindForecastByID(ctx context.Context, id string, userID int64) (*models.Forecast, error)
	FindForecastsByUser(ctx context.Context, userID int64, statuses []string) ([]*models.Forecast, error)
	UpdateForecast(ctx context.Context, id string, mutate func(*models.Forecast) (bool, error)) error
	ListForecastUserIDs(ctx context.Context) ([]int64, error)
}

// UserSource provides user lookup for the auth surface.
type UserSource interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service handles business logic
type Service struct {
	forecasts ForecastStore
	txs       TransactionSource
	budgets   BudgetSource
	users     UserSource
	log       *logrus.Logger
	config    *config.Config
	now       func() time.Time
}

// NewService initializes a new service
func NewService(forecasts ForecastStore, txs TransactionSource, budgets BudgetSource, users UserSource, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		forecasts: forecasts,
		txs:       txs,
		budgets:   budgets,
		users:     users,
		log:       log,
		config:    cfg,
		now:       time.Now,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
