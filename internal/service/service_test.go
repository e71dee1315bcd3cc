package service

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/config"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/sirupsen/logrus"
)

// testNow is the fixed clock all service tests run against.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// fakeTxSource serves canned transactions and per-month actuals.
type fakeTxSource struct {
	txs     []models.Transaction
	actuals map[time.Time]float64 // keyed by monthKey
	err     error
}

func (f *fakeTxSource) FetchTransactions(_ context.Context, userID int64, category string, start, end time.Time) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Transaction
	for _, tx := range f.txs {
		if tx.UserID != userID || tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeTxSource) FetchActualSpending(_ context.Context, _ int64, _ string, monthStart, _ time.Time) (*float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	amount, ok := f.actuals[monthKey(monthStart)]
	if !ok {
		return nil, nil
	}
	return &amount, nil
}

// fakeBudgetSource returns one fixed budget, or none.
type fakeBudgetSource struct {
	budget *models.Budget
	err    error
}

func (f *fakeBudgetSource) FetchActiveBudget(_ context.Context, _ int64, category string) (*models.Budget, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.budget == nil || f.budget.Category != category {
		return nil, nil
	}
	return f.budget, nil
}

// fakeStore is an in-memory document store. Documents round-trip through
// JSON on every read and write so tests observe the same aliasing rules
// as the real store.
type fakeStore struct {
	mu        sync.Mutex
	forecasts map[string]*models.Forecast
}

func newFakeStore() *fakeStore {
	return &fakeStore{forecasts: make(map[string]*models.Forecast)}
}

func cloneForecast(f *models.Forecast) *models.Forecast {
	doc, _ := json.Marshal(f)
	out := &models.Forecast{}
	_ = json.Unmarshal(doc, out)
	return out
}

func (s *fakeStore) CreateForecast(_ context.Context, f *models.Forecast) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecasts[f.ID] = cloneForecast(f)
	return nil
}

func (s *fakeStore) FindForecastByID(_ context.Context, id string, userID int64) (*models.Forecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forecasts[id]
	if !ok || f.UserID != userID {
		return nil, ErrForecastNotFound
	}
	return cloneForecast(f), nil
}

func (s *fakeStore) FindForecastsByUser(_ context.Context, userID int64, statuses []string) ([]*models.Forecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Forecast
	for _, f := range s.forecasts {
		if f.UserID != userID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, status := range statuses {
				if f.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, cloneForecast(f))
	}
	return out, nil
}

func (s *fakeStore) UpdateForecast(_ context.Context, id string, mutate func(*models.Forecast) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forecasts[id]
	if !ok {
		return ErrForecastNotFound
	}
	working := cloneForecast(f)
	changed, err := mutate(working)
	if err != nil {
		return err
	}
	if changed {
		s.forecasts[id] = working
	}
	return nil
}

func (s *fakeStore) ListForecastUserIDs(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]bool)
	var ids []int64
	for _, f := range s.forecasts {
		if f.Status == models.StatusActive && !seen[f.UserID] {
			seen[f.UserID] = true
			ids = append(ids, f.UserID)
		}
	}
	return ids, nil
}

type fakeUserSource struct{}

func (fakeUserSource) CreateUser(_ context.Context, _ *models.User) error { return nil }
func (fakeUserSource) FindUserByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, ErrInvalidCredentials
}

func newTestService(t *testing.T, store *fakeStore, txs *fakeTxSource, budgets *fakeBudgetSource) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewService(store, txs, budgets, fakeUserSource{}, logger, &config.Config{JWTSecret: "test"})
	svc.now = func() time.Time { return testNow }
	return svc
}

// monthlyTx builds one transaction dated monthsAgo calendar months before
// the fixed test clock.
func monthlyTx(userID int64, category string, monthsAgo int, amount float64) models.Transaction {
	return models.Transaction{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Date:     testNow.AddDate(0, -monthsAgo, 0),
	}
}
