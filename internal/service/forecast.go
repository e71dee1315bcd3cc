package service

import (
	"context"
	"fmt"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/google/uuid"
)

// defaultConfidenceLevel is used when the request omits one. The level is
// carried through as metadata; the band itself is always the 1.96-sigma
// normal approximation.
const defaultConfidenceLevel = 95

// ForecastRequest are the caller-supplied parameters of a generation run.
type ForecastRequest struct {
	PeriodType      string  `json:"period_type"`
	Category        string  `json:"category,omitempty"`
	Algorithm       string  `json:"algorithm,omitempty"`
	ConfidenceLevel float64 `json:"confidence_level,omitempty"`
}

// GenerateForecast runs the full pipeline: resolve windows, aggregate
// history, fit the selected model, derive seasonality, totals, budget
// comparison and advice, then persist the forecast as one document.
// All-or-nothing: any failure aborts before the write.
func (s *Service) GenerateForecast(ctx context.Context, userID int64, req ForecastRequest) (*models.Forecast, error) {
	algorithm, err := resolveAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	confidence := req.ConfidenceLevel
	if confidence == 0 {
		confidence = defaultConfidenceLevel
	}

	now := s.now()
	window, err := periodWindow(req.PeriodType, now)
	if err != nil {
		return nil, err
	}

	history, err := s.buildHistory(ctx, userID, req.Category, window)
	if err != nil {
		return nil, err
	}

	fit := fitModel(algorithm, history, window.forecastMonths(), confidence, now)
	aggregate := aggregateForecast(fit.Predictions, history)

	comparison, err := s.compareBudget(ctx, userID, req.Category, aggregate.TotalPredicted)
	if err != nil {
		return nil, err
	}
	recommendations, alerts := deriveAdvice(adviceScope(req.Category), aggregate, comparison, now)

	forecast := &models.Forecast{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: req.Category,
		Period: models.ForecastPeriod{
			StartDate:  window.ForecastStart,
			EndDate:    window.ForecastEnd,
			PeriodType: req.PeriodType,
		},
		Predictions:     fit.Predictions,
		Aggregate:       aggregate,
		SeasonalFactors: seasonalFactors(history),
		ModelMetadata:   fit.Meta,
		Comparison:      comparison,
		Alerts:          alerts,
		Recommendations: recommendations,
		Status:          models.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.forecasts.CreateForecast(ctx, forecast); err != nil {
		return nil, fmt.Errorf("persist forecast: %w", err)
	}

	s.log.Infof("Forecast %s generated for user %d: %s/%s, %d predictions, trend %s",
		forecast.ID, userID, req.PeriodType, algorithm, len(fit.Predictions), aggregate.Trend)
	return forecast, nil
}

// GetForecastByID returns one of the user's forecasts, applying the lazy
// expiry transition before returning it.
func (s *Service) GetForecastByID(ctx context.Context, id string, userID int64) (*models.Forecast, error) {
	forecast, err := s.forecasts.FindForecastByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.expireIfNeeded(ctx, forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

// GetUserForecasts lists the user's forecasts, active only by default.
// Expiry is applied first so a stale active forecast never leaks into an
// active-only listing.
func (s *Service) GetUserForecasts(ctx context.Context, userID int64, statuses []string) ([]*models.Forecast, error) {
	if len(statuses) == 0 {
		statuses = []string{models.StatusActive}
	}

	all, err := s.forecasts.FindForecastsByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	var out []*models.Forecast
	for _, f := range all {
		if err := s.expireIfNeeded(ctx, f); err != nil {
			return nil, err
		}
		for _, status := range statuses {
			if f.Status == status {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

// expireIfNeeded persists the lazy active-to-expired transition.
func (s *Service) expireIfNeeded(ctx context.Context, f *models.Forecast) error {
	now := s.now()
	if !f.RefreshStatus(now) {
		return nil
	}
	err := s.forecasts.UpdateForecast(ctx, f.ID, func(stored *models.Forecast) (bool, error) {
		if !stored.RefreshStatus(now) {
			return false, nil
		}
		stored.UpdatedAt = now
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("expire forecast %s: %w", f.ID, err)
	}
	s.log.Infof("Forecast %s expired for user %d", f.ID, f.UserID)
	return nil
}
