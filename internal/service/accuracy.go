package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// accuracyWindow bounds the rolling accuracy score to the most recent
// tracked entries.
const accuracyWindow = 10

// UpdateForecastAccuracy compares realized spending against past
// predictions for all of the user's active forecasts. For each prediction
// month already in the past and not yet tracked, it fetches the actual
// spend; months with no realized data yet are skipped silently. Appends
// happen inside the store's locked update with the month check
// re-evaluated under the lock, so concurrent runs never double-append.
func (s *Service) UpdateForecastAccuracy(ctx context.Context, userID int64) (*models.AccuracyRunSummary, error) {
	forecasts, err := s.forecasts.FindForecastsByUser(ctx, userID, []string{models.StatusActive})
	if err != nil {
		return nil, err
	}

	summary := &models.AccuracyRunSummary{}
	now := s.now()

	for _, f := range forecasts {
		summary.ForecastsChecked++

		actuals := make(map[time.Time]float64)
		for _, p := range f.Predictions {
			if !p.Date.Before(now) || f.HasTrackedMonth(p.Date) {
				continue
			}
			monthStart := firstOfMonth(p.Date)
			monthEnd := monthStart.AddDate(0, 1, 0)
			actual, err := s.txs.FetchActualSpending(ctx, userID, f.Category, monthStart, monthEnd)
			if err != nil {
				return nil, fmt.Errorf("fetch actual spending: %w", err)
			}
			if actual == nil {
				summary.MonthsSkipped++
				continue
			}
			actuals[monthKey(p.Date)] = *actual
		}
		if len(actuals) == 0 {
			continue
		}

		added := 0
		err := s.forecasts.UpdateForecast(ctx, f.ID, func(stored *models.Forecast) (bool, error) {
			changed := stored.RefreshStatus(now)
			for _, p := range stored.Predictions {
				actual, ok := actuals[monthKey(p.Date)]
				if !ok || stored.HasTrackedMonth(p.Date) {
					continue
				}
				stored.AccuracyTracking = append(stored.AccuracyTracking, models.AccuracyEntry{
					PredictionDate:  p.Date,
					PredictedAmount: p.PredictedAmount,
					ActualAmount:    actual,
					ErrorPercentage: errorPercentage(p.PredictedAmount, actual),
					RecordedAt:      now,
				})
				added++
				changed = true
			}
			if added > 0 {
				stored.ModelMetadata.AccuracyScore = trackedAccuracyScore(stored.AccuracyTracking)
			}
			if changed {
				stored.UpdatedAt = now
			}
			return changed, nil
		})
		if err != nil {
			return nil, fmt.Errorf("update forecast %s: %w", f.ID, err)
		}
		summary.EntriesAdded += added
	}

	s.log.Infof("Accuracy run for user %d: %d forecasts, %d entries added, %d months pending",
		userID, summary.ForecastsChecked, summary.EntriesAdded, summary.MonthsSkipped)
	return summary, nil
}

// RefreshAllForecastAccuracy runs the tracker for every user owning
// active forecasts. Invoked by the scheduler; per-user failures are
// logged and do not abort the sweep.
func (s *Service) RefreshAllForecastAccuracy(ctx context.Context) {
	userIDs, err := s.forecasts.ListForecastUserIDs(ctx)
	if err != nil {
		s.log.Errorf("Accuracy sweep: list users: %v", err)
		return
	}
	for _, userID := range userIDs {
		if _, err := s.UpdateForecastAccuracy(ctx, userID); err != nil {
			s.log.Errorf("Accuracy sweep: user %d: %v", userID, err)
		}
	}
}

// errorPercentage is the signed realized error relative to the
// prediction. A zero prediction short-circuits to zero rather than
// producing an infinite value.
func errorPercentage(predicted, actual float64) float64 {
	if predicted == 0 {
		return 0
	}
	return (actual - predicted) / predicted * 100
}

// trackedAccuracyScore recomputes the rolling score over the most recent
// tracked entries. This is the only place the persisted score is
// recomputed after generation.
func trackedAccuracyScore(entries []models.AccuracyEntry) float64 {
	recent := entries
	if len(recent) > accuracyWindow {
		recent = recent[len(recent)-accuracyWindow:]
	}
	var sumAbs float64
	for _, e := range recent {
		sumAbs += math.Abs(e.ErrorPercentage)
	}
	return clampScore(100 - sumAbs/float64(len(recent)))
}
