package service

import (
	"context"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// GetForecastSummary rolls up the user's active forecasts for dashboard
// display: predicted total, a per-category breakdown, unacknowledged
// alert counts by severity, and the average accuracy score across
// forecasts that have at least one tracked entry. Forecasts without
// tracking data are excluded from the average, not counted as zero.
func (s *Service) GetForecastSummary(ctx context.Context, userID int64) (*models.DashboardSummary, error) {
	forecasts, err := s.GetUserForecasts(ctx, userID, []string{models.StatusActive})
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		Categories:           make([]models.CategorySummary, 0, len(forecasts)),
		UnacknowledgedAlerts: make(map[string]int),
		ForecastCount:        len(forecasts),
	}

	var accuracySum float64
	var accuracyCount int
	for _, f := range forecasts {
		summary.TotalPredictedSpending += f.Aggregate.TotalPredicted

		cat := models.CategorySummary{
			Category:  f.Category,
			Predicted: f.Aggregate.TotalPredicted,
			Trend:     f.Aggregate.Trend,
		}
		if len(f.AccuracyTracking) > 0 {
			score := f.ModelMetadata.AccuracyScore
			cat.Accuracy = &score
			accuracySum += score
			accuracyCount++
		}
		summary.Categories = append(summary.Categories, cat)

		for _, a := range f.Alerts {
			if !a.Acknowledged {
				summary.UnacknowledgedAlerts[a.Severity]++
			}
		}
	}

	if accuracyCount > 0 {
		avg := accuracySum / float64(accuracyCount)
		summary.AverageAccuracy = &avg
	}
	return summary, nil
}
