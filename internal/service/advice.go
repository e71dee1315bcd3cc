package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// Recommendation and alert types.
const (
	RecommendationIncreaseBudget = "increase_budget"
	RecommendationReviewCategory = "review_category"
	RecommendationSaveMore       = "save_more"

	AlertForecastExceedsBudget = "forecast_exceeds_budget"
	AlertUnusualSpike          = "unusual_spike"
)

// Trend thresholds for the advisory rules. The spike alert fires
// independently of the review recommendation; both can trigger.
const (
	reviewTrendThreshold = 15
	spikeTrendThreshold  = 20
)

// compareBudget looks up the active budget for the forecast's scope and
// compares the predicted total against it. A missing budget yields nil
// amounts and WillExceed false.
func (s *Service) compareBudget(ctx context.Context, userID int64, category string, totalPredicted float64) (models.Comparison, error) {
	budget, err := s.budgets.FetchActiveBudget(ctx, userID, category)
	if err != nil {
		return models.Comparison{}, fmt.Errorf("fetch active budget: %w", err)
	}
	if budget == nil {
		return models.Comparison{}, nil
	}

	diff := totalPredicted - budget.Amount
	return models.Comparison{
		VsBudget: models.BudgetComparison{
			BudgetAmount:     &budget.Amount,
			ForecastVsBudget: &diff,
			WillExceed:       diff > 0,
		},
	}, nil
}

// deriveAdvice evaluates the advisory rules over the already-computed
// aggregate and budget comparison. Pure rule evaluation: no data access.
func deriveAdvice(scope string, agg models.AggregateForecast, cmp models.Comparison, now time.Time) ([]models.Recommendation, []models.Alert) {
	var recommendations []models.Recommendation
	var alerts []models.Alert

	vs := cmp.VsBudget
	if vs.WillExceed {
		recommendations = append(recommendations, models.Recommendation{
			Type:         RecommendationIncreaseBudget,
			Title:        "Forecast exceeds budget",
			Description:  fmt.Sprintf("Predicted %s spending is %.2f over the active budget. Consider raising the budget or cutting back.", scope, *vs.ForecastVsBudget),
			ImpactAmount: vs.ForecastVsBudget,
			Priority:     models.PriorityHigh,
		})
		alerts = append(alerts, models.Alert{
			Type:        AlertForecastExceedsBudget,
			Severity:    models.SeverityHigh,
			Message:     fmt.Sprintf("Forecasted %s spending of %.2f exceeds the budget of %.2f.", scope, agg.TotalPredicted, *vs.BudgetAmount),
			TriggeredAt: now,
		})
	}

	if agg.Trend == models.TrendIncreasing && agg.TrendPercentage > reviewTrendThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Type:        RecommendationReviewCategory,
			Title:       "Spending is trending up",
			Description: fmt.Sprintf("Your %s spending is forecast %.1f%% above its historical average. Review recent transactions for anything unexpected.", scope, agg.TrendPercentage),
			Priority:    models.PriorityMedium,
		})
	}

	if agg.Trend == models.TrendIncreasing && agg.TrendPercentage > spikeTrendThreshold {
		alerts = append(alerts, models.Alert{
			Type:        AlertUnusualSpike,
			Severity:    models.SeverityMedium,
			Message:     fmt.Sprintf("Unusual increase detected: %s spending is forecast %.1f%% above its historical average.", scope, agg.TrendPercentage),
			TriggeredAt: now,
		})
	}

	if agg.Trend == models.TrendDecreasing && !vs.WillExceed {
		var impact *float64
		if vs.ForecastVsBudget != nil {
			headroom := math.Abs(*vs.ForecastVsBudget)
			impact = &headroom
		}
		recommendations = append(recommendations, models.Recommendation{
			Type:         RecommendationSaveMore,
			Title:        "Spending is trending down",
			Description:  fmt.Sprintf("Your %s spending is forecast below its historical average. A good moment to move the difference into savings.", scope),
			ImpactAmount: impact,
			Priority:     models.PriorityLow,
		})
	}

	return recommendations, alerts
}

// adviceScope renders the forecast's scope for human-readable messages.
func adviceScope(category string) string {
	if category == "" {
		return "overall"
	}
	return category
}
