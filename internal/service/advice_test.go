package service

import (
	"testing"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonWithBudget(budget, total float64) models.Comparison {
	diff := total - budget
	return models.Comparison{
		VsBudget: models.BudgetComparison{
			BudgetAmount:     &budget,
			ForecastVsBudget: &diff,
			WillExceed:       diff > 0,
		},
	}
}

func TestDeriveAdviceBudgetExceeded(t *testing.T) {
	agg := models.AggregateForecast{TotalPredicted: 1200, AverageMonthly: 1200, Trend: models.TrendStable}
	recs, alerts := deriveAdvice("overall", agg, comparisonWithBudget(1000, 1200), testNow)

	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationIncreaseBudget, recs[0].Type)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	require.NotNil(t, recs[0].ImpactAmount)
	assert.InDelta(t, 200, *recs[0].ImpactAmount, 1e-9)

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertForecastExceedsBudget, alerts[0].Type)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, testNow, alerts[0].TriggeredAt)
	assert.False(t, alerts[0].Acknowledged)
}

func TestDeriveAdviceIncreasingTrendThresholds(t *testing.T) {
	// 18% fires the review recommendation but not the spike alert.
	agg := models.AggregateForecast{Trend: models.TrendIncreasing, TrendPercentage: 18}
	recs, alerts := deriveAdvice("food", agg, models.Comparison{}, testNow)
	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationReviewCategory, recs[0].Type)
	assert.Equal(t, models.PriorityMedium, recs[0].Priority)
	assert.Empty(t, alerts)

	// 25% fires both; the thresholds are independent.
	agg.TrendPercentage = 25
	recs, alerts = deriveAdvice("food", agg, models.Comparison{}, testNow)
	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationReviewCategory, recs[0].Type)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertUnusualSpike, alerts[0].Type)
	assert.Equal(t, models.SeverityMedium, alerts[0].Severity)
}

func TestDeriveAdviceSaveMore(t *testing.T) {
	agg := models.AggregateForecast{TotalPredicted: 700, Trend: models.TrendDecreasing, TrendPercentage: -12}
	recs, alerts := deriveAdvice("overall", agg, comparisonWithBudget(1000, 700), testNow)

	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationSaveMore, recs[0].Type)
	assert.Equal(t, models.PriorityLow, recs[0].Priority)
	require.NotNil(t, recs[0].ImpactAmount)
	assert.InDelta(t, 300, *recs[0].ImpactAmount, 1e-9, "impact is the absolute budget headroom")
	assert.Empty(t, alerts)
}

func TestDeriveAdviceSaveMoreWithoutBudget(t *testing.T) {
	agg := models.AggregateForecast{Trend: models.TrendDecreasing, TrendPercentage: -15}
	recs, _ := deriveAdvice("overall", agg, models.Comparison{}, testNow)

	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationSaveMore, recs[0].Type)
	assert.Nil(t, recs[0].ImpactAmount)
}

func TestDeriveAdviceNoRules(t *testing.T) {
	agg := models.AggregateForecast{Trend: models.TrendStable, TrendPercentage: 1}
	recs, alerts := deriveAdvice("overall", agg, comparisonWithBudget(1000, 900), testNow)
	assert.Empty(t, recs)
	assert.Empty(t, alerts)
}
