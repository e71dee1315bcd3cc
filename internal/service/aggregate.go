package service

import (
	"math"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// aggregateForecast totals the predictions and classifies the trend of
// the forecast average against the historical average.
//
// Classification precedence, in order: >= +10% increasing, <= -10%
// decreasing, |pct| < 5% stable, anything else volatile. The boundaries
// at exactly +-10 are inclusive.
func aggregateForecast(predictions []models.Prediction, history []historicalPoint) models.AggregateForecast {
	var total float64
	for _, p := range predictions {
		total += p.PredictedAmount
	}
	avgMonthly := total / float64(len(predictions))

	historicalAvg := mean(amounts(history))
	var trendPct float64
	if historicalAvg != 0 {
		trendPct = (avgMonthly - historicalAvg) / historicalAvg * 100
	}

	return models.AggregateForecast{
		TotalPredicted:  total,
		AverageMonthly:  avgMonthly,
		Trend:           classifyTrend(trendPct),
		TrendPercentage: trendPct,
	}
}

func classifyTrend(trendPct float64) string {
	switch {
	case trendPct >= 10:
		return models.TrendIncreasing
	case trendPct <= -10:
		return models.TrendDecreasing
	case math.Abs(trendPct) < 5:
		return models.TrendStable
	default:
		return models.TrendVolatile
	}
}
