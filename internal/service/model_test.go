package service

import (
	"testing"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHistory(amounts ...float64) []historicalPoint {
	points := make([]historicalPoint, len(amounts))
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, amount := range amounts {
		points[i] = historicalPoint{Date: start.AddDate(0, i, 0), Amount: amount}
	}
	return points
}

func testMonths(n int) []time.Time {
	months := make([]time.Time, n)
	start := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	for i := range months {
		months[i] = start.AddDate(0, i, 0)
	}
	return months
}

func TestResolveAlgorithm(t *testing.T) {
	got, err := resolveAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, models.AlgorithmMovingAverage, got, "omitted algorithm defaults to moving average")

	for _, algorithm := range []string{
		models.AlgorithmMovingAverage,
		models.AlgorithmLinearRegression,
		models.AlgorithmExponentialSmoothing,
	} {
		got, err := resolveAlgorithm(algorithm)
		require.NoError(t, err)
		assert.Equal(t, algorithm, got)
	}

	_, err = resolveAlgorithm("arima")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestMovingAverageDeterminism(t *testing.T) {
	fit := fitMovingAverage(testHistory(100, 200, 300), testMonths(2), 95, testNow)

	require.Len(t, fit.Predictions, 2)
	for _, p := range fit.Predictions {
		assert.InDelta(t, 200, p.PredictedAmount, 1e-9)
		assert.InDelta(t, 200-1.96*81.6497, p.ConfidenceLower, 0.01)
		assert.InDelta(t, 200+1.96*81.6497, p.ConfidenceUpper, 0.01)
		assert.Equal(t, 95.0, p.ConfidenceLevel)
	}

	// Window residuals: -100, 0, 100.
	assert.InDelta(t, 81.6497, fit.Meta.RMSE, 0.001)
	assert.InDelta(t, 66.6667, fit.Meta.MAE, 0.001)
	assert.InDelta(t, 100-66.6667/200*100, fit.Meta.AccuracyScore, 0.001)
	assert.Equal(t, models.AlgorithmMovingAverage, fit.Meta.Algorithm)
	assert.Equal(t, 3, fit.Meta.TrainingDataPoints)
}

func TestMovingAverageWindowClampedToHistory(t *testing.T) {
	// Window uses the last three points only.
	fit := fitMovingAverage(testHistory(1000, 100, 200, 300), testMonths(1), 95, testNow)
	assert.InDelta(t, 200, fit.Predictions[0].PredictedAmount, 1e-9)
	assert.Equal(t, 4, fit.Meta.TrainingDataPoints)
}

func TestLinearRegressionTrendContinuation(t *testing.T) {
	fit := fitLinearRegression(testHistory(100, 200, 300), testMonths(2), 95, testNow)

	require.Len(t, fit.Predictions, 2)
	// Perfectly linear history: slope 100, intercept 100, index 3 -> 400.
	assert.InDelta(t, 400, fit.Predictions[0].PredictedAmount, 1e-6)
	assert.InDelta(t, 500, fit.Predictions[1].PredictedAmount, 1e-6)
	assert.InDelta(t, 0, fit.Meta.RMSE, 1e-6)
	assert.InDelta(t, 0, fit.Meta.MAE, 1e-6)
	assert.InDelta(t, 100, fit.Meta.AccuracyScore, 1e-6)
}

func TestLinearRegressionFloorsAtZero(t *testing.T) {
	fit := fitLinearRegression(testHistory(300, 200, 100), testMonths(4), 95, testNow)
	last := fit.Predictions[3]
	assert.Equal(t, 0.0, last.PredictedAmount, "steep downtrend never predicts negative spend")
	assert.GreaterOrEqual(t, last.ConfidenceLower, 0.0)
}

func TestExponentialSmoothingFlatForecast(t *testing.T) {
	fit := fitExponentialSmoothing(testHistory(100, 200, 300), testMonths(3), 95, testNow)

	// smoothed: 100, 130, 181 with alpha 0.3; flat forecast at the last level.
	require.Len(t, fit.Predictions, 3)
	for _, p := range fit.Predictions {
		assert.InDelta(t, 181, p.PredictedAmount, 1e-9)
	}

	// residuals: 0, 70, 119.
	assert.InDelta(t, 79.7099, fit.Meta.RMSE, 0.001)
	assert.InDelta(t, 63, fit.Meta.MAE, 0.001)
}

func TestConfidenceContainment(t *testing.T) {
	history := testHistory(120, 80, 340, 95, 210, 15)
	months := testMonths(3)

	for _, algorithm := range []string{
		models.AlgorithmMovingAverage,
		models.AlgorithmLinearRegression,
		models.AlgorithmExponentialSmoothing,
	} {
		t.Run(algorithm, func(t *testing.T) {
			fit := fitModel(algorithm, history, months, 95, testNow)
			require.Len(t, fit.Predictions, 3)
			for _, p := range fit.Predictions {
				assert.LessOrEqual(t, p.ConfidenceLower, p.PredictedAmount)
				assert.GreaterOrEqual(t, p.ConfidenceUpper, p.PredictedAmount)
			}
		})
	}
}

func TestFitMetadataZeroAverageGuard(t *testing.T) {
	// All-zero history: no division blowups, every metric finite.
	for _, algorithm := range []string{
		models.AlgorithmMovingAverage,
		models.AlgorithmLinearRegression,
		models.AlgorithmExponentialSmoothing,
	} {
		fit := fitModel(algorithm, testHistory(0, 0, 0), testMonths(1), 95, testNow)
		assert.Equal(t, 0.0, fit.Meta.AccuracyScore)
		assert.Equal(t, 0.0, fit.Meta.RMSE)
		assert.Equal(t, 0.0, fit.Predictions[0].PredictedAmount)
	}
}
