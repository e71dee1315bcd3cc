package service

import (
	"math"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// zScore95 is the normal-approximation multiplier every algorithm uses
// for its confidence band. The requested confidence level is carried on
// each prediction as metadata only.
const zScore95 = 1.96

// smoothingAlpha is the fixed factor for exponential smoothing.
const smoothingAlpha = 0.3

// movingAverageWindow caps the moving-average fitting window.
const movingAverageWindow = 3

// modelFit is the shared output contract of the three algorithms: one
// prediction per forecast month plus the fitted model's metadata.
type modelFit struct {
	Predictions []models.Prediction
	Meta        models.ModelMetadata
}

// resolveAlgorithm validates the requested algorithm. Only an omitted
// value falls back to the moving-average default; anything unrecognized
// is rejected before the model stage.
func resolveAlgorithm(algorithm string) (string, error) {
	switch algorithm {
	case "":
		return models.AlgorithmMovingAverage, nil
	case models.AlgorithmMovingAverage, models.AlgorithmLinearRegression, models.AlgorithmExponentialSmoothing:
		return algorithm, nil
	default:
		return "", ErrUnknownAlgorithm
	}
}

// fitModel dispatches to the selected algorithm. history has at least
// minHistoricalMonths points and months is non-empty.
func fitModel(algorithm string, history []historicalPoint, months []time.Time, confidenceLevel float64, now time.Time) modelFit {
	switch algorithm {
	case models.AlgorithmLinearRegression:
		return fitLinearRegression(history, months, confidenceLevel, now)
	case models.AlgorithmExponentialSmoothing:
		return fitExponentialSmoothing(history, months, confidenceLevel, now)
	default:
		return fitMovingAverage(history, months, confidenceLevel, now)
	}
}

// fitMovingAverage predicts the average of the last window of points as a
// flat value for every forecast month, with a band from the window's
// standard deviation.
func fitMovingAverage(history []historicalPoint, months []time.Time, confidenceLevel float64, now time.Time) modelFit {
	windowSize := movingAverageWindow
	if windowSize > len(history) {
		windowSize = len(history)
	}
	window := make([]float64, windowSize)
	for i, p := range history[len(history)-windowSize:] {
		window[i] = p.Amount
	}

	avg := mean(window)
	std := stdDev(window, avg)

	residuals := make([]float64, len(window))
	for i, v := range window {
		residuals[i] = v - avg
	}

	predictions := make([]models.Prediction, len(months))
	for i, month := range months {
		predictions[i] = models.Prediction{
			Date:            month,
			PredictedAmount: avg,
			ConfidenceLower: avg - zScore95*std,
			ConfidenceUpper: avg + zScore95*std,
			ConfidenceLevel: confidenceLevel,
		}
	}

	return modelFit{
		Predictions: predictions,
		Meta:        fitMetadata(models.AlgorithmMovingAverage, residuals, avg, len(history), now),
	}
}

// fitLinearRegression fits ordinary least squares of amount on a 0-based
// month index over the whole history and extrapolates future indices.
// Predictions are floored at zero; the band comes from the residual
// standard deviation with n-2 degrees of freedom.
func fitLinearRegression(history []historicalPoint, months []time.Time, confidenceLevel float64, now time.Time) modelFit {
	n := len(history)
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range history {
		x := float64(i)
		sumX += x
		sumY += p.Amount
		sumXY += x * p.Amount
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	var slope, intercept float64
	if denom != 0 {
		slope = (float64(n)*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / float64(n)
	} else {
		intercept = sumY / float64(n)
	}

	residuals := make([]float64, n)
	var sumSq float64
	for i, p := range history {
		residuals[i] = p.Amount - (slope*float64(i) + intercept)
		sumSq += residuals[i] * residuals[i]
	}
	var residualStd float64
	if n > 2 {
		residualStd = math.Sqrt(sumSq / float64(n-2))
	}

	predictions := make([]models.Prediction, len(months))
	for i, month := range months {
		x := float64(n + i)
		predicted := math.Max(0, slope*x+intercept)
		predictions[i] = models.Prediction{
			Date:            month,
			PredictedAmount: predicted,
			ConfidenceLower: math.Max(0, predicted-zScore95*residualStd),
			ConfidenceUpper: predicted + zScore95*residualStd,
			ConfidenceLevel: confidenceLevel,
		}
	}

	meta := fitMetadata(models.AlgorithmLinearRegression, residuals, mean(amounts(history)), n, now)
	meta.RMSE = residualStd
	return modelFit{Predictions: predictions, Meta: meta}
}

// fitExponentialSmoothing smooths the series with a fixed alpha and
// predicts the last smoothed level flat across the forecast window. No
// trend extrapolation: a deliberate simplicity/variance tradeoff.
func fitExponentialSmoothing(history []historicalPoint, months []time.Time, confidenceLevel float64, now time.Time) modelFit {
	n := len(history)
	smoothed := make([]float64, n)
	smoothed[0] = history[0].Amount
	for i := 1; i < n; i++ {
		smoothed[i] = smoothingAlpha*history[i].Amount + (1-smoothingAlpha)*smoothed[i-1]
	}

	residuals := make([]float64, n)
	var sumSq float64
	for i := range history {
		residuals[i] = history[i].Amount - smoothed[i]
		sumSq += residuals[i] * residuals[i]
	}
	residualStd := math.Sqrt(sumSq / float64(n))

	level := smoothed[n-1]
	predictions := make([]models.Prediction, len(months))
	for i, month := range months {
		predictions[i] = models.Prediction{
			Date:            month,
			PredictedAmount: level,
			ConfidenceLower: math.Max(0, level-zScore95*residualStd),
			ConfidenceUpper: level + zScore95*residualStd,
			ConfidenceLevel: confidenceLevel,
		}
	}

	return modelFit{
		Predictions: predictions,
		Meta:        fitMetadata(models.AlgorithmExponentialSmoothing, residuals, mean(amounts(history)), n, now),
	}
}

// fitMetadata derives RMSE, MAE and the accuracy score from in-sample
// residuals. base is the average level the MAE is scored against; a zero
// base short-circuits the ratio to an accuracy of zero.
func fitMetadata(algorithm string, residuals []float64, base float64, trainingPoints int, now time.Time) models.ModelMetadata {
	var sumSq, sumAbs float64
	for _, r := range residuals {
		sumSq += r * r
		sumAbs += math.Abs(r)
	}
	rmse := math.Sqrt(sumSq / float64(len(residuals)))
	mae := sumAbs / float64(len(residuals))

	var accuracy float64
	if base != 0 {
		accuracy = clampScore(100 - mae/base*100)
	}

	return models.ModelMetadata{
		Algorithm:          algorithm,
		AccuracyScore:      accuracy,
		RMSE:               rmse,
		MAE:                mae,
		TrainingDataPoints: trainingPoints,
		LastTrained:        now,
	}
}

func amounts(points []historicalPoint) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Amount
	}
	return vals
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stdDev is the population standard deviation about avg.
func stdDev(vals []float64, avg float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range vals {
		d := v - avg
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(vals)))
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
