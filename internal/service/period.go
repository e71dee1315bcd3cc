package service

import (
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

// forecastWindow is the pair of date ranges a forecast request resolves
// to: the future range being predicted and the past range the model is
// fitted on. Each period type trades lookahead for enough lookback to fit.
type forecastWindow struct {
	ForecastStart   time.Time
	ForecastEnd     time.Time
	HistoricalStart time.Time
	HistoricalEnd   time.Time
}

// periodWindow derives both windows from the period type and current time.
func periodWindow(periodType string, now time.Time) (forecastWindow, error) {
	w := forecastWindow{ForecastStart: now, HistoricalEnd: now}
	switch periodType {
	case models.PeriodWeekly:
		w.ForecastEnd = now.AddDate(0, 0, 7)
		w.HistoricalStart = now.AddDate(0, 0, -90)
	case models.PeriodMonthly:
		w.ForecastEnd = now.AddDate(0, 1, 0)
		w.HistoricalStart = now.AddDate(0, -12, 0)
	case models.PeriodQuarterly:
		w.ForecastEnd = now.AddDate(0, 3, 0)
		w.HistoricalStart = now.AddDate(0, -24, 0)
	case models.PeriodYearly:
		w.ForecastEnd = now.AddDate(0, 12, 0)
		w.HistoricalStart = now.AddDate(0, -36, 0)
	default:
		return forecastWindow{}, ErrUnknownPeriodType
	}
	return w, nil
}

// forecastMonths lists the first-of-month dates the predictions are keyed
// on. History is bucketed by calendar month for every period type, so the
// forecast side is monthly-grained as well: one date per calendar month
// the forecast window touches, always at least one.
func (w forecastWindow) forecastMonths() []time.Time {
	var months []time.Time
	for d := firstOfMonth(w.ForecastStart); d.Before(w.ForecastEnd); d = d.AddDate(0, 1, 0) {
		months = append(months, d)
	}
	return months
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
