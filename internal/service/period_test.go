package service

import (
	"testing"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindow(t *testing.T) {
	tests := []struct {
		periodType   string
		forecastEnd  string
		historyStart string
	}{
		{models.PeriodWeekly, "2025-06-22", "2025-03-17"},
		{models.PeriodMonthly, "2025-07-15", "2024-06-15"},
		{models.PeriodQuarterly, "2025-09-15", "2023-06-15"},
		{models.PeriodYearly, "2026-06-15", "2022-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.periodType, func(t *testing.T) {
			w, err := periodWindow(tt.periodType, testNow)
			require.NoError(t, err)
			assert.Equal(t, testNow, w.ForecastStart)
			assert.Equal(t, testNow, w.HistoricalEnd)
			assert.Equal(t, tt.forecastEnd, w.ForecastEnd.Format("2006-01-02"))
			assert.Equal(t, tt.historyStart, w.HistoricalStart.Format("2006-01-02"))
		})
	}
}

func TestPeriodWindowUnknownType(t *testing.T) {
	_, err := periodWindow("fortnightly", testNow)
	assert.ErrorIs(t, err, ErrUnknownPeriodType)
}

func TestForecastMonthsCoverWindow(t *testing.T) {
	tests := []struct {
		periodType string
		months     int
	}{
		{models.PeriodWeekly, 1},     // Jun 15 - Jun 22 touches only June
		{models.PeriodMonthly, 2},    // Jun 15 - Jul 15 touches June and July
		{models.PeriodQuarterly, 4},  // Jun 15 - Sep 15
		{models.PeriodYearly, 13},    // Jun 15 2025 - Jun 15 2026
	}

	for _, tt := range tests {
		t.Run(tt.periodType, func(t *testing.T) {
			w, err := periodWindow(tt.periodType, testNow)
			require.NoError(t, err)
			months := w.forecastMonths()
			require.Len(t, months, tt.months)
			for i, m := range months {
				assert.Equal(t, 1, m.Day(), "predictions are keyed on the first of the month")
				if i > 0 {
					assert.Equal(t, months[i-1].AddDate(0, 1, 0), m)
				}
			}
		})
	}
}
