package service

import (
	"sort"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub000/internal/models"
)

const (
	highSeasonThreshold = 1.2
	lowSeasonThreshold  = 0.8

	highSeasonEvent = "High spending period"
	lowSeasonEvent  = "Low spending period"
)

// seasonalFactors computes one factor per calendar month that appears in
// history: the month's average spend across all years relative to the
// overall average. Purely descriptive; never fed back into the model.
func seasonalFactors(history []historicalPoint) []models.SeasonalFactor {
	overall := mean(amounts(history))
	if overall == 0 {
		return nil
	}

	byMonth := make(map[time.Month][]float64)
	for _, p := range history {
		byMonth[p.Date.Month()] = append(byMonth[p.Date.Month()], p.Amount)
	}

	factors := make([]models.SeasonalFactor, 0, len(byMonth))
	for month, vals := range byMonth {
		factor := mean(vals) / overall
		sf := models.SeasonalFactor{Month: int(month), Factor: factor}
		switch {
		case factor > highSeasonThreshold:
			sf.Event = highSeasonEvent
		case factor < lowSeasonThreshold:
			sf.Event = lowSeasonEvent
		}
		factors = append(factors, sf)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].Month < factors[j].Month })
	return factors
}
