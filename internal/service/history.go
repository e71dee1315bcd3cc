package service

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// minHistoricalMonths is the fewest monthly data points any of the
// fitting algorithms can be trained on.
const minHistoricalMonths = 3

// historicalPoint is one month of aggregated spending. Transient: built
// per request, never persisted.
type historicalPoint struct {
	Date   time.Time // first of month
	Amount float64
}

// buildHistory fetches the raw transactions for the window and collapses
// them into one point per calendar month present, sorted ascending.
// Returns ErrInsufficientHistory when fewer than three months result, in
// which case no further pipeline stage runs.
func (s *Service) buildHistory(ctx context.Context, userID int64, category string, w forecastWindow) ([]historicalPoint, error) {
	txs, err := s.txs.FetchTransactions(ctx, userID, category, w.HistoricalStart, w.HistoricalEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	// Key on a normalized UTC month so transactions carrying different
	// zone data still land in the same bucket.
	byMonth := make(map[time.Time]float64)
	for _, tx := range txs {
		byMonth[monthKey(tx.Date)] += tx.Amount
	}

	points := make([]historicalPoint, 0, len(byMonth))
	for month, amount := range byMonth {
		points = append(points, historicalPoint{Date: month, Amount: amount})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	if len(points) < minHistoricalMonths {
		return nil, ErrInsufficientHistory
	}
	return points, nil
}

func monthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
