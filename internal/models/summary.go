package models

// CategorySummary is the dashboard view of one active forecast.
type CategorySummary struct {
	Category  string   `json:"category,omitempty"`
	Predicted float64  `json:"predicted"`
	Trend     string   `json:"trend"`
	Accuracy  *float64 `json:"accuracy"` // nil until accuracy tracking has entries
}

// DashboardSummary rolls up all of a user's active forecasts.
type DashboardSummary struct {
	TotalPredictedSpending float64           `json:"total_predicted_spending"`
	Categories             []CategorySummary `json:"categories"`
	UnacknowledgedAlerts   map[string]int    `json:"unacknowledged_alerts"` // by severity
	AverageAccuracy        *float64          `json:"average_accuracy"`
	ForecastCount          int               `json:"forecast_count"`
}

// AccuracyRunSummary reports one accuracy-tracker pass for a user.
type AccuracyRunSummary struct {
	ForecastsChecked int `json:"forecasts_checked"`
	EntriesAdded     int `json:"entries_added"`
	MonthsSkipped    int `json:"months_skipped"` // past months with no realized spend yet
}
