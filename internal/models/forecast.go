package models

import "time"

// Period types supported by forecast generation.
const (
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// Forecast algorithms.
const (
	AlgorithmMovingAverage        = "moving_average"
	AlgorithmLinearRegression     = "linear_regression"
	AlgorithmExponentialSmoothing = "exponential_smoothing"
)

// Forecast statuses.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusExpired  = "expired"
)

// Trend classifications.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	TrendVolatile   = "volatile"
)

// Alert severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Recommendation priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ForecastPeriod is the future window a forecast covers.
type ForecastPeriod struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	PeriodType string    `json:"period_type"`
}

// Prediction is a single dated point prediction with its confidence band.
// Invariant: ConfidenceLower <= PredictedAmount <= ConfidenceUpper.
type Prediction struct {
	Date            time.Time `json:"date"`
	PredictedAmount float64   `json:"predicted_amount"`
	ConfidenceLower float64   `json:"confidence_lower"`
	ConfidenceUpper float64   `json:"confidence_upper"`
	ConfidenceLevel float64   `json:"confidence_level"`
}

// SeasonalFactor is the relative spending level of one calendar month.
type SeasonalFactor struct {
	Month  int     `json:"month"` // 1-12
	Factor float64 `json:"factor"`
	Event  string  `json:"event,omitempty"`
}

// AggregateForecast summarizes the predictions of one forecast.
type AggregateForecast struct {
	TotalPredicted  float64 `json:"total_predicted"`
	AverageMonthly  float64 `json:"average_monthly"`
	Trend           string  `json:"trend"`
	TrendPercentage float64 `json:"trend_percentage"`
}

// ModelMetadata describes the fitted model and its in-sample quality.
type ModelMetadata struct {
	Algorithm          string    `json:"algorithm"`
	AccuracyScore      float64   `json:"accuracy_score"` // 0-100
	RMSE               float64   `json:"rmse"`
	MAE                float64   `json:"mae"`
	TrainingDataPoints int       `json:"training_data_points"`
	LastTrained        time.Time `json:"last_trained"`
}

// BudgetComparison compares the forecast total against the active budget.
// Pointers are nil when the user has no budget for the forecast's scope.
type BudgetComparison struct {
	BudgetAmount     *float64 `json:"budget_amount"`
	ForecastVsBudget *float64 `json:"forecast_vs_budget"`
	WillExceed       bool     `json:"will_exceed"`
}

// Comparison holds the forecast's comparisons against external references.
type Comparison struct {
	VsBudget BudgetComparison `json:"vs_budget"`
}

// Alert is a warning derived from the forecast outputs.
type Alert struct {
	Type         string    `json:"alert_type"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	TriggeredAt  time.Time `json:"triggered_at"`
	Acknowledged bool      `json:"acknowledged"`
}

// Recommendation is an actionable suggestion derived from the forecast outputs.
type Recommendation struct {
	Type         string   `json:"recommendation_type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImpactAmount *float64 `json:"impact_amount"`
	Priority     string   `json:"priority"`
}

// AccuracyEntry records realized spending against one past prediction.
type AccuracyEntry struct {
	PredictionDate  time.Time `json:"prediction_date"`
	PredictedAmount float64   `json:"predicted_amount"`
	ActualAmount    float64   `json:"actual_amount"`
	ErrorPercentage float64   `json:"error_percentage"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// Forecast is the persisted root entity. It is written atomically on
// generation and mutated afterwards only by the accuracy tracker and the
// lazy expiry transition.
type Forecast struct {
	ID               string           `json:"id"`
	UserID           int64            `json:"user_id"`
	Category         string           `json:"category,omitempty"`
	Period           ForecastPeriod   `json:"forecast_period"`
	Predictions      []Prediction     `json:"predictions"`
	Aggregate        AggregateForecast `json:"aggregate_forecast"`
	SeasonalFactors  []SeasonalFactor `json:"seasonal_factors"`
	ModelMetadata    ModelMetadata    `json:"model_metadata"`
	Comparison       Comparison       `json:"comparison"`
	Alerts           []Alert          `json:"alerts"`
	Recommendations  []Recommendation `json:"recommendations"`
	AccuracyTracking []AccuracyEntry  `json:"accuracy_tracking"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// RefreshStatus applies the lazy expiry rule: an active forecast whose
// period has fully elapsed becomes expired. Returns true if the status
// changed. Called on every read path and inside every locked write so the
// rule stays visible and testable independent of storage.
func (f *Forecast) RefreshStatus(now time.Time) bool {
	if f.Status == StatusActive && f.Period.EndDate.Before(now) {
		f.Status = StatusExpired
		return true
	}
	return false
}

// HasTrackedMonth reports whether an accuracy entry already exists for the
// calendar month of date. The tracker's idempotency contract hangs on this.
func (f *Forecast) HasTrackedMonth(date time.Time) bool {
	for _, e := range f.AccuracyTracking {
		if e.PredictionDate.Year() == date.Year() && e.PredictionDate.Month() == date.Month() {
			return true
		}
	}
	return false
}
