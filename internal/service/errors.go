package service

import "errors"

var (
	// ErrInsufficientHistory is returned when fewer than three historical
	// months exist for the requested scope. The caller can retry once more
	// spending data has accumulated; it is never retried automatically.
	ErrInsufficientHistory = errors.New("insufficient history: at least 3 months of spending data required")

	// ErrForecastNotFound is returned when a forecast does not exist or is
	// owned by another user.
	ErrForecastNotFound = errors.New("forecast not found")

	// ErrUnknownAlgorithm is returned when an unsupported algorithm value
	// is requested. An empty value defaults to moving average instead.
	ErrUnknownAlgorithm = errors.New("unknown forecast algorithm")

	// ErrUnknownPeriodType is returned for an unsupported period type.
	ErrUnknownPeriodType = errors.New("unknown forecast period type")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
