package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig     = fmt.Errorf("configuration not found")
	ErrInvalidConfig     = fmt.Errorf("invalid configuration")
	ErrInvalidThresholds = fmt.Errorf("invalid match thresholds")
	ErrInvalidWeights    = fmt.Errorf("invalid match weights")

	// Library and matching errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported playlist format")
	ErrTrackNotFound     = fmt.Errorf("track not found")
	ErrLibraryEmpty      = fmt.Errorf("library index is empty")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
