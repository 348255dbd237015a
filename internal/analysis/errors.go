package analysis

import "errors"

var (
	// ErrInsufficientData means the campaign has fewer analyzable records
	// than the minimum corpus size. No upstream call is made in this case.
	ErrInsufficientData = errors.New("insufficient feedback for analysis")
	// ErrResultNotSaved means extraction produced a valid result but the
	// persistence step failed. The result accompanying it is still usable.
	ErrResultNotSaved = errors.New("analysis result not saved")
	// ErrUpstream marks provider failures so transport code can map them
	// separately from storage and validation errors.
	ErrUpstream = errors.New("analysis upstream failure")
	ErrNotFound = errors.New("not found")
)

const (
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA"
	ErrorCodeLLMTimeout       = "LLM_TIMEOUT"
	ErrorCodeLLMUnavailable   = "LLM_UNAVAILABLE"
	ErrorCodeStorage          = "STORAGE_ERROR"
	ErrorCodeInternal         = "INTERNAL_ERROR"
)
