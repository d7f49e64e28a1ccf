package domain

import "errors"

// Pipeline error kinds. Callers wrap these with field detail and classify
// them with errors.Is. None of them is retryable.
var (
	// ErrInvalidInput means a raw attribute is outside its allowed set or range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable means the classifier artifact could not be loaded.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrScoringFailed means the classifier rejected the vector, usually a
	// dimension mismatch between the pipeline and the model.
	ErrScoringFailed = errors.New("scoring failed")
)
