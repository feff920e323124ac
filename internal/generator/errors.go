package generator

import "errors"

// Error kinds for the pipeline. Candidate-level failures (extraction,
// persisting one record) are logged and skipped; video-level failures abort
// one video's run and leave it unanalyzed; only backlog listing failures
// escalate to the batch.
var (
	ErrVideoNotFound       = errors.New("video not found")
	ErrConfigNotFound      = errors.New("generator config not found")
	ErrConfigMismatch      = errors.New("config sport type does not match video")
	ErrAnalysisUnavailable = errors.New("analysis capability unavailable")
	ErrExtractionFailed    = errors.New("clip extraction failed")
	ErrPersistenceFailed   = errors.New("persistence failed")
)
