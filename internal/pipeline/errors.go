package pipeline

import "fmt"

// Stage names used in errors and logs.
const (
	StageAnalyze       = "analyze"
	StageText          = "generate_text"
	StageCharts        = "generate_charts"
	StageIllustrations = "generate_illustrations"
	StageRender        = "render"
)

// ValidationError reports a bad field on the incoming request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// StageError wraps a failure from one of the critical stages.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
