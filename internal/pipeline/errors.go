package pipeline

import "fmt"

// Stages a run moves through, in order. Error reports carry the stage so a
// failed batch can be diagnosed without re-running it.
const (
	StageSetup     = "setup"
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageFilter    = "filter"
	StageJournal   = "journal"
	StageAssemble  = "assemble"
	StageRender    = "render"
	StageStore     = "store"
	StageDeliver   = "deliver"
)

// Error is a failure attributed to a pipeline stage.
type Error struct {
	Stage   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(stage, message string, err error) *Error {
	return &Error{Stage: stage, Message: message, Err: err}
}
