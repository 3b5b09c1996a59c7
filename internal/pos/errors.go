package pos

import "fmt"

// ValidationError reports malformed input. Nothing has been written when one
// is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a record that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports an operation against a tab in the wrong state,
// including losing a finalize race.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// UpstreamError wraps a failed persistence call. When it is returned from a
// finalize, either nothing was committed or every committed step was
// compensated.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Saga stages that can fail after an earlier step committed.
const (
	StageSalesWrite = "sales_write"
	StageTabClose   = "tab_close"
)

// PartialFailure reports that a saga step failed after an earlier step
// committed. For StageSalesWrite it is returned as an error; if
// CompensationFailed is true the orphan order could not be deleted and
// operators must reconcile manually. For StageTabClose it is
// attached to a successful result as a warning: the order stands but the tab
// is still open and could be finalized again.
type PartialFailure struct {
	Stage              string
	OrderID            string
	Err                error
	CompensationFailed bool
}

func (e *PartialFailure) Error() string {
	if e.CompensationFailed {
		return fmt.Sprintf("%s failed for order %s and compensation also failed, records may be inconsistent: %v",
			e.Stage, e.OrderID, e.Err)
	}
	return fmt.Sprintf("%s failed for order %s: %v", e.Stage, e.OrderID, e.Err)
}

func (e *PartialFailure) Unwrap() error { return e.Err }
