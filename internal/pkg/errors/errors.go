package errors

import "errors"

// Application errors. Wrap with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrPermissionDenied  = errors.New("exact alarm scheduling is not permitted") // Precise alarm without the capability
	ErrInvalidInput      = errors.New("invalid alarm input")                     // Malformed hour/minute/window/interval or unset value
	ErrUnknownAlarmCode  = errors.New("unknown alarm identifying code")          // Fire event for a code outside the dispatch table
	ErrDatabaseOperation = errors.New("alarm store operation failed")            // Generic persistence error
	ErrTimerService      = errors.New("timer service operation failed")          // Registration with the timer service failed
	ErrInternalServer    = errors.New("internal server error")                   // Generic internal error
)
