package task

import "fmt"

// ValidationError reports a rejected field value. The operation that
// produced it did not run; the caller re-prompts.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a stale task id. The operation was a no-op.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// CorruptDataError reports an unreadable persisted file. The caller
// falls back to an empty collection; Backup, when non-empty, is where
// the original file was preserved.
type CorruptDataError struct {
	Path   string
	Backup string
	Err    error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt task file %s: %s", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// IOError reports a failed write. In-memory state remains the source
// of truth for the rest of the session.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write task file %s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
