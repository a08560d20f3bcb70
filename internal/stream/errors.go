package stream

import "fmt"

// InvalidRangeError reports a malformed or inverted date range supplied by a
// client. It echoes the offending field and value back to the caller.
type InvalidRangeError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range parameter %s=%q: %s", e.Field, e.Value, e.Reason)
}

// StreamingError wraps a session-level failure unrelated to client input,
// e.g. a framing or encoding failure. It terminates only its own session.
type StreamingError struct {
	Err error
}

func (e *StreamingError) Error() string {
	return fmt.Sprintf("streaming session failed: %v", e.Err)
}

func (e *StreamingError) Unwrap() error {
	return e.Err
}
