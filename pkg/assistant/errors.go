package assistant

import (
	"errors"
	"fmt"
)

// ErrRunTimeout is returned when a run fails to reach a terminal state
// within the polling ceiling.
var ErrRunTimeout = errors.New("assistant: timed out waiting for run completion")

// StatusError reports a non-success HTTP status from any of the remote
// calls. Op names the step so the caller's message is self-describing.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// RunError reports a run that reached a terminal non-completed status
// (failed, cancelled, expired). The literal status is preserved so the chat
// surface can show it.
type RunError struct {
	Status string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("assistant run ended with status: %s", e.Status)
}

// ShapeError reports a response that decoded but did not carry the fields
// the endpoint contract promises. Decoding fails closed rather than
// propagating zero values.
type ShapeError struct {
	Op     string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %s", e.Op, e.Detail)
}
