package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	openai "github.com/sashabaranov/go-openai"
)

// BackendError wraps a failed reasoning-backend call.  Transient errors
// (timeouts, rate limits, server-side failures) are worth retrying within
// the bounded budget; permanent ones are not.
type BackendError struct {
	Err       error
	Transient bool
}

func (e *BackendError) Error() string { return fmt.Sprintf("backend: %v", e.Err) }

func (e *BackendError) Unwrap() error { return e.Err }

// classify wraps err as a BackendError with a retryability judgement.
// Unknown failures count as transient: the retry budget is small and a
// spurious retry is cheaper than giving up on a flaky network.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		transient := apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
		return &BackendError{Err: err, Transient: transient}
	}
	if errors.Is(err, context.Canceled) {
		// the caller went away; retrying would only discard more work
		return &BackendError{Err: err, Transient: false}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &BackendError{Err: err, Transient: true}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &BackendError{Err: err, Transient: true}
	}
	return &BackendError{Err: err, Transient: true}
}
