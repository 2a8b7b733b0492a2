package domain

import "errors"

// Sentinel errors for the failure classes the resolver surfaces. Callers
// classify with errors.Is; timeout and cancellation pass through as
// context.DeadlineExceeded and context.Canceled.
var (
	// ErrInvalidArgument marks caller contract violations, raised before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFormat marks wire bytes that violate DNS framing or label rules.
	ErrFormat = errors.New("malformed DNS message")

	// ErrUnsupportedLabel marks an extended label type other than the
	// historical binary form.
	ErrUnsupportedLabel = errors.New("unsupported extended label type")

	// ErrTruncated names the truncated-response class. The resolver does not
	// return it: a TC=1 response received with TCP disabled is returned as a
	// message with Truncated set and no error.
	ErrTruncated = errors.New("response truncated")

	// ErrNoResponse marks exhaustion of every configured server without a
	// usable reply.
	ErrNoResponse = errors.New("no response from any upstream server")
)
