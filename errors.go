package generatepdfs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library. Every error produced by a
// [Client] or [Document] matches exactly one of them under [errors.Is].
var (
	// ErrInvalidArgument reports caller input or a server response that is
	// structurally wrong: a missing local file, a malformed URL, a
	// non-positive ID, or an incomplete API payload.
	ErrInvalidArgument = errors.New("generatepdfs: invalid argument")

	// ErrRuntime reports an operation that failed against external state:
	// a non-success HTTP status, a PDF that is not ready, a failed write.
	ErrRuntime = errors.New("generatepdfs: runtime error")
)

// APIError is returned when the service answers with a non-success status.
// It matches [ErrRuntime].
type APIError struct {
	// Op is "request" for generate/get calls and "download" for PDF downloads.
	Op         string
	StatusCode int
	Reason     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Op == opDownload {
		return fmt.Sprintf("generatepdfs: failed to download PDF: %d", e.StatusCode)
	}
	return fmt.Sprintf("generatepdfs: API request failed: %d %s", e.StatusCode, e.Reason)
}

// Is reports whether target is [ErrRuntime].
func (e *APIError) Is(target error) bool {
	return target == ErrRuntime
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
