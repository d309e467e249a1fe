package docroot

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/f4ah6o/httpd10/internal/response"
)

// Kind classifies a resolution or load failure.
type Kind int

const (
	// NotFound covers missing files, missing directories and non-regular targets.
	NotFound Kind = iota
	// PermissionDenied means the target exists but may not be read.
	PermissionDenied
	// Other is any remaining filesystem failure.
	Other
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case PermissionDenied:
		return "permission denied"
	default:
		return "io failure"
	}
}

// Status maps the failure kind onto the response sent to the client.
func (k Kind) Status() response.Status {
	switch k {
	case NotFound:
		return response.NotFound
	case PermissionDenied:
		return response.Forbidden
	default:
		return response.BadRequest
	}
}

// Error is returned by Resolve and Load. It unwraps to the underlying filesystem error.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf classifies err. Errors that are not *Error are classified by
// their underlying fs error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	default:
		return Other
	}
}
