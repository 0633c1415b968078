package board

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPayload = errors.New("malformed drag payload")
	ErrLastBoard        = errors.New("cannot delete the last remaining board")
	ErrNotConfirmed     = errors.New("operation not confirmed")
	ErrEmptyBoardName   = errors.New("board name must not be empty")
	ErrInvalidTarget    = errors.New("invalid drop target")
)

// NotFoundError reports a lookup miss on a CRUD operation.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func errNotFound(kind, id string) error {
	return NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
