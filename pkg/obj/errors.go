package obj

import (
	"errors"
	"fmt"
)

// Mesh format errors.
var (
	ErrInvalidNumber     = errors.New("invalid numeric token")
	ErrMissingComponent  = errors.New("missing vector component")
	ErrMalformedFace     = errors.New("malformed face vertex")
	ErrNonTriangularFace = errors.New("face is not a triangle")
	ErrIndexOutOfRange   = errors.New("face index out of range")
)

// FormatError reports a malformed line in a mesh file.
type FormatError struct {
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
