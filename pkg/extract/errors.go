package extract

import (
	"errors"
	"fmt"
)

// ErrDepthExceeded is returned by the balanced-delimiter scanner when
// parenthesis nesting exceeds the configured safety bound.
var ErrDepthExceeded = errors.New("parenthesis nesting too deep")

// ErrUnbalanced is returned when input ends before a matching closing
// parenthesis is found.
var ErrUnbalanced = errors.New("unbalanced parentheses")

// MalformedInputError reports a structural defect in the scanned text.
// The engine recovers from these by truncating the offending construct
// and continuing with a partial result; callers only see them through
// ExtractionResult warnings.
type MalformedInputError struct {
	Pos     Position
	Message string
	Err     error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
