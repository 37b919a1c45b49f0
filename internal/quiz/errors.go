package quiz

import (
	"errors"
	"fmt"
)

// ErrUnchecked is returned when a score or pass/fail verdict is read
// before the checkable has been checked.
var ErrUnchecked = errors.New("quiz: not checked yet")

// EmptyPoolError reports that a term filter left nothing to sample from.
type EmptyPoolError struct {
	Vocabulary string
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("quiz: no terms left in vocabulary %q after filtering", e.Vocabulary)
}

// CodeExhaustedError reports that no completion code satisfied the
// acceptance predicate within the retry bound.
type CodeExhaustedError struct {
	Attempts int
}

func (e *CodeExhaustedError) Error() string {
	return fmt.Sprintf("quiz: no acceptable completion code after %d attempts", e.Attempts)
}

// UnknownKindError reports an unrecognized question kind tag during decoding.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("quiz: unknown question kind %q", e.Kind)
}

// DegenerateTotalError reports a checkable whose total is zero, making
// pass/fail undefined. This is a configuration problem, not a failing grade.
type DegenerateTotalError struct {
	Name string
}

func (e *DegenerateTotalError) Error() string {
	return fmt.Sprintf("quiz: %q has a total of zero, pass/fail is undefined", e.Name)
}
