package sdf

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when evaluation is attempted before Init.
var ErrNotInitialized = errors.New("sdf: runtime not initialized, call sdf.Init first")

// InvalidMeshError reports a mesh that cannot be indexed.
type InvalidMeshError struct {
	Reason string
	// Position is the offending element (index slot or vertex), -1 if none.
	Position int
}

func (e *InvalidMeshError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("invalid mesh: %s", e.Reason)
	}
	return fmt.Sprintf("invalid mesh: %s (at %d)", e.Reason, e.Position)
}

// InvalidInputError reports query input rejected before evaluation.
type InvalidInputError struct {
	Reason string
	// Position is the offending point, -1 if none.
	Position int
}

func (e *InvalidInputError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s (point %d)", e.Reason, e.Position)
}

func meshError(pos int, format string, args ...any) error {
	return &InvalidMeshError{Reason: fmt.Sprintf(format, args...), Position: pos}
}

func inputError(pos int, format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...), Position: pos}
}
