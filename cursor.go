package coll

import "github.com/pkg/errors"

// cursorState gates the point mutations of a list iterator.
//
//	cursorNone       --Next/Previous--> cursorPositioned
//	cursorPositioned --Next/Previous--> cursorPositioned
//	cursorPositioned --Set/Remove/Add-> cursorDirty
//	any              --Add------------> cursorDirty
//	cursorDirty      --Next/Previous--> cursorPositioned
//
// Set and Remove are accepted only in cursorPositioned.
type cursorState uint8

const (
	cursorNone cursorState = iota
	cursorPositioned
	cursorDirty
)

func (s cursorState) String() string {
	switch s {
	case cursorNone:
		return "none"
	case cursorPositioned:
		return "positioned"
	case cursorDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// checkMutable returns ErrIllegalState unless the cursor sits on an element
// returned by the latest step.
func (s cursorState) checkMutable(op string) error {
	if s != cursorPositioned {
		return errors.Wrapf(ErrIllegalState, "%s: cursor is %s", op, s)
	}
	return nil
}

func checkModCount(expected, actual uint64) error {
	if expected != actual {
		return errors.WithStack(ErrConcurrentModification)
	}
	return nil
}

func noSuchElement(op string, index int) error {
	return errors.Wrapf(ErrNoSuchElement, "%s at index %d", op, index)
}
