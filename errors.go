package coll

import (
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for nil keys or values, a non-positive
	// capacity, or a nil compare function.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned when a sequence index is outside the
	// range accepted by the operation.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIllegalState is returned when an iterator is asked to Set or Remove
	// without a preceding Next or Previous.
	ErrIllegalState = errors.New("illegal iterator state")

	// ErrNoSuchElement is returned by Next or Previous when the iterator has
	// no element in that direction.
	ErrNoSuchElement = errors.New("no such element")

	// ErrConcurrentModification is returned when an iterator is used after
	// its list was structurally modified by something other than the
	// iterator itself.
	ErrConcurrentModification = errors.New("list modified outside iterator")

	// ErrMapFull reports that a probe sequence visited every slot without
	// finding room. The load factor check in Put makes this unreachable; it
	// exists so a broken invariant surfaces as an error instead of a hang.
	ErrMapFull = errors.New("elastic map is full")
)

func indexError(index, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index: %d, size: %d", index, size)
}

// isNil reports whether v holds a nil pointer, map, slice, func, chan or
// interface. Value types are never nil.
func isNil[T any](v T) bool {
	a := any(v)
	if a == nil {
		return true
	}
	switch rv := reflect.ValueOf(a); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
