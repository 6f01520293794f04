package coll

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// CircularList is an index-addressable sequence stored in a singly-linked
// ring. The ring has one sentinel node whose value is never read; the
// elements are the nodes from head.next up to tail, and tail.next is always
// the sentinel.
//
// Lookups walk forward from the sentinel, so Get, Set, Insert and Remove cost
// O(index). Add appends in O(1) through tail.
//
// IndexOf, RemoveItem and Contains match elements by ordering equality
// (compare(a, b) == 0), not by ==.
//
// The zero CircularList is an empty list without a compare function; use
// NewCircularList or NewCircularListFunc when searching is needed.
// A CircularList is not safe for concurrent use.
type CircularList[E any] struct {
	head     *node[E] // sentinel
	tail     *node[E] // last element, head when empty
	size     int
	compare  func(a, b E) int
	modCount uint64
}

// NewCircularList creates an empty CircularList that compares elements with
// their natural order.
func NewCircularList[E constraints.Ordered]() *CircularList[E] {
	l, _ := NewCircularListFunc(cmp.Compare[E])
	return l
}

// NewCircularListFunc creates an empty CircularList that compares elements
// with compare, which must return 0 for elements considered equal.
func NewCircularListFunc[E any](compare func(a, b E) int) (*CircularList[E], error) {
	if compare == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "compare func must not be nil")
	}
	l := &CircularList[E]{compare: compare}
	l.lazyInit()
	return l, nil
}

func (l *CircularList[E]) lazyInit() {
	if l.head == nil {
		l.head = &node[E]{}
		l.head.next = l.head
		l.tail = l.head
	}
}

// nodeAt returns the node at index by walking forward from the sentinel.
// Index -1 names the sentinel itself.
func (l *CircularList[E]) nodeAt(index int) *node[E] {
	if index == l.size-1 {
		return l.tail
	}
	n := l.head
	for i := -1; i < index; i++ {
		n = n.next
	}
	return n
}

func (l *CircularList[E]) checkElementIndex(index int) error {
	if index < 0 || index >= l.size {
		return indexError(index, l.size)
	}
	return nil
}

func (l *CircularList[E]) checkPositionIndex(index int) error {
	if index < 0 || index > l.size {
		return indexError(index, l.size)
	}
	return nil
}

// Get returns the element at index.
func (l *CircularList[E]) Get(index int) (value E, err error) {
	if err = l.checkElementIndex(index); err != nil {
		return value, err
	}
	return l.nodeAt(index).value, nil
}

// Set replaces the element at index and returns the element it replaced.
func (l *CircularList[E]) Set(index int, value E) (old E, err error) {
	if err = l.checkElementIndex(index); err != nil {
		return old, err
	}
	n := l.nodeAt(index)
	old, n.value = n.value, value
	return old, nil
}

// Insert places value at index, shifting the element there and every later
// one up by one. Index may equal Size, which appends.
func (l *CircularList[E]) Insert(index int, value E) error {
	if err := l.checkPositionIndex(index); err != nil {
		return err
	}
	l.lazyInit()
	l.linkAfter(l.nodeAt(index-1), value)
	return nil
}

// Add appends value in O(1).
func (l *CircularList[E]) Add(value E) {
	l.lazyInit()
	l.linkAfter(l.tail, value)
}

func (l *CircularList[E]) linkAfter(prev *node[E], value E) *node[E] {
	n := &node[E]{value: value, next: prev.next}
	prev.next = n
	if prev == l.tail {
		l.tail = n
	}
	l.size++
	l.modCount++
	return n
}

// unlinkAfter removes the node following prev and returns it.
func (l *CircularList[E]) unlinkAfter(prev *node[E]) *node[E] {
	n := prev.next
	prev.next = n.next
	if n == l.tail {
		l.tail = prev
	}
	n.next = nil
	l.size--
	l.modCount++
	return n
}

// Remove deletes the element at index and returns it.
func (l *CircularList[E]) Remove(index int) (value E, err error) {
	if err = l.checkElementIndex(index); err != nil {
		return value, err
	}
	return l.unlinkAfter(l.nodeAt(index-1)).value, nil
}

func (l *CircularList[E]) mustCompare() func(a, b E) int {
	if l.compare == nil {
		panic("coll: CircularList has no compare func; create it with NewCircularList or NewCircularListFunc")
	}
	return l.compare
}

// RemoveItem deletes the first element ordering-equal to value and reports
// whether one was found.
func (l *CircularList[E]) RemoveItem(value E) bool {
	compare := l.mustCompare()
	if l.size == 0 {
		return false
	}
	for prev := l.head; prev.next != l.head; prev = prev.next {
		if compare(prev.next.value, value) == 0 {
			l.unlinkAfter(prev)
			return true
		}
	}
	return false
}

// IndexOf returns the index of the first element ordering-equal to value,
// or -1.
func (l *CircularList[E]) IndexOf(value E) int {
	compare := l.mustCompare()
	if l.size == 0 {
		return -1
	}
	i := 0
	for n := l.head.next; n != l.head; n = n.next {
		if compare(n.value, value) == 0 {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether an element ordering-equal to value is present.
func (l *CircularList[E]) Contains(value E) bool {
	return l.IndexOf(value) >= 0
}

// First returns the first element.
func (l *CircularList[E]) First() (value E, err error) {
	if l.size == 0 {
		return value, noSuchElement("first", 0)
	}
	return l.head.next.value, nil
}

// Last returns the last element in O(1).
func (l *CircularList[E]) Last() (value E, err error) {
	if l.size == 0 {
		return value, noSuchElement("last", -1)
	}
	return l.tail.value, nil
}

// Size returns the number of elements.
func (l *CircularList[E]) Size() int {
	return l.size
}

// IsEmpty reports whether the list has no elements.
func (l *CircularList[E]) IsEmpty() bool {
	return l.size == 0
}

// Clear removes every element and resets the sentinel ring.
func (l *CircularList[E]) Clear() {
	l.lazyInit()
	l.head.next = l.head
	l.tail = l.head
	l.size = 0
	l.modCount++
}

// All returns an iterator over index/element pairs from first to last.
// The list must not be modified during iteration.
func (l *CircularList[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		if l.size == 0 {
			return
		}
		i := 0
		for n := l.head.next; n != l.head; n = n.next {
			if !yield(i, n.value) {
				return
			}
			i++
		}
	}
}

// Backward returns an iterator over index/element pairs from last to first.
// A singly-linked ring has no back links, so the elements are collected
// first.
func (l *CircularList[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		values := l.Values()
		for i := len(values) - 1; i >= 0; i-- {
			if !yield(i, values[i]) {
				return
			}
		}
	}
}

// Values returns the elements in order as a new slice.
func (l *CircularList[E]) Values() []E {
	values := make([]E, 0, l.size)
	for _, v := range l.All() {
		values = append(values, v)
	}
	return values
}

// String renders the list as [a, b, c].
func (l *CircularList[E]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprint(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON encodes the list as a JSON array.
func (l *CircularList[E]) MarshalJSON() ([]byte, error) {
	return marshalJSON(l.Values())
}

// UnmarshalJSON replaces the contents of the list with a decoded JSON array.
// The compare function is kept.
func (l *CircularList[E]) UnmarshalJSON(data []byte) error {
	var values []E
	if err := unmarshalJSON(data, &values); err != nil {
		return err
	}
	l.Clear()
	for _, v := range values {
		l.Add(v)
	}
	return nil
}

// ListIterator returns an iterator whose first Next returns the element at
// index. Index may equal Size, in which case only Previous moves it.
func (l *CircularList[E]) ListIterator(index int) (*ListIterator[E], error) {
	if err := l.checkPositionIndex(index); err != nil {
		return nil, err
	}
	l.lazyInit()
	return &ListIterator[E]{
		list:             l,
		prev:             l.nodeAt(index - 1),
		cursor:           index,
		expectedModCount: l.modCount,
	}, nil
}

// Iterator returns a ListIterator positioned before the first element.
func (l *CircularList[E]) Iterator() *ListIterator[E] {
	it, _ := l.ListIterator(0)
	return it
}
