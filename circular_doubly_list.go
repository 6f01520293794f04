package coll

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// CircularDoublyList is an index-addressable sequence stored in a
// doubly-linked ring around one sentinel node. The elements run from
// head.next to head.prev, and every node satisfies
// n.next.prev == n && n.prev.next == n.
//
// Index lookups start at the sentinel and walk forward when the index lies
// in the first half, backward otherwise, so no lookup takes more than
// Size/2+1 hops. Both ends are reachable in O(1).
//
// IndexOf, RemoveItem and Contains match elements by ordering equality
// (compare(a, b) == 0), not by ==.
//
// The zero CircularDoublyList is an empty list without a compare function;
// use NewCircularDoublyList or NewCircularDoublyListFunc when searching is
// needed. A CircularDoublyList is not safe for concurrent use.
type CircularDoublyList[E any] struct {
	head     *bidiNode[E] // sentinel
	size     int
	compare  func(a, b E) int
	modCount uint64
}

// NewCircularDoublyList creates an empty CircularDoublyList that compares
// elements with their natural order.
func NewCircularDoublyList[E constraints.Ordered]() *CircularDoublyList[E] {
	l, _ := NewCircularDoublyListFunc(cmp.Compare[E])
	return l
}

// NewCircularDoublyListFunc creates an empty CircularDoublyList that
// compares elements with compare, which must return 0 for elements
// considered equal.
func NewCircularDoublyListFunc[E any](compare func(a, b E) int) (*CircularDoublyList[E], error) {
	if compare == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "compare func must not be nil")
	}
	l := &CircularDoublyList[E]{compare: compare}
	l.lazyInit()
	return l, nil
}

func (l *CircularDoublyList[E]) lazyInit() {
	if l.head == nil {
		l.head = &bidiNode[E]{}
		l.head.next = l.head
		l.head.prev = l.head
	}
}

// nodeAt returns the node at index together with the number of links
// followed to reach it. Index -1 and index Size both name the sentinel.
func (l *CircularDoublyList[E]) nodeAt(index int) (n *bidiNode[E], hops int) {
	n = l.head
	if index < l.size/2 {
		for i := -1; i < index; i++ {
			n = n.next
			hops++
		}
		return n, hops
	}
	for i := l.size; i > index; i-- {
		n = n.prev
		hops++
	}
	return n, hops
}

func (l *CircularDoublyList[E]) node(index int) *bidiNode[E] {
	n, _ := l.nodeAt(index)
	return n
}

func (l *CircularDoublyList[E]) checkElementIndex(index int) error {
	if index < 0 || index >= l.size {
		return indexError(index, l.size)
	}
	return nil
}

func (l *CircularDoublyList[E]) checkPositionIndex(index int) error {
	if index < 0 || index > l.size {
		return indexError(index, l.size)
	}
	return nil
}

// linkAfter splices a new node between prev and prev.next.
func (l *CircularDoublyList[E]) linkAfter(prev *bidiNode[E], value E) *bidiNode[E] {
	n := &bidiNode[E]{prev: prev, value: value, next: prev.next}
	n.next.prev = n
	prev.next = n
	l.size++
	l.modCount++
	return n
}

func (l *CircularDoublyList[E]) unlink(n *bidiNode[E]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.size--
	l.modCount++
}

// Get returns the element at index.
func (l *CircularDoublyList[E]) Get(index int) (value E, err error) {
	if err = l.checkElementIndex(index); err != nil {
		return value, err
	}
	return l.node(index).value, nil
}

// Set replaces the element at index and returns the element it replaced.
func (l *CircularDoublyList[E]) Set(index int, value E) (old E, err error) {
	if err = l.checkElementIndex(index); err != nil {
		return old, err
	}
	n := l.node(index)
	old, n.value = n.value, value
	return old, nil
}

// Insert places value at index, shifting the element there and every later
// one up by one. Index may equal Size, which appends.
func (l *CircularDoublyList[E]) Insert(index int, value E) error {
	if err := l.checkPositionIndex(index); err != nil {
		return err
	}
	l.lazyInit()
	l.linkAfter(l.node(index-1), value)
	return nil
}

// Add appends value in O(1).
func (l *CircularDoublyList[E]) Add(value E) {
	l.lazyInit()
	l.linkAfter(l.head.prev, value)
}

// Remove deletes the element at index and returns it.
func (l *CircularDoublyList[E]) Remove(index int) (value E, err error) {
	if err = l.checkElementIndex(index); err != nil {
		return value, err
	}
	n := l.node(index)
	l.unlink(n)
	return n.value, nil
}

func (l *CircularDoublyList[E]) mustCompare() func(a, b E) int {
	if l.compare == nil {
		panic("coll: CircularDoublyList has no compare func; create it with NewCircularDoublyList or NewCircularDoublyListFunc")
	}
	return l.compare
}

// RemoveItem deletes the first element ordering-equal to value and reports
// whether one was found.
func (l *CircularDoublyList[E]) RemoveItem(value E) bool {
	compare := l.mustCompare()
	if l.size == 0 {
		return false
	}
	for n := l.head.next; n != l.head; n = n.next {
		if compare(n.value, value) == 0 {
			l.unlink(n)
			return true
		}
	}
	return false
}

// IndexOf returns the index of the first element ordering-equal to value,
// or -1.
func (l *CircularDoublyList[E]) IndexOf(value E) int {
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

// LastIndexOf returns the index of the last element ordering-equal to
// value, or -1. The scan runs backward from the end.
func (l *CircularDoublyList[E]) LastIndexOf(value E) int {
	compare := l.mustCompare()
	if l.size == 0 {
		return -1
	}
	i := l.size - 1
	for n := l.head.prev; n != l.head; n = n.prev {
		if compare(n.value, value) == 0 {
			return i
		}
		i--
	}
	return -1
}

// Contains reports whether an element ordering-equal to value is present.
func (l *CircularDoublyList[E]) Contains(value E) bool {
	return l.IndexOf(value) >= 0
}

// First returns the first element.
func (l *CircularDoublyList[E]) First() (value E, err error) {
	if l.size == 0 {
		return value, noSuchElement("first", 0)
	}
	return l.head.next.value, nil
}

// Last returns the last element.
func (l *CircularDoublyList[E]) Last() (value E, err error) {
	if l.size == 0 {
		return value, noSuchElement("last", -1)
	}
	return l.head.prev.value, nil
}

// Size returns the number of elements.
func (l *CircularDoublyList[E]) Size() int {
	return l.size
}

// IsEmpty reports whether the list has no elements.
func (l *CircularDoublyList[E]) IsEmpty() bool {
	return l.size == 0
}

// Clear removes every element and relinks the sentinel to itself.
func (l *CircularDoublyList[E]) Clear() {
	l.lazyInit()
	l.head.next = l.head
	l.head.prev = l.head
	l.size = 0
	l.modCount++
}

// All returns an iterator over index/element pairs from first to last.
// The list must not be modified during iteration.
func (l *CircularDoublyList[E]) All() iter.Seq2[int, E] {
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

// Backward returns an iterator over index/element pairs from last to first,
// following the back links.
func (l *CircularDoublyList[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		if l.size == 0 {
			return
		}
		i := l.size - 1
		for n := l.head.prev; n != l.head; n = n.prev {
			if !yield(i, n.value) {
				return
			}
			i--
		}
	}
}

// Values returns the elements in order as a new slice.
func (l *CircularDoublyList[E]) Values() []E {
	values := make([]E, 0, l.size)
	for _, v := range l.All() {
		values = append(values, v)
	}
	return values
}

// String renders the list as [a, b, c].
func (l *CircularDoublyList[E]) String() string {
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
func (l *CircularDoublyList[E]) MarshalJSON() ([]byte, error) {
	return marshalJSON(l.Values())
}

// UnmarshalJSON replaces the contents of the list with a decoded JSON array.
// The compare function is kept.
func (l *CircularDoublyList[E]) UnmarshalJSON(data []byte) error {
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
func (l *CircularDoublyList[E]) ListIterator(index int) (*DoublyListIterator[E], error) {
	if err := l.checkPositionIndex(index); err != nil {
		return nil, err
	}
	l.lazyInit()
	return &DoublyListIterator[E]{
		list:             l,
		next:             l.node(index),
		cursor:           index,
		expectedModCount: l.modCount,
	}, nil
}

// Iterator returns a DoublyListIterator positioned before the first element.
func (l *CircularDoublyList[E]) Iterator() *DoublyListIterator[E] {
	it, _ := l.ListIterator(0)
	return it
}
