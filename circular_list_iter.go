package coll

// ListIterator is a bidirectional cursor over a CircularList.
//
// The cursor sits between two elements: Next returns the element after it,
// Previous the element before it. Set and Remove act on the element returned
// by the latest Next or Previous and are allowed once per step. Add inserts
// before the cursor at any time.
//
// Previous has no back link to follow and re-walks the ring from the
// sentinel, costing O(index) per call.
//
// Structural changes made to the list other than through this iterator make
// every later call fail with ErrConcurrentModification.
type ListIterator[E any] struct {
	list             *CircularList[E]
	prev             *node[E] // node before the cursor, the sentinel at index 0
	cursor           int      // index of the element Next returns
	last             *node[E] // element returned by the latest step
	lastPrev         *node[E] // predecessor of last
	state            cursorState
	expectedModCount uint64
}

// HasNext reports whether Next has an element to return.
func (it *ListIterator[E]) HasNext() bool {
	return it.cursor < it.list.size
}

// Next returns the element after the cursor and advances past it.
func (it *ListIterator[E]) Next() (value E, err error) {
	if err = checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return value, err
	}
	if !it.HasNext() {
		return value, noSuchElement("next", it.cursor)
	}
	n := it.prev.next
	it.lastPrev, it.last = it.prev, n
	it.prev = n
	it.cursor++
	it.state = cursorPositioned
	return n.value, nil
}

// HasPrevious reports whether Previous has an element to return.
func (it *ListIterator[E]) HasPrevious() bool {
	return it.cursor > 0
}

// Previous returns the element before the cursor and moves back over it.
func (it *ListIterator[E]) Previous() (value E, err error) {
	if err = checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return value, err
	}
	if !it.HasPrevious() {
		return value, noSuchElement("previous", it.cursor-1)
	}
	before := it.list.nodeAt(it.cursor - 2)
	n := before.next
	it.lastPrev, it.last = before, n
	it.prev = before
	it.cursor--
	it.state = cursorPositioned
	return n.value, nil
}

// NextIndex returns the index of the element Next would return.
func (it *ListIterator[E]) NextIndex() int {
	return it.cursor
}

// PreviousIndex returns the index of the element Previous would return.
func (it *ListIterator[E]) PreviousIndex() int {
	return it.cursor - 1
}

// Set replaces the element returned by the latest step.
func (it *ListIterator[E]) Set(value E) error {
	if err := checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return err
	}
	if err := it.state.checkMutable("set"); err != nil {
		return err
	}
	it.last.value = value
	it.state = cursorDirty
	return nil
}

// Remove deletes the element returned by the latest step.
func (it *ListIterator[E]) Remove() error {
	if err := checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return err
	}
	if err := it.state.checkMutable("remove"); err != nil {
		return err
	}
	if it.prev == it.last {
		// Stepped forward over last: the cursor moves back with it.
		it.cursor--
	}
	it.prev = it.lastPrev
	it.list.unlinkAfter(it.lastPrev)
	it.last, it.lastPrev = nil, nil
	it.expectedModCount = it.list.modCount
	it.state = cursorDirty
	return nil
}

// Add inserts value before the cursor; a following Next is unaffected and
// a following Previous returns value.
func (it *ListIterator[E]) Add(value E) error {
	if err := checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return err
	}
	it.prev = it.list.linkAfter(it.prev, value)
	it.cursor++
	it.last, it.lastPrev = nil, nil
	it.expectedModCount = it.list.modCount
	it.state = cursorDirty
	return nil
}
