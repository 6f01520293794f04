package coll

// DoublyListIterator is a bidirectional cursor over a CircularDoublyList.
// It follows the same rules as ListIterator, but Previous steps over a back
// link in O(1).
type DoublyListIterator[E any] struct {
	list             *CircularDoublyList[E]
	next             *bidiNode[E] // node after the cursor, the sentinel at the end
	cursor           int
	last             *bidiNode[E]
	state            cursorState
	expectedModCount uint64
}

// HasNext reports whether Next has an element to return.
func (it *DoublyListIterator[E]) HasNext() bool {
	return it.cursor < it.list.size
}

// Next returns the element after the cursor and advances past it.
func (it *DoublyListIterator[E]) Next() (value E, err error) {
	if err = checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return value, err
	}
	if !it.HasNext() {
		return value, noSuchElement("next", it.cursor)
	}
	it.last = it.next
	it.next = it.next.next
	it.cursor++
	it.state = cursorPositioned
	return it.last.value, nil
}

// HasPrevious reports whether Previous has an element to return.
func (it *DoublyListIterator[E]) HasPrevious() bool {
	return it.cursor > 0
}

// Previous returns the element before the cursor and moves back over it.
func (it *DoublyListIterator[E]) Previous() (value E, err error) {
	if err = checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return value, err
	}
	if !it.HasPrevious() {
		return value, noSuchElement("previous", it.cursor-1)
	}
	it.next = it.next.prev
	it.last = it.next
	it.cursor--
	it.state = cursorPositioned
	return it.last.value, nil
}

// NextIndex returns the index of the element Next would return.
func (it *DoublyListIterator[E]) NextIndex() int {
	return it.cursor
}

// PreviousIndex returns the index of the element Previous would return.
func (it *DoublyListIterator[E]) PreviousIndex() int {
	return it.cursor - 1
}

// Set replaces the element returned by the latest step.
func (it *DoublyListIterator[E]) Set(value E) error {
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
func (it *DoublyListIterator[E]) Remove() error {
	if err := checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return err
	}
	if err := it.state.checkMutable("remove"); err != nil {
		return err
	}
	if it.next == it.last {
		// Stepped backward onto last.
		it.next = it.last.next
	} else {
		it.cursor--
	}
	it.list.unlink(it.last)
	it.last = nil
	it.expectedModCount = it.list.modCount
	it.state = cursorDirty
	return nil
}

// Add inserts value before the cursor; a following Next is unaffected and
// a following Previous returns value.
func (it *DoublyListIterator[E]) Add(value E) error {
	if err := checkModCount(it.expectedModCount, it.list.modCount); err != nil {
		return err
	}
	it.list.linkAfter(it.next.prev, value)
	it.cursor++
	it.last = nil
	it.expectedModCount = it.list.modCount
	it.state = cursorDirty
	return nil
}
