package coll

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checkDoublyRing[E any](t *testing.T, l *CircularDoublyList[E]) {
	t.Helper()
	require.NotNil(t, l.head)
	n := l.head
	for i := 0; i <= l.size; i++ {
		require.True(t, n.next.prev == n, "next.prev broken at %d", i)
		require.True(t, n.prev.next == n, "prev.next broken at %d", i)
		n = n.next
	}
	require.True(t, n == l.head, "forward walk of size+1 links must return to the sentinel")
	for i := 0; i <= l.size; i++ {
		n = n.prev
	}
	require.True(t, n == l.head, "backward walk of size+1 links must return to the sentinel")
}

func TestCircularDoublyList_Circularity(t *testing.T) {
	l := NewCircularDoublyList[int]()
	checkDoublyRing(t, l)
	for i := 0; i < 8; i++ {
		l.Add(i)
	}
	checkDoublyRing(t, l)

	// Forward from the last element wraps to the first; backward from the
	// first wraps to the last.
	last := l.head.prev
	require.Equal(t, 7, last.value)
	require.True(t, last.next == l.head)
	require.Equal(t, 0, last.next.next.value)
	first := l.head.next
	require.True(t, first.prev == l.head)
	require.Equal(t, 7, first.prev.prev.value)
}

func TestCircularDoublyList_LookupDirection(t *testing.T) {
	for size := 0; size <= 21; size++ {
		l := NewCircularDoublyList[int]()
		for i := 0; i < size; i++ {
			l.Add(i)
		}
		for index := 0; index < size; index++ {
			n, hops := l.nodeAt(index)
			require.Equal(t, index, n.value)
			if index < size/2 {
				require.Equal(t, index+1, hops, "size %d index %d", size, index)
			} else {
				require.Equal(t, size-index, hops, "size %d index %d", size, index)
			}
			require.LessOrEqual(t, hops, size/2+1)
		}
		n, hops := l.nodeAt(-1)
		require.True(t, n == l.head)
		require.Zero(t, hops)
		n, hops = l.nodeAt(size)
		require.True(t, n == l.head)
		require.Zero(t, hops)
	}
}

func TestCircularDoublyList_Backward(t *testing.T) {
	l := NewCircularDoublyList[string]()
	for _, v := range []string{"a", "b", "c"} {
		l.Add(v)
	}
	var idx []int
	var vals []string
	for i, v := range l.Backward() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	require.Equal(t, []int{2, 1, 0}, idx)
	require.Equal(t, []string{"c", "b", "a"}, vals)

	for range l.Backward() {
		break
	}
	for range NewCircularDoublyList[int]().Backward() {
		t.Fatal("empty list yielded")
	}
}

func TestCircularDoublyList_LastIndexOf(t *testing.T) {
	l := NewCircularDoublyList[int]()
	for _, v := range []int{1, 2, 3, 2, 1} {
		l.Add(v)
	}
	require.Equal(t, 4, l.LastIndexOf(1))
	require.Equal(t, 3, l.LastIndexOf(2))
	require.Equal(t, 2, l.LastIndexOf(3))
	require.Equal(t, -1, l.LastIndexOf(9))
	require.Equal(t, 0, l.IndexOf(1))
}

func TestCircularDoublyList_ZeroValue(t *testing.T) {
	var l CircularDoublyList[int]
	require.True(t, l.IsEmpty())
	_, err := l.Last()
	require.ErrorIs(t, err, ErrNoSuchElement)
	_, err = l.Remove(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	l.Add(2)
	require.NoError(t, l.Insert(0, 1))
	require.NoError(t, l.Insert(2, 3))
	require.Equal(t, []int{1, 2, 3}, l.Values())
	checkDoublyRing(t, &l)
	require.Panics(t, func() { l.Contains(2) })

	var cleared CircularDoublyList[int]
	cleared.Clear()
	checkDoublyRing(t, &cleared)
}

func TestDoublyListIterator_PreviousFollowsBackLinks(t *testing.T) {
	l := NewCircularDoublyList[int]()
	for i := 0; i < 100; i++ {
		l.Add(i)
	}
	it, err := l.ListIterator(100)
	require.NoError(t, err)
	for want := 99; want >= 0; want-- {
		require.Equal(t, want, it.PreviousIndex())
		v, err := it.Previous()
		require.NoError(t, err)
		require.Equal(t, want, v)
		require.True(t, it.next == it.last)
	}
	require.False(t, it.HasPrevious())
}

func TestDoublyListIterator_RemoveKeepsLinks(t *testing.T) {
	l := NewCircularDoublyList[int]()
	for i := 0; i < 10; i++ {
		l.Add(i)
	}
	it, err := l.ListIterator(10)
	require.NoError(t, err)
	for it.HasPrevious() {
		v, err := it.Previous()
		require.NoError(t, err)
		if v%3 == 0 {
			require.NoError(t, it.Remove())
			checkDoublyRing(t, l)
		}
	}
	require.Equal(t, []int{1, 2, 4, 5, 7, 8}, l.Values())
	require.Equal(t, 0, it.NextIndex())
}
