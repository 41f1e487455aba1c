package datastructure

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	ranks := []float64{5, 3, 8, 1, 9, 2, 7}
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[int](d)
		for i, r := range ranks {
			h.Insert(NewPriorityQueueNode(r, i))
		}

		got := make([]float64, 0, len(ranks))
		for !h.IsEmpty() {
			node, err := h.ExtractMin()
			require.NoError(t, err)
			got = append(got, node.GetRank())
		}

		want := append([]float64(nil), ranks...)
		sort.Float64s(want)
		assert.Equal(t, want, got)
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[string]()
	a := NewPriorityQueueNode(10.0, "a")
	b := NewPriorityQueueNode(5.0, "b")
	c := NewPriorityQueueNode(7.0, "c")
	h.Insert(a)
	h.Insert(b)
	h.Insert(c)

	require.NoError(t, h.DecreaseKey(a, 1.0))
	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, "a", min.GetItem())
	assert.Equal(t, 3, h.Size())

	assert.ErrorIs(t, h.DecreaseKey(c, 100.0), ErrStaleHeapKey)

	extracted, err := h.ExtractMin()
	require.NoError(t, err)
	assert.ErrorIs(t, h.DecreaseKey(extracted, 0.5), ErrStaleHeapKey)
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewdAryHeap[int](2)
	_, err := h.GetMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)
	_, err = h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)
}
