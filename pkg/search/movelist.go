package search

import (
	"container/heap"
	"fmt"

	"github.com/julupanter/panterfish/pkg/board"
)

// Priority represents the move order priority.
type Priority int

// MoveList is a move priority queue for move ordering: the hash/killer
// move first, then generated moves in descending order of
// pos.Value(move) (§4.3 step 5).
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a move list over moves, each scored by fn. A
// hash move, if non-zero, is forced to the front regardless of its
// score.
func NewMoveList(moves []board.Move, hash board.Move, fn func(board.Move) Priority) *MoveList {
	h := make(moveHeap, 0, len(moves)+1)
	if !hash.IsZero() {
		h = append(h, elm{m: hash, val: Priority(1) << 30})
	}
	for _, m := range moves {
		if !hash.IsZero() && m.Equals(hash) {
			continue
		}
		h = append(h, elm{m: m, val: fn(m)})
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next move in priority order.
func (ml *MoveList) Next() (board.Move, Priority, bool) {
	if ml.Size() == 0 {
		return board.Move{}, 0, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, ret.val, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int {
	return len(h)
}

func (h moveHeap) Less(i, j int) bool {
	return h[i].val > h[j].val
}

func (h moveHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *moveHeap) Push(x interface{}) {
	*h = append(*h, x.(elm))
}

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	ret := (*h)[n-1]
	*h = (*h)[0 : n-1]
	return ret
}
