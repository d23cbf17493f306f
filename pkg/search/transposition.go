// Package search implements the MTD-bi searcher: a transposition-bound
// negamax routine (§4.3) driven by an iterative-deepening outer loop.
package search

import (
	"sync"

	"github.com/julupanter/panterfish/pkg/board"
)

// scoreKey identifies one transposition-bound entry: a position at a
// given search depth (§3 "Tables owned by the Searcher").
type scoreKey struct {
	Pos   board.Position
	Depth int
}

// scoreBound holds the known lower and upper bounds for a position at a
// depth. The Searcher never stores an exact score here, only bounds
// (§9: this is essential to MTD-bi and must not be "optimized" away by
// caching exact scores at PV nodes).
type scoreBound struct {
	Lower, Upper int
}

// Table is the pair of maps the Searcher consults between recursive
// calls: tp_score, the lower/upper bound cache keyed by (position,
// depth), and tp_move, the killer/hash move cache keyed by position
// alone. Both are soft-capped and evict via a simple policy, per §5
// ("cap them by a soft size limit and evict via a simple policy
// (random or oldest-insertion), because the search is robust to any
// consistent subset of stored bounds").
//
// A Position is a plain comparable Go value (see pkg/board) rather
// than a Zobrist hash behind a pointer, so it is used directly as the
// map key and the table is guarded by an ordinary mutex instead of the
// lock-free, fixed-width CAS slots a hash-keyed table would use -- the
// engine is single-threaded per §5 ("no shared mutable resources
// across tasks"), so contention is not a concern worth a lock-free
// design for.
type Table struct {
	mu sync.Mutex

	score map[scoreKey]scoreBound
	move  map[board.Position]board.Move

	capacity int
}

// NewTable returns an empty Table that evicts an arbitrary entry from a
// map once it reaches capacity entries. A capacity of 0 means
// unbounded.
func NewTable(capacity int) *Table {
	return &Table{
		score:    make(map[scoreKey]scoreBound),
		move:     make(map[board.Position]board.Move),
		capacity: capacity,
	}
}

// Score returns the known bound for (pos, depth), defaulting to the
// widest possible window if no entry is present.
func (t *Table) Score(pos board.Position, depth int) scoreBound {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b, ok := t.score[scoreKey{pos, depth}]; ok {
		return b
	}
	return scoreBound{Lower: -MateUpper, Upper: MateUpper}
}

// SetLower records score as a new lower bound for (pos, depth).
func (t *Table) SetLower(pos board.Position, depth, score int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := scoreKey{pos, depth}
	b, ok := t.score[key]
	if !ok {
		b = scoreBound{Lower: -MateUpper, Upper: MateUpper}
		if len(t.score) >= t.capacityOr(len(t.score)+1) {
			evictOne(t.score)
		}
	}
	b.Lower = score
	t.score[key] = b
}

// SetUpper records score as a new upper bound for (pos, depth).
func (t *Table) SetUpper(pos board.Position, depth, score int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := scoreKey{pos, depth}
	b, ok := t.score[key]
	if !ok {
		b = scoreBound{Lower: -MateUpper, Upper: MateUpper}
		if len(t.score) >= t.capacityOr(len(t.score)+1) {
			evictOne(t.score)
		}
	}
	b.Upper = score
	t.score[key] = b
}

// Move returns the cached killer/hash move for pos, if any.
func (t *Table) Move(pos board.Position) (board.Move, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.move[pos]
	return m, ok
}

// SetMove records m as the best move found for pos.
func (t *Table) SetMove(pos board.Position, m board.Move) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.move[pos]; !ok && len(t.move) >= t.capacityOr(len(t.move)+1) {
		evictOne(t.move)
	}
	t.move[pos] = m
}

// Len reports the number of entries in tp_score and tp_move.
func (t *Table) Len() (score, move int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.score), len(t.move)
}

// capacityOr returns t.capacity, or an unreachable bound when the
// table is uncapped.
func (t *Table) capacityOr(uncapped int) int {
	if t.capacity <= 0 {
		return uncapped + 1
	}
	return t.capacity
}

// evictOne removes a single, arbitrary entry from m. Go's map
// iteration order is unspecified per run, which is sufficient
// randomness for the "evict via a simple policy (random or
// oldest-insertion)" requirement without separately tracking
// insertion order.
func evictOne[K comparable, V any](m map[K]V) {
	for k := range m {
		delete(m, k)
		return
	}
}
