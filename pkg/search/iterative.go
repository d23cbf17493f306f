package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julupanter/panterfish/pkg/board"
)

// MaxPVLength caps principal-variation extraction, so a cycle missed
// by the repeated-position check in principalVariation cannot loop
// forever.
const MaxPVLength = 128

// PV is the principal variation produced by one completed
// iterative-deepening depth (§4.3's "_search" driver).
type PV struct {
	Depth int
	Score int
	Nodes int64
	Moves []board.Move
	Time  time.Duration
}

func (p PV) String() string {
	var sb strings.Builder
	for i, m := range p.Moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, sb.String())
}

// SearchDepth runs the MTD-bi bisection loop of §4.3 step 1 for a
// single depth and returns the resulting principal variation.
//
// MTD-bi converges on the root score by repeatedly calling Bound with
// a zero-width window centered at gamma, narrowing [lower, upper] from
// whichever side the result fell on, until the window is within
// EvalRoughness.
func (s *Searcher) SearchDepth(ctx context.Context, root board.Position, history []board.Position, depth int) (PV, error) {
	start := time.Now()

	lower, upper := -MateUpper, MateUpper
	score := lower
	for lower < upper-EvalRoughness {
		gamma := (lower + upper + 1) / 2

		var err error
		score, err = s.Bound(ctx, root, history, gamma, depth, true)
		if err != nil {
			return PV{}, err
		}

		if score >= gamma {
			lower = score
		} else {
			upper = score
		}
	}

	return PV{
		Depth: depth,
		Score: score,
		Nodes: s.Nodes(),
		Moves: s.principalVariation(root),
		Time:  time.Since(start),
	}, nil
}

// principalVariation walks tp_move from root, applying moves, and
// stops when the chain ends, a move repeats a prior position in the
// line, or MaxPVLength is reached (§4.3 step 3).
func (s *Searcher) principalVariation(root board.Position) []board.Move {
	var moves []board.Move
	seen := map[board.Position]bool{root: true}

	pos := root
	for i := 0; i < MaxPVLength; i++ {
		m, ok := s.Table.Move(pos)
		if !ok || m.IsZero() {
			break
		}
		pos = pos.Move(m)
		moves = append(moves, m)
		if seen[pos] {
			break
		}
		seen[pos] = true
	}
	return moves
}
