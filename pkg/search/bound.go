package search

import (
	"context"
	"errors"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"go.uber.org/atomic"
)

// ErrHalted indicates the search was abandoned: the context was
// cancelled or the node limit was reached before Bound could return a
// definitive result (§5 "in-flight recursion may be abandoned; any
// partial transposition-table updates from an abandoned iteration are
// kept").
var ErrHalted = errors.New("search halted")

// Tunable constants recognized by the Searcher (§4.3).
const (
	// QS is the quiescence capture threshold: at depth 0, a generated
	// move is skipped unless its incremental score exceeds QS.
	QS = 40
	// QSA (quiescence aggression) is declared for compatibility with
	// §4.3's tunable list. Nothing reads it and no driver accepts it as
	// an option: depth-0 candidates are filtered on QS alone.
	QSA = 140
	// EvalRoughness is the MTD-bi convergence tolerance.
	EvalRoughness = 15
)

// MateLower and MateUpper bracket the mate-score range, derived from
// the piece values of §4.1.
var (
	MateLower = board.King.BaseValue() - 10*board.Queen.BaseValue()
	MateUpper = board.King.BaseValue() + 10*board.Queen.BaseValue()
)

// Searcher runs the MTD-bi search of §4.3 over an owned, process-
// lifetime transposition Table.
type Searcher struct {
	Table     *Table
	NodeLimit int64 // 0 == unlimited

	nodes atomic.Int64
}

// NewSearcher returns a Searcher backed by a fresh Table with the given
// soft entry-count cap (0 for unbounded).
func NewSearcher(tableCapacity int) *Searcher {
	return &Searcher{Table: NewTable(tableCapacity)}
}

// Nodes returns the number of positions visited since creation.
func (s *Searcher) Nodes() int64 {
	return s.nodes.Load()
}

// Bound implements bound(pos, gamma, depth, can_null) -> score: it
// returns a lower bound on pos's minimax value if the result is >=
// gamma, otherwise an upper bound, with a zero-width window centered
// at gamma (§4.3).
func (s *Searcher) Bound(ctx context.Context, pos board.Position, history []board.Position, gamma, depth int, canNull bool) (int, error) {
	if contextx.IsCancelled(ctx) {
		return 0, ErrHalted
	}
	if n := s.nodes.Inc(); s.NodeLimit > 0 && n > s.NodeLimit {
		return 0, ErrHalted
	}

	// 1. Clamp depth.
	if depth < 0 {
		depth = 0
	}

	// 2. Own king missing: this position is already lost.
	if !pos.HasOwnKing() {
		return -MateUpper, nil
	}

	// 3. Repetition: aggressive, any repeat against the ongoing game
	// history, checked at every node reachable without having passed
	// through an intervening null move -- the engine is willing to
	// enter repetitions while searching deeper lines.
	if canNull && containsPosition(history, pos) {
		return 0, nil
	}

	// 4. Transposition lookup.
	known := s.Table.Score(pos, depth)
	if known.Lower >= gamma {
		return known.Lower, nil
	}
	if known.Upper < gamma {
		return known.Upper, nil
	}

	best := -MateUpper
	var bestMove board.Move

	// 5a. Null move, tried only when not in (score-approximated) check:
	// if the opponent, given a free move, still cannot reach its target,
	// the negated result reaches gamma and the node fails high.
	if depth > 0 && canNull && pos.Score > -MateLower {
		score, err := s.Bound(ctx, pos.Nullmove(), history, 1-gamma, depth-3, false)
		if err != nil {
			return 0, err
		}
		score = -score
		if score >= gamma {
			return score, nil
		}
	}

	// 5b. Stand pat: quiescence's fixed, non-recursive lower bound.
	if depth == 0 && pos.Score > best {
		best = pos.Score
	}

	// 5c/5d. Hash/killer move first, then generated moves in
	// descending order of incremental value, via the move list's
	// priority queue; depth 0 keeps only moves whose value already
	// clears QS.
	hash, _ := s.Table.Move(pos)
	ml := NewMoveList(pos.GenMoves(), hash, func(m board.Move) Priority {
		return Priority(pos.Value(m))
	})

	// 6. Recurse over each candidate, negamax-style, tracking the best
	// child and stopping at the first beta cutoff.
	seen := 0
	for {
		m, _, ok := ml.Next()
		if !ok {
			break
		}
		if depth == 0 && pos.Value(m) <= QS {
			continue
		}
		seen++

		score, err := s.Bound(ctx, pos.Move(m), history, 1-gamma, depth-1, true)
		if err != nil {
			return 0, err
		}
		score = -score

		if score > best {
			best = score
			bestMove = m
		}
		if best >= gamma {
			break
		}
	}

	if best >= gamma {
		s.Table.SetLower(pos, depth, best)
		if !bestMove.IsZero() {
			s.Table.SetMove(pos, bestMove)
		}
		return best, nil
	}

	// 7. Checkmate adjustment: nothing beat the initial floor and
	// passing would still leave the king capturable -- distinguish
	// checkmate from stalemate, which falls through unmodified.
	if depth > 0 && seen == 0 && wouldBeCapturedOnPass(pos) {
		best = -MateUpper + depth
	}

	// 8. Final score is recorded as an upper bound.
	s.Table.SetUpper(pos, depth, best)
	return best, nil
}

func containsPosition(history []board.Position, pos board.Position) bool {
	for _, h := range history {
		if h == pos {
			return true
		}
	}
	return false
}

// wouldBeCapturedOnPass reports whether, if the side to move passed
// instead of playing a move, the opponent would have a reply capturing
// the king -- the engine's approximation of "in check", used to tell
// checkmate apart from stalemate (§4.3 step 7, §9: stalemate is not
// otherwise distinguished and is scored as loss by king capture).
func wouldBeCapturedOnPass(pos board.Position) bool {
	nm := pos.Nullmove()
	for _, m := range nm.GenMoves() {
		if !nm.Move(m).HasOwnKing() {
			return true
		}
	}
	return false
}
