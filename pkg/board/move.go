package board

import "fmt"

// Move is a (from-square, to-square, promotion-piece) triple — the
// entire contents of a move, per §3. Whether a move is a capture,
// castle, double push or en passant is derived on demand from a
// Position rather than stored on Move.
type Move struct {
	From, To  Square
	Promotion Piece // NoPiece unless this is a pawn promotion.
}

// ParseMove parses a move in UCI coordinate notation, e.g. "e2e4" or
// "e7e8q", as absolute (White-oriented) squares. When Black is to move
// the caller mirrors the result into Black's frame (see Mirror and
// pkg/engine's Engine.Move).
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		promo, ok := ParsePromotion(s[4])
		if !ok {
			return Move{}, fmt.Errorf("invalid promotion in move %q", s)
		}
		m.Promotion = promo
	}
	return m, nil
}

// Mirror flips both squares of m through Square.Flip, translating a move
// between absolute (White-oriented) UCI notation and Black's mover-
// relative frame. It always flips; callers apply it only when Black is
// to move. It is its own inverse, so the same call converts in either
// direction.
func (m Move) Mirror() Move {
	return Move{From: m.From.Flip(), To: m.To.Flip(), Promotion: m.Promotion}
}

// Equals reports whether m and o denote the same move.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// IsZero reports whether m is the UCI null move sentinel.
func (m Move) IsZero() bool {
	return m == Move{}
}

// String renders m in UCI coordinate notation.
func (m Move) String() string {
	return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
}
