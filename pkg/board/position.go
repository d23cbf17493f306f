// Package board contains the mailbox chess board representation, the
// piece-square evaluator, and pseudo-legal move generation (§3, §4.1,
// §4.2).
package board

import (
	"fmt"
	"strings"
)

// Corner and home squares, derived from A1 the same way the rest of the
// package derives offsets. A8/H8 are the opponent's (lowercase) rook
// corners in the side-to-move-relative board.
const (
	H1 = A1 + 7
	A8 = A1 + 7*North
	H8 = A8 + 7
	E1 = A1 + 4
)

// CastleRights holds one side's queenside (West, a-file rook) and
// kingside (East, h-file rook) castling rights.
type CastleRights struct {
	West, East bool
}

// Board is the 120-byte mailbox: '.' for a non-playing sentinel square,
// ' ' for an empty playing square, an uppercase letter for an own piece,
// a lowercase letter for an opponent piece. Comparable, so it — and the
// Position that embeds it — can be used directly as a map key.
type Board [NumSquares]byte

// Position is an immutable, side-to-move-relative chess position (§3).
type Position struct {
	Board Board
	Score int
	WC    CastleRights // own castling rights
	BC    CastleRights // opponent's castling rights
	EP    Square // en passant target, ZeroSquare if none
	KP    Square // king-passant square, ZeroSquare if none
}

// Initial is the starting position, White to move.
func Initial() Position {
	var b Board
	for i := range b {
		b[i] = '.'
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		if isPlayingSquare(sq) {
			b[sq] = ' '
		}
	}

	place := func(file, rank int, letter byte) {
		b[NewSquare(file, rank)] = letter
	}
	backRank := []byte{'R', 'N', 'B', 'Q', 'K', 'B', 'N', 'R'}
	for f := 0; f < 8; f++ {
		place(f, 0, backRank[f])
		place(f, 1, 'P')
		place(f, 6, 'p')
		place(f, 7, toLower(backRank[f]))
	}

	p := Position{Board: b, WC: CastleRights{true, true}, BC: CastleRights{true, true}}
	p.Score = p.Recompute()
	return p
}

func toLower(b byte) byte {
	return b - 'A' + 'a'
}

// isPlayingSquare reports whether sq lies in the inner 8x8 playing area
// rather than the mailbox padding.
func isPlayingSquare(sq Square) bool {
	row, col := int(sq)/10, int(sq)%10
	return row >= 2 && row <= 9 && col >= 1 && col <= 8
}

// Recompute evaluates the board from scratch: sum of own PST values
// minus sum of opponent PST values. Used to build the initial position
// and as a debug-assertion fallback (§7) against incremental drift.
func (p Position) Recompute() int {
	total := 0
	for sq := Square(0); sq < NumSquares; sq++ {
		c := p.Board[sq]
		piece, own, ok := ParsePiece(c)
		if !ok {
			continue
		}
		if own {
			total += pstValue(piece, sq)
		} else {
			total -= pstValue(piece, sq.Flip())
		}
	}
	return total
}

// HasOwnKing reports whether the side to move still has a king on the
// board. Its absence means the previous move captured it — the
// engine's sole source of "checkmate" information (§4.2 terminal
// detection, §9).
func (p Position) HasOwnKing() bool {
	return strings.IndexByte(string(p.Board[:]), 'K') >= 0
}

// pieceDirections returns the fixed step vectors for piece, and whether
// the piece slides (repeats the direction until blocked). Pawn moves
// have their own rules and are generated by genPawnMoves instead.
func pieceDirections(piece Piece) (dirs []int, sliding bool) {
	switch piece {
	case Knight:
		return []int{North + North + East, North + North + West,
			South + South + East, South + South + West,
			East + East + North, East + East + South,
			West + West + North, West + West + South}, false
	case Bishop:
		return []int{NorthEast, NorthWest, SouthEast, SouthWest}, true
	case Rook:
		return []int{North, South, East, West}, true
	case Queen, King:
		return []int{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}, piece == Queen
	default:
		return nil, false
	}
}

// GenMoves returns every pseudo-legal move for the side to move (§4.2).
// Legality (own king not left capturable) is not checked here — see
// §4.2/§9: the search resolves it lazily via king capture.
func (p Position) GenMoves() []Move {
	var moves []Move

	for i := Square(0); i < NumSquares; i++ {
		c := p.Board[i]
		if c < 'A' || c > 'Z' {
			continue // not an own piece
		}
		piece, _, _ := ParsePiece(c)

		if piece == Pawn {
			moves = append(moves, p.genPawnMoves(i)...)
			continue
		}

		if piece == Rook {
			if m, ok := p.genCastle(i); ok {
				moves = append(moves, m)
			}
		}

		dirs, sliding := pieceDirections(piece)
		for _, d := range dirs {
			j := i
			for {
				j += Square(d)
				if !j.IsValid() || p.Board[j] == '.' {
					break // off board or sentinel
				}
				if p.Board[j] >= 'A' && p.Board[j] <= 'Z' {
					break // blocked by own piece
				}
				moves = append(moves, Move{From: i, To: j})
				if !sliding || p.Board[j] != ' ' {
					break // non-sliding piece, or captured an opponent piece
				}
			}
		}
	}
	return moves
}

func (p Position) genPawnMoves(i Square) []Move {
	var moves []Move

	emit := func(to Square) {
		if to.Rank() == 7 {
			for _, promo := range []Piece{Queen, Rook, Bishop, Knight} {
				moves = append(moves, Move{From: i, To: to, Promotion: promo})
			}
			return
		}
		moves = append(moves, Move{From: i, To: to})
	}

	// Single push.
	if j := i + North; p.Board[j] == ' ' {
		emit(j)

		// Double push: only from the starting rank, both squares empty.
		if i.Rank() == 1 {
			if j2 := i + 2*North; p.Board[j2] == ' ' {
				emit(j2)
			}
		}
	}

	// Diagonal captures, including en passant and capturing a king
	// mid-castle via KP.
	for _, d := range []int{North + West, North + East} {
		j := i + Square(d)
		if !j.IsValid() {
			continue
		}
		c := p.Board[j]
		switch {
		case c >= 'a' && c <= 'z':
			emit(j)
		case j == p.EP && c == ' ':
			emit(j)
		case p.KP != ZeroSquare && j == p.KP:
			emit(j)
		}
	}
	return moves
}

// genCastle emits the king's two-square castling move, if i is an own
// rook on its home square with rights and a clear path to the king.
func (p Position) genCastle(i Square) (Move, bool) {
	var right bool
	var step int
	switch i {
	case A1:
		right, step = p.WC.West, West
	case H1:
		right, step = p.WC.East, East
	default:
		return Move{}, false
	}
	if !right || p.Board[E1] != 'K' {
		return Move{}, false
	}
	for j := E1 + Square(step); j != i; j += Square(step) {
		if p.Board[j] != ' ' {
			return Move{}, false
		}
	}
	return Move{From: E1, To: E1 + Square(2*step)}, true
}

// Value returns the incremental static-score delta of applying m to p,
// from the side-to-move's perspective (§4.1).
func (p Position) Value(m Move) int {
	piece, _, _ := ParsePiece(p.Board[m.From])
	delta := pstValue(piece, m.To) - pstValue(piece, m.From)

	if target, own, ok := ParsePiece(p.Board[m.To]); ok && !own {
		delta += pstValue(target, m.To.Flip())
	}

	if piece == King {
		if m.To == m.From+2*East {
			delta += pstValue(Rook, m.From+East) - pstValue(Rook, m.From+3*East)
		} else if m.To == m.From+2*West {
			delta += pstValue(Rook, m.From+West) - pstValue(Rook, m.From+4*West)
		}
	}

	if piece == Pawn {
		if m.To == p.EP && p.Board[m.To] == ' ' {
			delta += pstValue(Pawn, (m.To + South).Flip())
		}
		if m.Promotion != NoPiece {
			delta += pstValue(m.Promotion, m.To) - pstValue(Pawn, m.To)
		}
	}
	return delta
}

// Move applies m and returns the successor position, from the
// opponent's point of view (§4.2: copy, apply, rotate).
func (p Position) Move(m Move) Position {
	score := p.Score + p.Value(m)

	b := p.Board
	piece := b[m.From]
	b[m.To] = piece
	b[m.From] = ' '

	wc, bc := p.WC, p.BC
	if m.From == A1 {
		wc.West = false
	}
	if m.From == H1 {
		wc.East = false
	}
	if m.To == A8 {
		bc.West = false
	}
	if m.To == H8 {
		bc.East = false
	}

	var kp Square
	if piece == 'K' {
		wc = CastleRights{}
		if m.To == m.From+2*East {
			b[m.From+3*East] = ' '
			kp = m.From + East
			b[kp] = 'R'
		} else if m.To == m.From+2*West {
			b[m.From+4*West] = ' '
			kp = m.From + West
			b[kp] = 'R'
		}
	}

	var ep Square
	if piece == 'P' {
		if m.To.Rank() == 7 {
			b[m.To] = m.Promotion.Letter()
		}
		if m.To == m.From+2*North {
			ep = m.From + North
		}
		if m.To == p.EP {
			b[m.To+South] = ' '
		}
	}

	next := Position{Board: b, Score: score, WC: wc, BC: bc, EP: ep, KP: kp}
	return next.Rotate()
}

// Rotate returns the opponent's view of p: the board reversed end to
// end with case swapped, the score negated, the castling pairs swapped,
// and EP/KP mirrored through the same reversal (§4.2).
func (p Position) Rotate() Position {
	var b Board
	for i, c := range p.Board {
		b[NumSquares-1-i] = swapCase(c)
	}
	return Position{
		Board: b,
		Score: -p.Score,
		WC:    p.BC,
		BC:    p.WC,
		EP:    flipOrZero(p.EP),
		KP:    flipOrZero(p.KP),
	}
}

// flipOrZero flips sq, preserving ZeroSquare ("no square") across the
// flip instead of mapping it to Flip's fixed point's mirror.
func flipOrZero(sq Square) Square {
	if sq == ZeroSquare {
		return ZeroSquare
	}
	return sq.Flip()
}

// Nullmove is Rotate without actually moving: used for null-move
// pruning. En passant and king-passant captures do not carry over a
// pass (§4.2).
func (p Position) Nullmove() Position {
	n := p.Rotate()
	n.EP = ZeroSquare
	n.KP = ZeroSquare
	return n
}

func swapCase(c byte) byte {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 'a'
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A'
	default:
		return c
	}
}

func (p Position) String() string {
	var sb strings.Builder
	for row := 0; row < 12; row++ {
		for col := 0; col < 10; col++ {
			sb.WriteByte(p.Board[Square(row*10+col)])
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "score=%v wc=%v bc=%v ep=%v kp=%v", p.Score, p.WC, p.BC, p.EP, p.KP)
	return sb.String()
}
