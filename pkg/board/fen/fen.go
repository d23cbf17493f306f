// Package fen reads and writes chess positions in Forsyth-Edwards
// Notation (§6).
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julupanter/panterfish/pkg/board"
)

// Initial is the FEN of the starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a side-to-move-relative Position, plus
// the halfmove clock and fullmove number.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (board.Position, int, int, error) {
	parts := strings.Fields(s)
	if len(parts) != 6 {
		return board.Position{}, 0, 0, fmt.Errorf("invalid number of fields in FEN: %q", s)
	}

	// (1) Piece placement, White's perspective: rank 8 down to rank 1,
	// file a through h within each rank.

	var b board.Board
	for i := range b {
		b[i] = '.'
	}

	rank, file := 7, 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return board.Position{}, 0, 0, fmt.Errorf("invalid rank length in FEN: %q", s)
			}
			rank--
			file = 0

		case r >= '1' && r <= '8':
			for n := int(r - '0'); n > 0; n-- {
				if file >= 8 {
					return board.Position{}, 0, 0, fmt.Errorf("invalid rank length in FEN: %q", s)
				}
				b[board.NewSquare(file, rank)] = ' '
				file++
			}

		default:
			if _, _, ok := board.ParsePiece(byte(r)); !ok {
				return board.Position{}, 0, 0, fmt.Errorf("invalid piece %q in FEN: %q", r, s)
			}
			if file >= 8 {
				return board.Position{}, 0, 0, fmt.Errorf("invalid rank length in FEN: %q", s)
			}
			b[board.NewSquare(file, rank)] = byte(r)
			file++
		}
	}
	if rank != 0 || file != 8 {
		return board.Position{}, 0, 0, fmt.Errorf("invalid number of ranks in FEN: %q", s)
	}

	// (2) Active color: "w" or "b".

	var active byte
	switch parts[1] {
	case "w", "b":
		active = parts[1][0]
	default:
		return board.Position{}, 0, 0, fmt.Errorf("invalid active color in FEN: %q", s)
	}

	// (3) Castling availability: any of "KQkq", or "-".

	white, black, err := parseCastling(parts[2])
	if err != nil {
		return board.Position{}, 0, 0, fmt.Errorf("invalid castling in FEN %q: %w", s, err)
	}

	// (4) En passant target square, or "-".

	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return board.Position{}, 0, 0, fmt.Errorf("invalid en passant in FEN %q: %w", s, err)
		}
		ep = sq
	}

	// (5) Halfmove clock, since the last pawn advance or capture.

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return board.Position{}, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	// (6) Fullmove number, starting at 1.

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return board.Position{}, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	// The parsed board is always White's perspective so far; Position is
	// side-to-move-relative, so rotate into Black's frame when Black is
	// to move.
	p := board.Position{Board: b, WC: white, BC: black, EP: ep}
	p.Score = p.Recompute()
	if active == 'b' {
		p = p.Rotate()
	}
	return p, halfmove, fullmove, nil
}

func parseCastling(s string) (white, black board.CastleRights, err error) {
	if s == "-" {
		return white, black, nil
	}
	for _, r := range s {
		switch r {
		case 'K':
			white.East = true
		case 'Q':
			white.West = true
		case 'k':
			black.East = true
		case 'q':
			black.West = true
		default:
			return board.CastleRights{}, board.CastleRights{}, fmt.Errorf("unknown castling flag %q", r)
		}
	}
	return white, black, nil
}

// Encode renders p (side-to-move-relative; active is the mover's color,
// 'w' or 'b') back into a FEN record.
func Encode(p board.Position, active byte, halfmove, fullmove int) string {
	// p is in the mover's frame (own pieces uppercase). FEN always shows
	// White uppercase, so rotate back to White's frame when Black moves.
	if active == 'b' {
		p = p.Rotate()
	}
	white, black := p.WC, p.BC

	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < 8; file++ {
			c := p.Board[board.NewSquare(file, rank)]
			if c == ' ' {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteByte(c)
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(active)

	sb.WriteByte(' ')
	sb.WriteString(castlingString(white, black))

	sb.WriteByte(' ')
	if p.EP == board.ZeroSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EP.String())
	}

	fmt.Fprintf(&sb, " %d %d", halfmove, fullmove)
	return sb.String()
}

func castlingString(white, black board.CastleRights) string {
	var sb strings.Builder
	if white.East {
		sb.WriteByte('K')
	}
	if white.West {
		sb.WriteByte('Q')
	}
	if black.East {
		sb.WriteByte('k')
	}
	if black.West {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
