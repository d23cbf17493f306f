package board

// Piece represents a chess piece kind, without color. The board encodes
// color via letter case, not via this type: Piece only ever appears
// stripped of color, e.g. as a promotion choice or a PST index.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	NumPieces = int(King) + 1
)

// BaseValue is the piece's fixed material value in centipawns, baked
// into every entry of its piece-square table (§4.1, §4.3 tunables).
func (p Piece) BaseValue() int {
	switch p {
	case Pawn:
		return 100
	case Knight:
		return 280
	case Bishop:
		return 320
	case Rook:
		return 479
	case Queen:
		return 929
	case King:
		return 60000
	default:
		return 0
	}
}

// ParsePiece parses an uppercase or lowercase piece letter, returning the
// piece and whether it is an "own" (uppercase) piece.
func ParsePiece(r byte) (p Piece, own bool, ok bool) {
	switch r {
	case 'P':
		return Pawn, true, true
	case 'N':
		return Knight, true, true
	case 'B':
		return Bishop, true, true
	case 'R':
		return Rook, true, true
	case 'Q':
		return Queen, true, true
	case 'K':
		return King, true, true
	case 'p':
		return Pawn, false, true
	case 'n':
		return Knight, false, true
	case 'b':
		return Bishop, false, true
	case 'r':
		return Rook, false, true
	case 'q':
		return Queen, false, true
	case 'k':
		return King, false, true
	default:
		return NoPiece, false, false
	}
}

// ParsePromotion parses a lowercase UCI promotion letter (q, r, b, n).
func ParsePromotion(r byte) (Piece, bool) {
	switch r {
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	default:
		return NoPiece, false
	}
}

// Letter renders p as its own-side (uppercase) board letter.
func (p Piece) Letter() byte {
	switch p {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return ' '
	}
}

// String renders p as its lowercase UCI promotion letter, or "" for
// NoPiece.
func (p Piece) String() string {
	switch p {
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	default:
		return ""
	}
}
