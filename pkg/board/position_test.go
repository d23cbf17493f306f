package board_test

import (
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perft(p board.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	n := 0
	for _, m := range p.GenMoves() {
		n += perft(p.Move(m), depth-1)
	}
	return n
}

func TestPerftInitial(t *testing.T) {
	pos := board.Initial()

	assert.Equal(t, 20, perft(pos, 1))
	assert.Equal(t, 400, perft(pos, 2))
}

func TestRotateInvolution(t *testing.T) {
	pos := board.Initial()
	assert.Equal(t, pos, pos.Rotate().Rotate())

	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	next := pos.Move(m)
	assert.Equal(t, next, next.Rotate().Rotate())
}

func TestScoreConsistency(t *testing.T) {
	pos := board.Initial()
	assert.Equal(t, pos.Score, pos.Recompute())

	for i, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		if i%2 == 1 {
			m = m.Mirror() // Black to move: absolute squares into Black's frame
		}
		pos = pos.Move(m)
		assert.Equal(t, pos.Score, pos.Recompute(), "after %v", s)
	}
}

func TestCastlingMoveGeneration(t *testing.T) {
	pos, _, _, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	kingside, _ := board.ParseMove("e1g1")
	queenside, _ := board.ParseMove("e1c1")

	var hasKingside, hasQueenside bool
	for _, m := range pos.GenMoves() {
		if m.Equals(kingside) {
			hasKingside = true
		}
		if m.Equals(queenside) {
			hasQueenside = true
		}
	}
	assert.True(t, hasKingside)
	assert.True(t, hasQueenside)
}

func TestCastlingBlockedByObstruction(t *testing.T) {
	pos, _, _, err := fen.Decode("r3k1nr/8/8/8/8/8/8/R3K1NR w KQkq - 0 1")
	require.NoError(t, err)

	kingside, _ := board.ParseMove("e1g1")
	for _, m := range pos.GenMoves() {
		assert.False(t, m.Equals(kingside))
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, _, _, err := fen.Decode("4k3/8/8/8/Pp6/8/8/4K3 b - a3 0 1")
	require.NoError(t, err)

	var found bool
	for _, m := range pos.GenMoves() {
		if m.To == pos.EP {
			found = true
		}
	}
	assert.True(t, found)
}

func TestKingCaptureTerminal(t *testing.T) {
	pos, _, _, err := fen.Decode("4k3/4R3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.HasOwnKing())

	m, err := board.ParseMove("e7e8")
	require.NoError(t, err)
	next := pos.Move(m)
	assert.False(t, next.HasOwnKing())
}
