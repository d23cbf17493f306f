package board_test

import (
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestSquare(t *testing.T) {
	assert.Equal(t, board.A1, board.NewSquare(0, 0))
	assert.True(t, board.A1.IsValid())
	assert.False(t, board.Square(-1).IsValid())
	assert.False(t, board.Square(board.NumSquares).IsValid())

	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "e4", board.NewSquare(4, 3).String())
	assert.Equal(t, "h8", board.NewSquare(7, 7).String())
}

func TestSquareParse(t *testing.T) {
	sq, err := board.ParseSquare("e4")
	assert.NoError(t, err)
	assert.Equal(t, board.NewSquare(4, 3), sq)

	_, err = board.ParseSquare("e9")
	assert.Error(t, err)
	_, err = board.ParseSquare("i4")
	assert.Error(t, err)
	_, err = board.ParseSquare("e")
	assert.Error(t, err)
}

func TestSquareFileRank(t *testing.T) {
	sq := board.NewSquare(3, 5)
	assert.Equal(t, 3, sq.File())
	assert.Equal(t, 5, sq.Rank())
}

func TestSquareFlipInvolution(t *testing.T) {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		assert.Equal(t, sq, sq.Flip().Flip())
	}
	// A1 and H8 sit at opposite corners of the playing area.
	assert.Equal(t, board.NewSquare(7, 7), board.A1.Flip())
}
