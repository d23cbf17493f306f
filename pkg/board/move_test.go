package board_test

import (
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, board.Move{From: board.NewSquare(4, 1), To: board.NewSquare(4, 3)}, m)
	assert.Equal(t, "e2e4", m.String())

	m, err = board.ParseMove("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, board.Queen, m.Promotion)
	assert.Equal(t, "e7e8q", m.String())

	_, err = board.ParseMove("e2e4x")
	assert.Error(t, err)
	_, err = board.ParseMove("e2")
	assert.Error(t, err)
}

func TestMoveEquals(t *testing.T) {
	a, _ := board.ParseMove("e2e4")
	b, _ := board.ParseMove("e2e4")
	c, _ := board.ParseMove("d2d4")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestMoveIsZero(t *testing.T) {
	assert.True(t, board.Move{}.IsZero())
	m, _ := board.ParseMove("e2e4")
	assert.False(t, m.IsZero())
}
