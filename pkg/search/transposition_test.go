package search_test

import (
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTableScoreDefault(t *testing.T) {
	tbl := search.NewTable(0)
	pos := board.Initial()

	b := tbl.Score(pos, 3)
	assert.Equal(t, -search.MateUpper, b.Lower)
	assert.Equal(t, search.MateUpper, b.Upper)
}

func TestTableSetLowerUpper(t *testing.T) {
	tbl := search.NewTable(0)
	pos := board.Initial()

	tbl.SetLower(pos, 3, 120)
	b := tbl.Score(pos, 3)
	assert.Equal(t, 120, b.Lower)
	assert.Equal(t, search.MateUpper, b.Upper)

	tbl.SetUpper(pos, 3, 80)
	b = tbl.Score(pos, 3)
	assert.Equal(t, 120, b.Lower)
	assert.Equal(t, 80, b.Upper)

	// A different depth is a distinct entry.
	other := tbl.Score(pos, 4)
	assert.Equal(t, -search.MateUpper, other.Lower)
	assert.Equal(t, search.MateUpper, other.Upper)
}

func TestTableMove(t *testing.T) {
	tbl := search.NewTable(0)
	pos := board.Initial()

	_, ok := tbl.Move(pos)
	assert.False(t, ok)

	m, _ := board.ParseMove("e2e4")
	tbl.SetMove(pos, m)

	got, ok := tbl.Move(pos)
	assert.True(t, ok)
	assert.True(t, got.Equals(m))
}

func TestTableEviction(t *testing.T) {
	tbl := search.NewTable(4)
	pos := board.Initial()

	for i := 0; i < 20; i++ {
		next := pos.Move(board.Move{From: board.NewSquare(0, 1), To: board.NewSquare(0, 2 + i%2)})
		tbl.SetUpper(next, i, i)
	}

	score, _ := tbl.Len()
	assert.LessOrEqual(t, score, 5)
}
