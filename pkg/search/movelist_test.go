package search_test

import (
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveListOrdersByPriority(t *testing.T) {
	a, _ := board.ParseMove("e2e4")
	b, _ := board.ParseMove("d2d4")
	c, _ := board.ParseMove("a2a3")

	priority := map[board.Move]search.Priority{a: 10, b: 30, c: 20}
	ml := search.NewMoveList([]board.Move{a, b, c}, board.Move{}, func(m board.Move) search.Priority {
		return priority[m]
	})

	var order []board.Move
	for {
		m, _, ok := ml.Next()
		if !ok {
			break
		}
		order = append(order, m)
	}

	require.Len(t, order, 3)
	assert.True(t, order[0].Equals(b))
	assert.True(t, order[1].Equals(c))
	assert.True(t, order[2].Equals(a))
}

func TestMoveListHashMoveFirst(t *testing.T) {
	a, _ := board.ParseMove("e2e4")
	b, _ := board.ParseMove("d2d4")

	ml := search.NewMoveList([]board.Move{a, b}, b, func(board.Move) search.Priority { return 0 })

	m, _, ok := ml.Next()
	require.True(t, ok)
	assert.True(t, m.Equals(b))
}
