package search_test

import (
	"context"
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/board/fen"
	"github.com/julupanter/panterfish/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsBackRankMate(t *testing.T) {
	ctx := context.Background()

	pos, _, _, err := fen.Decode("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	s := search.NewSearcher(0)
	pv, err := s.SearchDepth(ctx, pos, nil, 3)
	require.NoError(t, err)

	require.NotEmpty(t, pv.Moves)
	mate, _ := board.ParseMove("a1a8")
	assert.True(t, pv.Moves[0].Equals(mate), "expected a1a8, got %v", pv.Moves[0])
	assert.Greater(t, pv.Score, search.MateLower)
}

func TestSearchDeterministic(t *testing.T) {
	ctx := context.Background()
	pos := board.Initial()

	a := search.NewSearcher(0)
	pvA, err := a.SearchDepth(ctx, pos, nil, 3)
	require.NoError(t, err)

	b := search.NewSearcher(0)
	pvB, err := b.SearchDepth(ctx, pos, nil, 3)
	require.NoError(t, err)

	assert.Equal(t, pvA.Score, pvB.Score)
	require.Equal(t, len(pvA.Moves), len(pvB.Moves))
	for i := range pvA.Moves {
		assert.True(t, pvA.Moves[i].Equals(pvB.Moves[i]))
	}
}

func TestBoundOwnKingMissingIsLoss(t *testing.T) {
	ctx := context.Background()

	pos, _, _, err := fen.Decode("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	// Remove the own king directly to exercise the entry check in isolation.
	pos.Board[board.NewSquare(4, 0)] = ' '

	s := search.NewSearcher(0)
	score, err := s.Bound(ctx, pos, nil, 0, 1, true)
	require.NoError(t, err)
	assert.Equal(t, -search.MateUpper, score)
}

func TestBoundRepetitionIsDraw(t *testing.T) {
	ctx := context.Background()
	pos := board.Initial()

	s := search.NewSearcher(0)
	score, err := s.Bound(ctx, pos, []board.Position{pos}, 0, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}
