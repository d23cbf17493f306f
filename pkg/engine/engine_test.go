package engine_test

import (
	"context"
	"testing"

	"github.com/julupanter/panterfish/pkg/engine"
	"github.com/julupanter/panterfish/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody", searchctl.Iterative{})

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.Equal(t, byte('b'), e.Active())

	require.NoError(t, e.Move(ctx, "e7e5"))
	assert.Equal(t, byte('w'), e.Active())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, byte('b'), e.Active())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, byte('w'), e.Active())
	assert.Error(t, e.TakeBack(ctx))
}

func TestEngineRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody", searchctl.Iterative{})

	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestEngineResetRestoresFEN(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody", searchctl.Iterative{})

	const fenString = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	assert.Equal(t, fenString, e.Position())

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fenString, e.Position())

	require.NoError(t, e.Reset(ctx, fenString))
	assert.Equal(t, fenString, e.Position())
}

// TestEngineAnalyzeFindsBackRankMate guards against the root position
// itself being treated as a repetition of e.hist: if Analyze ever passed
// the root along with the rest of the history, the very first Bound call
// (canNull=true at the root) would match it against itself and return an
// early draw, leaving tp_move empty and PV.Moves nil.
func TestEngineAnalyzeFindsBackRankMate(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody", searchctl.Iterative{})

	require.NoError(t, e.Reset(ctx, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"))

	out, err := e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(3))})
	require.NoError(t, err)

	var last string
	for pv := range out {
		require.NotEmpty(t, pv.Moves)
		abs := engine.AbsoluteMoves(e.Active(), pv.Moves)
		last = abs[0].String()
	}
	assert.Equal(t, "a1a8", last)
}
