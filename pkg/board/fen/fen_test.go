package fen_test

import (
	"strings"
	"testing"

	"github.com/julupanter/panterfish/pkg/board"
	"github.com/julupanter/panterfish/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 7",
	}

	for _, tt := range tests {
		pos, halfmove, fullmove, err := fen.Decode(tt)
		require.NoError(t, err, tt)

		active := strings.Fields(tt)[1][0]
		assert.Equal(t, tt, fen.Encode(pos, active, halfmove, fullmove))
	}
}

func TestDecodeInitial(t *testing.T) {
	pos, halfmove, fullmove, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, board.Initial(), pos)
	assert.Equal(t, 0, halfmove)
	assert.Equal(t, 1, fullmove)
}

func TestDecodeErrors(t *testing.T) {
	_, _, _, err := fen.Decode("not a fen")
	assert.Error(t, err)

	_, _, _, err = fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	assert.Error(t, err)

	_, _, _, err = fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1")
	assert.Error(t, err)
}
