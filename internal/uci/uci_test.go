package uci

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/search"
)

func newTestHandler() *Handler {
	pos, _ := position.FromFen(position.StartFen)
	return &Handler{
		in:    bufio.NewScanner(bytes.NewReader(nil)),
		out:   bufio.NewWriter(&bytes.Buffer{}),
		pos:   pos,
		srch:  search.NewSearch(),
		perft: nil,
	}
}

func TestUciCommandRespondsWithUciOk(t *testing.T) {
	h := newTestHandler()
	buf := &bytes.Buffer{}
	h.out = bufio.NewWriter(buf)

	quit := h.handle("uci")
	require.False(t, quit)
	assert.Contains(t, buf.String(), "uciok")
	assert.Contains(t, buf.String(), "id name chessforge")
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	h := newTestHandler()
	buf := &bytes.Buffer{}
	h.out = bufio.NewWriter(buf)

	h.handle("isready")
	assert.Contains(t, buf.String(), "readyok")
}

func TestQuitStopsTheLoop(t *testing.T) {
	h := newTestHandler()
	assert.True(t, h.handle("quit"))
}

func TestPositionStartposWithMoves(t *testing.T) {
	h := newTestHandler()
	h.handle("position startpos moves e2e4 e7e5")
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", h.pos.Fen())
}

func TestFindMoveIsCaseInsensitiveForPromotion(t *testing.T) {
	pos, err := position.FromFen("8/4P3/8/8/8/4k3/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(pos, "e7e8q")
	assert.NotEqual(t, 0, int(m))
}
