package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/testutil"
)

func run(t *testing.T, script string) (*Console, string) {
	t.Helper()
	var out bytes.Buffer
	c := New(strings.NewReader(script), &out, board.NewBitboards)
	testutil.AssertNoError(t, c.Run())
	return c, out.String()
}

func TestPositionCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		fen  string
	}{
		{"startpos", "position startpos", board.StartFEN},
		{"startpos moves", "position startpos moves e2e4 c7c5",
			"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2"},
		{"fen", "position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1", "4k3/8/8/8/8/8/8/4K2R w K - 0 1"},
		{"fen moves", "position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1 moves e1f1",
			"4k3/8/8/8/8/8/8/5K1R b - - 1 1"},
		{"trailing moves keyword", "position startpos moves", board.StartFEN},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, out := run(t, tc.cmd+"\nfen\n")
			testutil.AssertEqual(t, c.Position().FEN(), tc.fen)
			testutil.AssertEqual(t, out, tc.fen+"\n")
		})
	}
}

func TestPositionKeptOnError(t *testing.T) {
	c, out := run(t, "position startpos moves e2e4\nposition fen 8/8/8 w - - 0 1\nposition startpos moves e2e4 e4e4\n")
	testutil.AssertEqual(t, c.Position().FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if n := strings.Count(out, "error:"); n != 2 {
		t.Errorf("got %d errors, want 2:\n%s", n, out)
	}
}

func TestMoveUndoAndEdits(t *testing.T) {
	c, out := run(t, strings.Join([]string{
		"position fen 4k3/8/8/3p4/4N3/8/8/4K3 w - - 0 1",
		"move e4d5",
		"undo",
		"undo",
		"put a1 R",
		"remove e1",
		"put a1 x",
		"bogus",
	}, "\n"))

	testutil.AssertContains(t, out, "captured ♙")
	testutil.AssertContains(t, out, "undone e4d5")
	testutil.AssertContains(t, out, "error: no move to undo")
	testutil.AssertContains(t, out, `"x" is not a piece letter`)
	testutil.AssertContains(t, out, `unknown command "bogus"`)
	testutil.AssertEqual(t, c.Position().FEN(), "4k3/8/8/3p4/4N3/8/8/R7 w - - 0 1")
}

func TestDraw(t *testing.T) {
	_, out := run(t, "d\n")
	lines := strings.Split(out, "\n")
	testutil.AssertEqual(t, lines[0], "8  ♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖")
	testutil.AssertEqual(t, lines[3], "5  · · · · · · · ·")
	testutil.AssertEqual(t, lines[7], "1  ♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜")
	testutil.AssertEqual(t, lines[8], "   a b c d e f g h")
	testutil.AssertContains(t, lines[9], "White to move")
}

func TestQuitStopsReading(t *testing.T) {
	c, _ := run(t, "move e2e4\nquit\nmove e7e5\n")
	testutil.AssertEqual(t, c.Position().Ply(), 1)
}
