package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/testutil"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func play(t *testing.T, g *Game, pos *board.Position, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m, err := board.ParseMove(text)
		testutil.AssertNoError(t, err)
		_, err = pos.MovePiece(m.From(), m.To())
		testutil.AssertNoError(t, err, "move %s", text)
		g.Moves = append(g.Moves, text)
	}
	g.Sync(pos)
}

func TestSaveLoadGame(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	pos := board.NewStartingPosition()
	g := NewGame("g1", pos)
	play(t, g, pos, "e2e4", "c7c5")
	testutil.AssertNoError(t, s.SaveGame(ctx, g))

	got, err := s.LoadGame(ctx, "g1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Moves, []string{"e2e4", "c7c5"})
	testutil.AssertEqual(t, got.StartFEN, board.StartFEN)
	testutil.AssertEqual(t, got.FEN, "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2")
	if got.Hash != pos.Hash() {
		t.Errorf("hash = %x, want %x", got.Hash, pos.Hash())
	}
	if !got.UpdatedAt.Equal(g.UpdatedAt) {
		t.Errorf("updated at = %v, want %v", got.UpdatedAt, g.UpdatedAt)
	}
}

func TestLoadGameNotFound(t *testing.T) {
	s := openTest(t)
	_, err := s.LoadGame(context.Background(), "missing")
	testutil.AssertErrorIs(t, err, ErrNotFound)

	err = s.DeleteGame(context.Background(), "missing")
	testutil.AssertErrorIs(t, err, ErrNotFound)
}

func TestReplayRebuildsHistory(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	pos := board.NewStartingPosition()
	g := NewGame("replay", pos)
	play(t, g, pos, "g1f3", "d7d5", "d2d4")
	testutil.AssertNoError(t, s.SaveGame(ctx, g))

	loaded, err := s.LoadGame(ctx, "replay")
	testutil.AssertNoError(t, err)

	for _, layout := range []func() board.Layout{board.NewMailbox, board.NewBitboards} {
		replayed, err := loaded.Replay(board.WithLayout(layout))
		testutil.AssertNoError(t, err)
		if !replayed.Equal(pos) {
			t.Fatalf("replayed %s, want %s", replayed.FEN(), pos.FEN())
		}
		if replayed.History() != 3 {
			t.Errorf("history = %d, want 3", replayed.History())
		}
		for range 3 {
			_, err := replayed.UndoMove()
			testutil.AssertNoError(t, err)
		}
		testutil.AssertEqual(t, replayed.FEN(), board.StartFEN)
	}
}

func TestReplayRejectsBadMoves(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
	}{
		{"malformed", []string{"e2"}},
		{"empty square", []string{"e4e5"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := &Game{ID: "bad", StartFEN: board.StartFEN, Moves: tc.moves}
			if _, err := g.Replay(); err == nil {
				t.Error("replay succeeded")
			}
		})
	}

	g := &Game{ID: "bad", StartFEN: "not a fen"}
	_, err := g.Replay()
	testutil.AssertErrorIs(t, err, board.ErrInvalidFEN)
}

func TestGamesAt(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	// Two move orders reaching the same position.
	posA := board.NewStartingPosition()
	a := NewGame("a", posA)
	play(t, a, posA, "g1f3", "g8f6", "b1c3")

	posB := board.NewStartingPosition()
	b := NewGame("b", posB)
	play(t, b, posB, "b1c3", "g8f6", "g1f3")

	posC := board.NewStartingPosition()
	c := NewGame("c", posC)

	for _, g := range []*Game{a, b, c} {
		testutil.AssertNoError(t, s.SaveGame(ctx, g))
	}

	ids, err := s.GamesAt(ctx, posA.Hash())
	testutil.AssertNoError(t, err)
	sort.Strings(ids)
	testutil.AssertEqual(t, ids, []string{"a", "b"})

	// Moving c off the start must drop its old index entry.
	ids, err = s.GamesAt(ctx, posC.Hash())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{"c"})

	play(t, c, posC, "e2e4")
	testutil.AssertNoError(t, s.SaveGame(ctx, c))
	ids, err = s.GamesAt(ctx, board.NewStartingPosition().Hash())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{})

	testutil.AssertNoError(t, s.DeleteGame(ctx, "a"))
	ids, err = s.GamesAt(ctx, posA.Hash())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{"b"})
}

func TestListGames(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		testutil.AssertNoError(t, s.SaveGame(ctx, NewGame(id, board.NewStartingPosition())))
	}
	games, err := s.ListGames(ctx)
	testutil.AssertNoError(t, err)

	var ids []string
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	testutil.AssertEqual(t, ids, []string{"a", "b", "c"})
}

func TestCanceledContext(t *testing.T) {
	s := openTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SaveGame(ctx, NewGame("x", board.NewStartingPosition()))
	testutil.AssertErrorIs(t, err, context.Canceled)
	_, err = s.LoadGame(ctx, "x")
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestOpenOnDisk(t *testing.T) {
	tmpDir := t.TempDir()

	dbDir, err := GetDatabaseDir(tmpDir)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, dbDir, filepath.Join(tmpDir, "db"))
	if _, err := os.Stat(dbDir); err != nil {
		t.Fatalf("database dir not created: %v", err)
	}

	s, err := Open(dbDir)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.SaveGame(context.Background(), NewGame("persist", board.NewStartingPosition())))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(dbDir)
	testutil.AssertNoError(t, err)
	defer s.Close()
	g, err := s.LoadGame(context.Background(), "persist")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.FEN, board.StartFEN)
}

func TestGetDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	t.Setenv("APPDATA", "/tmp/xdg")
	dir, err := GetDataDir()
	testutil.AssertNoError(t, err)
	if filepath.Base(dir) != appName {
		t.Errorf("data dir %q does not end in %q", dir, appName)
	}
}
