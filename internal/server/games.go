package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/storage"
)

// errGameGone is returned for a game deleted while a request waited on it.
var errGameGone = errors.New("game deleted")

// liveGame is a stored game with its replayed position. mu guards every
// field.
type liveGame struct {
	mu      sync.Mutex
	rec     *storage.Game
	pos     *board.Position
	deleted bool
}

func newID() string {
	var b [8]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// create stores a new game starting at pos.
func (app *Application) create(ctx context.Context, pos *board.Position) (*liveGame, error) {
	lg := &liveGame{rec: storage.NewGame(newID(), pos), pos: pos}
	if err := app.store.SaveGame(ctx, lg.rec); err != nil {
		return nil, err
	}

	app.gamesLock.Lock()
	app.games[lg.rec.ID] = lg
	app.gamesLock.Unlock()

	app.log.Info("game created", "id", lg.rec.ID, "fen", lg.rec.FEN)
	return lg, nil
}

// lookup returns the live game, replaying it from the store on first use.
func (app *Application) lookup(ctx context.Context, id string) (*liveGame, error) {
	app.gamesLock.Lock()
	defer app.gamesLock.Unlock()

	if lg, ok := app.games[id]; ok {
		return lg, nil
	}

	rec, err := app.store.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	pos, err := rec.Replay(board.WithLayout(app.opts.NewLayout))
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	lg := &liveGame{rec: rec, pos: pos}
	app.games[id] = lg
	app.log.Debug("game loaded", "id", id, "plies", len(rec.Moves))
	return lg, nil
}

// play applies one ply and persists it. The caller holds lg.mu.
func (app *Application) play(ctx context.Context, lg *liveGame, m board.Move) (board.Piece, error) {
	if lg.deleted {
		return board.NoPiece, errGameGone
	}

	captured, err := lg.pos.MovePiece(m.From(), m.To())
	if err != nil {
		return board.NoPiece, err
	}
	lg.rec.Moves = append(lg.rec.Moves, m.String())
	lg.rec.Sync(lg.pos)

	if err := app.store.SaveGame(ctx, lg.rec); err != nil {
		// Keep memory and store in step.
		lg.pos.UndoMove()
		lg.rec.Moves = lg.rec.Moves[:len(lg.rec.Moves)-1]
		lg.rec.Sync(lg.pos)
		return board.NoPiece, err
	}
	return captured, nil
}

// undo takes back the last ply and persists it. The caller holds lg.mu.
func (app *Application) undo(ctx context.Context, lg *liveGame) (board.Move, error) {
	if lg.deleted {
		return board.NoMove, errGameGone
	}

	m, err := lg.pos.UndoMove()
	if err != nil {
		return board.NoMove, err
	}
	last := lg.rec.Moves[len(lg.rec.Moves)-1]
	lg.rec.Moves = lg.rec.Moves[:len(lg.rec.Moves)-1]
	lg.rec.Sync(lg.pos)

	if err := app.store.SaveGame(ctx, lg.rec); err != nil {
		lg.pos.MovePiece(m.From(), m.To())
		lg.rec.Moves = append(lg.rec.Moves, last)
		lg.rec.Sync(lg.pos)
		return board.NoMove, err
	}
	return m, nil
}

// remove deletes the game from the store and the cache.
func (app *Application) remove(ctx context.Context, id string) error {
	lg, err := app.lookup(ctx, id)
	if err != nil {
		return err
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()
	if lg.deleted {
		return fmt.Errorf("delete %s: %w", id, storage.ErrNotFound)
	}
	if err := app.store.DeleteGame(ctx, id); err != nil {
		return err
	}
	lg.deleted = true

	app.gamesLock.Lock()
	delete(app.games, id)
	app.gamesLock.Unlock()

	app.hub.closeGame(id)
	app.log.Info("game deleted", "id", id)
	return nil
}
