package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesspos/internal/board"
)

var log = slog.Default().With("package", "storage")

// Storage keys
const (
	gamePrefix = "game/"
	posPrefix  = "pos/" // pos/<zobrist hex>/<game id> -> empty, one entry per game
)

// ErrNotFound is returned when a game id is unknown.
var ErrNotFound = errors.New("game not found")

// Game is the persisted form of a game: its starting FEN and the plies
// played since, plus the current FEN and Zobrist key for lookups.
type Game struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	FEN       string    `json:"fen"`
	Hash      uint64    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame returns a record for a game starting at pos.
func NewGame(id string, pos *board.Position) *Game {
	now := time.Now()
	g := &Game{
		ID:        id,
		StartFEN:  pos.FEN(),
		Moves:     []string{},
		CreatedAt: now,
	}
	g.Sync(pos)
	return g
}

// Sync copies the current FEN and hash of pos into the record.
func (g *Game) Sync(pos *board.Position) {
	g.FEN = pos.FEN()
	g.Hash = pos.Hash()
	g.UpdatedAt = time.Now()
}

// Replay rebuilds the position by parsing StartFEN and playing Moves, so
// the result can undo back to the start.
func (g *Game) Replay(opts ...board.Option) (*board.Position, error) {
	pos, err := board.ParseFEN(g.StartFEN, opts...)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	for i, text := range g.Moves {
		m, err := board.ParseMove(text)
		if err != nil {
			return nil, fmt.Errorf("game %s ply %d: %w", g.ID, i+1, err)
		}
		if _, err := pos.MovePiece(m.From(), m.To()); err != nil {
			return nil, fmt.Errorf("game %s ply %d: %w", g.ID, i+1, err)
		}
	}
	return pos, nil
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	log.Info("database opened", "dir", dir)

	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

func hashPrefix(hash uint64) string {
	return fmt.Sprintf("%s%016x/", posPrefix, hash)
}

func posKey(hash uint64, id string) []byte {
	return []byte(hashPrefix(hash) + id)
}

// getGame reads a game inside txn.
func getGame(txn *badger.Txn, id string) (*Game, error) {
	item, err := txn.Get(gameKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var g Game
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &g)
	}); err != nil {
		return nil, err
	}
	return &g, nil
}

// SaveGame writes g and moves its position index entry to g.Hash.
func (s *Storage) SaveGame(ctx context.Context, g *Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		old, err := getGame(txn, g.ID)
		switch {
		case err == nil:
			if err := txn.Delete(posKey(old.Hash, g.ID)); err != nil {
				return err
			}
		case !errors.Is(err, ErrNotFound):
			return err
		}

		if err := txn.Set(gameKey(g.ID), data); err != nil {
			return err
		}
		return txn.Set(posKey(g.Hash, g.ID), []byte{})
	})
}

// LoadGame reads the game with the given id.
func (s *Storage) LoadGame(ctx context.Context, id string) (*Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g *Game
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		g, err = getGame(txn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return g, nil
}

// DeleteGame removes a game and its index entry.
func (s *Storage) DeleteGame(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		g, err := getGame(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(posKey(g.Hash, id)); err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// GamesAt returns the ids of games whose current position has the given
// Zobrist key.
func (s *Storage) GamesAt(ctx context.Context, hash uint64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := hashPrefix(hash)
	ids := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), prefix))
		}
		return nil
	})
	return ids, err
}

// ListGames returns every stored game ordered by id.
func (s *Storage) ListGames(ctx context.Context) ([]*Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	games := []*Game{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g Game
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			}); err != nil {
				return err
			}
			games = append(games, &g)
		}
		return nil
	})
	return games, err
}
