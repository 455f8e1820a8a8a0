package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hailam/chesspos/internal/board"
)

// boardJSON is the display snapshot. Rows run from rank 8 to rank 1, one
// FEN letter per square and '.' for empty.
type boardJSON struct {
	Rows             []string `json:"rows"`
	SideToMove       string   `json:"side_to_move"`
	Castling         string   `json:"castling"`
	EnPassant        string   `json:"en_passant"`
	FiftyMoveCounter uint16   `json:"fifty_move_counter"`
	Ply              int      `json:"ply"`
	FullMoveNumber   int      `json:"full_move_number"`
}

func newBoardJSON(s board.Snapshot) boardJSON {
	b := boardJSON{
		SideToMove:       s.SideToMove.String(),
		Castling:         s.Castling.String(),
		EnPassant:        "-",
		FiftyMoveCounter: s.FiftyMoveCounter,
		Ply:              s.Ply,
		FullMoveNumber:   s.FullMoveNumber,
	}
	if s.EnPassantFile != board.NoFile {
		b.EnPassant = string(rune('a' + s.EnPassantFile))
	}
	for rank := 7; rank >= 0; rank-- {
		var row strings.Builder
		for file := 0; file < 8; file++ {
			p := s.Squares[board.SquareOf(rank, file)]
			if p == board.NoPiece {
				row.WriteByte('.')
			} else {
				row.WriteByte(p.FENChar())
			}
		}
		b.Rows = append(b.Rows, row.String())
	}
	return b
}

type gameJSON struct {
	ID       string    `json:"id"`
	FEN      string    `json:"fen"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Hash     string    `json:"hash"`
	Board    boardJSON `json:"board"`
	Captured string    `json:"captured,omitempty"`
	Undone   string    `json:"undone,omitempty"`
}

// newGameJSON must be called with lg.mu held.
func newGameJSON(lg *liveGame) gameJSON {
	return gameJSON{
		ID:       lg.rec.ID,
		FEN:      lg.rec.FEN,
		StartFEN: lg.rec.StartFEN,
		Moves:    append([]string{}, lg.rec.Moves...),
		Hash:     hashHex(lg.rec.Hash),
		Board:    newBoardJSON(lg.pos.Snapshot()),
	}
}

func hashHex(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

type fenRequest struct {
	FEN string `json:"fen"`
}

type fenResponse struct {
	FEN   string    `json:"fen"`
	Hash  string    `json:"hash"`
	Board boardJSON `json:"board"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type errorJSON struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorJSON{Error: msg})
}

// writeFENError reports a rejected FEN with its field and offset.
func writeFENError(w http.ResponseWriter, err error) {
	body := errorJSON{Error: err.Error()}
	var fe *board.FENError
	if errors.As(err, &fe) {
		body.Field = fe.Field
		offset := fe.Offset
		body.Offset = &offset
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
