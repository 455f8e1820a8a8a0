package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/diagram"
	"github.com/hailam/chesspos/internal/storage"
)

const maxImageSize = 2048

// fenHandler validates and normalises a FEN without storing anything.
func (app *Application) fenHandler(w http.ResponseWriter, r *http.Request) {
	var req fenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pos, err := board.ParseFEN(req.FEN, board.WithLayout(app.opts.NewLayout))
	if err != nil {
		writeFENError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fenResponse{
		FEN:   pos.FEN(),
		Hash:  hashHex(pos.Hash()),
		Board: newBoardJSON(pos.Snapshot()),
	})
}

func (app *Application) createGameHandler(w http.ResponseWriter, r *http.Request) {
	var req fenRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var pos *board.Position
	if req.FEN == "" {
		pos = board.NewStartingPosition(board.WithLayout(app.opts.NewLayout))
	} else {
		var err error
		if pos, err = board.ParseFEN(req.FEN, board.WithLayout(app.opts.NewLayout)); err != nil {
			writeFENError(w, err)
			return
		}
	}

	lg, err := app.create(r.Context(), pos)
	if err != nil {
		app.internalError(w, err)
		return
	}
	lg.mu.Lock()
	body := newGameJSON(lg)
	lg.mu.Unlock()

	w.Header().Set("Location", "/api/games/"+body.ID)
	writeJSON(w, http.StatusCreated, body)
}

// findGamesHandler lists stored games, or with ?fen= only those whose
// current position matches it.
func (app *Application) findGamesHandler(w http.ResponseWriter, r *http.Request) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		games, err := app.store.ListGames(r.Context())
		if err != nil {
			app.internalError(w, err)
			return
		}
		ids := make([]string, 0, len(games))
		for _, g := range games {
			ids = append(ids, g.ID)
		}
		writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
		return
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		writeFENError(w, err)
		return
	}
	ids, err := app.store.GamesAt(r.Context(), pos.Hash())
	if err != nil {
		app.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (app *Application) gameHandler(w http.ResponseWriter, r *http.Request) {
	lg, ok := app.resolve(w, r)
	if !ok {
		return
	}
	lg.mu.Lock()
	body := newGameJSON(lg)
	lg.mu.Unlock()
	writeJSON(w, http.StatusOK, body)
}

func (app *Application) deleteGameHandler(w http.ResponseWriter, r *http.Request) {
	err := app.remove(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		app.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) moveHandler(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := board.ParseMove(req.Move)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	lg, ok := app.resolve(w, r)
	if !ok {
		return
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	captured, err := app.play(r.Context(), lg, m)
	switch {
	case errors.Is(err, board.ErrInvalidMove):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, errGameGone):
		writeError(w, http.StatusNotFound, "game not found")
		return
	case err != nil:
		app.internalError(w, err)
		return
	}

	body := newGameJSON(lg)
	if captured != board.NoPiece {
		body.Captured = captured.String()
	}
	app.hub.broadcast(lg.rec.ID, body)
	writeJSON(w, http.StatusOK, body)
}

func (app *Application) undoHandler(w http.ResponseWriter, r *http.Request) {
	lg, ok := app.resolve(w, r)
	if !ok {
		return
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	m, err := app.undo(r.Context(), lg)
	switch {
	case errors.Is(err, board.ErrNoHistory):
		writeError(w, http.StatusConflict, "no move to take back")
		return
	case errors.Is(err, errGameGone):
		writeError(w, http.StatusNotFound, "game not found")
		return
	case err != nil:
		app.internalError(w, err)
		return
	}

	body := newGameJSON(lg)
	body.Undone = m.String()
	app.hub.broadcast(lg.rec.ID, body)
	writeJSON(w, http.StatusOK, body)
}

func (app *Application) svgHandler(w http.ResponseWriter, r *http.Request) {
	lg, ok := app.resolve(w, r)
	if !ok {
		return
	}
	lg.mu.Lock()
	snap := lg.pos.Snapshot()
	lg.mu.Unlock()

	opt := app.diagramOptions(r)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(diagram.SVG(snap, opt))
}

func (app *Application) pngHandler(w http.ResponseWriter, r *http.Request) {
	opt := app.diagramOptions(r)
	size := opt.SquareSize * 8
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxImageSize {
			writeError(w, http.StatusBadRequest, "size must be between 1 and 2048")
			return
		}
		size = n
	}

	lg, ok := app.resolve(w, r)
	if !ok {
		return
	}
	lg.mu.Lock()
	snap := lg.pos.Snapshot()
	lg.mu.Unlock()

	var buf bytes.Buffer
	if err := diagram.PNG(&buf, snap, size, opt); err != nil {
		app.internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// diagramOptions applies ?flip=true to the configured options.
func (app *Application) diagramOptions(r *http.Request) diagram.Options {
	opt := app.opts.Diagram
	if flip, err := strconv.ParseBool(r.URL.Query().Get("flip")); err == nil {
		opt.Flip = flip
	}
	return opt
}

// resolve looks up {id}, writing a 404 or 500 itself when it fails.
func (app *Application) resolve(w http.ResponseWriter, r *http.Request) (*liveGame, bool) {
	lg, err := app.lookup(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	if err != nil {
		app.internalError(w, err)
		return nil, false
	}
	return lg, true
}

func (app *Application) internalError(w http.ResponseWriter, err error) {
	app.log.Error("request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
