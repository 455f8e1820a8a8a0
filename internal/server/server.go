// Package server exposes positions and stored games over HTTP and
// websockets.
package server

import (
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/diagram"
	"github.com/hailam/chesspos/internal/storage"
)

// Options configures an Application.
type Options struct {
	NewLayout      func() board.Layout // default board.NewMailbox
	Diagram        diagram.Options
	AccessLog      io.Writer // Apache combined log; nil disables it
	AllowedOrigins []string  // CORS origins
	Logger         *slog.Logger
}

// Application routes API requests to the live games and the store.
type Application struct {
	router  *mux.Router
	handler http.Handler
	store   *storage.Storage
	opts    Options
	log     *slog.Logger

	games     map[string]*liveGame
	gamesLock sync.Mutex

	hub      *hub
	upgrader websocket.Upgrader
}

// New builds the application around an open store.
func New(store *storage.Storage, opts Options) *Application {
	if opts.NewLayout == nil {
		opts.NewLayout = board.NewMailbox
	}
	if opts.Diagram.SquareSize == 0 {
		opts.Diagram = diagram.DefaultOptions()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	app := &Application{
		router: mux.NewRouter(),
		store:  store,
		opts:   opts,
		log:    opts.Logger.With("package", "server"),
		games:  make(map[string]*liveGame),
		hub:    newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	if opts.AccessLog != nil {
		app.router.Use(func(next http.Handler) http.Handler {
			return handlers.CombinedLoggingHandler(opts.AccessLog, next)
		})
	}
	app.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	api := app.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/fen", app.fenHandler).Methods(http.MethodPost)
	api.HandleFunc("/games", app.createGameHandler).Methods(http.MethodPost)
	api.HandleFunc("/games", app.findGamesHandler).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", app.gameHandler).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", app.deleteGameHandler).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", app.moveHandler).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/moves/last", app.undoHandler).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/board.svg", app.svgHandler).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/board.png", app.pngHandler).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/ws", app.wsHandler).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	app.handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{app.log}))(cors(app.router))
	return app
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.handler.ServeHTTP(w, r)
}

// Close disconnects every websocket subscriber.
func (app *Application) Close() {
	app.hub.closeAll()
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

// recoveryLogger sends recovered panics to slog.
type recoveryLogger struct{ log *slog.Logger }

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("handler panic", "panic", v)
}
