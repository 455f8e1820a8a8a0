// Command chesspos serves, converts and draws chess positions.
//
// Usage:
//
//	chesspos [-config file] serve [-listen addr] [-data dir] [-cpuprofile file]
//	chesspos [-config file] fen <fen>...
//	chesspos [-config file] render [-o file] [-size n] [-flip] <fen>
//	chesspos [-config file] console
//	chesspos [-config file] list [-data dir]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/config"
	"github.com/hailam/chesspos/internal/console"
	"github.com/hailam/chesspos/internal/diagram"
	"github.com/hailam/chesspos/internal/server"
	"github.com/hailam/chesspos/internal/storage"
)

var configPath = flag.String("config", "", "YAML config file")

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "serve":
		err = serve(cfg, args)
	case "fen":
		err = normalize(cfg, args)
	case "render":
		err = render(cfg, args)
	case "console":
		err = runConsole(cfg)
	case "list":
		err = list(cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: chesspos [-config file] serve|fen|render|console|list [flags] [args]")
	flag.PrintDefaults()
}

func openStore(cfg *config.Config, dataDir string) (*storage.Storage, error) {
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	dbDir, err := storage.GetDatabaseDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	return storage.Open(dbDir)
}

func diagramOptions(cfg *config.Config) diagram.Options {
	return diagram.Options{
		SquareSize: cfg.Diagram.SquareSize,
		Light:      cfg.Diagram.Light,
		Dark:       cfg.Diagram.Dark,
	}
}

func serve(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", cfg.Listen, "address to listen on")
	dataDir := fs.String("data", cfg.DataDir, "data directory")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	fs.Parse(args)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	newLayout, err := cfg.NewLayout()
	if err != nil {
		return err
	}
	store, err := openStore(cfg, *dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	app := server.New(store, server.Options{
		NewLayout: newLayout,
		Diagram:   diagramOptions(cfg),
		AccessLog: os.Stdout,
	})
	srv := &http.Server{
		Addr:              *listen,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Listening on %s", *listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("Shutting down")
		app.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// normalize prints the canonical FEN of each argument, or why it was
// rejected.
func normalize(cfg *config.Config, args []string) error {
	newLayout, err := cfg.NewLayout()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("fen: no FEN given")
	}

	failed := 0
	for _, fen := range args {
		pos, err := board.ParseFEN(fen, board.WithLayout(newLayout))
		if err != nil {
			failed++
			var fe *board.FENError
			if errors.As(err, &fe) && fe.Offset >= 0 {
				fmt.Printf("%s\n%s^\n", fe.Input, strings.Repeat(" ", fe.Offset))
			}
			fmt.Println(err)
			continue
		}
		fmt.Println(pos.FEN())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d FEN strings rejected", failed, len(args))
	}
	return nil
}

func render(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "board.png", "output file, .png or .svg")
	size := fs.Int("size", cfg.Diagram.SquareSize*8, "PNG size in pixels")
	flip := fs.Bool("flip", false, "draw from Black's side")
	fs.Parse(args)

	fen := board.StartFEN
	if fs.NArg() > 0 {
		fen = strings.Join(fs.Args(), " ")
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}

	opt := diagramOptions(cfg)
	opt.Flip = *flip

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(*out, ".svg") {
		_, err = f.Write(diagram.SVG(pos.Snapshot(), opt))
	} else {
		err = diagram.PNG(f, pos.Snapshot(), *size, opt)
	}
	if err != nil {
		return err
	}
	log.Printf("Wrote %s", *out)
	return f.Close()
}

func runConsole(cfg *config.Config) error {
	newLayout, err := cfg.NewLayout()
	if err != nil {
		return err
	}
	return console.New(os.Stdin, os.Stdout, newLayout).Run()
}

func list(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "data directory")
	fs.Parse(args)

	store, err := openStore(cfg, *dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.ListGames(context.Background())
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Printf("%s  %3d plies  %-14s  %s\n", g.ID, len(g.Moves), humanize.Time(g.UpdatedAt), g.FEN)
	}
	return nil
}
