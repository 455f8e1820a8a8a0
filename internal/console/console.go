// Package console implements a line-oriented command shell over a single
// position.
//
// Commands:
//
//	position startpos [moves e2e4 ...]
//	position fen <fen> [moves e2e4 ...]
//	move <from><to>       play one ply, no legality check
//	undo                  take back the last ply
//	put <square> <piece>  place a FEN letter on a square
//	remove <square>       empty a square
//	d                     draw the board
//	fen                   print the FEN
//	hash                  print the Zobrist key
//	quit
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hailam/chesspos/internal/board"
)

// errQuit ends Run without error.
var errQuit = errors.New("quit")

// Console reads commands from in and answers on out.
type Console struct {
	in        io.Reader
	out       io.Writer
	position  *board.Position
	newLayout func() board.Layout
}

// New returns a console starting from the standard position.
func New(in io.Reader, out io.Writer, newLayout func() board.Layout) *Console {
	if newLayout == nil {
		newLayout = board.NewMailbox
	}
	return &Console{
		in:        in,
		out:       out,
		position:  board.NewStartingPosition(board.WithLayout(newLayout)),
		newLayout: newLayout,
	}
}

// Position returns the current position.
func (c *Console) Position() *board.Position {
	return c.position
}

// Run processes commands until EOF or "quit". Command errors are printed
// and do not stop the loop.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := c.Exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command line.
func (c *Console) Exec(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "position":
		return c.handlePosition(args)
	case "move":
		return c.handleMove(args)
	case "undo":
		m, err := c.position.UndoMove()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "undone %v\n", m)
	case "put":
		return c.handlePut(args)
	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <square>")
		}
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			return err
		}
		c.position.Remove(sq)
	case "d":
		c.draw()
	case "fen":
		fmt.Fprintln(c.out, c.position.FEN())
	case "hash":
		fmt.Fprintf(c.out, "%016x\n", c.position.Hash())
	case "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// The current position is kept if any part fails.
func (c *Console) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: position startpos|fen <fen> [moves ...]")
	}

	// Find "moves" keyword
	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}
	var moves []string
	if movesAt < len(args) {
		moves = args[movesAt+1:]
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewStartingPosition(board.WithLayout(c.newLayout))
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "), board.WithLayout(c.newLayout))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown position source %q", args[0])
	}

	for _, text := range moves {
		if _, err := play(pos, text); err != nil {
			return err
		}
	}
	c.position = pos
	return nil
}

func (c *Console) handleMove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: move <from><to>")
	}
	captured, err := play(c.position, args[0])
	if err != nil {
		return err
	}
	if captured != board.NoPiece {
		fmt.Fprintf(c.out, "captured %c\n", captured.Glyph())
	}
	return nil
}

func (c *Console) handlePut(args []string) error {
	if len(args) != 2 || len(args[1]) != 1 {
		return fmt.Errorf("usage: put <square> <piece letter>")
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	p, ok := board.PieceFromFENChar(args[1][0])
	if !ok {
		return fmt.Errorf("%q is not a piece letter", args[1])
	}
	c.position.Put(sq, p)
	return nil
}

// play applies a move given as text, "e2e4".
func play(pos *board.Position, text string) (board.Piece, error) {
	m, err := board.ParseMove(text)
	if err != nil {
		return board.NoPiece, err
	}
	captured, err := pos.MovePiece(m.From(), m.To())
	if err != nil {
		return board.NoPiece, fmt.Errorf("%s: %w", text, err)
	}
	return captured, nil
}

// draw prints the board with rank 8 on top, figurines for pieces and '·'
// for empty squares, followed by the FEN.
func (c *Console) draw() {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			p := c.position.PieceAt(board.SquareOf(rank, file))
			if p == board.NoPiece {
				sb.WriteString(" ·")
			} else {
				sb.WriteByte(' ')
				sb.WriteRune(p.Glyph())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	fmt.Fprintf(&sb, "%s to move, fen %s\n", c.position.SideToMove(), c.position.FEN())
	io.WriteString(c.out, sb.String())
}
