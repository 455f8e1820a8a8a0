package board

import (
	"fmt"
	"iter"
)

// Position is the aggregate: a board layout, the game state stack, the side
// to move and the ply counter. It is not safe for concurrent use.
type Position struct {
	layout     Layout
	states     *StateStack
	sideToMove Color
	ply        int
}

// Option configures a Position at construction.
type Option func(*Position)

// WithLayout selects the board storage. The default is NewMailbox.
func WithLayout(newLayout func() Layout) Option {
	return func(p *Position) {
		p.layout = newLayout()
	}
}

// NewPosition returns an empty board, White to move, no castling rights,
// ply 0.
func NewPosition(opts ...Option) *Position {
	initial := DefaultGameState()
	initial.Castling = NoCastling
	return newPosition(initial, opts)
}

// NewStartingPosition returns the standard starting position.
func NewStartingPosition(opts ...Option) *Position {
	pos, err := ParseFEN(StartFEN, opts...)
	if err != nil {
		panic(fmt.Sprintf("board: start position: %v", err))
	}
	return pos
}

func newPosition(initial GameState, opts []Option) *Position {
	p := &Position{
		states:     NewStateStack(initial),
		sideToMove: White,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.layout == nil {
		p.layout = NewMailbox()
	}
	return p
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.layout.PieceAt(sq)
}

// SquaresOf yields every square holding piece.
func (p *Position) SquaresOf(piece Piece) iter.Seq[Square] {
	return p.layout.SquaresOf(piece)
}

// SideToMove returns the color to play.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// Ply returns the number of half-moves since the game started.
func (p *Position) Ply() int {
	return p.ply
}

// FullMoveNumber returns the FEN full-move number, ply/2 + 1.
func (p *Position) FullMoveNumber() int {
	return p.ply/2 + 1
}

// State returns a copy of the current game state.
func (p *Position) State() GameState {
	return *p.states.Top()
}

// History returns the number of plies that can be undone.
func (p *Position) History() int {
	return p.states.Len() - 1
}

// Put places piece on sq (NoPiece clears it) and returns the prior occupant.
// It is a board edit, not a ply: no state is pushed.
func (p *Position) Put(sq Square, piece Piece) Piece {
	return p.layout.Place(sq, piece)
}

// Remove clears sq and returns the prior occupant.
func (p *Position) Remove(sq Square) Piece {
	return p.layout.Place(sq, NoPiece)
}

// MovePiece plays one ply: the piece on from goes to to, and whatever stood
// on to is returned as captured. No chess rules are checked. The new state
// resets the fifty-move counter on captures and pawn moves, records the en
// passant file after a two-rank pawn push and drops castling rights for king
// moves and for moves touching a rook's home corner.
func (p *Position) MovePiece(from, to Square) (Piece, error) {
	if !from.IsValid() || !to.IsValid() {
		return NoPiece, fmt.Errorf("%w: square out of range", ErrInvalidMove)
	}
	if from == to {
		return NoPiece, fmt.Errorf("%w: %s to itself", ErrInvalidMove, from)
	}
	moved := p.layout.PieceAt(from)
	if moved == NoPiece {
		return NoPiece, fmt.Errorf("%w: no piece on %s", ErrInvalidMove, from)
	}

	next := p.states.Top().Next()

	p.layout.Place(from, NoPiece)
	captured := p.layout.Place(to, moved)

	next.Captured = captured
	next.Move = NewMove(from, to)
	next.Moved = moved

	if captured != NoPiece || moved.Kind() == Pawn {
		next.FiftyMoveCounter = 0
	}
	if moved.Kind() == Pawn && from.File() == to.File() && abs(to.Rank()-from.Rank()) == 2 {
		next.EnPassantFile = from.File()
	}
	if moved.Kind() == King {
		next.Castling = next.Castling.Without(colorCastling[moved.Color()])
	}
	next.Castling = next.Castling.Without(cornerCastling[from] | cornerCastling[to])

	p.states.Push(next)
	p.ply++
	p.sideToMove = p.sideToMove.Other()

	return captured, nil
}

// UndoMove takes back the last ply played with MovePiece and returns it.
func (p *Position) UndoMove() (Move, error) {
	last, err := p.states.Pop()
	if err != nil {
		return NoMove, err
	}

	from, to := last.Move.From(), last.Move.To()
	p.layout.Place(to, last.Captured)
	p.layout.Place(from, last.Moved)

	p.ply--
	p.sideToMove = p.sideToMove.Other()

	return last.Move, nil
}

// Clone returns a deep copy, history included.
func (p *Position) Clone() *Position {
	return &Position{
		layout:     p.layout.Clone(),
		states:     p.states.clone(),
		sideToMove: p.sideToMove,
		ply:        p.ply,
	}
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Squares          [64]Piece
	SideToMove       Color
	Castling         CastlingRights
	EnPassantFile    int
	FiftyMoveCounter uint16
	Ply              int
	FullMoveNumber   int
}

// Snapshot copies out the display state.
func (p *Position) Snapshot() Snapshot {
	s := p.State()
	snap := Snapshot{
		SideToMove:       p.sideToMove,
		Castling:         s.Castling,
		EnPassantFile:    s.EnPassantFile,
		FiftyMoveCounter: s.FiftyMoveCounter,
		Ply:              p.ply,
		FullMoveNumber:   p.FullMoveNumber(),
	}
	for i := range snap.Squares {
		snap.Squares[i] = p.layout.PieceAt(Square(i))
	}
	return snap
}

// Equal reports whether both positions have the same placement, side to
// move, castling rights, en passant file, fifty-move counter and ply.
// History below the current state is not compared.
func (p *Position) Equal(other *Position) bool {
	return p.Snapshot() == other.Snapshot()
}

// String returns the FEN of the position.
func (p *Position) String() string {
	return p.FEN()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
