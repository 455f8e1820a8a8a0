package board

import "math"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSide  CastlingRights = 1 << iota // K
	WhiteQueenSide                            // Q
	BlackKingSide                             // k
	BlackQueenSide                            // q
	NoCastling     CastlingRights = 0
	AllCastling    CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// Has reports whether every flag in f is set.
func (cr CastlingRights) Has(f CastlingRights) bool {
	return cr&f == f
}

// With returns cr with the flags in f set.
func (cr CastlingRights) With(f CastlingRights) CastlingRights {
	return cr | f
}

// Without returns cr with the flags in f cleared.
func (cr CastlingRights) Without(f CastlingRights) CastlingRights {
	return cr &^ f
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	switch {
	case c == White && kingSide:
		return cr.Has(WhiteKingSide)
	case c == White:
		return cr.Has(WhiteQueenSide)
	case kingSide:
		return cr.Has(BlackKingSide)
	default:
		return cr.Has(BlackQueenSide)
	}
}

// colorCastling holds both flags of one side.
var colorCastling = [2]CastlingRights{
	White: WhiteKingSide | WhiteQueenSide,
	Black: BlackKingSide | BlackQueenSide,
}

// cornerCastling is the right lost when a move starts or ends on a rook's
// home corner.
var cornerCastling = map[Square]CastlingRights{
	A1: WhiteQueenSide,
	H1: WhiteKingSide,
	A8: BlackQueenSide,
	H8: BlackKingSide,
}

// GameState holds the facts of one ply that cannot be recomputed from the
// board alone.
type GameState struct {
	Castling         CastlingRights
	EnPassantFile    int // 0-7, NoFile if none
	FiftyMoveCounter uint16
	Captured         Piece // Occupant removed by the ply, NoPiece if none

	// The ply that produced this state; NoMove for the initial entry.
	Move  Move
	Moved Piece
}

// DefaultGameState returns the state of a fresh game: every castling right,
// no en passant file, counter at zero.
func DefaultGameState() GameState {
	return GameState{
		Castling:      AllCastling,
		EnPassantFile: NoFile,
		Captured:      NoPiece,
		Move:          NoMove,
		Moved:         NoPiece,
	}
}

// Next derives the following ply's state: castling rights carry over, en
// passant and capture are cleared, the counter advances.
func (s GameState) Next() GameState {
	counter := s.FiftyMoveCounter
	if counter < math.MaxUint16 {
		counter++
	}
	return GameState{
		Castling:         s.Castling,
		EnPassantFile:    NoFile,
		FiftyMoveCounter: counter,
		Captured:         NoPiece,
		Move:             NoMove,
		Moved:            NoPiece,
	}
}

// HasEnPassant reports whether an en passant file is set.
func (s GameState) HasEnPassant() bool {
	return s.EnPassantFile != NoFile
}

// StateStack is the per-ply history. It always holds at least the initial
// entry; the top is the current state.
type StateStack struct {
	states []GameState
}

// NewStateStack returns a stack seeded with initial.
func NewStateStack(initial GameState) *StateStack {
	return &StateStack{states: []GameState{initial}}
}

// Push appends s as the new current state.
func (st *StateStack) Push(s GameState) {
	st.states = append(st.states, s)
}

// Top returns the current state. An empty stack is an internal bug and
// panics.
func (st *StateStack) Top() *GameState {
	if len(st.states) == 0 {
		panic("board: empty state stack")
	}
	return &st.states[len(st.states)-1]
}

// Pop removes and returns the current state. The initial entry cannot be
// popped.
func (st *StateStack) Pop() (GameState, error) {
	if len(st.states) <= 1 {
		return GameState{}, ErrNoHistory
	}
	top := st.states[len(st.states)-1]
	st.states = st.states[:len(st.states)-1]
	return top, nil
}

// Len returns the number of entries, initial entry included.
func (st *StateStack) Len() int {
	return len(st.states)
}

// clone returns an independent copy.
func (st *StateStack) clone() *StateStack {
	return &StateStack{states: append([]GameState(nil), st.states...)}
}
