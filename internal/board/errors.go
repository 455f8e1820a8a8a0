package board

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Use errors.Is to test for them; the typed errors below
// carry the details.
var (
	// ErrInvalidFEN indicates a syntactically malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates an out-of-range or malformed square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove indicates a ply that breaks the MovePiece contract
	// (empty origin square, or origin equal to destination).
	ErrInvalidMove = errors.New("invalid move")

	// ErrNoHistory indicates an undo requested at the initial state.
	ErrNoHistory = errors.New("no move to undo")
)

// FEN field names used in FENError.Field.
const (
	FieldPlacement  = "piece placement"
	FieldActive     = "active color"
	FieldCastling   = "castling rights"
	FieldEnPassant  = "en passant target"
	FieldHalfMove   = "fifty-move counter"
	FieldFullMove   = "full-move number"
	FieldEndOfInput = "end of input"
)

// FENError describes why a FEN string was rejected.
type FENError struct {
	FEN    string // The full input
	Field  string // Which of the six fields failed
	Input  string // The offending substring
	Offset int    // Byte offset inside Input, -1 if not applicable
	Reason string
	Err    error // Underlying cause, if any
}

// Error returns a message naming the field, the offending text and, where
// known, the character offset.
func (e *FENError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid FEN %q: %s", e.FEN, e.Field)
	if e.Input != "" {
		fmt.Fprintf(&sb, " %q", e.Input)
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&sb, " at pos %d", e.Offset)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *FENError) Unwrap() error {
	return e.Err
}

// Is reports every FENError as ErrInvalidFEN.
func (e *FENError) Is(target error) bool {
	return target == ErrInvalidFEN
}

// SquareError describes a rejected square.
type SquareError struct {
	Text   string
	Reason string
}

func (e *SquareError) Error() string {
	return fmt.Sprintf("invalid square %q: %s", e.Text, e.Reason)
}

// Is reports every SquareError as ErrInvalidSquare.
func (e *SquareError) Is(target error) bool {
	return target == ErrInvalidSquare
}
