// Package board implements the chess position model: pieces, squares, a
// board layout with a reverse piece index, the per-ply game state stack and
// the FEN codec.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NoFile marks the absence of an en passant file.
const NoFile = -1

// SquareOf builds a square from rank and file without bounds checks.
// Callers must guarantee 0 <= rank, file < 8.
func SquareOf(rank, file int) Square {
	return Square(rank*8 + file)
}

// NewSquare builds a square from rank and file (0-indexed).
func NewSquare(rank, file int) (Square, error) {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return NoSquare, &SquareError{
			Text:   fmt.Sprintf("rank %d file %d", rank, file),
			Reason: "rank and file must be in 0..7",
		}
	}
	return SquareOf(rank, file), nil
}

// SquareFromIndex converts a linear index in 0..63 to a square.
func SquareFromIndex(idx int) Square {
	return SquareOf(idx/8, idx%8)
}

// Index returns the linear board index (rank*8 + file).
func (sq Square) Index() int {
	return int(sq)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, &SquareError{Text: s, Reason: "want file letter and rank digit"}
	}
	if s[0] < 'a' || s[0] > 'h' {
		return NoSquare, &SquareError{Text: s, Reason: "file must be a..h"}
	}
	if s[1] < '1' || s[1] > '8' {
		return NoSquare, &SquareError{Text: s, Reason: "rank must be 1..8"}
	}
	return SquareOf(int(s[1]-'1'), int(s[0]-'a')), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}
