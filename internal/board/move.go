package board

import "fmt"

// Move encodes a from/to pair in 16 bits:
// bits 0-5:  from square (0-63)
// bits 6-11: to square (0-63)
type Move uint16

// NoMove represents the absence of a move.
const NoMove Move = 0xFFFF

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// From returns the origin square.
func (m Move) From() Square {
	if m == NoMove {
		return NoSquare
	}
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	if m == NoMove {
		return NoSquare
	}
	return Square((m >> 6) & 0x3F)
}

// String returns the move as origin and destination ("e2e4"), or "-".
func (m Move) String() string {
	if m == NoMove {
		return "-"
	}
	return m.From().String() + m.To().String()
}

// ParseMove parses a four-character origin/destination move ("e2e4").
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move %q: want four characters", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return NewMove(from, to), nil
}
