package board

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// Empty is the set with no squares.
const Empty Bitboard = 0

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with the given square added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear returns b with the given square removed.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// All yields the set squares in ascending order. The sequence can be ranged
// over repeatedly.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		rest := b
		for rest != 0 {
			if !yield(rest.PopLSB()) {
				return
			}
		}
	}
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.IsSet(SquareOf(rank, file)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
