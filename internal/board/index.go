package board

import "iter"

// PieceIndex maps each piece to the set of squares it occupies.
// It is a pure reverse index: keeping it in step with a Grid is the
// owner's job.
type PieceIndex [12]Bitboard

// Record adds sq to p's set. NoPiece is ignored.
func (x *PieceIndex) Record(p Piece, sq Square) {
	if p >= NoPiece {
		return
	}
	x[p] = x[p].Set(sq)
}

// Forget removes sq from p's set. NoPiece is ignored.
func (x *PieceIndex) Forget(p Piece, sq Square) {
	if p >= NoPiece {
		return
	}
	x[p] = x[p].Clear(sq)
}

// Contains reports whether sq is in p's set.
func (x *PieceIndex) Contains(p Piece, sq Square) bool {
	if p >= NoPiece {
		return false
	}
	return x[p].IsSet(sq)
}

// SquaresOf yields the squares recorded for p.
func (x *PieceIndex) SquaresOf(p Piece) iter.Seq[Square] {
	if p >= NoPiece {
		return Empty.All()
	}
	return x[p].All()
}

// Count returns how many squares are recorded for p.
func (x *PieceIndex) Count(p Piece) int {
	if p >= NoPiece {
		return 0
	}
	return x[p].PopCount()
}
