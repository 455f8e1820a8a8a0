package board

import "iter"

// Layout is the storage capability a Position needs. Place is the only
// mutator; implementations keep their reverse lookups in step with the
// cells inside that single call.
type Layout interface {
	PieceAt(sq Square) Piece
	Place(sq Square, p Piece) Piece
	SquaresOf(p Piece) iter.Seq[Square]
	Clone() Layout
}

// Mailbox is a Grid paired with a PieceIndex.
type Mailbox struct {
	grid  Grid
	index PieceIndex
}

// NewMailbox returns an empty mailbox layout.
func NewMailbox() Layout {
	return &Mailbox{grid: NewGrid()}
}

func (m *Mailbox) PieceAt(sq Square) Piece {
	return m.grid.Get(sq)
}

// Place writes p to sq, moving the index entry from the prior occupant to p.
func (m *Mailbox) Place(sq Square, p Piece) Piece {
	prior := m.grid.Put(sq, p)
	m.index.Forget(prior, sq)
	m.index.Record(p, sq)
	return prior
}

func (m *Mailbox) SquaresOf(p Piece) iter.Seq[Square] {
	return m.index.SquaresOf(p)
}

func (m *Mailbox) Clone() Layout {
	c := *m
	return &c
}

// Bitboards stores one bitboard per piece plus the occupancy union.
type Bitboards struct {
	pieces   [12]Bitboard
	occupied Bitboard
}

// NewBitboards returns an empty bitboard layout.
func NewBitboards() Layout {
	return &Bitboards{}
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Bitboards) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if b.occupied&bb == 0 {
		return NoPiece
	}
	for p, set := range b.pieces {
		if set&bb != 0 {
			return Piece(p)
		}
	}
	return NoPiece
}

func (b *Bitboards) Place(sq Square, p Piece) Piece {
	prior := b.PieceAt(sq)
	bb := SquareBB(sq)
	if prior != NoPiece {
		b.pieces[prior] &^= bb
		b.occupied &^= bb
	}
	if p < NoPiece {
		b.pieces[p] |= bb
		b.occupied |= bb
	}
	return prior
}

func (b *Bitboards) SquaresOf(p Piece) iter.Seq[Square] {
	if p >= NoPiece {
		return Empty.All()
	}
	return b.pieces[p].All()
}

func (b *Bitboards) Clone() Layout {
	c := *b
	return &c
}
