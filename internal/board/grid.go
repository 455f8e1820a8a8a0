package board

// Grid is the 64-cell mailbox: one occupant (or NoPiece) per square.
type Grid [64]Piece

// NewGrid returns a grid with every square empty.
func NewGrid() Grid {
	var g Grid
	for i := range g {
		g[i] = NoPiece
	}
	return g
}

// Get returns the occupant of sq.
func (g *Grid) Get(sq Square) Piece {
	return g[sq]
}

// Put overwrites sq with p and returns the prior occupant.
func (g *Grid) Put(sq Square, p Piece) Piece {
	prior := g[sq]
	g[sq] = p
	return prior
}

// Remove empties sq and returns the prior occupant.
func (g *Grid) Remove(sq Square) Piece {
	return g.Put(sq, NoPiece)
}

// Move lifts the occupant of from onto to and returns whatever stood on to.
// An empty from leaves to empty as well.
func (g *Grid) Move(from, to Square) Piece {
	moved := g.Remove(from)
	return g.Put(to, moved)
}
