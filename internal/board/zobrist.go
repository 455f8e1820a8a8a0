package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [12][64]uint64
	zobristEnPassant  [8]uint64  // One per file
	zobristCastling   [16]uint64 // All 16 castling combinations
	zobristSideToMove uint64     // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for _, piece := range AllPieces {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[piece][sq] = rng.next()
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist key of the position from scratch. Ply, the
// fifty-move counter and history do not contribute.
func (p *Position) Hash() uint64 {
	var hash uint64

	for _, piece := range AllPieces {
		for sq := range p.layout.SquaresOf(piece) {
			hash ^= zobristPiece[piece][sq]
		}
	}

	if p.sideToMove == Black {
		hash ^= zobristSideToMove
	}

	s := p.states.Top()
	hash ^= zobristCastling[s.Castling]
	if s.HasEnPassant() {
		hash ^= zobristEnPassant[s.EnPassantFile]
	}

	return hash
}
