package board

import "testing"

func TestHashTransposition(t *testing.T) {
	a := NewStartingPosition()
	b := NewStartingPosition()

	for _, m := range []Move{NewMove(G1, F3), NewMove(G8, F6), NewMove(B1, C3)} {
		if _, err := a.MovePiece(m.From(), m.To()); err != nil {
			t.Fatal(err)
		}
	}
	for _, m := range []Move{NewMove(B1, C3), NewMove(G8, F6), NewMove(G1, F3)} {
		if _, err := b.MovePiece(m.From(), m.To()); err != nil {
			t.Fatal(err)
		}
	}
	if a.Hash() != b.Hash() {
		t.Errorf("transposed positions hash differently: %x vs %x", a.Hash(), b.Hash())
	}
}

func TestHashDistinguishes(t *testing.T) {
	base, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	variants := []string{
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQk e3 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/3P4/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	}
	for _, fen := range variants {
		p, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if p.Hash() == base.Hash() {
			t.Errorf("%q hashes like the base position", fen)
		}
	}

	// Clocks do not take part.
	p, _ := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 7 30")
	if p.Hash() != base.Hash() {
		t.Error("clocks changed the hash")
	}
}

func TestHashIndependentOfLayout(t *testing.T) {
	a := NewStartingPosition(WithLayout(NewMailbox))
	b := NewStartingPosition(WithLayout(NewBitboards))
	if a.Hash() != b.Hash() {
		t.Error("layouts disagree on hash")
	}
}
