package board

import "testing"

func TestColorFromFENChar(t *testing.T) {
	for _, c := range []byte("RKP") {
		if got := ColorFromFENChar(c); got != White {
			t.Errorf("ColorFromFENChar(%q) = %v, want White", c, got)
		}
	}
	for _, c := range []byte("rkp") {
		if got := ColorFromFENChar(c); got != Black {
			t.Errorf("ColorFromFENChar(%q) = %v, want Black", c, got)
		}
	}
}

func TestPieceKindFromFENChar(t *testing.T) {
	tests := []struct {
		c    byte
		want PieceKind
	}{
		{'K', King}, {'k', King},
		{'R', Rook}, {'r', Rook},
		{'Q', Queen}, {'q', Queen},
		{'B', Bishop}, {'n', Knight}, {'P', Pawn},
	}
	for _, tc := range tests {
		got, ok := PieceKindFromFENChar(tc.c)
		if !ok || got != tc.want {
			t.Errorf("PieceKindFromFENChar(%q) = %v, %v; want %v, true", tc.c, got, ok, tc.want)
		}
	}

	for _, c := range []byte("xX1/ -") {
		if _, ok := PieceKindFromFENChar(c); ok {
			t.Errorf("PieceKindFromFENChar(%q) accepted", c)
		}
	}
}

func TestPieceFromFENChar(t *testing.T) {
	tests := []struct {
		c    byte
		want Piece
	}{
		{'K', WhiteKing},
		{'r', BlackRook},
		{'Q', WhiteQueen},
		{'k', BlackKing},
		{'P', WhitePawn},
		{'b', BlackBishop},
	}
	for _, tc := range tests {
		got, ok := PieceFromFENChar(tc.c)
		if !ok || got != tc.want {
			t.Errorf("PieceFromFENChar(%q) = %v, %v; want %v", tc.c, got, ok, tc.want)
		}
	}
	if p, ok := PieceFromFENChar('z'); ok || p != NoPiece {
		t.Errorf("PieceFromFENChar('z') = %v, %v; want NoPiece, false", p, ok)
	}
}

func TestPieceFENCharRoundTrip(t *testing.T) {
	for _, p := range AllPieces {
		back, ok := PieceFromFENChar(p.FENChar())
		if !ok || back != p {
			t.Errorf("%v: FENChar %q parsed back as %v", p, p.FENChar(), back)
		}
		if NewPiece(p.Kind(), p.Color()) != p {
			t.Errorf("%v: NewPiece(Kind, Color) mismatch", p)
		}
	}
}

func TestPieceFENChar(t *testing.T) {
	tests := []struct {
		p    Piece
		want byte
	}{
		{WhiteKing, 'K'},
		{BlackRook, 'r'},
		{WhiteQueen, 'Q'},
		{BlackKing, 'k'},
		{WhitePawn, 'P'},
		{BlackBishop, 'b'},
	}
	for _, tc := range tests {
		if got := tc.p.FENChar(); got != tc.want {
			t.Errorf("%v.FENChar() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestPieceGlyph(t *testing.T) {
	tests := []struct {
		p    Piece
		want rune
	}{
		{WhiteKing, '♚'},
		{BlackRook, '♖'},
		{WhiteQueen, '♛'},
		{BlackKing, '♔'},
		{WhitePawn, '♟'},
		{BlackBishop, '♗'},
		{NoPiece, ' '},
	}
	for _, tc := range tests {
		if got := tc.p.Glyph(); got != tc.want {
			t.Errorf("%v.Glyph() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestNoPiece(t *testing.T) {
	if NoPiece.Kind() != NoPieceKind || NoPiece.Color() != NoColor {
		t.Errorf("NoPiece decodes to %v %v", NoPiece.Color(), NoPiece.Kind())
	}
	if NewPiece(NoPieceKind, White) != NoPiece {
		t.Error("NewPiece(NoPieceKind, White) should be NoPiece")
	}
	if White.Other() != Black || Black.Other() != White {
		t.Error("Other() is not an involution")
	}
}
