package board

import (
	"errors"
	"testing"
)

func TestSquareIndex(t *testing.T) {
	for idx := 0; idx < 64; idx++ {
		sq := SquareFromIndex(idx)
		if sq.Index() != idx {
			t.Fatalf("SquareFromIndex(%d).Index() = %d", idx, sq.Index())
		}
		if sq.Rank() != idx/8 || sq.File() != idx%8 {
			t.Fatalf("SquareFromIndex(%d) = rank %d file %d", idx, sq.Rank(), sq.File())
		}
		if SquareOf(sq.Rank(), sq.File()) != sq {
			t.Fatalf("SquareOf round trip failed for %d", idx)
		}
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		text string
		want Square
	}{
		{"a1", A1},
		{"h1", H1},
		{"e4", E4},
		{"c6", C6},
		{"h8", H8},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			got, err := ParseSquare(tc.text)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error: %v", tc.text, err)
			}
			if got != tc.want {
				t.Errorf("ParseSquare(%q) = %v, want %v", tc.text, got, tc.want)
			}
			if got.String() != tc.text {
				t.Errorf("String() = %q, want %q", got.String(), tc.text)
			}
		})
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, text := range []string{"", "e", "e44", "i1", "a0", "a9", "E4", "4e", "-"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseSquare(text)
			if !errors.Is(err, ErrInvalidSquare) {
				t.Fatalf("ParseSquare(%q) error = %v, want ErrInvalidSquare", text, err)
			}
			var se *SquareError
			if !errors.As(err, &se) || se.Text != text {
				t.Errorf("error does not carry the offending text %q: %v", text, err)
			}
		})
	}
}

func TestNewSquare(t *testing.T) {
	sq, err := NewSquare(3, 4)
	if err != nil || sq != E4 {
		t.Fatalf("NewSquare(3, 4) = %v, %v; want e4", sq, err)
	}
	for _, rf := range [][2]int{{8, 0}, {0, 8}, {-1, 0}, {0, -1}} {
		if _, err := NewSquare(rf[0], rf[1]); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("NewSquare(%d, %d) error = %v, want ErrInvalidSquare", rf[0], rf[1], err)
		}
	}
}

func TestNoSquareString(t *testing.T) {
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}
	if NoSquare.IsValid() {
		t.Error("NoSquare should not be valid")
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.From() != E2 || m.To() != E4 || m.String() != "e2e4" {
		t.Errorf("ParseMove(e2e4) = %v (%v -> %v)", m, m.From(), m.To())
	}
	if NewMove(A1, A1) == NoMove {
		t.Error("a1a1 must not collide with NoMove")
	}
	for _, s := range []string{"", "e2e", "e2e9", "z2e4"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) accepted", s)
		}
	}
}
