package diagram

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/hailam/chesspos/internal/board"
	"github.com/hailam/chesspos/internal/testutil"
)

func TestSVGCountsShapes(t *testing.T) {
	empty := board.NewPosition().Snapshot()
	svg := string(SVG(empty, DefaultOptions()))
	if n := strings.Count(svg, "<rect"); n != 64 {
		t.Errorf("empty board has %d rects, want 64", n)
	}
	if strings.Contains(svg, "<polygon") {
		t.Error("empty board drew a piece")
	}

	start := string(SVG(board.NewStartingPosition().Snapshot(), DefaultOptions()))
	// Every piece stands on a pedestal polygon.
	if n := strings.Count(start, "<polygon"); n < 32 {
		t.Errorf("starting board has %d polygons, want at least 32", n)
	}
	testutil.AssertContains(t, start, `viewBox="0 0 360 360"`)
}

func TestOrigin(t *testing.T) {
	opt := DefaultOptions()
	tests := []struct {
		sq   board.Square
		flip bool
		x, y int
	}{
		{board.A1, false, 0, 315},
		{board.H8, false, 315, 0},
		{board.A1, true, 315, 0},
		{board.E4, false, 180, 180},
	}
	for _, tc := range tests {
		opt.Flip = tc.flip
		x, y := opt.origin(tc.sq)
		if x != tc.x || y != tc.y {
			t.Errorf("origin(%v, flip=%v) = (%d,%d), want (%d,%d)", tc.sq, tc.flip, x, y, tc.x, tc.y)
		}
	}
}

func TestPNGSize(t *testing.T) {
	snap := board.NewStartingPosition().Snapshot()
	for _, size := range []int{64, 200, 333} {
		var buf bytes.Buffer
		testutil.AssertNoError(t, PNG(&buf, snap, size, DefaultOptions()))

		img, err := png.Decode(&buf)
		testutil.AssertNoError(t, err)
		b := img.Bounds()
		if b.Dx() != size || b.Dy() != size {
			t.Errorf("decoded %dx%d, want %dx%d", b.Dx(), b.Dy(), size, size)
		}
	}
}

func TestImageSquareColors(t *testing.T) {
	img, err := Image(board.NewPosition().Snapshot(), 80, DefaultOptions())
	testutil.AssertNoError(t, err)

	// Centre of a1 (bottom-left, dark) and b1 (light).
	dark := color.RGBAModel.Convert(img.At(5, 75)).(color.RGBA)
	light := color.RGBAModel.Convert(img.At(15, 75)).(color.RGBA)
	if dark.R >= light.R {
		t.Errorf("a1 %v should be darker than b1 %v", dark, light)
	}
}

func TestImageRejectsBadSize(t *testing.T) {
	if _, err := Image(board.NewPosition().Snapshot(), 0, DefaultOptions()); err == nil {
		t.Error("size 0 accepted")
	}
}
