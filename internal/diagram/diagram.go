// Package diagram draws board snapshots as SVG and PNG images.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/hailam/chesspos/internal/board"
)

// Options controls colours, size and orientation.
type Options struct {
	SquareSize int    // pixels per square in the SVG
	Light      string // light square fill, "#rrggbb"
	Dark       string // dark square fill
	Flip       bool   // draw with rank 8 at the bottom
}

// DefaultOptions matches the config defaults.
func DefaultOptions() Options {
	return Options{SquareSize: 45, Light: "#f0d9b5", Dark: "#b58863"}
}

// renderScale is the supersampling factor used before downscaling to the
// requested PNG size.
const renderScale = 3

// SVG returns an SVG document for the snapshot.
func SVG(s board.Snapshot, opt Options) []byte {
	size := opt.SquareSize * 8
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		size, size, size, size)

	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := opt.origin(sq)
		fill := opt.Dark
		if (sq.Rank()+sq.File())%2 == 1 {
			fill = opt.Light
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			x, y, opt.SquareSize, opt.SquareSize, fill)
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		if p := s.Squares[sq]; p != board.NoPiece {
			x, y := opt.origin(sq)
			writePiece(&sb, p, float64(x), float64(y), float64(opt.SquareSize))
		}
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// origin returns the top-left pixel of sq.
func (opt Options) origin(sq board.Square) (int, int) {
	col, row := sq.File(), 7-sq.Rank()
	if opt.Flip {
		col, row = 7-col, 7-row
	}
	return col * opt.SquareSize, row * opt.SquareSize
}

// Image rasterises the snapshot into a size×size RGBA image.
func Image(s board.Snapshot, size int, opt Options) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("diagram: invalid size %d", size)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(SVG(s, opt)))
	if err != nil {
		return nil, fmt.Errorf("diagram: parse svg: %w", err)
	}

	// Render at higher resolution, then scale down for smoother edges
	renderSize := size * renderScale
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	hi := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, hi, hi.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), xdraw.Over, nil)
	return out, nil
}

// PNG writes the snapshot as a size×size PNG.
func PNG(w io.Writer, s board.Snapshot, size int, opt Options) error {
	img, err := Image(s, size, opt)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
