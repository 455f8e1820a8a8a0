package diagram

import (
	"fmt"
	"strings"

	"github.com/hailam/chesspos/internal/board"
)

type point struct{ x, y float64 }

type circle struct{ x, y, r float64 }

// shape is a piece silhouette in unit square coordinates, y pointing down.
type shape struct {
	polygons [][]point
	circles  []circle
}

var pedestal = []point{{0.22, 0.86}, {0.78, 0.86}, {0.78, 0.77}, {0.22, 0.77}}

var shapes = [...]shape{
	board.King: {
		polygons: [][]point{
			pedestal,
			{{0.30, 0.77}, {0.70, 0.77}, {0.66, 0.42}, {0.34, 0.42}},
			{
				{0.46, 0.42}, {0.54, 0.42}, {0.54, 0.29}, {0.63, 0.29}, {0.63, 0.21}, {0.54, 0.21},
				{0.54, 0.11}, {0.46, 0.11}, {0.46, 0.21}, {0.37, 0.21}, {0.37, 0.29}, {0.46, 0.29},
			},
		},
	},
	board.Queen: {
		polygons: [][]point{
			pedestal,
			{{0.28, 0.77}, {0.72, 0.77}, {0.80, 0.30}, {0.63, 0.52}, {0.50, 0.24}, {0.37, 0.52}, {0.20, 0.30}},
		},
		circles: []circle{{0.20, 0.26, 0.05}, {0.50, 0.20, 0.05}, {0.80, 0.26, 0.05}},
	},
	board.Rook: {
		polygons: [][]point{
			pedestal,
			{{0.31, 0.77}, {0.69, 0.77}, {0.66, 0.36}, {0.34, 0.36}},
			{
				{0.28, 0.36}, {0.72, 0.36}, {0.72, 0.18}, {0.64, 0.18}, {0.64, 0.25}, {0.55, 0.25},
				{0.55, 0.18}, {0.45, 0.18}, {0.45, 0.25}, {0.36, 0.25}, {0.36, 0.18}, {0.28, 0.18},
			},
		},
	},
	board.Bishop: {
		polygons: [][]point{
			pedestal,
			{{0.35, 0.77}, {0.65, 0.77}, {0.62, 0.46}, {0.50, 0.24}, {0.38, 0.46}},
		},
		circles: []circle{{0.50, 0.18, 0.05}},
	},
	board.Knight: {
		polygons: [][]point{
			pedestal,
			{
				{0.32, 0.77}, {0.72, 0.77}, {0.70, 0.40}, {0.56, 0.18}, {0.48, 0.14}, {0.46, 0.22},
				{0.24, 0.42}, {0.28, 0.52}, {0.46, 0.44}, {0.34, 0.62},
			},
		},
	},
	board.Pawn: {
		polygons: [][]point{
			pedestal,
			{{0.40, 0.77}, {0.60, 0.77}, {0.56, 0.48}, {0.44, 0.48}},
		},
		circles: []circle{{0.50, 0.38, 0.12}},
	},
}

// Fill and outline per colour.
var pieceColors = [2]struct{ fill, stroke string }{
	board.White: {"#ffffff", "#000000"},
	board.Black: {"#000000", "#000000"},
}

// writePiece emits p scaled into the square at (x, y) of side size.
func writePiece(sb *strings.Builder, p board.Piece, x, y, size float64) {
	sh := shapes[p.Kind()]
	col := pieceColors[p.Color()]
	width := size * 0.03

	for _, poly := range sh.polygons {
		pts := make([]string, len(poly))
		for i, pt := range poly {
			pts[i] = fmt.Sprintf("%.2f,%.2f", x+pt.x*size, y+pt.y*size)
		}
		fmt.Fprintf(sb, `<polygon points="%s" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
			strings.Join(pts, " "), col.fill, col.stroke, width)
	}
	for _, c := range sh.circles {
		fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
			x+c.x*size, y+c.y*size, c.r*size, col.fill, col.stroke, width)
	}
}
