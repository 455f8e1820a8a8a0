package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ColorFromFENChar classifies a FEN letter by case: uppercase is White,
// anything else is Black. It does not check that c names a piece.
func ColorFromFENChar(c byte) Color {
	if c >= 'A' && c <= 'Z' {
		return White
	}
	return Black
}

// PieceKind represents the kind of a chess piece.
type PieceKind uint8

const (
	King PieceKind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	NoPieceKind PieceKind = 6
)

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece kind (lowercase).
func (k PieceKind) Char() byte {
	if k >= NoPieceKind {
		return ' '
	}
	return "kqrbnp"[k]
}

// PieceKindFromFENChar matches c case-insensitively against k, q, r, b, n, p.
func PieceKindFromFENChar(c byte) (PieceKind, bool) {
	switch c | 0x20 {
	case 'k':
		return King, true
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	case 'p':
		return Pawn, true
	default:
		return NoPieceKind, false
	}
}

// Piece combines PieceKind and Color into a single value.
// Encoded as: kind + color*6
type Piece uint8

const (
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceKind and Color.
func NewPiece(k PieceKind, c Color) Piece {
	if k >= NoPieceKind || c >= NoColor {
		return NoPiece
	}
	return Piece(k) + Piece(c)*6
}

// PieceFromFENChar converts a FEN character to a Piece.
func PieceFromFENChar(c byte) (Piece, bool) {
	k, ok := PieceKindFromFENChar(c)
	if !ok {
		return NoPiece, false
	}
	return NewPiece(k, ColorFromFENChar(c)), true
}

// Kind returns the PieceKind of the piece.
func (p Piece) Kind() PieceKind {
	if p >= NoPiece {
		return NoPieceKind
	}
	return PieceKind(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// FENChar returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) FENChar() byte {
	if p >= NoPiece {
		return ' '
	}
	return "KQRBNPkqrbnp"[p]
}

// White pieces take the filled figurines so they read as light on a dark
// terminal; Black takes the outlined set.
var glyphs = [...]rune{
	'♚', '♛', '♜', '♝', '♞', '♟',
	'♔', '♕', '♖', '♗', '♘', '♙',
}

// Glyph returns the display figurine for the piece.
func (p Piece) Glyph() rune {
	if p >= NoPiece {
		return ' '
	}
	return glyphs[p]
}

// String returns the FEN character for the piece.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string(p.FENChar())
}

// AllPieces lists the twelve real pieces in encoding order.
var AllPieces = [...]Piece{
	WhiteKing, WhiteQueen, WhiteRook, WhiteBishop, WhiteKnight, WhitePawn,
	BlackKing, BlackQueen, BlackRook, BlackBishop, BlackKnight, BlackPawn,
}
