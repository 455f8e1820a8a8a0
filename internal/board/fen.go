package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenReader walks the six whitespace-separated FEN fields in order.
type fenReader struct {
	fen    string
	fields []string
	next   int
}

// field returns the next field or a FENError naming the missing one.
func (r *fenReader) field(name string) (string, error) {
	if r.next >= len(r.fields) {
		return "", r.fail(name, "", -1, "field missing")
	}
	f := r.fields[r.next]
	r.next++
	return f, nil
}

func (r *fenReader) fail(field, input string, offset int, reason string) *FENError {
	return &FENError{FEN: r.fen, Field: field, Input: input, Offset: offset, Reason: reason}
}

// ParseFEN parses a six-field FEN string. On any error the partially built
// position is discarded.
func ParseFEN(fen string, opts ...Option) (*Position, error) {
	r := &fenReader{fen: fen, fields: strings.Fields(fen)}
	if len(r.fields) == 0 {
		return nil, r.fail(FieldPlacement, "", -1, "no position supplied")
	}

	initial := DefaultGameState()
	pos := newPosition(initial, opts)

	placement, _ := r.field(FieldPlacement)
	if err := r.parsePlacement(pos, placement); err != nil {
		return nil, err
	}

	active, err := r.field(FieldActive)
	if err != nil {
		return nil, err
	}
	switch active {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, r.fail(FieldActive, active, -1, `want "w" or "b"`)
	}

	state := pos.states.Top()

	castling, err := r.field(FieldCastling)
	if err != nil {
		return nil, err
	}
	if state.Castling, err = r.parseCastling(castling); err != nil {
		return nil, err
	}

	ep, err := r.field(FieldEnPassant)
	if err != nil {
		return nil, err
	}
	state.EnPassantFile = NoFile
	if ep != "-" {
		sq, err := ParseSquare(ep)
		if err != nil {
			fe := r.fail(FieldEnPassant, ep, -1, "")
			fe.Err = err
			return nil, fe
		}
		state.EnPassantFile = sq.File()
	}

	halfMove, err := r.field(FieldHalfMove)
	if err != nil {
		return nil, err
	}
	counter, err := strconv.ParseUint(halfMove, 10, 16)
	if err != nil {
		return nil, r.fail(FieldHalfMove, halfMove, -1, "want a non-negative integer below 65536")
	}
	state.FiftyMoveCounter = uint16(counter)

	fullMove, err := r.field(FieldFullMove)
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseUint(fullMove, 10, 30)
	if err != nil || n == 0 {
		return nil, r.fail(FieldFullMove, fullMove, -1, "want a positive integer")
	}
	pos.ply = int(n-1) * 2
	if pos.sideToMove == Black {
		pos.ply++
	}

	if r.next < len(r.fields) {
		return nil, r.fail(FieldEndOfInput, r.fields[r.next], -1, "unexpected trailing field")
	}

	return pos, nil
}

// parsePlacement walks the placement field with a rank/file cursor. Rank 7
// is FEN's first rank. A '/' is only legal once the current rank holds
// exactly eight squares, a digit may not run past the h-file and a piece
// may not be placed beyond it.
func (r *fenReader) parsePlacement(pos *Position, placement string) error {
	rank, file := 7, 0

	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			if file != 8 || rank == 0 {
				return r.fail(FieldPlacement, placement, i, "unexpected '/'")
			}
			rank--
			file = 0
		case c >= '0' && c <= '9':
			offset := int(c - '0')
			if offset == 0 || offset > 8 || file+offset > 8 {
				return r.fail(FieldPlacement, placement, i, "invalid offset "+string(c))
			}
			file += offset
		default:
			if file >= 8 {
				return r.fail(FieldPlacement, placement, i, "rank overflow")
			}
			piece, ok := PieceFromFENChar(c)
			if !ok {
				return r.fail(FieldPlacement, placement, i, strconv.QuoteRune(rune(c))+" is not a FEN piece letter")
			}
			pos.layout.Place(SquareOf(rank, file), piece)
			file++
		}
	}

	if rank != 0 || file != 8 {
		return r.fail(FieldPlacement, placement, len(placement),
			"incomplete board: "+strconv.Itoa(8-rank)+" rank(s) read, "+strconv.Itoa(file)+" square(s) in the last")
	}
	return nil
}

// parseCastling accepts "-" or a string made only of K, Q, k and q.
func (r *fenReader) parseCastling(field string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	found := 0
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			cr |= WhiteKingSide
		case 'Q':
			cr |= WhiteQueenSide
		case 'k':
			cr |= BlackKingSide
		case 'q':
			cr |= BlackQueenSide
		default:
			continue
		}
		found++
	}
	if found != len(field) {
		return NoCastling, r.fail(FieldCastling, field, -1, `want "-" or letters from "KQkq"`)
	}
	return cr, nil
}

// FEN returns the canonical six-field FEN of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	p.writePlacement(&sb)

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	state := p.State()
	sb.WriteByte(' ')
	sb.WriteString(state.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassantTarget(state))

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(state.FiftyMoveCounter)))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber()))

	return sb.String()
}

// writePlacement writes ranks 8 down to 1, run-length encoding empties.
func (p *Position) writePlacement(sb *strings.Builder) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.layout.PieceAt(SquareOf(rank, file))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.FENChar())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// enPassantTarget renders the stored file as a target square. Only the file
// is kept, so the rank follows from the side to move: the square behind a
// pawn that just made a two-rank push.
func (p *Position) enPassantTarget(s GameState) string {
	if !s.HasEnPassant() {
		return "-"
	}
	rank := 5
	if p.sideToMove == Black {
		rank = 2
	}
	return SquareOf(rank, s.EnPassantFile).String()
}
