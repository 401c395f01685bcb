package board

import (
	"xiangqi/internal/core"
)

type PieceType byte

const (
	None PieceType = iota
	General
	Advisor
	Elephant
	Horse
	Rook
	Cannon
	Pawn
)

var pieceLetters = map[PieceType]byte{
	General:  'k',
	Advisor:  'a',
	Elephant: 'b',
	Horse:    'n',
	Rook:     'r',
	Cannon:   'c',
	Pawn:     'p',
}

var letterPieces = map[byte]PieceType{
	'k': General,
	'a': Advisor,
	'b': Elephant,
	'n': Horse,
	'r': Rook,
	'c': Cannon,
	'p': Pawn,
}

func (t PieceType) String() string {
	switch t {
	case General:
		return "general"
	case Advisor:
		return "advisor"
	case Elephant:
		return "elephant"
	case Horse:
		return "horse"
	case Rook:
		return "rook"
	case Cannon:
		return "cannon"
	case Pawn:
		return "pawn"
	default:
		return "none"
	}
}

// Letter is the lowercase FEN letter of the type, 0 for None
func (t PieceType) Letter() byte {
	return pieceLetters[t]
}

// Piece is the content of a square; the zero value is an empty square
type Piece struct {
	Type  PieceType
	Color core.Color
}

func (p Piece) IsZero() bool {
	return p.Type == None
}

// Letter returns the FEN letter, uppercase for Red
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if l != 0 && p.Color == core.ColorRed {
		l -= 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsZero() {
		return "."
	}
	return string(p.Letter())
}

// ParsePiece decodes a FEN letter
func ParsePiece(letter byte) (Piece, bool) {
	color := core.ColorBlack
	if letter >= 'A' && letter <= 'Z' {
		color = core.ColorRed
		letter += 'a' - 'A'
	}
	t, ok := letterPieces[letter]
	if !ok {
		return Piece{}, false
	}
	return Piece{Type: t, Color: color}, true
}

// ParsePieceType decodes a type letter in either case
func ParsePieceType(letter byte) (PieceType, bool) {
	p, ok := ParsePiece(letter)
	return p.Type, ok
}
