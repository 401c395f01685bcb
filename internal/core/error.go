package core

import "errors"

var (
	ErrInvalidPositionFormat = errors.New("invalid position format")
	ErrInvalidMoveFormat     = errors.New("invalid move format")
	ErrInvalidMove           = errors.New("invalid move")
	ErrIllegalState          = errors.New("illegal state")
	ErrIllegalArgument       = errors.New("illegal argument")
	ErrInvalidFEN            = errors.New("invalid FEN format")
	ErrGameNotFound          = errors.New("game not found")
)

// Error codes
const (
	CodeInvalidPosition = "INVALID_POSITION"
	CodeInvalidMoveText = "INVALID_MOVE_FORMAT"
	CodeInvalidMove     = "INVALID_MOVE"
	CodeIllegalState    = "ILLEGAL_STATE"
	CodeIllegalArgument = "ILLEGAL_ARGUMENT"
	CodeInvalidFEN      = "INVALID_FEN"
	CodeGameNotFound    = "GAME_NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Code maps an error to its display code
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPositionFormat):
		return CodeInvalidPosition
	case errors.Is(err, ErrInvalidMoveFormat):
		return CodeInvalidMoveText
	case errors.Is(err, ErrInvalidMove):
		return CodeInvalidMove
	case errors.Is(err, ErrIllegalState):
		return CodeIllegalState
	case errors.Is(err, ErrIllegalArgument):
		return CodeIllegalArgument
	case errors.Is(err, ErrInvalidFEN):
		return CodeInvalidFEN
	case errors.Is(err, ErrGameNotFound):
		return CodeGameNotFound
	default:
		return CodeInternalError
	}
}
