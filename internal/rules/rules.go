// Package rules decides whether a move is legal for a given board and side.
// It is read-only: nothing here mutates the board.
package rules

import (
	"errors"
	"fmt"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

// Rejection reasons. Validate wraps these together with core.ErrInvalidMove.
var (
	ErrNoPiece        = errors.New("no piece on source square")
	ErrNotYourTurn    = errors.New("piece belongs to the other side")
	ErrOwnCapture     = errors.New("destination holds own piece")
	ErrNoDisplacement = errors.New("source and destination are the same square")
	ErrGeometry       = errors.New("piece cannot move that way")
	ErrBlocked        = errors.New("path is blocked")
	ErrOutsidePalace  = errors.New("destination is outside the palace")
	ErrRiver          = errors.New("piece cannot cross the river")
	ErrScreen         = errors.New("cannon needs exactly one screen to capture")
)

// Validate returns nil when mover may play m on b. The check has no notion
// of check: a move that leaves the mover's General exposed is legal.
func Validate(b *board.Board, m board.Move, mover core.Color) error {
	if reason := validate(b, m, mover); reason != nil {
		return fmt.Errorf("%w %s: %w", core.ErrInvalidMove, m, reason)
	}
	return nil
}

// Legal is Validate reduced to a verdict
func Legal(b *board.Board, m board.Move, mover core.Color) bool {
	return validate(b, m, mover) == nil
}

func validate(b *board.Board, m board.Move, mover core.Color) error {
	from, to := m.From, m.To
	if !from.Valid() || !to.Valid() {
		return ErrGeometry
	}
	if from == to {
		return ErrNoDisplacement
	}

	piece := b.At(from)
	if piece.IsZero() {
		return ErrNoPiece
	}
	if piece.Color != mover {
		return ErrNotYourTurn
	}
	target := b.At(to)
	if !target.IsZero() && target.Color == mover {
		return ErrOwnCapture
	}

	dx, dy := to.X-from.X, to.Y-from.Y
	adx, ady := abs(dx), abs(dy)

	switch piece.Type {
	case board.General:
		if adx+ady != 1 {
			return ErrGeometry
		}
		if !to.InPalace(mover) {
			return ErrOutsidePalace
		}

	case board.Advisor:
		if adx != 1 || ady != 1 {
			return ErrGeometry
		}
		if !to.InPalace(mover) {
			return ErrOutsidePalace
		}

	case board.Elephant:
		if adx != 2 || ady != 2 {
			return ErrGeometry
		}
		if !to.OwnSide(mover) {
			return ErrRiver
		}
		eye := board.Position{X: from.X + dx/2, Y: from.Y + dy/2}
		if !b.IsEmpty(eye) {
			return ErrBlocked
		}

	case board.Horse:
		var leg board.Position
		switch {
		case adx == 2 && ady == 1:
			leg = board.Position{X: from.X + dx/2, Y: from.Y}
		case adx == 1 && ady == 2:
			leg = board.Position{X: from.X, Y: from.Y + dy/2}
		default:
			return ErrGeometry
		}
		if !b.IsEmpty(leg) {
			return ErrBlocked
		}

	case board.Rook:
		if dx != 0 && dy != 0 {
			return ErrGeometry
		}
		if !b.PathClear(from, to) {
			return ErrBlocked
		}

	case board.Cannon:
		if dx != 0 && dy != 0 {
			return ErrGeometry
		}
		screens := b.CountBetween(from, to)
		if target.IsZero() {
			if screens != 0 {
				return ErrBlocked
			}
		} else if screens != 1 {
			return ErrScreen
		}

	case board.Pawn:
		forward := 1
		if mover == core.ColorBlack {
			forward = -1
		}
		switch {
		case dx == 0 && dy == forward:
		case ady == 0 && adx == 1:
			// sideways only once across the river
			if from.OwnSide(mover) {
				return ErrRiver
			}
		default:
			return ErrGeometry
		}

	default:
		return ErrNoPiece
	}

	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
