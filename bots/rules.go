package bots

import (
	"errors"

	"github.com/notnil/chess"
)

// Rules is the move generator the search runs on. LegalMoves enumerates
// the moves for the side to move in pos; Apply returns a new position and
// must not modify pos.
type Rules[P, M any] interface {
	LegalMoves(pos P) ([]M, error)
	Apply(pos P, move M) (P, error)
}

var ErrNilPosition = errors.New("nil position")

// ChessRules adapts notnil/chess positions to Rules.
type ChessRules struct{}

func (ChessRules) LegalMoves(pos *chess.Position) ([]*chess.Move, error) {
	if pos == nil {
		return nil, ErrNilPosition
	}
	return pos.ValidMoves(), nil
}

func (ChessRules) Apply(pos *chess.Position, move *chess.Move) (*chess.Position, error) {
	if pos == nil {
		return nil, ErrNilPosition
	}
	return pos.Update(move), nil
}
