package bots

import "github.com/notnil/chess"

// NewbornBot plays the first legal move it is given.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(pos *chess.Position) (*chess.Move, error) {
	moves, err := ChessRules{}.LegalMoves(pos)
	if err != nil {
		return nil, err
	}
	if len(moves) > 0 {
		return moves[0], nil
	}
	return nil, nil
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
