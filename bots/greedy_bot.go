package bots

import (
	"github.com/notnil/chess"
)

// GreedyBot looks one ply ahead: it plays the move whose resulting position
// has the best material for its side, the last such move on ties.
type GreedyBot struct {
	Side Side
	eval MaterialEvaluator
}

func NewGreedyBot(side Side) *GreedyBot {
	return &GreedyBot{Side: side, eval: MaterialEvaluator{Side: side}}
}

func (b *GreedyBot) Name() string {
	return "Greedy Bot"
}

func (b *GreedyBot) BestMove(pos *chess.Position) (*chess.Move, error) {
	rules := ChessRules{}
	moves, err := rules.LegalMoves(pos)
	if err != nil {
		return nil, err
	}

	var best *chess.Move
	bestScore := MinScore
	for _, move := range moves {
		next, err := rules.Apply(pos, move)
		if err != nil {
			return nil, err
		}
		if score := b.eval.Evaluate(next); score >= bestScore {
			best, bestScore = move, score
		}
	}
	return best, nil
}
