package bots

import (
	"github.com/notnil/chess"
)

// Evaluator scores a position for the side the search optimizes for.
type Evaluator[P any] interface {
	Evaluate(pos P) Score
}

// Веса фигур. The king is not counted: it is never captured in legal play.
var pieceWeights = map[chess.PieceType]Score{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

// PieceWeight returns the material weight of a piece type (0 for NoPieceType).
func PieceWeight(p chess.PieceType) Score {
	return pieceWeights[p]
}

// MaterialEvaluator counts material from Side's point of view: own pieces
// add their weight, opponent pieces subtract it.
type MaterialEvaluator struct {
	Side Side
}

func (e MaterialEvaluator) Evaluate(pos *chess.Position) Score {
	if pos == nil {
		return 0
	}
	return e.EvaluateBoard(pos.Board())
}

// EvaluateBoard scores piece placement alone. An empty board scores 0.
func (e MaterialEvaluator) EvaluateBoard(board *chess.Board) Score {
	own := e.Side.Color()

	var score Score
	for _, sq := range AllSquares() {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		value := PieceWeight(piece.Type())
		if piece.Color() == own {
			score += value
		} else {
			score -= value
		}
	}
	return score
}
