package bots

import (
	"errors"
	"fmt"
)

var ErrNegativeDepth = errors.New("negative search depth")

// Searcher runs depth-bounded minimax with alpha-beta pruning. Nodes where
// EngineSide is to move maximize the evaluator's score; the others
// minimize it.
//
// A Searcher is not safe for concurrent use: it counts SearchStats.
type Searcher[P, M any] struct {
	Rules      Rules[P, M]
	Eval       Evaluator[P]
	EngineSide Side

	stats SearchStats
}

func NewSearcher[P, M any](rules Rules[P, M], eval Evaluator[P], engineSide Side) *Searcher[P, M] {
	return &Searcher[P, M]{
		Rules:      rules,
		Eval:       eval,
		EngineSide: engineSide,
	}
}

// Stats returns the counters accumulated since the last ResetStats.
func (s *Searcher[P, M]) Stats() SearchStats {
	return s.stats
}

func (s *Searcher[P, M]) ResetStats() {
	s.stats = SearchStats{}
}

// Search returns the best move for side within depth plies and the score
// it leads to. Callers at the root pass the full window (MinScore, MaxScore).
//
// Among equally scored moves the one enumerated last wins. A node without
// legal moves returns no move and its initial extremum: MinScore when
// maximizing, MaxScore when minimizing.
func (s *Searcher[P, M]) Search(pos P, depth int, alpha, beta Score, side Side) (ScoredMove[M], error) {
	if depth < 0 {
		return ScoredMove[M]{}, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	return s.alphaBeta(pos, depth, alpha, beta, side)
}

func (s *Searcher[P, M]) alphaBeta(pos P, depth int, alpha, beta Score, side Side) (ScoredMove[M], error) {
	s.stats.Nodes++
	if depth == 0 {
		s.stats.Leaves++
		return ScoredMove[M]{Score: s.Eval.Evaluate(pos)}, nil
	}

	moves, err := s.Rules.LegalMoves(pos)
	if err != nil {
		return ScoredMove[M]{}, err
	}
	if len(moves) == 0 {
		s.stats.Terminals++
	}

	var best ScoredMove[M]
	if side == s.EngineSide {
		best.Score = MinScore
		for _, move := range moves {
			child, err := s.Rules.Apply(pos, move)
			if err != nil {
				return ScoredMove[M]{}, err
			}
			current, err := s.alphaBeta(child, depth-1, alpha, beta, side.Other())
			if err != nil {
				return ScoredMove[M]{}, err
			}
			if current.Score >= best.Score {
				best = ScoredMove[M]{Move: move, Found: true, Score: current.Score}
			}
			alpha = max(alpha, best.Score)
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
	} else {
		best.Score = MaxScore
		for _, move := range moves {
			child, err := s.Rules.Apply(pos, move)
			if err != nil {
				return ScoredMove[M]{}, err
			}
			current, err := s.alphaBeta(child, depth-1, alpha, beta, side.Other())
			if err != nil {
				return ScoredMove[M]{}, err
			}
			if current.Score <= best.Score {
				best = ScoredMove[M]{Move: move, Found: true, Score: current.Score}
			}
			beta = min(beta, best.Score)
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
	}

	return best, nil
}
