package bots

import "fmt"

// Minimax is Search without pruning: every node below the root is
// expanded. It uses the same last-move-wins tie-break and the same
// no-move extremum as Search, so for any tree both return the same root
// score. It is the reference the pruning search is checked against.
func (s *Searcher[P, M]) Minimax(pos P, depth int, side Side) (ScoredMove[M], error) {
	if depth < 0 {
		return ScoredMove[M]{}, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	return s.minimax(pos, depth, side)
}

func (s *Searcher[P, M]) minimax(pos P, depth int, side Side) (ScoredMove[M], error) {
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

	maximizing := side == s.EngineSide
	best := ScoredMove[M]{Score: MaxScore}
	if maximizing {
		best.Score = MinScore
	}
	for _, move := range moves {
		child, err := s.Rules.Apply(pos, move)
		if err != nil {
			return ScoredMove[M]{}, err
		}
		current, err := s.minimax(child, depth-1, side.Other())
		if err != nil {
			return ScoredMove[M]{}, err
		}
		if (maximizing && current.Score >= best.Score) || (!maximizing && current.Score <= best.Score) {
			best = ScoredMove[M]{Move: move, Found: true, Score: current.Score}
		}
	}
	return best, nil
}
