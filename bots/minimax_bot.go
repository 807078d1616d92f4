package bots

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

type chessSearcher = Searcher[*chess.Position, *chess.Move]

// MinimaxBot plays the alpha-beta search at a fixed depth for a fixed side.
type MinimaxBot struct {
	Config   Config
	searcher *chessSearcher
}

func NewMinimaxBot(cfg Config) *MinimaxBot {
	return &MinimaxBot{
		Config:   cfg,
		searcher: newChessSearcher(cfg.EngineSide),
	}
}

func newChessSearcher(side Side) *chessSearcher {
	return NewSearcher[*chess.Position, *chess.Move](ChessRules{}, MaterialEvaluator{Side: side}, side)
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.Config.Depth)
}

// ChooseMove searches pos from the engine side's point of view and returns
// the chosen move, or nil when the engine has no legal move. pos must have
// the engine side to move.
func (b *MinimaxBot) ChooseMove(pos *chess.Position) (*chess.Move, error) {
	b.searcher.ResetStats()
	result, err := b.searcher.Search(pos, b.Config.Depth, MinScore, MaxScore, b.Config.EngineSide)
	if err != nil {
		return nil, err
	}
	logChoice(b.Name(), result, b.searcher.Stats())
	if !result.Found {
		return nil, nil
	}
	return result.Move, nil
}

func (b *MinimaxBot) BestMove(pos *chess.Position) (*chess.Move, error) {
	return b.ChooseMove(pos)
}

// ExhaustiveBot plays the unpruned minimax. It reaches the same score as
// MinimaxBot while visiting every node, so keep the depth small.
type ExhaustiveBot struct {
	Config   Config
	searcher *chessSearcher
}

func NewExhaustiveBot(cfg Config) *ExhaustiveBot {
	return &ExhaustiveBot{
		Config:   cfg,
		searcher: newChessSearcher(cfg.EngineSide),
	}
}

func (b *ExhaustiveBot) Name() string {
	return fmt.Sprintf("Exhaustive Bot (depth %d)", b.Config.Depth)
}

func (b *ExhaustiveBot) BestMove(pos *chess.Position) (*chess.Move, error) {
	b.searcher.ResetStats()
	result, err := b.searcher.Minimax(pos, b.Config.Depth, b.Config.EngineSide)
	if err != nil {
		return nil, err
	}
	logChoice(b.Name(), result, b.searcher.Stats())
	if !result.Found {
		return nil, nil
	}
	return result.Move, nil
}

func logChoice(bot string, result ScoredMove[*chess.Move], stats SearchStats) {
	event := log.Debug().
		Str("bot", bot).
		Int("score", int(result.Score)).
		Uint64("nodes", stats.Nodes).
		Uint64("cutoffs", stats.Cutoffs)
	if result.Found {
		event = event.Str("move", result.Move.String())
	}
	event.Msg("move chosen")
}
