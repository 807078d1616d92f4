// bot.go
package bots

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notnil/chess"
)

// ChessBot интерфейс для всех ботов. BestMove returns nil with a nil error
// when the side to move has no legal move.
type ChessBot interface {
	BestMove(pos *chess.Position) (*chess.Move, error)
	Name() string
}

var ErrUnknownBot = errors.New("unknown bot")

var registry = map[string]func(cfg Config) ChessBot{
	"minimax":    func(cfg Config) ChessBot { return NewMinimaxBot(cfg) },
	"exhaustive": func(cfg Config) ChessBot { return NewExhaustiveBot(cfg) },
	"greedy":     func(cfg Config) ChessBot { return NewGreedyBot(cfg.EngineSide) },
	"newborn":    func(Config) ChessBot { return NewNewbornBot() },
}

// NewBot builds a registered bot by name.
func NewBot(name string, cfg Config) (ChessBot, error) {
	newBot, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBot, name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newBot(cfg), nil
}

// BotNames lists the registered bot names in sorted order.
func BotNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
