package storage

import (
	"github.com/notnil/chess"
)

// NewGameRecord captures the state of a game between two named players.
func NewGameRecord(game *chess.Game, white, black string, depth int) GameRecord {
	method := ""
	if game.Method() != chess.NoMethod {
		method = game.Method().String()
	}
	return GameRecord{
		White:   white,
		Black:   black,
		Depth:   depth,
		Outcome: string(game.Outcome()),
		Method:  method,
		Plies:   len(game.Moves()),
		PGN:     game.String(),
	}
}
