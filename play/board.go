package play

import (
	"chessbot/bots"

	"github.com/notnil/chess"
)

// FindMove returns the legal move from→to in pos, or nil. When the move is
// a promotion the queen is chosen.
func FindMove(pos *chess.Position, from, to chess.Square) *chess.Move {
	var found *chess.Move
	for _, m := range pos.ValidMoves() {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() == chess.NoPieceType || m.Promo() == chess.Queen {
			return m
		}
		found = m
	}
	return found
}

// Layout maps board squares to screen pixels. With Flipped set, Black is
// drawn at the bottom.
type Layout struct {
	SquareSize int
	OffsetX    int
	OffsetY    int
	Flipped    bool
}

// SquareAt returns the square under the pixel (x, y).
func (l Layout) SquareAt(x, y int) (chess.Square, error) {
	x -= l.OffsetX
	y -= l.OffsetY
	if x < 0 || y < 0 {
		return bots.SquareAt(-1, -1)
	}
	file, row := x/l.SquareSize, y/l.SquareSize
	if l.Flipped {
		return bots.SquareAt(7-file, row)
	}
	return bots.SquareAt(file, 7-row)
}

// Origin returns the top-left pixel of sq.
func (l Layout) Origin(sq chess.Square) (x, y int) {
	file, rank := int(sq.File()), int(sq.Rank())
	col, row := file, 7-rank
	if l.Flipped {
		col, row = 7-file, rank
	}
	return l.OffsetX + col*l.SquareSize, l.OffsetY + row*l.SquareSize
}
