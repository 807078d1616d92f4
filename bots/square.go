package bots

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var ErrSquareOutOfRange = errors.New("square out of range")

// SquareAt builds a square from zero-based file and rank, rejecting
// anything off the board.
func SquareAt(file, rank int) (chess.Square, error) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare, fmt.Errorf("%w: file %d rank %d", ErrSquareOutOfRange, file, rank)
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), nil
}

// SquareFromIndex builds a square from its 0..63 index (a1 = 0, h8 = 63).
func SquareFromIndex(i int) (chess.Square, error) {
	if i < 0 || i > 63 {
		return chess.NoSquare, fmt.Errorf("%w: index %d", ErrSquareOutOfRange, i)
	}
	return SquareAt(i%8, i/8)
}

var allSquares = func() [64]chess.Square {
	var squares [64]chess.Square
	for i := range squares {
		sq, err := SquareFromIndex(i)
		if err != nil {
			panic(err)
		}
		squares[i] = sq
	}
	return squares
}()

// AllSquares returns the 64 board squares in index order.
func AllSquares() [64]chess.Square {
	return allSquares
}
