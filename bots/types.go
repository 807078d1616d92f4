package bots

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notnil/chess"
)

// Side identifies one of the two players. First moves first (White).
type Side int8

const (
	First Side = iota
	Second
)

var ErrInvalidSide = errors.New("invalid side")

func (s Side) Other() Side {
	if s == First {
		return Second
	}
	return First
}

func (s Side) Valid() bool {
	return s == First || s == Second
}

// Color maps the side onto the rules engine colour.
func (s Side) Color() chess.Color {
	if s == First {
		return chess.White
	}
	return chess.Black
}

func (s Side) String() string {
	switch s {
	case First:
		return "white"
	case Second:
		return "black"
	}
	return fmt.Sprintf("Side(%d)", int8(s))
}

// SideOf returns the side playing the given colour. NoColor maps to First.
func SideOf(c chess.Color) Side {
	if c == chess.Black {
		return Second
	}
	return First
}

// ParseSide accepts "white"/"black" (or "w"/"b", "first"/"second").
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w", "first":
		return First, nil
	case "black", "b", "second":
		return Second, nil
	}
	return First, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// Score is a material balance from a fixed side's point of view.
type Score int

const (
	MinScore Score = math.MinInt
	MaxScore Score = math.MaxInt
)

// ScoredMove is the result of a search: the best move, if any, and the
// score best play reaches within the depth budget.
type ScoredMove[M any] struct {
	Move  M
	Found bool
	Score Score
}
