package bots

import (
	"errors"
	"fmt"
)

const (
	DefaultDepth = 4
	MaxDepth     = 8
)

var ErrInvalidDepth = errors.New("invalid search depth")

// Config is fixed for the lifetime of a bot.
type Config struct {
	EngineSide Side
	Depth      int
}

func DefaultConfig() Config {
	return Config{
		EngineSide: Second,
		Depth:      DefaultDepth,
	}
}

func (c Config) Validate() error {
	if !c.EngineSide.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSide, c.EngineSide)
	}
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidDepth, c.Depth, MaxDepth)
	}
	return nil
}
