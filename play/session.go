// Package play runs a game between humans and bots: turn order, move
// application, and saving the finished game.
package play

import (
	"errors"
	"fmt"
	"sync"

	"chessbot/bots"
	"chessbot/storage"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrIllegalMove  = errors.New("illegal move")
	ErrBotThinking  = errors.New("bot is already thinking")
	ErrNotBotToMove = errors.New("side to move is not a bot")
)

// Seat is one player. A nil Bot is a human.
type Seat struct {
	Name string
	Bot  bots.ChessBot
}

// Recorder persists finished games.
type Recorder interface {
	SaveGame(game storage.GameRecord) (storage.GameRecord, error)
}

// Snapshot is a consistent view of a session for drawing.
type Snapshot struct {
	Position  *chess.Position
	LastMove  *chess.Move
	Outcome   chess.Outcome
	Method    chess.Method
	Over      bool
	Thinking  bool
	HumanTurn bool
}

// Session is safe for concurrent use: the GUI reads it every frame while a
// goroutine computes the bot move.
type Session struct {
	mu        sync.Mutex
	game      *chess.Game
	seats     [2]Seat
	depth     int
	recorder  Recorder
	thinking  bool
	concluded bool
	saved     bool
}

// NewSession starts a game from the standard position. depth is only
// stored in the game record; recorder may be nil.
func NewSession(white, black Seat, depth int, recorder Recorder) *Session {
	return NewSessionFrom(chess.NewGame(), white, black, depth, recorder)
}

// NewSessionFrom continues an existing game.
func NewSessionFrom(game *chess.Game, white, black Seat, depth int, recorder Recorder) *Session {
	return &Session{
		game:     game,
		seats:    [2]Seat{bots.First: white, bots.Second: black},
		depth:    depth,
		recorder: recorder,
	}
}

func (s *Session) seatToMove() Seat {
	return s.seats[bots.SideOf(s.game.Position().Turn())]
}

func (s *Session) over() bool {
	return s.concluded || s.game.Outcome() != chess.NoOutcome
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Position:  s.game.Position(),
		Outcome:   s.game.Outcome(),
		Method:    s.game.Method(),
		Over:      s.over(),
		Thinking:  s.thinking,
		HumanTurn: s.seatToMove().Bot == nil,
	}
	if moves := s.game.Moves(); len(moves) > 0 {
		snap.LastMove = moves[len(moves)-1]
	}
	return snap
}

// Over reports whether the game ended, by rule or because a bot had no move.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over()
}

// BotToMove reports whether a bot should be asked for the next move.
func (s *Session) BotToMove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.over() && !s.thinking && s.seatToMove().Bot != nil
}

// HumanMove plays from→to for the human to move. Promotions become queens.
func (s *Session) HumanMove(from, to chess.Square) (*chess.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over() {
		return nil, ErrGameOver
	}
	if s.thinking || s.seatToMove().Bot != nil {
		return nil, ErrNotYourTurn
	}
	pos := s.game.Position()
	move := FindMove(pos, from, to)
	if move == nil {
		return nil, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}

	log.Info().Str("board", pos.String()).Msg("board")
	if err := s.game.Move(move); err != nil {
		return nil, err
	}
	log.Info().Str("player", s.seats[bots.SideOf(pos.Turn())].Name).Str("move", move.String()).Msg("player move")
	s.finish()
	return move, nil
}

// PlayBotMove asks the bot to move for the side to move and plays its
// answer. It blocks for the whole search; the lock is not held meanwhile.
// A bot without a move concludes the game and PlayBotMove returns nil.
func (s *Session) PlayBotMove() (*chess.Move, error) {
	s.mu.Lock()
	if s.over() {
		s.mu.Unlock()
		return nil, ErrGameOver
	}
	if s.thinking {
		s.mu.Unlock()
		return nil, ErrBotThinking
	}
	seat := s.seatToMove()
	if seat.Bot == nil {
		s.mu.Unlock()
		return nil, ErrNotBotToMove
	}
	s.thinking = true
	pos := s.game.Position()
	s.mu.Unlock()

	move, err := seat.Bot.BestMove(pos)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinking = false
	if err != nil {
		return nil, fmt.Errorf("%s: %w", seat.Name, err)
	}
	if move == nil {
		log.Info().
			Str("bot", seat.Name).
			Str("outcome", string(s.game.Outcome())).
			Str("method", s.game.Method().String()).
			Msg("engine has no move")
		s.concluded = true
		s.finish()
		return nil, nil
	}
	if err := s.game.Move(move); err != nil {
		return nil, fmt.Errorf("%s played %s: %w", seat.Name, move, err)
	}
	log.Info().Str("bot", seat.Name).Str("move", move.String()).Msg("engine move")
	s.finish()
	return move, nil
}

// Conclude ends an unfinished game (for example on a ply limit) and saves
// it with no result.
func (s *Session) Conclude() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concluded = true
	s.finish()
}

// Record returns the game as it would be saved.
func (s *Session) Record() storage.GameRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record()
}

func (s *Session) record() storage.GameRecord {
	return storage.NewGameRecord(s.game, s.seats[bots.First].Name, s.seats[bots.Second].Name, s.depth)
}

// finish saves the game once it is over. Called with mu held.
func (s *Session) finish() {
	if !s.over() || s.saved {
		return
	}
	s.saved = true
	rec := s.record()
	log.Info().
		Str("white", rec.White).
		Str("black", rec.Black).
		Str("outcome", rec.Outcome).
		Str("method", rec.Method).
		Int("plies", rec.Plies).
		Msg("game over")
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.SaveGame(rec); err != nil {
		log.Error().Err(err).Msg("failed to save game")
	}
}
