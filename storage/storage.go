// Package storage keeps finished games and per-bot results in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	gamePrefix = "game/"
	keyStats   = "stats"
)

var ErrNotFound = errors.New("not found")

// Result of a game from White's point of view, in PGN notation.
const (
	WhiteWon = "1-0"
	BlackWon = "0-1"
	Draw     = "1/2-1/2"
	NoResult = "*"
)

// GameRecord is one finished (or abandoned) game.
type GameRecord struct {
	ID      string    `json:"id"`
	White   string    `json:"white"`
	Black   string    `json:"black"`
	Depth   int       `json:"depth"`
	Outcome string    `json:"outcome"`
	Method  string    `json:"method"`
	Plies   int       `json:"plies"`
	PGN     string    `json:"pgn"`
	Played  time.Time `json:"played"`
}

// PlayerStats tallies results for one player name.
type PlayerStats struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Score returns points per game: a win is 1, a draw 0.5.
func (p PlayerStats) Score() float64 {
	if p.Games == 0 {
		return 0
	}
	return (float64(p.Wins) + float64(p.Draws)/2) / float64(p.Games)
}

type Stats struct {
	Games   int                     `json:"games"`
	Players map[string]*PlayerStats `json:"players"`
}

func NewStats() *Stats {
	return &Stats{Players: make(map[string]*PlayerStats)}
}

func (s *Stats) player(name string) *PlayerStats {
	p, ok := s.Players[name]
	if !ok {
		p = &PlayerStats{}
		s.Players[name] = p
	}
	return p
}

// Record adds one game result. Unfinished games are ignored.
func (s *Stats) Record(game GameRecord) {
	if game.Outcome == NoResult || game.Outcome == "" {
		return
	}
	s.Games++
	white, black := s.player(game.White), s.player(game.Black)
	white.Games++
	black.Games++
	switch game.Outcome {
	case WhiteWon:
		white.Wins++
		black.Losses++
	case BlackWon:
		black.Wins++
		white.Losses++
	default:
		white.Draws++
		black.Draws++
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB

	// mu serializes SaveGame: every save rewrites the stats key and
	// concurrent writers would fail with badger.ErrConflict.
	mu  sync.Mutex
	seq uint64
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open game database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) newID(played time.Time) string {
	s.seq++
	return fmt.Sprintf("%020d-%06d", played.UnixNano(), s.seq)
}

// SaveGame stores the game and folds its result into the stats in the same
// transaction. An empty ID and zero Played time are filled in.
func (s *Storage) SaveGame(game GameRecord) (GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if game.Played.IsZero() {
		game.Played = time.Now()
	}
	if game.ID == "" {
		game.ID = s.newID(game.Played)
	}
	data, err := json.Marshal(game)
	if err != nil {
		return game, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.Record(game)
		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(gamePrefix+game.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
	return game, err
}

// Game loads one game by ID.
func (s *Storage) Game(id string) (GameRecord, error) {
	var game GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("game %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &game)
		})
	})
	return game, err
}

// Games returns every stored game, oldest first.
func (s *Storage) Games() ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if !strings.HasPrefix(string(item.Key()), gamePrefix) {
				continue
			}
			var game GameRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &game)
			}); err != nil {
				return err
			}
			games = append(games, game)
		}
		return nil
	})
	return games, err
}

// Stats loads the result tallies, empty if nothing was saved yet.
func (s *Storage) Stats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := NewStats()
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	if stats.Players == nil {
		stats.Players = make(map[string]*PlayerStats)
	}
	return stats, err
}
