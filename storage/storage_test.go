package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/notnil/chess"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	s := openTestStorage(t)

	t.Run("EmptyStats", func(t *testing.T) {
		stats, err := s.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Games != 0 || len(stats.Players) != 0 {
			t.Errorf("Expected empty stats, got %+v", stats)
		}
	})

	t.Run("GameNotFound", func(t *testing.T) {
		if _, err := s.Game("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	saved := []GameRecord{
		{White: "minimax", Black: "newborn", Depth: 3, Outcome: WhiteWon, Method: "Checkmate", Plies: 31, Played: base},
		{White: "newborn", Black: "minimax", Depth: 3, Outcome: BlackWon, Method: "Checkmate", Plies: 40, Played: base.Add(time.Second)},
		{White: "minimax", Black: "greedy", Depth: 3, Outcome: Draw, Method: "Stalemate", Plies: 77, Played: base.Add(2 * time.Second)},
		{White: "greedy", Black: "minimax", Depth: 3, Outcome: NoResult, Plies: 200, Played: base.Add(3 * time.Second)},
	}

	t.Run("SaveGame", func(t *testing.T) {
		for i, game := range saved {
			got, err := s.SaveGame(game)
			if err != nil {
				t.Fatal(err)
			}
			if got.ID == "" {
				t.Fatalf("Expected an ID to be assigned")
			}
			saved[i] = got
		}
	})

	t.Run("Game", func(t *testing.T) {
		got, err := s.Game(saved[1].ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.White != "newborn" || got.Outcome != BlackWon || got.Plies != 40 || !got.Played.Equal(saved[1].Played) {
			t.Errorf("Unexpected game %+v", got)
		}
	})

	t.Run("Games", func(t *testing.T) {
		games, err := s.Games()
		if err != nil {
			t.Fatal(err)
		}
		if len(games) != len(saved) {
			t.Fatalf("Expected %d games, got %d", len(saved), len(games))
		}
		for i := range games {
			if games[i].ID != saved[i].ID {
				t.Errorf("Game %d: expected %s, got %s", i, saved[i].ID, games[i].ID)
			}
		}
	})

	t.Run("Stats", func(t *testing.T) {
		stats, err := s.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Games != 3 {
			t.Fatalf("Expected 3 finished games, got %d", stats.Games)
		}
		minimax := stats.Players["minimax"]
		if minimax == nil || minimax.Games != 3 || minimax.Wins != 2 || minimax.Draws != 1 || minimax.Losses != 0 {
			t.Fatalf("Unexpected minimax stats %+v", minimax)
		}
		if got := minimax.Score(); got != 2.5/3 {
			t.Errorf("Expected score %.3f, got %.3f", 2.5/3, got)
		}
		newborn := stats.Players["newborn"]
		if newborn == nil || newborn.Losses != 2 {
			t.Fatalf("Unexpected newborn stats %+v", newborn)
		}
	})
}

func TestSaveGameConcurrent(t *testing.T) {
	s := openTestStorage(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SaveGame(GameRecord{White: "a", Black: "b", Outcome: WhiteWon})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Games != 16 || stats.Players["a"].Wins != 16 {
		t.Fatalf("Expected 16 wins for a, got %+v", stats.Players["a"])
	}
	games, err := s.Games()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 16 {
		t.Fatalf("Expected 16 games, got %d", len(games))
	}
}

func TestNewGameRecord(t *testing.T) {
	game := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := game.MoveStr(m); err != nil {
			t.Fatalf("Move %s: %v", m, err)
		}
	}

	rec := NewGameRecord(game, "human", "minimax", 4)
	if rec.Outcome != BlackWon {
		t.Errorf("Expected %s, got %s", BlackWon, rec.Outcome)
	}
	if rec.Method != chess.Checkmate.String() {
		t.Errorf("Expected checkmate, got %q", rec.Method)
	}
	if rec.Plies != 4 || rec.White != "human" || rec.Black != "minimax" || rec.Depth != 4 {
		t.Errorf("Unexpected record %+v", rec)
	}
	if rec.PGN == "" {
		t.Errorf("Expected PGN text")
	}

	fresh := NewGameRecord(chess.NewGame(), "a", "b", 1)
	if fresh.Outcome != NoResult || fresh.Method != "" || fresh.Plies != 0 {
		t.Errorf("Unexpected record for a new game %+v", fresh)
	}
}
