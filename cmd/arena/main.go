// Command arena plays bots against each other and records the games.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"chessbot/bots"
	"chessbot/play"
	"chessbot/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	White       string
	Black       string
	Games       int
	Depth       int
	Concurrency int
	MaxPlies    int
	DBDir       string
	NoSave      bool
	LogLevel    string
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("arena")
	}
}

func run() error {
	var config Config
	flag.StringVar(&config.White, "white", "minimax", "bot A, white in odd games")
	flag.StringVar(&config.Black, "black", "greedy", "bot B, black in odd games")
	flag.IntVar(&config.Games, "games", 2, "number of games")
	flag.IntVar(&config.Depth, "depth", 3, "search depth in plies")
	flag.IntVar(&config.Concurrency, "concurrency", 2, "games played at once")
	flag.IntVar(&config.MaxPlies, "maxplies", 200, "plies before a game is stopped unfinished (0: no limit)")
	flag.StringVar(&config.DBDir, "db", "", "game database directory (default: user data dir)")
	flag.BoolVar(&config.NoSave, "nosave", false, "do not record games")
	flag.StringVar(&config.LogLevel, "log-level", "info", "log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if config.Games < 0 || config.Concurrency < 1 || config.MaxPlies < 0 {
		return fmt.Errorf("invalid arena settings %+v", config)
	}
	for _, name := range []string{config.White, config.Black} {
		if _, err := bots.NewBot(name, bots.Config{EngineSide: bots.First, Depth: config.Depth}); err != nil {
			return err
		}
	}
	log.Info().Interface("config", config).Msg("arena")

	var db *storage.Storage
	var recorder play.Recorder
	if !config.NoSave {
		dir := config.DBDir
		if dir == "" {
			if dir, err = storage.DefaultDir(); err != nil {
				return err
			}
		}
		if db, err = storage.Open(dir); err != nil {
			return fmt.Errorf("open game database: %w", err)
		}
		defer db.Close()
		recorder = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &arena{
		botA:        config.White,
		botB:        config.Black,
		depth:       config.Depth,
		games:       config.Games,
		concurrency: config.Concurrency,
		maxPlies:    config.MaxPlies,
		recorder:    recorder,
	}
	score, err := a.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("bot", a.playerA()).
		Int("games", score.games()).
		Int("wins", score.wins).
		Int("losses", score.losses).
		Int("draws", score.draws).
		Msg("match result")

	if db != nil {
		stats, err := db.Stats()
		if err != nil {
			return err
		}
		for _, name := range []string{a.playerA(), a.playerB()} {
			if p, ok := stats.Players[name]; ok {
				log.Info().
					Str("player", name).
					Int("games", p.Games).
					Int("wins", p.Wins).
					Int("losses", p.Losses).
					Int("draws", p.Draws).
					Float64("score", p.Score()).
					Msg("all-time stats")
			}
		}
	}
	return nil
}
