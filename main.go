package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chessbot/bots"
	"chessbot/play"
	"chessbot/storage"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	bot      string
	depth    int
	player   string
	side     string
	dbDir    string
	noSave   bool
	logLevel string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.bot, "bot", "minimax", "bot to play against: "+strings.Join(bots.BotNames(), ", "))
	flag.IntVar(&o.depth, "depth", bots.DefaultDepth, "search depth in plies")
	flag.StringVar(&o.player, "name", "human", "player name in the game records")
	flag.StringVar(&o.side, "side", "", "side the bot plays, white or black (default: ask)")
	flag.StringVar(&o.dbDir, "db", "", "game database directory (default: user data dir)")
	flag.BoolVar(&o.noSave, "nosave", false, "do not record games")
	flag.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()
	return o
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func openStorage(o options) (*storage.Storage, error) {
	dir := o.dbDir
	if dir == "" {
		var err error
		if dir, err = storage.DefaultDir(); err != nil {
			return nil, err
		}
	}
	return storage.Open(dir)
}

func run(o options) error {
	if err := setupLogging(o.logLevel); err != nil {
		return err
	}
	// Проверяем бота до открытия окна
	if _, err := bots.NewBot(o.bot, bots.Config{EngineSide: bots.Second, Depth: o.depth}); err != nil {
		return err
	}

	var recorder play.Recorder
	if !o.noSave {
		db, err := openStorage(o)
		if err != nil {
			return fmt.Errorf("open game database: %w", err)
		}
		defer db.Close()
		recorder = db
		if stats, err := db.Stats(); err == nil {
			log.Info().Int("games", stats.Games).Msg("game database opened")
		}
	}

	game, err := NewGame(o, recorder)
	if err != nil {
		return err
	}
	if o.side != "" {
		side, err := bots.ParseSide(o.side)
		if err != nil {
			return err
		}
		if err := game.startGame(side.Other().Color()); err != nil {
			return err
		}
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Шахматы на Go")
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatal().Err(err).Msg("chessbot")
	}
}
