package main

import (
	"context"
	"runtime"
	"sync"

	"chessbot/bots"
	"chessbot/play"
	"chessbot/storage"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type arena struct {
	botA, botB  string
	depth       int
	games       int
	concurrency int
	maxPlies    int
	recorder    play.Recorder
}

type gameInfo struct {
	gameNumber     int
	engineAIsWhite bool
}

type gameResult struct {
	gameInfo gameInfo
	record   storage.GameRecord
}

// Run plays all games and returns the match score of bot A.
func (a *arena) Run(ctx context.Context) (matchScore, error) {
	log.Info().
		Int("numCPU", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("concurrency", a.concurrency).
		Msg("arena started")
	defer log.Info().Msg("arena finished")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var score matchScore

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < a.games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- gameInfo{gameNumber: i + 1, engineAIsWhite: i%2 == 0}:
			}
		}
		return nil
	})

	g.Go(func() error {
		score = showResults(gameResults, a.playerA())
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < a.concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return a.playGames(ctx, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	err := g.Wait()
	return score, err
}

// Players are named after their bots; a mirror match gets suffixes so the
// stored statistics keep them apart.
func (a *arena) playerA() string {
	if a.botA == a.botB {
		return a.botA + "-A"
	}
	return a.botA
}

func (a *arena) playerB() string {
	if a.botA == a.botB {
		return a.botB + "-B"
	}
	return a.botB
}

func (a *arena) playGames(ctx context.Context, gameInfos <-chan gameInfo, gameResults chan<- gameResult) error {
	for info := range gameInfos {
		record, err := a.playGame(ctx, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- gameResult{gameInfo: info, record: record}:
		}
	}
	return nil
}

func (a *arena) playGame(ctx context.Context, info gameInfo) (storage.GameRecord, error) {
	whiteBot, blackBot := a.botA, a.botB
	whiteName, blackName := a.playerA(), a.playerB()
	if !info.engineAIsWhite {
		whiteBot, blackBot = blackBot, whiteBot
		whiteName, blackName = blackName, whiteName
	}
	white, err := bots.NewBot(whiteBot, bots.Config{EngineSide: bots.First, Depth: a.depth})
	if err != nil {
		return storage.GameRecord{}, err
	}
	black, err := bots.NewBot(blackBot, bots.Config{EngineSide: bots.Second, Depth: a.depth})
	if err != nil {
		return storage.GameRecord{}, err
	}

	session := play.NewSession(
		play.Seat{Name: whiteName, Bot: white},
		play.Seat{Name: blackName, Bot: black},
		a.depth, a.recorder)
	for plies := 0; !session.Over(); plies++ {
		if err := ctx.Err(); err != nil {
			return storage.GameRecord{}, err
		}
		if a.maxPlies > 0 && plies >= a.maxPlies {
			session.Conclude()
			break
		}
		if _, err := session.PlayBotMove(); err != nil {
			return storage.GameRecord{}, err
		}
	}
	return session.Record(), nil
}
