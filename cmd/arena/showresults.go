package main

import (
	"math"

	"chessbot/storage"

	"github.com/rs/zerolog/log"
)

type matchScore struct {
	wins, losses, draws, unfinished int
}

func (s matchScore) games() int {
	return s.wins + s.losses + s.draws
}

// add counts one game from the point of view of player.
func (s *matchScore) add(record storage.GameRecord, player string) {
	switch {
	case record.Outcome == storage.Draw:
		s.draws++
	case record.Outcome == storage.WhiteWon && record.White == player,
		record.Outcome == storage.BlackWon && record.Black == player:
		s.wins++
	case record.Outcome == storage.WhiteWon, record.Outcome == storage.BlackWon:
		s.losses++
	default:
		s.unfinished++
	}
}

func showResults(gameResults <-chan gameResult, player string) matchScore {
	var score matchScore
	for res := range gameResults {
		score.add(res.record, player)
		log.Info().
			Int("game", res.gameInfo.gameNumber).
			Str("white", res.record.White).
			Str("black", res.record.Black).
			Str("outcome", res.record.Outcome).
			Str("method", res.record.Method).
			Int("plies", res.record.Plies).
			Msg("finished game")
		stat := computeStat(score.wins, score.losses, score.draws)
		log.Info().
			Int("wins", score.wins).
			Int("losses", score.losses).
			Int("draws", score.draws).
			Int("unfinished", score.unfinished).
			Float64("fraction", stat.winningFraction).
			Float64("elo", stat.eloDifference).
			Float64("los", stat.los).
			Msg("score")
	}
	return score
}

type gameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) gameStatistics {
	var stat gameStatistics
	games := wins + losses + draws
	if games == 0 {
		return stat
	}
	stat.winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	switch stat.winningFraction {
	case 0:
		stat.eloDifference = math.Inf(-1)
	case 1:
		stat.eloDifference = math.Inf(1)
	default:
		stat.eloDifference = -math.Log(1/stat.winningFraction-1) * 400 / math.Ln10
	}
	stat.los = 0.5
	if wins+losses > 0 {
		stat.los += 0.5 * math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return stat
}
