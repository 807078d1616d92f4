package bots

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func isLegal(pos *chess.Position, move *chess.Move) bool {
	for _, m := range pos.ValidMoves() {
		if m.String() == move.String() {
			return true
		}
	}
	return false
}

func TestChooseMoveDepthZero(t *testing.T) {
	pos := positionFromFEN(t, startFEN)
	for _, side := range []Side{First, Second} {
		s := newChessSearcher(side)
		got, err := s.Search(pos, 0, MinScore, MaxScore, side)
		if err != nil {
			t.Fatal(err)
		}
		if got.Found || got.Score != 0 {
			t.Fatalf("side %v: expected no move and score 0, got %+v", side, got)
		}
	}

	move, err := NewMinimaxBot(Config{EngineSide: First, Depth: 0}).ChooseMove(pos)
	if err != nil {
		t.Fatal(err)
	}
	if move != nil {
		t.Fatalf("expected no move at depth 0, got %s", move)
	}
}

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	for _, test := range []struct {
		fen  string
		side Side
	}{
		{startFEN, First},
		{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", Second},
		{"4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", First},
		{"4k3/8/8/3q4/8/8/3R4/4K3 b - - 0 1", Second},
		{"8/5k2/8/8/8/8/1P3K2/8 w - - 0 1", First},
	} {
		pos := positionFromFEN(t, test.fen)
		for depth := 1; depth <= 3; depth++ {
			move, err := NewMinimaxBot(Config{EngineSide: test.side, Depth: depth}).ChooseMove(pos)
			if err != nil {
				t.Fatal(err)
			}
			if move == nil {
				t.Fatalf("%s depth %d: expected a move", test.fen, depth)
			}
			if !isLegal(pos, move) {
				t.Fatalf("%s depth %d: %s is not legal", test.fen, depth, move)
			}
		}
	}
}

func TestChooseMoveSingleLegalMove(t *testing.T) {
	// The white king is checked by an undefended queen it must take.
	pos := positionFromFEN(t, "k7/8/8/8/8/8/1q6/K7 w - - 0 1")
	if n := len(pos.ValidMoves()); n != 1 {
		t.Fatalf("expected exactly one legal move, got %d", n)
	}
	move, err := NewMinimaxBot(Config{EngineSide: First, Depth: 1}).ChooseMove(pos)
	if err != nil {
		t.Fatal(err)
	}
	if move == nil || move.String() != "a1b2" {
		t.Fatalf("expected a1b2, got %v", move)
	}
}

func TestChooseMoveNoLegalMove(t *testing.T) {
	// Back rank mate: black to move has nothing.
	pos := positionFromFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	move, err := NewMinimaxBot(Config{EngineSide: Second, Depth: 3}).ChooseMove(pos)
	if err != nil {
		t.Fatal(err)
	}
	if move != nil {
		t.Fatalf("expected no move, got %s", move)
	}

	s := newChessSearcher(Second)
	got, err := s.Search(pos, 2, MinScore, MaxScore, Second)
	if err != nil {
		t.Fatal(err)
	}
	if got.Found || got.Score != MinScore {
		t.Fatalf("expected no move and MinScore, got %+v", got)
	}

	s = newChessSearcher(First)
	got, err = s.Search(pos, 2, MinScore, MaxScore, Second)
	if err != nil {
		t.Fatal(err)
	}
	if got.Found || got.Score != MaxScore {
		t.Fatalf("expected no move and MaxScore for the opponent node, got %+v", got)
	}
}

func TestChooseMoveMateInOne(t *testing.T) {
	for _, test := range []struct {
		fen  string
		side Side
		want string
	}{
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", First, "a1a8"},
		{"r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", Second, "a8a1"},
	} {
		pos := positionFromFEN(t, test.fen)
		for depth := 2; depth <= 3; depth++ {
			s := newChessSearcher(test.side)
			got, err := s.Search(pos, depth, MinScore, MaxScore, test.side)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Found || got.Move.String() != test.want {
				t.Fatalf("%s depth %d: expected %s, got %+v", test.fen, depth, test.want, got)
			}
			if got.Score != MaxScore {
				t.Fatalf("%s depth %d: expected MaxScore, got %d", test.fen, depth, got.Score)
			}
		}
	}
}

func TestChooseMoveWinsMaterial(t *testing.T) {
	// The rook takes the undefended queen.
	pos := positionFromFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	for _, bot := range []ChessBot{
		NewMinimaxBot(Config{EngineSide: First, Depth: 2}),
		NewExhaustiveBot(Config{EngineSide: First, Depth: 2}),
		NewGreedyBot(First),
	} {
		move, err := bot.BestMove(pos)
		if err != nil {
			t.Fatal(err)
		}
		if move == nil || move.String() != "d2d5" {
			t.Fatalf("%s: expected d2d5, got %v", bot.Name(), move)
		}
	}
}

func TestSearchMatchesMinimaxOnChess(t *testing.T) {
	for _, fen := range []string{
		"4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1",
		"4k3/3p4/8/8/2B5/8/4P3/4K3 w - - 0 1",
		"r3k3/8/8/8/8/8/8/4K2R b - - 0 1",
	} {
		pos := positionFromFEN(t, fen)
		side := SideOf(pos.Turn())
		for depth := 1; depth <= 3; depth++ {
			s := newChessSearcher(side)
			got, err := s.Search(pos, depth, MinScore, MaxScore, side)
			if err != nil {
				t.Fatal(err)
			}
			pruned := s.Stats()
			s.ResetStats()
			ref, err := s.Minimax(pos, depth, side)
			if err != nil {
				t.Fatal(err)
			}
			if got.Score != ref.Score {
				t.Fatalf("%s depth %d: search scores %d, minimax %d", fen, depth, got.Score, ref.Score)
			}
			if pruned.Nodes > s.Stats().Nodes {
				t.Fatalf("%s depth %d: pruning visited more nodes (%d > %d)", fen, depth, pruned.Nodes, s.Stats().Nodes)
			}
		}
	}
}

func TestChooseMoveDeterministic(t *testing.T) {
	pos := positionFromFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	bot := NewMinimaxBot(Config{EngineSide: First, Depth: 3})
	first, err := bot.ChooseMove(pos)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := bot.ChooseMove(pos)
		if err != nil {
			t.Fatal(err)
		}
		if again.String() != first.String() {
			t.Fatalf("run %d chose %s, first run chose %s", i, again, first)
		}
	}
}

func TestChooseMoveNilPosition(t *testing.T) {
	_, err := NewMinimaxBot(DefaultConfig()).ChooseMove(nil)
	if !errors.Is(err, ErrNilPosition) {
		t.Fatalf("expected ErrNilPosition, got %v", err)
	}
}

func TestNewbornBotPlaysFirstMove(t *testing.T) {
	pos := positionFromFEN(t, startFEN)
	move, err := NewNewbornBot().BestMove(pos)
	if err != nil {
		t.Fatal(err)
	}
	if move.String() != pos.ValidMoves()[0].String() {
		t.Fatalf("expected %s, got %s", pos.ValidMoves()[0], move)
	}

	mated := positionFromFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if move, err := NewNewbornBot().BestMove(mated); err != nil || move != nil {
		t.Fatalf("expected no move, got %v, %v", move, err)
	}
}

func TestNewBot(t *testing.T) {
	for _, name := range BotNames() {
		bot, err := NewBot(name, DefaultConfig())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if bot.Name() == "" {
			t.Fatalf("%s: empty name", name)
		}
	}

	if _, err := NewBot("stockfish", DefaultConfig()); !errors.Is(err, ErrUnknownBot) {
		t.Fatalf("expected ErrUnknownBot, got %v", err)
	}
	if _, err := NewBot("minimax", Config{EngineSide: First, Depth: MaxDepth + 1}); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
	if _, err := NewBot("minimax", Config{EngineSide: Side(5), Depth: 2}); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}
