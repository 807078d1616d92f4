package main

import (
	"errors"
	"image/color"
	"sync"

	"chessbot/bots"
	"chessbot/play"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

const (
	squareSize = 80
	margin     = 40
	btnWidth   = 200
	btnHeight  = 60

	screenWidth  = squareSize*8 + 2*margin
	screenHeight = squareSize*8 + 2*margin
)

var (
	lightColor    = color.RGBA{240, 217, 181, 255} // светлые клетки
	darkColor     = color.RGBA{181, 136, 99, 255}  // темные клетки
	selectedColor = color.RGBA{0, 160, 0, 128}
	targetColor   = color.RGBA{255, 255, 0, 128}
	lastMoveColor = color.RGBA{120, 160, 255, 96}
)

type Game struct {
	cfg      options
	recorder play.Recorder

	session     *play.Session
	layout      play.Layout
	playerColor chess.Color
	pieces      map[chess.Piece]*ebiten.Image
	tiles       map[color.RGBA]*ebiten.Image
	whiteBtn    *ebiten.Image
	blackBtn    *ebiten.Image

	selected     chess.Square
	dragging     *chess.Piece
	dragX, dragY int

	errMu   sync.Mutex
	lastErr error
}

func NewGame(cfg options, recorder play.Recorder) (*Game, error) {
	pieces, err := loadPieceImages(squareSize)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		recorder: recorder,
		pieces:   pieces,
		tiles:    make(map[color.RGBA]*ebiten.Image),
		layout:   play.Layout{SquareSize: squareSize, OffsetX: margin, OffsetY: margin},
		selected: chess.NoSquare,
	}
	for _, c := range []color.RGBA{lightColor, darkColor, selectedColor, targetColor, lastMoveColor} {
		tile := ebiten.NewImage(squareSize, squareSize)
		tile.Fill(c)
		g.tiles[c] = tile
	}

	// Кнопки выбора цвета
	g.whiteBtn = ebiten.NewImage(btnWidth, btnHeight)
	g.whiteBtn.Fill(color.RGBA{200, 200, 200, 255})
	ebitenutil.DebugPrintAt(g.whiteBtn, "Play White", 65, 22)
	g.blackBtn = ebiten.NewImage(btnWidth, btnHeight)
	g.blackBtn.Fill(color.RGBA{50, 50, 50, 255})
	ebitenutil.DebugPrintAt(g.blackBtn, "Play Black", 65, 22)
	return g, nil
}

func (g *Game) startGame(playerColor chess.Color) error {
	engineSide := bots.SideOf(playerColor).Other()
	bot, err := bots.NewBot(g.cfg.bot, bots.Config{EngineSide: engineSide, Depth: g.cfg.depth})
	if err != nil {
		return err
	}
	human := play.Seat{Name: g.cfg.player}
	engine := play.Seat{Name: g.cfg.bot, Bot: bot}
	white, black := human, engine
	if playerColor == chess.Black {
		white, black = engine, human
	}

	g.playerColor = playerColor
	g.layout.Flipped = playerColor == chess.Black
	g.session = play.NewSession(white, black, g.cfg.depth, g.recorder)
	g.selected = chess.NoSquare
	g.dragging = nil
	g.setErr(nil)
	log.Info().Str("player", playerColor.Name()).Str("bot", bot.Name()).Msg("game started")
	return nil
}

// makeBotMove runs the search off the game loop; Update keeps drawing
// while it thinks.
func (g *Game) makeBotMove(session *play.Session) {
	_, err := session.PlayBotMove()
	switch {
	case err == nil:
	case errors.Is(err, play.ErrGameOver), errors.Is(err, play.ErrBotThinking), errors.Is(err, play.ErrNotBotToMove):
		// другой кадр уже запустил бота
	default:
		log.Error().Err(err).Msg("bot move failed")
		g.setErr(err)
	}
}

func (g *Game) setErr(err error) {
	g.errMu.Lock()
	g.lastErr = err
	g.errMu.Unlock()
}

func (g *Game) err() error {
	g.errMu.Lock()
	defer g.errMu.Unlock()
	return g.lastErr
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.session == nil {
		return g.updateColorChoice()
	}

	if g.session.Over() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.session = nil
		}
		return nil
	}

	if g.session.BotToMove() {
		go g.makeBotMove(g.session)
		return nil
	}

	snap := g.session.Snapshot()
	if !snap.HumanTurn || snap.Thinking {
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if sq, err := g.layout.SquareAt(x, y); err == nil {
			piece := snap.Position.Board().Piece(sq)
			if piece != chess.NoPiece && piece.Color() == g.playerColor {
				g.selected = sq
				g.dragging = &piece
			}
		}
	}

	if g.dragging != nil {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
		if target, err := g.layout.SquareAt(ebiten.CursorPosition()); err == nil && target != g.selected {
			if _, err := g.session.HumanMove(g.selected, target); err != nil {
				log.Debug().Err(err).Msg("move rejected")
			}
		}
		g.selected = chess.NoSquare
		g.dragging = nil
	}

	return nil
}

func (g *Game) updateColorChoice() error {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	x, y := ebiten.CursorPosition()
	btnY := screenHeight/2 + 40
	if y < btnY || y > btnY+btnHeight {
		return nil
	}
	switch {
	case x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20:
		return g.startGame(chess.White)
	case x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth:
		return g.startGame(chess.Black)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.session == nil {
		// Экран выбора цвета
		ebitenutil.DebugPrintAt(screen, "Chess vs "+g.cfg.bot, screenWidth/2-50, screenHeight/2-60)
		ebitenutil.DebugPrintAt(screen, "Choose your colour:", screenWidth/2-60, screenHeight/2-20)
		g.drawAt(screen, g.whiteBtn, screenWidth/2-btnWidth-20, screenHeight/2+40)
		g.drawAt(screen, g.blackBtn, screenWidth/2+20, screenHeight/2+40)
		return
	}

	snap := g.session.Snapshot()

	// Рисуем доску
	for _, sq := range bots.AllSquares() {
		x, y := g.layout.Origin(sq)
		tile := g.tiles[lightColor]
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			tile = g.tiles[darkColor]
		}
		g.drawAt(screen, tile, x, y)
	}
	if snap.LastMove != nil {
		for _, sq := range []chess.Square{snap.LastMove.S1(), snap.LastMove.S2()} {
			x, y := g.layout.Origin(sq)
			g.drawAt(screen, g.tiles[lastMoveColor], x, y)
		}
	}
	if g.dragging != nil {
		x, y := g.layout.Origin(g.selected)
		g.drawAt(screen, g.tiles[selectedColor], x, y)
		for _, m := range snap.Position.ValidMoves() {
			if m.S1() == g.selected {
				x, y := g.layout.Origin(m.S2())
				g.drawAt(screen, g.tiles[targetColor], x, y)
			}
		}
	}

	// Рисуем фигуры
	board := snap.Position.Board()
	for _, sq := range bots.AllSquares() {
		piece := board.Piece(sq)
		if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
			continue
		}
		if img := g.pieces[piece]; img != nil {
			x, y := g.layout.Origin(sq)
			drawPiece(screen, img, float64(x), float64(y))
		}
	}

	// Рисуем перетаскиваемую фигуру
	if g.dragging != nil {
		if img := g.pieces[*g.dragging]; img != nil {
			drawPiece(screen, img, float64(g.dragX)-squareSize/2, float64(g.dragY)-squareSize/2)
		}
	}

	g.drawCoordinates(screen)

	// Статус игры
	status := "Your move"
	switch {
	case snap.Over:
		status = "Game over: " + string(snap.Outcome)
		if snap.Method != chess.NoMethod {
			status += " (" + snap.Method.String() + ")"
		}
		status += ". Press R for a new game"
	case snap.Thinking:
		status = "Bot is thinking..."
	case !snap.HumanTurn:
		status = "Bot to move"
	}
	ebitenutil.DebugPrintAt(screen, status, margin, 12)
	if err := g.err(); err != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+err.Error(), margin, screenHeight-24)
	}
}

func (g *Game) drawCoordinates(screen *ebiten.Image) {
	for i := 0; i < 8; i++ {
		file, _ := bots.SquareAt(i, 0)
		x, _ := g.layout.Origin(file)
		ebitenutil.DebugPrintAt(screen, file.File().String(), x+squareSize/2-3, margin+8*squareSize+4)

		rank, _ := bots.SquareAt(0, i)
		_, y := g.layout.Origin(rank)
		ebitenutil.DebugPrintAt(screen, rank.Rank().String(), margin+8*squareSize+14, y+squareSize/2-8)
	}
}

func (g *Game) drawAt(screen, img *ebiten.Image, x, y int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
