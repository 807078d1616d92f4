package main

import (
	"embed"
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// Render at 3x and scale down when drawing, for smooth edges.
const renderScale = 3.0

var pieceFiles = map[chess.PieceType]string{
	chess.King:   "assets/pieces/k.svg",
	chess.Queen:  "assets/pieces/q.svg",
	chess.Rook:   "assets/pieces/r.svg",
	chess.Bishop: "assets/pieces/b.svg",
	chess.Knight: "assets/pieces/n.svg",
	chess.Pawn:   "assets/pieces/p.svg",
}

// Цвета заливки и контура для белых и черных фигур.
var pieceColors = map[chess.Color][2]string{
	chess.White: {"#f8f8f8", "#202020"},
	chess.Black: {"#303030", "#101010"},
}

// loadPieceImages renders every piece sprite at size pixels. The SVG files
// are templates: FILL and STROKE are replaced with the piece colours.
func loadPieceImages(size int) (map[chess.Piece]*ebiten.Image, error) {
	pieces := make(map[chess.Piece]*ebiten.Image)
	renderSize := int(float64(size) * renderScale)

	for pt, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read piece asset %s: %w", path, err)
		}
		for color, colors := range pieceColors {
			svg := strings.NewReplacer("FILL", colors[0], "STROKE", colors[1]).Replace(string(data))
			icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
			if err != nil {
				return nil, fmt.Errorf("parse piece asset %s: %w", path, err)
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			pieces[pieceOf(pt, color)] = ebiten.NewImageFromImage(rgba)
		}
	}
	log.Debug().Int("sprites", len(pieces)).Int("size", size).Msg("piece sprites rendered")
	return pieces, nil
}

func pieceOf(pt chess.PieceType, c chess.Color) chess.Piece {
	for _, p := range allPieces {
		if p.Type() == pt && p.Color() == c {
			return p
		}
	}
	return chess.NoPiece
}

var allPieces = []chess.Piece{
	chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
	chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
}

// drawPiece draws a sprite with its top-left corner at (x, y).
func drawPiece(screen, sprite *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/renderScale, 1/renderScale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
