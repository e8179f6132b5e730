package gui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/sprite"
)

const (
	shotLength = 10
	shotWidth  = 2
	lineWidth  = 2
	textScale  = 2
)

var (
	background  = color.RGBA{R: 0, G: 0, B: 16, A: 255}
	playerColor = color.RGBA{R: 80, G: 255, B: 80, A: 255}
	playerShot  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	enemyShot   = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	textColor   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// ShipColor returns the fill colour for an invader type.
func ShipColor(t object.ShipType) color.RGBA {
	switch t {
	case object.Satellite:
		return color.RGBA{R: 255, G: 90, B: 220, A: 255}
	case object.Bug:
		return color.RGBA{R: 90, G: 220, B: 255, A: 255}
	case object.Saucer:
		return color.RGBA{R: 255, G: 200, B: 60, A: 255}
	case object.Spaceship:
		return color.RGBA{R: 160, G: 120, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 140, A: 255}
	}
}

// starColor maps a brightness level to a grey.
func starColor(brightness int) color.RGBA {
	levels := object.StarBrightnessLevels
	brightness = max(0, min(brightness, levels-1))
	v := uint8(80 + brightness*175/(levels-1))
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// drawer owns the GPU resources used to draw a frame.
type drawer struct {
	face  text.Face
	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

func newDrawer(face text.Face) *drawer {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &drawer{
		face:  face,
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (d *drawer) frame(dst *ebiten.Image, g *Game) {
	dst.Fill(background)
	w, h := float64(g.rules.Boundary.Width), float64(g.rules.Boundary.Height)

	if g.screen == screenTitle {
		d.title(dst, g, w, h)
		return
	}

	snap := g.game.Snapshot()
	d.snapshot(dst, snap, sprite.Cell(g.ticks))
	d.text(dst, fmt.Sprintf("WAVE %d/%d  SCORE %d", snap.DisplayWave(), snap.MaxWaves, snap.Score), 10, 10, false)

	switch g.screen {
	case screenPaused:
		d.text(dst, "PAUSED", w/2, h/2-20, true)
		d.text(dst, "Press P to resume", w/2, h/2+20, true)
	case screenGameOver:
		title, detail := "GAME OVER", ""
		switch snap.Reason {
		case game.ReasonWavesCleared:
			title, detail = "YOU WIN", "Every wave has been cleared"
		case game.ReasonInvadersLanded:
			detail = "The invaders have landed"
		case game.ReasonLivesExhausted:
			detail = "Your last ship was destroyed"
		}
		d.text(dst, title, w/2, h/2-60, true)
		d.text(dst, detail, w/2, h/2-20, true)
		d.text(dst, fmt.Sprintf("Final score: %d", snap.Score), w/2, h/2+10, true)
		if g.ticks-g.overAt >= restartDelay {
			d.text(dst, "Press SPACE to play again, Q to quit", w/2, h/2+60, true)
		}
	}
}

func (d *drawer) title(dst *ebiten.Image, g *Game, w, h float64) {
	d.text(dst, "I N V A D E R S", w/2, h/2-120, true)
	d.text(dst, fmt.Sprintf("%d waves, %d ships", g.rules.MaxWaves, g.rules.Lives+1), w/2, h/2-80, true)
	d.text(dst, "A D / Arrows: move    SPACE: fire    P: pause    Q: quit", w/2, h/2, true)
	if g.ticks/promptBlinkTicks%2 == 0 {
		d.text(dst, ">>  Press SPACE to Start  <<", w/2, h/2+60, true)
	}
}

func (d *drawer) snapshot(dst *ebiten.Image, snap game.Snapshot, cell int) {
	origin := snap.Bounds.Location()
	local := func(p geom.Point) (float32, float32) {
		return float32(p.X - origin.X), float32(p.Y - origin.Y)
	}

	for _, st := range snap.Stars {
		x, y := local(st.Point)
		vector.DrawFilledRect(dst, x, y, 2, 2, starColor(st.Brightness), false)
	}

	for _, token := range snap.LivesTokens {
		d.sprite(dst, sprite.Player, local, token, 1, playerColor)
	}
	for _, inv := range snap.Invaders {
		d.sprite(dst, sprite.ForInvader(inv.Type, cell), local, inv.Area, 1, ShipColor(inv.Type))
	}

	scale := 1.0
	if !snap.Player.Alive {
		scale = 1 - snap.Player.DeathProgress
	}
	d.sprite(dst, sprite.Player, local, snap.Player.Area, scale, playerColor)

	for _, p := range snap.PlayerShots {
		x, y := local(p)
		vector.StrokeLine(dst, x, y, x, y+shotLength, shotWidth, playerShot, false)
	}
	for _, p := range snap.InvaderShots {
		x, y := local(p)
		vector.StrokeLine(dst, x, y, x, y-shotLength, shotWidth, enemyShot, false)
	}
}

// sprite draws sp into area, shrunk about its centre by scale.
func (d *drawer) sprite(dst *ebiten.Image, sp sprite.Sprite, local func(geom.Point) (float32, float32), area geom.Rect, scale float64, clr color.RGBA) {
	if scale <= 0 {
		return
	}
	ax, ay := local(area.Location())
	sw, sh := float64(area.W)*scale, float64(area.H)*scale
	x := float64(ax) + (float64(area.W)-sw)/2
	y := float64(ay) + (float64(area.H)-sh)/2

	for _, shape := range sp {
		var path vector.Path
		for i, p := range shape.Points {
			px, py := sprite.Place(p, x, y, sw, sh)
			if i == 0 {
				path.MoveTo(float32(px), float32(py))
			} else {
				path.LineTo(float32(px), float32(py))
			}
		}
		if len(shape.Points) > 2 {
			path.Close()
		}

		if shape.Filled {
			d.vs, d.is = path.AppendVerticesAndIndicesForFilling(d.vs[:0], d.is[:0])
		} else {
			op := &vector.StrokeOptions{Width: lineWidth, LineJoin: vector.LineJoinRound}
			d.vs, d.is = path.AppendVerticesAndIndicesForStroke(d.vs[:0], d.is[:0], op)
		}
		d.triangles(dst, clr)
	}
}

func (d *drawer) triangles(dst *ebiten.Image, clr color.RGBA) {
	for i := range d.vs {
		d.vs[i].SrcX = 1
		d.vs[i].SrcY = 1
		d.vs[i].ColorR = float32(clr.R) / 0xff
		d.vs[i].ColorG = float32(clr.G) / 0xff
		d.vs[i].ColorB = float32(clr.B) / 0xff
		d.vs[i].ColorA = float32(clr.A) / 0xff
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero}
	dst.DrawTriangles(d.vs, d.is, d.white, op)
}

// text draws s at (x, y); centred horizontally when center is set.
func (d *drawer) text(dst *ebiten.Image, s string, x, y float64, center bool) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	if center {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(dst, s, d.face, op)
}
