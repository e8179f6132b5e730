package loop

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/sprite"
)

// drawSnapshot draws one game frame onto the canvas with invaders in the
// given animation cell. The canvas' logical space is the boundary with its
// origin at the boundary's top-left.
func drawSnapshot(c *draw.Canvas, snap game.Snapshot, cell int) {
	origin := snap.Bounds.Location()
	local := func(p geom.Point) draw.Point {
		return draw.Point{X: float64(p.X - origin.X), Y: float64(p.Y - origin.Y)}
	}

	for _, st := range snap.Stars {
		if st.Brightness >= StarMinBrightness {
			p := local(st.Point)
			c.SetFloat(p.X, p.Y)
		}
	}

	for _, token := range snap.LivesTokens {
		drawSprite(c, sprite.Player, local(token.Location()), token.W, token.H, 1)
	}

	for _, inv := range snap.Invaders {
		drawSprite(c, sprite.ForInvader(inv.Type, cell), local(inv.Area.Location()), inv.Area.W, inv.Area.H, 1)
	}

	area := snap.Player.Area
	scale := 1.0
	if !snap.Player.Alive {
		scale = 1 - snap.Player.DeathProgress
	}
	drawSprite(c, sprite.Player, local(area.Location()), area.W, area.H, scale)

	// Player shots trail below their point, invader shots above it.
	for _, p := range snap.PlayerShots {
		tip := local(p)
		c.FillRect(tip.X-ShotWidth/2, tip.Y, ShotWidth, ShotLength)
	}
	for _, p := range snap.InvaderShots {
		tip := local(p)
		c.FillRect(tip.X-ShotWidth/2, tip.Y-ShotLength, ShotWidth, ShotLength)
	}
}

// drawSprite draws sp into the w x h box at at, shrunk about the box centre
// by scale. Nothing is drawn at scale 0.
func drawSprite(c *draw.Canvas, sp sprite.Sprite, at draw.Point, w, h int, scale float64) {
	if scale <= 0 {
		return
	}
	sw, sh := float64(w)*scale, float64(h)*scale
	x := at.X + (float64(w)-sw)/2
	y := at.Y + (float64(h)-sh)/2

	for _, shape := range sp {
		pts := c.BorrowPoints(len(shape.Points))
		for i, p := range shape.Points {
			pts[i].X, pts[i].Y = sprite.Place(p, x, y, sw, sh)
		}
		if len(pts) == 2 {
			c.DrawLine(pts[0], pts[1])
			continue
		}
		c.DrawPolygon(pts, shape.Filled)
	}
}
