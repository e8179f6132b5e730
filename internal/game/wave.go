package game

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

// nextWave starts the next wave, or ends the game when the last one was
// cleared. Each wave moves the formation more often than the one before.
func (g *Game) nextWave() {
	g.wave++
	if g.wave > g.rules.MaxWaves {
		g.gameOver(ReasonWavesCleared)
		return
	}

	g.framesToSkip--
	g.direction = geom.Right
	g.invaders = spawnFormation(g.rules.Formation)
	clear(g.playerShots)
	g.playerShots = g.playerShots[:0]
	clear(g.invaderShots)
	g.invaderShots = g.invaderShots[:0]
}

// spawnFormation lays out one invader per row and column, top row first.
func spawnFormation(f config.Formation) []*object.Invader {
	invaders := make([]*object.Invader, 0, len(f.Rows)*f.Columns)
	y := f.Origin.Y
	for _, row := range f.Rows {
		x := f.Origin.X
		for col := 0; col < f.Columns; col++ {
			invaders = append(invaders, object.NewInvader(row.Type, geom.Point{X: x, Y: y}, row.Score))
			x += f.ColumnSpacing
		}
		y += f.RowSpacing
	}
	return invaders
}
