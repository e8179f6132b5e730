package game

import "github.com/tomz197/invaders/internal/object"

// checkInvaderCollisions destroys every invader hit by a player shot. A shot
// that lands where invaders overlap takes all of them.
func (g *Game) checkInvaderCollisions() {
	for i := len(g.playerShots) - 1; i >= 0; i-- {
		shot := g.playerShots[i]
		at := shot.Location()

		hit := false
		for _, inv := range g.invaders {
			if inv.IsDestroyed() || !inv.Area().Contains(at) {
				continue
			}
			inv.MarkDestroyed()
			g.score += inv.Score()
			hit = true
		}
		if hit {
			shot.MarkDestroyed()
		}
	}

	g.playerShots = object.Sweep(g.playerShots)
	g.invaders = object.Sweep(g.invaders)
}

// checkPlayerCollisions handles invader shots hitting the ship. Every hit
// costs a life; running out ends the game.
func (g *Game) checkPlayerCollisions() {
	area := g.player.Area()
	for i := len(g.invaderShots) - 1; i >= 0; i-- {
		shot := g.invaderShots[i]
		if !area.Contains(shot.Location()) {
			continue
		}

		g.player.Kill()
		shot.MarkDestroyed()
		g.lives--
		if g.lives < 0 {
			g.gameOver(ReasonLivesExhausted)
			break
		}
		g.livesTokens = livesTokenLayout(g.bounds, len(g.livesTokens)-1)
	}

	g.invaderShots = object.Sweep(g.invaderShots)
}

// checkInvadersAtBottom ends the game once the formation reaches the
// player's row.
func (g *Game) checkInvadersAtBottom() {
	bottom := g.player.Area().Bottom()
	for _, inv := range g.invaders {
		if inv.Area().Bottom() >= bottom {
			g.gameOver(ReasonInvadersLanded)
			return
		}
	}
}
