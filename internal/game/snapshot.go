package game

import (
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

// PlayerView is the drawable state of the player ship.
type PlayerView struct {
	Area          geom.Rect
	Alive         bool
	DeathProgress float64 // 0..1 through the death window
}

// InvaderView is the drawable state of one invader.
type InvaderView struct {
	Area  geom.Rect
	Type  object.ShipType
	Score int
}

// Snapshot is a copy of everything a renderer needs for one frame. It shares
// no memory with the Game.
type Snapshot struct {
	Score    int
	Lives    int
	Wave     int
	MaxWaves int
	Over     bool
	Reason   Reason
	Bounds   geom.Rect

	Player       PlayerView
	Invaders     []InvaderView
	PlayerShots  []geom.Point
	InvaderShots []geom.Point
	LivesTokens  []geom.Rect
	Stars        []object.StarPoint
}

// DisplayWave returns the wave number clamped to MaxWaves for HUDs.
func (s Snapshot) DisplayWave() int {
	if s.Wave > s.MaxWaves {
		return s.MaxWaves
	}
	return s.Wave
}

// Snapshot returns the current state for rendering. The player's revive
// check runs first so a finished death window shows the ship again even
// while the driver is paused.
func (g *Game) Snapshot() Snapshot {
	if !g.over {
		g.player.Revive()
	}

	snap := Snapshot{
		Score:    g.score,
		Lives:    g.Lives(),
		Wave:     g.wave,
		MaxWaves: g.rules.MaxWaves,
		Over:     g.over,
		Reason:   g.reason,
		Bounds:   g.bounds,
		Player: PlayerView{
			Area:          g.player.Area(),
			Alive:         g.player.Alive(),
			DeathProgress: g.player.DeathProgress(),
		},
		Invaders:     make([]InvaderView, 0, len(g.invaders)),
		PlayerShots:  shotPoints(g.playerShots),
		InvaderShots: shotPoints(g.invaderShots),
		LivesTokens:  append([]geom.Rect(nil), g.livesTokens...),
		Stars:        g.stars.Stars(),
	}
	for _, inv := range g.invaders {
		snap.Invaders = append(snap.Invaders, InvaderView{
			Area:  inv.Area(),
			Type:  inv.Type(),
			Score: inv.Score(),
		})
	}
	return snap
}

func shotPoints(shots []*object.Shot) []geom.Point {
	points := make([]geom.Point, len(shots))
	for i, s := range shots {
		points[i] = s.Location()
	}
	return points
}
