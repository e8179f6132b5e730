package object

import (
	"time"

	"github.com/tomz197/invaders/internal/geom"
)

// PlayerStep is how far the ship moves per move call.
const PlayerStep = 10

// DefaultDeathDuration is how long the ship stays down after being hit.
const DefaultDeathDuration = 3 * time.Second

// PlayerSize is the fixed hitbox of the player ship.
var PlayerSize = geom.Size{W: 40, H: 40}

// PlayerShip is the player-controlled cannon at the bottom of the screen.
type PlayerShip struct {
	location      geom.Point
	alive         bool
	diedAt        time.Time
	deathDuration time.Duration
	clock         Clock
}

// NewPlayerShip creates a live ship at location. A nil clock means the
// system clock; a non-positive deathDuration means DefaultDeathDuration.
func NewPlayerShip(location geom.Point, clock Clock, deathDuration time.Duration) *PlayerShip {
	if clock == nil {
		clock = SystemClock{}
	}
	if deathDuration <= 0 {
		deathDuration = DefaultDeathDuration
	}
	return &PlayerShip{
		location:      location,
		alive:         true,
		deathDuration: deathDuration,
		clock:         clock,
	}
}

// Alive reports whether the ship is in play.
func (p *PlayerShip) Alive() bool {
	return p.alive
}

// Kill takes the ship out of play and starts the death window.
func (p *PlayerShip) Kill() {
	p.alive = false
	p.diedAt = p.clock.Now()
}

// Revive brings a dead ship back once the death window has elapsed and
// reports whether it did. The ship respawns where it died.
func (p *PlayerShip) Revive() bool {
	if p.alive {
		return false
	}
	if p.clock.Now().Sub(p.diedAt) < p.deathDuration {
		return false
	}
	p.alive = true
	return true
}

// DeathProgress returns how far through the death window the ship is, from 0
// (just hit) to 1 (about to respawn). A live ship reports 0.
func (p *PlayerShip) DeathProgress() float64 {
	if p.alive {
		return 0
	}
	elapsed := p.clock.Now().Sub(p.diedAt)
	progress := float64(elapsed) / float64(p.deathDuration)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	return progress
}

// Move shifts the ship sideways. Dead ships and vertical moves are ignored.
func (p *PlayerShip) Move(dir geom.Direction) {
	if !p.alive {
		return
	}
	switch dir {
	case geom.Left:
		p.location.X -= PlayerStep
	case geom.Right:
		p.location.X += PlayerStep
	}
}

// Location returns the top-left corner of the hitbox.
func (p *PlayerShip) Location() geom.Point {
	return p.location
}

// Area returns the ship's hitbox.
func (p *PlayerShip) Area() geom.Rect {
	return geom.NewRect(p.location, PlayerSize)
}

// TopMiddle returns the point player shots are fired from.
func (p *PlayerShip) TopMiddle() geom.Point {
	return p.Area().TopMiddle()
}
