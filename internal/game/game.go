// Package game is the invaders update engine. A Game owns the formation, the
// player ship and every shot in flight; a driver calls Go once per frame and
// draws the Snapshot afterwards.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

// Reason says which terminal condition ended the game.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonLivesExhausted
	ReasonInvadersLanded
	ReasonWavesCleared
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonLivesExhausted:
		return "lives exhausted"
	case ReasonInvadersLanded:
		return "invaders landed"
	case ReasonWavesCleared:
		return "waves cleared"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for return fire and the starfield.
func WithRand(r object.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithClock sets the clock the player's death window is measured against.
func WithClock(c object.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithGameOverHandler registers fn to be called once when the game ends.
func WithGameOverHandler(fn func(Reason)) Option {
	return func(g *Game) { g.onGameOver = fn }
}

// Game is the state of one invaders session.
type Game struct {
	rules      config.Rules
	bounds     geom.Rect
	rng        object.Rand
	clock      object.Clock
	onGameOver func(Reason)

	score         int
	lives         int
	wave          int
	framesSkipped int
	framesToSkip  int
	direction     geom.Direction

	player       *object.PlayerShip
	invaders     []*object.Invader
	playerShots  []*object.Shot
	invaderShots []*object.Shot
	livesTokens  []geom.Rect
	stars        *object.Starfield

	over   bool
	reason Reason
}

// New creates a game from rules and starts wave 1.
func New(rules config.Rules, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	g := &Game{
		rules:        rules,
		bounds:       rules.Boundary.Rect(),
		lives:        rules.Lives,
		framesToSkip: rules.FramesToSkip,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.clock == nil {
		g.clock = object.SystemClock{}
	}

	g.player = object.NewPlayerShip(rules.PlayerStartPoint(), g.clock, rules.DeathAnimation)
	g.stars = object.NewStarfield(g.bounds, rules.Stars, g.rng)
	g.livesTokens = livesTokenLayout(g.bounds, rules.Lives)

	g.nextWave()
	return g, nil
}

// Go advances the game by one frame. It does nothing once the game is over
// or while the player ship is down.
func (g *Game) Go() {
	if g.over {
		return
	}
	g.player.Revive()
	if !g.player.Alive() {
		return
	}

	g.movePlayerShots()
	g.moveInvaderShots()
	g.moveInvaders()
	g.returnFire()

	g.checkInvaderCollisions()
	g.checkPlayerCollisions()
	if g.over {
		return
	}
	g.checkInvadersAtBottom()
	if g.over {
		return
	}

	if len(g.invaders) == 0 {
		g.nextWave()
	}
}

// MovePlayer moves the ship one step left or right. The move is ignored when
// the game is over, the ship is down, or the ship would come within the
// player margin of the boundary.
func (g *Game) MovePlayer(dir geom.Direction) {
	if g.over || !g.player.Alive() {
		return
	}
	if dir != geom.Left && dir != geom.Right {
		return
	}
	if g.bounds.NearEdge(g.player.Area(), dir, g.rules.PlayerMargin) {
		return
	}
	g.player.Move(dir)
}

// FirePlayerShot launches a shot from the top of the ship unless the player
// already has the maximum number of shots in flight.
func (g *Game) FirePlayerShot() {
	if g.over || !g.player.Alive() {
		return
	}
	if len(g.playerShots) >= g.rules.MaxPlayerShots {
		return
	}
	g.playerShots = append(g.playerShots, object.NewShot(g.player.TopMiddle(), geom.Up, g.bounds))
}

// Twinkle refreshes part of the starfield. It keeps working after game over
// so the background stays alive behind the final screen.
func (g *Game) Twinkle() {
	g.stars.Twinkle()
}

// Over reports whether a terminal condition has fired.
func (g *Game) Over() bool { return g.over }

// Reason returns the terminal condition that ended the game.
func (g *Game) Reason() Reason { return g.reason }

// Score returns the points scored so far.
func (g *Game) Score() int { return g.score }

// Lives returns the spare lives left, never below zero.
func (g *Game) Lives() int {
	if g.lives < 0 {
		return 0
	}
	return g.lives
}

// Wave returns the current wave number. It ends one past MaxWaves when every
// wave was cleared.
func (g *Game) Wave() int { return g.wave }

// MaxWaves returns the number of waves in a game.
func (g *Game) MaxWaves() int { return g.rules.MaxWaves }

// PlayerAlive reports whether the ship is in play.
func (g *Game) PlayerAlive() bool { return g.player.Alive() }

// gameOver fires the terminal condition once.
func (g *Game) gameOver(reason Reason) {
	if g.over {
		return
	}
	g.over = true
	g.reason = reason
	if g.onGameOver != nil {
		g.onGameOver(reason)
	}
}

// movePlayerShots advances player shots upward and drops those that left.
func (g *Game) movePlayerShots() {
	for _, s := range g.playerShots {
		if !s.Move(geom.Up) {
			s.MarkDestroyed()
		}
	}
	g.playerShots = object.Sweep(g.playerShots)
}

// moveInvaderShots advances invader shots downward and drops those that left.
func (g *Game) moveInvaderShots() {
	for _, s := range g.invaderShots {
		if !s.Move(geom.Down) {
			s.MarkDestroyed()
		}
	}
	g.invaderShots = object.Sweep(g.invaderShots)
}

// moveInvaders moves the whole formation every framesToSkip frames. When any
// invader is about to cross the margin the formation steps down and turns
// around instead of moving sideways.
func (g *Game) moveInvaders() {
	g.framesSkipped++
	if g.framesSkipped < g.framesToSkip {
		return
	}
	g.framesSkipped = 0

	if g.formationAtEdge() {
		for _, inv := range g.invaders {
			inv.Move(geom.Down)
		}
		g.direction = g.direction.Opposite()
		return
	}
	for _, inv := range g.invaders {
		inv.Move(g.direction)
	}
}

func (g *Game) formationAtEdge() bool {
	for _, inv := range g.invaders {
		if g.bounds.NearEdge(inv.Area(), g.direction, g.rules.InvaderMargin) {
			return true
		}
	}
	return false
}

// livesTokenLayout right-aligns n ship-sized tokens along the top edge.
func livesTokenLayout(bounds geom.Rect, n int) []geom.Rect {
	if n < 0 {
		n = 0
	}
	tokens := make([]geom.Rect, 0, n)
	x := bounds.Right() - n*object.PlayerSize.W
	for i := 0; i < n; i++ {
		tokens = append(tokens, geom.NewRect(geom.Point{X: x, Y: bounds.Top() + 10}, object.PlayerSize))
		x += object.PlayerSize.W
	}
	return tokens
}
