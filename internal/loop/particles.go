package loop

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

// particle is a short-lived debris pixel, in boundary-local logical units.
type particle struct {
	x, y        float64
	vx, vy      float64
	lifetime    float64 // seconds remaining
	maxLifetime float64
	drag        float64 // velocity kept per 1/60 s
}

// debris animates explosions the engine does not report: it diffs
// consecutive snapshots and bursts particles where invaders vanished or the
// player was hit.
type debris struct {
	particles []particle

	wave        int
	invaders    []geom.Rect
	playerAlive bool
}

// formationSteps are the displacements one engine tick can apply to the
// whole formation.
var formationSteps = []geom.Point{
	{},
	{X: object.InvaderHorizontalStep},
	{X: -object.InvaderHorizontalStep},
	{Y: object.InvaderVerticalStep},
}

func newDebris() *debris {
	return &debris{playerAlive: true}
}

// observe compares snap with the previous snapshot and spawns explosions.
// It expects at most one engine tick between calls.
func (d *debris) observe(snap game.Snapshot) {
	origin := snap.Bounds.Location()
	current := make(map[geom.Rect]struct{}, len(snap.Invaders))
	for _, inv := range snap.Invaders {
		current[inv.Area] = struct{}{}
	}

	var gone []geom.Rect
	switch {
	case d.wave == 0:
		// First frame of a game.
	case snap.Wave != d.wave:
		// A wave only advances once the last invaders were shot.
		gone = d.invaders
	default:
		gone = vanished(d.invaders, current)
	}
	for _, area := range gone {
		d.explode(centre(area, origin), ExplosionParticles, ExplosionSpeed, ExplosionLifetime)
	}

	if d.playerAlive && !snap.Player.Alive {
		d.explode(centre(snap.Player.Area, origin), 2*ExplosionParticles, ExplosionSpeed, 2*ExplosionLifetime)
	}

	d.wave = snap.Wave
	d.invaders = d.invaders[:0]
	for _, inv := range snap.Invaders {
		d.invaders = append(d.invaders, inv.Area)
	}
	d.playerAlive = snap.Player.Alive
}

// vanished returns the rects of prev that have no counterpart in current
// under the formation step that matches the most invaders.
func vanished(prev []geom.Rect, current map[geom.Rect]struct{}) []geom.Rect {
	best, bestHits := geom.Point{}, -1
	for _, step := range formationSteps {
		hits := 0
		for _, r := range prev {
			if _, ok := current[geom.Rect{X: r.X + step.X, Y: r.Y + step.Y, W: r.W, H: r.H}]; ok {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = step, hits
		}
	}

	var gone []geom.Rect
	for _, r := range prev {
		if _, ok := current[geom.Rect{X: r.X + best.X, Y: r.Y + best.Y, W: r.W, H: r.H}]; !ok {
			gone = append(gone, r)
		}
	}
	return gone
}

func centre(r geom.Rect, origin geom.Point) draw.Point {
	return draw.Point{
		X: float64(r.X-origin.X) + float64(r.W)/2,
		Y: float64(r.Y-origin.Y) + float64(r.H)/2,
	}
}

// reset forgets the previous snapshot and any live particles.
func (d *debris) reset() {
	d.particles = d.particles[:0]
	d.wave = 0
	d.invaders = d.invaders[:0]
	d.playerAlive = true
}

// explode spawns count particles in a circular burst.
func (d *debris) explode(at draw.Point, count int, speed, lifetime float64) {
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)
		d.particles = append(d.particles, particle{
			x:           at.X,
			y:           at.Y,
			vx:          math.Cos(angle) * spd,
			vy:          math.Sin(angle) * spd,
			lifetime:    life,
			maxLifetime: life,
			drag:        0.95,
		})
	}
}

// update moves particles and drops the expired ones.
func (d *debris) update(dt time.Duration) {
	sec := dt.Seconds()
	kept := d.particles[:0]
	for _, p := range d.particles {
		p.lifetime -= sec
		if p.lifetime <= 0 {
			continue
		}
		drag := math.Pow(p.drag, sec*60)
		p.vx *= drag
		p.vy *= drag
		p.x += p.vx * sec
		p.y += p.vy * sec
		kept = append(kept, p)
	}
	d.particles = kept
}

// draw plots live particles, skipping those in the last quarter of their life.
func (d *debris) draw(c *draw.Canvas) {
	for _, p := range d.particles {
		if p.lifetime/p.maxLifetime < 0.25 {
			continue
		}
		c.SetFloat(p.x, p.y)
	}
}
