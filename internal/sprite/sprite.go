// Package sprite holds the vector shapes both front ends draw ships with.
// Coordinates are in a unit square and get scaled onto a hitbox.
package sprite

import "github.com/tomz197/invaders/internal/object"

// Point is a coordinate in the unit square, (0,0) top-left.
type Point struct {
	X, Y float64
}

// Shape is one stroke of a sprite. Two points draw a line; three or more a
// closed polygon.
type Shape struct {
	Points []Point
	Filled bool
}

// Sprite is an ordered list of shapes.
type Sprite []Shape

// Place maps p from the unit square onto the rectangle at (x, y) of size w x h.
func Place(p Point, x, y, w, h float64) (float64, float64) {
	return x + p.X*w, y + p.Y*h
}

// Player is the player's cannon, pointing up.
var Player = Sprite{
	{Filled: true, Points: []Point{
		{0, 1}, {1, 1}, {1, 0.7}, {0.6, 0.55}, {0.55, 0.15},
		{0.5, 0}, {0.45, 0.15}, {0.4, 0.55}, {0, 0.7},
	}},
}

var satellite = Sprite{
	{Filled: true, Points: []Point{{0.35, 0.3}, {0.65, 0.3}, {0.65, 0.7}, {0.35, 0.7}}},
	{Points: []Point{{0, 0.35}, {0.25, 0.35}, {0.25, 0.65}, {0, 0.65}}},
	{Points: []Point{{0.75, 0.35}, {1, 0.35}, {1, 0.65}, {0.75, 0.65}}},
	{Points: []Point{{0.25, 0.5}, {0.35, 0.5}}},
	{Points: []Point{{0.65, 0.5}, {0.75, 0.5}}},
	{Points: []Point{{0.5, 0.3}, {0.5, 0.05}}},
}

var bug = Sprite{
	{Filled: true, Points: []Point{{0.3, 0.2}, {0.7, 0.2}, {0.8, 0.5}, {0.7, 0.8}, {0.3, 0.8}, {0.2, 0.5}}},
	{Points: []Point{{0.2, 0.4}, {0, 0.2}}},
	{Points: []Point{{0.2, 0.6}, {0, 0.85}}},
	{Points: []Point{{0.8, 0.4}, {1, 0.2}}},
	{Points: []Point{{0.8, 0.6}, {1, 0.85}}},
	{Points: []Point{{0.4, 0.2}, {0.3, 0}}},
	{Points: []Point{{0.6, 0.2}, {0.7, 0}}},
}

var saucer = Sprite{
	{Points: []Point{{0.3, 0.45}, {0.35, 0.2}, {0.65, 0.2}, {0.7, 0.45}}},
	{Filled: true, Points: []Point{{0, 0.6}, {0.2, 0.45}, {0.8, 0.45}, {1, 0.6}, {0.8, 0.75}, {0.2, 0.75}}},
}

var spaceship = Sprite{
	{Filled: true, Points: []Point{
		{0.5, 1}, {0.35, 0.4}, {0, 0.6}, {0, 0.2}, {0.35, 0.1},
		{0.5, 0}, {0.65, 0.1}, {1, 0.2}, {1, 0.6}, {0.65, 0.4},
	}},
}

var star = Sprite{
	{Filled: true, Points: []Point{
		{0.5, 0}, {0.62, 0.38}, {1, 0.5}, {0.62, 0.62},
		{0.5, 1}, {0.38, 0.62}, {0, 0.5}, {0.38, 0.38},
	}},
}

// AnimationCells is the number of frames in an invader's animation cycle.
const AnimationCells = 4

// framesPerCell is how many 60 Hz frames each animation cell is shown for.
const framesPerCell = 10

// cellSpread is the horizontal squeeze applied to each animation cell.
var cellSpread = [AnimationCells]float64{1, 0.9, 0.8, 0.9}

var invaderCells = map[object.ShipType][AnimationCells]Sprite{
	object.Satellite: cells(satellite),
	object.Bug:       cells(bug),
	object.Saucer:    cells(saucer),
	object.Spaceship: cells(spaceship),
	object.Star:      cells(star),
}

// Cell returns the animation cell shown at frame.
func Cell(frame int) int {
	if frame < 0 {
		frame = -frame
	}
	return frame / framesPerCell % AnimationCells
}

// ForInvader returns the sprite for an invader type in the given animation
// cell. Unknown types fall back to the star.
func ForInvader(t object.ShipType, cell int) Sprite {
	frames, ok := invaderCells[t]
	if !ok {
		frames = invaderCells[object.Star]
	}
	cell %= AnimationCells
	if cell < 0 {
		cell += AnimationCells
	}
	return frames[cell]
}

// cells builds the animation cycle for sp by squeezing it about its
// vertical centre line.
func cells(sp Sprite) [AnimationCells]Sprite {
	var out [AnimationCells]Sprite
	for i, spread := range cellSpread {
		frame := make(Sprite, len(sp))
		for j, shape := range sp {
			pts := make([]Point, len(shape.Points))
			for k, p := range shape.Points {
				pts[k] = Point{X: 0.5 + (p.X-0.5)*spread, Y: p.Y}
			}
			frame[j] = Shape{Points: pts, Filled: shape.Filled}
		}
		out[i] = frame
	}
	return out
}
