package object

import "github.com/tomz197/invaders/internal/geom"

// ShotStep is how far a shot travels per move.
const ShotStep = 20

// Shot is a projectile fired by the player or by an invader.
type Shot struct {
	location  geom.Point
	direction geom.Direction
	bounds    geom.Rect
	destroyed bool
}

// NewShot creates a shot at the given point, heading in dir, that lives until
// it leaves bounds.
func NewShot(at geom.Point, dir geom.Direction, bounds geom.Rect) *Shot {
	return &Shot{
		location:  at,
		direction: dir,
		bounds:    bounds,
	}
}

// Move advances the shot one step in dir. It returns false once the shot has
// left the boundary vertically; the caller drops the shot in that case.
func (s *Shot) Move(dir geom.Direction) bool {
	switch dir {
	case geom.Up:
		s.location.Y -= ShotStep
	case geom.Down:
		s.location.Y += ShotStep
	}
	return s.location.Y >= s.bounds.Top() && s.location.Y <= s.bounds.Bottom()
}

// Location returns the shot's current point.
func (s *Shot) Location() geom.Point {
	return s.location
}

// Direction returns the direction the shot travels in.
func (s *Shot) Direction() geom.Direction {
	return s.direction
}

// MarkDestroyed marks the shot for removal.
func (s *Shot) MarkDestroyed() {
	s.destroyed = true
}

// IsDestroyed returns true if the shot is marked for removal.
func (s *Shot) IsDestroyed() bool {
	return s.destroyed
}
