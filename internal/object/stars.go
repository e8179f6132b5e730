package object

import "github.com/tomz197/invaders/internal/geom"

// StarBrightnessLevels is the number of distinct star brightnesses.
const StarBrightnessLevels = 4

// twinkleCount is how many stars are swapped per twinkle.
const twinkleCount = 5

// StarPoint is one background star.
type StarPoint struct {
	Point      geom.Point
	Brightness int // 0 (dim) to StarBrightnessLevels-1 (bright)
}

// Starfield is the twinkling background behind the formation.
type Starfield struct {
	bounds geom.Rect
	rng    Rand
	stars  []StarPoint
}

// NewStarfield scatters count stars across bounds.
func NewStarfield(bounds geom.Rect, count int, rng Rand) *Starfield {
	if count < 0 {
		count = 0
	}
	s := &Starfield{
		bounds: bounds,
		rng:    rng,
		stars:  make([]StarPoint, 0, count),
	}
	for i := 0; i < count; i++ {
		s.stars = append(s.stars, s.randomStar())
	}
	return s
}

// Twinkle removes a few random stars and adds the same number of new ones.
func (s *Starfield) Twinkle() {
	if len(s.stars) == 0 {
		return
	}
	for i := 0; i < twinkleCount; i++ {
		idx := s.rng.Intn(len(s.stars))
		s.stars = append(s.stars[:idx], s.stars[idx+1:]...)
		s.stars = append(s.stars, s.randomStar())
	}
}

// Stars returns a copy of the current stars.
func (s *Starfield) Stars() []StarPoint {
	out := make([]StarPoint, len(s.stars))
	copy(out, s.stars)
	return out
}

// Len returns the number of stars.
func (s *Starfield) Len() int {
	return len(s.stars)
}

func (s *Starfield) randomStar() StarPoint {
	if s.bounds.Empty() {
		return StarPoint{Point: s.bounds.Location()}
	}
	return StarPoint{
		Point: geom.Point{
			X: s.bounds.X + s.rng.Intn(s.bounds.W),
			Y: s.bounds.Y + s.rng.Intn(s.bounds.H),
		},
		Brightness: s.rng.Intn(StarBrightnessLevels),
	}
}
