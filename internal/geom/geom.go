// Package geom provides the integer point, rectangle, and direction types
// shared by the game entities, plus containment and intersection tests.
package geom

// Direction is one of the four screen directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Point is a position in screen units. Y grows downward.
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width and height in screen units.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect builds a rectangle from a location and a size.
func NewRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// Left returns the X coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Right returns the X coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Bottom returns the Y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{X: r.X, Y: r.Y} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X < r.X+r.W &&
		r.Y <= p.Y && p.Y < r.Y+r.H
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return o.X < r.X+r.W && r.X < o.X+o.W &&
		o.Y < r.Y+r.H && r.Y < o.Y+o.H
}

// TopMiddle returns the point centred on the top edge.
func (r Rect) TopMiddle() Point {
	return Point{X: r.X + r.W/2, Y: r.Y}
}

// BottomMiddle returns the point centred on the bottom edge.
func (r Rect) BottomMiddle() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H}
}

// NearEdge reports whether area, heading in dir, would come within margin
// units of the left or right edge of bounds. Up and Down never report true.
func (r Rect) NearEdge(area Rect, dir Direction, margin int) bool {
	switch dir {
	case Right:
		return area.Right()+margin > r.Right()
	case Left:
		return area.Left()-margin < r.Left()
	default:
		return false
	}
}
