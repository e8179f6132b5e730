package object

import (
	"fmt"
	"strings"

	"github.com/tomz197/invaders/internal/geom"
)

// ShipType is the kind of invader. Each row of a wave is one type.
type ShipType int

const (
	Satellite ShipType = iota
	Bug
	Saucer
	Spaceship
	Star
)

var shipTypeNames = map[ShipType]string{
	Satellite: "satellite",
	Bug:       "bug",
	Saucer:    "saucer",
	Spaceship: "spaceship",
	Star:      "star",
}

// String returns the lowercase name used in rules files.
func (t ShipType) String() string {
	if name, ok := shipTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ShipType(%d)", int(t))
}

// ParseShipType returns the ship type with the given name (case-insensitive).
func ParseShipType(name string) (ShipType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range shipTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown ship type %q", name)
}

// UnmarshalText lets ship types be decoded from rules files by name.
func (t *ShipType) UnmarshalText(text []byte) error {
	parsed, err := ParseShipType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText encodes the ship type by name.
func (t ShipType) MarshalText() ([]byte, error) {
	if _, ok := shipTypeNames[t]; !ok {
		return nil, fmt.Errorf("unknown ship type %d", int(t))
	}
	return []byte(t.String()), nil
}

// Invader movement and size.
const (
	InvaderHorizontalStep = 10
	InvaderVerticalStep   = 40
)

// InvaderSize is the fixed hitbox of every invader.
var InvaderSize = geom.Size{W: 40, H: 40}

// Invader is one enemy ship in the formation.
type Invader struct {
	location  geom.Point
	kind      ShipType
	score     int
	destroyed bool
}

// NewInvader creates an invader of the given type at location, worth score
// points when destroyed.
func NewInvader(kind ShipType, location geom.Point, score int) *Invader {
	return &Invader{
		location: location,
		kind:     kind,
		score:    score,
	}
}

// Move shifts the invader one step. Up is ignored; invaders never retreat.
func (inv *Invader) Move(dir geom.Direction) {
	switch dir {
	case geom.Left:
		inv.location = inv.location.Add(-InvaderHorizontalStep, 0)
	case geom.Right:
		inv.location = inv.location.Add(InvaderHorizontalStep, 0)
	case geom.Down:
		inv.location = inv.location.Add(0, InvaderVerticalStep)
	}
}

// Location returns the top-left corner of the hitbox.
func (inv *Invader) Location() geom.Point {
	return inv.location
}

// Area returns the invader's hitbox.
func (inv *Invader) Area() geom.Rect {
	return geom.NewRect(inv.location, InvaderSize)
}

// BottomMiddle returns the point invader shots are fired from.
func (inv *Invader) BottomMiddle() geom.Point {
	return inv.Area().BottomMiddle()
}

// Score returns the points awarded for destroying this invader.
func (inv *Invader) Score() int {
	return inv.score
}

// Type returns the invader's ship type.
func (inv *Invader) Type() ShipType {
	return inv.kind
}

// MarkDestroyed marks the invader for removal.
func (inv *Invader) MarkDestroyed() {
	inv.destroyed = true
}

// IsDestroyed returns true if the invader is marked for removal.
func (inv *Invader) IsDestroyed() bool {
	return inv.destroyed
}
