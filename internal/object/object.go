// Package object holds the game entities: shots, invaders, the player ship and
// the starfield. Entities only know how to move themselves; the game engine
// decides when they move and what happens when they meet.
package object

import "time"

// Rand is the subset of *math/rand.Rand the entities and engine draw from.
type Rand interface {
	// Intn returns a non-negative pseudo-random number in [0,n).
	Intn(n int) int
}

// Clock reports the current time. The player's death window is measured
// against it.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Destructible is implemented by entities that can be marked for removal and
// swept out of their collection at the end of a pass.
type Destructible interface {
	// MarkDestroyed marks the entity for removal.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for removal.
	IsDestroyed() bool
}

// Sweep removes every destroyed entity from items in place and returns the
// shortened slice. The backing array is reused.
func Sweep[T Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	// Drop references held past the new length.
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
