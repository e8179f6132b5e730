package game

import (
	"sort"

	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

// returnFire lets one invader shoot back. Later waves fire more often and may
// have more shots in flight.
func (g *Game) returnFire() {
	if len(g.invaderShots) >= g.wave+1 {
		return
	}
	if g.rng.Intn(10) < 10-g.wave {
		return
	}

	shooters := frontline(g.invaders)
	if len(shooters) == 0 {
		return
	}
	shooter := shooters[g.rng.Intn(len(shooters))]
	g.invaderShots = append(g.invaderShots, object.NewShot(shooter.BottomMiddle(), geom.Down, g.bounds))
}

// frontline returns the lowest invader of every column. Columns are keyed by
// X and ordered by where they first appear when the formation is sorted
// bottom row first.
func frontline(invaders []*object.Invader) []*object.Invader {
	sorted := make([]*object.Invader, len(invaders))
	copy(sorted, invaders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Location().Y > sorted[j].Location().Y
	})

	seen := make(map[int]struct{}, len(sorted))
	shooters := make([]*object.Invader, 0, len(sorted))
	for _, inv := range sorted {
		x := inv.Location().X
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		shooters = append(shooters, inv)
	}
	return shooters
}
