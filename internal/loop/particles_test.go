package loop

import (
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

func rect(x, y int) geom.Rect {
	return geom.NewRect(geom.Point{X: x, Y: y}, object.InvaderSize)
}

func snapshotWith(wave int, alive bool, areas ...geom.Rect) game.Snapshot {
	snap := game.Snapshot{
		Wave:   wave,
		Bounds: geom.Rect{W: 800, H: 600},
		Player: game.PlayerView{Area: rect(700, 550), Alive: alive},
	}
	for _, a := range areas {
		snap.Invaders = append(snap.Invaders, game.InvaderView{Area: a})
	}
	return snap
}

func TestVanished(t *testing.T) {
	prev := []geom.Rect{rect(50, 50), rect(135, 50), rect(220, 50)}

	tests := []struct {
		name    string
		current []geom.Rect
		want    int
	}{
		{"nothing moved", []geom.Rect{rect(50, 50), rect(135, 50), rect(220, 50)}, 0},
		{"formation stepped right", []geom.Rect{rect(60, 50), rect(145, 50), rect(230, 50)}, 0},
		{"formation stepped down", []geom.Rect{rect(50, 90), rect(135, 90), rect(220, 90)}, 0},
		{"one shot while stepping left", []geom.Rect{rect(40, 50), rect(210, 50)}, 1},
		{"two shot in place", []geom.Rect{rect(135, 50)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := make(map[geom.Rect]struct{})
			for _, r := range tt.current {
				current[r] = struct{}{}
			}
			if got := vanished(prev, current); len(got) != tt.want {
				t.Errorf("vanished = %v, want %d rects", got, tt.want)
			}
		})
	}
}

func TestDebrisExplodes(t *testing.T) {
	d := newDebris()
	d.observe(snapshotWith(1, true, rect(50, 50), rect(135, 50)))
	if len(d.particles) != 0 {
		t.Fatalf("first frame spawned %d particles", len(d.particles))
	}

	d.observe(snapshotWith(1, true, rect(60, 50)))
	if got := len(d.particles); got != ExplosionParticles {
		t.Fatalf("one destroyed invader spawned %d particles, want %d", got, ExplosionParticles)
	}

	d.observe(snapshotWith(2, true, rect(50, 50), rect(135, 50)))
	if got := len(d.particles); got != 2*ExplosionParticles {
		t.Fatalf("clearing the wave spawned %d particles in total, want %d", got, 2*ExplosionParticles)
	}

	d.observe(snapshotWith(2, false, rect(50, 50), rect(135, 50)))
	if got := len(d.particles); got != 4*ExplosionParticles {
		t.Fatalf("player hit spawned %d particles in total, want %d", got, 4*ExplosionParticles)
	}

	d.update(10 * time.Second)
	if len(d.particles) != 0 {
		t.Errorf("%d particles outlived their lifetime", len(d.particles))
	}

	d.reset()
	d.observe(snapshotWith(1, true))
	if len(d.particles) != 0 {
		t.Errorf("reset game spawned %d particles", len(d.particles))
	}
}
