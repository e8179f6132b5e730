package sprite

import (
	"fmt"
	"testing"

	"github.com/tomz197/invaders/internal/object"
)

func TestSpritesStayInUnitSquare(t *testing.T) {
	sprites := map[string]Sprite{"player": Player}
	for _, kind := range []object.ShipType{object.Satellite, object.Bug, object.Saucer, object.Spaceship, object.Star} {
		for cell := 0; cell < AnimationCells; cell++ {
			sprites[fmt.Sprintf("%v/%d", kind, cell)] = ForInvader(kind, cell)
		}
	}

	for name, sp := range sprites {
		t.Run(name, func(t *testing.T) {
			if len(sp) == 0 {
				t.Fatal("empty sprite")
			}
			for i, shape := range sp {
				if len(shape.Points) < 2 {
					t.Errorf("shape %d has %d points", i, len(shape.Points))
				}
				if shape.Filled && len(shape.Points) < 3 {
					t.Errorf("shape %d is filled but not a polygon", i)
				}
				for _, p := range shape.Points {
					if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
						t.Errorf("shape %d point %v outside the unit square", i, p)
					}
				}
			}
		})
	}
}

func TestInvaderSpritesDiffer(t *testing.T) {
	if len(ForInvader(object.Satellite, 0)) == len(ForInvader(object.Star, 0)) {
		t.Error("satellite and star share a shape count")
	}
}

func TestInvaderAnimation(t *testing.T) {
	first := ForInvader(object.Bug, 0)
	for cell := 1; cell < AnimationCells; cell++ {
		frame := ForInvader(object.Bug, cell)
		if len(frame) != len(first) {
			t.Fatalf("cell %d has %d shapes, want %d", cell, len(frame), len(first))
		}
		if frame[1].Points[1] == first[1].Points[1] {
			t.Errorf("cell %d leg matches cell 0", cell)
		}
	}
	if got, want := ForInvader(object.Bug, AnimationCells+1)[1].Points[1], ForInvader(object.Bug, 1)[1].Points[1]; got != want {
		t.Errorf("cell wraps to %v, want %v", got, want)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		frame int
		want  int
	}{
		{0, 0},
		{framesPerCell - 1, 0},
		{framesPerCell, 1},
		{3 * framesPerCell, 3},
		{AnimationCells * framesPerCell, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.frame), func(t *testing.T) {
			if got := Cell(tt.frame); got != tt.want {
				t.Errorf("Cell(%d) = %d, want %d", tt.frame, got, tt.want)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	x, y := Place(Point{0.5, 1}, 100, 200, 40, 40)
	if x != 120 || y != 240 {
		t.Errorf("Place = (%v, %v), want (120, 240)", x, y)
	}
}
