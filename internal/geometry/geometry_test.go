package geometry

import (
	"math"
	"testing"

	"github.com/verte-zerg/catchme/internal/model"
)

var arena = model.Bounds{Width: 800, Height: 500}

func TestEscapePositionMovesAwayFromPointer(t *testing.T) {
	e := NewWithSeed(1)
	profile, _ := model.LookupDifficulty(model.DifficultyEasy)
	current := model.Position{X: 400, Y: 250}
	pointer := model.Position{X: 350, Y: 250}

	for i := 0; i < 200; i++ {
		next, ok := e.EscapePosition(current, pointer, profile, arena)
		if !ok {
			t.Fatalf("expected relocation in a measured arena")
		}
		if next.X <= current.X {
			t.Fatalf("expected to move right, away from pointer: %+v", next)
		}
		moved := Distance(current, next)
		if math.Abs(moved-profile.MoveDistance) > 1e-9 {
			t.Fatalf("expected move of %.0f, got %f", profile.MoveDistance, moved)
		}
		angle := math.Atan2(next.Y-current.Y, next.X-current.X)
		if math.Abs(angle) > maxJitter+1e-9 {
			t.Fatalf("escape angle %f outside jitter range", angle)
		}
	}
}

func TestEscapePositionClampsToMargin(t *testing.T) {
	e := NewWithSeed(7)
	profile, _ := model.LookupDifficulty(model.DifficultyHard)
	corners := []model.Position{
		{X: Margin, Y: Margin},
		{X: arena.Width - Margin, Y: Margin},
		{X: Margin, Y: arena.Height - Margin},
		{X: arena.Width - Margin, Y: arena.Height - Margin},
	}
	for _, c := range corners {
		pointer := model.Position{X: arena.Width / 2, Y: arena.Height / 2}
		for i := 0; i < 50; i++ {
			next, _ := e.EscapePosition(c, pointer, profile, arena)
			assertInArena(t, next, arena)
		}
	}
}

func TestEscapePositionUnmeasuredArena(t *testing.T) {
	e := NewWithSeed(1)
	_, ok := e.EscapePosition(model.Position{X: 50, Y: 50}, model.Position{X: 40, Y: 50}, model.DefaultDifficulty(), model.Bounds{})
	if ok {
		t.Fatalf("expected no relocation for a zero-size arena")
	}
}

func TestResetPositionWithinArena(t *testing.T) {
	e := NewWithSeed(3)
	for i := 0; i < 500; i++ {
		p, ok := e.ResetPosition(arena)
		if !ok {
			t.Fatalf("expected reset position")
		}
		assertInArena(t, p, arena)
	}
	if _, ok := e.ResetPosition(model.Bounds{Width: 0, Height: 300}); ok {
		t.Fatalf("expected no position for unmeasured arena")
	}
}

func TestResetPositionTinyArenaPinsToMargin(t *testing.T) {
	e := NewWithSeed(3)
	p, ok := e.ResetPosition(model.Bounds{Width: 80, Height: 80})
	if !ok {
		t.Fatalf("expected a position")
	}
	if p.X != Margin || p.Y != Margin {
		t.Fatalf("expected target pinned to margin, got %+v", p)
	}
}

func TestWithinIsStrict(t *testing.T) {
	target := model.Position{X: 0, Y: 0}
	if Within(target, model.Position{X: 80, Y: 0}, 80) {
		t.Fatalf("pointer exactly on the radius must not trigger")
	}
	if !Within(target, model.Position{X: 79.9, Y: 0}, 80) {
		t.Fatalf("pointer inside the radius must trigger")
	}
}

func assertInArena(t *testing.T, p model.Position, b model.Bounds) {
	t.Helper()
	if p.X < Margin || p.X > b.Width-Margin || p.Y < Margin || p.Y > b.Height-Margin {
		t.Fatalf("position %+v outside margin-bounded arena %+v", p, b)
	}
}
