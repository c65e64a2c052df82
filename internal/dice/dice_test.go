package dice

import (
	"errors"
	"testing"
)

func TestRollStaysInRange(t *testing.T) {
	engine := NewSeeded(42)

	specs := []Spec{
		{Sides: 6, Count: 1},
		{Sides: 6, Count: 3},
		{Sides: 20, Count: 2},
		{Sides: 1, Count: 5},
		{Sides: 100, Count: 1},
	}

	for _, spec := range specs {
		t.Run(spec.String(), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				got := engine.Roll(spec.Sides, spec.Count, 0)
				if got < spec.Count || got > spec.Count*spec.Sides {
					t.Fatalf("roll %d out of range [%d, %d]", got, spec.Count, spec.Count*spec.Sides)
				}
			}
		})
	}
}

func TestRollAppliesModifier(t *testing.T) {
	engine := Fixed(4)

	if got := engine.Roll(6, 3, -3); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := engine.D6(2, 2); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestSeededEnginesAreDeterministic(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)

	for i := 0; i < 100; i++ {
		if x, y := a.Roll(6, 3, 0), b.Roll(6, 3, 0); x != y {
			t.Fatalf("roll %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestRollPanicsOnInvalidSpec(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidDiceSpec) {
			t.Fatalf("expected ErrInvalidDiceSpec panic, got %v", r)
		}
	}()

	NewSeeded(1).Roll(0, 1, 0)
}

func TestRollCheckedRejectsInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{name: "zero sides", spec: Spec{Sides: 0, Count: 1}},
		{name: "zero count", spec: Spec{Sides: 6, Count: 0}},
		{name: "negative", spec: Spec{Sides: -6, Count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeeded(1).RollChecked(tt.spec)
			if !errors.Is(err, ErrInvalidDiceSpec) {
				t.Fatalf("expected ErrInvalidDiceSpec, got %v", err)
			}
		})
	}
}

func TestScriptedReplaysFaces(t *testing.T) {
	src := NewScripted(1, 6, 3)
	engine := NewEngine(src)

	if got := engine.Roll(6, 3, 0); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := engine.Roll(6, 1, 0); got != 1 {
		t.Fatalf("expected wrap-around to 1, got %d", got)
	}
	if got := engine.Roll(4, 1, 0); got != 4 {
		t.Fatalf("expected face capped to 4, got %d", got)
	}
	if src.Consumed() != 5 {
		t.Fatalf("expected 5 faces consumed, got %d", src.Consumed())
	}
}

func TestDeriveSeed(t *testing.T) {
	if DeriveSeed(1, "star-0") != DeriveSeed(1, "star-0") {
		t.Fatal("expected identical derivation for identical input")
	}
	if DeriveSeed(1, "star-0") == DeriveSeed(1, "star-1") {
		t.Fatal("expected different salts to produce different seeds")
	}
	if DeriveSeed(1, "star-0") == DeriveSeed(2, "star-0") {
		t.Fatal("expected different seeds to produce different children")
	}
}

func TestSpecString(t *testing.T) {
	tests := map[string]Spec{
		"3d6":   {Sides: 6, Count: 3},
		"2d6+4": {Sides: 6, Count: 2, Modifier: 4},
		"1d6-3": {Sides: 6, Count: 1, Modifier: -3},
	}
	for want, spec := range tests {
		if got := spec.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
