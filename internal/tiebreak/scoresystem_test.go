package tiebreak

import "testing"

func TestRegistryStandardSystem(t *testing.T) {
	reg := NewRegistry()
	reg.AddSystem("game", StandardSystem())

	if got := reg.Get("game", "W"); !got.Equal(MustDecimal("1")) {
		t.Errorf("game W = %s, want 1", got.String())
	}
	if got := reg.Get("game", "D"); !got.Equal(MustDecimal("0.5")) {
		t.Errorf("game D = %s, want 0.5", got.String())
	}
	if got := reg.Get("game", "L"); !got.Equal(Zero) {
		t.Errorf("game L = %s, want 0", got.String())
	}
	if got := reg.Get("missing", "W"); !got.IsZero() {
		t.Errorf("missing system should yield Zero, got %s", got.String())
	}
	if !reg.Has("game") {
		t.Error("Has(game) = false, want true")
	}
	if reg.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

func TestComplementTag(t *testing.T) {
	cases := map[string]string{"W": "L", "L": "W", "D": "D", "Z": "Z", "U": "U"}
	for tag, want := range cases {
		if got := ComplementTag(tag); got != want {
			t.Errorf("ComplementTag(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestSolveScoreSystemStandard(t *testing.T) {
	// Two rows consistent with the conventional 1/0.5/0 system: a decisive
	// game (W+L=1) and a drawn game (D+D=1).
	eqs := []ScoreEquation{
		{W: 1, Sum: MustDecimal("1")},
		{D: 2, Sum: MustDecimal("1")},
	}
	sys, ok := SolveScoreSystem(eqs)
	if !ok {
		t.Fatal("SolveScoreSystem failed to find a consistent assignment")
	}
	if !sys["D"].Equal(MustDecimal("0.5")) {
		t.Errorf("solved D = %s, want 0.5", sys["D"].String())
	}
}
