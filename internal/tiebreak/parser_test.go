package tiebreak

import "testing"

func TestParserBasicNameAndModifiers(t *testing.T) {
	p := NewParser(false, false, 0)
	td := p.Parse(1, "bh@23:mp/c1/m2")
	if td.Name != "BH" {
		t.Errorf("Name = %q, want BH", td.Name)
	}
	if td.Year != 23 {
		t.Errorf("Year = %d, want 23", td.Year)
	}
	if td.PointType != PTMPoints {
		t.Errorf("PointType = %q, want mpoints", td.PointType)
	}
	if td.Modifiers.Low != 2 || td.Modifiers.High != 2 {
		t.Errorf("Low/High = %d/%d, want 2/2 (M2 overrides C1)", td.Modifiers.Low, td.Modifiers.High)
	}
}

func TestParserDefaultYear(t *testing.T) {
	p := NewParser(false, false, 0)
	td := p.Parse(1, "PTS")
	if td.Year != 24 {
		t.Errorf("default Year = %d, want 24", td.Year)
	}
}

func TestParserPrimaryScoreCarriesForward(t *testing.T) {
	p := NewParser(true, false, 0)
	pts := p.Parse(1, "MPTS")
	if pts.PointType != PTMPoints {
		t.Fatalf("MPTS PointType = %q, want mpoints", pts.PointType)
	}
	bh := p.Parse(2, "BH")
	if bh.PointType != PTMPoints {
		t.Errorf("subsequent BH should inherit primary score mpoints, got %q", bh.PointType)
	}
}

func TestParserModifierTokens(t *testing.T) {
	p := NewParser(false, false, 0)

	td := p.Parse(1, "BH/C2/D/P/U2200/V")
	if td.Modifiers.Low != 2 {
		t.Errorf("C2 => Low = %d, want 2", td.Modifiers.Low)
	}
	if !td.Modifiers.Urd {
		t.Error("D modifier should set Urd")
	}
	if !td.Modifiers.P4F {
		t.Error("P modifier should set P4F")
	}
	if td.Modifiers.Unr != 2200 {
		t.Errorf("U2200 => Unr = %d, want 2200", td.Modifiers.Unr)
	}
	if !td.Modifiers.Vun {
		t.Error("V modifier should set Vun")
	}
}

func TestParserLModifierPlimAndNlim(t *testing.T) {
	p := NewParser(false, false, 0)

	td := p.Parse(1, "KS/L60")
	if !td.Modifiers.Plim.Equal(MustDecimal("60")) {
		t.Errorf("L60 => Plim = %s, want 60", td.Modifiers.Plim.String())
	}

	td2 := p.Parse(2, "KS/L+1.5")
	if !td2.Modifiers.Nlim.Equal(MustDecimal("1.5")) {
		t.Errorf("L+1.5 => Nlim = %s, want 1.5", td2.Modifiers.Nlim.String())
	}

	td3 := p.Parse(3, "KS/L-3")
	// no '.' => half-point unit scaling: 3/2 = 1.5, then negated.
	if !td3.Modifiers.Nlim.Equal(MustDecimal("-1.5")) {
		t.Errorf("L-3 => Nlim = %s, want -1.5", td3.Modifiers.Nlim.String())
	}
}

func TestParserUnknownModifierIgnoredSilently(t *testing.T) {
	p := NewParser(false, false, 0)
	td := p.Parse(1, "BH/Q9")
	if td.Name != "BH" {
		t.Fatalf("unknown modifier corrupted the descriptor: %+v", td)
	}
}

func TestParserRoundRobinForcesP4F(t *testing.T) {
	p := NewParser(false, true, 0)
	td := p.Parse(1, "BH")
	if !td.Modifiers.P4F {
		t.Error("round-robin without S modifier should force P4F")
	}

	p2 := NewParser(false, true, 0)
	td2 := p2.Parse(1, "BH/S")
	if td2.Modifiers.P4F {
		t.Error("S modifier should suppress the round-robin P4F auto-force")
	}
}

func TestParserSeparatorsEquivalent(t *testing.T) {
	p := NewParser(false, false, 0)
	a := p.Parse(1, "BH/C1")
	p2 := NewParser(false, false, 0)
	b := p2.Parse(1, "BH!C1")
	c := NewParser(false, false, 0).Parse(1, "BH#C1")
	if a.Modifiers.Low != b.Modifiers.Low || b.Modifiers.Low != c.Modifiers.Low {
		t.Errorf("/, !, # should be equivalent separators: %d %d %d", a.Modifiers.Low, b.Modifiers.Low, c.Modifiers.Low)
	}
}
