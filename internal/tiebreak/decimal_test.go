package tiebreak

import "testing"

func TestDecimalArithmetic(t *testing.T) {
	half := MustDecimal("0.5")
	one := MustDecimal("1")
	if got := half.Add(half); !got.Equal(one) {
		t.Fatalf("0.5+0.5 = %s, want 1", got.String())
	}
	if got := one.Sub(half); !got.Equal(half) {
		t.Fatalf("1-0.5 = %s, want 0.5", got.String())
	}
	if got := half.Mul(NewDecimalInt(4)); !got.Equal(NewDecimalInt(2)) {
		t.Fatalf("0.5*4 = %s, want 2", got.String())
	}
	if got := NewDecimalInt(1).DivInt(0); !got.IsZero() {
		t.Fatalf("division by zero should yield Zero, got %s", got.String())
	}
}

func TestDecimalString(t *testing.T) {
	cases := map[string]string{
		"0":     "0",
		"1":     "1",
		"0.5":   "0.5",
		"-0.5":  "-0.5",
		"2.25":  "2.25",
		"3.125": "3.125",
	}
	for in, want := range cases {
		d := MustDecimal(in)
		if got := d.String(); got != want {
			t.Errorf("MustDecimal(%q).String() = %q, want %q", in, got, want)
		}
	}
}

func TestDecimalQuantizeHalfUp(t *testing.T) {
	cases := []struct {
		in    string
		scale int
		want  string
	}{
		{"0.125", 2, "0.13"},
		{"0.124", 2, "0.12"},
		{"1", 2, "1"},
		{"0.005", 2, "0.01"},
	}
	for _, c := range cases {
		got := MustDecimal(c.in).QuantizeHalfUp(c.scale).String()
		if got != c.want {
			t.Errorf("QuantizeHalfUp(%s, %d) = %s, want %s", c.in, c.scale, got, c.want)
		}
	}
}

func TestDecimalExponent(t *testing.T) {
	cases := map[string]int{
		"1":    0,
		"0.5":  1,
		"0.25": 2,
		"0.1":  1,
	}
	for in, want := range cases {
		if got := MustDecimal(in).Exponent(); got != want {
			t.Errorf("Exponent(%s) = %d, want %d", in, got, want)
		}
	}
}

func TestDecimalJSONRoundTrip(t *testing.T) {
	d := MustDecimal("1.5")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var out Decimal
	if err := out.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !out.Equal(d) {
		t.Fatalf("round trip mismatch: got %s, want %s", out.String(), d.String())
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"31.12.2024":          "2024-12-31",
		"2024.12.31":          "2024-12-31",
		"2024-12-31 10:00:00": "2024-12-31 10:00:00",
	}
	for in, want := range cases {
		if got := ParseDate(in); got != want {
			t.Errorf("ParseDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMinutes(t *testing.T) {
	if got := ParseMinutes("01:30:00"); got != 90 {
		t.Fatalf("ParseMinutes(01:30:00) = %d, want 90", got)
	}
	if got := ParseMinutes("bad"); got != 0 {
		t.Fatalf("ParseMinutes(bad) = %d, want 0", got)
	}
}
