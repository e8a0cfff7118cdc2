// Package tiebreak implements the tournament tiebreak evaluator: the
// per-competitor score accumulator, the individual tiebreak criteria, the
// recursive tie-resolution driver and the tiebreak grammar parser.
package tiebreak

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Decimal is an exact fixed-point number backed by math/big.Rat. Every value
// that crosses a comparison or equality test in the evaluator uses Decimal
// instead of float64 so that score arithmetic never drifts. No
// arbitrary-precision decimal package appears anywhere in the retrieved
// example corpus (see DESIGN.md); math/big is the stdlib exception that
// grounding requires when the ecosystem offers nothing to reach for.
type Decimal struct {
	r *big.Rat
}

// Zero is the additive identity.
var Zero = Decimal{r: new(big.Rat)}

// NewDecimalInt builds a Decimal from an integer.
func NewDecimalInt(n int64) Decimal {
	return Decimal{r: new(big.Rat).SetInt64(n)}
}

// NewDecimalFrac builds a Decimal from a ratio of integers (num/den).
func NewDecimalFrac(num, den int64) Decimal {
	return Decimal{r: big.NewRat(num, den)}
}

func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return Zero, nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Decimal{}, fmt.Errorf("tiebreak: invalid decimal %q", s)
	}
	return Decimal{r: r}, nil
}

// MustDecimal is ParseDecimal without the error return, for literals known
// to be well-formed at compile time (score-system constants and the like).
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) rat() *big.Rat {
	if d.r == nil {
		return new(big.Rat)
	}
	return d.r
}

// Add returns d + o.
func (d Decimal) Add(o Decimal) Decimal {
	return Decimal{r: new(big.Rat).Add(d.rat(), o.rat())}
}

// Sub returns d - o.
func (d Decimal) Sub(o Decimal) Decimal {
	return Decimal{r: new(big.Rat).Sub(d.rat(), o.rat())}
}

// Mul returns d * o.
func (d Decimal) Mul(o Decimal) Decimal {
	return Decimal{r: new(big.Rat).Mul(d.rat(), o.rat())}
}

// MulInt returns d * n.
func (d Decimal) MulInt(n int) Decimal {
	return d.Mul(NewDecimalInt(int64(n)))
}

// Div returns d / o. Division by zero returns Zero (numeric underflow).
func (d Decimal) Div(o Decimal) Decimal {
	if o.rat().Sign() == 0 {
		return Zero
	}
	return Decimal{r: new(big.Rat).Quo(d.rat(), o.rat())}
}

// DivInt returns d / n, or Zero if n == 0.
func (d Decimal) DivInt(n int) Decimal {
	if n == 0 {
		return Zero
	}
	return d.Div(NewDecimalInt(int64(n)))
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return Decimal{r: new(big.Rat).Neg(d.rat())}
}

// Cmp returns -1, 0 or 1 as d is less than, equal to, or greater than o.
func (d Decimal) Cmp(o Decimal) int {
	return d.rat().Cmp(o.rat())
}

// Equal reports whether d == o.
func (d Decimal) Equal(o Decimal) bool { return d.Cmp(o) == 0 }

// LessThan reports whether d < o.
func (d Decimal) LessThan(o Decimal) bool { return d.Cmp(o) < 0 }

// GreaterThan reports whether d > o.
func (d Decimal) GreaterThan(o Decimal) bool { return d.Cmp(o) > 0 }

// IsZero reports whether d is exactly zero.
func (d Decimal) IsZero() bool { return d.rat().Sign() == 0 }

// Sign returns -1, 0 or 1.
func (d Decimal) Sign() int { return d.rat().Sign() }

// Float64 converts to a float64, for rating math that does not need exact
// arithmetic (allows f64 internally for rating/performance math).
func (d Decimal) Float64() float64 {
	f, _ := d.rat().Float64()
	return f
}

// Int returns the decimal truncated towards zero.
func (d Decimal) Int() int {
	q := new(big.Int).Quo(d.rat().Num(), d.rat().Denom())
	return int(q.Int64())
}

// Exponent returns the minimal number of decimal digits after the point
// needed to represent d exactly, i.e. the smallest k for which the reduced
// denominator divides 10^k, capped at 12 digits. Used by the assembler to
// report "numeric precision of a criterion".
func (d Decimal) Exponent() int {
	denom := d.rat().Denom()
	pow := big.NewInt(1)
	ten := big.NewInt(10)
	rem := new(big.Int)
	exp := 0
	for exp < 12 && rem.Mod(pow, denom).Sign() != 0 {
		pow.Mul(pow, ten)
		exp++
	}
	return exp
}

// QuantizeHalfUp rounds d to `scale` decimal digits using round-half-up
// rounding (ties round away from zero).
func (d Decimal) QuantizeHalfUp(scale int) Decimal {
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	scaled := new(big.Rat).Mul(d.rat(), new(big.Rat).SetInt(factor))

	num := new(big.Int).Set(scaled.Num())
	den := new(big.Int).Set(scaled.Denom())
	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if new(big.Int).Mul(r, big.NewInt(2)).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}
	return Decimal{r: new(big.Rat).SetFrac(q, factor)}
}

// String renders d with the minimal exact decimal representation (plain
// notation, never scientific), used for JSON and display output.
func (d Decimal) String() string {
	if d.rat().IsInt() {
		return d.rat().Num().String()
	}
	// Expand to a fixed number of digits sufficient to be exact for the
	// denominators this package produces (powers of 2 and 5 up to 1e8),
	// then trim trailing zeros.
	const digits = 10
	scaled := d.QuantizeHalfUp(digits)
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(digits), nil)
	s := new(big.Rat).Mul(scaled.rat(), new(big.Rat).SetInt(factor)).Num().String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for len(s) <= digits {
		s = "0" + s
	}
	intPart := s[:len(s)-digits]
	fracPart := strings.TrimRight(s[len(s)-digits:], "0")
	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// MarshalJSON encodes the Decimal as a bare JSON number literal.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON decodes a JSON number or string into a Decimal.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// AsFloatString formats d with exactly n fractional digits, for display.
func (d Decimal) AsFloatString(n int) string {
	return strconv.FormatFloat(d.Float64(), 'f', n, 64)
}
