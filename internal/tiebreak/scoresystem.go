package tiebreak

// ScoreSystem maps the single-letter outcome tags recognised by (W win, D
// draw, L loss, Z zero-point bye, P pairing-allocated bye, U
// unrated/unknown, A adjusted) to their decimal point value.
type ScoreSystem map[string]Decimal

// knownTags enumerates the closed tag set a ScoreSystem may define.
var knownTags = []string{"W", "D", "L", "Z", "P", "U", "A"}

// complement maps an outcome tag to the tag the opponent receives for the
// same game ("reverse map"). A result with no real opponent (P, Z) has no
// meaningful complement and maps to itself.
var complement = map[string]string{
	"W": "L",
	"L": "W",
	"D": "D",
	"Z": "Z",
	"P": "P",
	"U": "U",
	"A": "A",
}

// ComplementTag returns the outcome tag the opponent side receives given
// this side's tag.
func ComplementTag(tag string) string {
	if c, ok := complement[tag]; ok {
		return c
	}
	return tag
}

// Registry holds the named score systems of a tournament. At minimum "game",
// "match" (equal to "game" for individual events) and the pseudo system
// "rating" (always W=1, D=1/2, L=0) must be present.
type Registry struct {
	systems map[string]ScoreSystem
}

// NewRegistry builds a registry holding only the "rating" pseudo system; use
// AddSystem (with StandardSystem() for the conventional default) to register
// the game/match systems and tournament-specific ones.
func NewRegistry() *Registry {
	return &Registry{systems: map[string]ScoreSystem{
		"rating": {
			"W": MustDecimal("1.0"),
			"D": MustDecimal("0.5"),
			"L": MustDecimal("0.0"),
			"Z": MustDecimal("0.0"),
			"P": MustDecimal("1.0"),
			"U": MustDecimal("0.0"),
			"A": MustDecimal("0.5"),
		},
	}}
}

// AddSystem registers a named score system, filling any tag missing from
// the supplied map with zero so lookups never panic.
func (r *Registry) AddSystem(name string, tags map[string]Decimal) {
	sys := make(ScoreSystem, len(knownTags))
	for _, tag := range knownTags {
		if v, ok := tags[tag]; ok {
			sys[tag] = v
		} else {
			sys[tag] = Zero
		}
	}
	r.systems[name] = sys
}

// StandardSystem returns the conventional 1/½/0 win-draw-loss system with a
// pairing-allocated-bye worth a full win, used as the default "game" and
// "match" system when a tournament does not specify its own.
func StandardSystem() map[string]Decimal {
	return map[string]Decimal{
		"W": MustDecimal("1.0"),
		"D": MustDecimal("0.5"),
		"L": MustDecimal("0.0"),
		"Z": MustDecimal("0.0"),
		"P": MustDecimal("1.0"),
		"U": MustDecimal("0.0"),
		"A": MustDecimal("0.5"),
	}
}

// Get returns the value of tag under the named score system, or Zero if
// either the system or the tag is unknown (: invariant violations degrade to
// a neutral value rather than panicking).
func (r *Registry) Get(system, tag string) Decimal {
	sys, ok := r.systems[system]
	if !ok {
		return Zero
	}
	if v, ok := sys[tag]; ok {
		return v
	}
	return Zero
}

// Has reports whether a named system is registered.
func (r *Registry) Has(system string) bool {
	_, ok := r.systems[system]
	return ok
}

// ScoreEquation is one observed result row fed to SolveScoreSystem: the
// number of W/D/L/U occurrences that must sum to Sum under the unknown score
// system, plus how many were pairing-allocated byes (P) whose tag value is
// one of PabCandidates.
type ScoreEquation struct {
	W, D, L, U, P int
	PabCandidates []string
	Sum           Decimal
}

// candidateValues enumerates the loss/draw/win triples this solver tries: a
// loss of 0, 0.5 or 1, a draw 0.5 to 2 above the loss, and a win of at least
// 2*draw - loss (a win exceeds a draw by at least as much as a draw exceeds
// a loss).
func candidateValues() [][3]Decimal {
	var out [][3]Decimal
	losses := []Decimal{MustDecimal("0.0"), MustDecimal("0.5"), MustDecimal("1.0")}
	drawOffsets := []Decimal{MustDecimal("0.5"), MustDecimal("1.0"), MustDecimal("1.5"), MustDecimal("2.0")}
	winOffsets := []Decimal{MustDecimal("0.0"), MustDecimal("1.0"), MustDecimal("0.5"), MustDecimal("1.0"), MustDecimal("1.5"), MustDecimal("2.0")}
	for _, loss := range losses {
		for _, do := range drawOffsets {
			draw := loss.Add(do)
			for i, wo := range winOffsets {
				var win Decimal
				if i == 0 {
					win = draw.Add(draw).Sub(loss)
				} else {
					win = draw.Add(draw).Sub(loss).Add(wo)
				}
				out = append(out, [3]Decimal{loss, draw, win})
			}
		}
	}
	return out
}

// SolveScoreSystem finds a W/D/L/U assignment consistent with every
// equation, trying progressively wider sets of tags a pairing-allocated bye
// may be worth (W, D or L alone, then W/D and D/L, then all three),
// mirroring helpers.solve_scoresystem's escalating calls to
// solve_scoresystem_p. U takes the value of whichever of D, L or W is being
// tried as the unknown tag.
// Returns ok=false if no consistent assignment exists.
func SolveScoreSystem(equations []ScoreEquation) (ScoreSystem, bool) {
	attempts := [][]string{{"W"}, {"D"}, {"L"}, {"W", "D"}, {"D", "L"}, {"W", "D", "L"}}
	for _, pab := range attempts {
		if sys, ok := solveWithPAB(equations, pab); ok {
			return sys, true
		}
	}
	return nil, false
}

func solveWithPAB(equations []ScoreEquation, pab []string) (ScoreSystem, bool) {
	for _, ldw := range candidateValues() {
		loss, draw, win := ldw[0], ldw[1], ldw[2]
		for _, unknownTag := range []string{"D", "L", "W"} {
			unknownVal := map[string]Decimal{"W": win, "D": draw, "L": loss}[unknownTag]
			ok := true
			for _, eq := range equations {
				sum := win.MulInt(eq.W).Add(draw.MulInt(eq.D)).Add(loss.MulInt(eq.L)).Add(unknownVal.MulInt(eq.U))
				if eq.P > 0 {
					pok := false
					for _, p := range pab {
						pv := map[string]Decimal{"W": win, "D": draw, "L": loss}[p]
						if p == "U" {
							pv = unknownVal
						}
						if sum.Add(pv.MulInt(eq.P)).Equal(eq.Sum) {
							pok = true
							break
						}
					}
					ok = ok && pok
				} else {
					ok = ok && sum.Equal(eq.Sum)
				}
				if !ok {
					break
				}
			}
			if ok {
				sys := map[string]Decimal{
					"W": win, "D": draw, "L": loss, "U": unknownVal,
					"Z": Zero, "P": win, "A": draw,
				}
				full := make(ScoreSystem, len(knownTags))
				for _, tag := range knownTags {
					full[tag] = sys[tag]
				}
				return full, true
			}
		}
	}
	return nil, false
}
