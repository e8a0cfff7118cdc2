package tiebreak

import "math"

// algSSC computes the score-strength combination criterion: it assumes
// algBuchholz has already been run against the same descriptor (storing a
// Buchholz-style opponent-score sum under the "sssc" key), divides that sum
// by a board-count-derived divisor, adds the competitor's own total along
// the *other* score dimension, and quantizes to 0.01 ("Score-strength
// combination"). A zero divisor yields zero.
func algSSC(e *Engine, td *TiebreakDescriptor) string {
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	for _, cmp := range e.Cmps {
		dividend := cmp.stat(prefix + "sssc").DecVal()

		var score Decimal
		var divisorFloat float64
		switch string(points)[0] {
		case 'm':
			score = cmp.stat("gpoints_points").DecVal()
			if e.MaxBoard > 0 {
				divisorFloat = e.Registry.Get(scoreSystem, "W").Float64() * float64(e.Rounds) /
					e.Registry.Get(e.GameScore, "W").Float64() / float64(e.MaxBoard)
			}
		case 'g':
			score = cmp.stat("mpoints_points").DecVal()
			divisorFloat = e.Registry.Get(scoreSystem, "W").Float64() * float64(e.Rounds) * float64(e.MaxBoard) /
				e.Registry.Get(e.MatchScore, "W").Float64()
		default:
			score = Zero
		}
		divisor := int(math.Floor(divisorFloat))
		if td.Modifiers.Nlim.Sign() > 0 {
			divisor = td.Modifiers.Nlim.Int()
		}

		val := Zero
		if divisor != 0 {
			val = score.Add(dividend.DivInt(divisor)).QuantizeHalfUp(2)
		}
		cmp.State[prefix+"sssc"] = newScalarAcc(val)
	}
	return "sssc"
}
