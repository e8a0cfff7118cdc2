package tiebreak

import "strconv"

// algRfp renders each round's pairing as "<opponent><colour>" (e.g. "12w"),
// "Y" for a present competitor past the last played round awaiting a
// pairing, or "" otherwise — the colour-for-pairing audit trail RFP exposes
// rather than any numeric score ("Colour-for-pairing").
func algRfp(e *Engine, td *TiebreakDescriptor) string {
	_, _, prefix := e.scoreInfo(td, true)
	for _, cmp := range e.Cmps {
		acc := newScalarAcc("")
		val := ""
		for rnd := 1; rnd <= e.Rounds+1; rnd++ {
			val = ""
			if rr, ok := cmp.Results[rnd]; ok {
				var clr byte
				switch {
				case rr.Opponent == 0:
					clr = 'w'
				case cmp.Cid == 0:
					clr = 'b'
				default:
					clr = rr.Color
				}
				if rr.Played || rr.Opponent > 0 {
					val = strconv.Itoa(rr.Opponent) + string(clr)
				}
			} else if rnd > e.LastPlayedRound {
				if cmp.Present {
					val = "Y"
				}
			}
			if rnd <= e.Rounds {
				acc.setRound(rnd, val)
			}
		}
		acc.Val = val
		cmp.State[prefix+"rfp"] = acc
	}
	return "rfp"
}
