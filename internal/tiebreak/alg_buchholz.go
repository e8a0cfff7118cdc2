package tiebreak

import (
	"sort"
	"strings"
)

// algBuchholz implements the whole Buchholz/Fore-Buchholz/Sonneborn-Berger
// family — BH, FB, SB, ABH, AFB, AOB's base pass, and the ESB/EMMSB/EMGSB/
// EGMSB/EGGSB cross-dimension variants. Phase 1 computes each competitor's
// adjusted own score (abh), used as the "opponent's score" term for everyone
// who played them — byes and unplayed-round gaps are filled in with the draw
// value outside round-robin play, and a fore-Buchholz adjustment (FB/AFB or
// the F modifier) scores a last-round game against a real opponent as a
// draw when the competitor played the last round. Phase
// 2 sums (or, for Sonneborn-Berger variants, score-weights) each opponent's
// abh, then cuts the worst Low and best High rounds, preferring to cut a VUR
// round first.
func algBuchholz(e *Engine, td *TiebreakDescriptor) string {
	name := strings.ToLower(td.Name)
	isFB := name == "fb" || name == "afb" || td.Modifiers.Fmo

	resolved := name
	if resolved == "aob" {
		resolved = "bh"
	}
	isESBFamily := len(resolved) == 5 && resolved[0] == 'e' && resolved[3:5] == "sb"
	isSB := resolved == "sb" || resolved == "esb" || isESBFamily

	opoints, oscoreSystem, oprefix := e.scoreInfo(td, true)
	var spoints PointType
	var sscoreSystem string
	if resolved == "esb" || isESBFamily {
		spoints, sscoreSystem, _ = e.scoreInfo(td, false)
	} else {
		spoints, sscoreSystem, _ = e.scoreInfo(td, resolved == "sb")
	}

	opointsForDraw := e.Registry.Get(oscoreSystem, "D").MulInt(teamFactor(opoints, e.TeamSize))
	spointsForDraw := e.Registry.Get(sscoreSystem, "D").MulInt(teamFactor(spoints, e.TeamSize))

	for _, cmp := range e.Cmps {
		abh := newScalarAcc(Zero)
		adjFore := isFB && cmp.stat(oprefix+"lp").IntVal() == e.TotalRounds
		lo := cmp.stat(oprefix + "lo").IntVal()
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			rr, ok := cmp.Results[rnd]
			if !ok {
				continue
			}
			pointsNoOpp := Zero
			if !e.RR {
				pointsNoOpp = opointsForDraw
			}
			var tbVal Decimal
			if rnd <= lo || adjFore || rr.Opponent > 0 {
				tbVal = roundPoints(cmp, rnd, opoints)
			} else {
				tbVal = pointsNoOpp
			}
			abh.addDecRound(rnd, tbVal)
		}
		fbScore := cmp.stat(oprefix + "points").DecVal()
		if adjFore {
			lg := cmp.stat(oprefix + "lg").DecVal()
			adjust := opointsForDraw.Sub(lg)
			cur := Zero
			if v, ok := abh.Rounds[e.TotalRounds].(Decimal); ok {
				cur = v
			}
			abh.Rounds[e.TotalRounds] = cur.Add(adjust)
			abh.Val = abh.DecVal().Add(adjust)
			fbScore = fbScore.Add(adjust)
		}
		cmp.State[oprefix+"abh"] = abh
		cmp.State[oprefix+"ownscore"] = newScalarAcc(fbScore)
	}
	if name == "abh" || name == "afb" {
		return "abh"
	}

	type bhTerm struct {
		vur     bool
		tbvalue Decimal
		score   Decimal
		rnd     int
	}

	for _, cmp := range e.Cmps {
		var terms []bhTerm
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			rr, ok := cmp.Results[rnd]
			if !ok {
				continue
			}
			played := rr.Played
			if td.Modifiers.P4F || (isFB && rnd == e.TotalRounds) {
				played = true
			}
			vur := rr.VUR
			var score Decimal
			if played && rr.Opponent > 0 {
				vur = false
				if opp := e.Cmps[rr.Opponent]; opp != nil {
					score = opp.stat(oprefix + "abh").DecVal()
				}
			} else if !e.RR {
				score = cmp.stat(oprefix + "ownscore").DecVal()
			} else {
				score = Zero
			}
			var sres Decimal
			if td.Modifiers.Urd && !e.RR {
				sres = spointsForDraw
			} else {
				sres = roundPoints(cmp, rnd, spoints)
			}
			var tbvalue Decimal
			if isSB {
				tbvalue = score.Mul(sres)
			} else {
				tbvalue = score
			}
			if rr.Opponent > 0 || !e.RR {
				terms = append(terms, bhTerm{vur: vur, tbvalue: tbvalue, score: score, rnd: rnd})
			}
		}

		acc := newScalarAcc(Zero)
		acc.Cut = []int{}
		for _, t := range terms {
			acc.setRound(t.rnd, t.tbvalue)
		}

		low := td.Modifiers.Low
		if low > e.Rounds {
			low = e.Rounds
		}
		high := td.Modifiers.High
		if low+high > e.Rounds {
			high = e.Rounds - low
		}

		cur := terms
		for low > 0 && len(cur) > 0 {
			sortAll := append([]bhTerm(nil), cur...)
			sort.SliceStable(sortAll, func(i, j int) bool {
				if !sortAll[i].score.Equal(sortAll[j].score) {
					return sortAll[i].score.LessThan(sortAll[j].score)
				}
				return sortAll[i].tbvalue.LessThan(sortAll[j].tbvalue)
			})
			sortExp := append([]bhTerm(nil), cur...)
			sort.SliceStable(sortExp, func(i, j int) bool {
				vi, vj := boolToInt(sortExp[i].vur), boolToInt(sortExp[j].vur)
				if vi != vj {
					return vi > vj // vur=true sorts first (preferred cut)
				}
				if !sortExp[i].score.Equal(sortExp[j].score) {
					return sortExp[i].score.LessThan(sortExp[j].score)
				}
				return sortExp[i].tbvalue.LessThan(sortExp[j].tbvalue)
			})
			if td.Modifiers.Vun || sortAll[0].tbvalue.GreaterThan(sortExp[0].tbvalue) {
				acc.Cut = append(acc.Cut, sortAll[0].rnd)
				cur = sortAll[1:]
			} else {
				acc.Cut = append(acc.Cut, sortExp[0].rnd)
				cur = sortExp[1:]
			}
			low--
		}
		for high > 0 && len(cur) > 0 {
			sortAll := append([]bhTerm(nil), cur...)
			sort.SliceStable(sortAll, func(i, j int) bool {
				if !sortAll[i].score.Equal(sortAll[j].score) {
					return sortAll[i].score.GreaterThan(sortAll[j].score)
				}
				return sortAll[i].tbvalue.GreaterThan(sortAll[j].tbvalue)
			})
			acc.Cut = append(acc.Cut, sortAll[0].rnd)
			cur = sortAll[1:]
			high--
		}
		for _, t := range cur {
			acc.Val = acc.DecVal().Add(t.tbvalue)
		}
		cmp.State[oprefix+resolved] = acc
	}
	return resolved
}
