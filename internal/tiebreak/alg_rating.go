package tiebreak

import (
	"sort"
	"strings"

	"tiebreakengine/internal/rating"
)

// algRatingPerformance computes ARO, TPR and PTP together in one pass over
// each competitor's opponents ("Rating-performance"), since all three share
// the same cut bookkeeping: the Low worst-rated and High best-rated
// opponents are dropped, counting unrated opponents as rating Unr when the
// `U` modifier supplies one.
func algRatingPerformance(e *Engine, td *TiebreakDescriptor) string {
	points, _, prefix := e.scoreInfo(td, true)

	type oppEntry struct {
		rnd     int
		rating  int
		rpoints Decimal
	}

	for _, cmp := range e.Cmps {
		var opps []oppEntry
		trounds := 0
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			rr, ok := cmp.Results[rnd]
			if !ok || !rr.Played || rr.Opponent <= 0 {
				continue
			}
			trounds++
			rtg := rr.OppRating
			if rtg <= 0 {
				if td.Modifiers.Unr <= 0 {
					continue
				}
				rtg = td.Modifiers.Unr
			}
			opps = append(opps, oppEntry{rnd: rnd, rating: rtg, rpoints: rr.PointsRating})
		}

		low := td.Modifiers.Low
		if low > e.Rounds {
			low = e.Rounds
		}
		high := td.Modifiers.High
		if low+high > e.Rounds {
			high = e.Rounds - low
		}

		aroAcc := newScalarAcc(Zero)
		tprAcc := newScalarAcc(Zero)
		ptpAcc := newScalarAcc(Zero)
		aroAcc.Cut, tprAcc.Cut, ptpAcc.Cut = []int{}, []int{}, []int{}
		for _, o := range opps {
			aroAcc.setRound(o.rnd, o.rating)
			tprAcc.setRound(o.rnd, o.rating)
			ptpAcc.setRound(o.rnd, o.rating)
		}

		cur := opps
		for low > 0 && trounds == len(cur) && len(cur) > 0 {
			sorted := append([]oppEntry(nil), cur...)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].rating < sorted[j].rating })
			cutRnd := sorted[0].rnd
			aroAcc.Cut = append(aroAcc.Cut, cutRnd)
			tprAcc.Cut = append(tprAcc.Cut, cutRnd)
			ptpAcc.Cut = append(ptpAcc.Cut, cutRnd)
			cur = sorted[1:]
			trounds--
			low--
		}
		for high > 0 && trounds == len(cur) && len(cur) > 0 {
			sorted := append([]oppEntry(nil), cur...)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].rating < sorted[j].rating })
			cutRnd := sorted[len(sorted)-1].rnd
			aroAcc.Cut = append(aroAcc.Cut, cutRnd)
			tprAcc.Cut = append(tprAcc.Cut, cutRnd)
			ptpAcc.Cut = append(ptpAcc.Cut, cutRnd)
			cur = sorted[:len(sorted)-1]
			trounds--
			high--
		}

		rscore := 0.0
		var ratings []int
		for _, o := range cur {
			rscore += o.rpoints.Float64()
			ratings = append(ratings, o.rating)
		}
		aroAcc.Val = decimalFromFloat(rating.ComputeAverageRatingOpponents(ratings))
		tprAcc.Val = decimalFromFloat(rating.ComputeTournamentPerformanceRating(rscore, ratings))
		ptpAcc.Val = decimalFromFloat(rating.ComputePerfectTournamentPerformance(rscore, ratings))

		cmp.State[prefix+"aro"] = aroAcc
		cmp.State[prefix+"tpr"] = tprAcc
		cmp.State[prefix+"ptp"] = ptpAcc
	}
	_ = points
	return strings.ToLower(td.Name)
}

// algAverage averages the values a previously-computed per-opponent
// statistic (sourceName, e.g. "bh", "tpr") produced for each competitor's
// played opponents, optionally ignoring zero values, and quantizes the
// result to `scale` fractional digits ("AOB/APRO/APPO").
func algAverage(e *Engine, td *TiebreakDescriptor, sourceName string, ignoreZero bool, scale int) string {
	_, _, prefix := e.scoreInfo(td, true)
	tbname := strings.ToLower(td.Name)
	for _, cmp := range e.Cmps {
		acc := newScalarAcc(Zero)
		acc.Cut = []int{}
		sum := Zero
		num := 0
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			rr, ok := cmp.Results[rnd]
			if !ok || !rr.Played || rr.Opponent <= 0 {
				continue
			}
			opp := e.Cmps[rr.Opponent]
			if opp == nil {
				continue
			}
			val := opp.stat(prefix + sourceName).DecVal()
			if !ignoreZero || val.Sign() > 0 {
				num++
				sum = sum.Add(val)
				acc.setRound(rnd, val)
			}
		}
		result := Zero
		if num > 0 {
			result = sum.DivInt(num).QuantizeHalfUp(scale)
		}
		acc.Val = result
		cmp.State[prefix+tbname] = acc
	}
	return tbname
}
