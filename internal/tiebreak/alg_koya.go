package tiebreak

// algKoya sums the score earned against every opponent whose own cumulative
// score reaches a threshold (Plim percent of the maximum possible, plus
// Nlim), cutting rounds against opponents below it ("Koya").
func algKoya(e *Engine, td *TiebreakDescriptor) string {
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	factor := teamFactor(points, e.TeamSize)
	winVal := e.Registry.Get(scoreSystem, "W")
	lim := td.Modifiers.Plim.Mul(winVal).MulInt(e.Rounds).MulInt(factor).DivInt(100).Add(td.Modifiers.Nlim)

	for _, cmp := range e.Cmps {
		acc := newScalarAcc(Zero)
		acc.Cut = []int{}
		ks := Zero
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			rr, ok := cmp.Results[rnd]
			if !ok || rr.Opponent <= 0 {
				continue
			}
			opp := e.Cmps[rr.Opponent]
			if opp == nil {
				continue
			}
			own := roundPoints(cmp, rnd, points)
			acc.setRound(rnd, own)
			oppScore := opp.stat(prefix + "points").DecVal()
			if oppScore.Cmp(lim) >= 0 {
				ks = ks.Add(own)
			} else {
				acc.Cut = append(acc.Cut, rnd)
			}
		}
		acc.Val = ks
		cmp.State[prefix+"ks"] = acc
	}
	return "ks"
}
