package tiebreak

// algProgressive computes the progressive (cumulative) score sum, with the
// lowest Low rounds' running totals cut from the sum ("Progressive score").
func algProgressive(e *Engine, td *TiebreakDescriptor) string {
	points, _, prefix := e.scoreInfo(td, true)
	low := td.Modifiers.Low

	for _, cmp := range e.Cmps {
		acc := newScalarAcc(Zero)
		acc.Cut = []int{}
		running := Zero
		ps := Zero
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			running = running.Add(roundPoints(cmp, rnd, points))
			acc.setRound(rnd, running)
			if rnd <= low {
				acc.Cut = append(acc.Cut, rnd)
			} else {
				ps = ps.Add(running)
			}
		}
		acc.Val = ps
		cmp.State[prefix+"ps"] = acc
	}
	return "ps"
}
