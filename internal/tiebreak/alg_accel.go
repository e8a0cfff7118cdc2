package tiebreak

// accelerated resolves the acceleration bonus tag a competitor receives
// entering the given round, from the tournament's AccelerationRule table,
// defaulting to "Z" (no bonus) outside every rule's range
// ("Acceleration-derived").
func (e *Engine) accelerated(rnd, cid int) string {
	for _, rule := range e.Acceleration {
		if rnd >= rule.FirstRound && rnd <= rule.LastRound &&
			cid >= rule.FirstCompetitor && cid <= rule.LastCompetitor {
			return rule.GameScoreTag
		}
	}
	return "Z"
}

// algAcc computes the running "own score plus remaining acceleration bonus"
// curve ACC, FLT and TOP all read off. It is idempotent across a single
// request since FLT and TOP both trigger it before their own pass.
func algAcc(e *Engine, td *TiebreakDescriptor) string {
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	for _, first := range e.Cmps {
		if _, ok := first.State[prefix+"acc"]; ok {
			return "acc"
		}
		break
	}
	for _, cmp := range e.Cmps {
		acc := newScalarAcc(Zero)
		val := e.Registry.Get(scoreSystem, e.accelerated(1, cmp.Cid))
		acc.setRound(0, val)
		running := Zero
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			running = running.Add(roundPoints(cmp, rnd, points))
			val = running.Add(e.Registry.Get(scoreSystem, e.accelerated(rnd+1, cmp.Cid)))
			acc.setRound(rnd, val)
		}
		acc.Val = val
		cmp.State[prefix+"acc"] = acc
	}
	return "acc"
}

// algFlt records each round's float against the acceleration curve: "d"
// (downfloat, weight 8) when the competitor's ACC before the round exceeds
// the opponent's, "u" (upfloat, weight 4) when it is lower, " " otherwise; a
// round without an opponent counts as "d" when it scored more than a loss.
// The running weight is divided by 4 before each round's weight is added,
// and its final value is returned ("FLT").
func algFlt(e *Engine, td *TiebreakDescriptor) string {
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	lossVal := e.Registry.Get(scoreSystem, "L")
	for _, cmp := range e.Cmps {
		acc := newScalarAcc(0)
		sfloat := 0
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			sfloat /= 4
			p := roundPoints(cmp, rnd, points)
			rr := cmp.Results[rnd]
			var ownAcc, oppAcc Decimal
			if rr != nil && rr.Opponent > 0 {
				oppCmp := e.Cmps[rr.Opponent]
				if v, ok := cmp.stat(prefix + "acc").Rounds[rnd-1].(Decimal); ok {
					ownAcc = v
				}
				if oppCmp != nil {
					if v, ok := oppCmp.stat(prefix + "acc").Rounds[rnd-1].(Decimal); ok {
						oppAcc = v
					}
				}
			} else if p.GreaterThan(lossVal) {
				ownAcc = NewDecimalInt(1)
			}
			var cfloat string
			ifloat := 0
			switch {
			case ownAcc.GreaterThan(oppAcc):
				cfloat, ifloat = "d", 8
			case ownAcc.LessThan(oppAcc):
				cfloat, ifloat = "u", 4
			default:
				cfloat = " "
			}
			acc.setRound(rnd, cfloat)
			sfloat += ifloat
		}
		acc.Val = sfloat
		cmp.State[prefix+"flt"] = acc
	}
	return "flt"
}

// algTop reports whether a competitor's accelerated running score at the
// second-to-last round exceeds half the maximum possible score through then,
// the "still in contention" flag TOP exposes ("TOP").
func algTop(e *Engine, td *TiebreakDescriptor) string {
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	last := e.TotalRounds - 1
	winVal := e.Registry.Get(scoreSystem, "W")
	lim := winVal.MulInt(last).MulInt(teamFactor(points, e.TeamSize)).DivInt(2)
	for _, cmp := range e.Cmps {
		accVal, _ := cmp.stat(prefix + "acc").Rounds[last].(Decimal)
		val := e.Rounds >= last && accVal.GreaterThan(lim)
		cmp.State[prefix+"top"] = newScalarAcc(val)
	}
	return "top"
}
