package tiebreak

import (
	"sort"
	"strings"
)

// basicDirectEncounter ranks one tied cohort by head-to-head result among
// just that cohort ("Direct encounter"). Competitors who met more than once
// have their scores against each other averaged and counted as a single
// encounter. If not everyone in the cohort met everyone else (outside
// round-robin play, or when the `S` modifier forces Swiss-style demax
// scoring), unmet pairings are credited the maximum possible score as a
// ceiling (demax) and a competitor only out-ranks the rest below them while
// their actual total strictly exceeds that ceiling. Returns the number of
// rank changes made, so the recursive driver knows whether another pass is
// needed.
func basicDirectEncounter(e *Engine, td *TiebreakDescriptor, cohort []*Competitor, loopCount int, points PointType, scoreSystem, prefix string) int {
	name := strings.ToLower(td.Name)
	key := prefix + name
	metMax := len(cohort) - 1
	currentRank := cohort[0].stat(key).IntVal()
	winVal := e.Registry.Get(scoreSystem, "W")
	factor := teamFactor(points, e.TeamSize)

	type deInfo struct {
		player *Competitor
		deval  Decimal
		demax  Decimal
	}
	infos := make([]deInfo, len(cohort))
	metAll := true

	for i, player := range cohort {
		type encounter struct {
			cnt   int
			score Decimal
		}
		encounters := map[int]*encounter{}
		for rnd := 1; rnd <= e.Rounds; rnd++ {
			rr, ok := player.Results[rnd]
			if !ok || rr.Opponent <= 0 {
				continue
			}
			played := rr.Played
			if td.Modifiers.P4F {
				played = true
			}
			if !played {
				continue
			}
			oppCmp := e.Cmps[rr.Opponent]
			if oppCmp == nil || oppCmp.stat(key).IntVal() != currentRank {
				continue
			}
			score := roundPoints(player, rnd, points)
			if enc, ok2 := encounters[rr.Opponent]; ok2 {
				total := enc.score.MulInt(enc.cnt).Add(score)
				enc.cnt++
				enc.score = total.DivInt(enc.cnt)
			} else {
				encounters[rr.Opponent] = &encounter{cnt: 1, score: score}
			}
		}
		deval := Zero
		for _, enc := range encounters {
			deval = deval.Add(enc.score)
		}
		denum := len(encounters)

		demax := deval
		if (!e.RR && denum < metMax) || td.Modifiers.Sws {
			metAll = false
			demax = deval.Add(winVal.MulInt(metMax - denum).MulInt(factor))
		}
		infos[i] = deInfo{player: player, deval: deval, demax: demax}
	}

	changes := 0
	if metAll {
		sort.SliceStable(infos, func(i, j int) bool {
			if !infos[i].deval.Equal(infos[j].deval) {
				return infos[i].deval.GreaterThan(infos[j].deval)
			}
			return infos[i].player.Cid < infos[j].player.Cid
		})
		rank := infos[0].player.stat(key).IntVal()
		val := infos[0].deval
		infos[0].player.stat(key).setRound(loopCount, val)
		crank := rank
		for i := 1; i < len(infos); i++ {
			rank++
			if !val.Equal(infos[i].deval) {
				crank = rank
				val = infos[i].deval
				changes++
			}
			infos[i].player.stat(key).Val = crank
			infos[i].player.stat(key).setRound(loopCount, val)
		}
	} else {
		sort.SliceStable(infos, func(i, j int) bool {
			if !infos[i].deval.Equal(infos[j].deval) {
				return infos[i].deval.GreaterThan(infos[j].deval)
			}
			if !infos[i].demax.Equal(infos[j].demax) {
				return infos[i].demax.GreaterThan(infos[j].demax)
			}
			return infos[i].player.Cid < infos[j].player.Cid
		})
		rank := infos[0].player.stat(key).IntVal()
		crank := rank
		val := infos[0].deval
		infos[0].player.stat(key).setRound(loopCount, val)
		unique := true
		for i := 1; i < len(infos); i++ {
			rank++
			tbmax := Zero
			for j := i; j < len(infos); j++ {
				if infos[j].demax.GreaterThan(tbmax) {
					tbmax = infos[j].demax
				}
			}
			if unique && val.GreaterThan(tbmax) {
				crank = rank
				infos[i].player.stat(key).Val = crank
				val = infos[i].deval
				changes++
			} else {
				infos[i].player.stat(key).Val = crank
				unique = false
			}
			infos[i].player.stat(key).setRound(loopCount, infos[i].deval)
		}
	}
	return changes
}

// singleRunDE is the DE criterion's recursive-driver callback.
func singleRunDE(e *Engine, td *TiebreakDescriptor, cohort []*Competitor, loopCount int) bool {
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	if loopCount == 0 {
		return true
	}
	if len(cohort) > 0 {
		changes := basicDirectEncounter(e, td, cohort, loopCount, points, scoreSystem, prefix)
		return changes > 0
	}
	return false
}

// singleRunEDGE is the EDGE criterion's recursive-driver callback. Unlike
// plain DE it alternates which score dimension (match, then game) acts as
// primary each loop once a pass through all cohorts produces no further
// changes, stopping after 30 loops even if the two dimensions never converge
// to the same ranking ("Extended direct encounter", non-convergence rule).
func singleRunEDGE(e *Engine, td *TiebreakDescriptor, cohort []*Competitor, loopCount int) bool {
	if loopCount == 0 {
		td.Modifiers.primary = true
		_, primarySys, _ := e.scoreInfo(td, true)
		_, secondarySys, _ := e.scoreInfo(td, false)
		td.Modifiers.loopCount = 0
		td.Modifiers.changesThisLoop = 0
		td.Modifiers.swap = 0
		td.Modifiers.edeChanges = map[string]int{primarySys: 0, secondarySys: 1}
		return true
	}

	points, scoreSystem, prefix := e.scoreInfo(td, td.Modifiers.primary)

	if td.Modifiers.loopCount != loopCount {
		td.Modifiers.loopCount = loopCount
		td.Modifiers.changesThisLoop = 0
	}

	if len(cohort) == 0 {
		if td.Modifiers.changesThisLoop == 0 {
			td.Modifiers.primary = !td.Modifiers.primary
			td.Modifiers.edeChanges[scoreSystem] = 0
			td.Modifiers.swap++
			for _, p := range e.RankOrder {
				p.moreLoops = true
			}
		} else {
			_, otherSys, _ := e.scoreInfo(td, !td.Modifiers.primary)
			td.Modifiers.edeChanges[otherSys] = 1
		}
		total := 0
		for _, v := range td.Modifiers.edeChanges {
			total += v
		}
		return total > 0 && loopCount < 30
	}

	changes := basicDirectEncounter(e, td, cohort, loopCount, points, scoreSystem, prefix)
	td.Modifiers.changesThisLoop += changes
	return changes > 0 && loopCount < 30
}

// algDirectEncounterBasic runs one non-recursive direct-encounter pass over
// the entire current rank order (DF, supplemented "cheap DE" variant,
// alongside DE/EDGE which go through the C7 driver).
func algDirectEncounterBasic(e *Engine, td *TiebreakDescriptor) string {
	name := strings.ToLower(td.Name)
	points, scoreSystem, prefix := e.scoreInfo(td, true)
	key := prefix + name
	for _, c := range e.RankOrder {
		c.stat(key).Val = c.Rank
	}
	if len(e.RankOrder) > 0 {
		basicDirectEncounter(e, td, e.RankOrder, 1, points, scoreSystem, prefix)
	}
	return name
}
