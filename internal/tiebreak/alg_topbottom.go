package tiebreak

import (
	"sort"
	"strings"
)

// singleRunTopBottom is the TBR/BBE recursive-driver callback ("Top/ bottom
// board result"). TBR ranks a cohort by the board result that round
// (loopCount == board number, counted from the top board down); BBE ranks by
// the running total with each already-processed "mirror" board (counted from
// the bottom up) subtracted out. Here the first entry of each cohort is
// simply never compared against a predecessor, which is behaviourally
// identical without the out-of-bounds read.
func singleRunTopBottom(e *Engine, td *TiebreakDescriptor, ro []*Competitor, loopCount int) bool {
	_, _, prefix := e.scoreInfo(td, true)
	name := strings.ToLower(td.Name)

	if loopCount == 0 {
		for _, player := range ro {
			player.State["tbrval"] = newScalarAcc(Zero)
			bbe := Zero
			bp := player.stat("gpoints_bp")
			for _, v := range bp.Rounds {
				if d, ok := v.(Decimal); ok {
					bbe = bbe.Add(d)
				}
			}
			player.State["bbeval"] = newScalarAcc(bbe)
		}
		return true
	}
	if len(ro) == 0 {
		return false
	}

	key := prefix + name
	valKey := name + "val"

	for _, player := range ro {
		bp := player.stat("gpoints_bp")
		boardVal, _ := bp.Rounds[loopCount].(Decimal)
		otherBoard := e.MaxBoard - loopCount + 1
		otherVal, _ := bp.Rounds[otherBoard].(Decimal)
		player.stat("tbrval").Val = boardVal
		bbeCur := player.stat("bbeval").DecVal()
		player.stat("bbeval").Val = bbeCur.Sub(otherVal)
	}

	sub := append([]*Competitor(nil), ro...)
	sort.SliceStable(sub, func(i, j int) bool {
		vi, vj := sub[i].stat(valKey).DecVal(), sub[j].stat(valKey).DecVal()
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return sub[i].Cid < sub[j].Cid
	})

	count := sub[0].stat(key).IntVal()
	currentRank := count
	for i, player := range sub {
		if i > 0 && !player.stat(valKey).DecVal().Equal(sub[i-1].stat(valKey).DecVal()) {
			currentRank = count
		}
		player.stat(key).Val = currentRank
		player.stat(key).setRound(loopCount, player.stat(valKey).DecVal())
		count++
	}
	return loopCount < e.MaxBoard
}
