package tiebreak

import (
	"sort"
	"strings"
)

// addVal collects one criterion's outcome into every competitor's
// TiebreakScore/TiebreakDetails slices (in the same order every competitor
// shares), and tracks the criterion's numeric precision as the largest
// number of fractional digits observed ("numeric precision").
func (e *Engine) addVal(td *TiebreakDescriptor, tbname string, index int) {
	_, _, prefix := e.scoreInfo(td, true)
	key := prefix + tbname
	precision := 0
	for _, cmp := range e.Cmps {
		st := cmp.stat(key)
		cmp.TiebreakScore = append(cmp.TiebreakScore, st.Val)
		cmp.TiebreakDetails = append(cmp.TiebreakDetails, st)
		if d, ok := st.Val.(Decimal); ok {
			if exp := d.Exponent(); exp > precision {
				precision = exp
			}
		}
	}
	td.Precision = precision
	_ = index
}

// assignRanks re-sorts e.RankOrder by (priorRank, direction*criterion value
// at index, cid) and reassigns Rank using the running-counter /
// tie-preservation rule.
func (e *Engine) assignRanks(index int, ascending bool) {
	sort.SliceStable(e.RankOrder, func(i, j int) bool {
		ci, cj := e.RankOrder[i], e.RankOrder[j]
		if ci.Rank != cj.Rank {
			return ci.Rank < cj.Rank
		}
		c := compareAny(ci.TiebreakScore[index], cj.TiebreakScore[index])
		if !ascending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return ci.Cid < cj.Cid
	})
	if len(e.RankOrder) == 0 {
		return
	}
	rank := e.RankOrder[0].Rank
	val := e.RankOrder[0].TiebreakScore[index]
	for i := 1; i < len(e.RankOrder); i++ {
		rank++
		cur := e.RankOrder[i]
		if cur.Rank == rank || compareAny(cur.TiebreakScore[index], val) != 0 {
			cur.Rank = rank
			val = cur.TiebreakScore[index]
		} else {
			cur.Rank = e.RankOrder[i-1].Rank
		}
	}
}

// compareAny orders two TiebreakScore entries of the same dynamic type
// (Decimal, int, string or bool — the only kinds any criterion produces).
func compareAny(a, b any) int {
	switch av := a.(type) {
	case Decimal:
		bv, _ := b.(Decimal)
		return av.Cmp(bv)
	case int:
		bv, _ := b.(int)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case bool:
		bv, _ := b.(bool)
		return boolToInt(av) - boolToInt(bv)
	default:
		return 0
	}
}
