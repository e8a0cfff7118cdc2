package tiebreak

import "strings"

// singleRunFunc is one recursive-tie-driver evaluation pass. cohort is
// either the full rank order (loopCount==0, the one-time initialisation
// pass), one tied sub-cohort sharing the same de-rank (loopCount>0), or nil
// (the once-per-loop end-of-iteration hook EDGE uses to flip sides). It
// returns whether another loop iteration is needed.
type singleRunFunc func(e *Engine, td *TiebreakDescriptor, cohort []*Competitor, loopCount int) bool

// recursiveIfTied repeatedly partitions e.RankOrder into cohorts sharing the
// same de-rank value, re-invoking run on each non-singleton cohort until no
// run reports further changes, then re-bases de-ranks within each
// surrounding rank band: a band whose de-ranks differ is shifted so its best
// de-rank becomes 1 (gaps between de-ranks are kept), and a band whose
// members all share one de-rank is set to 0.
func (e *Engine) recursiveIfTied(td *TiebreakDescriptor, run singleRunFunc) string {
	_, _, prefix := e.scoreInfo(td, true)
	name := strings.ToLower(td.Name)
	key := prefix + name

	ro := append([]*Competitor(nil), e.RankOrder...)
	for _, c := range ro {
		c.stat(key).Val = c.Rank
		c.moreLoops = true
	}

	loopCount := 0
	moreTodo := run(e, td, ro, loopCount)
	for moreTodo {
		moreTodo = false
		loopCount++
		start := 0
		for start < len(ro) {
			currentRank := ro[start].stat(key).IntVal()
			stop := start + 1
			for stop < len(ro) && ro[stop].stat(key).IntVal() == currentRank {
				stop++
			}
			if ro[start].moreLoops {
				if stop-start == 1 {
					ro[start].moreLoops = false
				} else {
					subro := ro[start:stop]
					again := run(e, td, subro, loopCount)
					for _, p := range subro {
						p.moreLoops = again
					}
					moreTodo = moreTodo || again
				}
			}
			start = stop
		}
		hookMore := run(e, td, nil, loopCount)
		moreTodo = moreTodo || hookMore

		sortKey := key
		sortRo(ro, sortKey)
	}

	start := 0
	for start < len(ro) {
		currentRank := ro[start].Rank
		stop := start
		for stop < len(ro) && ro[stop].Rank == currentRank {
			stop++
		}
		offset := ro[start].stat(key).IntVal()
		if offset != ro[stop-1].stat(key).IntVal() {
			offset--
		}
		for p := start; p < stop; p++ {
			v := ro[p].stat(key)
			v.Val = v.IntVal() - offset
		}
		start = stop
	}

	return name
}

// sortRo re-sorts a working cohort by (Rank, de-rank value at key, cid),
// the same ordering key the driver's own rank band partitioning relies on.
func sortRo(ro []*Competitor, key string) {
	insertionSortCompetitors(ro, func(a, b *Competitor) bool {
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		av, bv := a.stat(key).IntVal(), b.stat(key).IntVal()
		if av != bv {
			return av < bv
		}
		return a.Cid < b.Cid
	})
}

// insertionSortCompetitors is a small stable sort local to the driver so it
// has no dependency on the `sort` package's comparator-index plumbing for
// this one narrow in-place reordering.
func insertionSortCompetitors(s []*Competitor, less func(a, b *Competitor) bool) {
	for i := 1; i < len(s); i++ {
		j := i
		for j > 0 && less(s[j], s[j-1]) {
			s[j], s[j-1] = s[j-1], s[j]
			j--
		}
	}
}
