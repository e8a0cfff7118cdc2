package tiebreak

import "strconv"

// gameView is the common shape ComputeScore folds over: either one round's
// top-level result (individual events, and team match rows), or one board
// game inside a team round (team "game_points" pass).
type gameView struct {
	Points   Decimal
	Played   bool
	Opponent int
	Color    byte
	VUR      bool
	Board    int
}

// ComputeScore runs the C4 per-round accumulator over every competitor,
// populating Competitor.State with keys prefixed by PointTypePrefix(pointType)
// (e.g. "points_num"). scoreSystem names the score system whose "W" value identifies a win;
// totalRounds is the tournament's overall round count (used only for the
// "lg" last-game-result statistic), rounds is the number of rounds actually
// being scored (the current round).
func ComputeScore(cmps map[int]*Competitor, pointType PointType, scoreSystem string, reg *Registry, rounds, totalRounds int) {
	prefix := PointTypePrefix(pointType)
	winVal := reg.Get(scoreSystem, "W")
	for _, cmp := range cmps {
		st := cmp.State
		st[prefix+"sno"] = newScalarAcc(cmp.Cid)
		st[prefix+"rank"] = newScalarAcc(cmp.OrgRank)
		st[prefix+"rnd"] = newScalarAcc(cmp.Random)
		cnt := newScalarAcc(0)
		points := newScalarAcc(Zero)
		win := newScalarAcc(0)
		won := newScalarAcc(0)
		bpg := newScalarAcc(0)
		bwg := newScalarAcc(0)
		ge := newScalarAcc(0)
		rep := newScalarAcc(0)
		vur := newScalarAcc(0)
		cop := newScalarAcc("  ")
		cod := newScalarAcc(0)
		csq := newScalarAcc("")
		num := newScalarAcc(0)
		bp := make(map[int]Decimal)
		lp, lo, pfp, lg := 0, 0, Zero, Zero

		pcol := byte(' ')
		for rnd := 1; rnd <= rounds; rnd++ {
			rr, ok := cmp.Results[rnd]
			if !ok {
				continue
			}
			pPoints := rr.PointsPrimary
			if pointType == PTGamePoints {
				pPoints = rr.GamePoints
			}
			points.addDecRound(rnd, pPoints)

			var gamelist []gameView
			if pointType == PTGamePoints {
				for _, g := range rr.Games {
					gamelist = append(gamelist, gameView{
						Points: g.Points, Played: g.Played, Opponent: g.Opponent,
						Color: g.Color, VUR: g.VUR, Board: g.Board,
					})
				}
			} else {
				gamelist = []gameView{{
					Points: pPoints, Played: rr.Played, Opponent: rr.Opponent,
					Color: rr.Color, VUR: rr.VUR,
				}}
			}

			for _, game := range gamelist {
				gPoints := game.Points
				if pointType == PTGamePoints && game.Played && game.Opponent <= 0 {
					gPoints = winVal // pairing-allocated bye scored as a full win
				}
				if pointType == PTGamePoints && game.Board > 0 {
					bp[game.Board] = bp[game.Board].Add(gPoints)
				}

				cnt.addIntRound(rnd, 1)

				if rnd == totalRounds && game.Opponent > 0 {
					lg = lg.Add(gPoints)
				}

				if game.Played {
					num.setRound(rnd, game.Opponent)
					if game.Opponent > 0 {
						num.Val = num.IntVal() + 1
						pfp = pfp.Add(gPoints)
						pf := 1
						if game.Color == 'b' {
							pf = -1
						}
						cod.addIntRound(rnd, pf)
						ncol := colourForPairing(game.Color, cod.IntVal(), game.Color != pcol)

						csq.setRound(rnd, string(game.Color))
						csq.Val = csq.StrVal() + string(game.Color)
						pcol = game.Color

						cop.setRound(rnd, ncol)
						cop.Val = ncol
					}
					if rnd > lp {
						lp = rnd
					}
				} else if gPoints.Equal(winVal) {
					num.setRound(rnd, 0)
				}

				win.addIntRound(rnd, boolToInt(gPoints.Equal(winVal)))
				won.addIntRound(rnd, boolToInt(gPoints.Equal(winVal) && game.Played && game.Opponent > 0))
				bpg.addIntRound(rnd, boolToInt(game.Color == 'b' && game.Played))
				bwg.addIntRound(rnd, boolToInt(game.Color == 'b' && game.Played && gPoints.Equal(winVal)))

				elected := game.Played || gPoints.Equal(winVal)
				ge.addIntRound(rnd, boolToInt(elected))
				rep.addIntRound(rnd, boolToInt(elected))

				vur.addIntRound(rnd, boolToInt(game.VUR))

				if rnd > lo && !game.VUR {
					lo = rnd
				}
				if rnd > lp && game.Opponent > 0 {
					lp = rnd
				}
			}
		}

		st[prefix+"cnt"] = cnt
		st[prefix+"points"] = points
		st[prefix+"win"] = win
		st[prefix+"won"] = won
		st[prefix+"bpg"] = bpg
		st[prefix+"bwg"] = bwg
		st[prefix+"ge"] = ge
		st[prefix+"rep"] = rep
		st[prefix+"vur"] = vur
		st[prefix+"cop"] = cop
		st[prefix+"cod"] = cod
		st[prefix+"csq"] = csq
		st[prefix+"num"] = num
		st[prefix+"lp"] = newScalarAcc(lp)
		st[prefix+"lo"] = newScalarAcc(lo)
		st[prefix+"pfp"] = newScalarAcc(pfp)
		st[prefix+"lg"] = newScalarAcc(lg)
		bpAcc := newScalarAcc(Zero)
		bpAcc.Rounds = make(map[int]any, len(bp))
		for board, val := range bp {
			bpAcc.Rounds[board] = val
		}
		st[prefix+"bp"] = bpAcc
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// colourForPairing renders the FIDE colour-preference notation (e.g. "w2",
// "b1") from the side that just played (col), the running colour difference
// after this round (cod), and whether the colour alternated from the
// previous round.
func colourForPairing(col byte, cod int, alternated bool) string {
	other := byte('b')
	if col == 'b' {
		other = 'w'
	}
	base := []byte{other, 'b', 'b', 'b', 'b', 'w', 'w', 'w', 'w'}
	idx := cod
	if idx < 0 {
		idx += len(base)
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(base) {
		idx = len(base) - 1
	}
	pref := string(base[idx])
	if alternated {
		n := cod
		if n < 0 {
			n = -n
		}
		return pref + strconv.Itoa(n)
	}
	return pref + "2"
}
