package tiebreak

import (
	"math"

	"tiebreakengine/internal/rating"
)

// Builder turns a TournamentInput into the working Competitor map the rest
// of the evaluator operates on.
type Builder struct {
	Registry     *Registry
	IsTeam       bool
	GameScore    string
	MatchScore   string
	CurrentRound int
	MaxBoard     int
	LastPlayed   int
}

// NewBuilder wires a Builder for the given tournament, registering its game
// and match score systems (falling back to the conventional 1/½/0 system
// when the tournament does not supply its own).
func NewBuilder(in *TournamentInput, currentRound int) *Builder {
	reg := NewRegistry()
	gameSys := in.GameScoreSystem
	if gameSys == "" {
		gameSys = "game"
		reg.AddSystem(gameSys, StandardSystem())
	}
	matchSys := in.MatchScoreSystem
	if in.TeamTournament {
		if matchSys == "" {
			matchSys = "match"
			reg.AddSystem(matchSys, StandardSystem())
		}
	} else {
		matchSys = gameSys
	}
	for name, tags := range in.ScoreSystems {
		reg.AddSystem(name, tags)
	}
	if currentRound <= 0 || currentRound > in.NumRounds {
		currentRound = in.NumRounds
	}
	return &Builder{
		Registry:     reg,
		IsTeam:       in.TeamTournament,
		GameScore:    gameSys,
		MatchScore:   matchSys,
		CurrentRound: currentRound,
	}
}

// PrepareCompetitors builds the competitor map, stubs every round 1..
// CurrentRound with the system's Z value, then layers in the observed match
// (and, for team events, board game) results.
func (b *Builder) PrepareCompetitors(in *TournamentInput) map[int]*Competitor {
	cmps := make(map[int]*Competitor, len(in.Competitors))
	zero := b.Registry.Get(b.MatchScore, "Z")
	for _, ci := range in.Competitors {
		c := &Competitor{
			Cid:     ci.Cid,
			OrgRank: ci.Rank,
			Rank:    1,
			Rating:  ci.Rating,
			Present: ci.Present,
			Random:  ci.Random,
			Results: make(map[int]*RoundResult, b.CurrentRound),
			State:   make(map[string]*AccValue),
		}
		for rnd := 1; rnd <= b.CurrentRound; rnd++ {
			c.Results[rnd] = &RoundResult{
				PointsPrimary: zero,
				PointsRating:  zero,
				Color:         'w',
				Played:        false,
				VUR:           true,
				Rated:         false,
			}
		}
		cmps[ci.Cid] = c
	}
	for _, rst := range in.MatchResults {
		if rst.Round > b.CurrentRound {
			continue
		}
		b.PrepareResult(cmps, rst, b.MatchScore)
	}
	if !b.IsTeam {
		// Individual events carry their game rows in GameResults; MatchResults is
		// team match-level only.
		for _, rst := range in.GameResults {
			if rst.Round > b.CurrentRound {
				continue
			}
			b.PrepareResult(cmps, rst, b.GameScore)
		}
	}
	if b.IsTeam {
		byRound := make(map[int][]GameResultInput)
		for _, g := range in.GameResults {
			if g.Round > b.CurrentRound {
				continue
			}
			byRound[g.Round] = append(byRound[g.Round], g)
		}
		for _, rst := range in.MatchResults {
			if rst.Round > b.CurrentRound {
				continue
			}
			b.PrepareTeamGames(cmps, rst, byRound[rst.Round], b.GameScore, in.PlayerTeam)
		}
	}
	return cmps
}

// PrepareResult folds one match (or, for individual events, game) result row
// into both sides' per-round records, including the opponent rating and
// rating-system points the performance-rating criteria (ARO/TPR/PTP) read,
// and DeltaR (actual minus expected score) for a played game between two
// competitors.
func (b *Builder) PrepareResult(cmps map[int]*Competitor, rst GameResultInput, scoreSystem string) {
	white := cmps[rst.White]
	if white == nil {
		return
	}
	wTag := rst.WResultTag
	bTag := rst.BResultTag
	if bTag == "" && rst.Black > 0 {
		bTag = ComplementTag(wTag)
	}
	wPoints := b.Registry.Get(scoreSystem, wTag)
	wRPoints := b.Registry.Get("rating", wTag)

	var black *Competitor
	var bPoints, bRPoints Decimal
	var wrating, brating int
	var expScore float64
	haveExp := false
	if rst.Black > 0 {
		black = cmps[rst.Black]
	}
	if black != nil {
		bPoints = b.Registry.Get(scoreSystem, bTag)
		bRPoints = b.Registry.Get("rating", bTag)
		if rst.Played {
			if white.Rating > 0 {
				wrating = white.Rating
			}
			if black.Rating > 0 {
				brating = black.Rating
			}
			expScore = rating.ComputeExpectedScore(wrating, brating)
			haveExp = true
		}
	}

	rated := rst.Rated != nil && *rst.Rated
	if rst.Rated == nil {
		rated = rst.Played && rst.Black > 0
	}

	wRes := &RoundResult{
		PointsPrimary: wPoints,
		PointsRating:  wRPoints,
		Color:         'w',
		Played:        rst.Played,
		VUR:           isVUR(wTag),
		Rated:         rated,
		Opponent:      rst.Black,
		OppRating:     brating,
		Board:         rst.Board,
	}
	if haveExp {
		delta := decimalFromFloat(rating.ComputeDeltaR(expScore, wRPoints.Float64()))
		wRes.DeltaR = &delta
	}
	white.Results[rst.Round] = wRes

	if black != nil {
		if rst.Round > b.LastPlayed {
			b.LastPlayed = rst.Round
		}
		bRes := &RoundResult{
			PointsPrimary: bPoints,
			PointsRating:  bRPoints,
			Color:         'b',
			Played:        rst.Played,
			VUR:           isVUR(bTag),
			Rated:         rated,
			Opponent:      rst.White,
			OppRating:     wrating,
			Board:         rst.Board,
		}
		if haveExp {
			delta := decimalFromFloat(rating.ComputeDeltaR(1.0-expScore, bRPoints.Float64()))
			bRes.DeltaR = &delta
		}
		black.Results[rst.Round] = bRes
	}
}

// decimalFromFloat rounds a float64 (rating-math result) to six fractional
// digits and lifts it into the exact Decimal domain so it can sit alongside
// other AccValue fields without mixing numeric types.
func decimalFromFloat(f float64) Decimal {
	return NewDecimalInt(int64(math.Round(f * 1e6))).DivInt(1000000)
}

// PrepareTeamGames attaches the board-level games backing one team match row
// to both teams' round record, summing board points into GamePoints and
// tracking the highest board number seen (per-board AccValue inputs).
func (b *Builder) PrepareTeamGames(cmps map[int]*Competitor, rst GameResultInput, games []GameResultInput, gameScore string, playerTeam map[int]int) {
	maxBoard := maxBoardOf(games)
	for _, teamCid := range []int{rst.White, rst.Black} {
		if teamCid <= 0 {
			continue
		}
		team := cmps[teamCid]
		if team == nil {
			continue
		}
		round := team.Results[rst.Round]
		if round == nil {
			continue
		}
		rows := boardRowsForTeam(games, teamCid, b, gameScore, playerTeam)
		round.Games = rows.rows
		round.GamePoints = rows.total
	}
	if maxBoard > b.MaxBoard {
		b.MaxBoard = maxBoard
	}
}

type teamBoardRows struct {
	rows  []GameRow
	total Decimal
}

func boardRowsForTeam(games []GameResultInput, teamCid int, b *Builder, gameScore string, playerTeam map[int]int) *teamBoardRows {
	out := &teamBoardRows{total: Zero}
	for _, g := range games {
		var mine, theirs int
		var color byte
		switch teamCid {
		case playerTeam[g.White]:
			mine, theirs, color = g.White, g.Black, 'w'
		case playerTeam[g.Black]:
			mine, theirs, color = g.Black, g.White, 'b'
		default:
			continue
		}
		var tag string
		if color == 'w' {
			tag = g.WResultTag
		} else {
			tag = g.BResultTag
			if tag == "" {
				tag = ComplementTag(g.WResultTag)
			}
		}
		points := b.Registry.Get(gameScore, tag)
		rpoints := b.Registry.Get("rating", tag)
		out.total = out.total.Add(points)
		out.rows = append(out.rows, GameRow{
			Player:   mine,
			Opponent: theirs,
			Color:    color,
			Board:    g.Board,
			Played:   g.Played,
			Rated:    g.Rated != nil && *g.Rated,
			VUR:      isVUR(tag),
			Points:   points,
			RPoints:  rpoints,
		})
	}
	return out
}

func maxBoardOf(games []GameResultInput) int {
	max := 0
	for _, g := range games {
		if g.Board > max {
			max = g.Board
		}
	}
	return max
}

// isVUR reports whether a result tag marks a "valid unplayed result" (a bye
// or adjudicated score with no real opponent), mirroring chessevent.is_vur's
// boolean collapse onto the closed tag set.
func isVUR(tag string) bool {
	switch tag {
	case "Z", "P", "U":
		return true
	default:
		return false
	}
}
