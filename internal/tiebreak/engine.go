package tiebreak

import "strings"

// Engine holds the working state one request's criteria list is evaluated
// against (shared context).
type Engine struct {
	Cmps      map[int]*Competitor
	RankOrder []*Competitor

	IsTeam     bool
	RR         bool
	TeamSize   int
	GameScore  string
	MatchScore string
	Registry   *Registry

	Rounds          int // current round being scored
	TotalRounds     int // tournament's overall round count
	MaxBoard        int
	LastPlayedRound int
	Acceleration    []AccelerationRule
	Unrated         int

	Tiebreaks []TiebreakDescriptor

	parser *Parser
}

// NewEngine builds an Engine from a resolved tournament and request, running
// the competitor builder and score accumulator so every criterion can be
// computed immediately.
func NewEngine(in *TournamentInput, req *Request) *Engine {
	rounds := req.NumberOfRounds
	if rounds < 0 || rounds > in.NumRounds {
		rounds = in.NumRounds
	}
	b := NewBuilder(in, rounds)
	cmps := b.PrepareCompetitors(in)

	teamSize := in.TeamSize
	if teamSize <= 0 {
		teamSize = 1
	}

	rr := false
	if req.IsRR != nil {
		rr = *req.IsRR
	} else {
		rr = detectRoundRobin(in)
	}

	e := &Engine{
		Cmps:            cmps,
		IsTeam:          in.TeamTournament,
		RR:              rr,
		TeamSize:        teamSize,
		GameScore:       b.GameScore,
		MatchScore:      b.MatchScore,
		Registry:        b.Registry,
		Rounds:          rounds,
		TotalRounds:     in.NumRounds,
		MaxBoard:        b.MaxBoard,
		LastPlayedRound: b.LastPlayed,
		Acceleration:    in.Acceleration,
		Unrated:         req.Unrated,
	}
	e.parser = NewParser(e.IsTeam, e.RR, e.Unrated)

	if e.IsTeam {
		ComputeScore(cmps, PTMPoints, e.MatchScore, e.Registry, rounds, e.TotalRounds)
		ComputeScore(cmps, PTGamePoints, e.GameScore, e.Registry, rounds, e.TotalRounds)
	} else {
		ComputeScore(cmps, PTPoints, e.GameScore, e.Registry, rounds, e.TotalRounds)
	}

	e.RankOrder = make([]*Competitor, 0, len(in.Competitors))
	for _, ci := range in.Competitors {
		if c := cmps[ci.Cid]; c != nil {
			e.RankOrder = append(e.RankOrder, c)
		}
	}
	return e
}

// detectRoundRobin infers the is_rr flag from the tournament type tag and,
// failing that, from whether the competitor count n matches a single
// round-robin (n or n-1 rounds) or a double round-robin (2n or 2(n-1)
// rounds).
func detectRoundRobin(in *TournamentInput) bool {
	tt := strings.ToUpper(in.TournamentType)
	switch {
	case strings.Contains(tt, "SWISS"):
		return false
	case strings.Contains(tt, "RR"), strings.Contains(tt, "ROBIN"), strings.Contains(tt, "BERGER"):
		return true
	}
	n := len(in.Competitors)
	return n == in.NumRounds || n == in.NumRounds+1 ||
		in.NumRounds == n*2 || in.NumRounds == (n-1)*2
}

// scoreInfo resolves which raw point dimension, score-system name and state
// prefix a criterion's primary (or secondary) side reads from, folding a
// two-character PointType's single-dimension fallback.
func (e *Engine) scoreInfo(td *TiebreakDescriptor, primary bool) (PointType, string, string) {
	pt := string(td.PointType)
	pos := 0
	if !primary {
		pos = 1
	}
	var key byte
	if pos < len(pt) {
		key = pt[pos]
	}
	if !primary && key != 'g' && key != 'm' {
		switch pt[0] {
		case 'g':
			key = 'm'
		case 'm':
			key = 'g'
		default:
			key = pt[0]
		}
	}
	switch key {
	case 'g':
		return PTGamePoints, e.GameScore, "gpoints_"
	case 'm':
		return PTMPoints, e.MatchScore, "mpoints_"
	default:
		return PTPoints, e.GameScore, "points_"
	}
}

// roundPoints returns a competitor's recorded score for one round along the
// given point dimension (PTGamePoints reads the team's summed board score,
// everything else reads the round's primary score), or Zero for an
// unrecorded round.
func roundPoints(cmp *Competitor, rnd int, pt PointType) Decimal {
	rr, ok := cmp.Results[rnd]
	if !ok {
		return Zero
	}
	if pt == PTGamePoints {
		return rr.GamePoints
	}
	return rr.PointsPrimary
}

func teamFactor(pt PointType, teamSize int) int {
	if pt == PTGamePoints {
		return teamSize
	}
	return 1
}

func isPseudoStat(name string) bool {
	switch name {
	case "WIN", "WON", "BPG", "BWG", "GE", "REP", "VUR", "NUM", "COP", "COD", "CSQ":
		return true
	}
	return false
}

// reversePointType swaps a two-dimension PointType's primary/secondary sides
// (MPVGP, "reverse-point-type PTS").
func reversePointType(pt PointType) PointType {
	switch pt {
	case PTMPoints:
		return PTGamePoints
	case PTGamePoints:
		return PTMPoints
	case PTMMPoints:
		return PTGGPoints
	case PTGGPoints:
		return PTMMPoints
	case PTMGPoints:
		return PTGMPoints
	case PTGMPoints:
		return PTMGPoints
	default:
		return pt
	}
}

// ComputeTiebreak parses and evaluates one criterion specifier in sequence,
// appending it to e.Tiebreaks and re-sorting e.RankOrder by its outcome.
// Unknown criterion names are skipped silently.
func (e *Engine) ComputeTiebreak(order int, spec string) {
	td := e.parser.Parse(order, spec)
	var tbname string

	switch {
	case td.Name == "PTS" || td.Name == "MPTS" || td.Name == "GPTS":
		tbname = "points"
	case td.Name == "MPVGP":
		if e.parser.primaryScore != nil {
			td.PointType = reversePointType(*e.parser.primaryScore)
		}
		tbname = "points"
	case td.Name == "SNO" || td.Name == "RANK" || td.Name == "RND":
		td.Modifiers.ReverseSet, td.Modifiers.Reverse = true, true
		tbname = strings.ToLower(td.Name)
	case td.Name == "DF":
		td.Modifiers.ReverseSet, td.Modifiers.Reverse = true, true
		tbname = algDirectEncounterBasic(e, &td)
	case td.Name == "DE":
		td.Modifiers.ReverseSet, td.Modifiers.Reverse = true, true
		tbname = e.recursiveIfTied(&td, singleRunDE)
	case td.Name == "EDGE":
		td.Modifiers.ReverseSet, td.Modifiers.Reverse = true, true
		tbname = e.recursiveIfTied(&td, singleRunEDGE)
	case isPseudoStat(td.Name):
		tbname = strings.ToLower(td.Name)
	case td.Name == "PS":
		tbname = algProgressive(e, &td)
	case td.Name == "KS":
		tbname = algKoya(e, &td)
	case td.Name == "BH", td.Name == "FB", td.Name == "SB", td.Name == "ABH", td.Name == "AFB":
		tbname = algBuchholz(e, &td)
	case td.Name == "AOB":
		algBuchholz(e, &td)
		tbname = algAverage(e, &td, "bh", true, 2)
	case td.Name == "ARO", td.Name == "TPR", td.Name == "PTP":
		tbname = algRatingPerformance(e, &td)
	case td.Name == "APRO":
		algRatingPerformance(e, &td)
		tbname = algAverage(e, &td, "tpr", true, 0)
	case td.Name == "APPO":
		algRatingPerformance(e, &td)
		tbname = algAverage(e, &td, "ptp", true, 0)
	case td.Name == "ESB", td.Name == "EMMSB", td.Name == "EMGSB", td.Name == "EGMSB", td.Name == "EGGSB":
		if len(td.Name) == 5 {
			td.PointType = PointType(strings.ToLower(td.Name[1:3]) + "points")
		}
		tbname = algBuchholz(e, &td)
	case td.Name == "BC":
		td.Modifiers.ReverseSet, td.Modifiers.Reverse = true, true
		tbname = algBoardCount(e, &td)
	case td.Name == "TBR", td.Name == "BBE":
		td.Modifiers.ReverseSet, td.Modifiers.Reverse = true, true
		tbname = e.recursiveIfTied(&td, singleRunTopBottom)
	case td.Name == "SSSC":
		algBuchholz(e, &td)
		tbname = algSSC(e, &td)
	case td.Name == "ACC":
		tbname = algAcc(e, &td)
	case td.Name == "FLT":
		algAcc(e, &td)
		tbname = algFlt(e, &td)
	case td.Name == "RFP":
		tbname = algRfp(e, &td)
	case td.Name == "TOP":
		algAcc(e, &td)
		tbname = algTop(e, &td)
	default:
		return
	}

	e.Tiebreaks = append(e.Tiebreaks, td)
	index := len(e.Tiebreaks) - 1
	e.addVal(&e.Tiebreaks[index], tbname, index)
	ascending := e.Tiebreaks[index].Modifiers.ReverseSet && e.Tiebreaks[index].Modifiers.Reverse
	e.assignRanks(index, ascending)
}

// Run evaluates every criterion in req.TieBreak, in order, against in, and
// assembles the final Output. This is the engine's sole public entry point;
// it performs no I/O.
func Run(in *TournamentInput, req *Request) *Output {
	if in == nil || req == nil {
		return &Output{Check: true}
	}
	e := NewEngine(in, req)
	for i, spec := range req.TieBreak {
		e.ComputeTiebreak(i+1, spec)
	}

	out := &Output{Tiebreaks: e.Tiebreaks, Check: true}
	matched := true
	for _, ci := range in.Competitors {
		c := e.Cmps[ci.Cid]
		if c == nil {
			continue
		}
		if c.Rank != c.OrgRank {
			matched = false
		}
		oc := OutputCompetitor{
			Cid:             c.Cid,
			Rank:            c.Rank,
			TiebreakScore:   c.TiebreakScore,
			TiebreakDetails: c.TiebreakDetails,
		}
		if e.IsTeam {
			oc.BoardPoints = boardPointsOf(c)
		}
		out.Competitors = append(out.Competitors, oc)
	}
	if req.Check {
		out.Check = matched
	}
	return out
}

func boardPointsOf(c *Competitor) map[int]Decimal {
	bp := c.stat("gpoints_bp")
	m := make(map[int]Decimal, len(bp.Rounds))
	for k, v := range bp.Rounds {
		if d, ok := v.(Decimal); ok {
			m[k] = d
		}
	}
	return m
}
