package tiebreak

// AccValue is the tagged-union accumulator value described in design note:
// every intermediate statistic is either a bare scalar, or a scalar with a
// per-round (or per-board) audit trail attached. Val holds a Decimal, int,
// string or bool depending on which statistic produced it; Rounds holds the
// same kind of value keyed by round number; Cut lists the round numbers a
// Buchholz-class criterion dropped ("cut bookkeeping").
type AccValue struct {
	Val    any
	Rounds map[int]any
	Cut    []int
}

func newScalarAcc(val any) *AccValue {
	return &AccValue{Val: val, Rounds: map[int]any{}}
}

// DecVal returns Val as a Decimal, or Zero if Val is not a Decimal.
func (a *AccValue) DecVal() Decimal {
	if a == nil {
		return Zero
	}
	if d, ok := a.Val.(Decimal); ok {
		return d
	}
	return Zero
}

// IntVal returns Val as an int, or 0 if Val is not an int.
func (a *AccValue) IntVal() int {
	if a == nil {
		return 0
	}
	if n, ok := a.Val.(int); ok {
		return n
	}
	return 0
}

// StrVal returns Val as a string, or "" if Val is not a string.
func (a *AccValue) StrVal() string {
	if a == nil {
		return ""
	}
	if s, ok := a.Val.(string); ok {
		return s
	}
	return ""
}

// setRound records a per-round entry, overwriting any prior value at rnd.
func (a *AccValue) setRound(rnd int, v any) {
	if a.Rounds == nil {
		a.Rounds = map[int]any{}
	}
	a.Rounds[rnd] = v
}

// addDecRound adds delta to the running Val (a Decimal) and records delta as
// the per-round entry, for cumulative Decimal statistics.
func (a *AccValue) addDecRound(rnd int, delta Decimal) {
	cur := a.DecVal()
	a.Val = cur.Add(delta)
	a.setRound(rnd, delta)
}

// addIntRound adds delta to the running Val (an int) and records delta as
// the per-round entry.
func (a *AccValue) addIntRound(rnd int, delta int) {
	a.Val = a.IntVal() + delta
	a.setRound(rnd, delta)
}

// GameRow is one board-level game inside a team match.
type GameRow struct {
	Player   int
	Opponent int // 0 = no opponent (PAB)
	Color    byte
	Board    int
	Played   bool
	Rated    bool
	VUR      bool
	Points   Decimal
	RPoints  Decimal
}

// RoundResult is one competitor's record for a single round. A record always
// exists for every round 1..currentRound; unplayed rounds are stubbed with
// Played=false, Opponent=0, Points=the score system's Z value.
type RoundResult struct {
	PointsPrimary Decimal
	PointsRating  Decimal
	Color         byte // 'w' or 'b'; stubbed unplayed rounds carry 'w'
	Played        bool
	VUR           bool
	Rated         bool
	Opponent      int // cid, 0 = bye/unpaired
	OppRating     int
	Board         int
	DeltaR        *Decimal
	Games         []GameRow // team tournaments only
	GamePoints    Decimal   // team tournaments only
}

// Competitor is one participant or team. Identity key is Cid.
type Competitor struct {
	Cid     int
	Rank    int
	OrgRank int
	Rating  int
	Present bool
	Random  int
	Results map[int]*RoundResult
	State   map[string]*AccValue

	TiebreakScore   []any
	TiebreakDetails []*AccValue

	// moreLoops backs the recursive tie driver's per-competitor convergence
	// tracking across sub-cohorts; de-rank values themselves live in
	// Competitor.State under each criterion's own key (see driver.go).
	moreLoops bool
}

func (c *Competitor) stat(key string) *AccValue {
	if v, ok := c.State[key]; ok {
		return v
	}
	v := newScalarAcc(Zero)
	c.State[key] = v
	return v
}

// PointType selects which score dimension (match points, game points, or
// their mixed pairings for cross-dimension criteria) a criterion reads.
type PointType string

// PointTypePrefix returns the accumulator/algorithm state-key prefix for a
// raw per-round point dimension (as opposed to the two-letter PointType
// value a descriptor carries, which additionally encodes a primary/
// secondary pair).
func PointTypePrefix(pt PointType) string {
	switch pt {
	case PTGamePoints:
		return "gpoints_"
	case PTMPoints:
		return "mpoints_"
	default:
		return "points_"
	}
}

const (
	PTPoints     PointType = "points"
	PTMPoints    PointType = "mpoints"
	PTGamePoints PointType = "game_points"
	PTMMPoints   PointType = "mmpoints"
	PTMGPoints   PointType = "mgpoints"
	PTGMPoints   PointType = "gmpoints"
	PTGGPoints   PointType = "ggpoints"
)

// Modifiers holds every parameter a tiebreak criterion may carry.
// reverse/swap/loopCount/edeChanges/primary are internal bookkeeping used by
// EDGE and the assembler rather than user-facing modifier tokens.
type Modifiers struct {
	Low, High int
	Plim, Nlim Decimal
	Unr        int
	Urd        bool
	P4F        bool
	Sws        bool
	Fmo        bool
	Rb5        bool
	Z4h        bool
	Vun        bool

	ReverseSet bool
	Reverse    bool

	primary       bool
	primarySet    bool
	swap          int
	loopCount     int
	changesThisLoop int
	edeChanges    map[string]int
}

// DefaultModifiers returns the default modifier set: Plim 50, Nlim 0, Unr
// set to the request's unrated default, no cuts and every flag false.
func DefaultModifiers(unrated int) Modifiers {
	return Modifiers{
		Plim: MustDecimal("50.0"),
		Nlim: MustDecimal("0.0"),
		Unr:  unrated,
	}
}

// TiebreakDescriptor is the decoded form of one textual tiebreak specifier.
type TiebreakDescriptor struct {
	Order     int
	Name      string
	Year      int
	PointType PointType
	Modifiers Modifiers
	Precision int
}

// AccelerationRule describes one acceleration band ("Acceleration-
// derived"): competitors numbered FirstCompetitor..LastCompetitor receive
// GameScoreTag bonus points in rounds FirstRound..LastRound.
type AccelerationRule struct {
	FirstRound, LastRound           int
	FirstCompetitor, LastCompetitor int
	GameScoreTag                    string
}

// CompetitorInput seeds one Competitor before the per-round accumulator runs
// ("Tournament structure").
type CompetitorInput struct {
	Cid     int
	Rank    int
	Rating  int
	Present bool
	Random  int
}

// GameResultInput is one externally-supplied result row — a match row for
// team events, or a game row for both individual events and team board
// games. WResultTag/BResultTag are one of the closed tag set W/D/L/Z/ P/U/A;
// if BResultTag is empty it is derived from WResultTag via ComplementTag.
type GameResultInput struct {
	Round      int
	White      int // cid; 0 only valid for team board rows absent a player
	Black      int // cid; 0 = bye/unpaired
	Board      int // team board games only
	WResultTag string
	BResultTag string
	Played     bool
	Rated      *bool
}

// TournamentInput is the transport-agnostic tournament structure consumed
// from the upstream chess-file parser. It is the engine's sole input besides
// the criteria list.
type TournamentInput struct {
	TeamTournament   bool
	TeamSize         int
	NumRounds        int
	TournamentType   string
	Acceleration     []AccelerationRule
	GameScoreSystem  string
	MatchScoreSystem string
	ScoreSystems     map[string]map[string]Decimal // named systems beyond game/match/rating
	Competitors      []CompetitorInput
	MatchResults     []GameResultInput // team match-level results
	GameResults      []GameResultInput // individual games, or team board games

	// PlayerTeam maps a board player's cid to the cid of the team they play
	// for (team tournaments only). Roster composition is input data, not a
	// pairing decision, so it travels with the tournament rather than being
	// derived.
	PlayerTeam map[int]int
}

// Request is the transport-agnostic input request.
type Request struct {
	Check          bool
	TournamentNo   int
	NumberOfRounds int // -1 = all
	TieBreak       []string
	TournamentType string // "" | "d" | "p" | "s"
	IsRR           *bool
	Unrated        int
}

// OutputCompetitor is one competitor's result row.
type OutputCompetitor struct {
	Cid             int
	Rank            int
	TiebreakScore   []any
	BoardPoints     map[int]Decimal
	TiebreakDetails []*AccValue
}

// Output is the engine's response.
type Output struct {
	Check       bool
	Tiebreaks   []TiebreakDescriptor
	Competitors []OutputCompetitor
}
