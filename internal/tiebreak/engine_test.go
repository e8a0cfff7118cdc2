package tiebreak

import "testing"

func competitorByCid(out *Output, cid int) *OutputCompetitor {
	for i := range out.Competitors {
		if out.Competitors[i].Cid == cid {
			return &out.Competitors[i]
		}
	}
	return nil
}

// Two players, one round, draw.
func TestRunTwoPlayersOneRoundDraw(t *testing.T) {
	in := &TournamentInput{
		NumRounds: 1,
		Competitors: []CompetitorInput{
			{Cid: 1, Rank: 1},
			{Cid: 2, Rank: 2},
		},
		GameResults: []GameResultInput{
			{Round: 1, White: 1, Black: 2, WResultTag: "D", BResultTag: "D", Played: true},
		},
	}
	req := &Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "BH"}}
	out := Run(in, req)

	c1 := competitorByCid(out, 1)
	c2 := competitorByCid(out, 2)
	if c1 == nil || c2 == nil {
		t.Fatal("missing competitor in output")
	}
	if c1.Rank != 1 || c2.Rank != 1 {
		t.Errorf("ranks = %d, %d; want 1, 1", c1.Rank, c2.Rank)
	}
	wantScore := MustDecimal("0.5")
	if d, ok := c1.TiebreakScore[0].(Decimal); !ok || !d.Equal(wantScore) {
		t.Errorf("c1 PTS = %v, want 0.5", c1.TiebreakScore[0])
	}
	if d, ok := c1.TiebreakDetails[1].Val.(Decimal); !ok || !d.Equal(wantScore) {
		t.Errorf("c1 BH detail = %v, want 0.5", c1.TiebreakDetails[1].Val)
	}
}

// 3-player round robin, A beats B, B beats C, C beats A.
func TestRunThreePlayerRoundRobinDirectEncounter(t *testing.T) {
	in := &TournamentInput{
		NumRounds:      3,
		TournamentType: "RR",
		Competitors: []CompetitorInput{
			{Cid: 1, Rank: 1},
			{Cid: 2, Rank: 2},
			{Cid: 3, Rank: 3},
		},
		GameResults: []GameResultInput{
			{Round: 1, White: 1, Black: 2, WResultTag: "W", Played: true},
			{Round: 2, White: 2, Black: 3, WResultTag: "W", Played: true},
			{Round: 3, White: 3, Black: 1, WResultTag: "W", Played: true},
		},
	}
	rr := true
	req := &Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "DE"}, IsRR: &rr}
	out := Run(in, req)

	for _, c := range out.Competitors {
		if c.Rank != 1 {
			t.Errorf("cid %d rank = %d, want 1 (all tied on direct encounter)", c.Cid, c.Rank)
		}
		if d, ok := c.TiebreakScore[0].(Decimal); !ok || !d.Equal(MustDecimal("1")) {
			t.Errorf("cid %d PTS = %v, want 1", c.Cid, c.TiebreakScore[0])
		}
	}
}

// Two leaders (cid1, cid2) tie on 2.5/3, but cid1's
// three opponents finish weaker overall (0.5+0+1.5=2.0) than cid2's
// (1.5+2.0+0.5=4.0), so Buchholz — even after cutting each one's single
// worst-scoring round — ranks cid2 ahead of cid1.
func TestRunBuchholzOneCutSeparatesTiedLeaders(t *testing.T) {
	in := &TournamentInput{
		NumRounds: 3,
		Competitors: []CompetitorInput{
			{Cid: 1, Rank: 1},
			{Cid: 2, Rank: 2},
			{Cid: 3, Rank: 3},
			{Cid: 4, Rank: 4},
			{Cid: 5, Rank: 5},
			{Cid: 6, Rank: 6},
		},
		GameResults: []GameResultInput{
			{Round: 1, White: 1, Black: 3, WResultTag: "W", Played: true},
			{Round: 1, White: 2, Black: 4, WResultTag: "W", Played: true},
			{Round: 1, White: 6, Black: 5, WResultTag: "W", Played: true},
			{Round: 2, White: 1, Black: 5, WResultTag: "W", Played: true},
			{Round: 2, White: 2, Black: 6, WResultTag: "W", Played: true},
			{Round: 2, White: 4, Black: 3, WResultTag: "W", Played: true},
			{Round: 3, White: 1, Black: 4, WResultTag: "D", BResultTag: "D", Played: true},
			{Round: 3, White: 2, Black: 3, WResultTag: "D", BResultTag: "D", Played: true},
			{Round: 3, White: 6, Black: 5, WResultTag: "W", Played: true},
		},
	}
	req := &Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "BH/C1"}}
	out := Run(in, req)

	c1 := competitorByCid(out, 1)
	c2 := competitorByCid(out, 2)
	if c1 == nil || c2 == nil {
		t.Fatal("missing leader in output")
	}
	if !(c1.TiebreakScore[0].(Decimal)).Equal(c2.TiebreakScore[0].(Decimal)) {
		t.Fatalf("leaders should be tied on points before tiebreak: %v vs %v", c1.TiebreakScore[0], c2.TiebreakScore[0])
	}
	bh1 := c1.TiebreakScore[1].(Decimal)
	bh2 := c2.TiebreakScore[1].(Decimal)
	if bh1.Equal(bh2) {
		t.Fatalf("one-cut Buchholz should separate the leaders, both got %s", bh1.String())
	}
	if c1.Rank == c2.Rank {
		t.Fatalf("leaders should be separated in rank after BH/C1, both got %d", c1.Rank)
	}
}

func TestRunUnknownCriterionSkippedSilently(t *testing.T) {
	in := &TournamentInput{
		NumRounds: 1,
		Competitors: []CompetitorInput{
			{Cid: 1, Rank: 1},
			{Cid: 2, Rank: 2},
		},
		GameResults: []GameResultInput{
			{Round: 1, White: 1, Black: 2, WResultTag: "W", Played: true},
		},
	}
	req := &Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "NOSUCHCRITERION", "BH"}}
	out := Run(in, req)
	if len(out.Tiebreaks) != 2 {
		t.Fatalf("expected the unknown criterion to be skipped, got %d tiebreaks", len(out.Tiebreaks))
	}
	for _, c := range out.Competitors {
		if len(c.TiebreakScore) != 2 {
			t.Fatalf("cid %d has %d scores, want 2", c.Cid, len(c.TiebreakScore))
		}
	}
}

func TestRunRoundRobinP4FInvariant(t *testing.T) {
	in := &TournamentInput{
		NumRounds:      3,
		TournamentType: "RR",
		Competitors: []CompetitorInput{
			{Cid: 1, Rank: 1},
			{Cid: 2, Rank: 2},
			{Cid: 3, Rank: 3},
		},
		GameResults: []GameResultInput{
			{Round: 1, White: 1, Black: 2, WResultTag: "W", Played: true},
			{Round: 2, White: 2, Black: 3, WResultTag: "D", BResultTag: "D", Played: true},
			{Round: 3, White: 3, Black: 1, WResultTag: "L", Played: true},
		},
	}
	rr := true
	reqPlain := &Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "BH"}, IsRR: &rr}
	reqP4F := &Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "BH/P"}, IsRR: &rr}

	outPlain := Run(in, reqPlain)
	outP4F := Run(in, reqP4F)

	for _, cid := range []int{1, 2, 3} {
		a := competitorByCid(outPlain, cid).TiebreakScore[1].(Decimal)
		b := competitorByCid(outP4F, cid).TiebreakScore[1].(Decimal)
		if !a.Equal(b) {
			t.Errorf("cid %d: toggling P4F changed BH in round-robin without S: %s vs %s", cid, a.String(), b.String())
		}
	}
}

// Team event where the match-point winner loses on board points: GPTS must
// read the board-game total (rr.GamePoints), not the match-level score.
func TestRunTeamEventGPTSReadsGamePoints(t *testing.T) {
	in := &TournamentInput{
		TeamTournament: true,
		TeamSize:       2,
		NumRounds:      1,
		Competitors: []CompetitorInput{
			{Cid: 1, Rank: 1}, // team A, wins the match
			{Cid: 2, Rank: 2}, // team B, wins on boards
		},
		MatchResults: []GameResultInput{
			{Round: 1, White: 1, Black: 2, WResultTag: "W", Played: true},
		},
		GameResults: []GameResultInput{
			{Round: 1, Board: 1, White: 11, Black: 21, WResultTag: "L", Played: true},
			{Round: 1, Board: 2, White: 12, Black: 22, WResultTag: "L", Played: true},
		},
		PlayerTeam: map[int]int{11: 1, 12: 1, 21: 2, 22: 2},
	}
	outMatch := Run(in, &Request{NumberOfRounds: -1, TieBreak: []string{"MPTS"}})
	outGame := Run(in, &Request{NumberOfRounds: -1, TieBreak: []string{"GPTS"}})

	teamAMatch, teamBMatch := competitorByCid(outMatch, 1), competitorByCid(outMatch, 2)
	teamAGame, teamBGame := competitorByCid(outGame, 1), competitorByCid(outGame, 2)
	if teamAMatch == nil || teamBMatch == nil || teamAGame == nil || teamBGame == nil {
		t.Fatal("missing competitor in output")
	}

	wantMatch := MustDecimal("1.0")
	if d, ok := teamAMatch.TiebreakScore[0].(Decimal); !ok || !d.Equal(wantMatch) {
		t.Errorf("team A MPTS = %v, want 1.0", teamAMatch.TiebreakScore[0])
	}
	if teamAMatch.Rank != 1 || teamBMatch.Rank != 2 {
		t.Errorf("MPTS ranks = %d, %d; want 1, 2 (team A wins the match)", teamAMatch.Rank, teamBMatch.Rank)
	}

	wantGameA, wantGameB := MustDecimal("0.0"), MustDecimal("2.0")
	dA, okA := teamAGame.TiebreakScore[0].(Decimal)
	dB, okB := teamBGame.TiebreakScore[0].(Decimal)
	if !okA || !dA.Equal(wantGameA) {
		t.Errorf("team A GPTS = %v, want 0.0 (board points, not match points)", teamAGame.TiebreakScore[0])
	}
	if !okB || !dB.Equal(wantGameB) {
		t.Errorf("team B GPTS = %v, want 2.0 (board points, not match points)", teamBGame.TiebreakScore[0])
	}
	if teamBGame.Rank != 1 || teamAGame.Rank != 2 {
		t.Errorf("GPTS ranks = %d, %d; want team B=1, team A=2 (team B wins on boards)", teamAGame.Rank, teamBGame.Rank)
	}
}
