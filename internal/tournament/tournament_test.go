package tournament

import (
	"testing"

	"tiebreakengine/internal/model"
)

func newTestTournament(t *testing.T, players []model.Player) *model.Tournament {
	t.Helper()
	tour := &model.Tournament{}
	if err := InitializeTournament(tour, "Club Championship", "weekly round robin", players); err != nil {
		t.Fatalf("InitializeTournament: %v", err)
	}
	return tour
}

func TestInitializeTournamentRequiresTitleAndDescription(t *testing.T) {
	tour := &model.Tournament{}
	if err := InitializeTournament(tour, "", "desc", nil); err == nil {
		t.Error("expected error for empty title")
	}
	if err := InitializeTournament(tour, "title", "", nil); err == nil {
		t.Error("expected error for empty description")
	}
}

func TestInitializeTournamentDefaults(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	tour := newTestTournament(t, players)

	if tour.PairingSystem != "SWISS" {
		t.Errorf("PairingSystem = %q, want SWISS", tour.PairingSystem)
	}
	if tour.ByeScore != 1.0 {
		t.Errorf("ByeScore = %v, want 1.0", tour.ByeScore)
	}
	if tour.Status != "ACTIVE" {
		t.Errorf("Status = %q, want ACTIVE", tour.Status)
	}
	got, err := tour.GetPlayers()
	if err != nil {
		t.Fatalf("GetPlayers: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(players) = %d, want 2", len(got))
	}
}

func withRound1(t *testing.T, tour *model.Tournament) {
	t.Helper()
	round1 := model.Match{
		RoundNumber: 1,
		TableNumber: 1,
		PlayerA_ID:  "p1",
		PlayerB_ID:  "p2",
		WhiteID:     "p1",
		BlackID:     "p2",
	}
	if err := AdvanceToNextRound(tour, []model.Match{round1}); err != nil {
		t.Fatalf("AdvanceToNextRound: %v", err)
	}
}

func TestRecordMatchResultUpdatesScoresAndStandings(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	tour := newTestTournament(t, players)
	withRound1(t, tour)

	if err := RecordMatchResult(tour, 1, 1, "A_WIN"); err != nil {
		t.Fatalf("RecordMatchResult: %v", err)
	}

	got, err := tour.GetPlayers()
	if err != nil {
		t.Fatalf("GetPlayers: %v", err)
	}
	var alice, bob model.Player
	for _, p := range got {
		switch p.ID {
		case "p1":
			alice = p
		case "p2":
			bob = p
		}
	}
	if alice.Score != 1.0 {
		t.Errorf("alice.Score = %v, want 1.0", alice.Score)
	}
	if bob.Score != 0.0 {
		t.Errorf("bob.Score = %v, want 0.0", bob.Score)
	}
	if alice.ColorHistory != "W" {
		t.Errorf("alice.ColorHistory = %q, want W", alice.ColorHistory)
	}
	if bob.ColorHistory != "B" {
		t.Errorf("bob.ColorHistory = %q, want B", bob.ColorHistory)
	}

	rounds, err := tour.GetRounds()
	if err != nil {
		t.Fatalf("GetRounds: %v", err)
	}
	if !rounds[0].IsComplete {
		t.Error("round 1 should be complete after its only match is recorded")
	}
}

func TestRecordMatchResultRejectsMismatchedBye(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	tour := newTestTournament(t, players)
	withRound1(t, tour)

	if err := RecordMatchResult(tour, 1, 1, "BYE_A"); err == nil {
		t.Error("expected error recording a BYE_A result against a non-bye match")
	}
}

func TestGetStandingsOrdersByScoreThenBuchholzThenName(t *testing.T) {
	players := []model.Player{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob"},
		{ID: "p3", Name: "Carol"},
	}
	tour := newTestTournament(t, players)

	// Round 1: p1 beats p2, p3 has a bye.
	round1 := []model.Match{
		{RoundNumber: 1, TableNumber: 1, PlayerA_ID: "p1", PlayerB_ID: "p2", WhiteID: "p1", BlackID: "p2"},
		{RoundNumber: 1, TableNumber: 2, PlayerA_ID: "p3", PlayerB_ID: ByePlayerID},
	}
	if err := AdvanceToNextRound(tour, round1); err != nil {
		t.Fatalf("AdvanceToNextRound: %v", err)
	}
	if err := RecordMatchResult(tour, 1, 1, "A_WIN"); err != nil {
		t.Fatalf("RecordMatchResult p1 vs p2: %v", err)
	}
	if err := RecordMatchResult(tour, 1, 2, "BYE_A"); err != nil {
		t.Fatalf("RecordMatchResult p3 bye: %v", err)
	}

	standings, err := GetStandings(tour)
	if err != nil {
		t.Fatalf("GetStandings: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("len(standings) = %d, want 3", len(standings))
	}
	// p1 and p3 both have 1.0; p1 beat an opponent (p2) scoring 0, p3's bye
	// doesn't count toward Buchholz, so both read 0 and the tie resolves by
	// name: Alice before Carol.
	if standings[0].ID != "p1" || standings[1].ID != "p3" || standings[2].ID != "p2" {
		t.Errorf("standings order = %v, %v, %v; want p1, p3, p2",
			standings[0].ID, standings[1].ID, standings[2].ID)
	}
}

func TestAddPlayerRejectsAfterTournamentStarted(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	tour := newTestTournament(t, players)
	withRound1(t, tour)

	if _, err := AddPlayer(tour, "Dave", "Rook Club"); err == nil {
		t.Error("expected error adding a player after the tournament started")
	}
}

func TestAddPlayerAppendsBeforeStart(t *testing.T) {
	tour := newTestTournament(t, nil)

	id, err := AddPlayer(tour, "Alice", "Rook Club")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if id == "" {
		t.Error("expected a non-empty generated player ID")
	}
	players, err := tour.GetPlayers()
	if err != nil {
		t.Fatalf("GetPlayers: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Alice" {
		t.Errorf("players = %+v, want one entry named Alice", players)
	}
	if tour.TotalPlayers != 1 {
		t.Errorf("TotalPlayers = %d, want 1", tour.TotalPlayers)
	}
}

func TestClearMatchResultRevertsScores(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	tour := newTestTournament(t, players)
	withRound1(t, tour)
	if err := RecordMatchResult(tour, 1, 1, "DRAW"); err != nil {
		t.Fatalf("RecordMatchResult: %v", err)
	}

	if err := ClearMatchResult(tour, 1, 1); err != nil {
		t.Fatalf("ClearMatchResult: %v", err)
	}
	got, err := tour.GetPlayers()
	if err != nil {
		t.Fatalf("GetPlayers: %v", err)
	}
	for _, p := range got {
		if p.Score != 0 {
			t.Errorf("player %s score = %v after clearing the only result, want 0", p.ID, p.Score)
		}
	}
	rounds, err := tour.GetRounds()
	if err != nil {
		t.Fatalf("GetRounds: %v", err)
	}
	if rounds[0].IsComplete {
		t.Error("round should no longer be complete after clearing its only result")
	}
}

func TestAdvanceToNextRoundBlocksOnIncompleteRound(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	tour := newTestTournament(t, players)
	withRound1(t, tour)

	round2 := []model.Match{{RoundNumber: 2, TableNumber: 1, PlayerA_ID: "p1", PlayerB_ID: "p2", WhiteID: "p2", BlackID: "p1"}}
	if err := AdvanceToNextRound(tour, round2); err == nil {
		t.Error("expected error advancing while round 1 has an unrecorded result")
	}
}

func TestBuildTiebreakInputMapsPlayersAndResults(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice", Rating: 1800}, {ID: "p2", Name: "Bob", Rating: 1600}}
	tour := newTestTournament(t, players)
	withRound1(t, tour)
	if err := RecordMatchResult(tour, 1, 1, "A_WIN"); err != nil {
		t.Fatalf("RecordMatchResult: %v", err)
	}

	in, idByCid, err := BuildTiebreakInput(tour)
	if err != nil {
		t.Fatalf("BuildTiebreakInput: %v", err)
	}
	if len(in.Competitors) != 2 {
		t.Fatalf("len(Competitors) = %d, want 2", len(in.Competitors))
	}
	if len(in.GameResults) != 1 {
		t.Fatalf("len(GameResults) = %d, want 1", len(in.GameResults))
	}
	gr := in.GameResults[0]
	if gr.WResultTag != "W" || gr.BResultTag != "L" {
		t.Errorf("GameResults[0] tags = %q/%q, want W/L", gr.WResultTag, gr.BResultTag)
	}
	aliceCid, bobCid := -1, -1
	for cid, id := range idByCid {
		switch id {
		case "p1":
			aliceCid = cid
		case "p2":
			bobCid = cid
		}
	}
	if aliceCid == -1 || bobCid == -1 {
		t.Fatalf("idByCid = %v, missing an entry", idByCid)
	}
	if gr.White != aliceCid || gr.Black != bobCid {
		t.Errorf("GameResults[0] White/Black = %d/%d, want %d/%d", gr.White, gr.Black, aliceCid, bobCid)
	}
}

func TestBuildTiebreakInputHandlesBye(t *testing.T) {
	players := []model.Player{{ID: "p1", Name: "Alice"}}
	tour := newTestTournament(t, players)
	round1 := []model.Match{{RoundNumber: 1, TableNumber: 1, PlayerA_ID: "p1", PlayerB_ID: ByePlayerID}}
	if err := AdvanceToNextRound(tour, round1); err != nil {
		t.Fatalf("AdvanceToNextRound: %v", err)
	}
	if err := RecordMatchResult(tour, 1, 1, "BYE_A"); err != nil {
		t.Fatalf("RecordMatchResult bye: %v", err)
	}

	in, _, err := BuildTiebreakInput(tour)
	if err != nil {
		t.Fatalf("BuildTiebreakInput: %v", err)
	}
	if len(in.GameResults) != 1 {
		t.Fatalf("len(GameResults) = %d, want 1", len(in.GameResults))
	}
	if in.GameResults[0].Black != 0 {
		t.Errorf("bye game Black cid = %d, want 0", in.GameResults[0].Black)
	}
	if in.GameResults[0].WResultTag != "W" {
		t.Errorf("bye game WResultTag = %q, want W", in.GameResults[0].WResultTag)
	}
}
