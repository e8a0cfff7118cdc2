/*
Maintainers note:
This file implements Swiss tournament rules and gameplay logic.
Refer to the specification at internal/tournament/tournament.md for the current rules, pairing, scoring, tie-breaks, and lifecycle.
Update implementations here to match the specification as it evolves.
*/
package tournament

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"tiebreakengine/internal/model"
	"tiebreakengine/internal/tiebreak"

	"github.com/google/uuid"
)

const ByePlayerID = "BYE"

// InitializeTournament sets minimal fields and attaches players.
// Title is required; players will be serialized into PlayersData.
// PairingSystem defaults to "SWISS"; ByeScore defaults to 1.0 if unset.
func InitializeTournament(t *model.Tournament, title string, description string, players []model.Player) error {
	// Validate required fields
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("field must be filled: Title is required")
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("field must be filled: Description is required")
	}

	t.Title = title
	t.Description = description
	t.Status = "ACTIVE"
	t.StartTime = time.Now()
	t.CurrentRound = 0
	t.TotalPlayers = len(players)
	if t.PairingSystem == "" {
		t.PairingSystem = "SWISS"
	}
	if t.ByeScore == 0 {
		t.ByeScore = 1.0
	}

	// Persist players
	if err := t.SetPlayers(players); err != nil {
		return err
	}

	// Initialize empty rounds
	if err := t.SetRounds([]model.Round{}); err != nil {
		return err
	}

	return nil
}

// RecordMatchResult updates the specified match result and player standings.
// result must be one of: "A_WIN", "B_WIN", "DRAW", "BYE_A".
func RecordMatchResult(t *model.Tournament, roundNumber int, tableNumber int, result string) error {
	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	// Locate the target match and round
	var match *model.Match
	var targetRound *model.Round
	for r := range rounds {
		if rounds[r].RoundNumber != roundNumber {
			continue
		}
		targetRound = &rounds[r]
		for m := range rounds[r].Matches {
			if rounds[r].Matches[m].TableNumber == tableNumber {
				match = &rounds[r].Matches[m]
				break
			}
		}
		if match != nil {
			break
		}
	}
	if match == nil {
		return fmt.Errorf("match not found for round %d, table %d", roundNumber, tableNumber)
	}

	// Validate BYE consistency
	if result == "BYE_A" && match.PlayerB_ID != ByePlayerID {
		return fmt.Errorf("invalid result BYE_A for non-bye match at round %d, table %d", roundNumber, tableNumber)
	}

	// Overwrite match result and scores (supports resubmission safely)
	switch result {
	case "A_WIN":
		match.Result = "A_WIN"
		match.ScoreA = 1.0
		match.ScoreB = 0.0
	case "B_WIN":
		match.Result = "B_WIN"
		match.ScoreA = 0.0
		match.ScoreB = 1.0
	case "DRAW":
		match.Result = "DRAW"
		match.ScoreA = 0.5
		match.ScoreB = 0.5
	case "BYE_A":
		match.Result = "BYE_A"
		if t.ByeScore == 0 {
			t.ByeScore = 1.0
		}
		match.ScoreA = t.ByeScore
		match.ScoreB = 0.0
	default:
		return fmt.Errorf("unknown result %q", result)
	}

	// Check if all matches in this round are now complete
	allComplete := true
	for _, m := range targetRound.Matches {
		if m.Result == "" {
			allComplete = false
			break
		}
	}
	targetRound.IsComplete = allComplete

	// Persist updated rounds before recompute
	if err := t.SetRounds(rounds); err != nil {
		return err
	}

	// Recompute all players (Score, ColorHistory, HasBye, OpponentIDs) from all recorded matches
	if err := RecomputePlayersFromRounds(t); err != nil {
		return err
	}

	// Remove previous MATCH_RESULT_RECORDED event for this round/table to avoid double spending
	events, _ := t.GetEvents()
	filtered := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !(e.Type == "MATCH_RESULT_RECORDED" && e.RoundNumber == roundNumber && e.TableNumber == tableNumber) {
			filtered = append(filtered, e)
		}
	}
	events = filtered

	// Append event: MATCH_RESULT_RECORDED with match snapshot
	detail := struct {
		Match model.Match `json:"match"`
	}{
		Match: *match,
	}
	detailJSON, _ := json.Marshal(detail)
	events = append(events, model.Event{
		EventID:     uuid.New(),
		Type:        "MATCH_RESULT_RECORDED",
		Timestamp:   time.Now(),
		RoundNumber: roundNumber,
		TableNumber: tableNumber,
		Details:     detailJSON,
	})
	if err := t.SetEvents(events); err != nil {
		return err
	}

	// Recompute standings (including Buchholz)
	UpdateStandings(t)

	return nil
}

func ensureOpponent(p *model.Player, oid string) {
	for _, id := range p.OpponentIDs {
		if id == oid {
			return
		}
	}
	p.OpponentIDs = append(p.OpponentIDs, oid)
}

// UpdateStandings recomputes Buchholz for all players based on OpponentIDs and current scores.
//
// This is a quick float64 running tally for live-standings display during
// pairing, not the tiebreak engine (internal/tiebreak, exact Decimal
// arithmetic, the full grammar of criteria). Use internal/tiebreak.Run via
// BuildTiebreakInput for an authoritative, auditable ranking.
func UpdateStandings(t *model.Tournament) error {
	players, err := t.GetPlayers()
	if err != nil {
		return err
	}

	// Build score index
	scoreIndex := make(map[string]float64, len(players))
	for _, p := range players {
		scoreIndex[p.ID] = p.Score
	}

	for i := range players {
		sum := 0.0
		for _, oid := range players[i].OpponentIDs {
			// Skip bye opponent for Buchholz
			if oid == ByePlayerID {
				continue
			}
			sum += scoreIndex[oid]
		}
		players[i].Buchholz = sum
	}

	return t.SetPlayers(players)
}

// GetStandings returns the players sorted by Score desc, Buchholz desc, Name asc.
// It recomputes Buchholz before sorting to ensure tie-breaks are up-to-date.
func GetStandings(t *model.Tournament) ([]model.Player, error) {
	if err := UpdateStandings(t); err != nil {
		return nil, err
	}
	players, err := t.GetPlayers()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		if players[i].Buchholz != players[j].Buchholz {
			return players[i].Buchholz > players[j].Buchholz
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// AdvanceToNextRound persists a pre-built round of matches for the next round
// number and updates CurrentRound and TotalPlayers on the tournament. Pairing
// generation itself is out of scope here (see DESIGN.md); the caller supplies
// the next round's matches however it sees fit.
func AdvanceToNextRound(t *model.Tournament, matches []model.Match) error {
	players, err := t.GetPlayers()
	if err != nil {
		return err
	}

	// Prevent advancing if the current round exists and is not complete
	if t.CurrentRound > 0 {
		rounds, err2 := t.GetRounds()
		if err2 != nil {
			return err2
		}

		for _, r := range rounds {
			if r.RoundNumber == t.CurrentRound {
				if !r.IsComplete {
					// Collect detailed information about incomplete matches
					var incompleteMatches []string
					var totalMatches int
					var completedMatches int

					for _, m := range r.Matches {
						totalMatches++
						if m.Result == "" {
							// Format player names for better readability
							playerAName := getPlayerName(players, m.PlayerA_ID)
							playerBName := getPlayerName(players, m.PlayerB_ID)

							if m.PlayerB_ID == ByePlayerID {
								incompleteMatches = append(incompleteMatches,
									fmt.Sprintf("Table %d: %s (BYE)", m.TableNumber, playerAName))
							} else {
								incompleteMatches = append(incompleteMatches,
									fmt.Sprintf("Table %d: %s vs %s", m.TableNumber, playerAName, playerBName))
							}
						} else {
							completedMatches++
						}
					}

					// Build detailed error message
					errorMsg := fmt.Sprintf("Cannot advance: Round %d is not complete (%d/%d matches finished).\n",
						t.CurrentRound, completedMatches, totalMatches)

					if len(incompleteMatches) > 0 {
						errorMsg += "Incomplete matches:\n"
						for _, match := range incompleteMatches {
							errorMsg += "• " + match + "\n"
						}
						// Remove trailing newline
						errorMsg = strings.TrimSuffix(errorMsg, "\n")
					}

					return fmt.Errorf("%s", errorMsg)
				}
				break
			}
		}
	}

	nextRoundNumber := t.CurrentRound + 1
	for i := range matches {
		matches[i].RoundNumber = nextRoundNumber
	}

	// Reorder matches so the previous table-1 winner stays on table 1,
	// BYE (if any) moves to last, and remaining matches follow standings.
	// This prioritizes keeping table over keeping color.
	// Helper: find previous round table-1 winner
	prevTable1Winner := ""
	if t.CurrentRound > 0 {
		if rounds, rErr := t.GetRounds(); rErr == nil {
			for _, r := range rounds {
				if r.RoundNumber == t.CurrentRound {
					for _, m := range r.Matches {
						if m.TableNumber != 1 {
							continue
						}
						switch m.Result {
						case "A_WIN", "BYE_A":
							prevTable1Winner = m.PlayerA_ID
						case "B_WIN":
							prevTable1Winner = m.PlayerB_ID
						default:
							prevTable1Winner = "" // DRAW or empty result: no anchor
						}
						break
					}
					break
				}
			}
		}
	}
	// Build standings rank map for fallback ordering
	rank := map[string]int{}
	if standings, sErr := GetStandings(t); sErr == nil {
		for i := range standings {
			rank[standings[i].ID] = i // smaller index => higher rank
		}
	}
	// Helper: best rank involved in a match (BYE considered worst so it goes last)
	bestRank := func(m model.Match) int {
		if m.PlayerA_ID == ByePlayerID || m.PlayerB_ID == ByePlayerID {
			return len(players) + 1
		}
		ra := rank[m.PlayerA_ID]
		rb := rank[m.PlayerB_ID]
		if ra < rb {
			return ra
		}
		return rb
	}
	hasBye := func(m model.Match) bool {
		return m.PlayerA_ID == ByePlayerID || m.PlayerB_ID == ByePlayerID
	}
	contains := func(m model.Match, id string) bool {
		return id != "" && (m.PlayerA_ID == id || m.PlayerB_ID == id)
	}

	// Sort with priority:
	// 1) match containing previous table-1 winner comes first
	// 2) BYE matches go last
	// 3) remaining matches ordered by standings (bestRank)
	sort.SliceStable(matches, func(i, j int) bool {
		iHasAnchor := contains(matches[i], prevTable1Winner)
		jHasAnchor := contains(matches[j], prevTable1Winner)
		if iHasAnchor != jHasAnchor {
			return iHasAnchor
		}
		iBye := hasBye(matches[i])
		jBye := hasBye(matches[j])
		if iBye != jBye {
			return !iBye
		}
		return bestRank(matches[i]) < bestRank(matches[j])
	})
	// Reassign table numbers after sorting
	for i := range matches {
		matches[i].TableNumber = i + 1
	}

	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	newRound := model.Round{
		RoundNumber: nextRoundNumber,
		Matches:     matches,
		IsComplete:  false,
	}
	rounds = append(rounds, newRound)

	if err := t.SetRounds(rounds); err != nil {
		return err
	}

	t.CurrentRound = nextRoundNumber
	t.TotalPlayers = len(players)

	return nil
}

// AddPlayer adds a new player to the tournament with an auto-generated UUID.
// Returns the generated player ID and an error if the tournament has already started.
func AddPlayer(t *model.Tournament, name string, club string) (string, error) {
	// Validate required fields
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("player name is required")
	}

	// Prevent adding players after tournament has started
	if t.CurrentRound > 0 {
		return "", fmt.Errorf("cannot add players after tournament has started (current round: %d)", t.CurrentRound)
	}

	// Get current players
	players, err := t.GetPlayers()
	if err != nil {
		return "", err
	}

	// Generate new UUID for the player
	playerID := uuid.NewString()

	// Create new player with initialized fields
	newPlayer := model.Player{
		ID:           playerID,
		Name:         name,
		Score:        0.0,
		OpponentIDs:  []string{},
		Buchholz:     0.0,
		ColorHistory: "",
		HasBye:       false,
		Club:         club,
	}

	// Add the new player
	players = append(players, newPlayer)

	// Update tournament
	if err := t.SetPlayers(players); err != nil {
		return "", err
	}

	// Update total players count
	t.TotalPlayers = len(players)

	return playerID, nil
}

// RecomputePlayersFromRounds rebuilds all player aggregates from the source of truth (rounds).
// This prevents double-counting when results are modified or resubmitted.
func RecomputePlayersFromRounds(t *model.Tournament) error {
	players, err := t.GetPlayers()
	if err != nil {
		return err
	}
	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	// Index players by ID for fast updates
	index := make(map[string]*model.Player, len(players))
	for i := range players {
		p := &players[i]
		// Reset aggregate fields
		p.Score = 0
		p.ColorHistory = ""
		p.HasBye = false
		p.OpponentIDs = []string{}
		index[p.ID] = p
	}

	// Apply contributions from all matches that have a recorded result
	// BUT ONLY from rounds <= current round
	for _, r := range rounds {
		// Skip rounds after current round
		if r.RoundNumber > t.CurrentRound {
			continue
		}
		
		for _, m := range r.Matches {
			if m.Result == "" {
				continue
			}

			// Score updates
			if a, ok := index[m.PlayerA_ID]; ok {
				a.Score += m.ScoreA
			}
			if m.PlayerB_ID != ByePlayerID {
				if b, ok := index[m.PlayerB_ID]; ok {
					b.Score += m.ScoreB
				}
			}

			// Opponents and color history
			if m.PlayerB_ID != ByePlayerID {
				// A opponent list + color
				if a, ok := index[m.PlayerA_ID]; ok {
					ensureOpponent(a, m.PlayerB_ID)
					if m.WhiteID == a.ID {
						a.ColorHistory += "W"
					} else if m.BlackID == a.ID {
						a.ColorHistory += "B"
					}
				}
				// B opponent list + color
				if b, ok := index[m.PlayerB_ID]; ok {
					ensureOpponent(b, m.PlayerA_ID)
					if m.WhiteID == b.ID {
						b.ColorHistory += "W"
					} else if m.BlackID == b.ID {
						b.ColorHistory += "B"
					}
				}
			} else {
				// BYE: mark HasBye
				if a, ok := index[m.PlayerA_ID]; ok {
					a.HasBye = true
				}
			}
		}
	}

	// Persist rebuilt players
	return t.SetPlayers(players)
}

// getPlayerName returns the player name for a given ID, or the ID if not found
func getPlayerName(players []model.Player, playerID string) string {
	if playerID == ByePlayerID {
		return "BYE"
	}

	for _, p := range players {
		if p.ID == playerID {
			return p.Name
		}
	}

	// Fallback to ID if name not found
	return playerID
}

// ClearMatchResult clears the result of a specific match in a round
func ClearMatchResult(t *model.Tournament, roundNumber int, tableNumber int) error {
	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	// Find the target match and round
	var match *model.Match
	var targetRound *model.Round
	for r := range rounds {
		if rounds[r].RoundNumber != roundNumber {
			continue
		}
		targetRound = &rounds[r]
		for m := range rounds[r].Matches {
			if rounds[r].Matches[m].TableNumber == tableNumber {
				match = &rounds[r].Matches[m]
				break
			}
		}
		if match != nil {
			break
		}
	}
	if match == nil {
		return fmt.Errorf("match not found for round %d, table %d", roundNumber, tableNumber)
	}

	// Clear the match result
	match.Result = ""
	match.ScoreA = 0.0
	match.ScoreB = 0.0

	// Check if all matches in this round are now incomplete
	allComplete := true
	for _, m := range targetRound.Matches {
		if m.Result == "" {
			allComplete = false
			break
		}
	}
	targetRound.IsComplete = allComplete

	// Persist updated rounds
	if err := t.SetRounds(rounds); err != nil {
		return err
	}

	// Recompute all players from remaining results
	if err := RecomputePlayersFromRounds(t); err != nil {
		return err
	}

	// Recompute standings
	UpdateStandings(t)

	return nil
}

// ClearAllResultsInRound clears all results in a specific round
func ClearAllResultsInRound(t *model.Tournament, roundNumber int) error {
	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	// Find the target round
	var targetRound *model.Round
	for r := range rounds {
		if rounds[r].RoundNumber == roundNumber {
			targetRound = &rounds[r]
			break
		}
	}
	if targetRound == nil {
		return fmt.Errorf("round %d not found", roundNumber)
	}

	// Clear all match results in this round
	for m := range targetRound.Matches {
		targetRound.Matches[m].Result = ""
		targetRound.Matches[m].ScoreA = 0.0
		targetRound.Matches[m].ScoreB = 0.0
	}
	targetRound.IsComplete = false

	// Persist updated rounds
	if err := t.SetRounds(rounds); err != nil {
		return err
	}

	// Recompute all players from remaining results
	if err := RecomputePlayersFromRounds(t); err != nil {
		return err
	}

	// Recompute standings
	UpdateStandings(t)

	return nil
}

// GoBackToPreviousRound allows going back to previous round while keeping all results
func GoBackToPreviousRound(t *model.Tournament) error {
	if t.CurrentRound <= 1 {
		return fmt.Errorf("cannot go back: already at round 1 or no rounds exist (current round: %d)", t.CurrentRound)
	}

	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	// Check if previous round exists
	previousRoundExists := false
	for _, r := range rounds {
		if r.RoundNumber == t.CurrentRound-1 {
			previousRoundExists = true
			break
		}
	}

	if !previousRoundExists {
		return fmt.Errorf("previous round %d not found", t.CurrentRound-1)
	}

	// Simply decrement current round - keep all rounds data intact
	t.CurrentRound--

	// Recompute all players from remaining results to ensure consistency
	if err := RecomputePlayersFromRounds(t); err != nil {
		return err
	}

	// Recompute standings
	UpdateStandings(t)

	// Add event log
	events, _ := t.GetEvents()
	detail := struct {
		PreviousRound int    `json:"previous_round"`
		NewRound      int    `json:"new_round"`
		Reason        string `json:"reason"`
	}{
		PreviousRound: t.CurrentRound + 1,
		NewRound:      t.CurrentRound,
		Reason:        "Went back to previous round",
	}
	detailJSON, _ := json.Marshal(detail)
	events = append(events, model.Event{
		EventID:     uuid.New(),
		Type:        "ROUND_REVERTED",
		Timestamp:   time.Now(),
		RoundNumber: t.CurrentRound,
		TableNumber: 0,
		Details:     detailJSON,
	})
	if err := t.SetEvents(events); err != nil {
		return err
	}

	return nil
}

// CancelCurrentRound reverts the tournament to the previous round state.
// This removes the current round's pairings and decrements CurrentRound.
// Can only be used if the current round has no recorded results.
func CancelCurrentRound(t *model.Tournament) error {
	if t.CurrentRound <= 0 {
		return fmt.Errorf("cannot cancel: no rounds to cancel (current round: %d)", t.CurrentRound)
	}

	rounds, err := t.GetRounds()
	if err != nil {
		return err
	}

	// Find the current round
	var currentRoundIndex = -1
	for i, r := range rounds {
		if r.RoundNumber == t.CurrentRound {
			currentRoundIndex = i
			break
		}
	}

	if currentRoundIndex == -1 {
		return fmt.Errorf("current round %d not found in rounds data", t.CurrentRound)
	}

	currentRound := rounds[currentRoundIndex]

	// Check if current round has any recorded results
	for _, m := range currentRound.Matches {
		if m.Result != "" {
			return fmt.Errorf("cannot cancel round %d: matches have recorded results. Please clear all results first", t.CurrentRound)
		}
	}

	// Remove the current round from rounds slice
	rounds = append(rounds[:currentRoundIndex], rounds[currentRoundIndex+1:]...)

	// Persist updated rounds
	if err := t.SetRounds(rounds); err != nil {
		return err
	}

	// Decrement current round
	t.CurrentRound--

	// Add event log for cancellation
	events, _ := t.GetEvents()
	detail := struct {
		CancelledRound int    `json:"cancelled_round"`
		Reason         string `json:"reason"`
	}{
		CancelledRound: currentRound.RoundNumber,
		Reason:         "Round cancelled and reverted",
	}
	detailJSON, _ := json.Marshal(detail)
	events = append(events, model.Event{
		EventID:     uuid.New(),
		Type:        "ROUND_CANCELLED",
		Timestamp:   time.Now(),
		RoundNumber: currentRound.RoundNumber,
		TableNumber: 0, // Not applicable for round-level events
		Details:     detailJSON,
	})
	if err := t.SetEvents(events); err != nil {
		return err
	}

	return nil
}


// resultTag maps a recorded match result and side onto the "W"/"D"/"L"
// score-system tags internal/tiebreak expects (result-tag vocabulary).
func resultTag(result string, isPlayerA bool) string {
	switch result {
	case "A_WIN", "BYE_A":
		if isPlayerA {
			return "W"
		}
		return "L"
	case "B_WIN":
		if isPlayerA {
			return "L"
		}
		return "W"
	case "DRAW":
		return "D"
	default:
		return ""
	}
}

// BuildTiebreakInput converts the tournament's recorded players and rounds
// into the individual-event TournamentInput internal/tiebreak consumes,
// assigning each player a stable integer competitor id (their 1-based
// position in the stored player list) since the engine's Competitor model is
// int-keyed while this tournament's players carry string/UUID ids. The
// returned idByCid map lets a caller translate an Output's Cid values back
// to the original player IDs.
func BuildTiebreakInput(t *model.Tournament) (*tiebreak.TournamentInput, map[int]string, error) {
	players, err := t.GetPlayers()
	if err != nil {
		return nil, nil, err
	}
	rounds, err := t.GetRounds()
	if err != nil {
		return nil, nil, err
	}

	cidByID := make(map[string]int, len(players))
	idByCid := make(map[int]string, len(players))
	for i, p := range players {
		cid := i + 1
		cidByID[p.ID] = cid
		idByCid[cid] = p.ID
	}
	cidByID[ByePlayerID] = 0

	in := &tiebreak.TournamentInput{
		NumRounds:      len(rounds),
		TournamentType: t.PairingSystem,
	}
	for _, p := range players {
		in.Competitors = append(in.Competitors, tiebreak.CompetitorInput{
			Cid:     cidByID[p.ID],
			Rating:  p.Rating,
			Present: true,
		})
	}
	for _, r := range rounds {
		for _, m := range r.Matches {
			if m.PlayerB_ID == ByePlayerID {
				in.GameResults = append(in.GameResults, tiebreak.GameResultInput{
					Round:      r.RoundNumber,
					White:      cidByID[m.PlayerA_ID],
					Black:      0,
					WResultTag: resultTag(m.Result, true),
					Played:     m.Result != "",
				})
				continue
			}
			in.GameResults = append(in.GameResults, tiebreak.GameResultInput{
				Round:      r.RoundNumber,
				White:      cidByID[m.WhiteID],
				Black:      cidByID[m.BlackID],
				WResultTag: resultTag(m.Result, m.WhiteID == m.PlayerA_ID),
				BResultTag: resultTag(m.Result, m.WhiteID != m.PlayerA_ID),
				Played:     m.Result != "",
			})
		}
	}
	return in, idByCid, nil
}
