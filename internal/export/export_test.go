package export

import (
	"testing"

	"tiebreakengine/internal/tiebreak"
)

func TestExportStandingsToPDF(t *testing.T) {
	in := &tiebreak.TournamentInput{
		NumRounds: 1,
		Competitors: []tiebreak.CompetitorInput{
			{Cid: 1, Rank: 1},
			{Cid: 2, Rank: 2},
		},
		GameResults: []tiebreak.GameResultInput{
			{Round: 1, White: 1, Black: 2, WResultTag: "W", Played: true},
		},
	}
	out := tiebreak.Run(in, &tiebreak.Request{NumberOfRounds: -1, TieBreak: []string{"PTS", "BH"}})

	names := map[int]string{1: "Alice", 2: "Bob"}
	pdf, err := ExportStandingsToPDF("Test Open", "42", out, func(cid int) string { return names[cid] })
	if err != nil {
		t.Fatalf("ExportStandingsToPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("expected non-empty PDF bytes")
	}
	// %PDF is the standard file-format magic header.
	if string(pdf[:4]) != "%PDF" {
		t.Errorf("output does not look like a PDF, starts with %q", pdf[:4])
	}
}

func TestExportStandingsToPDFNilOutput(t *testing.T) {
	if _, err := ExportStandingsToPDF("Test Open", "42", nil, func(int) string { return "" }); err == nil {
		t.Error("expected an error for a nil Output")
	}
}
