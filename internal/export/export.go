// Package export renders a computed tiebreak standings table to PDF.
//
// Follows the same maroto v2 shape as a pairings report: a title block, a
// bold header row, one data row per entry, and a generation-timestamp
// footer. The body here is a standings table — one row per competitor, one
// column per tiebreak criterion in the order the request specified them,
// plus a board-point table for team events.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"tiebreakengine/internal/tiebreak"
)

// CompetitorName resolves a competitor id to a display name; the caller
// supplies it since the tiebreak engine itself carries no name data —
// Competitor stays free of presentation fields.
type CompetitorName func(cid int) string

func headerCell(label string, width int) col.Col {
	return col.New(width).Add(
		text.New(label, props.Text{
			Top:   2,
			Style: fontstyle.Bold,
			Align: align.Center,
			Size:  10,
		}),
	)
}

func dataCell(value string, width int, alignment align.Type) col.Col {
	return col.New(width).Add(
		text.New(value, props.Text{
			Top:   1,
			Align: alignment,
			Size:  9,
		}),
	)
}

// ExportStandingsToPDF renders one row per competitor (in final rank order,
// as produced by Run/assignRanks), one column per tiebreak criterion, and —
// for team events — an appended board-point breakdown table.
func ExportStandingsToPDF(tournamentTitle, tournamentID string, out *tiebreak.Output, name CompetitorName) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("export: nil output")
	}

	cfg := config.NewBuilder().WithPageNumber().Build()
	m := maroto.New(cfg)

	m.AddRows(
		row.New(20).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Tournament: %s", tournamentTitle), props.Text{
					Top:   3,
					Style: fontstyle.Bold,
					Align: align.Center,
					Size:  16,
				}),
			),
		),
	)
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Tournament ID: %s", tournamentID), props.Text{
					Top:   2,
					Align: align.Center,
					Size:  10,
				}),
			),
		),
	)
	m.AddRows(
		row.New(15).Add(
			col.New(12).Add(
				text.New("Final Standings", props.Text{
					Top:   3,
					Style: fontstyle.Bold,
					Align: align.Center,
					Size:  14,
				}),
			),
		),
	)

	const nameWidth, rankWidth = 4, 1
	tbCols := len(out.Tiebreaks)
	tbWidth := 1
	if tbCols > 0 {
		if w := (12 - nameWidth - rankWidth) / tbCols; w > 0 {
			tbWidth = w
		}
	}

	headerCols := []col.Col{headerCell("Rank", rankWidth), headerCell("Competitor", nameWidth)}
	for _, td := range out.Tiebreaks {
		headerCols = append(headerCols, headerCell(td.Name, tbWidth))
	}
	m.AddRows(row.New(10).Add(headerCols...))

	standings := append([]tiebreak.OutputCompetitor(nil), out.Competitors...)
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Rank != standings[j].Rank {
			return standings[i].Rank < standings[j].Rank
		}
		return standings[i].Cid < standings[j].Cid
	})
	for _, c := range standings {
		cols := []col.Col{
			dataCell(fmt.Sprintf("%d", c.Rank), rankWidth, align.Center),
			dataCell(name(c.Cid), nameWidth, align.Left),
		}
		for _, v := range c.TiebreakScore {
			cols = append(cols, dataCell(formatScore(v), tbWidth, align.Center))
		}
		m.AddRows(row.New(8).Add(cols...))
	}

	if hasBoardPoints(out.Competitors) {
		m.AddRows(row.New(12))
		m.AddRows(
			row.New(12).Add(
				col.New(12).Add(
					text.New("Board Points", props.Text{
						Top:   2,
						Style: fontstyle.Bold,
						Align: align.Center,
						Size:  12,
					}),
				),
			),
		)
		for _, c := range out.Competitors {
			if len(c.BoardPoints) == 0 {
				continue
			}
			m.AddRows(
				row.New(8).Add(
					dataCell(name(c.Cid), 3, align.Left),
					dataCell(formatBoardPoints(c.BoardPoints), 9, align.Left),
				),
			)
		}
	}

	m.AddRows(
		row.New(15).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02 15:04:05")), props.Text{
					Top:   5,
					Align: align.Center,
					Size:  8,
				}),
			),
		),
	)

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

func formatScore(v any) string {
	switch val := v.(type) {
	case tiebreak.Decimal:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func hasBoardPoints(cmps []tiebreak.OutputCompetitor) bool {
	for _, c := range cmps {
		if len(c.BoardPoints) > 0 {
			return true
		}
	}
	return false
}

func formatBoardPoints(bp map[int]tiebreak.Decimal) string {
	out := ""
	for board := 1; board <= len(bp); board++ {
		v, ok := bp[board]
		if !ok {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("b%d: %s", board, v.String())
	}
	return out
}
