// Package service implements the transport-agnostic request dispatcher the
// core tiebreak engine is exercised through: decode one versioned envelope,
// resolve and authenticate the tournament it names, invoke internal/tiebreak,
// and wrap the result back into a response envelope. internal/tiebreak
// itself stays pure and I/O-free; this package is where that boundary lives.
package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tiebreakengine/internal/auth"
	"tiebreakengine/internal/database"
	"tiebreakengine/internal/export"
	"tiebreakengine/internal/model"
	"tiebreakengine/internal/tiebreak"
	"tiebreakengine/internal/tournament"

	"github.com/google/uuid"
)

const originTag = "tiebreakengine ver. 1.00"

// Envelope is the versioned request/response wrapper: one "command" object
// going in, one "status" plus a result payload coming back.
type Envelope struct {
	FileType       string          `json:"filetype"`
	Version        string          `json:"version"`
	Origin         string          `json:"origin"`
	Published      string          `json:"published"`
	Command        json.RawMessage `json:"command,omitempty"`
	Status         *Status         `json:"status,omitempty"`
	TiebreakResult *WireOutput     `json:"tiebreakResult,omitempty"`
	ExportPDF      []byte          `json:"exportPdf,omitempty"`
}

// Status carries a numeric result code and, on failure, one or more
// human-readable error messages.
type Status struct {
	Code  int      `json:"code"`
	Error []string `json:"error"`
}

// Command is the decoded "command" object of a request envelope.
// AdminUser/AdminPassword, when supplied, gate a "tiebreak" request through
// auth.Service before it runs; the "round" and "export" services do not
// check them.
type Command struct {
	Service        string   `json:"service"`
	Check          bool     `json:"check"`
	TournamentNo   int      `json:"tournamentno"`
	NumberOfRounds int      `json:"number_of_rounds"`
	TieBreak       []string `json:"tie_break"`
	TournamentType string   `json:"tournamenttype"`
	IsRR           *bool    `json:"is_rr,omitempty"`
	Unrated        int      `json:"unrated,omitempty"`
	AdminUser      string   `json:"admin_user,omitempty"`
	AdminPassword  string   `json:"admin_password,omitempty"`

	// Action selects the sub-operation for the "round" service:
	// "clear_round" (with RoundNumber), "go_back" or "cancel_round".
	Action      string `json:"action,omitempty"`
	RoundNumber int    `json:"round_number,omitempty"`

	// TournamentTitle labels the "export" service's PDF header.
	TournamentTitle string `json:"tournament_title,omitempty"`
}

// WireDescriptor is the JSON projection of tiebreak.TiebreakDescriptor.
type WireDescriptor struct {
	Order     int    `json:"order"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	PointType string `json:"point_type"`
}

// WireCompetitor is the JSON projection of tiebreak.OutputCompetitor.
type WireCompetitor struct {
	Cid             int            `json:"cid"`
	Rank            int            `json:"rank"`
	TiebreakScore   []any          `json:"tiebreakScore"`
	BoardPoints     map[int]string `json:"boardPoints,omitempty"`
	TiebreakDetails []any          `json:"tiebreakDetails"`
}

// WireOutput is the JSON projection of tiebreak.Output.
type WireOutput struct {
	Check       bool             `json:"check"`
	Tiebreaks   []WireDescriptor `json:"tiebreaks"`
	Competitors []WireCompetitor `json:"competitors"`
}

func toWireOutput(out *tiebreak.Output) *WireOutput {
	w := &WireOutput{Check: out.Check}
	for _, td := range out.Tiebreaks {
		w.Tiebreaks = append(w.Tiebreaks, WireDescriptor{
			Order:     td.Order,
			Name:      td.Name,
			Year:      td.Year,
			PointType: string(td.PointType),
		})
	}
	for _, c := range out.Competitors {
		wc := WireCompetitor{
			Cid:             c.Cid,
			Rank:            c.Rank,
			TiebreakScore:   c.TiebreakScore,
			TiebreakDetails: make([]any, len(c.TiebreakDetails)),
		}
		for i, d := range c.TiebreakDetails {
			wc.TiebreakDetails[i] = wireAccValue(d)
		}
		if len(c.BoardPoints) > 0 {
			wc.BoardPoints = make(map[int]string, len(c.BoardPoints))
			for board, v := range c.BoardPoints {
				wc.BoardPoints[board] = v.String()
			}
		}
		w.Competitors = append(w.Competitors, wc)
	}
	return w
}

// wireAccValue renders an AccValue as a plain map so the audit trail survives
// JSON round-tripping without exporting internal state-key types.
func wireAccValue(a *tiebreak.AccValue) map[string]any {
	if a == nil {
		return nil
	}
	m := map[string]any{"val": a.Val}
	for rnd, v := range a.Rounds {
		m[fmt.Sprintf("%d", rnd)] = v
	}
	if len(a.Cut) > 0 {
		m["cut"] = a.Cut
	}
	return m
}

// Dispatcher wires the database, auth and tiebreak engine together, behind
// the CLI entrypoint at cmd/tiebreakserver.
type Dispatcher struct {
	DB      *database.DB
	AuthSvc *auth.Service
}

// New builds a Dispatcher. authSvc may be nil, in which case admin
// credentials in the request are ignored rather than rejected.
func New(db *database.DB, authSvc *auth.Service) *Dispatcher {
	return &Dispatcher{DB: db, AuthSvc: authSvc}
}

// Dispatch decodes one request envelope, resolves and authenticates it, runs
// the requested service, and returns the response envelope. No error ever
// propagates past the envelope's status field; every failure mode is
// reported there instead.
func (d *Dispatcher) Dispatch(raw []byte) Envelope {
	var req Envelope
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorEnvelope(fmt.Sprintf("malformed request envelope: %v", err))
	}
	var cmd Command
	if len(req.Command) > 0 {
		if err := json.Unmarshal(req.Command, &cmd); err != nil {
			return errorEnvelope(fmt.Sprintf("malformed command: %v", err))
		}
	}

	switch cmd.Service {
	case "tiebreak":
		return d.dispatchTiebreak(&cmd)
	case "round":
		return d.dispatchRound(&cmd)
	case "export":
		return d.dispatchExport(&cmd)
	case "convert":
		return errorEnvelope("convert service is outside the tiebreak core's scope")
	default:
		return errorEnvelope(fmt.Sprintf("unknown service %q", cmd.Service))
	}
}

// dispatchRound performs a round-lifecycle mutation (clearing results, going
// back a round, or cancelling the current round) on the named tournament and
// persists it.
func (d *Dispatcher) dispatchRound(cmd *Command) Envelope {
	if cmd.TournamentNo <= 0 {
		return errorEnvelope("tournamentno is required and must be positive")
	}
	if d.DB == nil {
		return errorEnvelope("no database configured")
	}

	var t model.Tournament
	if err := d.DB.Where("tournament_no = ?", cmd.TournamentNo).First(&t).Error; err != nil {
		return errorEnvelope(fmt.Sprintf("tournament %d not found", cmd.TournamentNo))
	}

	var err error
	switch cmd.Action {
	case "clear_round":
		err = tournament.ClearAllResultsInRound(&t, cmd.RoundNumber)
	case "go_back":
		err = tournament.GoBackToPreviousRound(&t)
	case "cancel_round":
		err = tournament.CancelCurrentRound(&t)
	default:
		return errorEnvelope(fmt.Sprintf("unknown round action %q", cmd.Action))
	}
	if err != nil {
		return errorEnvelope(err.Error())
	}
	if err := d.DB.Save(&t).Error; err != nil {
		return errorEnvelope(fmt.Sprintf("failed to persist tournament: %v", err))
	}

	return Envelope{
		FileType:  "round response",
		Version:   "1.0",
		Origin:    originTag,
		Published: time.Now().Format("2006-01-02 15:04:05"),
		Status:    &Status{Code: 0, Error: []string{}},
	}
}

// dispatchExport runs the requested tiebreak criteria and renders the
// resulting standings as a PDF, exercising internal/export (and its maroto
// dependency) as part of a reachable service path.
func (d *Dispatcher) dispatchExport(cmd *Command) Envelope {
	if cmd.TournamentNo <= 0 {
		return errorEnvelope("tournamentno is required and must be positive")
	}
	if d.DB == nil {
		return errorEnvelope("no database configured")
	}

	var t model.Tournament
	if err := d.DB.Where("tournament_no = ?", cmd.TournamentNo).First(&t).Error; err != nil {
		return errorEnvelope(fmt.Sprintf("tournament %d not found", cmd.TournamentNo))
	}

	in, idByCid, err := tournament.BuildTiebreakInput(&t)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("failed to build tiebreak input: %v", err))
	}
	if cmd.TournamentType != "" {
		in.TournamentType = cmd.TournamentType
	}

	tbReq := &tiebreak.Request{
		Check:          cmd.Check,
		TournamentNo:   cmd.TournamentNo,
		NumberOfRounds: cmd.NumberOfRounds,
		TieBreak:       cmd.TieBreak,
		TournamentType: cmd.TournamentType,
		IsRR:           cmd.IsRR,
		Unrated:        cmd.Unrated,
	}
	out := tiebreak.Run(in, tbReq)

	players, err := t.GetPlayers()
	if err != nil {
		return errorEnvelope(fmt.Sprintf("failed to load players: %v", err))
	}
	nameByID := make(map[string]string, len(players))
	for _, p := range players {
		nameByID[p.ID] = p.Name
	}
	nameOf := func(cid int) string {
		if id, ok := idByCid[cid]; ok {
			if name, ok := nameByID[id]; ok && name != "" {
				return name
			}
			return id
		}
		return fmt.Sprintf("#%d", cid)
	}

	title := cmd.TournamentTitle
	if title == "" {
		title = t.Title
	}
	pdf, err := export.ExportStandingsToPDF(title, fmt.Sprintf("%d", cmd.TournamentNo), out, nameOf)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("failed to render PDF: %v", err))
	}

	return Envelope{
		FileType:  "export response",
		Version:   "1.0",
		Origin:    originTag,
		Published: time.Now().Format("2006-01-02 15:04:05"),
		Status:    &Status{Code: 0, Error: []string{}},
		ExportPDF: pdf,
	}
}

func (d *Dispatcher) dispatchTiebreak(cmd *Command) Envelope {
	if cmd.TournamentNo <= 0 {
		return errorEnvelope("tournamentno is required and must be positive")
	}
	if d.DB == nil {
		return errorEnvelope("no database configured")
	}
	if cmd.AdminUser != "" && d.AuthSvc != nil {
		ok, err := d.AuthSvc.CheckCredentials(cmd.AdminUser, cmd.AdminPassword)
		if err != nil {
			log.Printf("service: auth check error for tournamentno=%d: %v", cmd.TournamentNo, err)
			return errorEnvelope("authentication failed")
		}
		if !ok {
			return errorEnvelope("invalid administrator credentials")
		}
	}

	var t model.Tournament
	if err := d.DB.Where("tournament_no = ?", cmd.TournamentNo).First(&t).Error; err != nil {
		return errorEnvelope(fmt.Sprintf("tournament %d not found", cmd.TournamentNo))
	}

	in, idByCid, err := tournament.BuildTiebreakInput(&t)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("failed to build tiebreak input: %v", err))
	}
	if cmd.TournamentType != "" {
		in.TournamentType = cmd.TournamentType
	}

	tbReq := &tiebreak.Request{
		Check:          cmd.Check,
		TournamentNo:   cmd.TournamentNo,
		NumberOfRounds: cmd.NumberOfRounds,
		TieBreak:       cmd.TieBreak,
		TournamentType: cmd.TournamentType,
		IsRR:           cmd.IsRR,
		Unrated:        cmd.Unrated,
	}
	out := tiebreak.Run(in, tbReq)

	if err := recordTiebreakEvent(d.DB, &t, cmd, out); err != nil {
		log.Printf("service: failed to record TIEBREAK_COMPUTED event for tournamentno=%d: %v", cmd.TournamentNo, err)
	}
	_ = idByCid // translation back to string player ids is the caller's concern, not this envelope's

	return Envelope{
		FileType:       "tiebreak response",
		Version:        "1.0",
		Origin:         originTag,
		Published:      time.Now().Format("2006-01-02 15:04:05"),
		Status:         &Status{Code: 0, Error: []string{}},
		TiebreakResult: toWireOutput(out),
	}
}

func recordTiebreakEvent(db *database.DB, t *model.Tournament, cmd *Command, out *tiebreak.Output) error {
	events, _ := t.GetEvents()
	detail := struct {
		Criteria []string `json:"criteria"`
		Check    bool     `json:"check"`
	}{Criteria: cmd.TieBreak, Check: out.Check}
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	events = append(events, model.Event{
		EventID:     uuid.New(),
		Type:        "TIEBREAK_COMPUTED",
		Timestamp:   time.Now(),
		RoundNumber: t.CurrentRound,
		Details:     detailJSON,
	})
	if err := t.SetEvents(events); err != nil {
		return err
	}

	outputJSON, err := json.Marshal(toWireOutput(out))
	if err != nil {
		return err
	}
	inputJSON, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	t.TiebreakOutputData = outputJSON
	t.TiebreakInputData = inputJSON
	return db.Save(t).Error
}

func errorEnvelope(msg string) Envelope {
	return Envelope{
		FileType:  "tiebreak response",
		Version:   "1.0",
		Origin:    originTag,
		Published: time.Now().Format("2006-01-02 15:04:05"),
		Status:    &Status{Code: 1, Error: []string{msg}},
	}
}
