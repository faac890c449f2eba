package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/sl-departures/departures"
	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

type healthResponse struct {
	Status string `json:"status"`
	Boards int    `json:"boards"`
}

type boardSummary struct {
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	SiteID    int        `json:"site_id"`
	Policy    string     `json:"policy"`
	Available bool       `json:"available"`
	LastError string     `json:"last_error,omitempty"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
}

// boardResponse carries exactly one of Slots, Next or NextActive,
// matching the board's configured policy.
type boardResponse struct {
	boardSummary
	Slots      []departures.SlotState `json:"slots,omitempty"`
	Next       *departures.NextState  `json:"next,omitempty"`
	NextActive *departures.NextState  `json:"next_active,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Boards: len(s.group.Boards()),
	})
}

func summarize(b *departures.Board) boardSummary {
	cfg := b.Config()
	summary := boardSummary{
		Name:      cfg.Name,
		Title:     cfg.Title(),
		SiteID:    cfg.SiteID,
		Policy:    string(cfg.Policy),
		Available: b.Available(),
	}
	if err := b.LastError(); err != nil {
		summary.LastError = err.Error()
	}
	if snap := b.Snapshot(); snap != nil {
		summary.FetchedAt = &snap.FetchedAt
	}
	return summary
}

func (s *Server) handleBoards(w http.ResponseWriter, r *http.Request) {
	boards := s.group.Boards()
	out := make([]boardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, summarize(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	b := s.group.Board(r.PathValue("name"))
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown board"})
		return
	}

	resp := boardResponse{boardSummary: summarize(b)}
	now := time.Now()
	view := b.View()

	var list []sl.Departure
	if snap := b.Snapshot(); snap != nil {
		list = snap.Departures
	}

	switch b.Config().Policy {
	case departures.PolicyNext:
		next := view.Next(list, now)
		resp.Next = &next
	case departures.PolicyNextActive:
		next := view.NextActive(list, now)
		resp.NextActive = &next
	default:
		resp.Slots = view.AllSlots(list, now)
	}

	writeJSON(w, http.StatusOK, resp)
}
