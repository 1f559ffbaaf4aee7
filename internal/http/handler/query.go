package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"prtrack/internal/pr"
)

type QueryHandler struct {
	Svc *pr.Service
}

type availabilityDTO struct {
	Available bool       `json:"available"`
	Record    *pr.Record `json:"record,omitempty"`
}

func (h *QueryHandler) Availability(w http.ResponseWriter, r *http.Request) {
	candidate := strings.TrimSpace(r.URL.Query().Get("pr"))
	if candidate == "" {
		http.Error(w, "pr required", http.StatusBadRequest)
		return
	}

	available, matched, err := h.Svc.CheckAvailability(r.Context(), candidate)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(availabilityDTO{Available: available, Record: matched})
}

func (h *QueryHandler) NextSequence(w http.ResponseWriter, r *http.Request) {
	year := strings.TrimSpace(r.URL.Query().Get("year"))
	if year == "" {
		year = time.Now().Format("2006")
	}

	seq, err := h.Svc.NextSequence(r.Context(), year)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"year":     year,
		"sequence": seq,
		"prNumber": pr.FormatPRNumber(year, seq),
	})
}

func (h *QueryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	records, err := h.Svc.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pr.ComputeStats(records, time.Now()))
}
