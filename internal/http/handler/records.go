package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"prtrack/internal/pr"

	"github.com/go-chi/chi/v5"
)

type RecordHandler struct {
	Svc *pr.Service
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Svc.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	records = filterFromQuery(r).Apply(records)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec pr.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if !validateRecord(w, &rec) {
		return
	}

	// id and timestamp belong to the caller; fill them in for clients
	// that leave them blank.
	if rec.ID == "" {
		rec.ID = pr.NewID()
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}

	if err := h.Svc.Save(r.Context(), rec); err != nil {
		if errors.Is(err, pr.ErrDuplicatePR) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rec)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rec pr.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	rec.ID = chi.URLParam(r, "id")
	if !validateRecord(w, &rec) {
		return
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}

	if err := h.Svc.Update(r.Context(), rec); err != nil {
		if errors.Is(err, pr.ErrDuplicatePR) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecordHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.Svc.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	records = filterFromQuery(r).Apply(records)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=pr_export_%s.csv", time.Now().Format("2006-01-02")))
	_ = pr.WriteCSV(w, records)
}

func filterFromQuery(r *http.Request) pr.Filter {
	return pr.Filter{
		Search:      strings.TrimSpace(r.URL.Query().Get("q")),
		RequestedBy: strings.TrimSpace(r.URL.Query().Get("requested_by")),
		Month:       strings.TrimSpace(r.URL.Query().Get("month")),
	}
}

// validateRecord enforces the required fields. The PR number stays free
// form; only presence is checked here, uniqueness is the service's job.
func validateRecord(w http.ResponseWriter, rec *pr.Record) bool {
	rec.PRNumber = strings.TrimSpace(rec.PRNumber)
	rec.Vendor = strings.TrimSpace(rec.Vendor)
	rec.Description = strings.TrimSpace(rec.Description)

	switch {
	case rec.PRNumber == "":
		http.Error(w, "prNumber required", http.StatusBadRequest)
	case strings.TrimSpace(rec.Date) == "":
		http.Error(w, "date required", http.StatusBadRequest)
	case strings.TrimSpace(rec.RequestedBy) == "":
		http.Error(w, "requestedBy required", http.StatusBadRequest)
	default:
		return true
	}
	return false
}
