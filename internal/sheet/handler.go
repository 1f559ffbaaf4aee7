// Package sheet implements the server side of the four-action record
// protocol: GET via ?action=GET_ALL, POST with {action, record|id} for
// ADD, UPDATE and DELETE. Errors travel as {"status":"error","message"}.
package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"prtrack/internal/pr"
)

// Backend is the dataset behind the protocol handler. Add and Update must
// hold the PR-number uniqueness invariant themselves and report collisions
// as pr.ErrDuplicatePR.
type Backend interface {
	All(ctx context.Context) ([]pr.Record, error)
	Add(ctx context.Context, rec pr.Record) error
	Update(ctx context.Context, rec pr.Record) error
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Backend Backend
}

type postReq struct {
	Action string     `json:"action"`
	Record *pr.Record `json:"record"`
	ID     string     `json:"id"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAll(w, r)
	case http.MethodPost:
		h.mutate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) getAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") != "GET_ALL" {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}
	records, err := h.Backend.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if records == nil {
		records = []pr.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}

// mutate does not require a JSON content type: the browser client posts
// text/plain to dodge CORS preflight.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request) {
	var req postReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	switch req.Action {
	case "ADD":
		if req.Record == nil {
			writeError(w, http.StatusBadRequest, "record required")
			return
		}
		h.reply(w, h.Backend.Add(r.Context(), *req.Record))
	case "UPDATE":
		if req.Record == nil {
			writeError(w, http.StatusBadRequest, "record required")
			return
		}
		h.reply(w, h.Backend.Update(r.Context(), *req.Record))
	case "DELETE":
		if req.ID == "" {
			writeError(w, http.StatusBadRequest, "id required")
			return
		}
		h.reply(w, h.Backend.Delete(r.Context(), req.ID))
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

func (h *Handler) reply(w http.ResponseWriter, err error) {
	if errors.Is(err, pr.ErrDuplicatePR) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": msg,
	})
}
