package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"prtrack/internal/pr"
)

// Remote talks to a web endpoint implementing the four-action sheet
// protocol (GET_ALL, ADD, UPDATE, DELETE). Reads fall back to the local
// mirror when the endpoint is unreachable; deletes are applied locally as
// well on failure so a record cannot reappear from the fallback. Write
// failures are always surfaced.
type Remote struct {
	URL      string
	Client   *http.Client
	Fallback *Local
}

func NewRemote(url string, fallback *Local) *Remote {
	return &Remote{
		URL:      url,
		Client:   &http.Client{Timeout: 15 * time.Second},
		Fallback: fallback,
	}
}

// envelope is the error shape the endpoint returns alongside non-2xx
// statuses: {"status":"error","message":...}.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListAll returns the remote dataset, refreshing the local mirror on
// success. When the endpoint is unreachable the mirror's contents are
// served instead, so reads never hard-fail while fallback data exists.
func (r *Remote) ListAll(ctx context.Context) ([]pr.Record, error) {
	records, err := r.Refresh(ctx)
	if err != nil {
		log.Printf("remote store: GET_ALL failed, serving local fallback: %v\n", err)
		return r.Fallback.ListAll(ctx)
	}
	return records, nil
}

// Refresh fetches the remote dataset and snapshots it into the local
// mirror. Unlike ListAll, a fetch failure is returned to the caller.
func (r *Remote) Refresh(ctx context.Context) ([]pr.Record, error) {
	records, err := r.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.Fallback.Snapshot(ctx, records); err != nil {
		log.Printf("remote store: mirror refresh failed: %v\n", err)
	}
	return records, nil
}

func (r *Remote) Insert(ctx context.Context, rec pr.Record) error {
	return r.post(ctx, "ADD", &rec, "")
}

func (r *Remote) Replace(ctx context.Context, rec pr.Record) error {
	return r.post(ctx, "UPDATE", &rec, "")
}

// Remove deletes remotely. On failure the record is dropped from the local
// mirror as well, then the error is surfaced: the delete must not be undone
// by a later fallback read.
func (r *Remote) Remove(ctx context.Context, id string) error {
	if err := r.post(ctx, "DELETE", nil, id); err != nil {
		if lerr := r.Fallback.Remove(ctx, id); lerr != nil {
			log.Printf("remote store: local fallback delete failed: %v\n", lerr)
		}
		return fmt.Errorf("delete failed, removed from local fallback only: %w", err)
	}
	return nil
}

// InsertIfAbsent checks against a fresh read and then ADDs. The wire
// protocol has no atomic insert; an endpoint holding a server-side unique
// index wins any race this leaves open.
func (r *Remote) InsertIfAbsent(ctx context.Context, key string, rec pr.Record) (*pr.Record, error) {
	records, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if pr.NormalizeKey(records[i].PRNumber) == key {
			return &records[i], nil
		}
	}
	return nil, r.Insert(ctx, rec)
}

func (r *Remote) fetchAll(ctx context.Context) ([]pr.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL+"?action=GET_ALL", nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET_ALL: status %d", resp.StatusCode)
	}

	var records []pr.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		// A non-array payload reads as an empty dataset.
		return []pr.Record{}, nil
	}
	if records == nil {
		records = []pr.Record{}
	}
	return records, nil
}

func (r *Remote) post(ctx context.Context, action string, rec *pr.Record, id string) error {
	payload := map[string]any{"action": action}
	if rec != nil {
		payload["record"] = rec
	}
	if id != "" {
		payload["id"] = id
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.Status == "error" {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("%s failed: %s", action, msg)
	}
	return nil
}
