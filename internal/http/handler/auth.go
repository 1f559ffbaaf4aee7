package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"prtrack/internal/auth"
)

// AuthHandler issues tokens against the single configured credential. The
// user field is the requester name the token will carry; the password is
// shared.
type AuthHandler struct {
	JWT          *auth.JWT
	PasswordHash string
}

type loginReq struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.User = strings.TrimSpace(req.User)
	if req.User == "" || req.Password == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if !auth.ComparePassword(h.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.JWT.Sign(req.User)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token": token,
	})
}
