// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/arrows/internal/app"
)

// UserDependencies defines the interface for login operations.
type UserDependencies interface {
	Login(ctx context.Context, id, handle, given, family string) (app.PlayerView, error)
}

// UserHandler handles login / player-creation requests.
type UserHandler struct {
	deps UserDependencies
}

// NewUserHandler creates a new user handler.
func NewUserHandler(deps UserDependencies) *UserHandler {
	return &UserHandler{deps: deps}
}

// loginRequest mirrors the payload sent by the game frontend.
type loginRequest struct {
	UserID    playerID `json:"user_id"`
	Username  string   `json:"username"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	User    app.PlayerView `json:"user"`
}

// HandleLogin handles POST /api/user requests.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.Login(r.Context(), string(req.UserID), req.Username, req.FirstName, req.LastName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: view})
}
