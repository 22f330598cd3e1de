// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/arrows/internal/app"
)

// Historical defaults applied when the frontend omits a field.
const (
	defaultLevel       = 1
	defaultCoinsEarned = 20
)

// ScoreDependencies defines the interface for score submissions.
type ScoreDependencies interface {
	SubmitScore(ctx context.Context, id, nameOverride string, level int, coinsEarned int64) (app.ScoreResult, error)
}

// ScoreHandler handles score submission requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// scoreRequest mirrors the payload sent by the game frontend. Level and
// coins_earned are pointers so an omitted field can fall back to the
// historical defaults instead of zero.
type scoreRequest struct {
	UserID      playerID `json:"user_id"`
	Username    string   `json:"username"`
	Level       *int     `json:"level"`
	CoinsEarned *int64   `json:"coins_earned"`
}

type scoreResponse struct {
	Success     bool   `json:"success"`
	Coins       int64  `json:"coins"`
	Level       int    `json:"level"`
	DisplayName string `json:"username"`
}

// HandleSubmitScore handles POST /api/score requests.
func (h *ScoreHandler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_score"
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	level := defaultLevel
	if req.Level != nil {
		level = *req.Level
	}
	coins := int64(defaultCoinsEarned)
	if req.CoinsEarned != nil {
		coins = *req.CoinsEarned
	}
	result, err := h.deps.SubmitScore(r.Context(), string(req.UserID), req.Username, level, coins)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Success:     true,
		Coins:       result.Coins,
		Level:       result.Level,
		DisplayName: result.DisplayName,
	})
}
