// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/okian/arrows/internal/app"
	"github.com/okian/arrows/internal/domain/catalog"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the app service.
type Dependencies interface {
	Login(ctx context.Context, id, handle, given, family string) (app.PlayerView, error)
	SubmitScore(ctx context.Context, id, nameOverride string, level int, coinsEarned int64) (app.ScoreResult, error)
	Leaderboard(ctx context.Context, limit int) (app.LeaderboardView, error)
	Stats(ctx context.Context) (app.Stats, error)
	Catalog(ctx context.Context) (catalog.Catalog, error)
	SelectCosmetic(ctx context.Context, id, cosmeticID string) (app.PlayerView, error)
	PurchaseCosmetic(ctx context.Context, id, cosmeticID string) (app.PlayerView, error)
}

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler      *HealthHandler
	userHandler        *UserHandler
	scoreHandler       *ScoreHandler
	leaderboardHandler *LeaderboardHandler
	statsHandler       *StatsHandler
	skinsHandler       *SkinsHandler
	wsHandler          http.HandlerFunc
}

// NewServer creates a new API server with all handlers. wsHandler may
// be nil when live updates are disabled.
func NewServer(deps Dependencies, maxLimit int, wsHandler http.HandlerFunc) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		userHandler:        NewUserHandler(deps),
		scoreHandler:       NewScoreHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		statsHandler:       NewStatsHandler(deps),
		skinsHandler:       NewSkinsHandler(deps),
		wsHandler:          wsHandler,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Post("/api/user", MetricsMiddleware(s.userHandler.HandleLogin, "user"))
	r.Post("/api/score", MetricsMiddleware(s.scoreHandler.HandleSubmitScore, "score"))
	r.Get("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	r.Get("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/api/skins", MetricsMiddleware(s.skinsHandler.HandleGetCatalog, "skins"))
	r.Post("/api/skins/select", MetricsMiddleware(s.skinsHandler.HandleSelect, "skins_select"))
	r.Post("/api/skins/buy", MetricsMiddleware(s.skinsHandler.HandleBuy, "skins_buy"))
	if s.wsHandler != nil {
		r.Get("/ws", s.wsHandler)
	}
	return r
}

// playerID accepts both string and numeric JSON values, since the
// Telegram web app sends the numeric user id as-is.
type playerID string

func (p *playerID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = playerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = playerID(n.String())
	return nil
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Success: false, Code: code, Message: msg})
}

// writeDomainError translates reconciliation errors into HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
