package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/arrows/internal/adapters/http/api"
	"github.com/okian/arrows/internal/app"
	"github.com/okian/arrows/internal/domain/catalog"
	"github.com/okian/arrows/internal/domain/player"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies records calls and returns canned results.
type mockDependencies struct {
	loginID     string
	scoreID     string
	scoreLevel  int
	scoreCoins  int64
	selectErr   error
	purchaseErr error
	view        app.PlayerView
	score       app.ScoreResult
	leaderboard app.LeaderboardView
	stats       app.Stats
}

func (m *mockDependencies) Login(ctx context.Context, id, handle, given, family string) (app.PlayerView, error) {
	if strings.TrimSpace(id) == "" {
		return app.PlayerView{}, app.ErrMissingPlayerID
	}
	m.loginID = id
	return m.view, nil
}

func (m *mockDependencies) SubmitScore(ctx context.Context, id, nameOverride string, level int, coinsEarned int64) (app.ScoreResult, error) {
	if strings.TrimSpace(id) == "" {
		return app.ScoreResult{}, app.ErrMissingPlayerID
	}
	if coinsEarned < 0 {
		return app.ScoreResult{}, app.ErrNegativeCoins
	}
	m.scoreID = id
	m.scoreLevel = level
	m.scoreCoins = coinsEarned
	return m.score, nil
}

func (m *mockDependencies) Leaderboard(ctx context.Context, limit int) (app.LeaderboardView, error) {
	return m.leaderboard, nil
}

func (m *mockDependencies) Stats(ctx context.Context) (app.Stats, error) {
	return m.stats, nil
}

func (m *mockDependencies) Catalog(ctx context.Context) (catalog.Catalog, error) {
	return catalog.Default(), nil
}

func (m *mockDependencies) SelectCosmetic(ctx context.Context, id, cosmeticID string) (app.PlayerView, error) {
	if m.selectErr != nil {
		return app.PlayerView{}, m.selectErr
	}
	return m.view, nil
}

func (m *mockDependencies) PurchaseCosmetic(ctx context.Context, id, cosmeticID string) (app.PlayerView, error) {
	if m.purchaseErr != nil {
		return app.PlayerView{}, m.purchaseErr
	}
	return m.view, nil
}

func newTestRouter(deps api.Dependencies) http.Handler {
	return api.NewServer(deps, 100, nil).Router(context.Background())
}

func TestUserHandler(t *testing.T) {
	Convey("Given the API router", t, func() {
		deps := &mockDependencies{
			view: app.PlayerView{
				ID:               "777",
				DisplayName:      "@nova",
				Coins:            100,
				Level:            1,
				Cosmetics:        []string{"default"},
				SelectedCosmetic: "default",
			},
		}
		router := newTestRouter(deps)

		Convey("When logging in with a string user id", func() {
			body := `{"user_id":"777","username":"nova"}`
			req := httptest.NewRequest("POST", "/api/user", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the player view is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Success bool           `json:"success"`
					User    app.PlayerView `json:"user"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.User.DisplayName, ShouldEqual, "@nova")
				So(resp.User.Coins, ShouldEqual, 100)
			})
		})

		Convey("When the frontend sends a numeric user id", func() {
			body := `{"user_id":123456,"username":"nova"}`
			req := httptest.NewRequest("POST", "/api/user", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it is accepted and normalized to a string", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.loginID, ShouldEqual, "123456")
			})
		})

		Convey("When the user id is missing", func() {
			body := `{"username":"nova"}`
			req := httptest.NewRequest("POST", "/api/user", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest("POST", "/api/user", strings.NewReader("{nope"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestScoreHandler(t *testing.T) {
	Convey("Given the API router", t, func() {
		deps := &mockDependencies{
			score: app.ScoreResult{Coins: 130, Level: 4, DisplayName: "@nova"},
		}
		router := newTestRouter(deps)

		Convey("When submitting a score", func() {
			body := `{"user_id":"777","level":4,"coins_earned":30}`
			req := httptest.NewRequest("POST", "/api/score", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the updated totals are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Success bool  `json:"success"`
					Coins   int64 `json:"coins"`
					Level   int   `json:"level"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.Coins, ShouldEqual, 130)
				So(resp.Level, ShouldEqual, 4)
				So(deps.scoreLevel, ShouldEqual, 4)
				So(deps.scoreCoins, ShouldEqual, 30)
			})
		})

		Convey("When level and coins are omitted", func() {
			body := `{"user_id":"777"}`
			req := httptest.NewRequest("POST", "/api/score", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the historical defaults apply", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.scoreLevel, ShouldEqual, 1)
				So(deps.scoreCoins, ShouldEqual, 20)
			})
		})

		Convey("When the coin delta is negative", func() {
			body := `{"user_id":"777","level":1,"coins_earned":-5}`
			req := httptest.NewRequest("POST", "/api/score", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestLeaderboardHandler(t *testing.T) {
	Convey("Given the API router", t, func() {
		deps := &mockDependencies{
			leaderboard: app.LeaderboardView{TotalPlayers: 3},
		}
		router := newTestRouter(deps)

		Convey("When fetching without a limit", func() {
			req := httptest.NewRequest("GET", "/api/leaderboard", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the full board view is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Success      bool `json:"success"`
					TotalPlayers int  `json:"total_players"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.TotalPlayers, ShouldEqual, 3)
			})
		})

		Convey("When the limit is malformed", func() {
			req := httptest.NewRequest("GET", "/api/leaderboard?limit=abc", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the cap", func() {
			req := httptest.NewRequest("GET", "/api/leaderboard?limit=1000", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsHandler(t *testing.T) {
	Convey("Given the API router", t, func() {
		deps := &mockDependencies{
			stats: app.Stats{TotalPlayers: 5, GamesStarted: 2, TotalCoins: 700, ActiveToday: 3},
		}
		router := newTestRouter(deps)

		Convey("When fetching stats", func() {
			req := httptest.NewRequest("GET", "/api/stats", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the counters are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Success bool      `json:"success"`
					Stats   app.Stats `json:"stats"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.Stats.TotalPlayers, ShouldEqual, 5)
				So(resp.Stats.TotalCoins, ShouldEqual, 700)
			})
		})
	})
}

func TestSkinsHandler(t *testing.T) {
	Convey("Given the API router", t, func() {
		deps := &mockDependencies{
			view: app.PlayerView{ID: "777", Cosmetics: []string{"default", "fire"}, SelectedCosmetic: "fire"},
		}
		router := newTestRouter(deps)

		Convey("When fetching the catalog", func() {
			req := httptest.NewRequest("GET", "/api/skins", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then all items come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Success bool           `json:"success"`
					Skins   []catalog.Item `json:"arrow_skins"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(len(resp.Skins), ShouldBeGreaterThanOrEqualTo, 6)
			})
		})

		Convey("When selecting an owned skin", func() {
			body := `{"user_id":"777","skin_id":"fire"}`
			req := httptest.NewRequest("POST", "/api/skins/select", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When selecting a locked skin", func() {
			deps.selectErr = player.ErrCosmeticLocked
			body := `{"user_id":"777","skin_id":"gold"}`
			req := httptest.NewRequest("POST", "/api/skins/select", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusConflict)
		})

		Convey("When buying without enough coins", func() {
			deps.purchaseErr = player.ErrInsufficientCoins
			body := `{"user_id":"777","skin_id":"gold"}`
			req := httptest.NewRequest("POST", "/api/skins/buy", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusConflict)
		})

		Convey("When buying an unknown skin", func() {
			deps.purchaseErr = app.ErrUnknownCosmetic
			body := `{"user_id":"777","skin_id":"plasma"}`
			req := httptest.NewRequest("POST", "/api/skins/buy", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the skin id is missing", func() {
			body := `{"user_id":"777"}`
			req := httptest.NewRequest("POST", "/api/skins/select", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the API router", t, func() {
		router := newTestRouter(&mockDependencies{})

		Convey("When probing /healthz", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then metrics are served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
