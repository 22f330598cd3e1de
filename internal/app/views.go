package app

import (
	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/internal/domain/player"
)

// PlayerView is the public shape of a player record returned to
// clients. Field names match the historical API payloads.
type PlayerView struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"username"`
	Coins            int64    `json:"coins"`
	Level            int      `json:"level"`
	Cosmetics        []string `json:"skins"`
	SelectedCosmetic string   `json:"selected_skin"`
	CreatedAt        int64    `json:"created_at"`
}

// ScoreResult is returned from a score submission.
type ScoreResult struct {
	Coins       int64  `json:"coins"`
	Level       int    `json:"level"`
	DisplayName string `json:"username"`
}

// LeaderboardView is the ranked board plus document-level counters.
type LeaderboardView struct {
	Entries      []board.Entry `json:"leaderboard"`
	TotalPlayers int           `json:"total_players"`
	UpdatedAt    int64         `json:"updated_at"`
}

// Stats is the server statistics block.
type Stats struct {
	TotalPlayers int   `json:"total_players"`
	GamesStarted int   `json:"total_games"`
	TotalCoins   int64 `json:"total_coins"`
	ActiveToday  int   `json:"active_today"`
}

func newPlayerView(id string, rec *player.Record) PlayerView {
	cosmetics := make([]string, len(rec.Cosmetics))
	copy(cosmetics, rec.Cosmetics)
	return PlayerView{
		ID:               id,
		DisplayName:      rec.DisplayName,
		Coins:            rec.Coins,
		Level:            rec.BestLevel,
		Cosmetics:        cosmetics,
		SelectedCosmetic: rec.SelectedCosmetic,
		CreatedAt:        rec.CreatedAt,
	}
}
