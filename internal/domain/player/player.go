// Package player owns per-player records and the rules that mutate them.
package player

import (
	"strings"

	"github.com/okian/arrows/internal/domain/catalog"
)

// DefaultCosmetic is unlocked for every player from the moment the
// record is created.
const DefaultCosmetic = "default"

// fallbackDisplayName is stored when a score submission creates a
// player that never logged in and carries no name of its own.
const fallbackDisplayName = "Player"

// Record is the canonical per-player state. The JSON field names match
// the on-disk document format.
type Record struct {
	DisplayName      string   `json:"username"`
	Coins            int64    `json:"coins"`
	BestLevel        int      `json:"max_level"`
	Cosmetics        []string `json:"skins"`
	SelectedCosmetic string   `json:"selected_skin"`
	CreatedAt        int64    `json:"created_at"`
	LastActiveAt     int64    `json:"last_active"`
}

// HasCosmetic reports whether the player has unlocked the given cosmetic.
func (r *Record) HasCosmetic(id string) bool {
	for _, c := range r.Cosmetics {
		if c == id {
			return true
		}
	}
	return false
}

// DisplayName derives the name shown on the leaderboard. Preference
// order: "@handle", then "given family", then a fallback generated from
// the trailing digits of the player id. It always returns a non-empty
// string.
func DisplayName(handle, given, family, playerID string) string {
	if h := strings.TrimSpace(handle); h != "" {
		return "@" + h
	}
	if full := strings.TrimSpace(given + " " + family); full != "" {
		return full
	}
	suffix := playerID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "Player" + suffix
}

// Store applies player mutations to the document's player map. It is
// constructed per reconciliation around the loaded document and holds
// no state of its own beyond policy knobs.
type Store struct {
	players       map[string]*Record
	startingCoins int64
	touchOnLogin  bool
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithStartingCoins sets the coin grant for newly created players.
func WithStartingCoins(coins int64) Option {
	return func(s *Store) {
		if coins >= 0 {
			s.startingCoins = coins
		}
	}
}

// WithTouchOnLogin controls whether a plain login refreshes
// LastActiveAt. Historically only score submissions did.
func WithTouchOnLogin(touch bool) Option {
	return func(s *Store) {
		s.touchOnLogin = touch
	}
}

// NewStore wraps the given player map. The map is mutated in place.
func NewStore(players map[string]*Record, opts ...Option) *Store {
	s := &Store{
		players:       players,
		startingCoins: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the record for id, or nil if the player is unknown.
func (s *Store) Get(id string) *Record {
	return s.players[id]
}

// Len returns the number of known players.
func (s *Store) Len() int {
	return len(s.players)
}

// UpsertOnLogin creates the record on first login, seeded with the
// starting coin grant and level 1. On subsequent logins it only
// refreshes the display name when it changed. The returned bool is true
// when a new record was created.
func (s *Store) UpsertOnLogin(id, displayName string, now int64) (*Record, bool) {
	if rec, ok := s.players[id]; ok {
		if displayName != "" && rec.DisplayName != displayName {
			rec.DisplayName = displayName
		}
		if s.touchOnLogin {
			rec.LastActiveAt = now
		}
		return rec, false
	}
	rec := &Record{
		DisplayName:      displayName,
		Coins:            s.startingCoins,
		BestLevel:        1,
		Cosmetics:        []string{DefaultCosmetic},
		SelectedCosmetic: DefaultCosmetic,
		CreatedAt:        now,
		LastActiveAt:     now,
	}
	s.players[id] = rec
	return rec, true
}

// ApplyScore accrues a score submission. Coins are additive, BestLevel
// is a ratchet, and LastActiveAt is always refreshed. Unknown players
// are created on the fly, seeded with the submitted values; a missing
// name falls back to "Player" so the record never carries an empty one.
func (s *Store) ApplyScore(id string, level int, coinsDelta int64, nameOverride string, now int64) *Record {
	if level < 1 {
		level = 1
	}
	rec, ok := s.players[id]
	if !ok {
		name := nameOverride
		if name == "" {
			name = fallbackDisplayName
		}
		rec = &Record{
			DisplayName:      name,
			Coins:            coinsDelta,
			BestLevel:        level,
			Cosmetics:        []string{DefaultCosmetic},
			SelectedCosmetic: DefaultCosmetic,
			CreatedAt:        now,
			LastActiveAt:     now,
		}
		s.players[id] = rec
		return rec
	}
	rec.Coins += coinsDelta
	if level > rec.BestLevel {
		rec.BestLevel = level
	}
	if nameOverride != "" && nameOverride != rec.DisplayName {
		rec.DisplayName = nameOverride
	}
	rec.LastActiveAt = now
	return rec
}

// SelectCosmetic switches the active cosmetic. Only cosmetics the
// player has already unlocked may be selected.
func (s *Store) SelectCosmetic(id, cosmeticID string) (*Record, error) {
	rec, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !rec.HasCosmetic(cosmeticID) {
		return nil, ErrCosmeticLocked
	}
	rec.SelectedCosmetic = cosmeticID
	return rec, nil
}

// PurchaseCosmetic debits the item price and unlocks it. Buying an
// already-owned cosmetic is a no-op success, so retried purchases do
// not double-charge.
func (s *Store) PurchaseCosmetic(id string, item catalog.Item) (*Record, error) {
	rec, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.HasCosmetic(item.ID) {
		return rec, nil
	}
	if rec.Coins < item.Price {
		return nil, ErrInsufficientCoins
	}
	rec.Coins -= item.Price
	rec.Cosmetics = append(rec.Cosmetics, item.ID)
	return rec, nil
}
