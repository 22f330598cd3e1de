// Package board implements the bounded, rank-ordered leaderboard that
// is derived from player records during reconciliation.
package board

import "sort"

// DefaultSize is the leaderboard bound used when none is configured.
const DefaultSize = 50

// Entry is one leaderboard row. Score mirrors the owning player's best
// level but is a separate ratchet field: it is only ever raised, never
// copied downward, even if some future code path were to recompute the
// player's level lower. Rank is assigned at read time and not persisted.
type Entry struct {
	Rank        int    `json:"rank,omitempty"`
	PlayerID    string `json:"user_id"`
	DisplayName string `json:"username"`
	Score       int    `json:"score"`
	Coins       int64  `json:"coins"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Upsert merges a reconciliation result into the board. An existing
// entry keeps the higher of its score and the candidate; display name,
// coins and the update timestamp are overwritten unconditionally.
// Unknown players are appended.
func Upsert(entries []Entry, playerID, displayName string, candidateScore int, coins int64, now int64) []Entry {
	for i := range entries {
		if entries[i].PlayerID != playerID {
			continue
		}
		if candidateScore > entries[i].Score {
			entries[i].Score = candidateScore
		}
		entries[i].DisplayName = displayName
		entries[i].Coins = coins
		entries[i].UpdatedAt = now
		return entries
	}
	return append(entries, Entry{
		PlayerID:    playerID,
		DisplayName: displayName,
		Score:       candidateScore,
		Coins:       coins,
		UpdatedAt:   now,
	})
}

// Sort orders entries by score descending. The sort is stable so that
// equal scores keep their relative insertion/update order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// Truncate sorts the board and caps it at max entries. Evicted rows are
// gone for good; the underlying player records survive and may re-enter
// on a later reconciliation.
func Truncate(entries []Entry, max int) []Entry {
	Sort(entries)
	if max > 0 && len(entries) > max {
		entries = entries[:max]
	}
	return entries
}

// Rank returns a copy of entries with 1-based ranks assigned by current
// position.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// TopN sorts a copy of the board and returns the first n ranked rows.
// n <= 0 returns the whole board.
func TopN(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	Sort(sorted)
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return Rank(sorted)
}
