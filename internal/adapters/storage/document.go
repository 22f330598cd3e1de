// Package storage persists the game document as a single flat JSON
// file, read and written whole on every reconciliation.
package storage

import (
	"context"

	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/internal/domain/catalog"
	"github.com/okian/arrows/internal/domain/player"
)

// Document is the aggregate root: every piece of persisted state in one
// unit. The JSON layout matches the historical data file.
type Document struct {
	Players     map[string]*player.Record `json:"users"`
	Leaderboard []board.Entry             `json:"leaderboard"`
	Catalog     catalog.Catalog           `json:"shop_items"`
}

// NewDocument returns an empty document seeded with the default
// cosmetic catalog.
func NewDocument() *Document {
	return &Document{
		Players:     make(map[string]*player.Record),
		Leaderboard: []board.Entry{},
		Catalog:     catalog.Default(),
	}
}

// normalize repairs zero-value sections after unmarshalling so callers
// never see nil maps or a missing catalog.
func (d *Document) normalize() {
	if d.Players == nil {
		d.Players = make(map[string]*player.Record)
	}
	if d.Leaderboard == nil {
		d.Leaderboard = []board.Entry{}
	}
	if d.Catalog.Empty() {
		d.Catalog = catalog.Default()
	}
}

// Gateway provides whole-document access to the persisted state.
type Gateway interface {
	// Load returns the current document, or a fresh default document
	// when no prior state exists.
	Load(ctx context.Context) (*Document, error)

	// Save overwrites the persisted document.
	Save(ctx context.Context, doc *Document) error
}
