// Package catalog holds the static cosmetic shop data. It is reference
// data seeded into new documents and never mutated by reconciliation.
package catalog

// Item is a purchasable arrow skin.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog is the shop section of the document.
type Catalog struct {
	Skins []Item `json:"arrow_skins"`
}

// Default returns the seed catalog written into fresh documents.
func Default() Catalog {
	return Catalog{
		Skins: []Item{
			{ID: "default", Name: "Classic", Price: 0},
			{ID: "fire", Name: "Fire", Price: 100},
			{ID: "ice", Name: "Ice", Price: 150},
			{ID: "neon", Name: "Neon", Price: 200},
			{ID: "gold", Name: "Gold", Price: 300},
			{ID: "rainbow", Name: "Rainbow", Price: 500},
		},
	}
}

// Find looks up an item by id.
func (c Catalog) Find(id string) (Item, bool) {
	for _, item := range c.Skins {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Empty reports whether the catalog carries no items, which happens
// when an old document predates the shop section.
func (c Catalog) Empty() bool {
	return len(c.Skins) == 0
}
