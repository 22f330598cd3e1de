package catalog_test

import (
	"testing"

	"github.com/okian/arrows/internal/domain/catalog"
)

func TestDefault(t *testing.T) {
	cat := catalog.Default()
	if cat.Empty() {
		t.Fatal("default catalog must not be empty")
	}
	free, ok := cat.Find("default")
	if !ok {
		t.Fatal("default skin missing from catalog")
	}
	if free.Price != 0 {
		t.Fatalf("default skin must be free, got price %d", free.Price)
	}
}

func TestFind(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		id    string
		found bool
		price int64
	}{
		{id: "fire", found: true, price: 100},
		{id: "rainbow", found: true, price: 500},
		{id: "plasma", found: false},
	}
	for _, tc := range tests {
		item, ok := cat.Find(tc.id)
		if ok != tc.found {
			t.Fatalf("Find(%q) found=%v, want %v", tc.id, ok, tc.found)
		}
		if ok && item.Price != tc.price {
			t.Fatalf("Find(%q) price=%d, want %d", tc.id, item.Price, tc.price)
		}
	}
}
