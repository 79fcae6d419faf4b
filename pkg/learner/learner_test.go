package learner

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kartvela/preseller/pkg/order"
	"github.com/kartvela/preseller/pkg/refstore"
)

func TestStripMarker(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		marked bool
	}{
		{"new Beta LLC", "Beta LLC", true},
		{"NEW ბეტა შპს", "ბეტა შპს", true},
		{"  new   გამა  ", "გამა", true},
		{"Newton", "Newton", false},
		{"new", "new", false},
		{"new ", "new ", false},
		{"ალფა", "ალფა", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, marked := StripMarker(c.in)
		if marked != c.marked {
			t.Errorf("StripMarker(%q) marked = %v, want %v", c.in, marked, c.marked)
			continue
		}
		if marked && got != c.want {
			t.Errorf("StripMarker(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func newTestStore(t *testing.T) *refstore.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := refstore.OpenStore(filepath.Join(dir, "customers.txt"), filepath.Join(dir, "products.txt"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	return s
}

func TestLearnAppendsAndRewrites(t *testing.T) {
	store := newTestStore(t)
	l := NewService(store, zerolog.Nop())

	entries := l.Learn([]order.Entry{
		{Customer: "new Beta LLC", Product: "new შაურმა"},
	})

	if entries[0].Customer != "Beta LLC" {
		t.Errorf("Customer = %q", entries[0].Customer)
	}
	if entries[0].Product != "შაურმა" {
		t.Errorf("Product = %q", entries[0].Product)
	}
	if !entries[0].CustomerMatched || !entries[0].ProductMatched {
		t.Error("learned names should be flagged matched")
	}
	if !store.Customers.Contains("Beta LLC") {
		t.Error("customer not appended to reference list")
	}
	if !store.Products.Contains("შაურმა") {
		t.Error("product not appended to reference list")
	}
}

func TestLearnIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	l := NewService(store, zerolog.Nop())

	l.Learn([]order.Entry{{Customer: "new Beta LLC", Product: "პური"}})
	l.Learn([]order.Entry{{Customer: "new Beta LLC", Product: "პური"}})

	if store.Customers.Len() != 1 {
		t.Errorf("expected exactly one append, got %d entries", store.Customers.Len())
	}
}

func TestLearnCustomer(t *testing.T) {
	store := newTestStore(t)
	l := NewService(store, zerolog.Nop())

	l.LearnCustomer("Beta LLC")
	l.LearnCustomer("Beta LLC")

	if !store.Customers.Contains("Beta LLC") {
		t.Error("customer not appended")
	}
	if store.Customers.Len() != 1 {
		t.Errorf("expected exactly one append, got %d", store.Customers.Len())
	}
}

func TestLearnLeavesUnmarkedEntriesAlone(t *testing.T) {
	store := newTestStore(t)
	l := NewService(store, zerolog.Nop())

	entries := l.Learn([]order.Entry{{Customer: "ალფა", Product: "პური"}})

	if entries[0].Customer != "ალფა" || entries[0].Product != "პური" {
		t.Errorf("unmarked entry mutated: %+v", entries[0])
	}
	if store.Customers.Len() != 0 || store.Products.Len() != 0 {
		t.Error("unmarked entries must not grow the reference lists")
	}
}
