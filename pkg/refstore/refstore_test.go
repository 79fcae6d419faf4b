package refstore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty list, got %d entries", l.Len())
	}
}

func TestOpenLoadsNamesInOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "customers.txt", "ალფა\nბეტა\n\nალფა\nგამა\n")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got := l.All()
	want := []string{"ალფა", "ბეტა", "გამა"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestContainsIsCaseSensitive(t *testing.T) {
	path := writeFile(t, t.TempDir(), "products.txt", "Puri\n")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if !l.Contains("Puri") {
		t.Error("expected exact match")
	}
	if l.Contains("puri") {
		t.Error("membership must be case-sensitive")
	}
}

func TestAppendIsDurableAndIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.txt")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	added, err := l.Append("ბეტა შპს")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if !added {
		t.Error("first append should report added")
	}

	added, err = l.Append("ბეტა შპს")
	if err != nil {
		t.Fatalf("second Append failed: %v", err)
	}
	if added {
		t.Error("re-appending a known name should be a no-op")
	}
	if !l.Contains("ბეტა შპს") {
		t.Error("appended name should be visible in memory")
	}

	// A fresh load must see exactly one copy.
	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Errorf("expected 1 durable entry, got %d", reloaded.Len())
	}
}

func TestAppendSanitizesControlCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.txt")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := l.Append("Beta\nLLC"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if !l.Contains("Beta LLC") {
		t.Errorf("interior newline should be sanitized, list = %v", l.All())
	}

	// The one-name-per-line file must survive a reload intact.
	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 entry after reload, got %v", reloaded.All())
	}
	if !reloaded.Contains("Beta LLC") {
		t.Errorf("reloaded list = %v", reloaded.All())
	}
}

func TestAppendSkipsEmpty(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "x.txt"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	added, err := l.Append("   ")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if added {
		t.Error("blank name should not be appended")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.txt", "a\nb\n")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	snapshot := l.All()
	snapshot[0] = "mutated"

	if l.All()[0] != "a" {
		t.Error("All must return a copy, not the backing slice")
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.txt", "ალფა\n")

	s, err := OpenStore(filepath.Join(dir, "customers.txt"), filepath.Join(dir, "products.txt"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	if s.Customers.Len() != 1 {
		t.Errorf("customers len = %d", s.Customers.Len())
	}
	if s.Products.Len() != 0 {
		t.Errorf("missing products file should load empty, got %d", s.Products.Len())
	}
}
