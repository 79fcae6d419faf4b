// Package refstore holds the append-only reference lists of known customer
// and product names. Each list is backed by a flat text file with one
// display name per line, read in full at startup and appended to on
// learning events.
package refstore

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kartvela/preseller/pkg/order"
)

// List is one reference list. Appends are serialized under the write lock;
// reads take a consistent snapshot. Names are unique (case-sensitive) and
// keep insertion order.
type List struct {
	mu    sync.RWMutex
	path  string
	names []string
	index map[string]struct{}
}

// Open loads a list from path. A missing file is not an error: matching
// degrades to "everything is unknown" and the file is created on the
// first append. Any other read error is returned together with an empty,
// usable list so the caller can log and continue.
func Open(path string) (*List, error) {
	l := &List{
		path:  path,
		names: []string{},
		index: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return l, fmt.Errorf("refstore: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if _, dup := l.index[name]; dup {
			continue
		}
		l.names = append(l.names, name)
		l.index[name] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return l, fmt.Errorf("refstore: read %s: %w", path, err)
	}

	return l, nil
}

// All returns a snapshot copy of the list in insertion order.
func (l *List) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len returns the number of names in the list.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.names)
}

// Contains reports exact case-sensitive membership.
func (l *List) Contains(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.index[name]
	return ok
}

// Append durably adds a name to the list. Returns false if the name is
// already present (a no-op) or empty. Control characters are sanitized
// first: the file is one name per line, so an interior newline would
// split the name into two entries on the next load. The file write
// happens before the in-memory insert so a crash never leaves memory
// ahead of disk.
func (l *List) Append(name string) (bool, error) {
	name = order.Sanitize(name)
	if name == "" {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[name]; ok {
		return false, nil
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("refstore: append to %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(name + "\n"); err != nil {
		return false, fmt.Errorf("refstore: write %s: %w", l.path, err)
	}

	l.names = append(l.names, name)
	l.index[name] = struct{}{}
	return true, nil
}

// Store bundles the two reference lists the pipeline matches against.
type Store struct {
	Customers *List
	Products  *List
}

// OpenStore loads both lists. File errors are joined but the store is
// always usable.
func OpenStore(customersPath, productsPath string) (*Store, error) {
	customers, cerr := Open(customersPath)
	products, perr := Open(productsPath)

	s := &Store{Customers: customers, Products: products}
	if cerr != nil {
		return s, cerr
	}
	return s, perr
}
