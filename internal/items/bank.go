package items

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
)

// Bank is a JSON file backed item collection. Items accumulate over time:
// generated items are added so future sessions reuse them instead of
// calling the LLM again. Safe for concurrent use.
type Bank struct {
	mu    sync.Mutex
	path  string
	items []Item
}

// LoadBank reads the bank file. A missing file yields an empty bank;
// the file is created on the first Add.
func LoadBank(path string) (*Bank, error) {
	b := &Bank{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read item bank %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &b.items); err != nil {
		return nil, fmt.Errorf("parse item bank %s: %w", path, err)
	}
	return b, nil
}

// Len returns the number of items in the bank.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Pick returns the first unused item for the concept, ordering candidates
// by item ID so the selection is reproducible. The second return value is
// false when every matching item has been used already.
func (b *Bank) Pick(conceptID string, used map[string]bool) (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var cand []Item
	for _, it := range b.items {
		if it.ConceptID == conceptID && !used[it.ID] {
			cand = append(cand, it)
		}
	}
	if len(cand) == 0 {
		return Item{}, false
	}
	sort.Slice(cand, func(i, j int) bool { return cand[i].ID < cand[j].ID })
	return cand[0], true
}

// Add appends the item and rewrites the bank file.
func (b *Bank) Add(it Item) error {
	if err := it.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, it)

	data, err := json.MarshalIndent(b.items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode item bank: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write item bank %s: %w", b.path, err)
	}
	return nil
}
