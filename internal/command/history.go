package command

import (
	"slices"
	"sync"
)

// History tracks recently run commands in most-recently-used order.
type History struct {
	mu       sync.Mutex
	items    []string
	maxItems int
}

// NewHistory creates a command history with the given capacity.
func NewHistory(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = 50
	}
	return &History{maxItems: maxItems}
}

// Add records a run, moving an existing entry to the front.
func (h *History) Add(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.items, id); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = slices.Insert(h.items, 0, id)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Recent returns up to limit IDs, most recent first. limit <= 0 means all.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	return slices.Clone(h.items[:limit])
}

// Position returns the position of id (0 = most recent), or -1.
func (h *History) Position(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Index(h.items, id)
}

// Remove deletes id from the history.
func (h *History) Remove(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := slices.Index(h.items, id)
	if i < 0 {
		return false
	}
	h.items = slices.Delete(h.items, i, i+1)
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}
