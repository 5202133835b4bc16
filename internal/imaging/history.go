package imaging

import (
	"fmt"
	"image"
	"sync"
	"time"
)

// HistoryEntry is one erosion result kept for later navigation.
type HistoryEntry struct {
	// Title is a human-readable label such as "BINARY - Erosion 3x3_rect (iter 1)".
	Title string `json:"title"`

	// Source is the path of the image the result was computed from.
	Source string `json:"source"`

	// Mode is "binary", "grayscale" or "boundary".
	Mode string `json:"mode"`

	// Kernel describes the structuring element, e.g. "5x5_ellipse".
	Kernel string `json:"kernel"`

	Iterations int `json:"iterations"`

	// SavedPath is where the result was written, empty if it was not saved.
	SavedPath string `json:"saved_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Image is the result buffer. It is not serialized.
	Image *image.Gray `json:"-"`
}

// ResultHistory is an ordered, bounded list of erosion results.
//
// New entries are appended; once the limit is reached the oldest entry is
// dropped. Positions are 0-based from the oldest retained entry.
// ResultHistory is safe for concurrent use.
type ResultHistory struct {
	mu      sync.RWMutex
	limit   int
	entries []HistoryEntry
}

// NewResultHistory creates a history holding at most limit entries.
// A limit below 1 means unbounded.
func NewResultHistory(limit int) *ResultHistory {
	return &ResultHistory{limit: limit}
}

// Add appends an entry and returns its position.
func (h *ResultHistory) Add(e HistoryEntry) int {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, e)
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append(h.entries[:0:0], h.entries[drop:]...)
	}
	return len(h.entries) - 1
}

// Get returns the entry at position i.
func (h *ResultHistory) Get(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, fmt.Errorf("history index %d out of range (have %d results)", i, len(h.entries))
	}
	return h.entries[i], nil
}

// List returns a copy of all entries, oldest first.
func (h *ResultHistory) List() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of retained entries.
func (h *ResultHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Clear drops every entry.
func (h *ResultHistory) Clear() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
}
