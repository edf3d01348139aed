package browser

import "sync"

// Registry holds the authoritative tab list. A single RWMutex serializes
// writers; readers get full copies so UI code never aliases registry memory.
//
// Tabs are kept in creation order in a slice and located by linear scan,
// which is fine at the expected scale (dozens of tabs).
type Registry struct {
	mu     sync.RWMutex
	nextID TabID
	tabs   []TabSnapshot
}

// NewRegistry creates an empty tab registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// CreateTab allocates the next TabID and appends a new entry with no URL and
// no last-loaded time. Returns a copy of the new entry. Never fails.
func (r *Registry) CreateTab(title string) TabSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	tab := TabSnapshot{
		ID:    r.nextID,
		Title: title,
	}
	r.nextID++
	r.tabs = append(r.tabs, tab)
	return tab
}

// Snapshot returns a copy of all tabs in creation order. Safe to call
// concurrently with writes.
func (r *Registry) Snapshot() []TabSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TabSnapshot, len(r.tabs))
	copy(out, r.tabs)
	return out
}

// Len returns the current number of tabs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}

// applyFetchResult commits the outcome of a successful fetch to the tab with
// the given id. URL, last-loaded time and title move together under one lock
// acquisition. An empty title keeps the previous one. An unknown id is a
// silent no-op: a tab that disappeared simply drops the update.
func (r *Registry) applyFetchResult(id TabID, page *PageResponse, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tabs {
		if r.tabs[i].ID != id {
			continue
		}
		r.tabs[i].URL = page.URL
		r.tabs[i].LastLoaded = page.ReceivedAt
		if title != "" {
			r.tabs[i].Title = title
		}
		return
	}
}
