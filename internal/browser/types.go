package browser

import (
	"net/url"
	"time"
)

// TabID identifies a logical browser tab. IDs are allocated monotonically by
// the registry, are unique for the lifetime of the process and are never
// reused.
type TabID uint64

// TabSnapshot is an immutable copy of one tab's state, safe to pass across
// goroutines. URL and LastLoaded are either both set or both unset: they only
// transition together after a successful fetch.
type TabSnapshot struct {
	ID         TabID
	Title      string
	URL        *url.URL
	LastLoaded time.Time // zero until the first successful load
}

// Loaded reports whether the tab has completed at least one navigation.
func (t TabSnapshot) Loaded() bool {
	return t.URL != nil
}

// PageRequest describes a single navigation initiated by the UI. Immutable,
// single-use.
type PageRequest struct {
	Tab TabID
	URL *url.URL
}

// PageResponse is the minimal representation of a fetched document.
//
// It deliberately carries no title: the derived title is committed to the tab
// record as a side effect of the fetch, so callers that need it re-read the
// tab snapshot.
type PageResponse struct {
	URL        *url.URL
	Status     int
	MIMEType   string // Content-Type header, or sniffed from the body when absent
	Body       string
	ReceivedAt time.Time
}
