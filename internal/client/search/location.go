package search

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is the shareable form of what the home screen shows: a free-text
// query, a category, or neither for the default grid.
type Location struct {
	Query    string
	Category string
}

func (l Location) IsHome() bool { return l.Query == "" && l.Category == "" }

// String renders the location as a path with one query parameter, escaped
// like encodeURIComponent.
func (l Location) String() string {
	switch {
	case l.Query != "":
		return "/?q=" + escape(l.Query)
	case l.Category != "":
		return "/?category=" + escape(l.Category)
	default:
		return "/"
	}
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ParseLocation reads a location produced by String. A q parameter wins
// over category.
func ParseLocation(s string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", s, err)
	}
	v := u.Query()
	if q := v.Get("q"); q != "" {
		return Location{Query: q}, nil
	}
	return Location{Category: strings.ToLower(v.Get("category"))}, nil
}

// History is a back/forward list of visited locations.
type History struct {
	entries []Location
	cursor  int
}

// Push records loc as the current entry, dropping any forward entries.
// Pushing the current location again is a no-op.
func (h *History) Push(loc Location) {
	if cur, ok := h.Current(); ok && cur == loc {
		return
	}
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, loc)
	h.cursor = len(h.entries) - 1
}

func (h *History) Current() (Location, bool) {
	if len(h.entries) == 0 {
		return Location{}, false
	}
	return h.entries[h.cursor], true
}

func (h *History) Back() (Location, bool) {
	if h.cursor == 0 || len(h.entries) == 0 {
		return Location{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *History) Forward() (Location, bool) {
	if h.cursor >= len(h.entries)-1 {
		return Location{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}
