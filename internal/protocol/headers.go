package protocol

import (
	"strings"
)

// Headers is an insertion-ordered set of response headers with
// case-insensitive name lookup. Adding a name that is already present
// replaces its value in place.
type Headers struct {
	entries []headerEntry
}

type headerEntry struct {
	name  string
	value string
}

// Add records a header, overwriting a same-named (case-insensitive) entry.
func (h *Headers) Add(name, value string) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].name, name) {
			h.entries[i].value = value
			return
		}
	}
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

// Get returns the value for a name, matched case-insensitively.
func (h *Headers) Get(name string) (string, bool) {
	for _, e := range h.entries {
		if strings.EqualFold(e.name, name) {
			return e.value, true
		}
	}
	return "", false
}

// Size returns the number of distinct headers.
func (h *Headers) Size() int {
	return len(h.entries)
}

// String renders the headers one per line in insertion order.
func (h *Headers) String() string {
	var sb strings.Builder
	for _, e := range h.entries {
		sb.WriteString(e.name)
		sb.WriteString(": ")
		sb.WriteString(e.value)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Equal reports whether two header sets hold the same entries in the same
// order.
func (h Headers) Equal(other Headers) bool {
	if len(h.entries) != len(other.entries) {
		return false
	}
	for i := range h.entries {
		if h.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}
