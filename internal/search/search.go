// Package search filters note and resource snapshots by free text and category.
// Every query rescans the full list; collections are small enough that no index is kept.
package search

import (
	"strings"

	"campuscraft/internal/storage"
)

// All is the categorical filter value that matches every item.
const All = "All"

// MatchText reports whether term occurs, case-insensitively, in the title, the body or any tag.
// A blank term matches everything.
func MatchText(term, title, body string, tags []string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(title), term) || strings.Contains(strings.ToLower(body), term) {
		return true
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func isAll(filter string) bool {
	return filter == "" || filter == All
}

// matchCategory applies exact-match filtering with All (or blank) as a bypass.
func matchCategory(filter, value string) bool {
	return isAll(filter) || filter == value
}

// Notes returns the notes matching term, in their original order.
func Notes(notes []storage.Note, term string) []storage.Note {
	out := make([]storage.Note, 0, len(notes))
	for _, n := range notes {
		if MatchText(term, n.Title, n.Content, n.Tags) {
			out = append(out, n)
		}
	}
	return out
}

// Query combines the resource filters. All dimensions must pass.
type Query struct {
	Term    string
	Subject string
	Type    string
}

// Active reports whether any filter narrows the result.
func (q Query) Active() bool {
	return strings.TrimSpace(q.Term) != "" || !isAll(q.Subject) || !isAll(q.Type)
}

// Resources returns the resources matching q, in their original order.
func Resources(resources []storage.Resource, q Query) []storage.Resource {
	out := make([]storage.Resource, 0, len(resources))
	if !q.Active() {
		return append(out, resources...)
	}
	for _, r := range resources {
		if !matchCategory(q.Subject, r.Subject) || !matchCategory(q.Type, string(r.Type)) {
			continue
		}
		if MatchText(q.Term, r.Title, r.Description, r.Tags) {
			out = append(out, r)
		}
	}
	return out
}
