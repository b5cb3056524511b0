package db

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// EntityNotFoundError is returned when a referenced account, client,
// template, invoice, timesheet or tag does not exist.
type EntityNotFoundError struct {
	Kind        string
	Key         string
	Suggestions []string
}

func (e *EntityNotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Key)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func notFoundByID(kind string, id int64) *EntityNotFoundError {
	return &EntityNotFoundError{Kind: kind, Key: fmt.Sprintf("%d", id)}
}

// notFoundByName builds the error with close matches among the existing names.
func notFoundByName(kind, name string, existing []string) *EntityNotFoundError {
	matches := fuzzy.RankFindFold(name, existing)
	sort.Sort(matches)
	if len(matches) == 0 {
		// fall back to names contained in the query, e.g. "acme corp" -> "acme"
		for _, candidate := range existing {
			if candidate != "" && strings.Contains(strings.ToLower(name), strings.ToLower(candidate)) {
				matches = append(matches, fuzzy.Rank{Target: candidate})
			}
		}
	}
	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, m.Target)
		if len(suggestions) == 3 {
			break
		}
	}
	return &EntityNotFoundError{Kind: kind, Key: name, Suggestions: suggestions}
}
