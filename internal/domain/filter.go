package domain

import "strings"

// CategoryAll is the sentinel category meaning no category restriction.
const CategoryAll = "All"

// Filter is the current browse restriction: a free-text search term and a
// selected category. It is transient state, never persisted.
type Filter struct {
	// Term is matched case-insensitively as a substring of a quote's
	// text, author, or any tag. Empty matches everything.
	Term string

	// Category must equal the quote's category exactly (case-sensitive),
	// unless it is CategoryAll.
	Category string
}

// NewFilter returns the unrestricted filter.
func NewFilter() Filter {
	return Filter{Category: CategoryAll}
}

// Matches reports whether the quote passes both the category and the
// search restriction.
func (f Filter) Matches(q *Quote) bool {
	if f.Category != CategoryAll && f.Category != q.Category {
		return false
	}

	if f.Term == "" {
		return true
	}

	term := strings.ToLower(f.Term)
	if strings.Contains(strings.ToLower(q.Text), term) {
		return true
	}

	if strings.Contains(strings.ToLower(q.Author), term) {
		return true
	}

	for _, tag := range q.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}

	return false
}
