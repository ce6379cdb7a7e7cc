package matching

import (
	"slices"
	"strings"
)

// normalizeTerm lowercases a term, trims punctuation and collapses inner whitespace.
func normalizeTerm(term string) string {
	fields := strings.Fields(strings.ToLower(term))
	for i, f := range fields {
		fields[i] = strings.Trim(f, ".,!?;:'\"()[]{}")
	}
	return strings.Join(slices.DeleteFunc(fields, func(f string) bool { return f == "" }), " ")
}

// termSet returns the normalized, non-empty terms.
func termSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if n := normalizeTerm(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// matchedKeywords returns the profile keywords found among the tender tags,
// in profile order, each at most once.
func matchedKeywords(keywords, tags []string) []string {
	if len(keywords) == 0 || len(tags) == 0 {
		return nil
	}
	tagSet := termSet(tags)
	seen := make(map[string]struct{}, len(keywords))

	var matched []string
	for _, kw := range keywords {
		n := normalizeTerm(kw)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := tagSet[n]; ok {
			matched = append(matched, kw)
		}
	}
	return matched
}

// distinctTerms counts the distinct normalized terms.
func distinctTerms(terms []string) int {
	return len(termSet(terms))
}

// containsFold reports whether value equals any item, ignoring case.
func containsFold(items []string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	return slices.ContainsFunc(items, func(item string) bool {
		return strings.EqualFold(strings.TrimSpace(item), value)
	})
}
