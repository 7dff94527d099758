package portfolio

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxSuggestDistance bounds how far a suggested ID may be from the query.
const MaxSuggestDistance = 3

// Suggest returns the loan ID closest to query by edit distance, compared
// case-insensitively. Ties keep the first loan in input order. It reports
// false when nothing is within MaxSuggestDistance or when an ID already
// contains the query.
func Suggest(loans []Loan, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	best := ""
	bestDist := MaxSuggestDistance + 1
	for _, l := range loans {
		id := strings.ToLower(l.ID)
		if strings.Contains(id, q) {
			return "", false
		}
		d := levenshtein.ComputeDistance(q, id)
		if d < bestDist {
			best = l.ID
			bestDist = d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
