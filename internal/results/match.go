package results

import (
	"slices"
	"strings"

	"evision-results/pkg/textutil"

	"github.com/antzucaro/matchr"
)

const matchThreshold = 0.8

type Match struct {
	Result     Result
	Similarity float64
}

func similarity(query string, r Result) float64 {
	if strings.EqualFold(strings.TrimSpace(r.ModuleCode), query) {
		return 1
	}
	// module codes differ by a digit or two, so only titles are matched loosely
	title := textutil.NormalizeName(strings.ReplaceAll(r.Title, "(CORE)", ""))
	return matchr.JaroWinkler(query, title, false)
}

// FindByTitle returns the results whose title is similar to the query or whose
// module code is the query, most similar first.
func FindByTitle(rs []Result, query string) []Match {
	query = textutil.NormalizeName(query)
	if query == "" {
		return nil
	}

	var matches []Match
	for _, r := range rs {
		sim := similarity(query, r)
		if sim < matchThreshold {
			continue
		}
		matches = append(matches, Match{Result: r, Similarity: sim})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		}
		return 0
	})
	return matches
}
