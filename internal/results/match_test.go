package results

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindByTitle(t *testing.T) {
	rs, err := Extract(resultsPage)
	require.NoError(t, err)

	testCases := []struct {
		query    string
		expected []string
	}{
		{query: "cs3072", expected: []string{"CS3072"}},
		{query: "Distributed Systems", expected: []string{"CS3002", "CS3002"}},
		{query: "final year projct", expected: []string{"CS3072"}},
		{query: "   ", expected: nil},
		{query: "quantum chromodynamics", expected: nil},
	}

	for _, test := range testCases {
		matches := FindByTitle(rs, test.query)
		var codes []string
		for _, m := range matches {
			codes = append(codes, m.Result.ModuleCode)
		}
		require.Equal(t, test.expected, codes, test.query)
	}
}

func TestFindByTitleOrder(t *testing.T) {
	rs, err := Extract(resultsPage)
	require.NoError(t, err)

	matches := FindByTitle(rs, "software engineering")
	require.NotEmpty(t, matches)
	require.Equal(t, "CS2001", matches[0].Result.ModuleCode)
	require.Equal(t, 1.0, matches[0].Similarity)
	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
	}
}
