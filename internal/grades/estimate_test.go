package grades

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustClassify(t testing.TB, token string) Grade {
	g, err := Classify(token)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestEstimate(t *testing.T) {
	testCases := []struct {
		name       string
		modules    []Weighted
		gradePoint float64
		class      DegreeClass
	}{
		{
			name: "both levels",
			modules: []Weighted{
				{Level: "5", Credits: "15", Grade: mustClassify(t, "B")},
				{Level: "5", Credits: "15", Grade: mustClassify(t, "B")},
				{Level: "6", Credits: "30", Grade: mustClassify(t, "A")},
			},
			// 12 * 1/3 + 15 * 2/3
			gradePoint: 14,
			class:      FIRST,
		},
		{
			name: "credit weighted",
			modules: []Weighted{
				{Level: "6", Credits: "45", Grade: mustClassify(t, "C")},
				{Level: "6", Credits: "15", Grade: mustClassify(t, "A*")},
			},
			// (9 * 45 + 17 * 15) / 60
			gradePoint: 11,
			class:      UPPER_SECOND,
		},
		{
			name: "ignores other levels and bad credits",
			modules: []Weighted{
				{Level: "4", Credits: "120", Grade: mustClassify(t, "F")},
				{Level: "5", Credits: "n/a", Grade: mustClassify(t, "F")},
				{Level: "5", Credits: "0", Grade: mustClassify(t, "F")},
				{Level: " 5 ", Credits: " 20 ", Grade: mustClassify(t, "D")},
			},
			gradePoint: 6,
			class:      THIRD,
		},
	}

	for _, test := range testCases {
		estimate, err := Estimate(test.modules)
		require.NoError(t, err, test.name)
		require.InDelta(t, test.gradePoint, estimate.GradePoint, 1e-9, test.name)
		require.Equal(t, test.class, estimate.Band.DegreeClass, test.name)
	}
}

func TestEstimateRounding(t *testing.T) {
	// 10.5 rounds half up to B-
	estimate, err := Estimate([]Weighted{
		{Level: "6", Credits: "10", Grade: mustClassify(t, "C+")},
		{Level: "6", Credits: "10", Grade: mustClassify(t, "B-")},
	})
	require.NoError(t, err)
	require.InDelta(t, 10.5, estimate.GradePoint, 1e-9)
	require.Equal(t, "B-", estimate.Band.Grade)
	require.Equal(t, 10.5, estimate.Levels["6"].GradePoint)
	require.Equal(t, 20.0, estimate.Levels["6"].Credits)
}

func TestEstimateEmpty(t *testing.T) {
	_, err := Estimate(nil)
	require.True(t, errors.Is(err, ErrNoGradedModules))

	_, err = Estimate([]Weighted{{Level: "4", Credits: "15", Grade: mustClassify(t, "A")}})
	require.True(t, errors.Is(err, ErrNoGradedModules))
}
