package grades

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNoGradedModules = errors.New("no graded level 5 or level 6 modules")

// how much each FHEQ level contributes to the final classification
var levelWeighting = map[string]float64{
	"5": 1.0 / 3.0,
	"6": 2.0 / 3.0,
}

// Weighted is a graded module with the level and credits needed to weigh it.
type Weighted struct {
	Level   string
	Credits string
	Grade   Grade
}

type LevelAverage struct {
	Credits    float64 `json:"credits"`
	GradePoint float64 `json:"gradePoint"`
}

type DegreeEstimate struct {
	GradePoint float64                 `json:"gradePoint"`
	Levels     map[string]LevelAverage `json:"levels"`
	Band       Grade                   `json:"band"`
}

func parseCredits(credits string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(credits), 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// Estimate computes the credit-weighted mean grade point of each level and
// combines the levels by their weighting. If only one level has modules, its
// mean is used as is.
func Estimate(modules []Weighted) (DegreeEstimate, error) {
	sums := map[string]float64{}
	credits := map[string]float64{}
	for _, m := range modules {
		level := strings.TrimSpace(m.Level)
		if _, ok := levelWeighting[level]; !ok {
			continue
		}
		c, ok := parseCredits(m.Credits)
		if !ok {
			continue
		}
		sums[level] += float64(m.Grade.GradePoint) * c
		credits[level] += c
	}
	if len(credits) == 0 {
		return DegreeEstimate{}, ErrNoGradedModules
	}

	levels := make(map[string]LevelAverage, len(credits))
	var total, weights float64
	for level, c := range credits {
		mean := sums[level] / c
		levels[level] = LevelAverage{Credits: c, GradePoint: mean}
		total += mean * levelWeighting[level]
		weights += levelWeighting[level]
	}
	overall := total / weights
	if len(levels) == 1 {
		for _, avg := range levels {
			overall = avg.GradePoint
		}
	}

	rounded := int(math.Floor(overall + 0.5))
	rounded = max(1, min(rounded, len(bandOrder)))
	band, _ := ForGradePoint(rounded)

	return DegreeEstimate{
		GradePoint: overall,
		Levels:     levels,
		Band:       band,
	}, nil
}
