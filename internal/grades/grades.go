// Package grades maps the letter grades shown on the results portal to their
// percentage bands, degree classifications and grade points.
package grades

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGrade is returned when a token is not one of the 17 known grades.
var ErrUnknownGrade = errors.New("unknown grade token")

// DegreeClass is a UK undergraduate honours classification.
type DegreeClass string

const (
	FIRST        DegreeClass = "1"
	UPPER_SECOND DegreeClass = "2.1"
	LOWER_SECOND DegreeClass = "2.2"
	THIRD        DegreeClass = "3"
	FAIL         DegreeClass = "Fail"
)

// Grade is the classification of a single grade token.
type Grade struct {
	Grade       string      `json:"grade"`
	Low         int         `json:"low"`
	High        int         `json:"high"`
	DegreeClass DegreeClass `json:"degreeClass"`
	GradePoint  int         `json:"gradePoint"`
}

type band struct {
	low         int
	high        int
	degreeClass DegreeClass
	gradePoint  int
}

// ordered best to worst, gradePoint is 17 - index
var bandOrder = [...]string{
	"A*", "A+", "A", "A-",
	"B+", "B", "B-",
	"C+", "C", "C-",
	"D+", "D", "D-",
	"E+", "E", "E-",
	"F",
}

var bandTable = map[string]band{
	"A*": {low: 90, high: 100, degreeClass: FIRST, gradePoint: 17},
	"A+": {low: 80, high: 89, degreeClass: FIRST, gradePoint: 16},
	"A":  {low: 73, high: 79, degreeClass: FIRST, gradePoint: 15},
	"A-": {low: 70, high: 72, degreeClass: FIRST, gradePoint: 14},
	"B+": {low: 68, high: 69, degreeClass: UPPER_SECOND, gradePoint: 13},
	"B":  {low: 63, high: 67, degreeClass: UPPER_SECOND, gradePoint: 12},
	"B-": {low: 60, high: 62, degreeClass: UPPER_SECOND, gradePoint: 11},
	"C+": {low: 58, high: 59, degreeClass: LOWER_SECOND, gradePoint: 10},
	"C":  {low: 53, high: 57, degreeClass: LOWER_SECOND, gradePoint: 9},
	"C-": {low: 50, high: 52, degreeClass: LOWER_SECOND, gradePoint: 8},
	"D+": {low: 48, high: 49, degreeClass: THIRD, gradePoint: 7},
	"D":  {low: 43, high: 47, degreeClass: THIRD, gradePoint: 6},
	"D-": {low: 40, high: 42, degreeClass: THIRD, gradePoint: 5},
	"E+": {low: 38, high: 39, degreeClass: FAIL, gradePoint: 4},
	"E":  {low: 33, high: 37, degreeClass: FAIL, gradePoint: 3},
	"E-": {low: 30, high: 32, degreeClass: FAIL, gradePoint: 2},
	"F":  {low: 0, high: 29, degreeClass: FAIL, gradePoint: 1},
}

func (b band) grade(token string) Grade {
	return Grade{
		Grade:       token,
		Low:         b.low,
		High:        b.high,
		DegreeClass: b.degreeClass,
		GradePoint:  b.gradePoint,
	}
}

// Classify trims the token and looks it up in the band table. Matching is exact
// and case-sensitive, a miss returns an error wrapping ErrUnknownGrade.
func Classify(token string) (Grade, error) {
	token = strings.TrimSpace(token)
	b, ok := bandTable[token]
	if !ok {
		return Grade{}, fmt.Errorf("%w: %q", ErrUnknownGrade, token)
	}
	return b.grade(token), nil
}

// Bands returns every band in the table, best grade first.
func Bands() []Grade {
	out := make([]Grade, len(bandOrder))
	for i, token := range bandOrder {
		out[i] = bandTable[token].grade(token)
	}
	return out
}

// ForGradePoint returns the band with the given grade point.
func ForGradePoint(gradePoint int) (Grade, bool) {
	if gradePoint < 1 || gradePoint > len(bandOrder) {
		return Grade{}, false
	}
	token := bandOrder[len(bandOrder)-gradePoint]
	return bandTable[token].grade(token), true
}
