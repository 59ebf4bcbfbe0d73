package results

import (
	"strings"

	"evision-results/internal/grades"
)

// Source is the table a result was read from.
type Source int

const (
	SOURCE_ASSESSMENTS Source = iota
	SOURCE_MODULES
)

func (s Source) String() string {
	switch s {
	case SOURCE_ASSESSMENTS:
		return "assessments"
	case SOURCE_MODULES:
		return "modules"
	}
	return "unknown"
}

// Result is a single module or assessment result. Every field except GradeInfo
// and Source is the cell text exactly as it appeared on the page.
type Result struct {
	Year       string       `json:"year"`
	ModuleCode string       `json:"moduleCode"`
	Title      string       `json:"title"`
	Grade      string       `json:"grade"`
	Credits    string       `json:"credits"`
	ECTS       string       `json:"ects"`
	FHEQLevel  string       `json:"fheqLevel"`
	Attempts   string       `json:"attempts"`
	GradeInfo  grades.Grade `json:"gradeInfo"`
	Source     Source       `json:"-"`
}

// NewResult maps a row onto a result and classifies its grade.
func NewResult(row Row, source Source) (Result, error) {
	info, err := grades.Classify(row.Get(COLUMN_GRADE))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Year:       row.Get(COLUMN_YEAR),
		ModuleCode: row.Get(COLUMN_MODULE_CODE),
		Title:      row.Get(COLUMN_TITLE),
		Grade:      row.Get(COLUMN_GRADE),
		Credits:    row.Get(COLUMN_CREDITS),
		ECTS:       row.Get(COLUMN_ECTS),
		FHEQLevel:  row.Get(COLUMN_FHEQ_LEVEL),
		Attempts:   row.Get(COLUMN_ATTEMPTS),
		GradeInfo:  info,
		Source:     source,
	}, nil
}

// IsCore reports whether the module is mandatory.
func (r Result) IsCore() bool {
	return strings.Contains(r.Title, "(CORE)")
}
