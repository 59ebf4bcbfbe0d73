package results

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"evision-results/internal/grades"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/results_page.html
var resultsPage string

type summary struct {
	Source     Source
	ModuleCode string
	Grade      string
	FHEQLevel  string
}

func summarize(rs []Result) []summary {
	out := make([]summary, len(rs))
	for i, r := range rs {
		out[i] = summary{
			Source:     r.Source,
			ModuleCode: r.ModuleCode,
			Grade:      r.GradeInfo.Grade,
			FHEQLevel:  r.FHEQLevel,
		}
	}
	return out
}

func tr(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>")
		b.WriteString(c)
		b.WriteString("</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

func page(assessments, modules []string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if assessments != nil {
		b.WriteString(`<table id="assessments"><tbody>`)
		b.WriteString(strings.Join(assessments, ""))
		b.WriteString("</tbody></table>")
	}
	if modules != nil {
		b.WriteString(`<table id="modular"><tbody>`)
		b.WriteString(strings.Join(modules, ""))
		b.WriteString("</tbody></table>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestExtractPage(t *testing.T) {
	rs, err := Extract(resultsPage)
	require.NoError(t, err)

	expected := []summary{
		{Source: SOURCE_ASSESSMENTS, ModuleCode: "CS2001", Grade: "B", FHEQLevel: "5"},
		{Source: SOURCE_ASSESSMENTS, ModuleCode: "CS3002", Grade: "A-", FHEQLevel: "6"},
		{Source: SOURCE_MODULES, ModuleCode: "CS1010", Grade: "B+", FHEQLevel: "5"},
		{Source: SOURCE_MODULES, ModuleCode: "CS2001", Grade: "B", FHEQLevel: "5"},
		{Source: SOURCE_MODULES, ModuleCode: "CS3002", Grade: "A-", FHEQLevel: "6"},
		{Source: SOURCE_MODULES, ModuleCode: "CS3072", Grade: "A", FHEQLevel: "6"},
	}
	diff := cmp.Diff(expected, summarize(rs))
	if diff != "" {
		t.Fatal(diff)
	}

	// cell text is passed through untouched, only the classification is trimmed
	require.Equal(t, " B ", rs[0].Grade)
	require.Equal(t, "B", rs[0].GradeInfo.Grade)
	require.Equal(t, "15", rs[0].ECTS)
}

func TestExtractScenario(t *testing.T) {
	row := []string{"2021/22", "CS1010", "Intro to Systems (CORE)", "B+", "15", "7.5", "5", "1"}

	rs, err := Extract(page(nil, []string{tr(row...)}))
	require.NoError(t, err)
	require.Len(t, rs, 1)

	expected := Result{
		Year:       "2021/22",
		ModuleCode: "CS1010",
		Title:      "Intro to Systems (CORE)",
		Grade:      "B+",
		Credits:    "15",
		ECTS:       "7.5",
		FHEQLevel:  "5",
		Attempts:   "1",
		GradeInfo: grades.Grade{
			Grade:       "B+",
			Low:         68,
			High:        69,
			DegreeClass: grades.UPPER_SECOND,
			GradePoint:  13,
		},
		Source: SOURCE_MODULES,
	}
	require.Equal(t, expected, rs[0])
	require.True(t, rs[0].IsCore())

	row[COLUMN_FHEQ_LEVEL] = "3"
	rs, err = Extract(page(nil, []string{tr(row...)}))
	require.NoError(t, err)
	require.Empty(t, rs)
}

func TestExtractMissingTables(t *testing.T) {
	testCases := []string{
		"",
		"<html><body><p>Your session has expired.</p></body></html>",
		`<table id="other"><tbody>` + tr("2021/22", "CS1010", "T", "B", "15", "7.5", "5", "1") + `</tbody></table>`,
		page([]string{}, []string{}),
	}
	for _, test := range testCases {
		rs, err := Extract(test)
		require.NoError(t, err)
		require.Empty(t, rs)
	}
}

func TestExtractRowRules(t *testing.T) {
	valid := func(code string) string {
		return tr("2021/22", code, "Title", "C", "15", "7.5", "5", "1")
	}
	short := tr("2021/22", "SHORT", "Title", "C", "15", "7.5", "5")
	long := tr("2021/22", "LONG", "Title", "C", "15", "7.5", "5", "1", "extra")

	testCases := []struct {
		name        string
		assessments []string
		modules     []string
		expected    []string
	}{
		{
			name:        "first assessment row is always dropped",
			assessments: []string{valid("A0"), valid("A1"), valid("A2")},
			expected:    []string{"A1", "A2"},
		},
		{
			name:     "first module row is kept",
			modules:  []string{valid("M0"), valid("M1")},
			expected: []string{"M0", "M1"},
		},
		{
			name:        "short first assessment row still counts as the dropped row",
			assessments: []string{short, valid("A1")},
			expected:    []string{"A1"},
		},
		{
			name:        "wrong cell counts are dropped in both tables",
			assessments: []string{valid("A0"), short, valid("A2"), long},
			modules:     []string{long, valid("M1"), short},
			expected:    []string{"A2", "M1"},
		},
		{
			name:        "assessments come before modules",
			assessments: []string{valid("A0"), valid("X"), valid("A2")},
			modules:     []string{valid("M0"), valid("X")},
			expected:    []string{"X", "A2", "M0", "X"},
		},
	}

	for _, test := range testCases {
		rs, err := Extract(page(test.assessments, test.modules))
		require.NoError(t, err, test.name)

		var codes []string
		for _, r := range rs {
			codes = append(codes, r.ModuleCode)
		}
		require.Equal(t, test.expected, codes, test.name)
	}
}

func TestExtractNonCreditLevel(t *testing.T) {
	levels := []struct {
		level string
		kept  bool
	}{
		{level: "3", kept: false},
		{level: " 3 ", kept: false},
		{level: "3.0", kept: false},
		{level: "4", kept: true},
		{level: "6", kept: true},
		{level: "", kept: true},
		{level: "n/a", kept: true},
		{level: "33", kept: true},
		{level: "+3", kept: false},
		{level: "03", kept: false},
		{level: "3.", kept: false},
		{level: "0x3", kept: false},
		{level: "0B11", kept: false},
		{level: "0o3", kept: false},
		{level: "0x", kept: true},
		{level: "-0x3", kept: true},
		{level: "0x_3", kept: true},
	}

	for _, test := range levels {
		rs, err := Extract(page(nil, []string{
			tr("2021/22", "CS1010", "Title", "C", "15", "7.5", test.level, "1"),
		}))
		require.NoError(t, err, test.level)
		require.Equal(t, test.kept, len(rs) == 1, fmt.Sprintf("level %q", test.level))
	}
}

func TestExtractUnknownGrade(t *testing.T) {
	_, err := Extract(page(nil, []string{
		tr("2021/22", "CS1010", "Title", "B+", "15", "7.5", "5", "1"),
		tr("2021/22", "CS1020", "Title", "P", "15", "7.5", "5", "1"),
	}))
	require.Error(t, err)
	require.True(t, errors.Is(err, grades.ErrUnknownGrade))
	require.Contains(t, err.Error(), "CS1020")

	// the dropped first assessment row is never classified
	rs, err := Extract(page([]string{
		tr("Year", "Code", "Title", "Grade", "Credits", "ECTS", "Level", "Attempt"),
	}, nil))
	require.NoError(t, err)
	require.Empty(t, rs)

	// rows removed by the level filter are still classified
	_, err = Extract(page(nil, []string{
		tr("2019/20", "FY0001", "Title", "Z", "15", "7.5", "3", "1"),
	}))
	require.True(t, errors.Is(err, grades.ErrUnknownGrade))
}

func TestRowFromCells(t *testing.T) {
	_, ok := RowFromCells([]string{"a", "b"})
	require.False(t, ok)

	row, ok := RowFromCells([]string{"y", "m", "t", "g", "c", "e", "l", "a"})
	require.True(t, ok)
	require.Equal(t, "g", row.Get(COLUMN_GRADE))
	require.Equal(t, "l", row.Get(COLUMN_FHEQ_LEVEL))
	require.Equal(t, "fheqLevel", COLUMN_FHEQ_LEVEL.String())
	require.Equal(t, "unknown", Column(ROW_WIDTH).String())
}
