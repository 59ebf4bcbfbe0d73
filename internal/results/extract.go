package results

import (
	"fmt"
	"strconv"
	"strings"

	"evision-results/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	assessmentsRowSelector = "#assessments>tbody>tr"
	modulesRowSelector     = "#modular>tbody>tr"
)

// results at this FHEQ level are not credit bearing and are always dropped
const nonCreditLevel = 3

// Extract reads the assessments and modular tables of a results page. Missing
// tables and rows that do not have exactly ROW_WIDTH cells are skipped. The
// only error is a grade that cannot be classified, which aborts the whole
// extraction.
func Extract(page string) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}
	return ExtractDocument(doc)
}

// ExtractDocument is Extract for an already parsed page. Assessment results
// come first, then module results, each in page order.
func ExtractDocument(doc *goquery.Document) ([]Result, error) {
	assessments, err := toResults(assessmentRows(doc), SOURCE_ASSESSMENTS)
	if err != nil {
		return nil, err
	}
	modules, err := toResults(moduleRows(doc), SOURCE_MODULES)
	if err != nil {
		return nil, err
	}
	return dropNonCreditLevel(append(assessments, modules...)), nil
}

// assessmentRows skips the first row of the assessments table no matter what
// it contains, the portal renders a meta row there.
//
// TODO: confirm with someone who can see live pages whether the modular table
// ever has the same meta row, the two tables are filtered differently.
func assessmentRows(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find(assessmentsRowSelector).Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		row, ok := RowFromCells(rowCells(tr))
		if !ok {
			return
		}
		rows = append(rows, row)
	})
	return rows
}

// moduleRows only filters the modular table by cell count.
func moduleRows(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find(modulesRowSelector).Each(func(_ int, tr *goquery.Selection) {
		row, ok := RowFromCells(rowCells(tr))
		if !ok {
			return
		}
		rows = append(rows, row)
	})
	return rows
}

func rowCells(tr *goquery.Selection) []string {
	cells := tr.ChildrenFiltered("td")
	out := make([]string, 0, cells.Length())
	for _, td := range cells.Nodes {
		out = append(out, htmlutil.GetText(td))
	}
	return out
}

func toResults(rows []Row, source Source) ([]Result, error) {
	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		result, err := NewResult(row, source)
		if err != nil {
			return nil, fmt.Errorf(
				"%s row %q: %w",
				source, row.Get(COLUMN_MODULE_CODE), err,
			)
		}
		out = append(out, result)
	}
	return out, nil
}

var radixPrefixes = map[string]int{"0x": 16, "0o": 8, "0b": 2}

// parseLevel reads a level the way the portal's own number conversion does:
// decimals with an optional sign and exponent, or unsigned 0x/0o/0b integers.
func parseLevel(level string) (float64, bool) {
	level = strings.TrimSpace(level)
	if len(level) > 2 {
		base, ok := radixPrefixes[strings.ToLower(level[:2])]
		if ok {
			value, err := strconv.ParseUint(level[2:], base, 64)
			return float64(value), err == nil
		}
	}
	value, err := strconv.ParseFloat(level, 64)
	return value, err == nil
}

func isNonCreditLevel(level string) bool {
	value, ok := parseLevel(level)
	return ok && value == nonCreditLevel
}

func dropNonCreditLevel(results []Result) []Result {
	out := results[:0]
	for _, r := range results {
		if isNonCreditLevel(r.FHEQLevel) {
			continue
		}
		out = append(out, r)
	}
	return out
}
