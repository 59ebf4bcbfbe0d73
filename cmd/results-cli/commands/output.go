package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"evision-results/internal/grades"
	"evision-results/internal/results"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func writeJson(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func bandRange(g grades.Grade) string {
	return fmt.Sprintf("%d-%d", g.Low, g.High)
}

func writeResults(out io.Writer, rs []results.Result) error {
	if *outputFormat == "json" {
		if rs == nil {
			rs = []results.Result{}
		}
		return writeJson(out, rs)
	}

	t := newTable(out)
	t.AppendHeader(table.Row{
		"Source", "Year", "Module", "Title", "Grade", "Band", "Class", "GP",
		"Credits", "ECTS", "Level", "Attempts", "Core",
	})
	for _, r := range rs {
		core := ""
		if r.IsCore() {
			core = "yes"
		}
		t.AppendRow(table.Row{
			r.Source.String(), r.Year, r.ModuleCode, r.Title,
			r.GradeInfo.Grade, bandRange(r.GradeInfo), r.GradeInfo.DegreeClass, r.GradeInfo.GradePoint,
			r.Credits, r.ECTS, r.FHEQLevel, r.Attempts, core,
		})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d results", len(rs))})
	t.Render()
	return nil
}

func writeGrades(out io.Writer, gs []grades.Grade) error {
	if *outputFormat == "json" {
		return writeJson(out, gs)
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"Grade", "Band", "Class", "GP"})
	for _, g := range gs {
		t.AppendRow(table.Row{g.Grade, bandRange(g), g.DegreeClass, g.GradePoint})
	}
	t.Render()
	return nil
}

func writeEstimate(out io.Writer, estimate grades.DegreeEstimate) error {
	if *outputFormat == "json" {
		return writeJson(out, estimate)
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"Level", "Credits", "Mean GP"})
	for _, level := range []string{"5", "6"} {
		avg, ok := estimate.Levels[level]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			level,
			strconv.FormatFloat(avg.Credits, 'f', -1, 64),
			strconv.FormatFloat(avg.GradePoint, 'f', 2, 64),
		})
	}
	t.AppendFooter(table.Row{
		"Overall",
		fmt.Sprintf("%s (%s)", estimate.Band.DegreeClass, estimate.Band.Grade),
		strconv.FormatFloat(estimate.GradePoint, 'f', 2, 64),
	})
	t.Render()
	return nil
}

func writeMatches(out io.Writer, matches []results.Match) error {
	if *outputFormat == "json" {
		rs := make([]results.Result, len(matches))
		for i, m := range matches {
			rs[i] = m.Result
		}
		return writeJson(out, rs)
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"Similarity", "Source", "Module", "Title", "Grade", "Class"})
	for _, m := range matches {
		t.AppendRow(table.Row{
			strconv.FormatFloat(m.Similarity, 'f', 2, 64),
			m.Result.Source.String(),
			m.Result.ModuleCode,
			m.Result.Title,
			m.Result.GradeInfo.Grade,
			m.Result.GradeInfo.DegreeClass,
		})
	}
	t.Render()
	return nil
}
