package plans

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary  = "Summary"
	SheetWorkout  = "Workout"
	SheetSchedule = "Schedule"
	SheetDiet     = "Diet"
)

// RenderWorkbook lays a plan out as an XLSX workbook.
func RenderWorkbook(p Plan) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, name := range []string{SheetWorkout, SheetSchedule, SheetDiet} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := &sheetWriter{f: f, header: header}

	w.summary(p)
	w.workout(p)
	w.schedule(p)
	w.diet(p)
	if w.err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render workbook: %w", w.err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook renders p and writes the XLSX bytes to out.
func WriteWorkbook(out io.Writer, p Plan) error {
	f, err := RenderWorkbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

func workbookBytes(p Plan) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, p); err != nil {
		return nil, err
	}
	return &buf, nil
}

// sheetWriter keeps the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headerRow(sheet string, row int, titles ...any) {
	w.row(sheet, row, titles...)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(titles), row)
	if err != nil {
		w.err = err
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	w.err = w.f.SetCellStyle(sheet, first, last, w.header)
}

func (w *sheetWriter) widths(sheet, from, to string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(sheet, from, to, width)
}

func (w *sheetWriter) summary(p Plan) {
	r := p.Result
	w.headerRow(SheetSummary, 1, "FitSynth plan", "")
	rows := [][]any{
		{"Plan ID", p.ID},
		{"Created", p.CreatedAt.UTC().Format(time.RFC3339)},
		{"Goal", p.Input.Goal},
		{"Activity", p.Input.Activity},
		{"BMI", r.Meta.Metrics.BMI},
		{"Fitness score", r.Meta.Metrics.FitnessScore},
		{"Intensity", r.Meta.Intensity},
		{"Training days", r.Schedule.AdjustedDays},
		{"Weekly load", r.Schedule.WeeklyLoad},
		{"Calories", r.Diet.Calories},
		{"Explanation source", p.ExplanationSource},
	}
	for i, values := range rows {
		w.row(SheetSummary, i+2, values...)
	}
	next := len(rows) + 3
	w.headerRow(SheetSummary, next, "Explanation", "")
	for i, line := range strings.Split(r.Explanation, "\n") {
		w.row(SheetSummary, next+1+i, line)
	}
	w.widths(SheetSummary, "A", "A", 22)
	w.widths(SheetSummary, "B", "B", 60)
}

func (w *sheetWriter) workout(p Plan) {
	plan := p.Result.Plan
	w.headerRow(SheetWorkout, 1, "Section", "Exercise", "Type", "Sets", "Reps", "Minutes", "Notes")
	row := 2
	for _, b := range plan.Warmup {
		w.row(SheetWorkout, row, "Warm-up", b.Name, "", "", "", b.Duration, b.Notes)
		row++
	}
	for _, part := range plan.MainParts {
		for _, it := range part.Items {
			w.row(SheetWorkout, row, part.Section, it.Name, it.Type, blankZero(it.Sets), blankZero(it.Reps), blankZero(it.DurationMin), it.Notes)
			row++
		}
	}
	for _, it := range plan.Auxiliary {
		w.row(SheetWorkout, row, "Auxiliary", it.Name, it.Type, "", "", "", it.Target)
		row++
	}
	for _, b := range plan.Cooldown {
		w.row(SheetWorkout, row, "Cooldown", b.Name, "", "", "", b.Duration, b.Notes)
		row++
	}
	w.widths(SheetWorkout, "A", "B", 24)
	w.widths(SheetWorkout, "G", "G", 40)
}

func (w *sheetWriter) schedule(p Plan) {
	s := p.Result.Schedule
	w.headerRow(SheetSchedule, 1, "Day", "Time", "Load", "Notes")
	for i, sess := range s.Schedule {
		w.row(SheetSchedule, i+2, sess.Day, sess.Time, sess.Load, sess.Notes)
	}
	if s.AdjustAdvice != "" {
		w.row(SheetSchedule, len(s.Schedule)+3, "Advice", s.AdjustAdvice)
	}
	w.widths(SheetSchedule, "D", "D", 20)
}

func (w *sheetWriter) diet(p Plan) {
	d := p.Result.Diet
	w.headerRow(SheetDiet, 1, "Daily target", "Grams", "% of calories")
	w.row(SheetDiet, 2, "Calories", d.Calories, "")
	w.row(SheetDiet, 3, "Protein", d.Macros.ProteinG, round1(d.Macros.ProteinPct))
	w.row(SheetDiet, 4, "Fat", d.Macros.FatG, round1(d.Macros.FatPct))
	w.row(SheetDiet, 5, "Carbs", d.Macros.CarbsG, round1(d.Macros.CarbsPct))

	w.headerRow(SheetDiet, 7, "Meal", "Kcal", "Protein", "Fat", "Carbs", "Example")
	for i, m := range d.Meals {
		w.row(SheetDiet, 8+i, m.Name, m.Kcal, m.Protein, m.Fat, m.Carbs, m.Example)
	}
	w.widths(SheetDiet, "A", "A", 16)
	w.widths(SheetDiet, "F", "F", 50)
}

func blankZero(v int) any {
	if v == 0 {
		return ""
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
