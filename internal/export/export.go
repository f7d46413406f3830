// Package export writes the collections to an Excel workbook and reads subjects back from one.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"

	"campuscraft/internal/gpa"
	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

// Sheet names, in workbook order.
const (
	SheetAssignments = "Assignments"
	SheetSubjects    = "Subjects"
	SheetNotes       = "Notes"
	SheetResources   = "Resources"
)

// Snapshot is the data written to a workbook.
type Snapshot struct {
	Assignments []storage.Assignment
	Subjects    []storage.Subject
	Notes       []storage.Note
	Resources   []storage.Resource
	CGPA        gpa.Result
}

// FileName returns the download name for an export taken at now.
func FileName(now time.Time) string {
	return slug.Make("campus craft export "+now.Format(storage.DateLayout)) + ".xlsx"
}

// Workbook builds the export. The caller must Close the returned file.
// Media notes are listed but their payloads are left out.
func Workbook(s Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name    string
		columns []any
		rows    [][]any
	}{
		{SheetAssignments, []any{"Title", "Subject", "Due Date", "Priority", "Status", "Description", "Created"}, assignmentRows(s.Assignments)},
		{SheetSubjects, []any{"Name", "Credits", "Grade", "Grade Points"}, subjectRows(s.Subjects, s.CGPA)},
		{SheetNotes, []any{"Title", "Type", "Content", "Tags", "Created"}, noteRows(s.Notes)},
		{SheetResources, []any{"Title", "Type", "Subject", "URL", "Rating", "Tags", "Description", "Added"}, resourceRows(s.Resources)},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		if err := writeRow(f, sh.name, 1, sh.columns); err != nil {
			f.Close()
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(sh.columns), 1)
		if err := f.SetCellStyle(sh.name, "A1", last, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style %s header: %w", sh.name, err)
		}
		for j, row := range sh.rows {
			if err := writeRow(f, sh.name, j+2, row); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func assignmentRows(list []storage.Assignment) [][]any {
	rows := make([][]any, 0, len(list))
	for _, a := range list {
		rows = append(rows, []any{
			a.Title, a.Subject, a.DueDate, string(a.Priority), string(a.Status), a.Description,
			a.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func subjectRows(list []storage.Subject, res gpa.Result) [][]any {
	rows := make([][]any, 0, len(list)+2)
	for _, s := range list {
		rows = append(rows, []any{s.Name, s.Credits, s.Grade, s.GradePoints})
	}
	rows = append(rows, []any{}, []any{"CGPA", res.TotalCredits, string(res.Status), res.Rounded()})
	return rows
}

func noteRows(list []storage.Note) [][]any {
	rows := make([][]any, 0, len(list))
	for _, n := range list {
		rows = append(rows, []any{
			n.Title, string(n.Type), n.Content, strings.Join(n.Tags, ", "), n.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func resourceRows(list []storage.Resource) [][]any {
	rows := make([][]any, 0, len(list))
	for _, r := range list {
		rows = append(rows, []any{
			r.Title, string(r.Type), r.Subject, r.URL, r.Rating, strings.Join(r.Tags, ", "), r.Description,
			r.AddedAt.Format(time.RFC3339),
		})
	}
	return rows
}

// SubjectRow is one parsed import row. Row is the 1-based sheet row.
type SubjectRow struct {
	Row   int
	Input service.SubjectInput
}

// ReadSubjects parses name, credits and grade columns from the first sheet.
// The header row and blank rows are skipped; validation is left to the subject store.
func ReadSubjects(r io.Reader) ([]SubjectRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("excel file does not contain any sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
	}

	out := make([]SubjectRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name, credits, grade := cell(row, 0), cell(row, 1), cell(row, 2)
		if name == "" && credits == "" && grade == "" {
			continue
		}
		// Unparseable credits stay 0 and fail validation downstream.
		n, _ := strconv.Atoi(credits)
		out = append(out, SubjectRow{
			Row:   i + 1,
			Input: service.SubjectInput{Name: name, Credits: n, Grade: grade},
		})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
