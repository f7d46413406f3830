// Package gpa maps letter grades to grade points and computes the credit-weighted CGPA.
package gpa

import (
	"fmt"
	"math"

	"campuscraft/internal/storage"
)

// Status is the qualitative label attached to a CGPA.
type Status string

const (
	StatusNotCalculated Status = "Not Calculated"
	StatusExcellent     Status = "Excellent"
	StatusGood          Status = "Good"
	StatusAverage       Status = "Average"
	StatusBelowAverage  Status = "Below Average"
)

// MaxPoints is the highest value in the grade table.
const MaxPoints = 4.0

type gradeEntry struct {
	grade  string
	points float64
}

// table is ordered from best to worst grade.
var table = []gradeEntry{
	{"A+", 4.0}, {"A", 4.0}, {"A-", 3.7},
	{"B+", 3.3}, {"B", 3.0}, {"B-", 2.7},
	{"C+", 2.3}, {"C", 2.0}, {"C-", 1.7},
	{"D+", 1.3}, {"D", 1.0}, {"F", 0.0},
}

var pointsByGrade = func() map[string]float64 {
	m := make(map[string]float64, len(table))
	for _, e := range table {
		m[e.grade] = e.points
	}
	return m
}()

// Points returns the grade points for a letter grade.
// ok is false for grades outside the table; callers must reject those.
func Points(grade string) (points float64, ok bool) {
	points, ok = pointsByGrade[grade]
	return points, ok
}

// Valid reports whether grade is in the table.
func Valid(grade string) bool {
	_, ok := pointsByGrade[grade]
	return ok
}

// Grade pairs a letter grade with its points, for listing the table.
type Grade struct {
	Grade  string  `json:"grade"`
	Points float64 `json:"points"`
}

// Grades returns the grade table from best to worst.
func Grades() []Grade {
	out := make([]Grade, len(table))
	for i, e := range table {
		out[i] = Grade{Grade: e.grade, Points: e.points}
	}
	return out
}

// Result is a computed CGPA. CGPA keeps full precision; use Rounded or Display for output.
type Result struct {
	CGPA         float64 `json:"cgpa"`
	Status       Status  `json:"status"`
	TotalCredits int     `json:"totalCredits"`
	SubjectCount int     `json:"subjectCount"`
}

// Rounded returns the CGPA rounded to two decimal places.
func (r Result) Rounded() float64 {
	return math.Round(r.CGPA*100) / 100
}

// Display formats Rounded with two decimals, so halves round up in both.
func (r Result) Display() string {
	return fmt.Sprintf("%.2f", r.Rounded())
}

// Compute returns the credit-weighted average of the subjects' grade points.
// An empty list yields 0 with StatusNotCalculated.
func Compute(subjects []storage.Subject) Result {
	if len(subjects) == 0 {
		return Result{Status: StatusNotCalculated}
	}

	var weighted float64
	var credits int
	for _, s := range subjects {
		weighted += s.GradePoints * float64(s.Credits)
		credits += s.Credits
	}

	var cgpa float64
	if credits > 0 {
		cgpa = weighted / float64(credits)
	}

	return Result{
		CGPA:         cgpa,
		Status:       Classify(cgpa),
		TotalCredits: credits,
		SubjectCount: len(subjects),
	}
}

// Classify labels a CGPA. Lower bounds are inclusive.
func Classify(cgpa float64) Status {
	switch {
	case cgpa >= 3.5:
		return StatusExcellent
	case cgpa >= 3.0:
		return StatusGood
	case cgpa >= 2.0:
		return StatusAverage
	default:
		return StatusBelowAverage
	}
}
