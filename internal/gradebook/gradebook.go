// Package gradebook holds the grade-point table and the two GPA formulas the
// portal displays. ComputeGPA is the credit-weighted transcript GPA;
// ComputeQuickGPA is the unweighted mean the quick-display widget shows. They
// intentionally coexist and must not be merged.
package gradebook

import (
	"math"
	"strconv"

	"github.com/studentportal/portal-api/internal/models"
)

var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0,
	"F": 0.0,
}

// GradePoint returns the grade-point value for a letter grade.
func GradePoint(grade string) (float64, bool) {
	gp, ok := gradePoints[grade]
	return gp, ok
}

// Grades lists the recognized letter grades.
func Grades() []string {
	out := make([]string, 0, len(gradePoints))
	for g := range gradePoints {
		out = append(out, g)
	}
	return out
}

// ComputeGPA computes the credit-weighted GPA over a course list, rounded to
// two decimals. Courses with an unrecognized grade or without a positive,
// finite credit count do not contribute. An empty or fully-malformed list
// yields 0.00 rather than dividing by zero.
func ComputeGPA(courses []models.Course) float64 {
	var totalPoints, totalCredits float64
	for _, course := range courses {
		gp, ok := gradePoints[course.Grade]
		credits := float64(course.Credits)
		if !ok || math.IsNaN(credits) || math.IsInf(credits, 0) || credits <= 0 {
			continue
		}
		totalPoints += gp * credits
		totalCredits += credits
	}
	if totalCredits == 0 {
		return 0
	}
	return round2(totalPoints / totalCredits)
}

// ComputeQuickGPA computes the unweighted mean of grade points over the
// grades currently visible in a table, ignoring credits and unrecognized
// entries. This is the quick-display formula, not the transcript GPA.
func ComputeQuickGPA(grades []string) float64 {
	var totalPoints float64
	var count int
	for _, grade := range grades {
		gp, ok := gradePoints[grade]
		if !ok {
			continue
		}
		totalPoints += gp
		count++
	}
	if count == 0 {
		return 0
	}
	return round2(totalPoints / float64(count))
}

// Format renders a GPA value the way the card displays it, e.g. "3.50".
func Format(gpa float64) string {
	return strconv.FormatFloat(round2(gpa), 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
