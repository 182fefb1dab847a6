// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package grading

import "math"

// Component maxima
const (
	MaxMidtermTheory    = 30
	MaxMidtermPractical = 10
	MaxFinalTheory      = 40
	MaxFinalPractical   = 20
)

// Letter grades, highest first
const (
	LetterAPlus  = "A+"
	LetterA      = "A"
	LetterAMinus = "A-"
	LetterBPlus  = "B+"
	LetterB      = "B"
	LetterBMinus = "B-"
	LetterCPlus  = "C+"
	LetterC      = "C"
	LetterCMinus = "C-"
	LetterD      = "D"
	LetterF      = "F"
)

// Components are the four raw scores of a grade. Missing scores are zero.
type Components struct {
	MidtermTheory    float64
	MidtermPractical float64
	FinalTheory      float64
	FinalPractical   float64
}

// Breakdown is the derived part of a grade record.
type Breakdown struct {
	MidtermTotal float64
	FinalTotal   float64
	TotalGrade   float64
	LetterGrade  string
}

type band struct {
	min    float64
	letter string
}

// Evaluated in order, first match wins.
var bands = []band{
	{95, LetterAPlus},
	{90, LetterA},
	{85, LetterAMinus},
	{80, LetterBPlus},
	{75, LetterB},
	{70, LetterBMinus},
	{65, LetterCPlus},
	{60, LetterC},
	{55, LetterCMinus},
	{50, LetterD},
}

var gradePoints = map[string]float64{
	LetterAPlus:  4.0,
	LetterA:      3.7,
	LetterAMinus: 3.3,
	LetterBPlus:  3.0,
	LetterB:      2.7,
	LetterBMinus: 2.3,
	LetterCPlus:  2.0,
	LetterC:      1.7,
	LetterCMinus: 1.3,
	LetterD:      1.0,
}

// Compute sums the components and bands the total into a letter grade.
// Bounds are not checked here.
func Compute(c Components) Breakdown {
	midterm := c.MidtermTheory + c.MidtermPractical
	final := c.FinalTheory + c.FinalPractical
	total := midterm + final

	return Breakdown{
		MidtermTotal: midterm,
		FinalTotal:   final,
		TotalGrade:   total,
		LetterGrade:  LetterFor(total),
	}
}

// LetterFor maps a 0-100 total onto its letter band.
func LetterFor(total float64) string {
	for _, b := range bands {
		if total >= b.min {
			return b.letter
		}
	}
	return LetterF
}

// Rank returns the competition rank of total among subjectTotals and the
// number of totals ranked. subjectTotals is expected to include total itself.
func Rank(total float64, subjectTotals []float64) (rank, count int) {
	rank = 1
	for _, t := range subjectTotals {
		if t > total {
			rank++
		}
	}
	return rank, len(subjectTotals)
}

// GradePoints converts a letter grade to its point value. Unknown letters
// are worth nothing.
func GradePoints(letter string) float64 {
	return gradePoints[letter]
}

// Credit pairs a letter grade with the credit hours of its subject.
type Credit struct {
	LetterGrade string
	Hours       int
}

// GPA returns the credit-weighted grade point average rounded to two
// decimals, and the credit hours it was computed over.
func GPA(credits []Credit) (float64, int) {
	var points float64
	var hours int
	for _, c := range credits {
		points += GradePoints(c.LetterGrade) * float64(c.Hours)
		hours += c.Hours
	}

	if hours == 0 {
		return 0, 0
	}

	return math.Round(points/float64(hours)*100) / 100, hours
}

// Standing labels a GPA for display.
func Standing(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return "excellent"
	case gpa >= 3.0:
		return "very good"
	case gpa >= 2.5:
		return "good"
	case gpa >= 2.0:
		return "acceptable"
	default:
		return "weak"
	}
}
