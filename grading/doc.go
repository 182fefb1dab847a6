// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package grading holds the pure scoring rules: component totals, letter
grade bands, subject ranking and credit-weighted GPA.

Nothing here touches the database. Callers validate component bounds
before calling Compute and load subject totals before calling Rank.

# Components

A grade is built from four components with fixed maxima:

	midterm theory    30
	midterm practical 10
	final theory      40
	final practical   20

	b := grading.Compute(grading.Components{MidtermTheory: 25, MidtermPractical: 8, FinalTheory: 35, FinalPractical: 18})
	// b.TotalGrade == 86, b.LetterGrade == "A-"

# Ranking

Ranks are competition ranks: one plus the number of strictly higher totals
in the same subject, so equal totals share a rank.

	rank, count := grading.Rank(86, []float64{95, 86, 86, 70}) // 2, 4

# GPA

	gpa, credits := grading.GPA([]grading.Credit{{LetterGrade: "A", Hours: 3}, {LetterGrade: "B", Hours: 4}})
*/
package grading
