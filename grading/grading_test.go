// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package grading

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		components Components
		midterm    float64
		final      float64
		total      float64
		letter     string
	}{
		{"typical", Components{25, 8, 35, 18}, 33, 53, 86, LetterAMinus},
		{"perfect", Components{30, 10, 40, 20}, 40, 60, 100, LetterAPlus},
		{"all missing", Components{}, 0, 0, 0, LetterF},
		{"just passing", Components{15, 5, 20, 10}, 20, 30, 50, LetterD},
		{"fractional", Components{22.5, 7.5, 30, 15}, 30, 45, 75, LetterB},
		{"only finals", Components{FinalTheory: 40, FinalPractical: 20}, 0, 60, 60, LetterC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(tt.components)
			if b.MidtermTotal != tt.midterm {
				t.Errorf("midterm total: expected %v, got %v", tt.midterm, b.MidtermTotal)
			}
			if b.FinalTotal != tt.final {
				t.Errorf("final total: expected %v, got %v", tt.final, b.FinalTotal)
			}
			if b.TotalGrade != tt.total {
				t.Errorf("total: expected %v, got %v", tt.total, b.TotalGrade)
			}
			if b.TotalGrade != b.MidtermTotal+b.FinalTotal {
				t.Errorf("total %v is not midterm+final %v", b.TotalGrade, b.MidtermTotal+b.FinalTotal)
			}
			if b.LetterGrade != tt.letter {
				t.Errorf("letter: expected %s, got %s", tt.letter, b.LetterGrade)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	c := Components{MidtermTheory: 17.25, MidtermPractical: 9, FinalTheory: 31.5, FinalPractical: 12}
	first := Compute(c)
	for i := 0; i < 100; i++ {
		if got := Compute(c); got != first {
			t.Fatalf("iteration %d: expected %+v, got %+v", i, first, got)
		}
	}
}

func TestLetterFor_Boundaries(t *testing.T) {
	tests := []struct {
		total  float64
		letter string
	}{
		{100, LetterAPlus},
		{95, LetterAPlus},
		{94.99, LetterA},
		{90, LetterA},
		{85, LetterAMinus},
		{84.5, LetterBPlus},
		{80, LetterBPlus},
		{75, LetterB},
		{70, LetterBMinus},
		{65, LetterCPlus},
		{60, LetterC},
		{55, LetterCMinus},
		{50, LetterD},
		{49.99, LetterF},
		{0, LetterF},
	}

	for _, tt := range tests {
		if got := LetterFor(tt.total); got != tt.letter {
			t.Errorf("LetterFor(%v): expected %s, got %s", tt.total, tt.letter, got)
		}
	}
}

func TestLetterFor_Monotonic(t *testing.T) {
	order := map[string]int{LetterF: 0}
	for i, b := range bands {
		order[b.letter] = len(bands) - i
	}

	prev := order[LetterFor(0)]
	for total := 0.25; total <= 100; total += 0.25 {
		cur := order[LetterFor(total)]
		if cur < prev {
			t.Fatalf("band dropped at %v: %s", total, LetterFor(total))
		}
		prev = cur
	}
}

func TestRank(t *testing.T) {
	totals := []float64{95, 86, 86, 70}
	expected := []int{1, 2, 2, 4}

	for i, total := range totals {
		rank, count := Rank(total, totals)
		if rank != expected[i] {
			t.Errorf("Rank(%v): expected %d, got %d", total, expected[i], rank)
		}
		if count != 4 {
			t.Errorf("expected count 4, got %d", count)
		}
	}
}

func TestRank_SingleAndEmpty(t *testing.T) {
	rank, count := Rank(50, []float64{50})
	if rank != 1 || count != 1 {
		t.Errorf("single grade: expected 1/1, got %d/%d", rank, count)
	}

	rank, count = Rank(50, nil)
	if rank != 1 || count != 0 {
		t.Errorf("no grades: expected 1/0, got %d/%d", rank, count)
	}
}

func TestGradePoints(t *testing.T) {
	tests := map[string]float64{
		"A+": 4.0, "A": 3.7, "A-": 3.3,
		"B+": 3.0, "B": 2.7, "B-": 2.3,
		"C+": 2.0, "C": 1.7, "C-": 1.3,
		"D": 1.0, "F": 0, "": 0, "E": 0,
	}
	for letter, want := range tests {
		if got := GradePoints(letter); got != want {
			t.Errorf("GradePoints(%q): expected %v, got %v", letter, want, got)
		}
	}
}

func TestGPA(t *testing.T) {
	tests := []struct {
		name    string
		credits []Credit
		gpa     float64
		hours   int
	}{
		{"no grades", nil, 0, 0},
		{"zero credit hours", []Credit{{LetterA, 0}, {LetterB, 0}}, 0, 0},
		{"single subject", []Credit{{LetterAPlus, 3}}, 4.0, 3},
		{"weighted", []Credit{{LetterA, 3}, {LetterB, 4}}, 3.13, 7},
		{"failing counts hours", []Credit{{LetterAPlus, 3}, {LetterF, 3}}, 2.0, 6},
		{"unknown letter", []Credit{{"?", 2}, {LetterD, 2}}, 0.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gpa, hours := GPA(tt.credits)
			if gpa != tt.gpa {
				t.Errorf("gpa: expected %v, got %v", tt.gpa, gpa)
			}
			if hours != tt.hours {
				t.Errorf("hours: expected %d, got %d", tt.hours, hours)
			}
		})
	}
}

func TestStanding(t *testing.T) {
	tests := []struct {
		gpa  float64
		want string
	}{
		{4.0, "excellent"},
		{3.7, "excellent"},
		{3.69, "very good"},
		{3.0, "very good"},
		{2.5, "good"},
		{2.0, "acceptable"},
		{1.99, "weak"},
		{0, "weak"},
	}
	for _, tt := range tests {
		if got := Standing(tt.gpa); got != tt.want {
			t.Errorf("Standing(%v): expected %q, got %q", tt.gpa, tt.want, got)
		}
	}
}
