package services

import (
	"testing"

	"sykli-college-api/models"
)

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name    string
		student models.Student
		want    int
	}{
		{"first year, nearby, no need", models.Student{YearOfStudy: 1, HomeDistanceKm: 2}, 0},
		{"first year, mid distance", models.Student{YearOfStudy: 1, HomeDistanceKm: 75}, 20},
		{"second year with need", models.Student{YearOfStudy: 2, HomeDistanceKm: 5, FinancialNeed: true}, 40},
		{"standing capped at four completed years", models.Student{YearOfStudy: 8, HomeDistanceKm: 0}, 40},
		{"far away senior with need hits the ceiling", models.Student{YearOfStudy: 6, HomeDistanceKm: 300, FinancialNeed: true}, 100},
		{"zero year of study does not go negative", models.Student{YearOfStudy: 0, HomeDistanceKm: 12}, 10},
	}

	for _, tt := range tests {
		if got := PriorityScore(&tt.student); got != tt.want {
			t.Errorf("%s: PriorityScore() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPriorityScoreDeterministic(t *testing.T) {
	s := models.Student{YearOfStudy: 3, HomeDistanceKm: 120, FinancialNeed: true}
	first := PriorityScore(&s)
	for i := 0; i < 5; i++ {
		if got := PriorityScore(&s); got != first {
			t.Fatalf("PriorityScore not deterministic: %d then %d", first, got)
		}
	}
}
