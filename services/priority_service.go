package services

import (
	"sykli-college-api/models"
)

// Housing priority scoring. Deterministic rule: completed years of study
// earn 10 points each (capped at 40), documented financial need adds 30,
// and distance from campus adds a band bonus. Scores are clamped to
// [0, 100]; ties are broken downstream by application submission time.
const (
	priorityPerYear       = 10
	priorityStandingCap   = 40
	priorityFinancialNeed = 30
	priorityScoreMax      = 100
)

func distanceBandPoints(km float64) int {
	switch {
	case km >= 200:
		return 30
	case km >= 50:
		return 20
	case km >= 10:
		return 10
	default:
		return 0
	}
}

// PriorityScore computes the housing priority score for a student.
func PriorityScore(student *models.Student) int {
	standing := (student.YearOfStudy - 1) * priorityPerYear
	if standing < 0 {
		standing = 0
	}
	if standing > priorityStandingCap {
		standing = priorityStandingCap
	}

	score := standing + distanceBandPoints(student.HomeDistanceKm)
	if student.FinancialNeed {
		score += priorityFinancialNeed
	}

	if score > priorityScoreMax {
		score = priorityScoreMax
	}
	return score
}
