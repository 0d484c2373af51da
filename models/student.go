package models

import (
	"time"
)

// Enrollment statuses for students.
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentOnLeave   = "ON_LEAVE"
	EnrollmentGraduated = "GRADUATED"
	EnrollmentWithdrawn = "WITHDRAWN"
)

// Student is the enrolled-student record created when an admission
// application reaches ENROLLED. Housing eligibility checks run against it.
type Student struct {
	StudentID        int        `gorm:"primaryKey;column:student_id" json:"student_id"`
	UserID           int        `gorm:"column:user_id" json:"user_id"`
	CourseID         int        `gorm:"column:course_id" json:"course_id"`
	StudentNumber    string     `gorm:"column:student_number;unique" json:"student_number"`
	YearOfStudy      int        `gorm:"column:year_of_study" json:"year_of_study"`
	EnrollmentStatus string     `gorm:"column:enrollment_status" json:"enrollment_status"`
	FinancialNeed    bool       `gorm:"column:financial_need" json:"financial_need"`
	HomeDistanceKm   float64    `gorm:"column:home_distance_km" json:"home_distance_km"`
	EnrolledAt       *time.Time `gorm:"column:enrolled_at" json:"enrolled_at"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
