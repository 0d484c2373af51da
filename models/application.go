package models

import (
	"time"
)

// Application statuses. Transitions only move forward through
// applicationStatusFlow; SubmittedAt is set exactly once, on the
// DRAFT -> SUBMITTED transition.
const (
	ApplicationDraft       = "DRAFT"
	ApplicationSubmitted   = "SUBMITTED"
	ApplicationUnderReview = "UNDER_REVIEW"
	ApplicationOffer       = "OFFER"
	ApplicationRejected    = "REJECTED"
	ApplicationEnrolled    = "ENROLLED"
)

var applicationStatusFlow = map[string][]string{
	ApplicationDraft:       {ApplicationSubmitted},
	ApplicationSubmitted:   {ApplicationUnderReview, ApplicationRejected},
	ApplicationUnderReview: {ApplicationOffer, ApplicationRejected},
	ApplicationOffer:       {ApplicationEnrolled, ApplicationRejected},
	ApplicationRejected:    {},
	ApplicationEnrolled:    {},
}

// CanTransitionApplication reports whether an application may move from one
// status to another. Unknown statuses never transition.
func CanTransitionApplication(from, to string) bool {
	for _, next := range applicationStatusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PersonalInfo is the wizard's personal details step.
type PersonalInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Nationality string `json:"nationality"`
	PassportNo  string `json:"passport_no,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// ContactDetails is the wizard's contact step.
type ContactDetails struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
}

// EducationEntry is one prior school/degree in the academic history step.
type EducationEntry struct {
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	FieldNote   string  `json:"field_note,omitempty"`
	StartYear   int     `json:"start_year"`
	EndYear     int     `json:"end_year"`
	GPA         float64 `json:"gpa,omitempty"`
}

// EducationHistory is the wizard's academic history step.
type EducationHistory struct {
	Entries []EducationEntry `json:"entries"`
}

// Motivation is the wizard's motivation step.
type Motivation struct {
	Statement      string `json:"statement"`
	CareerGoals    string `json:"career_goals,omitempty"`
	HeardAboutFrom string `json:"heard_about_from,omitempty"`
}

// Application is one prospective student's attempt to apply to one course.
// The four step sub-documents are nullable JSON columns; a nil pointer
// means the step has not been completed yet.
type Application struct {
	ApplicationID    int               `gorm:"primaryKey;column:application_id" json:"application_id"`
	UserID           int               `gorm:"column:user_id" json:"user_id"`
	CourseID         int               `gorm:"column:course_id" json:"course_id"`
	Status           string            `gorm:"column:status" json:"status"`
	PersonalInfo     *PersonalInfo     `gorm:"column:personal_info;type:json;serializer:json" json:"personal_info"`
	ContactDetails   *ContactDetails   `gorm:"column:contact_details;type:json;serializer:json" json:"contact_details"`
	EducationHistory *EducationHistory `gorm:"column:education_history;type:json;serializer:json" json:"education_history"`
	Motivation       *Motivation       `gorm:"column:motivation;type:json;serializer:json" json:"motivation"`
	DecisionComment  string            `gorm:"column:decision_comment" json:"decision_comment,omitempty"`
	SubmittedAt      *time.Time        `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt         *time.Time        `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time        `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time        `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User      User                  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course    Course                `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Documents []ApplicationDocument `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// ReadyToSubmit reports whether the terminal submit action is permitted.
// Only the three core sub-documents gate submission; uploaded documents
// and the motivation step do not.
func (a *Application) ReadyToSubmit() bool {
	return a.PersonalInfo != nil && a.ContactDetails != nil && a.EducationHistory != nil
}
