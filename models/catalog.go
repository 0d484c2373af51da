package models

import (
	"time"
)

// Degree levels offered by courses.
const (
	LevelBachelor = "BACHELOR"
	LevelMaster   = "MASTER"
	LevelDoctoral = "DOCTORAL"
)

type School struct {
	SchoolID    int        `gorm:"primaryKey;column:school_id" json:"school_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Slug        string     `gorm:"column:slug;unique" json:"slug"`
	Description string     `gorm:"column:description" json:"description"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Departments []Department `gorm:"foreignKey:SchoolID" json:"departments,omitempty"`
}

type Department struct {
	DepartmentID int        `gorm:"primaryKey;column:department_id" json:"department_id"`
	SchoolID     int        `gorm:"column:school_id" json:"school_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Slug         string     `gorm:"column:slug;unique" json:"slug"`
	Description  string     `gorm:"column:description" json:"description"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	School  School   `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Courses []Course `gorm:"foreignKey:DepartmentID" json:"courses,omitempty"`
}

type Course struct {
	CourseID       int        `gorm:"primaryKey;column:course_id" json:"course_id"`
	DepartmentID   int        `gorm:"column:department_id" json:"department_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Slug           string     `gorm:"column:slug;unique" json:"slug"`
	Level          string     `gorm:"column:level" json:"level"` // BACHELOR, MASTER, DOCTORAL
	Description    string     `gorm:"column:description" json:"description"`
	DurationYears  int        `gorm:"column:duration_years" json:"duration_years"`
	TuitionPerYear float64    `gorm:"column:tuition_per_year" json:"tuition_per_year"`
	IntakeCapacity int        `gorm:"column:intake_capacity" json:"intake_capacity"`
	Status         string     `gorm:"column:status" json:"status"` // active, inactive
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName overrides
func (School) TableName() string {
	return "schools"
}

func (Department) TableName() string {
	return "departments"
}

func (Course) TableName() string {
	return "courses"
}
