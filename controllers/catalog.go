package controllers

import (
	"net/http"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"sykli-college-api/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// GetSchools returns all schools with their departments
func GetSchools(c *gin.Context) {
	var schools []models.School
	if err := config.DB.Preload("Departments", "delete_at IS NULL").
		Where("delete_at IS NULL").
		Order("name").Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schools"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schools": schools,
	})
}

// GetDepartment returns a department by slug with its courses
func GetDepartment(c *gin.Context) {
	slug := c.Param("slug")

	var department models.Department
	if err := config.DB.Preload("School").
		Preload("Courses", "status = 'active' AND delete_at IS NULL").
		Where("slug = ? AND delete_at IS NULL", slug).
		First(&department).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"department": department,
	})
}

// GetCourses returns active courses, optionally filtered
func GetCourses(c *gin.Context) {
	var courses []models.Course
	query := config.DB.Preload("Department").Preload("Department.School").
		Where("status = 'active' AND courses.delete_at IS NULL")

	if department := c.Query("department_id"); department != "" {
		query = query.Where("department_id = ?", department)
	}

	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}

	if err := query.Order("name").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourse returns a single course by slug
func GetCourse(c *gin.Context) {
	slug := c.Param("slug")

	var course models.Course
	if err := config.DB.Preload("Department").Preload("Department.School").
		Where("slug = ? AND delete_at IS NULL", slug).
		First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"course": course,
	})
}

// CreateCourse creates a new course (staff/admin only)
func CreateCourse(c *gin.Context) {
	type CreateCourseRequest struct {
		DepartmentID   int     `json:"department_id" binding:"required"`
		Name           string  `json:"name" binding:"required"`
		Slug           string  `json:"slug" binding:"required"`
		Level          string  `json:"level" binding:"required,oneof=BACHELOR MASTER DOCTORAL"`
		Description    string  `json:"description"`
		DurationYears  int     `json:"duration_years" binding:"required,gt=0"`
		TuitionPerYear float64 `json:"tuition_per_year" binding:"gte=0"`
		IntakeCapacity int     `json:"intake_capacity" binding:"required,gt=0"`
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	var department models.Department
	if err := config.DB.Where("department_id = ? AND delete_at IS NULL", req.DepartmentID).
		First(&department).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department"})
		return
	}

	now := time.Now()
	course := models.Course{
		DepartmentID:   req.DepartmentID,
		Name:           req.Name,
		Slug:           req.Slug,
		Level:          req.Level,
		Description:    req.Description,
		DurationYears:  req.DurationYears,
		TuitionPerYear: req.TuitionPerYear,
		IntakeCapacity: req.IntakeCapacity,
		Status:         "active",
		CreateAt:       &now,
		UpdateAt:       &now,
	}

	if err := config.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Course created successfully",
		"course":  course,
	})
}

// UpdateCourse updates course fields (staff/admin only)
func UpdateCourse(c *gin.Context) {
	id := c.Param("id")

	type UpdateCourseRequest struct {
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		TuitionPerYear float64 `json:"tuition_per_year"`
		IntakeCapacity int     `json:"intake_capacity"`
		Status         string  `json:"status"`
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course models.Course
	if err := config.DB.Where("course_id = ? AND delete_at IS NULL", id).
		First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	now := time.Now()
	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.TuitionPerYear > 0 {
		course.TuitionPerYear = req.TuitionPerYear
	}
	if req.IntakeCapacity > 0 {
		course.IntakeCapacity = req.IntakeCapacity
	}
	if req.Status == "active" || req.Status == "inactive" {
		course.Status = req.Status
	}
	course.UpdateAt = &now

	if err := config.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// DeleteCourse soft deletes a course (admin only). Courses with
// applications are deactivated instead of removed.
func DeleteCourse(c *gin.Context) {
	id := c.Param("id")

	var course models.Course
	if err := config.DB.Where("course_id = ? AND delete_at IS NULL", id).
		First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var applicationCount int64
	if err := config.DB.Model(&models.Application{}).
		Where("course_id = ? AND delete_at IS NULL", course.CourseID).
		Count(&applicationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check applications"})
		return
	}

	now := time.Now()
	if applicationCount > 0 {
		course.Status = "inactive"
		course.UpdateAt = &now
		if err := config.DB.Save(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate course"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Course has applications and was deactivated instead"})
		return
	}

	course.DeleteAt = &now
	if err := config.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}
