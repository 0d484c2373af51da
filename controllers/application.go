package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"sykli-college-api/services"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Admission application statuses still open for the duplicate check.
var openApplicationStatuses = []string{
	models.ApplicationDraft,
	models.ApplicationSubmitted,
	models.ApplicationUnderReview,
	models.ApplicationOffer,
}

// GetApplications returns list of admission applications
func GetApplications(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var applications []models.Application
	query := config.DB.Preload("Course").Preload("Course.Department").
		Where("applications.delete_at IS NULL")

	// Applicants only see their own
	if roleID.(int) == models.RoleApplicant {
		query = query.Where("user_id = ?", userID)
	} else {
		query = query.Preload("User")
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if course := c.Query("course_id"); course != "" {
		query = query.Where("course_id = ?", course)
	}

	if err := query.Order("create_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetApplication returns single application by ID
func GetApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var application models.Application
	query := config.DB.Preload("User").Preload("Course").Preload("Documents").
		Where("application_id = ? AND applications.delete_at IS NULL", id)

	// Check ownership unless staff
	if roleID.(int) == models.RoleApplicant {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}

// CreateApplication starts a new draft application for a course
func CreateApplication(c *gin.Context) {
	type CreateApplicationRequest struct {
		CourseID int `json:"course_id" binding:"required"`
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	// Course must exist and accept applications
	var course models.Course
	if err := config.DB.Where("course_id = ? AND status = 'active' AND delete_at IS NULL", req.CourseID).
		First(&course).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course"})
		return
	}

	// One open application per user and course
	var existing int64
	if err := config.DB.Model(&models.Application{}).
		Where("user_id = ? AND course_id = ? AND status IN ? AND delete_at IS NULL",
			userID, req.CourseID, openApplicationStatuses).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing applications"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an open application for this course"})
		return
	}

	now := time.Now()
	application := models.Application{
		UserID:   userID.(int),
		CourseID: req.CourseID,
		Status:   models.ApplicationDraft,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	config.DB.Preload("Course").First(&application, application.ApplicationID)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application created successfully",
		"application": application,
	})
}

// findOwnDraft loads an application owned by the caller that is still in DRAFT.
func findOwnDraft(c *gin.Context, id string) (*models.Application, bool) {
	userID, _ := c.Get("userID")

	var application models.Application
	if err := config.DB.Where("application_id = ? AND user_id = ? AND delete_at IS NULL", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return nil, false
	}

	if application.Status != models.ApplicationDraft {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application has already been submitted"})
		return nil, false
	}

	return &application, true
}

func saveStep(c *gin.Context, application *models.Application) {
	now := time.Now()
	application.UpdateAt = &now
	if err := config.DB.Save(application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save step"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Step saved successfully"})
}

// SavePersonalInfo stores the personal details step
func SavePersonalInfo(c *gin.Context) {
	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}

	var info models.PersonalInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if info.FirstName == "" || info.LastName == "" || info.DateOfBirth == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First name, last name and date of birth are required"})
		return
	}

	application.PersonalInfo = &info
	saveStep(c, application)
}

// SaveContactDetails stores the contact step
func SaveContactDetails(c *gin.Context) {
	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}

	var details models.ContactDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if details.Email == "" || details.AddressLine == "" || details.Country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, address and country are required"})
		return
	}

	application.ContactDetails = &details
	saveStep(c, application)
}

// SaveEducationHistory stores the academic history step
func SaveEducationHistory(c *gin.Context) {
	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}

	var history models.EducationHistory
	if err := c.ShouldBindJSON(&history); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(history.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one education entry is required"})
		return
	}

	application.EducationHistory = &history
	saveStep(c, application)
}

// SaveMotivation stores the motivation step
func SaveMotivation(c *gin.Context) {
	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}

	var motivation models.Motivation
	if err := c.ShouldBindJSON(&motivation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if motivation.Statement == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivation statement is required"})
		return
	}

	application.Motivation = &motivation
	saveStep(c, application)
}

// GetApplicationProgress returns the derived wizard state. An optional
// ?step= query asks for a specific step; the response clamps it.
func GetApplicationProgress(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var application models.Application
	if err := config.DB.Where("application_id = ? AND user_id = ? AND delete_at IS NULL", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var documents []models.ApplicationDocument
	if err := config.DB.Where("application_id = ?", application.ApplicationID).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	requestedStep := 0
	if raw := c.Query("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step"})
			return
		}
		requestedStep = parsed
	}

	progress := services.ComputeWizardProgress(&application, documents, requestedStep)

	c.JSON(http.StatusOK, gin.H{
		"progress": progress,
	})
}

// SubmitApplication performs the terminal submit transition. The caller must
// attest explicitly; the three core sub-documents must be present. The
// status flip, submitted_at and update_at land in a single row update.
func SubmitApplication(c *gin.Context) {
	type SubmitRequest struct {
		Attested bool `json:"attested"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Attested {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must confirm that the provided information is accurate"})
		return
	}

	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}

	if !application.ReadyToSubmit() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Personal information, contact details and education history must be completed before submitting"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(application).
		Updates(map[string]interface{}{
			"status":       models.ApplicationSubmitted,
			"submitted_at": now,
			"update_at":    now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	application.Status = models.ApplicationSubmitted
	application.SubmittedAt = &now

	notifyApplicationSubmitted(application)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// DeleteApplication soft deletes a draft application
func DeleteApplication(c *gin.Context) {
	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}

	now := time.Now()
	application.DeleteAt = &now

	if err := config.DB.Save(application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// UpdateApplicationStatus advances a submitted application through the
// review workflow (staff/admin only). Transitions are forward-only; moving
// to ENROLLED also creates the student record.
func UpdateApplicationStatus(c *gin.Context) {
	id := c.Param("id")

	type StatusRequest struct {
		Status  string `json:"status" binding:"required"`
		Comment string `json:"comment"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if application.Status == models.ApplicationDraft {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application has not been submitted yet"})
		return
	}

	if !models.CanTransitionApplication(application.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot move application from %s to %s", application.Status, req.Status),
		})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&application).
			Updates(map[string]interface{}{
				"status":           req.Status,
				"decision_comment": req.Comment,
				"update_at":        now,
			}).Error; err != nil {
			return err
		}

		if req.Status == models.ApplicationEnrolled {
			student := models.Student{
				UserID:           application.UserID,
				CourseID:         application.CourseID,
				StudentNumber:    fmt.Sprintf("SYK-%d-%06d", now.Year(), application.ApplicationID),
				YearOfStudy:      1,
				EnrollmentStatus: models.EnrollmentActive,
				EnrolledAt:       &now,
				CreateAt:         &now,
				UpdateAt:         &now,
			}
			if err := tx.Create(&student).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application status"})
		return
	}

	application.Status = req.Status
	application.DecisionComment = req.Comment

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated",
		"application": application,
	})
}

// notifyApplicationSubmitted writes the in-app notification and fires the
// email and queue event without blocking or failing the request.
func notifyApplicationSubmitted(application *models.Application) {
	appID := uint(application.ApplicationID)
	notification := models.Notification{
		UserID:               uint(application.UserID),
		Title:                "Application submitted",
		Message:              "Your application has been received and will be reviewed by our admissions team.",
		Type:                 "success",
		RelatedApplicationID: &appID,
		CreateAt:             time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create submission notification: %v", err)
	}

	var user models.User
	if err := config.DB.First(&user, application.UserID).Error; err != nil {
		log.Printf("Warning: failed to load applicant for notification: %v", err)
		return
	}

	go func() {
		sendMailSafe([]string{user.Email}, "Application received",
			fmt.Sprintf("<p>Dear %s,</p><p>SYKLI College has received your application. You can follow its progress from your applicant dashboard.</p>", user.FirstName))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = services.PublishEvent(ctx, services.QueueApplicationSubmitted, services.ApplicationSubmittedEvent{
			ApplicationID: application.ApplicationID,
			UserID:        application.UserID,
			CourseID:      application.CourseID,
			SubmittedAt:   *application.SubmittedAt,
		})
	}()
}
