package controllers

import (
	"context"
	"errors"
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

// housingErrorStatus maps housing business-rule failures to HTTP codes.
func housingErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrStudentNotActive),
		errors.Is(err, services.ErrApplicationNotPending),
		errors.Is(err, services.ErrApplicationNotApproved),
		errors.Is(err, services.ErrRoomNotAvailable):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateApplication),
		errors.Is(err, services.ErrDepositAlreadyPaid),
		errors.Is(err, services.ErrRoomHasAssignments),
		errors.Is(err, services.ErrBuildingHasRooms):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func findOwnStudent(c *gin.Context) (*models.Student, bool) {
	userID, _ := c.Get("userID")

	var student models.Student
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&student).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only enrolled students can use housing services"})
		return nil, false
	}
	return &student, true
}

// SubmitHousingApplication creates a housing application for the semester
func SubmitHousingApplication(c *gin.Context) {
	type SubmitHousingRequest struct {
		SemesterID          int     `json:"semester_id" binding:"required"`
		PreferredBuildingID *int    `json:"preferred_building_id"`
		MoveInDate          string  `json:"move_in_date" binding:"required"`
		MoveOutDate         string  `json:"move_out_date" binding:"required"`
		Notes               *string `json:"notes"`
	}

	var req SubmitHousingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, ok := findOwnStudent(c)
	if !ok {
		return
	}

	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move-in date"})
		return
	}
	moveOut, err := time.Parse("2006-01-02", req.MoveOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move-out date"})
		return
	}
	if !moveOut.After(moveIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Move-out date must be after move-in date"})
		return
	}

	var semester models.HousingSemester
	if err := config.DB.Where("semester_id = ?", req.SemesterID).First(&semester).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester"})
		return
	}

	input := services.HousingApplicationInput{
		SemesterID:          req.SemesterID,
		PreferredBuildingID: req.PreferredBuildingID,
		MoveInDate:          moveIn,
		MoveOutDate:         moveOut,
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	application, err := services.SubmitHousingApplication(config.DB, student, input)
	if err != nil {
		c.JSON(housingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	notifyHousingStatus(student, application, services.QueueHousingSubmitted,
		"Housing application received",
		fmt.Sprintf("Your housing application for %s has been received and is pending.", semester.Name))

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Housing application submitted successfully",
		"application": application,
	})
}

// GetMyHousingApplications lists the caller's housing applications
func GetMyHousingApplications(c *gin.Context) {
	student, ok := findOwnStudent(c)
	if !ok {
		return
	}

	var applications []models.HousingApplication
	if err := config.DB.Preload("Semester").
		Where("student_id = ?", student.StudentID).
		Order("create_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch housing applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetHousingApplications lists housing applications for staff, sorted by
// priority for allocation work.
func GetHousingApplications(c *gin.Context) {
	var applications []models.HousingApplication
	query := config.DB.Preload("Student").Preload("Student.User").Preload("Semester")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if semester := c.Query("semester_id"); semester != "" {
		query = query.Where("semester_id = ?", semester)
	}

	if err := query.Order("priority_score DESC, create_at ASC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch housing applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// ProcessHousingDeposit simulates the deposit payment and approves the
// application.
func ProcessHousingDeposit(c *gin.Context) {
	type DepositRequest struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, ok := findOwnStudent(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	// Application must exist and belong to the caller
	var application models.HousingApplication
	if err := config.DB.Where("housing_application_id = ? AND student_id = ?", id, student.StudentID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Housing application not found"})
		return
	}

	userID, _ := c.Get("userID")
	deposit, err := services.ProcessDeposit(config.DB, application.HousingApplicationID, userID.(int), req.Amount)
	if err != nil {
		c.JSON(housingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	application.Status = models.HousingApproved
	notifyHousingStatus(student, &application, services.QueueHousingApproved,
		"Housing application approved",
		"Your deposit was received and your housing application has been approved.")

	c.JSON(http.StatusOK, gin.H{
		"message":     "Deposit processed, application approved",
		"deposit":     deposit,
		"application": application,
	})
}

// RejectHousingApplication rejects a pending application (staff only)
func RejectHousingApplication(c *gin.Context) {
	type RejectRequest struct {
		Reason string `json:"reason" binding:"required"`
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	userID, _ := c.Get("userID")
	if err := services.RejectHousingApplication(config.DB, id, userID.(int), req.Reason); err != nil {
		c.JSON(housingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Housing application rejected"})
}

// DeleteHousingApplication removes an application and all dependent rows
// (staff only). Occupied rooms are freed as part of the cascade.
func DeleteHousingApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	if err := services.DeleteHousingApplicationCascade(config.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Housing application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete housing application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Housing application and dependent records deleted"})
}

// GetHousingSemesters lists semesters open for applications
func GetHousingSemesters(c *gin.Context) {
	var semesters []models.HousingSemester
	if err := config.DB.Order("starts_on DESC").Find(&semesters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch semesters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"semesters": semesters})
}

// notifyHousingStatus writes an in-app notification and fires the email and
// queue event best-effort.
func notifyHousingStatus(student *models.Student, application *models.HousingApplication, queue, title, message string) {
	notification := models.Notification{
		UserID:   uint(student.UserID),
		Title:    title,
		Message:  message,
		Type:     "info",
		CreateAt: time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create housing notification: %v", err)
	}

	var user models.User
	if err := config.DB.First(&user, student.UserID).Error; err != nil {
		log.Printf("Warning: failed to load student user for notification: %v", err)
		return
	}

	go func() {
		sendMailSafe([]string{user.Email}, title, fmt.Sprintf("<p>Dear %s,</p><p>%s</p>", user.FirstName, message))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = services.PublishEvent(ctx, queue, services.HousingEvent{
			HousingApplicationID: application.HousingApplicationID,
			StudentID:            application.StudentID,
			SemesterID:           application.SemesterID,
			Status:               application.Status,
		})
	}()
}
