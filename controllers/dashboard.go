package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	dashboardCacheKey = "dashboard:staff_stats"
	dashboardCacheTTL = 60 * time.Second
)

// GetDashboardStats returns aggregate counts for staff and admins. Results
// are cached in Redis for a minute; a nil client falls through to live
// queries.
func GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	if config.Redis != nil {
		if raw, err := config.Redis.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var cached map[string]interface{}
			if json.Unmarshal([]byte(raw), &cached) == nil {
				c.JSON(http.StatusOK, gin.H{"stats": cached, "cached": true})
				return
			}
		}
	}

	stats := buildStaffDashboard()

	if config.Redis != nil {
		if raw, err := json.Marshal(stats); err == nil {
			// Best effort; a cache write failure is not worth surfacing.
			_ = config.Redis.Set(context.Background(), dashboardCacheKey, raw, dashboardCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func buildStaffDashboard() map[string]interface{} {
	stats := make(map[string]interface{})

	// Admissions: applications by status
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	config.DB.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("delete_at IS NULL").
		Group("status").
		Scan(&byStatus)
	stats["applications_by_status"] = byStatus

	var totalApplications int64
	config.DB.Model(&models.Application{}).Where("delete_at IS NULL").Count(&totalApplications)
	stats["total_applications"] = totalApplications

	// Applications per course
	type courseCount struct {
		CourseID int    `json:"course_id"`
		Name     string `json:"name"`
		Count    int64  `json:"count"`
	}
	var byCourse []courseCount
	config.DB.Model(&models.Application{}).
		Select("applications.course_id, courses.name, COUNT(*) as count").
		Joins("JOIN courses ON courses.course_id = applications.course_id").
		Where("applications.delete_at IS NULL").
		Group("applications.course_id, courses.name").
		Order("count DESC").
		Limit(10).
		Scan(&byCourse)
	stats["applications_by_course"] = byCourse

	// Recent submissions
	var recent []models.Application
	config.DB.Preload("Course").
		Where("status = ? AND delete_at IS NULL", models.ApplicationSubmitted).
		Order("submitted_at DESC").
		Limit(10).
		Find(&recent)
	stats["recent_submissions"] = recent

	// Students
	var activeStudents int64
	config.DB.Model(&models.Student{}).
		Where("enrollment_status = ? AND delete_at IS NULL", models.EnrollmentActive).
		Count(&activeStudents)
	stats["active_students"] = activeStudents

	// Housing occupancy
	var availableRooms, occupiedRooms int64
	config.DB.Model(&models.HousingRoom{}).Where("status = ?", models.RoomAvailable).Count(&availableRooms)
	config.DB.Model(&models.HousingRoom{}).Where("status = ?", models.RoomOccupied).Count(&occupiedRooms)
	stats["housing"] = map[string]interface{}{
		"available_rooms": availableRooms,
		"occupied_rooms":  occupiedRooms,
	}

	var pendingHousing, approvedHousing int64
	config.DB.Model(&models.HousingApplication{}).Where("status = ?", models.HousingPending).Count(&pendingHousing)
	config.DB.Model(&models.HousingApplication{}).Where("status = ?", models.HousingApproved).Count(&approvedHousing)
	stats["housing_applications"] = map[string]interface{}{
		"pending":  pendingHousing,
		"approved": approvedHousing,
	}

	stats["generated_at"] = time.Now().Format(time.RFC3339)
	return stats
}

// GetApplicantDashboard returns the applicant's own summary
func GetApplicantDashboard(c *gin.Context) {
	userID, _ := c.Get("userID")

	stats := make(map[string]interface{})

	var applications []models.Application
	config.DB.Preload("Course").
		Where("user_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC").
		Find(&applications)
	stats["applications"] = applications

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)
	stats["unread_notifications"] = unread

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
