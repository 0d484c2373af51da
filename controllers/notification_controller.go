package controllers

import (
	"log"
	"net/http"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"time"

	"github.com/gin-gonic/gin"
)

// sendMailSafe sends an email and only logs failures. Notification delivery
// must never fail the operation that triggered it.
func sendMailSafe(to []string, subject, html string) {
	if err := config.SendMail(to, subject, html); err != nil {
		log.Printf("Warning: failed to send mail %q to %v: %v", subject, to, err)
	}
}

// GetNotifications returns the caller's notifications, newest first
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", userID).
		Order("create_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	now := time.Now()
	res := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "update_at": now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification as read
func MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	now := time.Now()
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
