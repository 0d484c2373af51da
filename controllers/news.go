package controllers

import (
	"net/http"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"sykli-college-api/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// GetNewsPosts returns visible news posts, newest first
func GetNewsPosts(c *gin.Context) {
	now := time.Now()

	var posts []models.NewsPost
	if err := config.DB.
		Where("status = 'active' AND delete_at IS NULL").
		Where("published_at IS NULL OR published_at <= ?", now).
		Where("expired_at IS NULL OR expired_at > ?", now).
		Order("published_at DESC").
		Limit(50).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

// GetNewsPost returns one news post by slug
func GetNewsPost(c *gin.Context) {
	slug := c.Param("slug")

	var post models.NewsPost
	if err := config.DB.Where("slug = ? AND delete_at IS NULL", slug).
		First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News post not found"})
		return
	}

	if !post.IsVisible(time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "News post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreateNewsPost creates a news post (staff/admin only)
func CreateNewsPost(c *gin.Context) {
	type CreateNewsRequest struct {
		Title       string     `json:"title" binding:"required"`
		Slug        string     `json:"slug" binding:"required"`
		Summary     string     `json:"summary"`
		Body        string     `json:"body" binding:"required"`
		PublishedAt *time.Time `json:"published_at"`
		ExpiredAt   *time.Time `json:"expired_at"`
	}

	var req CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()
	publishedAt := req.PublishedAt
	if publishedAt == nil {
		publishedAt = &now
	}

	post := models.NewsPost{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Body:        req.Body,
		Status:      "active",
		PublishedAt: publishedAt,
		ExpiredAt:   req.ExpiredAt,
		CreatedBy:   userID.(int),
		CreateAt:    now,
		UpdateAt:    now,
	}

	if err := config.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "News post created successfully",
		"post":    post,
	})
}

// DeleteNewsPost soft deletes a news post (staff/admin only)
func DeleteNewsPost(c *gin.Context) {
	id := c.Param("id")

	var post models.NewsPost
	if err := config.DB.Where("news_post_id = ? AND delete_at IS NULL", id).
		First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News post not found"})
		return
	}

	now := time.Now()
	post.DeleteAt = &now
	post.UpdateAt = now

	if err := config.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete news post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News post deleted successfully"})
}

// GetContentPage returns a legal/informational page by slug
func GetContentPage(c *gin.Context) {
	slug := c.Param("slug")

	var page models.ContentPage
	if err := config.DB.Where("slug = ?", slug).First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// UpsertContentPage creates or replaces a content page (admin only)
func UpsertContentPage(c *gin.Context) {
	type ContentPageRequest struct {
		Slug  string `json:"slug" binding:"required"`
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}

	var req ContentPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	now := time.Now()
	var page models.ContentPage
	err := config.DB.Where("slug = ?", req.Slug).First(&page).Error
	if err != nil {
		page = models.ContentPage{
			Slug:     req.Slug,
			Title:    req.Title,
			Body:     req.Body,
			CreateAt: &now,
			UpdateAt: &now,
		}
		if err := config.DB.Create(&page).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
			return
		}
	} else {
		page.Title = req.Title
		page.Body = req.Body
		page.UpdateAt = &now
		if err := config.DB.Save(&page).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Page saved successfully",
		"page":    page,
	})
}
