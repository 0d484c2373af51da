package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"sykli-college-api/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxDocumentSize = 10 * 1024 * 1024 // 10MB

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// UploadDocument attaches a file to a draft application. Uploading a type
// that already exists replaces the previous document and removes its file.
func UploadDocument(c *gin.Context) {
	application, ok := findOwnDraft(c, c.Param("id"))
	if !ok {
		return
	}
	userID, _ := c.Get("userID")

	documentType := c.PostForm("document_type")
	if !models.IsDocumentType(documentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document type"})
		return
	}

	// Get uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Validate file size
	if file.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	// Validate file type
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	// Get user info
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found"})
		return
	}

	userFolder, err := utils.EnsureUserFolder(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user directory"})
		return
	}

	applicationFolder, err := utils.EnsureApplicationFolder(userFolder, application.ApplicationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application directory"})
		return
	}

	storedName := utils.StoredFilename(documentType, file.Filename)
	fullPath := filepath.Join(applicationFolder, storedName)

	// Save file
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	document := models.ApplicationDocument{
		ApplicationID:    application.ApplicationID,
		DocumentType:     documentType,
		UploadedBy:       userID.(int),
		OriginalFilename: file.Filename,
		StoredPath:       fullPath,
		FileSize:         file.Size,
		MimeType:         file.Header.Get("Content-Type"),
		UploadedAt:       &now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	// Replace-on-upload: drop any previous document of the same type, file
	// included, then insert the new row.
	var replaced []models.ApplicationDocument
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ? AND document_type = ?",
			application.ApplicationID, documentType).Find(&replaced).Error; err != nil {
			return err
		}
		if len(replaced) > 0 {
			if err := tx.Delete(&models.ApplicationDocument{},
				"application_id = ? AND document_type = ?",
				application.ApplicationID, documentType).Error; err != nil {
				return err
			}
		}
		return tx.Create(&document).Error
	})
	if err != nil {
		// Delete uploaded file if database save fails
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	for _, old := range replaced {
		if err := os.Remove(old.StoredPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove replaced document file %s: %v", old.StoredPath, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"document": document,
	})
}

// GetDocuments returns all documents for an application
func GetDocuments(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var application models.Application
	query := config.DB.Where("application_id = ? AND delete_at IS NULL", id)
	if roleID.(int) == models.RoleApplicant {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var documents []models.ApplicationDocument
	if err := config.DB.Where("application_id = ?", application.ApplicationID).
		Order("document_type").Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}

// DownloadDocument streams a stored document to its owner or staff
func DownloadDocument(c *gin.Context) {
	documentID := c.Param("document_id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var document models.ApplicationDocument
	if err := config.DB.Preload("Application").
		Where("document_id = ?", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if roleID.(int) == models.RoleApplicant && document.Application.UserID != userID.(int) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if _, err := os.Stat(document.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}

	c.FileAttachment(document.StoredPath, document.OriginalFilename)
}

// DeleteDocument removes a document row and its backing file
func DeleteDocument(c *gin.Context) {
	documentID := c.Param("document_id")
	userID, _ := c.Get("userID")

	var document models.ApplicationDocument
	if err := config.DB.Preload("Application").
		Where("document_id = ?", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if document.Application.UserID != userID.(int) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if document.Application.Status != models.ApplicationDraft {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove documents from a submitted application"})
		return
	}

	if err := config.DB.Delete(&models.ApplicationDocument{}, "document_id = ?", document.DocumentID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	if err := os.Remove(document.StoredPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove document file %s: %v", document.StoredPath, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// GetDocumentTypes returns the accepted document types
func GetDocumentTypes(c *gin.Context) {
	var types []models.DocumentType
	if err := config.DB.Order("display_order").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_types": types,
	})
}
