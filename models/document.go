package models

import (
	"time"
)

// Document type codes accepted on an application.
const (
	DocPassport         = "PASSPORT"
	DocTranscript       = "TRANSCRIPT"
	DocCertificate      = "CERTIFICATE"
	DocCV               = "CV"
	DocMotivationLetter = "MOTIVATION_LETTER"
	DocLanguageCert     = "LANGUAGE_CERT"
)

// RequiredDocumentTypes is the set that gates the wizard's documents step.
// MOTIVATION_LETTER and LANGUAGE_CERT are accepted uploads but never gate
// the step.
var RequiredDocumentTypes = []string{DocPassport, DocTranscript, DocCertificate, DocCV}

// AllDocumentTypes lists every accepted code, in display order.
var AllDocumentTypes = []string{
	DocPassport, DocTranscript, DocCertificate, DocCV,
	DocMotivationLetter, DocLanguageCert,
}

// IsDocumentType reports whether code is an accepted document type.
func IsDocumentType(code string) bool {
	for _, t := range AllDocumentTypes {
		if t == code {
			return true
		}
	}
	return false
}

// ApplicationDocument is one uploaded file attached to an application.
type ApplicationDocument struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	ApplicationID    int        `gorm:"column:application_id" json:"application_id"`
	DocumentType     string     `gorm:"column:document_type" json:"document_type"`
	UploadedBy       int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	StoredPath       string     `gorm:"column:stored_path" json:"stored_path"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}

// DocumentType is the lookup row behind the document types endpoint and the
// seeder. The gating required-set lives in RequiredDocumentTypes; the table
// is informational.
type DocumentType struct {
	DocumentTypeID int        `gorm:"primaryKey;column:document_type_id" json:"document_type_id"`
	Code           string     `gorm:"column:code;unique" json:"code"`
	Name           string     `gorm:"column:name" json:"name"`
	Required       bool       `gorm:"column:required" json:"required"`
	DisplayOrder   int        `gorm:"column:display_order" json:"display_order"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (ApplicationDocument) TableName() string {
	return "application_documents"
}

func (DocumentType) TableName() string {
	return "document_types"
}
