package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sykli-college-api/models"
)

// UploadBasePath returns the root of the uploaded-file tree.
func UploadBasePath() string {
	if p := os.Getenv("UPLOAD_PATH"); p != "" {
		return p
	}
	return "./uploads"
}

// EnsureUserFolder creates (if needed) and returns the per-user folder that
// holds that user's uploaded documents.
func EnsureUserFolder(user models.User) (string, error) {
	name := fmt.Sprintf("user_%d", user.UserID)
	path := filepath.Join(UploadBasePath(), name)
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create user folder: %w", err)
	}
	return path, nil
}

// EnsureApplicationFolder creates the per-application subfolder under the
// user folder.
func EnsureApplicationFolder(userFolder string, applicationID int) (string, error) {
	path := filepath.Join(userFolder, fmt.Sprintf("application_%d", applicationID))
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create application folder: %w", err)
	}
	return path, nil
}

// StoredFilename builds a collision-free stored name keeping the original
// extension, e.g. "PASSPORT_3f0e...-.pdf".
func StoredFilename(documentType, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s%s", documentType, uuid.NewString(), ext)
}
