package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// MaxUploadSize bounds a single uploaded file
const MaxUploadSize = 10 << 20

// FileStorage defines the interface for blob storage operations
type FileStorage interface {
	// SaveFile stores the upload under folder and returns its reference
	SaveFile(ctx context.Context, fileHeader *multipart.FileHeader, folder models.FileFolder) (string, error)

	// DeleteFile removes a stored blob by reference. Missing blobs are not an error.
	DeleteFile(ctx context.Context, ref string) error
}

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

var documentExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".odt": true, ".rtf": true, ".txt": true}

// ValidateUpload checks size and extension of an upload destined for folder.
// field names the form part in the returned validation error.
func ValidateUpload(fileHeader *multipart.FileHeader, folder models.FileFolder, field string) error {
	if fileHeader == nil {
		return nil
	}
	if fileHeader.Size > MaxUploadSize {
		return apperrors.NewValidationError(map[string]string{
			field: fmt.Sprintf("file exceeds the maximum size of %d MB", MaxUploadSize>>20),
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := imageExtensions
	kind := "an image"
	if folder == models.FolderResumes {
		allowed = documentExtensions
		kind = "a document"
	}
	if !allowed[ext] {
		return apperrors.NewValidationError(map[string]string{
			field: fmt.Sprintf("upload a valid file: %q is not %s", fileHeader.Filename, kind),
		})
	}
	return nil
}
