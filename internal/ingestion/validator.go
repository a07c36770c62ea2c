package ingestion

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

var (
	ErrFileRequired       = errors.New("file is required")
	ErrNotCSV             = errors.New("only CSV files are allowed")
	ErrInvalidContentType = errors.New("invalid file type, only CSV files are allowed")
	ErrTooManyFiles       = errors.New("too many files")
	ErrFileTooLarge       = errors.New("file is too large")
)

// allowedContentTypes lists what browsers and spreadsheet tools send for .csv files.
var allowedContentTypes = map[string]struct{}{
	"text/csv":                 {},
	"application/vnd.ms-excel": {},
}

// UploadLimits bounds a single upload. Zero values disable a limit.
type UploadLimits struct {
	MaxFiles     int
	MaxFileBytes int64
}

// ValidateBatch checks the number of files in one upload.
func ValidateBatch(count int, limits UploadLimits) error {
	if count == 0 {
		return ErrFileRequired
	}
	if limits.MaxFiles > 0 && count > limits.MaxFiles {
		return fmt.Errorf("%w: %d given, at most %d allowed", ErrTooManyFiles, count, limits.MaxFiles)
	}
	return nil
}

// ValidateUpload checks one uploaded file's metadata before it is read.
//
// Rules:
//   - size must be positive and within limits.MaxFileBytes
//   - the name must end in ".csv" (any case)
//   - contentType, when sent, must be text/csv or application/vnd.ms-excel;
//     parameters such as charset are ignored
func ValidateUpload(name string, size int64, contentType string, limits UploadLimits) error {
	if size <= 0 {
		return fmt.Errorf("%s: %w", name, ErrFileRequired)
	}
	if limits.MaxFileBytes > 0 && size > limits.MaxFileBytes {
		return fmt.Errorf("%s: %w: %d bytes, at most %d allowed", name, ErrFileTooLarge, size, limits.MaxFileBytes)
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return fmt.Errorf("%s: %w", name, ErrNotCSV)
	}
	if contentType == "" {
		return nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%s: %w", name, ErrInvalidContentType)
	}
	if _, ok := allowedContentTypes[strings.ToLower(mt)]; !ok {
		return fmt.Errorf("%s: %w", name, ErrInvalidContentType)
	}
	return nil
}
