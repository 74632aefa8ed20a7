// Package ocr is the text-extraction boundary: it turns scanned document
// bytes into plain text. The rest of the pipeline only depends on the
// Engine interface.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndelorme/conforma/internal/model"
)

// ErrNoText reports a document from which no text could be extracted.
var ErrNoText = errors.New("no extractable text")

// DependencyError reports a missing or unusable OCR system dependency
// (typically the tesseract installation).
type DependencyError struct {
	Cause error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("ocr dependency unavailable: %v", e.Cause)
}

func (e *DependencyError) Unwrap() error { return e.Cause }

// Engine extracts plain text from document bytes.
type Engine interface {
	ExtractText(ctx context.Context, data []byte, cfg model.OCRConfig) (string, error)
}

// ValidateConfig checks parameter ranges before any engine call. Bad
// parameters are a ConfigurationError, reported up front.
func ValidateConfig(cfg model.OCRConfig) error {
	if cfg.DPI < 150 || cfg.DPI > 600 {
		return &model.ConfigurationError{Field: "ocr.dpi", Message: fmt.Sprintf("%d outside [150,600]", cfg.DPI)}
	}
	if cfg.Contrast < 1.0 || cfg.Contrast > 3.0 {
		return &model.ConfigurationError{Field: "ocr.contrast", Message: fmt.Sprintf("%g outside [1.0,3.0]", cfg.Contrast)}
	}
	if cfg.Sharpness <= 0 {
		return &model.ConfigurationError{Field: "ocr.sharpness", Message: "must be positive"}
	}
	if cfg.Brightness <= 0 {
		return &model.ConfigurationError{Field: "ocr.brightness", Message: "must be positive"}
	}
	if cfg.Threshold < 0 || cfg.Threshold > 255 {
		return &model.ConfigurationError{Field: "ocr.threshold", Message: fmt.Sprintf("%d outside [0,255]", cfg.Threshold)}
	}
	if cfg.Lang == "" {
		return &model.ConfigurationError{Field: "ocr.lang", Message: "must not be empty"}
	}
	return nil
}
