// Package cache stores OCR output so re-analyzing a document skips the
// expensive tesseract pass. Keys derive from the document bytes and the
// OCR parameters, since different preprocessing yields different text.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ndelorme/conforma/internal/model"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the document bytes and the OCR config
// that would process them.
func Key(document []byte, cfg model.OCRConfig) string {
	h := sha256.New()
	h.Write(document)
	fmt.Fprintf(h, "|%d|%g|%g|%g|%d|%s|%t",
		cfg.DPI, cfg.Contrast, cfg.Sharpness, cfg.Brightness, cfg.Threshold, cfg.Lang, cfg.Preprocess)
	return "conforma:v1:" + hex.EncodeToString(h.Sum(nil))
}
