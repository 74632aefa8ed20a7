package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ndelorme/conforma/internal/model"
)

// TesseractEngine runs OCR through the local tesseract installation.
// PDFs are rasterized page by page before recognition; single images
// pass through the preprocessing chain directly.
type TesseractEngine struct{}

// NewTesseractEngine creates a tesseract-backed engine.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// ExtractText recognizes text in the document bytes. A client is
// created per call; gosseract clients are not safe for concurrent use
// and batch workers each run their own extraction.
func (e *TesseractEngine) ExtractText(ctx context.Context, data []byte, cfg model.OCRConfig) (string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pages, err := pageImages(data, cfg)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(cfg.Lang); err != nil {
		return "", &DependencyError{Cause: fmt.Errorf("set language %q: %w", cfg.Lang, err)}
	}
	if err := client.SetVariable("user_defined_dpi", strconv.Itoa(cfg.DPI)); err != nil {
		return "", fmt.Errorf("set dpi: %w", err)
	}

	var parts []string
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := client.SetImageFromBytes(page); err != nil {
			return "", fmt.Errorf("load page %d: %w", i+1, err)
		}
		pageText, err := client.Text()
		if err != nil {
			return "", &DependencyError{Cause: err}
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	text := strings.Join(parts, "\n\n")
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// pageImages turns document bytes into one encoded image per page.
func pageImages(data []byte, cfg model.OCRConfig) ([][]byte, error) {
	if isPDF(data) {
		imgs, err := renderPDFPages(data, cfg.DPI)
		if err != nil {
			return nil, err
		}
		pages := make([][]byte, 0, len(imgs))
		for n, img := range imgs {
			if cfg.Preprocess {
				img = preprocess(img, cfg)
			}
			encoded, err := encodePNG(img)
			if err != nil {
				return nil, fmt.Errorf("encode pdf page %d: %w", n+1, err)
			}
			pages = append(pages, encoded)
		}
		return pages, nil
	}

	if !cfg.Preprocess {
		return [][]byte{data}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	encoded, err := encodePNG(preprocess(img, cfg))
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return [][]byte{encoded}, nil
}
