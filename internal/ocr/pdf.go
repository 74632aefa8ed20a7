package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

var pdfMagic = []byte("%PDF-")

// isPDF reports whether the document bytes are a PDF rather than a
// plain image.
func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// renderPDFPages rasterizes every page of a PDF at the given DPI.
// Scanned datasheets are usually one full-page image per page; rendering
// flattens them into exactly what tesseract consumes.
func renderPDFPages(data []byte, dpi int) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = doc.Close() }()

	pages := make([]image.Image, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("render pdf page %d: %w", n+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
