package ocr

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ndelorme/conforma/internal/model"
)

// preprocess applies the configured enhancement chain before
// recognition: grayscale, contrast, brightness, sharpening, then
// binarization against the threshold. Factors follow the convention
// that 1.0 leaves the image unchanged.
func preprocess(img image.Image, cfg model.OCRConfig) *image.NRGBA {
	out := imaging.Grayscale(img)

	if cfg.Contrast != 1.0 {
		out = imaging.AdjustContrast(out, (cfg.Contrast-1)*50)
	}
	if cfg.Brightness != 1.0 {
		out = imaging.AdjustBrightness(out, (cfg.Brightness-1)*50)
	}
	if cfg.Sharpness > 1.0 {
		out = imaging.Sharpen(out, cfg.Sharpness-1)
	}
	if cfg.Threshold > 0 {
		out = binarize(out, cfg.Threshold)
	}
	return out
}

// binarize maps every pixel to black or white around the threshold.
// The input is already grayscale, so the red channel carries the value.
func binarize(img *image.NRGBA, threshold int) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		v := uint8(0)
		if int(out.Pix[i]) >= threshold {
			v = 255
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v, v, v
	}
	return out
}

// encodePNG renders a processed page for the OCR client.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
