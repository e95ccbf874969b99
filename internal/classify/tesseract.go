package classify

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes digit glyphs with the system Tesseract installation
// via gosseract, constrained to a digit whitelist and single-character page
// segmentation.
type Tesseract struct{}

// NewTesseract returns a Tesseract-backed classifier.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Classify runs OCR on one preprocessed glyph image.
//
// A fresh client is created per call; gosseract clients are cheap next to
// the recognition itself and this keeps the classifier safe for concurrent
// use.
func (t *Tesseract) Classify(img image.Image) (*Result, error) {
	prepared := Preprocess(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return nil, fmt.Errorf("failed to encode glyph: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetWhitelist("0123456789"); err != nil {
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		return nil, fmt.Errorf("failed to set page seg mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}

	// Symbol-level boxes carry the per-glyph confidence; fall back to zero
	// confidence if box extraction fails, keeping the text result usable.
	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_SYMBOL); err == nil && len(boxes) > 0 {
		confidence = float64(boxes[0].Confidence) / 100.0
	}

	return labelFromText(text, confidence), nil
}
