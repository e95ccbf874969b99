// Package classify is the recognition boundary of the tool: it consumes one
// isolated glyph image at a time and returns a digit label with a
// confidence score. Aggregating labels into an ammo count (and deciding
// what confidence is good enough) is the caller's job, not this package's.
package classify

import (
	"image"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"
)

// LabelUnrecognized is returned when the recognizer cannot commit to a
// single digit.
const LabelUnrecognized = "unrecognized"

// Result is the classification of one glyph image.
type Result struct {
	// Label is "0" through "9", or LabelUnrecognized.
	Label string `json:"label"`

	// Confidence is the recognizer's certainty in [0, 1].
	Confidence float64 `json:"confidence"`
}

// Classifier recognizes a single digit glyph.
type Classifier interface {
	Classify(img image.Image) (*Result, error)
}

// upscaleFactor enlarges glyph crops before recognition; counters render
// small and Tesseract wants glyphs tens of pixels tall.
const upscaleFactor = 4

// binarizeLevel is the grayscale threshold separating glyph strokes from
// background after upscaling.
const binarizeLevel = 128

// Preprocess normalizes a glyph crop for recognition: nearest-neighbor
// upscale (keeps stroke edges crisp), grayscale, and a hard threshold to a
// black-on-white bitmap.
func Preprocess(img image.Image) *image.Gray {
	b := img.Bounds()
	scaled := transform.Resize(img, b.Dx()*upscaleFactor, b.Dy()*upscaleFactor, transform.NearestNeighbor)
	gray := effect.Grayscale(scaled)
	return segment.Threshold(gray, binarizeLevel)
}

// labelFromText maps raw recognizer output to a Result. Anything that is
// not exactly one digit is unrecognized; the confidence is passed through
// either way so callers can log near-misses.
func labelFromText(text string, confidence float64) *Result {
	text = strings.TrimSpace(text)
	if len(text) == 1 && text[0] >= '0' && text[0] <= '9' {
		return &Result{Label: text, Confidence: confidence}
	}
	return &Result{Label: LabelUnrecognized, Confidence: confidence}
}
