// Package pipeline chains the vision stages that isolate ammo-counter
// digits from a captured frame: region crop, canonical resize, HSV
// conversion, chromatic-fringe detection, binarization, morphological
// cleanup, contour extraction and geometric filtering.
//
// Every stage is a pure function from its input buffer to a fresh output
// buffer; a single Isolate call runs to completion or fails deterministically
// for a given frame. Finding no digits is a normal outcome, not an error;
// plenty of weapons draw no counter at all.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/hudsight/ammo-vision/internal/contour"
	"github.com/hudsight/ammo-vision/internal/morph"
	"github.com/hudsight/ammo-vision/internal/pixel"
	"github.com/hudsight/ammo-vision/internal/signature"
)

// Region tags what part of the screen a frame represents.
type Region int

const (
	// FullScreen is an uncropped capture; the pipeline crops it to the
	// bottom-right quadrant, where the ammo counter lives.
	FullScreen Region = iota
	// BottomRightQuadrant is a pre-cropped bottom-right quarter.
	BottomRightQuadrant
	// WeaponHUD is a pre-cropped weapon HUD strip.
	WeaponHUD
	// AmmoCounter is a tight pre-crop around the counter itself.
	AmmoCounter
	// Center is the screen center; it structurally cannot contain the
	// counter and is rejected.
	Center
)

func (r Region) String() string {
	switch r {
	case FullScreen:
		return "full-screen"
	case BottomRightQuadrant:
		return "bottom-right"
	case WeaponHUD:
		return "weapon-hud"
	case AmmoCounter:
		return "ammo-counter"
	case Center:
		return "center"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// ParseRegion maps a tag name to its Region, for CLI use.
func ParseRegion(s string) (Region, error) {
	for _, r := range []Region{FullScreen, BottomRightQuadrant, WeaponHUD, AmmoCounter, Center} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region tag %q", s)
}

// ErrIncompatibleRegion is returned when a frame's region tag cannot contain
// the ammo counter. This is an explicit error, distinct from the normal
// empty result of a frame that simply shows no counter.
var ErrIncompatibleRegion = errors.New("pipeline: region cannot contain the ammo counter")

// Frame is a captured RGB image plus the geometry metadata the capture
// source recorded with it.
type Frame struct {
	Image  image.Image
	Region Region

	// CropX/CropY locate this frame's origin on the full screen; zero for
	// full-screen captures.
	CropX, CropY int

	// PreCropWidth/PreCropHeight are the dimensions of the screen the frame
	// was cut from.
	PreCropWidth, PreCropHeight int

	// GameWidth/GameHeight are the in-game render resolution, which may
	// differ from the capture resolution on scaled displays.
	GameWidth, GameHeight int
}

// Validate checks the frame is structurally usable.
func (f Frame) Validate() error {
	if f.Image == nil {
		return errors.New("pipeline: frame has no image")
	}
	if f.GameHeight <= 0 {
		return fmt.Errorf("pipeline: invalid game render height %d", f.GameHeight)
	}
	return nil
}

// Config collects the tuned constants of the pipeline. These are empirically
// calibrated against the stock UI at the canonical resolution and are
// configuration, not invariants; re-tune them when the UI changes.
type Config struct {
	// CanonicalHeight is the game render height all thresholds below are
	// calibrated for. Frames are rescaled so their effective game height
	// matches it.
	CanonicalHeight int

	// ErodeWidth/ErodeHeight size the cross kernel that strips small
	// spurious fringe blobs.
	ErodeWidth, ErodeHeight int

	// DilateWidth/DilateHeight size the rectangle kernel that merges the
	// strokes of a glyph into one solid blob.
	DilateWidth, DilateHeight int

	// MinGlyphWidth/MinGlyphHeight reject boxes smaller than the thinnest
	// expected glyph ("1"), in pixels.
	MinGlyphWidth, MinGlyphHeight int

	// MaxGap is the largest allowed horizontal gap between an accepted box
	// and the next, keeping accepted boxes one left-to-right run.
	MaxGap int

	// MinCoverage is the minimum fraction of active mask pixels inside an
	// accepted box.
	MinCoverage float64

	// MaxGlyphs caps how many boxes are accepted.
	MaxGlyphs int
}

// DefaultConfig returns the tuning used against 1080p reference captures.
func DefaultConfig() Config {
	return Config{
		CanonicalHeight: 1080,
		ErodeWidth:      3,
		ErodeHeight:     3,
		DilateWidth:     5,
		DilateHeight:    5,
		MinGlyphWidth:   2,
		MinGlyphHeight:  8,
		MaxGap:          24,
		MinCoverage:     0.25,
		MaxGlyphs:       4,
	}
}

// Result is the outcome of one pipeline invocation.
type Result struct {
	// Glyphs are the isolated digit images in left-to-right acceptance
	// order. Empty when the frame shows no counter.
	Glyphs []*image.NRGBA

	// Boxes are the accepted bounding rectangles in the resized frame's
	// coordinates, parallel to Glyphs.
	Boxes []contour.Rect

	// Scale is the resize factor that was applied to reach the canonical
	// height.
	Scale float64
}

// Pipeline runs the digit-isolation stages with a fixed configuration.
type Pipeline struct {
	cfg  Config
	dump *Dumper
}

// New builds a pipeline. dump may be nil to disable intermediate-image
// dumps.
func New(cfg Config, dump *Dumper) *Pipeline {
	return &Pipeline{cfg: cfg, dump: dump}
}

// Isolate runs the full digit-isolation sequence on one frame.
//
// It returns ErrIncompatibleRegion (wrapped) for frames that structurally
// cannot contain the counter, other errors for invalid frames or kernel
// construction failures, and a Result with zero glyphs and a nil error
// when the frame contains no detectable counter.
func (p *Pipeline) Isolate(frame Frame) (*Result, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	cropped, err := cropToCounterRegion(frame)
	if err != nil {
		return nil, err
	}

	scale := float64(p.cfg.CanonicalHeight) / float64(frame.GameHeight)
	resized := resizeProportional(cropped, scale)
	p.dump.Image("resized", resized)

	rgb := pixel.FromImage(resized)
	hsv := pixel.Map(rgb, pixel.RGBToHSV)

	detected := signature.Detect(hsv)
	p.dump.HSV("signature", detected)

	mask := pixel.Map(detected, func(px pixel.HSV) pixel.Binary {
		return pixel.Binary{Active: !px.IsZero()}
	})
	p.dump.Mask("mask", mask)

	cleaned, err := p.cleanMask(mask)
	if err != nil {
		return nil, err
	}
	p.dump.Mask("cleaned", cleaned)

	contours, err := contour.FindContours(cleaned, contour.SquareTracing)
	if err != nil {
		return nil, err
	}

	boxes := p.filterBoxes(contours, cleaned)

	glyphs := make([]*image.NRGBA, 0, len(boxes))
	for _, r := range boxes {
		crop := imaging.Crop(resized, image.Rect(r.X, r.Y, r.X+r.Width+1, r.Y+r.Height+1))
		glyphs = append(glyphs, crop)
	}
	for i, g := range glyphs {
		p.dump.Image(fmt.Sprintf("glyph-%d", i), g)
	}

	return &Result{Glyphs: glyphs, Boxes: boxes, Scale: scale}, nil
}

// cropToCounterRegion narrows a frame to the screen area that can hold the
// counter. Full-screen frames crop to the bottom-right quadrant; frames
// already cropped to a compatible region pass through unchanged.
func cropToCounterRegion(frame Frame) (image.Image, error) {
	switch frame.Region {
	case FullScreen:
		b := frame.Image.Bounds()
		return imaging.Crop(frame.Image, image.Rect(
			b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2, b.Max.X, b.Max.Y)), nil
	case BottomRightQuadrant, WeaponHUD, AmmoCounter:
		return frame.Image, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleRegion, frame.Region)
	}
}

// resizeProportional rescales so downstream pixel thresholds see the
// canonical resolution regardless of the player's render settings.
func resizeProportional(img image.Image, scale float64) image.Image {
	if scale == 1 {
		return img
	}
	h := int(float64(img.Bounds().Dy())*scale + 0.5)
	if h < 1 {
		h = 1
	}
	// Width 0 preserves the aspect ratio.
	return imaging.Resize(img, 0, h, imaging.Lanczos)
}

// cleanMask strips isolated fringe pixels with a small cross erosion, then
// merges glyph strokes into solid blobs with a rectangular dilation.
func (p *Pipeline) cleanMask(mask *pixel.Image[pixel.Binary]) (*pixel.Image[pixel.Binary], error) {
	erodeKernel, err := morph.NewKernel(morph.Cross, p.cfg.ErodeWidth, p.cfg.ErodeHeight)
	if err != nil {
		return nil, fmt.Errorf("erode kernel: %w", err)
	}
	dilateKernel, err := morph.NewKernel(morph.Rectangle, p.cfg.DilateWidth, p.cfg.DilateHeight)
	if err != nil {
		return nil, fmt.Errorf("dilate kernel: %w", err)
	}
	return morph.Dilate(morph.Erode(mask, erodeKernel), dilateKernel), nil
}

// filterBoxes applies the geometric digit heuristics to contours in scan
// order and returns the accepted boxes in acceptance order.
func (p *Pipeline) filterBoxes(contours []*contour.Contour, mask *pixel.Image[pixel.Binary]) []contour.Rect {
	var accepted []contour.Rect

	for _, c := range contours {
		r, err := c.BoundingRect()
		if err != nil {
			// A traced contour always has at least its start point.
			continue
		}

		// Rect extents are inclusive spans; +1 converts to pixel counts.
		w, h := r.Width+1, r.Height+1
		if w < p.cfg.MinGlyphWidth || h < p.cfg.MinGlyphHeight {
			// Digits are contiguous: once the run has begun, the first
			// undersized contour ends it.
			if len(accepted) > 0 {
				break
			}
			continue
		}

		if len(accepted) > 0 {
			prev := accepted[len(accepted)-1]
			gap := r.X - (prev.X + prev.Width + 1)
			if gap > p.cfg.MaxGap {
				continue
			}
		}

		if coverage(mask, r) < p.cfg.MinCoverage {
			continue
		}

		if len(accepted) >= p.cfg.MaxGlyphs {
			break
		}
		accepted = append(accepted, r)
	}

	return accepted
}

// coverage is the fraction of active mask pixels inside a box.
func coverage(mask *pixel.Image[pixel.Binary], r contour.Rect) float64 {
	active := 0
	for y := r.Y; y <= r.Y+r.Height; y++ {
		for x := r.X; x <= r.X+r.Width; x++ {
			if mask.In(x, y) && mask.At(x, y).Active {
				active++
			}
		}
	}
	return float64(active) / float64((r.Width+1)*(r.Height+1))
}
