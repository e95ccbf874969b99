// Package capture produces frames for the vision pipeline. The pipeline
// never captures anything itself; it consumes Frame values tagged with the
// screen region they represent, and this package is where those frames come
// from: live from the display, or replayed from files for offline runs.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/hudsight/ammo-vision/internal/codec"
	"github.com/hudsight/ammo-vision/internal/pipeline"
)

// Source yields one frame per call.
type Source interface {
	NextFrame() (pipeline.Frame, error)
}

// ScreenSource captures a display with the cross-platform screenshot
// library and tags the result as a full-screen frame.
type ScreenSource struct {
	// Display is the index of the display to capture.
	Display int

	// GameWidth/GameHeight are the in-game render resolution to stamp on
	// frames; when zero, the captured display size is used.
	GameWidth, GameHeight int
}

// NewScreenSource captures the given display index.
func NewScreenSource(display int) (*ScreenSource, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("capture: no active displays")
	}
	if display < 0 || display >= n {
		return nil, fmt.Errorf("capture: display %d out of range (have %d)", display, n)
	}
	return &ScreenSource{Display: display}, nil
}

// NextFrame grabs the current display contents.
func (s *ScreenSource) NextFrame() (pipeline.Frame, error) {
	bounds := screenshot.GetDisplayBounds(s.Display)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return pipeline.Frame{}, fmt.Errorf("capture: display %d: %w", s.Display, err)
	}
	return s.tag(img, bounds), nil
}

func (s *ScreenSource) tag(img image.Image, bounds image.Rectangle) pipeline.Frame {
	gw, gh := s.GameWidth, s.GameHeight
	if gw == 0 {
		gw = bounds.Dx()
	}
	if gh == 0 {
		gh = bounds.Dy()
	}
	return pipeline.Frame{
		Image:        img,
		Region:       pipeline.FullScreen,
		CropX:        bounds.Min.X,
		CropY:        bounds.Min.Y,
		PreCropWidth: bounds.Dx(), PreCropHeight: bounds.Dy(),
		GameWidth: gw, GameHeight: gh,
	}
}

// StillSource replays a single image file through the Source interface,
// which keeps offline processing and live capture on the same code path.
type StillSource struct {
	cache  *codec.Cache
	path   string
	region pipeline.Region

	gameWidth, gameHeight int
}

// NewStillSource replays path as frames tagged with region. gameWidth and
// gameHeight default to the image dimensions when zero.
func NewStillSource(cache *codec.Cache, path string, region pipeline.Region, gameWidth, gameHeight int) *StillSource {
	return &StillSource{
		cache:     cache,
		path:      path,
		region:    region,
		gameWidth: gameWidth, gameHeight: gameHeight,
	}
}

// NextFrame loads (or reuses) the file and wraps it as a frame.
func (s *StillSource) NextFrame() (pipeline.Frame, error) {
	img, err := s.cache.Load(s.path)
	if err != nil {
		return pipeline.Frame{}, err
	}
	b := img.Bounds()
	gw, gh := s.gameWidth, s.gameHeight
	if gw == 0 {
		gw = b.Dx()
	}
	if gh == 0 {
		gh = b.Dy()
	}
	return pipeline.Frame{
		Image:        img,
		Region:       s.region,
		PreCropWidth: b.Dx(), PreCropHeight: b.Dy(),
		GameWidth: gw, GameHeight: gh,
	}, nil
}
