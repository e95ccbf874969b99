// Package signature detects the chromatic-aberration fringe the game UI
// renders around ammo-counter glyphs. The fringe shows up as a short
// blue→cyan→yellow→red color run along rows and columns of the frame, which
// is distinctive enough to separate counter text from everything else on
// screen.
package signature

import (
	"github.com/hudsight/ammo-vision/internal/pixel"
)

// WindowLength is the maximum number of consecutive pixels examined for one
// fringe occurrence. The four colors must appear, in order, within a run of
// this many pixels.
const WindowLength = 6

// Box is an axis-aligned region of HSV space. A pixel matches when every
// channel lies within the corresponding closed interval.
type Box struct {
	Lo pixel.HSV
	Hi pixel.HSV
}

// Contains reports whether p falls inside the box.
func (b Box) Contains(p pixel.HSV) bool {
	return p.H >= b.Lo.H && p.H <= b.Hi.H &&
		p.S >= b.Lo.S && p.S <= b.Hi.S &&
		p.V >= b.Lo.V && p.V <= b.Hi.V
}

// Condition is one step of the ordered fringe sequence: membership in any of
// a small set of HSV boxes. All colors use a single box except red, whose hue
// interval wraps the 0°/360° seam and therefore needs two.
type Condition struct {
	Name  string
	Boxes []Box
}

// Match reports whether p satisfies the condition.
func (c Condition) Match(p pixel.HSV) bool {
	for _, b := range c.Boxes {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// Conditions is the ordered fringe sequence. The bounds are tuned against
// captures of the stock UI; hue is a fraction of a full turn.
var Conditions = [4]Condition{
	{Name: "blue", Boxes: []Box{
		{Lo: pixel.HSV{H: 0.55, S: 0.35, V: 0.30}, Hi: pixel.HSV{H: 0.72, S: 1, V: 1}},
	}},
	{Name: "cyan", Boxes: []Box{
		{Lo: pixel.HSV{H: 0.42, S: 0.25, V: 0.35}, Hi: pixel.HSV{H: 0.55, S: 1, V: 1}},
	}},
	{Name: "yellow", Boxes: []Box{
		{Lo: pixel.HSV{H: 0.10, S: 0.30, V: 0.40}, Hi: pixel.HSV{H: 0.22, S: 1, V: 1}},
	}},
	{Name: "red", Boxes: []Box{
		{Lo: pixel.HSV{H: 0.00, S: 0.35, V: 0.30}, Hi: pixel.HSV{H: 0.04, S: 1, V: 1}},
		{Lo: pixel.HSV{H: 0.93, S: 0.35, V: 0.30}, Hi: pixel.HSV{H: 1.00, S: 1, V: 1}},
	}},
}

// Detect scans an HSV image for the fringe signature and returns an image of
// identical dimensions in which only pixels belonging to a detected window
// survive; everything else is the zero pixel.
//
// A sliding window of up to WindowLength pixels is evaluated starting at
// every position of every row, then independently at every position of every
// column. Overlapping successful windows each copy their pixels; the copies
// are idempotent since the source values are identical.
func Detect(src *pixel.Image[pixel.HSV]) *pixel.Image[pixel.HSV] {
	dst := pixel.New[pixel.HSV](src.Width, src.Height)

	window := make([]pixel.HSV, 0, WindowLength)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			n := min(WindowLength, src.Width-x)
			window = window[:0]
			for i := 0; i < n; i++ {
				window = append(window, src.At(x+i, y))
			}
			if matchWindow(window) {
				for i := 0; i < n; i++ {
					dst.Set(x+i, y, src.At(x+i, y))
				}
			}
		}
	}
	for x := 0; x < src.Width; x++ {
		for y := 0; y < src.Height; y++ {
			n := min(WindowLength, src.Height-y)
			window = window[:0]
			for i := 0; i < n; i++ {
				window = append(window, src.At(x, y+i))
			}
			if matchWindow(window) {
				for i := 0; i < n; i++ {
					dst.Set(x, y+i, src.At(x, y+i))
				}
			}
		}
	}

	return dst
}

// matchWindow runs the ordered condition state machine over one window.
//
// Conditions must be met in sequence: each pixel is tested only against the
// first unmet condition, and a pass advances the sequence. The scan succeeds
// the moment the last condition is met, and aborts as soon as the pixels
// remaining cannot cover the conditions remaining. Windows shorter than the
// sequence fail immediately.
func matchWindow(window []pixel.HSV) bool {
	if len(window) < len(Conditions) {
		return false
	}

	next := 0
	for i, p := range window {
		if len(window)-i < len(Conditions)-next {
			return false
		}
		if Conditions[next].Match(p) {
			next++
			if next == len(Conditions) {
				return true
			}
		}
	}
	return false
}
