package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Point is a valid pixel coordinate inside an image: 0 <= X < Width and
// 0 <= Y < Height for the image it refers to.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Image is a row-major image over any pixel type P.
// The invariant len(Pix) == Width*Height holds for every image produced by
// this package and must be preserved by callers constructing one directly.
type Image[P any] struct {
	Width  int
	Height int
	Pix    []P
}

// New allocates a zeroed image of the given dimensions.
func New[P any](width, height int) *Image[P] {
	return &Image[P]{
		Width:  width,
		Height: height,
		Pix:    make([]P, width*height),
	}
}

// Index returns the Pix offset of (x, y). No bounds check is performed.
func (m *Image[P]) Index(x, y int) int {
	return y*m.Width + x
}

// At returns the pixel at (x, y). No bounds check is performed.
func (m *Image[P]) At(x, y int) P {
	return m.Pix[y*m.Width+x]
}

// Set stores p at (x, y). No bounds check is performed.
func (m *Image[P]) Set(x, y int, p P) {
	m.Pix[y*m.Width+x] = p
}

// In reports whether (x, y) is a valid coordinate for this image.
func (m *Image[P]) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Map allocates a new image by applying fn to every pixel of src.
// The output has the same dimensions as the input.
func Map[A, B any](src *Image[A], fn func(A) B) *Image[B] {
	dst := New[B](src.Width, src.Height)
	for i, p := range src.Pix {
		dst.Pix[i] = fn(p)
	}
	return dst
}

// FromImage converts a standard library image into a normalized RGB image.
// The source bounds may have a non-zero origin; the result is re-based at
// (0, 0).
func FromImage(img image.Image) *Image[RGB] {
	bounds := img.Bounds()
	dst := New[RGB](bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			dst.Pix[i] = RGB{
				R: float64(r) / 0xffff,
				G: float64(g) / 0xffff,
				B: float64(b) / 0xffff,
			}
			i++
		}
	}
	return dst
}

// ToImage converts a normalized RGB image back into a stdlib NRGBA image,
// clamping each channel to the 8-bit range.
func ToImage(src *Image[RGB]) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			p := src.At(x, y)
			dst.SetNRGBA(x, y, color.NRGBA{
				R: clamp8(p.R),
				G: clamp8(p.G),
				B: clamp8(p.B),
				A: 0xff,
			})
		}
	}
	return dst
}

// Validate checks the structural invariant of an image.
// It exists for boundary inputs (frames arriving from a capture source);
// images built by this package always satisfy it.
func (m *Image[P]) Validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d", m.Width, m.Height)
	}
	if len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("pixel buffer length %d does not match %dx%d", len(m.Pix), m.Width, m.Height)
	}
	return nil
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
