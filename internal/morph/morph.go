// Package morph implements binary morphology: structuring-element
// construction and the erode/dilate operations the pipeline uses to clean
// the signature mask before contour extraction.
package morph

import (
	"errors"
	"fmt"

	"github.com/hudsight/ammo-vision/internal/pixel"
)

// Shape selects the active-cell pattern of a structuring element.
type Shape int

const (
	// Rectangle activates every cell of the kernel.
	Rectangle Shape = iota
	// Cross activates only the center row and center column.
	Cross
	// Ellipse is reserved and not implemented.
	Ellipse
)

// ErrShapeNotImplemented is returned for the reserved Ellipse shape.
var ErrShapeNotImplemented = errors.New("morph: structuring element shape not implemented")

// ErrEvenDimension is returned when a kernel dimension is even; kernels need
// odd dimensions so a unique center cell exists.
var ErrEvenDimension = errors.New("morph: structuring element dimensions must be odd")

// NewKernel builds a structuring element of the given shape and dimensions.
// Width and height must both be odd.
func NewKernel(shape Shape, width, height int) (*pixel.Image[pixel.Binary], error) {
	if width < 1 || height < 1 || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEvenDimension, width, height)
	}

	k := pixel.New[pixel.Binary](width, height)
	switch shape {
	case Rectangle:
		for i := range k.Pix {
			k.Pix[i] = pixel.Binary{Active: true}
		}
	case Cross:
		cx, cy := width/2, height/2
		for x := 0; x < width; x++ {
			k.Set(x, cy, pixel.Binary{Active: true})
		}
		for y := 0; y < height; y++ {
			k.Set(cx, y, pixel.Binary{Active: true})
		}
	case Ellipse:
		return nil, ErrShapeNotImplemented
	default:
		return nil, fmt.Errorf("morph: unknown shape %d", shape)
	}
	return k, nil
}

// Erode returns a fresh image in which a pixel is active iff the kernel,
// centered on it, fits: every active kernel cell lines up with an active
// image cell. Kernel cells falling outside the image fail the fit, so active
// regions touching the border erode away from that border.
func Erode(src, kernel *pixel.Image[pixel.Binary]) *pixel.Image[pixel.Binary] {
	dst := pixel.New[pixel.Binary](src.Width, src.Height)
	cx, cy := kernel.Width/2, kernel.Height/2

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			fits := true
			for ky := 0; ky < kernel.Height && fits; ky++ {
				for kx := 0; kx < kernel.Width && fits; kx++ {
					if !kernel.At(kx, ky).Active {
						continue
					}
					ix, iy := x+kx-cx, y+ky-cy
					if !src.In(ix, iy) || !src.At(ix, iy).Active {
						fits = false
					}
				}
			}
			if fits {
				dst.Set(x, y, pixel.Binary{Active: true})
			}
		}
	}
	return dst
}

// Dilate returns a fresh image in which a pixel is active iff the kernel,
// centered on it, hits: at least one active kernel cell lines up with an
// active image cell. Kernel cells outside the image are skipped and count
// toward neither hit nor miss.
func Dilate(src, kernel *pixel.Image[pixel.Binary]) *pixel.Image[pixel.Binary] {
	dst := pixel.New[pixel.Binary](src.Width, src.Height)
	cx, cy := kernel.Width/2, kernel.Height/2

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			hit := false
			for ky := 0; ky < kernel.Height && !hit; ky++ {
				for kx := 0; kx < kernel.Width && !hit; kx++ {
					if !kernel.At(kx, ky).Active {
						continue
					}
					ix, iy := x+kx-cx, y+ky-cy
					if src.In(ix, iy) && src.At(ix, iy).Active {
						hit = true
					}
				}
			}
			if hit {
				dst.Set(x, y, pixel.Binary{Active: true})
			}
		}
	}
	return dst
}
