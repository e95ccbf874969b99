package pixel

import "math"

// chromaEpsilon is the threshold below which a color is treated as
// achromatic during RGB→HSV conversion. Hue and saturation are undefined
// for such colors, so the conversion pins them to zero.
const chromaEpsilon = 1e-9

// RGB is a red/green/blue pixel with each channel in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HSV is a hue/saturation/value pixel with each channel in [0, 1].
// Hue is a fraction of a full turn: 0 = red, 1/3 = green, 2/3 = blue.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// Gray is a single-channel luminance pixel in [0, 1].
type Gray struct {
	V float64 `json:"v"`
}

// Binary is an on/off pixel used by masks, structuring elements and the
// contour tracer.
type Binary struct {
	Active bool `json:"active"`
}

// IsZero reports whether the pixel is fully black with no saturation,
// i.e. the zero value. The pipeline's binarization step treats any
// non-zero HSV pixel as active.
func (p HSV) IsZero() bool {
	return p.H == 0 && p.S == 0 && p.V == 0
}

// RGBToHSV converts an RGB pixel to HSV.
//
// The conversion follows the standard max/min formulation. Two degenerate
// inputs short-circuit to an unambiguous achromatic result {H:0, S:0, V:max}:
// near-black pixels (max ≈ 0) and near-gray pixels (chroma ≈ 0). Both would
// otherwise divide by zero, and neither has a meaningful hue.
//
// The raw hue sector value lies in [-1, 5); it is divided by 6 and wrapped
// into [0, 1) by adding 1 to negative results.
func RGBToHSV(p RGB) HSV {
	max := math.Max(p.R, math.Max(p.G, p.B))
	min := math.Min(p.R, math.Min(p.G, p.B))
	delta := max - min

	if max < chromaEpsilon || delta < chromaEpsilon {
		return HSV{H: 0, S: 0, V: max}
	}

	var hue float64
	switch max {
	case p.R:
		hue = (p.G - p.B) / delta // in [-1, 1)
	case p.G:
		hue = 2 + (p.B-p.R)/delta // in [1, 3)
	default:
		hue = 4 + (p.R-p.G)/delta // in [3, 5)
	}
	hue /= 6
	if hue < 0 {
		hue++
	}

	return HSV{H: hue, S: delta / max, V: max}
}

// HSVToRGB converts an HSV pixel back to RGB using the standard six-sector
// formula. Zero saturation short-circuits to the gray {V, V, V}.
func HSVToRGB(p HSV) RGB {
	if p.S == 0 {
		return RGB{R: p.V, G: p.V, B: p.V}
	}

	h := p.H * 6
	sector := int(math.Floor(h)) % 6
	f := h - math.Floor(h)

	lo := p.V * (1 - p.S)
	mid1 := p.V * (1 - p.S*f)
	mid2 := p.V * (1 - p.S*(1-f))

	switch sector {
	case 0:
		return RGB{R: p.V, G: mid2, B: lo}
	case 1:
		return RGB{R: mid1, G: p.V, B: lo}
	case 2:
		return RGB{R: lo, G: p.V, B: mid2}
	case 3:
		return RGB{R: lo, G: mid1, B: p.V}
	case 4:
		return RGB{R: mid2, G: lo, B: p.V}
	default:
		return RGB{R: p.V, G: lo, B: mid1}
	}
}

// Luminance converts an RGB pixel to grayscale using the ITU-R BT.601
// weights, matching the convention used elsewhere in this module.
func Luminance(p RGB) Gray {
	return Gray{V: 0.299*p.R + 0.587*p.G + 0.114*p.B}
}
