// Package pixel provides the value types the vision pipeline is built on:
// individual pixels in RGB, HSV, grayscale and binary form, and a generic
// row-major image container over any of them.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. A Point is always a valid
// pixel coordinate for the image it refers to.
//
// # Channel Normalization
//
// Unlike the 8-bit convention of image/color, every channel here is a
// float64 normalized to [0, 1]. Hue is stored as a fraction of a full turn
// (0.5 = 180 degrees), which keeps the HSV box tests in the signature
// detector free of degree/percent mismatches.
//
// # Value Semantics
//
// Transforms never mutate their input: every operation allocates a fresh
// output image. Images are therefore safe to read from multiple goroutines
// once constructed.
package pixel
