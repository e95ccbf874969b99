// Package contour finds the boundaries of connected active regions in a
// binary mask.
//
// The scan walks columns left to right and each column bottom to top. Any
// active pixel entered from an inactive (or out-of-bounds) pixel below
// starts a boundary walk, unless an earlier walk already claimed it. Because
// a hole inside a filled shape also presents such an entry edge, hole
// boundaries are found by the same rule, as long as the hole does not share
// its entry edge with the outer shape.
//
// Boundary walks use the square-tracing algorithm: standing on an active
// pixel, record it and turn left; standing on an inactive one, turn right;
// then step. The walk may temporarily leave the image, in which case the
// off-image position counts as inactive. Termination follows Jacob's
// stopping criterion: the walk ends exactly when it re-enters its start
// pixel moving in the same direction it first entered with, which avoids
// both premature exits and endless loops around eight-connected necks.
package contour
