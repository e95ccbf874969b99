package contour

import (
	"errors"
	"fmt"

	"github.com/hudsight/ammo-vision/internal/pixel"
)

// Method selects the boundary-tracing algorithm.
type Method int

const (
	// SquareTracing is the implemented method.
	SquareTracing Method = iota
	// MooreNeighbor is a named alternative that is not implemented.
	MooreNeighbor
)

var (
	// ErrMethodNotImplemented is returned when a tracing method other than
	// SquareTracing is requested.
	ErrMethodNotImplemented = errors.New("contour: tracing method not implemented")

	// ErrStartInactive is returned when a trace is started on an inactive
	// pixel. This is a caller error: start points come from the scan, which
	// only yields active pixels.
	ErrStartInactive = errors.New("contour: trace started on inactive pixel")

	// ErrEmptyPointSet is returned when a bounding rectangle is requested
	// for an empty contour.
	ErrEmptyPointSet = errors.New("contour: bounding rect of empty point set")
)

// Direction is one of the four unit step vectors of a boundary walk.
type Direction struct {
	DX, DY int
}

// The four walk directions in a top-left-origin coordinate system.
var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// TurnLeft rotates the direction 90° counterclockwise on screen.
func (d Direction) TurnLeft() Direction {
	return Direction{DX: d.DY, DY: -d.DX}
}

// TurnRight rotates the direction 90° clockwise on screen.
func (d Direction) TurnRight() Direction {
	return Direction{DX: -d.DY, DY: d.DX}
}

// canvasPoint is a signed coordinate that may lie outside the image while a
// walk is in flight. Off-image positions read as inactive.
type canvasPoint struct {
	x, y int
}

func (c canvasPoint) step(d Direction) canvasPoint {
	return canvasPoint{x: c.x + d.DX, y: c.y + d.DY}
}

// toImagePoint converts the canvas position to a pixel coordinate,
// failing if either component is negative.
func (c canvasPoint) toImagePoint() (pixel.Point, error) {
	if c.x < 0 || c.y < 0 {
		return pixel.Point{}, fmt.Errorf("contour: canvas point (%d,%d) has negative component", c.x, c.y)
	}
	return pixel.Point{X: c.x, Y: c.y}, nil
}

// Contour is a duplicate-free set of boundary points. Iteration order is
// insertion order; downstream bounding-box use does not depend on it, but
// stable order keeps diagnostics reproducible.
type Contour struct {
	points []pixel.Point
	index  map[pixel.Point]struct{}
}

// NewContour returns an empty contour.
func NewContour() *Contour {
	return &Contour{index: make(map[pixel.Point]struct{})}
}

// Add inserts p if not already present.
func (c *Contour) Add(p pixel.Point) {
	if _, ok := c.index[p]; ok {
		return
	}
	c.index[p] = struct{}{}
	c.points = append(c.points, p)
}

// Contains reports whether p belongs to the contour.
func (c *Contour) Contains(p pixel.Point) bool {
	_, ok := c.index[p]
	return ok
}

// Len returns the number of distinct points.
func (c *Contour) Len() int {
	return len(c.points)
}

// Points returns the points in insertion order. The slice is shared; callers
// must not modify it.
func (c *Contour) Points() []pixel.Point {
	return c.points
}

// Rect is an axis-aligned bounding rectangle. Width and Height are the
// coordinate spans max-min of an inclusive point set, so a rectangle built
// from a single point has zero width and height.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundingRect returns the axis-aligned rectangle spanning a non-empty
// point set.
func BoundingRect(points []pixel.Point) (Rect, error) {
	if len(points) == 0 {
		return Rect{}, ErrEmptyPointSet
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, nil
}

// BoundingRect returns the rectangle spanning the contour's points.
func (c *Contour) BoundingRect() (Rect, error) {
	return BoundingRect(c.points)
}

// FindContours locates the boundary of every connected active region in the
// mask, including hole boundaries. Contours are returned in scan order.
//
// Only SquareTracing is implemented; requesting another method returns
// ErrMethodNotImplemented before any scanning happens.
func FindContours(mask *pixel.Image[pixel.Binary], method Method) ([]*Contour, error) {
	switch method {
	case SquareTracing:
	case MooreNeighbor:
		return nil, fmt.Errorf("%w: moore-neighbor", ErrMethodNotImplemented)
	default:
		return nil, fmt.Errorf("%w: method %d", ErrMethodNotImplemented, method)
	}

	seen := make(map[pixel.Point]struct{})
	var contours []*Contour

	for x := 0; x < mask.Width; x++ {
		for y := mask.Height - 1; y >= 0; y-- {
			if !mask.At(x, y).Active {
				continue
			}
			// Entered from below: the pixel one row down is inactive or
			// off-image.
			if y+1 < mask.Height && mask.At(x, y+1).Active {
				continue
			}
			start := pixel.Point{X: x, Y: y}
			if _, claimed := seen[start]; claimed {
				continue
			}

			c, err := SquareTrace(mask, start, Up)
			if err != nil {
				return nil, err
			}
			for _, p := range c.Points() {
				seen[p] = struct{}{}
			}
			contours = append(contours, c)
		}
	}
	return contours, nil
}

// SquareTrace walks the boundary of the region containing start using square
// tracing. entry is the direction the walker was moving when it first
// entered start; the scan in FindContours moves bottom-up, so it passes Up.
//
// The start pixel must be active, otherwise ErrStartInactive is returned.
func SquareTrace(mask *pixel.Image[pixel.Binary], start pixel.Point, entry Direction) (*Contour, error) {
	if !mask.In(start.X, start.Y) || !mask.At(start.X, start.Y).Active {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrStartInactive, start.X, start.Y)
	}

	boundary := NewContour()
	boundary.Add(start)

	// The pixel the walker came from is inactive relative to the walk, so
	// the first move is always a left turn off the start pixel.
	dir := entry.TurnLeft()
	pos := canvasPoint{x: start.X, y: start.Y}.step(dir)

	for !(pos.x == start.X && pos.y == start.Y && dir == entry) {
		if mask.In(pos.x, pos.y) && mask.At(pos.x, pos.y).Active {
			p, err := pos.toImagePoint()
			if err != nil {
				return nil, err
			}
			boundary.Add(p)
			dir = dir.TurnLeft()
		} else {
			dir = dir.TurnRight()
		}
		pos = pos.step(dir)
	}

	return boundary, nil
}
