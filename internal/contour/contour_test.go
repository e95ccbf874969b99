package contour

import (
	"errors"
	"testing"

	"github.com/hudsight/ammo-vision/internal/pixel"
)

// maskFromRows builds a binary mask from '#' (active) and '.' rows.
func maskFromRows(rows ...string) *pixel.Image[pixel.Binary] {
	img := pixel.New[pixel.Binary](len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				img.Set(x, y, pixel.Binary{Active: true})
			}
		}
	}
	return img
}

func TestDirection_Turns(t *testing.T) {
	if Up.TurnLeft() != Left || Left.TurnLeft() != Down || Down.TurnLeft() != Right || Right.TurnLeft() != Up {
		t.Error("left turn cycle broken")
	}
	if Up.TurnRight() != Right || Right.TurnRight() != Down || Down.TurnRight() != Left || Left.TurnRight() != Up {
		t.Error("right turn cycle broken")
	}
	for _, d := range []Direction{Up, Down, Left, Right} {
		if d.TurnLeft().TurnRight() != d {
			t.Errorf("turns do not cancel for %+v", d)
		}
		if d.TurnLeft().TurnLeft().TurnLeft().TurnLeft() != d {
			t.Errorf("four left turns not identity for %+v", d)
		}
	}
}

func TestContour_DedupAndOrder(t *testing.T) {
	c := NewContour()
	c.Add(pixel.Point{X: 1, Y: 1})
	c.Add(pixel.Point{X: 2, Y: 1})
	c.Add(pixel.Point{X: 1, Y: 1}) // duplicate
	c.Add(pixel.Point{X: 0, Y: 5})

	if c.Len() != 3 {
		t.Fatalf("len = %d, want 3", c.Len())
	}
	want := []pixel.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 5}}
	for i, p := range c.Points() {
		if p != want[i] {
			t.Errorf("point %d = %+v, want %+v (insertion order)", i, p, want[i])
		}
	}
	if !c.Contains(pixel.Point{X: 2, Y: 1}) || c.Contains(pixel.Point{X: 9, Y: 9}) {
		t.Error("Contains misbehaves")
	}
}

func TestBoundingRect_Empty(t *testing.T) {
	if _, err := BoundingRect(nil); !errors.Is(err, ErrEmptyPointSet) {
		t.Fatalf("got %v, want ErrEmptyPointSet", err)
	}
}

func TestBoundingRect_SinglePoint(t *testing.T) {
	r, err := BoundingRect([]pixel.Point{{X: 3, Y: 7}})
	if err != nil {
		t.Fatal(err)
	}
	if r != (Rect{X: 3, Y: 7, Width: 0, Height: 0}) {
		t.Errorf("got %+v", r)
	}
}

func TestSquareTrace_StartInactive(t *testing.T) {
	mask := maskFromRows(
		"...",
		".#.",
		"...",
	)
	if _, err := SquareTrace(mask, pixel.Point{X: 0, Y: 0}, Up); !errors.Is(err, ErrStartInactive) {
		t.Fatalf("got %v, want ErrStartInactive", err)
	}
}

func TestSquareTrace_SinglePixel(t *testing.T) {
	mask := maskFromRows(
		"...",
		".#.",
		"...",
	)
	c, err := SquareTrace(mask, pixel.Point{X: 1, Y: 1}, Up)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || !c.Contains(pixel.Point{X: 1, Y: 1}) {
		t.Errorf("single pixel contour = %v", c.Points())
	}
}

// The documented 6x7 fixture: a solid block centered in the frame yields one
// contour spanning x 2..4 and y 1..4. Width/Height are inclusive coordinate
// spans (max - min), hence 2 and 3.
func TestFindContours_CenteredBlock(t *testing.T) {
	mask := maskFromRows(
		"......",
		"..###.",
		"..###.",
		"..###.",
		"..###.",
		"......",
		"......",
	)
	contours, err := FindContours(mask, SquareTracing)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	r, err := contours[0].BoundingRect()
	if err != nil {
		t.Fatal(err)
	}
	want := Rect{X: 2, Y: 1, Width: 2, Height: 3}
	if r != want {
		t.Errorf("bounding rect %+v, want %+v", r, want)
	}
	// Interior pixels are not boundary points.
	if contours[0].Contains(pixel.Point{X: 3, Y: 2}) || contours[0].Contains(pixel.Point{X: 3, Y: 3}) {
		t.Error("interior pixel recorded as boundary")
	}
}

// A filled 4x4 square with a one-row, two-column hole off the bottom edge:
// the outer ring and the hole boundary are two distinct contours. The hole
// is reachable because the active pixel under its left cell presents a fresh
// bottom entry edge that the outer ring did not claim.
func TestFindContours_SquareWithHole(t *testing.T) {
	mask := maskFromRows(
		"####",
		"####",
		"#..#",
		"####",
	)
	contours, err := FindContours(mask, SquareTracing)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want outer + hole", len(contours))
	}

	outer, err := contours[0].BoundingRect()
	if err != nil {
		t.Fatal(err)
	}
	if outer != (Rect{X: 0, Y: 0, Width: 3, Height: 3}) {
		t.Errorf("outer rect %+v", outer)
	}
	// The hole boundary surrounds the inactive cells without containing them.
	hole := contours[1]
	for _, p := range []pixel.Point{{X: 1, Y: 2}, {X: 2, Y: 2}} {
		if hole.Contains(p) {
			t.Errorf("inactive hole cell %+v recorded as boundary", p)
		}
	}
	if !hole.Contains(pixel.Point{X: 1, Y: 1}) || !hole.Contains(pixel.Point{X: 2, Y: 1}) {
		t.Error("pixels above the hole missing from hole boundary")
	}
}

func TestFindContours_TwoBlobsScanOrder(t *testing.T) {
	mask := maskFromRows(
		"......",
		".#..#.",
		".#..#.",
		"......",
	)
	contours, err := FindContours(mask, SquareTracing)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	r0, _ := contours[0].BoundingRect()
	r1, _ := contours[1].BoundingRect()
	if r0.X != 1 || r1.X != 4 {
		t.Errorf("contours out of scan order: %+v then %+v", r0, r1)
	}
}

// Known-ambiguous fixture: a staircase wedge. The tracer records the inner
// step pixels (e.g. (1,2)) as boundary points; whether a concave corner
// belongs to the boundary is debatable, but this is the documented behavior
// of the algorithm and is asserted as such.
func TestFindContours_WedgeStaircase(t *testing.T) {
	mask := maskFromRows(
		"....",
		"#...",
		"##..",
		"###.",
	)
	contours, err := FindContours(mask, SquareTracing)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	c := contours[0]
	if c.Len() != 6 {
		t.Errorf("wedge boundary has %d points, want all 6 active pixels", c.Len())
	}
	for _, p := range []pixel.Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}} {
		if !c.Contains(p) {
			t.Errorf("step pixel %+v missing from boundary", p)
		}
	}
}

func TestFindContours_MooreNotImplemented(t *testing.T) {
	mask := maskFromRows("#")
	if _, err := FindContours(mask, MooreNeighbor); !errors.Is(err, ErrMethodNotImplemented) {
		t.Fatalf("got %v, want ErrMethodNotImplemented", err)
	}
}

func TestFindContours_EmptyMask(t *testing.T) {
	mask := maskFromRows(
		"....",
		"....",
	)
	contours, err := FindContours(mask, SquareTracing)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 0 {
		t.Errorf("empty mask produced %d contours", len(contours))
	}
}

// Tracing an already-claimed boundary never restarts: a tall blob presents
// several bottom-entry candidates in later columns, all claimed by the first
// walk.
func TestFindContours_NoRetraceOfClaimedBoundary(t *testing.T) {
	mask := maskFromRows(
		".....",
		".###.",
		".###.",
		".....",
	)
	contours, err := FindContours(mask, SquareTracing)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
}
