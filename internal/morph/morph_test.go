package morph

import (
	"errors"
	"testing"

	"github.com/hudsight/ammo-vision/internal/pixel"
)

// maskFromRows builds a binary image from '#' (active) and '.' rows.
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

func countActive(img *pixel.Image[pixel.Binary]) int {
	n := 0
	for _, p := range img.Pix {
		if p.Active {
			n++
		}
	}
	return n
}

func TestNewKernel_RejectsEvenDimensions(t *testing.T) {
	for _, dims := range [][2]int{{2, 3}, {3, 2}, {4, 4}, {0, 3}} {
		if _, err := NewKernel(Rectangle, dims[0], dims[1]); !errors.Is(err, ErrEvenDimension) {
			t.Errorf("%dx%d: got %v, want ErrEvenDimension", dims[0], dims[1], err)
		}
	}
}

func TestNewKernel_EllipseNotImplemented(t *testing.T) {
	if _, err := NewKernel(Ellipse, 3, 3); !errors.Is(err, ErrShapeNotImplemented) {
		t.Fatalf("got %v, want ErrShapeNotImplemented", err)
	}
}

func TestNewKernel_Rectangle(t *testing.T) {
	k, err := NewKernel(Rectangle, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if countActive(k) != 15 {
		t.Errorf("rectangle 3x5 has %d active cells, want 15", countActive(k))
	}
}

func TestNewKernel_Cross(t *testing.T) {
	k, err := NewKernel(Cross, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	// Center row + center column, center counted once.
	if countActive(k) != 5 {
		t.Errorf("cross 3x3 has %d active cells, want 5", countActive(k))
	}
	if !k.At(1, 1).Active || k.At(0, 0).Active || k.At(2, 2).Active {
		t.Error("cross 3x3 has wrong cell pattern")
	}
}

func TestErode_CrossShrinksBlock(t *testing.T) {
	src := maskFromRows(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	k, _ := NewKernel(Cross, 3, 3)
	got := Erode(src, k)

	// Only the center survives: it is the only pixel whose 4-neighborhood is
	// fully active.
	if countActive(got) != 1 || !got.At(2, 2).Active {
		t.Errorf("erode left %d active pixels, want only (2,2)", countActive(got))
	}
}

func TestErode_BorderFootprintFails(t *testing.T) {
	// Fully active image: every border pixel has kernel cells out of bounds,
	// which count as misses, so only the interior survives.
	src := maskFromRows(
		"####",
		"####",
		"####",
		"####",
	)
	k, _ := NewKernel(Rectangle, 3, 3)
	got := Erode(src, k)

	if countActive(got) != 4 {
		t.Fatalf("erode left %d active pixels, want 4 interior", countActive(got))
	}
	for _, p := range []pixel.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}} {
		if !got.At(p.X, p.Y).Active {
			t.Errorf("interior pixel %+v eroded away", p)
		}
	}
}

func TestDilate_BorderCellsSkipped(t *testing.T) {
	// A single active corner pixel: out-of-bounds kernel cells are skipped,
	// not counted as misses, so dilation still spreads from the corner.
	src := maskFromRows(
		"#..",
		"...",
		"...",
	)
	k, _ := NewKernel(Rectangle, 3, 3)
	got := Dilate(src, k)

	want := []pixel.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	if countActive(got) != len(want) {
		t.Fatalf("dilate produced %d active pixels, want %d", countActive(got), len(want))
	}
	for _, p := range want {
		if !got.At(p.X, p.Y).Active {
			t.Errorf("pixel %+v not dilated", p)
		}
	}
}

func TestDilate_CrossBridgesGap(t *testing.T) {
	src := maskFromRows(
		".....",
		".#.#.",
		".....",
	)
	k, _ := NewKernel(Cross, 3, 3)
	got := Dilate(src, k)

	if !got.At(2, 1).Active {
		t.Error("gap pixel between the two seeds not bridged")
	}
}

// Erode-then-dilate (opening) never grows the mask beyond its dilation by
// the same kernel.
func TestOpening_BoundedByClosure(t *testing.T) {
	src := maskFromRows(
		"........",
		".##..##.",
		".##..#..",
		"....###.",
		"........",
	)
	k, _ := NewKernel(Cross, 3, 3)

	opened := Dilate(Erode(src, k), k)
	closure := Dilate(src, k)

	for i := range opened.Pix {
		if opened.Pix[i].Active && !closure.Pix[i].Active {
			t.Fatalf("opening activated pixel %d outside the dilated closure", i)
		}
	}
	if countActive(opened) > countActive(closure) {
		t.Error("opening has more active pixels than the closure bound")
	}
}

func TestErode_InputUntouched(t *testing.T) {
	src := maskFromRows(
		"###",
		"###",
		"###",
	)
	k, _ := NewKernel(Rectangle, 3, 3)
	before := countActive(src)
	_ = Erode(src, k)
	if countActive(src) != before {
		t.Error("erode mutated its input")
	}
}
