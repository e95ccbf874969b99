package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hudsight/ammo-vision/internal/pixel"
)

// Dumper writes intermediate pipeline images to a directory for
// troubleshooting detection misses. All methods are safe on a nil receiver,
// so the pipeline can call them unconditionally.
type Dumper struct {
	dir string
	seq int
}

// NewDumper creates the dump directory if needed.
func NewDumper(dir string) (*Dumper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create dump dir: %w", err)
	}
	return &Dumper{dir: dir}, nil
}

// Image writes a stdlib image as PNG.
func (d *Dumper) Image(name string, img image.Image) {
	if d == nil {
		return
	}
	d.write(name, img)
}

// Mask renders a binary mask as white-on-black.
func (d *Dumper) Mask(name string, mask *pixel.Image[pixel.Binary]) {
	if d == nil {
		return
	}
	out := image.NewNRGBA(image.Rect(0, 0, mask.Width, mask.Height))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(x, y).Active {
				out.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				out.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
	d.write(name, out)
}

// HSV renders an HSV image back to displayable RGB.
func (d *Dumper) HSV(name string, img *pixel.Image[pixel.HSV]) {
	if d == nil {
		return
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			r, g, b := colorful.Hsv(p.H*360, p.S, p.V).Clamped().RGB255()
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	d.write(name, out)
}

func (d *Dumper) write(name string, img image.Image) {
	path := filepath.Join(d.dir, fmt.Sprintf("%02d-%s.png", d.seq, name))
	d.seq++

	f, err := os.Create(path)
	if err != nil {
		log.Printf("dump %s: %v", name, err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Printf("dump %s: %v", name, err)
	}
}
