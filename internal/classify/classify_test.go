package classify

import (
	"image"
	"image/color"
	"testing"
)

func TestPreprocess_UpscalesAndBinarizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 6; x++ {
			c := color.NRGBA{R: 30, G: 30, B: 30, A: 255}
			if x >= 2 && x < 4 {
				c = color.NRGBA{R: 240, G: 240, B: 240, A: 255} // stroke
			}
			img.SetNRGBA(x, y, c)
		}
	}

	got := Preprocess(img)
	if got.Bounds().Dx() != 6*upscaleFactor || got.Bounds().Dy() != 10*upscaleFactor {
		t.Fatalf("preprocessed to %v, want %dx%d", got.Bounds(), 6*upscaleFactor, 10*upscaleFactor)
	}

	// Thresholding leaves only pure black and pure white.
	seen := map[uint8]bool{}
	for i := range got.Pix {
		seen[got.Pix[i]] = true
	}
	for v := range seen {
		if v != 0 && v != 255 {
			t.Fatalf("non-binary gray level %d after threshold", v)
		}
	}
	// The bright stroke column survives as white.
	if got.GrayAt(2*upscaleFactor, 5*upscaleFactor).Y != 255 {
		t.Error("stroke pixel thresholded to black")
	}
}

func TestLabelFromText(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"7", "7"},
		{" 3\n", "3"},
		{"", LabelUnrecognized},
		{"12", LabelUnrecognized},
		{"a", LabelUnrecognized},
	}
	for _, tc := range cases {
		got := labelFromText(tc.text, 0.9)
		if got.Label != tc.want {
			t.Errorf("labelFromText(%q) = %q, want %q", tc.text, got.Label, tc.want)
		}
		if got.Confidence != 0.9 {
			t.Errorf("labelFromText(%q) dropped confidence", tc.text)
		}
	}
}
