package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hudsight/ammo-vision/internal/capture"
	"github.com/hudsight/ammo-vision/internal/classify"
	"github.com/hudsight/ammo-vision/internal/codec"
	"github.com/hudsight/ammo-vision/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// output is the JSON document printed for one processed frame.
type output struct {
	Count  string              `json:"count,omitempty"`
	Digits []digitOutput       `json:"digits"`
	Scale  float64             `json:"scale"`
	Note   string              `json:"note,omitempty"`
	Glyphs []*codec.GlyphImage `json:"glyphs,omitempty"`
}

type digitOutput struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("ammo-vision %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		imagePath   = flag.String("image", "", "process this screenshot instead of capturing the screen")
		regionTag   = flag.String("region", pipeline.FullScreen.String(), "region tag of the input: full-screen, bottom-right, weapon-hud, ammo-counter")
		display     = flag.Int("display", 0, "display index for live capture")
		gameWidth   = flag.Int("game-width", 0, "in-game render width (default: input width)")
		gameHeight  = flag.Int("game-height", 0, "in-game render height (default: input height)")
		runClassify = flag.Bool("classify", false, "recognize each isolated glyph with Tesseract")
		emitGlyphs  = flag.Bool("emit-glyphs", false, "include base64 PNG glyph crops in the output")
		debugDir    = flag.String("debug-dir", "", "write intermediate pipeline images to this directory")
	)
	flag.Parse()

	// Diagnostics go to stderr; stdout carries only the JSON result.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("AMMO_VISION_LOG_LEVEL") == "debug" {
		log.Printf("ammo-vision v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := run(*imagePath, *regionTag, *display, *gameWidth, *gameHeight, *runClassify, *emitGlyphs, *debugDir); err != nil {
		log.Fatalf("ammo-vision: %v", err)
	}
}

func run(imagePath, regionTag string, display, gameWidth, gameHeight int, runClassify, emitGlyphs bool, debugDir string) error {
	region, err := pipeline.ParseRegion(regionTag)
	if err != nil {
		return err
	}

	var source capture.Source
	if imagePath != "" {
		source = capture.NewStillSource(codec.NewCache(), imagePath, region, gameWidth, gameHeight)
	} else {
		src, err := capture.NewScreenSource(display)
		if err != nil {
			return err
		}
		src.GameWidth, src.GameHeight = gameWidth, gameHeight
		source = src
	}

	var dumper *pipeline.Dumper
	if debugDir != "" {
		dumper, err = pipeline.NewDumper(debugDir)
		if err != nil {
			return err
		}
	}

	frame, err := source.NextFrame()
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.DefaultConfig(), dumper)
	res, err := p.Isolate(frame)
	if err != nil {
		return err
	}

	out := output{Scale: res.Scale, Digits: make([]digitOutput, 0, len(res.Boxes))}
	if len(res.Glyphs) == 0 {
		out.Note = "no ammo counter detected"
	}

	for _, r := range res.Boxes {
		out.Digits = append(out.Digits, digitOutput{
			X: r.X, Y: r.Y, Width: r.Width + 1, Height: r.Height + 1,
		})
	}

	if runClassify {
		classifier := classify.NewTesseract()
		count := ""
		for i, glyph := range res.Glyphs {
			result, err := classifier.Classify(glyph)
			if err != nil {
				return fmt.Errorf("glyph %d: %w", i, err)
			}
			out.Digits[i].Label = result.Label
			out.Digits[i].Confidence = result.Confidence
			if result.Label != classify.LabelUnrecognized {
				count += result.Label
			}
		}
		out.Count = count
	}

	if emitGlyphs {
		for i, glyph := range res.Glyphs {
			g, err := codec.EncodeGlyph(glyph, 1)
			if err != nil {
				return fmt.Errorf("glyph %d: %w", i, err)
			}
			out.Glyphs = append(out.Glyphs, g)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
