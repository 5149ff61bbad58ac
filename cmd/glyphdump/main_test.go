package main

import (
	"context"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/glyphfield/internal/glyph"
	"github.com/gonewx/glyphfield/pkg/config"
)

func TestParsePalette(t *testing.T) {
	palette, err := parsePalette(config.DefaultFieldConfig().Palette)
	if err != nil {
		t.Fatalf("parsePalette failed: %v", err)
	}
	if len(palette) != 3 {
		t.Fatalf("got %d colors, want 3", len(palette))
	}

	if _, err := parsePalette([]string{"not-a-color"}); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestGradient(t *testing.T) {
	red, _ := colorful.Hex("#ff0000")
	blue, _ := colorful.Hex("#0000ff")
	palette := []colorful.Color{red, blue}

	tests := []struct {
		name string
		t    float64
		want string
	}{
		{"start", 0, "#ff0000"},
		{"end", 1, "#0000ff"},
		{"below range", -1, "#ff0000"},
		{"above range", 2, "#0000ff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradient(palette, tt.t).Hex(); got != tt.want {
				t.Errorf("gradient(%v) = %s, want %s", tt.t, got, tt.want)
			}
		})
	}

	mid := gradient(palette, 0.5)
	if mid.Hex() == "#ff0000" || mid.Hex() == "#0000ff" {
		t.Errorf("midpoint %s must blend both colors", mid.Hex())
	}

	if got := gradient(nil, 0.5).Hex(); got != "#ffffff" {
		t.Errorf("empty palette = %s, want white", got)
	}
}

func TestRenderCloud(t *testing.T) {
	points := []glyph.Point{{X: -1, Y: 0.5}, {X: 1, Y: -0.5}}
	red, _ := colorful.Hex("#ff0000")

	img := renderCloud(points, []colorful.Color{red}, 10)

	b := img.Bounds()
	if b.Dx() != 20+2*imagePadding+1 || b.Dy() != 10+2*imagePadding+1 {
		t.Fatalf("image size = %dx%d", b.Dx(), b.Dy())
	}

	// (-1, 0.5) 位于左上角
	if got := img.RGBAAt(imagePadding, imagePadding); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top-left point = %v, want red", got)
	}
	if got := img.RGBAAt(imagePadding+20, imagePadding+10); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom-right point = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != background {
		t.Errorf("padding = %v, want background", got)
	}
}

func TestRenderSampledMessage(t *testing.T) {
	sampler := glyph.NewRasterSampler()
	sampler.Seed = 1
	points, err := sampler.Sample(context.Background(), glyph.Request{Message: "Go", Size: 1, Depth: 0.1})
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	palette, _ := parsePalette(config.DefaultFieldConfig().Palette)
	img := renderCloud(points, palette, 100)

	lit := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != background {
				lit++
			}
		}
	}
	if lit == 0 || lit > len(points) {
		t.Errorf("lit pixels = %d for %d points", lit, len(points))
	}
}
