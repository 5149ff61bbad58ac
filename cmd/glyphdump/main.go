// glyphdump 将文字采样为点云并输出为 PNG，用于检查采样密度与字体效果
//
// 使用方法:
//
//	go run ./cmd/glyphdump --message "Hello" --out hello.png
//	go run ./cmd/glyphdump --font my.ttf --pixels 128
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/glyphfield/internal/glyph"
	"github.com/gonewx/glyphfield/pkg/config"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	messageFlag = flag.String("message", config.DefaultFieldConfig().Message, "Text to sample")
	fontFlag    = flag.String("font", "", "TTF/OTF file (default: built-in Go Bold)")
	pixelsFlag  = flag.Float64("pixels", 64, "Raster font size in pixels (sampling density)")
	scaleFlag   = flag.Float64("scale", 200, "Output pixels per world unit")
	seedFlag    = flag.Int64("seed", 1, "Random seed for the front/back face choice")
	outFlag     = flag.String("out", "glyphs.png", "Output PNG path")
)

// imagePadding 输出图像四周留白（像素）
const imagePadding = 16

// background 输出图像背景色
var background = color.RGBA{R: 10, G: 10, B: 18, A: 255}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "glyphdump: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var fontData []byte
	if *fontFlag != "" {
		data, err := os.ReadFile(*fontFlag)
		if err != nil {
			return fmt.Errorf("failed to read font: %w", err)
		}
		fontData = data
	}

	sampler := glyph.NewRasterSampler()
	sampler.PixelHeight = *pixelsFlag
	sampler.Seed = *seedFlag

	points, err := sampler.Sample(context.Background(), glyph.Request{
		Message:  *messageFlag,
		FontData: fontData,
		Size:     1,
		Depth:    config.DefaultFieldConfig().Layout.TextDepth,
	})
	if err != nil {
		return err
	}
	log.Printf("[glyphdump] %q → %d points", *messageFlag, len(points))

	palette, err := parsePalette(config.DefaultFieldConfig().Palette)
	if err != nil {
		return err
	}

	img := renderCloud(points, palette, *scaleFlag)

	f, err := os.Create(*outFlag)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}

	fmt.Printf("%d points → %s (%dx%d)\n", len(points), *outFlag, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// parsePalette 解析十六进制调色板
func parsePalette(hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %q invalid: %w", h, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// gradient 在调色板上按 t ∈ [0,1] 做 Lab 空间插值
func gradient(palette []colorful.Color, t float64) colorful.Color {
	switch len(palette) {
	case 0:
		return colorful.Color{R: 1, G: 1, B: 1}
	case 1:
		return palette[0]
	}

	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(palette)-1)
	i := int(pos)
	if i >= len(palette)-1 {
		return palette[len(palette)-1]
	}
	return palette[i].BlendLab(palette[i+1], pos-float64(i)).Clamped()
}

// renderCloud 将点云正交投影到图像上，颜色随 X 渐变
func renderCloud(points []glyph.Point, palette []colorful.Color, scale float64) *image.RGBA {
	minX, minY, maxX, maxY := 0.0, 0.0, 0.0, 0.0
	for i, p := range points {
		if i == 0 || p.X < minX {
			minX = p.X
		}
		if i == 0 || p.X > maxX {
			maxX = p.X
		}
		if i == 0 || p.Y < minY {
			minY = p.Y
		}
		if i == 0 || p.Y > maxY {
			maxY = p.Y
		}
	}

	w := int(math.Ceil((maxX-minX)*scale)) + 2*imagePadding + 1
	h := int(math.Ceil((maxY-minY)*scale)) + 2*imagePadding + 1
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, background)
		}
	}

	spanX := maxX - minX
	for _, p := range points {
		t := 0.0
		if spanX > 0 {
			t = (p.X - minX) / spanX
		}
		r, g, b := gradient(palette, t).RGB255()

		// Y 向上为正，图像 Y 向下
		x := imagePadding + int(math.Round((p.X-minX)*scale))
		y := imagePadding + int(math.Round((maxY-p.Y)*scale))
		img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return img
}
