// Package glyph turns a text message into a 3D point cloud that approximates
// the outlines of its rendered glyphs.
//
// Sampling is slow compared to a frame, so callers run it off the host loop
// with Go and receive a Result tagged with the generation that requested it.
package glyph

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFont is the bundled bold sans face used when a request carries no font.
var DefaultFont = gobold.TTF

const (
	defaultPixelHeight = 64
	defaultThreshold   = 128
	rasterPadding      = 2
)

// Point is one sampled position in world units.
type Point struct {
	X, Y, Z float64
}

// Request describes the text to sample.
type Request struct {
	Message  string
	FontData []byte  // TTF/OTF bytes; DefaultFont when nil
	Size     float64 // glyph em height in world units
	Depth    float64 // z extent of the cloud; points lie on the faces at ±Depth/2
}

// Sampler produces a centered point cloud for a request.
//
// An empty cloud with a nil error is a valid answer (e.g. whitespace only).
type Sampler interface {
	Sample(ctx context.Context, req Request) ([]Point, error)
}

// RasterSampler rasterizes the message with an OpenType face and keeps the
// outline pixels of the coverage mask.
type RasterSampler struct {
	// PixelHeight is the raster font size. Larger values give denser clouds.
	PixelHeight float64
	// Threshold is the alpha above which a pixel counts as ink.
	Threshold uint8
	// Seed drives the front/back face choice. Zero seeds from the clock.
	Seed int64
}

// NewRasterSampler creates a sampler with default raster settings.
func NewRasterSampler() *RasterSampler {
	return &RasterSampler{
		PixelHeight: defaultPixelHeight,
		Threshold:   defaultThreshold,
	}
}

// Sample implements Sampler.
func (s *RasterSampler) Sample(ctx context.Context, req Request) ([]Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Size <= 0 {
		return nil, fmt.Errorf("glyph: invalid text size %v", req.Size)
	}

	mask, err := s.rasterize(req)
	if err != nil {
		return nil, err
	}
	if mask == nil {
		return nil, nil
	}

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	threshold := s.threshold()
	scale := req.Size / s.pixelHeight()
	bounds := mask.Bounds()

	var points []Point
	minX, maxX := bounds.Max.X, bounds.Min.X
	minY, maxY := bounds.Max.Y, bounds.Min.Y

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if y%16 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isOutline(mask, x, y, threshold) {
				continue
			}
			z := -req.Depth / 2
			if rng.Intn(2) == 1 {
				z = req.Depth / 2
			}
			// 图像 Y 轴向下，世界 Y 轴向上
			points = append(points, Point{X: float64(x), Y: float64(-y), Z: z})
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}

	if len(points) == 0 {
		return nil, nil
	}

	cx := float64(minX+maxX) / 2
	cy := -float64(minY+maxY) / 2
	for i := range points {
		points[i].X = (points[i].X - cx) * scale
		points[i].Y = (points[i].Y - cy) * scale
	}
	return points, nil
}

// rasterize draws the message into an alpha mask. A nil mask means there is
// nothing to draw.
func (s *RasterSampler) rasterize(req Request) (*image.Alpha, error) {
	data := req.FontData
	if data == nil {
		data = DefaultFont
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    s.pixelHeight(),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to create face: %w", err)
	}
	defer face.Close()

	advance := font.MeasureString(face, req.Message)
	width := advance.Ceil()
	if width <= 0 {
		return nil, nil
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	mask := image.NewAlpha(image.Rect(0, 0, width+2*rasterPadding, height+2*rasterPadding))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(rasterPadding, rasterPadding+ascent),
	}
	d.DrawString(req.Message)
	return mask, nil
}

func (s *RasterSampler) pixelHeight() float64 {
	if s.PixelHeight <= 0 {
		return defaultPixelHeight
	}
	return s.PixelHeight
}

func (s *RasterSampler) threshold() uint8 {
	if s.Threshold == 0 {
		return defaultThreshold
	}
	return s.Threshold
}

// isOutline reports whether (x, y) is ink with at least one non-ink 4-neighbour.
func isOutline(m *image.Alpha, x, y int, threshold uint8) bool {
	if m.AlphaAt(x, y).A < threshold {
		return false
	}
	return m.AlphaAt(x-1, y).A < threshold ||
		m.AlphaAt(x+1, y).A < threshold ||
		m.AlphaAt(x, y-1).A < threshold ||
		m.AlphaAt(x, y+1).A < threshold
}
