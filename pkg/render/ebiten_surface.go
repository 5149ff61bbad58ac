package render

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/glyphfield/pkg/camera"
	"github.com/gonewx/glyphfield/pkg/components"
	"github.com/gonewx/glyphfield/pkg/config"
)

// dotTextureSize 粒子贴图边长（像素）
const dotTextureSize = 32

// additiveBlend 加法混合（发光叠加，不做深度测试）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// EbitenSurface draws the particle field as additive point sprites.
//
// Every particle becomes one textured quad. The whole field is submitted
// with a single DrawTriangles call per frame.
type EbitenSurface struct {
	pointProjector

	opacity    float64
	pixelScale float64
	dot        *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16

	dirty    bool
	disposed bool
}

// NewEbitenSurface creates a surface. GPU resources are allocated on the
// first Draw.
func NewEbitenSurface(cam config.CameraConfig, opacity float64) *EbitenSurface {
	return &EbitenSurface{
		pointProjector: newPointProjector(camera.New(cam.FOV, 1, cam.Near, cam.Far, cam.Distance)),
		opacity:        opacity,
		pixelScale:     1,
	}
}

// SetPixelScale sets how many screen pixels one viewport unit covers.
// The field lays out in logical pixels; high-DPI screens draw at a multiple.
func (s *EbitenSurface) SetPixelScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale != s.pixelScale {
		s.pixelScale = scale
		s.dirty = true
	}
}

// SetProjection implements field.Surface.
func (s *EbitenSurface) SetProjection(fovDeg, aspect, near, far float64) {
	s.camera.SetProjection(fovDeg, aspect, near, far)
}

// Resize implements field.Surface.
func (s *EbitenSurface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Bind implements field.Surface.
func (s *EbitenSurface) Bind(b *components.ParticleBuffers) {
	s.buffers = b
	if b != nil && cap(s.vertices) < b.Count*4 {
		s.vertices = make([]ebiten.Vertex, 0, b.Count*4)
		s.indices = make([]uint16, 0, b.Count*6)
	}
}

// SetRotation implements field.Surface.
func (s *EbitenSurface) SetRotation(rotX, rotY float64) {
	s.rotX, s.rotY = rotX, rotY
}

// MarkDirty implements field.Surface.
func (s *EbitenSurface) MarkDirty() {
	s.dirty = true
}

// Dispose implements field.Surface.
func (s *EbitenSurface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.dot != nil {
		s.dot.Deallocate()
		s.dot = nil
	}
	s.buffers = nil
	log.Printf("[EbitenSurface] Disposed")
}

// Draw renders the bound particles onto screen.
func (s *EbitenSurface) Draw(screen *ebiten.Image) {
	if s.disposed || s.buffers == nil {
		return
	}
	if s.dirty {
		s.rebuildVertices()
		s.dirty = false
	}
	if len(s.vertices) == 0 {
		return
	}

	if s.dot == nil {
		s.dot = ebiten.NewImageFromImage(newDotImage(dotTextureSize))
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.Blend = additiveBlend
	screen.DrawTriangles(s.vertices, s.indices, s.dot, op)
}

// rebuildVertices 根据最新粒子状态重建顶点批次
func (s *EbitenSurface) rebuildVertices() {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	b := s.buffers
	ps := s.pixelScale
	for i, p := range s.project() {
		if !p.Visible {
			continue
		}
		r, g, bl := b.Color(i)
		s.vertices, s.indices = appendPointQuad(s.vertices, s.indices,
			p.X*ps, p.Y*ps, pointDiameter(b.Sizes[i], p.Scale)*ps,
			r, g, bl, s.opacity, dotTextureSize)
	}
}

// newDotImage 生成一个柔边圆点贴图（白色，预乘 alpha）
func newDotImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / (c + 0.5)
			if d >= 1 {
				continue
			}
			// 中心实心，边缘平滑衰减
			a := 1.0
			if d > 0.5 {
				a = 1 - (d-0.5)/0.5
				a *= a
			}
			v := uint8(a * 255)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return img
}
