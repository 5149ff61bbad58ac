package render

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/glyphfield/pkg/camera"
	"github.com/gonewx/glyphfield/pkg/components"
	"github.com/gonewx/glyphfield/pkg/config"
)

// cellAspect 终端字符宽高比（约 1:2）
const cellAspect = 0.5

// 粒子按屏幕直径选择字符
var pointRunes = []struct {
	maxDiameter float64
	r           rune
}{
	{0.35, '·'},
	{0.7, '•'},
	{1e9, '●'},
}

// TermSurface draws the particle field into a tcell screen, one cell per
// visible particle.
//
// Sizes are in cells. Later particles overwrite earlier ones in the same cell.
type TermSurface struct {
	pointProjector

	screen   tcell.Screen
	opacity  float64
	dirty    bool
	disposed bool
}

// NewTermSurface creates a surface drawing into screen.
func NewTermSurface(screen tcell.Screen, cam config.CameraConfig, opacity float64) *TermSurface {
	return &TermSurface{
		pointProjector: newPointProjector(camera.New(cam.FOV, 1, cam.Near, cam.Far, cam.Distance)),
		screen:         screen,
		opacity:        opacity,
	}
}

// SetProjection implements field.Surface. The aspect is corrected for
// non-square cells.
func (s *TermSurface) SetProjection(fovDeg, aspect, near, far float64) {
	s.camera.SetProjection(fovDeg, aspect*cellAspect, near, far)
}

// Resize implements field.Surface. Sizes are in cells.
func (s *TermSurface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Bind implements field.Surface.
func (s *TermSurface) Bind(b *components.ParticleBuffers) {
	s.buffers = b
}

// SetRotation implements field.Surface.
func (s *TermSurface) SetRotation(rotX, rotY float64) {
	s.rotX, s.rotY = rotX, rotY
}

// MarkDirty implements field.Surface.
func (s *TermSurface) MarkDirty() {
	s.dirty = true
}

// Dirty reports whether the buffers changed since the last Draw.
func (s *TermSurface) Dirty() bool {
	return s.dirty
}

// Dispose implements field.Surface. The screen itself belongs to the host.
func (s *TermSurface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.buffers = nil
	log.Printf("[TermSurface] Disposed")
}

// Draw clears the screen and plots every visible particle. The caller
// calls Show.
func (s *TermSurface) Draw() {
	if s.disposed {
		return
	}
	s.screen.Clear()
	s.dirty = false
	if s.buffers == nil {
		return
	}

	b := s.buffers
	for i, p := range s.project() {
		if !p.Visible {
			continue
		}
		x, y := int(p.X), int(p.Y)
		if x < 0 || y < 0 || x >= s.width || y >= s.height {
			continue
		}

		r, g, bl := b.Color(i)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			channel(r*s.opacity),
			channel(g*s.opacity),
			channel(bl*s.opacity),
		))
		s.screen.SetContent(x, y, pointRune(b.Sizes[i]*p.Scale), nil, style)
	}
}

func pointRune(diameter float64) rune {
	for _, pr := range pointRunes {
		if diameter <= pr.maxDiameter {
			return pr.r
		}
	}
	return pointRunes[len(pointRunes)-1].r
}

// channel 将 [0,1] 颜色分量转换为 0-255
func channel(v float64) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v*255 + 0.5)
}
