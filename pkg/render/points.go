// Package render implements the drawables a ParticleField renders into.
//
// Both surfaces share the same perspective camera and projection, so the
// window and the terminal show the same field.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/glyphfield/pkg/camera"
	"github.com/gonewx/glyphfield/pkg/components"
)

// minPointPixels 粒子在屏幕上的最小直径（像素）
const minPointPixels = 1.0

// pointProjector 共享的投影状态：相机、旋转与绑定的缓冲区
type pointProjector struct {
	camera    *camera.Camera
	buffers   *components.ParticleBuffers
	rotX      float64
	rotY      float64
	width     int
	height    int
	projected []camera.Projected
}

func newPointProjector(cam *camera.Camera) pointProjector {
	return pointProjector{camera: cam}
}

// project 将绑定缓冲区的全部粒子投影到当前视口
func (p *pointProjector) project() []camera.Projected {
	if p.buffers == nil || p.width <= 0 || p.height <= 0 {
		return p.projected[:0]
	}
	p.projected = p.camera.ProjectAll(p.projected, p.buffers.Positions, p.rotX, p.rotY, p.width, p.height)
	return p.projected
}

// pointDiameter 粒子直径（像素），带透视衰减
func pointDiameter(size, scale float64) float64 {
	d := size * scale
	if d < minPointPixels {
		return minPointPixels
	}
	return d
}

// appendPointQuad 为一个粒子追加 4 个顶点和 6 个索引
//
// 顶点颜色使用预乘 alpha，配合加法混合实现发光叠加。
//
// 参数:
//   - vertices, indices: 复用的批次数组
//   - x, y: 粒子中心（屏幕坐标）
//   - diameter: 粒子直径（像素）
//   - r, g, b: 颜色（0-1）
//   - alpha: 不透明度
//   - srcSize: 贴图边长
func appendPointQuad(vertices []ebiten.Vertex, indices []uint16, x, y, diameter, r, g, b, alpha float64, srcSize float32) ([]ebiten.Vertex, []uint16) {
	half := diameter / 2
	x0, y0 := float32(x-half), float32(y-half)
	x1, y1 := float32(x+half), float32(y+half)

	cr, cg, cb, ca := float32(r*alpha), float32(g*alpha), float32(b*alpha), float32(alpha)

	base := uint16(len(vertices))
	vertices = append(vertices,
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: srcSize, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: srcSize, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: srcSize, SrcY: srcSize, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	)
	indices = append(indices,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	return vertices, indices
}
