package systems

import (
	"github.com/gonewx/glyphfield/pkg/components"
)

const (
	// rotationFollow 旋转追随指针的系数（每帧）
	rotationFollow = 0.05
	// holdSpinY, holdSpinX 保持文字时的自转增量（弧度/帧）
	holdSpinY = 0.001
	holdSpinX = 0.0005
)

// RotationSystem 平滑指针输入并更新粒子场整体旋转
//
// holdingText 阶段忽略指针，改为缓慢自转；其他阶段旋转角追随平滑后的指针。
type RotationSystem struct {
	smoothing float64
	scale     float64
}

// NewRotationSystem 创建旋转系统
//
// 参数:
//   - smoothing: 指针指数平滑系数（每帧）
//   - scale: 指针偏移到旋转角的比例
func NewRotationSystem(smoothing, scale float64) *RotationSystem {
	return &RotationSystem{smoothing: smoothing, scale: scale}
}

// Update 推进一帧
func (s *RotationSystem) Update(p *components.PointerComponent, r *components.RotationComponent, phase components.AnimationPhase) {
	p.X += (p.TargetX - p.X) * s.smoothing
	p.Y += (p.TargetY - p.Y) * s.smoothing

	if phase == components.PhaseHoldingText {
		r.Y += holdSpinY
		r.X += holdSpinX
		return
	}

	r.Y += (p.X*s.scale - r.Y) * rotationFollow
	r.X += (p.Y*s.scale - r.X) * rotationFollow
}
