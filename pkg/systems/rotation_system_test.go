package systems

import (
	"math"
	"testing"

	"github.com/gonewx/glyphfield/pkg/components"
)

// TestRotationSystem_SmoothsPointer 指针向目标指数平滑
func TestRotationSystem_SmoothsPointer(t *testing.T) {
	rs := NewRotationSystem(0.05, 0.3)
	p := &components.PointerComponent{TargetX: 1, TargetY: -1}
	r := &components.RotationComponent{}

	rs.Update(p, r, components.PhaseAmbient)
	if math.Abs(p.X-0.05) > 1e-12 || math.Abs(p.Y+0.05) > 1e-12 {
		t.Fatalf("after one tick pointer = (%v, %v), want (0.05, -0.05)", p.X, p.Y)
	}

	for i := 0; i < 1000; i++ {
		rs.Update(p, r, components.PhaseAmbient)
	}
	if math.Abs(p.X-1) > 1e-6 || math.Abs(p.Y+1) > 1e-6 {
		t.Errorf("pointer did not converge: (%v, %v)", p.X, p.Y)
	}
	if math.Abs(r.Y-0.3) > 1e-3 || math.Abs(r.X+0.3) > 1e-3 {
		t.Errorf("rotation did not follow pointer: (%v, %v)", r.X, r.Y)
	}
}

// TestRotationSystem_HoldSpins 保持阶段忽略指针，缓慢自转
func TestRotationSystem_HoldSpins(t *testing.T) {
	rs := NewRotationSystem(0.05, 0.3)
	p := &components.PointerComponent{TargetX: 1, TargetY: 1}
	r := &components.RotationComponent{}

	for i := 0; i < 10; i++ {
		rs.Update(p, r, components.PhaseHoldingText)
	}
	if math.Abs(r.Y-10*holdSpinY) > 1e-12 || math.Abs(r.X-10*holdSpinX) > 1e-12 {
		t.Errorf("hold rotation = (%v, %v)", r.X, r.Y)
	}
	// 指针仍然被平滑，离开保持阶段后可以无跳变地追随
	if p.X == 0 {
		t.Error("pointer smoothing must continue during hold")
	}
}
