package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestCamera(width, height int) *Camera {
	return New(75, float64(width)/float64(height), 0.1, 1000, 30)
}

func TestProject_OriginAtCenter(t *testing.T) {
	c := newTestCamera(800, 600)
	p := c.Project(mgl64.Ident4(), 0, 0, 0, 800, 600)

	if !p.Visible {
		t.Fatal("origin must be visible")
	}
	if math.Abs(p.X-400) > 1e-6 || math.Abs(p.Y-300) > 1e-6 {
		t.Errorf("origin projected to (%v, %v), want (400, 300)", p.X, p.Y)
	}
}

func TestProject_FrustumEdges(t *testing.T) {
	c := newTestCamera(800, 600)
	halfH := 30 * math.Tan(mgl64.DegToRad(75)/2)
	halfW := halfH * c.Aspect

	top := c.Project(mgl64.Ident4(), 0, halfH, 0, 800, 600)
	if math.Abs(top.Y) > 1e-6 {
		t.Errorf("top edge projected to y=%v, want 0", top.Y)
	}

	right := c.Project(mgl64.Ident4(), halfW, 0, 0, 800, 600)
	if math.Abs(right.X-800) > 1e-6 {
		t.Errorf("right edge projected to x=%v, want 800", right.X)
	}

	// 屏幕 Y 轴向下，世界 Y 轴向上
	below := c.Project(mgl64.Ident4(), 0, -1, 0, 800, 600)
	if below.Y <= 300 {
		t.Errorf("negative world y must map below center, got %v", below.Y)
	}
}

func TestProject_BehindCamera(t *testing.T) {
	c := newTestCamera(800, 600)
	if p := c.Project(mgl64.Ident4(), 0, 0, 40, 800, 600); p.Visible {
		t.Error("point behind the camera must not be visible")
	}
}

func TestProject_SizeAttenuation(t *testing.T) {
	c := newTestCamera(800, 600)
	near := c.Project(mgl64.Ident4(), 0, 0, 10, 800, 600)
	far := c.Project(mgl64.Ident4(), 0, 0, -10, 800, 600)

	if near.Scale <= far.Scale {
		t.Errorf("closer points must appear larger: near=%v far=%v", near.Scale, far.Scale)
	}
}

func TestSetAspect(t *testing.T) {
	c := newTestCamera(800, 600)
	c.SetAspect(2)
	if c.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", c.Aspect)
	}

	// 非法宽高比被忽略
	c.SetAspect(0)
	c.SetAspect(math.Inf(1))
	if c.Aspect != 2 {
		t.Errorf("invalid aspect must be ignored, got %v", c.Aspect)
	}
}

func TestProjectAll_MatchesProject(t *testing.T) {
	c := newTestCamera(640, 480)
	positions := []float64{0, 0, 0, 3, -2, 5, -10, 4, -7}

	all := c.ProjectAll(nil, positions, 0.2, -0.4, 640, 480)
	if len(all) != 3 {
		t.Fatalf("ProjectAll returned %d points, want 3", len(all))
	}

	model := Model(0.2, -0.4)
	for i := 0; i < 3; i++ {
		want := c.Project(model, positions[i*3], positions[i*3+1], positions[i*3+2], 640, 480)
		got := all[i]
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || got.Visible != want.Visible {
			t.Errorf("point %d: ProjectAll=%+v Project=%+v", i, got, want)
		}
	}
}
