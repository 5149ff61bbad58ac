package scenes

import (
	"io"
	"log"
	"math"
	"os"
	"testing"

	"go.uber.org/goleak"

	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/game"
	"github.com/gonewx/glyphfield/pkg/utils"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// newTestScene 创建测试用场景，测试结束时释放
func newTestScene(t *testing.T, width, height int, scale float64) *HeroScene {
	t.Helper()
	s, err := NewHeroScene(game.NewResourceManager(), config.DefaultFieldConfig(), width, height, scale)
	if err != nil {
		t.Fatalf("NewHeroScene failed: %v", err)
	}
	t.Cleanup(s.Dispose)
	return s
}

func TestHeroScene_ImplementsLifecycle(t *testing.T) {
	var s Scene = newTestScene(t, 800, 600, 1)
	if _, ok := s.(game.Resizable); !ok {
		t.Error("HeroScene must be resizable")
	}
	if _, ok := s.(game.Disposable); !ok {
		t.Error("HeroScene must be disposable")
	}
}

func TestHeroScene_LogicalViewport(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		scale     float64
		wantClass config.ViewportClass
		wantCount int
	}{
		{name: "桌面", width: 1280, scale: 1, wantClass: config.ViewportDesktop, wantCount: 400},
		{name: "高 DPI 桌面", width: 2560, scale: 2, wantClass: config.ViewportDesktop, wantCount: 400},
		// 1400 屏幕像素 / 2 = 700 逻辑像素，低于断点
		{name: "高 DPI 手机", width: 1400, scale: 2, wantClass: config.ViewportMobile, wantCount: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, tt.width, 800, tt.scale)
			if got := s.Field().Class(); got != tt.wantClass {
				t.Errorf("class = %v, want %v", got, tt.wantClass)
			}
			if got := s.Field().Buffers().Count; got != tt.wantCount {
				t.Errorf("particle count = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestHeroScene_ResizeAcrossBreakpoint(t *testing.T) {
	s := newTestScene(t, 1280, 720, 1)
	desktopTitle := s.titleFace

	s.Resize(375, 667)
	if s.Field().Class() != config.ViewportMobile {
		t.Fatalf("class = %v after shrinking, want mobile", s.Field().Class())
	}
	if s.Field().Buffers().Count != 200 {
		t.Errorf("particle count = %d, want 200", s.Field().Buffers().Count)
	}
	if s.titleFace == desktopTitle {
		t.Error("title font must be reloaded for the mobile class")
	}
	want := config.HeroTitleSize * config.HeroMobileTextScale
	if math.Abs(s.titleFace.Size-want) > 1e-9 {
		t.Errorf("title size = %v, want %v", s.titleFace.Size, want)
	}

	// 非法尺寸被忽略
	s.Resize(0, 100)
	if s.width != 375 {
		t.Errorf("width = %d after invalid resize, want 375", s.width)
	}
}

func TestHeroScene_PointerModes(t *testing.T) {
	// 空消息：粒子场停留在 ambient，旋转始终追随指针
	cfg := config.DefaultFieldConfig()
	cfg.Message = " "
	s, err := NewHeroScene(game.NewResourceManager(), cfg, 800, 600, 1)
	if err != nil {
		t.Fatalf("NewHeroScene failed: %v", err)
	}
	defer s.Dispose()

	step := func(n int) {
		for i := 0; i < n; i++ {
			s.advance(1.0 / 60.0)
		}
	}

	// 鼠标位于右上角
	s.handlePointer(utils.PointerSample{X: 800, Y: 0})
	step(200)
	rx, ry := s.Field().Rotation()
	if rx <= 0 || ry <= 0 {
		t.Fatalf("rotation = (%v, %v), want both positive for a top-right cursor", rx, ry)
	}

	// 触摸后鼠标位置被忽略
	s.handlePointer(utils.PointerSample{X: 0, Y: 600, IsTouching: true})
	if !s.touchMode {
		t.Fatal("touch must switch the scene to touch mode")
	}
	s.handlePointer(utils.PointerSample{X: 800, Y: 0})
	step(400)
	rx, ry = s.Field().Rotation()
	if rx >= 0 || ry >= 0 {
		t.Errorf("rotation = (%v, %v), want the bottom-left touch to win", rx, ry)
	}

	// 抬起手指后回到中心
	s.handlePointer(utils.PointerSample{TouchReleased: true})
	step(600)
	rx, ry = s.Field().Rotation()
	if math.Abs(rx) > 0.01 || math.Abs(ry) > 0.01 {
		t.Errorf("rotation = (%v, %v) after release, want near zero", rx, ry)
	}
}

func TestHeroScene_RevealFadesIn(t *testing.T) {
	s := newTestScene(t, 800, 600, 1)

	if s.Revealed() || s.RevealProgress() != 0 {
		t.Fatal("hero content must start hidden")
	}

	s.reveal()
	if !s.Revealed() {
		t.Fatal("reveal not recorded")
	}

	s.advance(config.HeroRevealDuration / 2)
	mid := s.RevealProgress()
	if mid <= 0.5 || mid >= 1 {
		t.Errorf("eased progress at half time = %v, want in (0.5, 1)", mid)
	}

	s.advance(config.HeroRevealDuration)
	if got := s.RevealProgress(); got != 1 {
		t.Errorf("progress after the fade = %v, want 1", got)
	}

	// 后续循环不会重新开始淡入
	s.reveal()
	if got := s.RevealProgress(); got != 1 {
		t.Errorf("second reveal restarted the fade: progress %v", got)
	}
}

func TestHeroScene_HeroLines(t *testing.T) {
	cfg := config.DefaultFieldConfig()
	cfg.Hero.Title = ""
	cfg.Hero.Subtitle = "Building things for the web, one particle at a time, with a subtitle long enough to wrap"

	s, err := NewHeroScene(game.NewResourceManager(), cfg, 375, 667, 1)
	if err != nil {
		t.Fatalf("NewHeroScene failed: %v", err)
	}
	defer s.Dispose()

	title, subtitle := s.heroLines()
	if title != cfg.Message {
		t.Errorf("title = %q, want the message %q", title, cfg.Message)
	}
	if len(subtitle) < 2 {
		t.Errorf("subtitle = %q, want it wrapped on a narrow screen", subtitle)
	}
}

func TestHeroScene_DisposeIdempotent(t *testing.T) {
	before := goleak.IgnoreCurrent()
	s, err := NewHeroScene(game.NewResourceManager(), nil, 800, 600, 1)
	if err != nil {
		t.Fatalf("NewHeroScene failed: %v", err)
	}
	s.Dispose()
	s.Dispose()
	if !s.Field().Disposed() {
		t.Error("field must be disposed with the scene")
	}
	goleak.VerifyNone(t, before)
}
