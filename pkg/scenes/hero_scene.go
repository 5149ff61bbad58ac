// Package scenes 提供应用的场景实现
package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/field"
	"github.com/gonewx/glyphfield/pkg/game"
	"github.com/gonewx/glyphfield/pkg/render"
	"github.com/gonewx/glyphfield/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// heroBackground 背景色
var heroBackground = color.RGBA{R: 10, G: 10, B: 18, A: 255}

// heroTextColor 前景文字颜色
var heroTextColor = color.RGBA{R: 235, G: 235, B: 245, A: 255}

// heroSubtitleWidth 副标题最大宽度占视口宽度的比例
const heroSubtitleWidth = 0.8

// HeroScene is the landing scene: a particle field behind a title that fades
// in once the particles first leave the message.
type HeroScene struct {
	resourceManager *game.ResourceManager
	cfg             *config.FieldConfig

	surface *render.EbitenSurface
	field   *field.ParticleField

	// renderScale 逻辑像素到屏幕像素的倍数
	renderScale float64
	// width, height 屏幕像素尺寸（Layout 返回值）
	width, height int

	// touchMode 收到过触摸（或运行在移动端）后忽略鼠标位置
	touchMode bool

	revealed      bool
	revealElapsed float64

	titleFace    *text.GoTextFace
	subtitleFace *text.GoTextFace
}

// NewHeroScene creates the scene for a screen of width x height pixels.
//
// renderScale is the ratio of screen pixels to logical pixels; the particle
// field lays out in logical pixels.
func NewHeroScene(rm *game.ResourceManager, cfg *config.FieldConfig, width, height int, renderScale float64) (*HeroScene, error) {
	if cfg == nil {
		cfg = config.DefaultFieldConfig()
	}
	if renderScale <= 0 {
		renderScale = 1
	}

	s := &HeroScene{
		resourceManager: rm,
		cfg:             cfg,
		renderScale:     renderScale,
		width:           width,
		height:          height,
		touchMode:       utils.IsMobile(),
	}

	fontData, err := rm.LoadFontData(game.FontBold)
	if err != nil {
		return nil, fmt.Errorf("failed to load message font: %w", err)
	}

	s.surface = render.NewEbitenSurface(cfg.Camera, cfg.Motion.Opacity)
	s.surface.SetPixelScale(renderScale)

	lw, lh := s.logicalSize()
	s.field, err = field.New(cfg, s.surface, nil, lw, lh, field.WithFontData(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create hero scene: %w", err)
	}
	s.field.OnReveal(s.reveal)

	s.loadFaces()

	log.Printf("[HeroScene] Created: %dx%d (scale %.2f)", width, height, renderScale)
	return s, nil
}

// Update 读取指针并推进粒子场
func (s *HeroScene) Update(deltaTime float64) {
	s.handlePointer(utils.ReadPointer())
	s.advance(deltaTime)
}

// Draw 绘制背景、粒子与前景内容
func (s *HeroScene) Draw(screen *ebiten.Image) {
	screen.Fill(heroBackground)
	s.surface.Draw(screen)
	if s.revealed {
		s.drawHero(screen)
	}
}

// Resize implements game.Resizable.
func (s *HeroScene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height

	prevClass := s.field.Class()
	lw, lh := s.logicalSize()
	s.field.Resize(lw, lh)
	s.surface.SetPixelScale(s.renderScale)

	if s.field.Class() != prevClass || s.titleFace == nil {
		s.loadFaces()
	}
}

// SetRenderScale 更新渲染缩放（窗口移动到不同 DPI 的显示器时）
// 新的缩放在下一次 Resize 时生效。
func (s *HeroScene) SetRenderScale(scale float64) {
	if scale <= 0 || scale == s.renderScale {
		return
	}
	s.renderScale = scale
	s.titleFace = nil
}

// Dispose implements game.Disposable.
func (s *HeroScene) Dispose() {
	s.field.Dispose()
}

// Revealed 前景内容是否已开始显示
func (s *HeroScene) Revealed() bool {
	return s.revealed
}

// RevealProgress 前景内容淡入进度 [0, 1]（已缓动）
func (s *HeroScene) RevealProgress() float64 {
	if !s.revealed {
		return 0
	}
	return utils.EaseOutCubic(utils.Clamp01(s.revealElapsed / config.HeroRevealDuration))
}

// Field 返回场景持有的粒子场
func (s *HeroScene) Field() *field.ParticleField {
	return s.field
}

// handlePointer 将本帧指针采样转发给粒子场
func (s *HeroScene) handlePointer(sample utils.PointerSample) {
	switch {
	case sample.IsTouching:
		s.touchMode = true
		s.field.SetPointer(utils.NormalizePointer(sample.X, sample.Y, s.width, s.height))
	case sample.TouchReleased:
		s.field.ReleasePointer()
	case !s.touchMode:
		s.field.SetPointer(utils.NormalizePointer(sample.X, sample.Y, s.width, s.height))
	}
}

// advance 推进粒子场与前景淡入计时
func (s *HeroScene) advance(dt float64) {
	s.field.Update(dt)
	if s.revealed {
		s.revealElapsed += dt
	}
}

// reveal 粒子离开文字时回调；前景内容只淡入一次
func (s *HeroScene) reveal() {
	if s.revealed {
		return
	}
	s.revealed = true
	s.revealElapsed = 0
	log.Printf("[HeroScene] Revealing hero content")
}

// logicalSize 屏幕像素换算为逻辑像素
func (s *HeroScene) logicalSize() (int, int) {
	return int(float64(s.width) / s.renderScale), int(float64(s.height) / s.renderScale)
}

// loadFaces 按当前档位加载标题与副标题字体
func (s *HeroScene) loadFaces() {
	scale := config.HeroTextScale(s.field.Class()) * s.renderScale

	var err error
	s.titleFace, err = s.resourceManager.LoadFont(game.FontBold, config.HeroTitleSize*scale)
	if err != nil {
		log.Printf("[HeroScene] Failed to load title font: %v", err)
	}
	s.subtitleFace, err = s.resourceManager.LoadFont(game.FontRegular, config.HeroSubtitleSize*scale)
	if err != nil {
		log.Printf("[HeroScene] Failed to load subtitle font: %v", err)
	}
}

// heroLines 返回要绘制的行（标题在前）
func (s *HeroScene) heroLines() (title string, subtitle []string) {
	title = s.cfg.Hero.Title
	if title == "" {
		title = s.cfg.Message
	}
	if s.cfg.Hero.Subtitle != "" && s.subtitleFace != nil {
		subtitle = utils.WrapText(s.cfg.Hero.Subtitle, s.subtitleFace, float64(s.width)*heroSubtitleWidth)
	}
	return title, subtitle
}

// drawHero 居中绘制前景内容，带淡入与上移
func (s *HeroScene) drawHero(screen *ebiten.Image) {
	if s.titleFace == nil {
		return
	}

	eased := s.RevealProgress()
	offset := config.CalculateHeroOffset(eased) * s.renderScale
	spacing := config.HeroLineSpacing * s.renderScale

	title, subtitle := s.heroLines()
	_, titleH := text.Measure(title, s.titleFace, 0)
	totalH := titleH
	subLineH := 0.0
	if len(subtitle) > 0 {
		_, subLineH = text.Measure(subtitle[0], s.subtitleFace, 0)
		totalH += spacing + subLineH*float64(len(subtitle))
	}

	y := (float64(s.height)-totalH)/2 + offset
	s.drawCentered(screen, title, s.titleFace, y, eased)
	y += titleH + spacing
	for _, line := range subtitle {
		s.drawCentered(screen, line, s.subtitleFace, y, eased)
		y += subLineH
	}
}

// drawCentered 水平居中绘制一行文字
func (s *HeroScene) drawCentered(screen *ebiten.Image, line string, face *text.GoTextFace, y, alpha float64) {
	w, _ := text.Measure(line, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(s.width)-w)/2, y)
	op.ColorScale.ScaleWithColor(heroTextColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, line, face, op)
}
