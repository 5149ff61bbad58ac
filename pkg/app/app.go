// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/embedded"
	"github.com/gonewx/glyphfield/pkg/game"
	"github.com/gonewx/glyphfield/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 粒子场配置文件路径，为空则使用内嵌的 data/field.yaml
	ConfigPath string
	// Message 覆盖配置中的文字，为空则使用配置值
	Message string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	heroScene                *scenes.HeroScene
	renderScale              float64
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 未指定 ConfigPath 时需要先调用 embedded.Init()；
// 内嵌资源不可用时退回默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldConfig, err := loadFieldConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("粒子场配置加载失败: %w", err)
	}
	applyMessage(fieldConfig, cfg.Message)
	log.Printf("[App] Message: %q", fieldConfig.Message)

	resourceManager := game.NewResourceManager()
	sceneManager := game.NewSceneManager()

	scale := config.RenderScale(ebiten.Monitor().DeviceScaleFactor())
	heroScene, err := scenes.NewHeroScene(resourceManager, fieldConfig,
		int(config.DefaultWindowWidth*scale), int(config.DefaultWindowHeight*scale), scale)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	sceneManager.SwitchTo(heroScene)

	return &App{
		sceneManager: sceneManager,
		heroScene:    heroScene,
		renderScale:  scale,
		verbose:      cfg.Verbose,
	}, nil
}

// loadFieldConfig 按优先级加载配置：文件 > 内嵌 > 默认
func loadFieldConfig(path string) (*config.FieldConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载配置文件: %s", path)
		return config.LoadFieldConfig(path)
	}
	if embedded.IsInitialized() {
		log.Printf("[Config] 加载内嵌配置: %s", config.DefaultFieldConfigPath)
		return config.LoadEmbeddedFieldConfig(config.DefaultFieldConfigPath)
	}
	log.Printf("[Config] 内嵌资源未初始化，使用默认配置")
	return config.DefaultFieldConfig(), nil
}

// applyMessage 用命令行文字覆盖配置；标题未配置时跟随文字
func applyMessage(fc *config.FieldConfig, message string) {
	if message == "" {
		return
	}
	if fc.Hero.Title == "" || fc.Hero.Title == fc.Message {
		fc.Hero.Title = message
	}
	fc.Message = message
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 画面跟随窗口大小，并按设备缩放系数（最多 2 倍）渲染，
// 尺寸变化会转发给当前场景。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := config.RenderScale(ebiten.Monitor().DeviceScaleFactor())
	if scale != a.renderScale {
		log.Printf("[App] Render scale %.2f → %.2f", a.renderScale, scale)
		a.renderScale = scale
		a.heroScene.SetRenderScale(scale)
	}
	w := int(float64(outsideWidth) * scale)
	h := int(float64(outsideHeight) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	a.sceneManager.Resize(w, h)
	return w, h
}

// Dispose 释放当前场景
func (a *App) Dispose() {
	a.sceneManager.Dispose()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
