// termfield 在终端中运行粒子文字动画
//
// 使用方法:
//
//	go run ./cmd/termfield                       # 默认配置
//	go run ./cmd/termfield --message "Hi there"  # 自定义文字
//	go run ./cmd/termfield --config my.yaml      # 自定义配置
//
// 移动鼠标旋转粒子场，按 q 或 Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/field"
	"github.com/gonewx/glyphfield/pkg/render"
	"github.com/gonewx/glyphfield/pkg/utils"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag     = flag.String("config", "", "Path to a field config YAML (default: built-in defaults)")
	messageFlag    = flag.String("message", "", "Override the message the particles form")
	fpsFlag        = flag.Int("fps", 30, "Frames per second")
	textScaleFlag  = flag.Float64("text-scale", 6, "Text size multiplier (terminal cells are much coarser than pixels)")
	breakpointFlag = flag.Int("breakpoint", 100, "Terminals narrower than this many columns use the mobile profile")
)

func main() {
	flag.Parse()

	// 默认静音运行，终端画面不能被日志打乱
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	adaptForTerminal(cfg, *messageFlag, *textScaleFlag, *breakpointFlag)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	app, err := newTermApp(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	app.run(*fpsFlag)
	app.close()
	screen.Fini()
}

// loadConfig 读取配置文件，未指定时使用默认配置
func loadConfig(path string) (*config.FieldConfig, error) {
	if path == "" {
		return config.DefaultFieldConfig(), nil
	}
	return config.LoadFieldConfig(path)
}

// adaptForTerminal 将像素单位的配置换算为终端字符单位
func adaptForTerminal(cfg *config.FieldConfig, message string, textScale float64, breakpoint int) {
	if message != "" {
		cfg.Message = message
		cfg.Hero.Title = message
	}
	if textScale > 0 {
		cfg.Mobile.TextSize *= textScale
		cfg.Desktop.TextSize *= textScale
	}
	if breakpoint >= 0 {
		cfg.MobileBreakpoint = breakpoint
	}
}

// termApp 终端宿主：事件循环、帧计时与前景文字
type termApp struct {
	screen  tcell.Screen
	surface *render.TermSurface
	field   *field.ParticleField

	width, height int
	title         string
	revealed      bool
}

func newTermApp(screen tcell.Screen, cfg *config.FieldConfig) (*termApp, error) {
	w, h := screen.Size()
	a := &termApp{
		screen: screen,
		width:  w,
		height: h,
		title:  cfg.Hero.Title,
	}
	if a.title == "" {
		a.title = cfg.Message
	}

	a.surface = render.NewTermSurface(screen, cfg.Camera, cfg.Motion.Opacity)

	var err error
	a.field, err = field.New(cfg, a.surface, nil, w, h)
	if err != nil {
		return nil, err
	}
	a.field.OnReveal(func() {
		a.revealed = true
	})
	return a, nil
}

// run 运行事件循环，直到退出键或屏幕关闭
func (a *termApp) run(fps int) {
	if fps <= 0 {
		fps = 30
	}

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if a.handle(ev) {
				return
			}
		case now := <-ticker.C:
			a.tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// handle 处理一个终端事件，返回 true 表示退出
func (a *termApp) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.width, a.height = ev.Size()
		a.field.Resize(a.width, a.height)
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return true
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.field.SetPointer(utils.NormalizePointer(x, y, a.width, a.height))
	}
	return false
}

// tick 推进一帧并在需要时重绘
func (a *termApp) tick(dt float64) {
	a.field.Update(dt)
	if !a.surface.Dirty() {
		return
	}
	a.surface.Draw()
	if a.revealed {
		a.drawTitle()
	}
	a.screen.Show()
}

// drawTitle 在底部居中绘制前景文字
func (a *termApp) drawTitle() {
	y := a.height - 2
	if y < 0 {
		return
	}
	x := (a.width - runewidth.StringWidth(a.title)) / 2
	if x < 0 {
		x = 0
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for _, r := range a.title {
		w := runewidth.RuneWidth(r)
		if x+w > a.width {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += w
	}
}

// close 停止粒子场
func (a *termApp) close() {
	a.field.Dispose()
}
