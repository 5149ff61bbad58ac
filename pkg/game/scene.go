package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one full-window view (e.g., the hero screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于在视口尺寸变化时通知场景
//
// 实现此接口的场景会在 ebiten Layout 报告新尺寸时被调用 Resize()。
type Resizable interface {
	// Resize 视口尺寸变化（逻辑像素）
	Resize(width, height int)
}

// Disposable 是一个可选接口，用于在场景被替换或程序退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - 切换到其他场景
//   - 游戏窗口关闭
type Disposable interface {
	// Dispose 释放场景持有的资源，可重复调用
	Dispose()
}
