// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 存储当前帧的指针采样
// 用于统一处理鼠标和触摸输入
type PointerSample struct {
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// IsTouching 是否有活动的触摸
	IsTouching bool
	// TouchReleased 本帧是否刚刚结束所有触摸（用于重置指针目标）
	TouchReleased bool
}

// ReadPointer 读取当前帧的指针状态
// 优先检测触摸，没有触摸时返回鼠标位置
func ReadPointer() PointerSample {
	sample := PointerSample{}

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		sample.X, sample.Y = ebiten.TouchPosition(touchIDs[0])
		sample.IsTouching = true
		return sample
	}

	// 所有手指都已离开屏幕
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		sample.TouchReleased = true
		return sample
	}

	sample.X, sample.Y = ebiten.CursorPosition()
	return sample
}

// NormalizePointer 将屏幕坐标映射到 [-1, 1] 区间
//
// X 轴向右为正，Y 轴向上为正（与场景坐标一致）。
// 视口尺寸为 0 时返回 (0, 0)。
func NormalizePointer(x, y, width, height int) (nx, ny float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx = (float64(x)/float64(width) - 0.5) * 2
	ny = (float64(y)/float64(height) - 0.5) * -2
	return nx, ny
}
