package config

// 布局配置常量
// 本文件定义了窗口与前景内容的布局参数

// Window Configuration (窗口配置)
const (
	// DefaultWindowWidth 桌面端初始窗口宽度（逻辑像素）
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 桌面端初始窗口高度（逻辑像素）
	DefaultWindowHeight = 720

	// MaxRenderScale 渲染缩放上限（高 DPI 设备最多按 2 倍渲染）
	MaxRenderScale = 2.0
)

// Hero Configuration (前景内容配置)
const (
	// HeroRevealDuration 前景内容淡入时长（秒）
	HeroRevealDuration = 1.5

	// HeroRevealOffset 淡入开始时前景内容向下偏移的距离（逻辑像素）
	HeroRevealOffset = 20.0

	// HeroTitleSize 标题字号（逻辑像素，桌面档位）
	HeroTitleSize = 48.0

	// HeroSubtitleSize 副标题字号（逻辑像素，桌面档位）
	HeroSubtitleSize = 22.0

	// HeroMobileTextScale 手机档位的字号缩放
	HeroMobileTextScale = 0.6

	// HeroLineSpacing 标题与副标题的间距（逻辑像素）
	HeroLineSpacing = 16.0
)

// RenderScale 根据设备缩放系数计算渲染缩放
//
// 参数：
//   - deviceScale: ebiten.Monitor().DeviceScaleFactor() 的返回值
//
// 返回：
//   - 渲染缩放，不超过 MaxRenderScale；非法值按 1 处理
func RenderScale(deviceScale float64) float64 {
	if deviceScale <= 0 {
		return 1
	}
	if deviceScale > MaxRenderScale {
		return MaxRenderScale
	}
	return deviceScale
}

// HeroTextScale 返回指定档位的前景字号缩放
func HeroTextScale(class ViewportClass) float64 {
	if class == ViewportMobile {
		return HeroMobileTextScale
	}
	return 1
}

// CalculateHeroOffset 计算前景内容在淡入过程中的垂直偏移
//
// 参数：
//   - easedProgress: 已缓动的淡入进度 [0, 1]
//
// 返回：
//   - 向下偏移（逻辑像素），进度 0 时为 HeroRevealOffset，进度 1 时为 0
func CalculateHeroOffset(easedProgress float64) float64 {
	if easedProgress <= 0 {
		return HeroRevealOffset
	}
	if easedProgress >= 1 {
		return 0
	}
	return HeroRevealOffset * (1 - easedProgress)
}
