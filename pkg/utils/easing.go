package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使粒子运动看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]。
// 注意：EaseOutBack 和 EaseOutElastic 会短暂超出 [0, 1]（过冲效果）。
//
// 参考：https://easings.net/

const (
	// backOvershoot 是 EaseOutBack 的过冲系数（easings.net 标准值）
	backOvershoot = 1.70158

	// elasticPeriod 是 EaseOutElastic 的角频率 2π/3
	elasticPeriod = (2 * math.Pi) / 3
)

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢（粒子离开文字时使用）
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuart 四次方缓出
// 用于让聚合时的旋涡强度平滑衰减到 0
// 公式：f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// EaseOutBack 回弹缓出
// 特点：越过终点后再回到终点（粒子飞向文字时的过冲）
// 公式：f(t) = 1 + c3·(t-1)³ + c1·(t-1)²，其中 c1 = 1.70158, c3 = c1 + 1
func EaseOutBack(t float64) float64 {
	c3 := backOvershoot + 1
	return 1 + c3*math.Pow(t-1, 3) + backOvershoot*math.Pow(t-1, 2)
}

// EaseOutElastic 弹性缓出
// 特点：在终点附近衰减振荡（粒子尺寸的"弹跳"生长）
// 端点精确：f(0) = 0, f(1) = 1
func EaseOutElastic(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticPeriod) + 1
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
