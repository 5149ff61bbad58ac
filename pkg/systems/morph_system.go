package systems

import (
	"math"

	"github.com/gonewx/glyphfield/pkg/components"
	"github.com/gonewx/glyphfield/pkg/utils"
)

// Morph constants (形变参数)
const (
	// maxDistanceOffset 距离偏移上限：离文字越远的粒子越早出发
	maxDistanceOffset = 0.3
	// distanceOffsetScale 距离到偏移的比例
	distanceOffsetScale = 0.01
	// swirlStrength 聚合开始时旋涡幅度
	swirlStrength = 2.0
	// pulseThreshold 个体进度超过此值后尺寸开始脉冲
	pulseThreshold = 0.8

	// ripple 保持文字时的波纹
	rippleSpeed     = 1.5
	rippleFrequency = 0.5
	rippleAmplitude = 0.015

	// leaveJitter 离开文字时的抖动幅度（乘以线性进度）
	leaveJitter = 0.02
	// settleDuration 离开文字后残余抖动衰减到零的时间（秒）
	settleDuration = 1.0
)

// MorphSystem 根据当前阶段计算每个粒子的位置和尺寸
//
// 所有粒子使用同一阶段的公式；个体差异只来自随机速度、相位，
// 以及 enteringText 阶段基于距离的出发偏移。
//
// 结果直接写回 ParticleBuffers（Positions / Sizes）。
type MorphSystem struct {
	// AmbientDrift ambient 阶段的垂直摆动幅度
	AmbientDrift float64
}

// NewMorphSystem 创建形变系统
func NewMorphSystem(ambientDrift float64) *MorphSystem {
	return &MorphSystem{AmbientDrift: ambientDrift}
}

// Update 按阶段更新全部粒子
//
// 参数:
//   - b: 粒子缓冲区
//   - phase: 当前阶段状态（使用 Phase 与 Progress）
//   - t: 粒子场时钟（秒）
//   - nominal: 粒子名义尺寸
func (s *MorphSystem) Update(b *components.ParticleBuffers, phase *components.PhaseComponent, t, nominal float64) {
	if b == nil || b.Count == 0 {
		return
	}

	// 文字布局未就绪时只能做环境运动
	if !b.TextReady() {
		for i := 0; i < b.Count; i++ {
			s.ambient(b, i, t, ambientAnchor{start: phase.StartTime}, nominal, 0.2)
		}
		return
	}

	p := utils.Clamp01(phase.Progress)

	switch phase.Phase {
	case components.PhaseEnteringText:
		sizeProgress := utils.EaseOutElastic(p)
		swirl := (1.0 - utils.EaseOutQuart(p)) * swirlStrength
		for i := 0; i < b.Count; i++ {
			s.entering(b, i, t, p, sizeProgress, swirl, nominal)
		}
	case components.PhaseHoldingText:
		for i := 0; i < b.Count; i++ {
			s.holding(b, i, t, nominal)
		}
	case components.PhaseLeavingText:
		back := 1.0 - utils.EaseInOutCubic(p)
		for i := 0; i < b.Count; i++ {
			s.leaving(b, i, t, p, back, nominal)
		}
	default:
		anchor := ambientAnchor{start: phase.StartTime}
		if phase.Previous == components.PhaseLeavingText {
			anchor.settle = 1.0 - utils.Clamp01((t-phase.StartTime)/settleDuration)
		}
		for i := 0; i < b.Count; i++ {
			s.ambient(b, i, t, anchor, nominal, 0.3)
		}
	}
}

// ambientAnchor ambient 阶段的起点
type ambientAnchor struct {
	// start 进入 ambient 的时间，摆动在此刻为零
	start float64
	// settle 离开文字时的残余抖动权重，1 为刚进入，衰减到 0
	settle float64
}

// ambient 环境漂浮：围绕环境锚点做垂直正弦摆动
//
// 摆动以进入阶段时的正弦值为零点，因此与上一阶段的结束位置衔接；
// 从 leavingText 进入时，离开阶段末尾的抖动与尺寸在 settleDuration 内衰减。
func (s *MorphSystem) ambient(b *components.ParticleBuffers, i int, t float64, anchor ambientAnchor, nominal, sizeAmp float64) {
	i3 := i * 3
	phase := b.Phases[i]
	osc := t*b.Speeds[i] + phase
	osc0 := anchor.start*b.Speeds[i] + phase
	residual := leaveJitter * anchor.settle

	b.Positions[i3] = b.Original[i3] + math.Sin(osc0)*residual
	b.Positions[i3+1] = b.Original[i3+1] + (math.Sin(osc)-math.Sin(osc0))*s.AmbientDrift + math.Cos(osc0)*residual
	b.Positions[i3+2] = b.Original[i3+2]

	size := nominal * (0.8 + sizeAmp*math.Sin(t*0.5+phase))
	if anchor.settle > 0 {
		size = utils.Lerp(size, nominal*(0.8+0.4*math.Sin(osc)), anchor.settle)
	}
	b.Sizes[i] = size
}

// entering 飞向文字：回弹缓动 + 逐渐消失的旋涡 + 弹性尺寸
func (s *MorphSystem) entering(b *components.ParticleBuffers, i int, t, p, sizeProgress, swirl, nominal float64) {
	i3 := i * 3
	phase := b.Phases[i]

	sx, sy, sz := b.Original[i3], b.Original[i3+1], b.Original[i3+2]
	tx, ty, tz := b.Text[i3], b.Text[i3+1], b.Text[i3+2]

	ip := IndividualProgress(p, distance(sx, sy, sz, tx, ty, tz))
	ap := utils.EaseOutBack(ip)

	fi := float64(i)
	swirlX := math.Sin(t*2+phase+fi*0.1) * swirl
	swirlY := math.Cos(t*3+phase+fi*0.05) * swirl
	swirlZ := math.Sin(t*1.5+phase) * swirl

	rest := 1.0 - ap
	b.Positions[i3] = utils.Lerp(sx, tx, ap) + rest*swirlX
	b.Positions[i3+1] = utils.Lerp(sy, ty, ap) + rest*swirlY
	b.Positions[i3+2] = utils.Lerp(sz, tz, ap) + rest*swirlZ

	target := nominal * (1.2 + 0.5*math.Sin(t*2+phase))
	pulse := 0.0
	if ip > pulseThreshold {
		pulse = math.Sin((ip-pulseThreshold)*15) * 0.5
	}
	b.Sizes[i] = utils.Lerp(b.InitialSizes[i], target, sizeProgress) * (1 + pulse)
}

// holding 保持文字：沿 x+y 方向传播的波纹 + 个体微抖
func (s *MorphSystem) holding(b *components.ParticleBuffers, i int, t, nominal float64) {
	i3 := i * 3
	phase := b.Phases[i]
	tx, ty, tz := b.Text[i3], b.Text[i3+1], b.Text[i3+2]

	ripple := t*rippleSpeed + (tx+ty)*rippleFrequency
	waveX := math.Sin(ripple) * rippleAmplitude
	waveY := math.Cos(ripple) * rippleAmplitude

	b.Positions[i3] = tx + waveX + math.Sin(t*1.5+phase)*0.01
	b.Positions[i3+1] = ty + waveY + math.Cos(t*1.8+phase)*0.01
	b.Positions[i3+2] = tz + math.Sin(t+phase)*0.005

	factor := math.Sin(ripple)*0.1 + 0.2
	b.Sizes[i] = nominal * (1.0 + factor*math.Sin(t*1.5+phase))
}

// leaving 离开文字：从文字布局插值回环境布局，抖动随线性进度增大
func (s *MorphSystem) leaving(b *components.ParticleBuffers, i int, t, p, back, nominal float64) {
	i3 := i * 3
	osc := t*b.Speeds[i] + b.Phases[i]

	b.Positions[i3] = utils.Lerp(b.Original[i3], b.Text[i3], back) + math.Sin(osc)*leaveJitter*p
	b.Positions[i3+1] = utils.Lerp(b.Original[i3+1], b.Text[i3+1], back) + math.Cos(osc)*leaveJitter*p
	b.Positions[i3+2] = utils.Lerp(b.Original[i3+2], b.Text[i3+2], back)

	b.Sizes[i] = nominal * (0.8 + 0.4*math.Sin(osc))
}

// IndividualProgress 计算粒子的个体进度
//
// 距离越大的粒子获得越大的偏移（上限 0.3），因此更早出发；
// 全局进度为 1 时所有粒子的个体进度都恰好为 1。
func IndividualProgress(p, dist float64) float64 {
	offset := math.Min(maxDistanceOffset, dist*distanceOffsetScale)
	return math.Min(1.0, (p+offset)/(1.0+offset))
}

func distance(ax, ay, az, bx, by, bz float64) float64 {
	dx, dy, dz := bx-ax, by-ay, bz-az
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
