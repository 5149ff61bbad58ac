package systems

import (
	"log"

	"github.com/gonewx/glyphfield/pkg/components"
	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/utils"
)

// PhaseSystem 驱动粒子场的四状态时间机
//
// 状态表：
//
//	ambient      → enteringText  文字布局就绪 且 停留 ≥ InitialDelay
//	enteringText → holdingText   停留 ≥ TransitionDuration
//	holdingText  → leavingText   停留 ≥ HoldDuration
//	leavingText  → ambient       停留 ≥ TransitionDuration（发出 reveal 信号）
//
// 每次进入 ambient（包括 leavingText 之后的再次进入）都要等满 InitialDelay。
//
// 固定时长阶段的后继阶段从精确边界（StartTime + duration）开始计时，
// 这样整个循环的周期不受帧间隔影响。ambient 的退出受就绪条件控制，
// 所以后继阶段从当前时间开始计时。
//
// 每个 tick 最多发生一次状态转换。
type PhaseSystem struct {
	timing config.TimingConfig
}

// PhaseTransition 描述一次阶段转换
type PhaseTransition struct {
	From components.AnimationPhase
	To   components.AnimationPhase
	// Reveal 为 true 表示刚完成 leavingText，宿主应显示前景内容
	Reveal bool
}

// NewPhaseSystem 创建阶段系统
func NewPhaseSystem(timing config.TimingConfig) *PhaseSystem {
	return &PhaseSystem{timing: timing}
}

// Update 推进阶段时间机
//
// 参数:
//   - state: 粒子场阶段状态（原地修改）
//   - now: 当前时间（秒，相对粒子场启动）
//   - textReady: 文字布局是否就绪
//
// 返回:
//   - PhaseTransition: 发生的转换
//   - bool: 本 tick 是否发生了转换
func (s *PhaseSystem) Update(state *components.PhaseComponent, now float64, textReady bool) (PhaseTransition, bool) {
	elapsed := now - state.StartTime

	var (
		fire     bool
		nextTime float64
	)

	switch state.Phase {
	case components.PhaseAmbient:
		if textReady && elapsed >= s.timing.InitialDelay {
			fire = true
			nextTime = now
		}
	case components.PhaseEnteringText, components.PhaseLeavingText:
		if elapsed >= s.timing.TransitionDuration {
			fire = true
			nextTime = state.StartTime + s.timing.TransitionDuration
		}
	case components.PhaseHoldingText:
		if elapsed >= s.timing.HoldDuration {
			fire = true
			nextTime = state.StartTime + s.timing.HoldDuration
		}
	}

	var tr PhaseTransition
	if fire {
		tr = PhaseTransition{
			From:   state.Phase,
			To:     state.Phase.Next(),
			Reveal: state.Phase == components.PhaseLeavingText,
		}
		state.Previous = tr.From
		state.Phase = tr.To
		state.StartTime = nextTime
		state.Progress = 0
		log.Printf("[PhaseSystem] %s → %s (t=%.3f)", tr.From, tr.To, nextTime)
	}

	state.Elapsed = now - state.StartTime
	if p := s.progress(state.Phase, state.Elapsed); p > state.Progress {
		state.Progress = p
	}

	return tr, fire
}

// progress 计算阶段内线性进度
func (s *PhaseSystem) progress(phase components.AnimationPhase, elapsed float64) float64 {
	var duration float64
	switch phase {
	case components.PhaseAmbient:
		duration = s.timing.InitialDelay
	case components.PhaseHoldingText:
		duration = s.timing.HoldDuration
	default:
		duration = s.timing.TransitionDuration
	}

	if duration <= 0 {
		return 1
	}
	return utils.Clamp01(elapsed / duration)
}
