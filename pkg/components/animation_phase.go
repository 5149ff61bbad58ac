package components

// AnimationPhase 粒子场动画阶段
//
// 阶段严格按以下顺序循环，不会跳过任何状态：
//
//	Ambient → EnteringText → HoldingText → LeavingText → Ambient ...
type AnimationPhase int

const (
	// PhaseAmbient 环境漂浮（初始状态）
	PhaseAmbient AnimationPhase = iota
	// PhaseEnteringText 粒子飞向文字
	PhaseEnteringText
	// PhaseHoldingText 保持文字形态
	PhaseHoldingText
	// PhaseLeavingText 粒子离开文字回到环境布局
	PhaseLeavingText
)

// String 返回阶段名称（用于日志）
func (p AnimationPhase) String() string {
	switch p {
	case PhaseAmbient:
		return "ambient"
	case PhaseEnteringText:
		return "enteringText"
	case PhaseHoldingText:
		return "holdingText"
	case PhaseLeavingText:
		return "leavingText"
	default:
		return "unknown"
	}
}

// Next 返回循环中唯一的后继阶段
func (p AnimationPhase) Next() AnimationPhase {
	switch p {
	case PhaseAmbient:
		return PhaseEnteringText
	case PhaseEnteringText:
		return PhaseHoldingText
	case PhaseHoldingText:
		return PhaseLeavingText
	default:
		return PhaseAmbient
	}
}

// PhaseComponent 粒子场的阶段状态
// 整个粒子场只有一个活动阶段，所有粒子共用
type PhaseComponent struct {
	// Phase 当前阶段
	Phase AnimationPhase

	// StartTime 进入当前阶段的时间（秒，相对粒子场启动）
	StartTime float64

	// Previous 上一个阶段；初始或重建后为 PhaseAmbient
	Previous AnimationPhase

	// Progress 当前阶段的线性进度 [0, 1]
	// 进入阶段时重置为 0，阶段内单调不减
	Progress float64

	// Elapsed 在当前阶段已经停留的时间（秒）
	Elapsed float64
}
