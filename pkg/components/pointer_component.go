package components

// PointerComponent 指针（鼠标/触摸）平滑状态
//
// 宿主写入 TargetX/TargetY（最新采样覆盖旧值，无队列），
// RotationSystem 每帧把 X/Y 向目标指数平滑。
type PointerComponent struct {
	// TargetX, TargetY 最新指针采样，归一化到 [-1, 1]
	TargetX float64
	TargetY float64

	// X, Y 平滑后的指针位置
	X float64
	Y float64
}

// RotationComponent 粒子场整体旋转（弧度）
type RotationComponent struct {
	X float64
	Y float64
}
