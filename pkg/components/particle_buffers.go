package components

// ParticleBuffers holds every particle of a field as parallel arrays.
//
// Vector attributes (Positions, Colors, Original, Text) are packed with a
// stride of 3, so particle i lives at [i*3 : i*3+3]. Scalar attributes
// (Sizes, InitialSizes, Speeds, Phases) have one entry per particle.
//
// The renderer reads Positions, Colors and Sizes directly. Original and Text
// are the two layouts the morph interpolates between.
//
// This is a pure data component - the MorphSystem writes it, renderers read it.
type ParticleBuffers struct {
	// Count 粒子数量（同一代内不变）
	Count int

	// Generation 代号，每次按新数量重建时递增
	Generation uint64

	// Live buffers (渲染器每帧读取)
	Positions []float64 // 当前位置 (x,y,z)
	Colors    []float64 // 颜色 (r,g,b)，范围 0-1
	Sizes     []float64 // 当前尺寸（世界单位）

	// Per-particle random parameters (创建时确定)
	InitialSizes []float64 // 初始尺寸（"长出来"动画的起点）
	Speeds       []float64 // 环境摆动速度
	Phases       []float64 // 随机相位 [0, 2π)

	// Layouts (布局)
	Original []float64 // 环境布局，创建后不可变
	Text     []float64 // 文字布局，采样完成前为 nil
}

// NewParticleBuffers allocates buffers for n particles. Text stays nil.
func NewParticleBuffers(n int, generation uint64) *ParticleBuffers {
	return &ParticleBuffers{
		Count:        n,
		Generation:   generation,
		Positions:    make([]float64, n*3),
		Colors:       make([]float64, n*3),
		Sizes:        make([]float64, n),
		InitialSizes: make([]float64, n),
		Speeds:       make([]float64, n),
		Phases:       make([]float64, n),
		Original:     make([]float64, n*3),
	}
}

// TextReady reports whether the text layout has been populated.
func (b *ParticleBuffers) TextReady() bool {
	return b.Text != nil && len(b.Text) == b.Count*3
}

// Position returns particle i's current position.
func (b *ParticleBuffers) Position(i int) (x, y, z float64) {
	i3 := i * 3
	return b.Positions[i3], b.Positions[i3+1], b.Positions[i3+2]
}

// OriginalPosition returns particle i's ambient anchor.
func (b *ParticleBuffers) OriginalPosition(i int) (x, y, z float64) {
	i3 := i * 3
	return b.Original[i3], b.Original[i3+1], b.Original[i3+2]
}

// TextPosition returns particle i's text target. Callers must check TextReady.
func (b *ParticleBuffers) TextPosition(i int) (x, y, z float64) {
	i3 := i * 3
	return b.Text[i3], b.Text[i3+1], b.Text[i3+2]
}

// Color returns particle i's color.
func (b *ParticleBuffers) Color(i int) (r, g, bl float64) {
	i3 := i * 3
	return b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2]
}
