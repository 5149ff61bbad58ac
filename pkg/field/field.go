// Package field owns the particle-to-text animation.
//
// A ParticleField is a handle returned by New. The host drives it from a
// single goroutine (Update, SetPointer, Resize) and releases it with Dispose.
// The only background work is glyph sampling, whose results are applied on
// the next Update if they still belong to the current particle generation.
package field

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gonewx/glyphfield/internal/glyph"
	"github.com/gonewx/glyphfield/pkg/components"
	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/systems"
)

// resultBuffer 采样结果通道容量
const resultBuffer = 4

// Option customizes a ParticleField.
type Option func(*ParticleField)

// WithRand injects the random source used for layouts and text assignment.
func WithRand(rng *rand.Rand) Option {
	return func(f *ParticleField) {
		if rng != nil {
			f.rng = rng
		}
	}
}

// WithFontData sets the font used for text sampling.
func WithFontData(data []byte) Option {
	return func(f *ParticleField) {
		f.fontData = data
	}
}

// ParticleField is a fixed-size particle system cycling between an ambient
// cloud and the sampled outline of a message.
type ParticleField struct {
	cfg      *config.FieldConfig
	surface  Surface
	sampler  glyph.Sampler
	rng      *rand.Rand
	fontData []byte
	palette  [][3]float64

	// inert 没有绘制表面时，所有操作都是空操作
	inert    bool
	disposed bool

	width, height int
	class         config.ViewportClass
	profile       config.ViewportProfile

	generation uint64
	buffers    *components.ParticleBuffers
	phase      components.PhaseComponent
	pointer    components.PointerComponent
	rotation   components.RotationComponent
	clock      float64

	phaseSystem    *systems.PhaseSystem
	morphSystem    *systems.MorphSystem
	rotationSystem *systems.RotationSystem

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	results chan glyph.Result

	onReveal func()
}

// New creates a field sized for a viewport and starts sampling its message.
//
// A nil cfg uses config.DefaultFieldConfig. A nil sampler uses a
// glyph.RasterSampler. A nil surface yields an inert field.
func New(cfg *config.FieldConfig, surface Surface, sampler glyph.Sampler, width, height int, opts ...Option) (*ParticleField, error) {
	if cfg == nil {
		cfg = config.DefaultFieldConfig()
	}

	f := &ParticleField{
		cfg:     cfg,
		surface: surface,
		sampler: sampler,
		width:   width,
		height:  height,
	}
	for _, opt := range opts {
		opt(f)
	}

	if surface == nil {
		log.Printf("[ParticleField] No surface available, field is inert")
		f.inert = true
		return f, nil
	}

	for _, p := range []config.ViewportProfile{cfg.Mobile, cfg.Desktop} {
		if p.ParticleCount < 1 || p.ParticleCount > config.MaxParticleCount {
			return nil, fmt.Errorf("failed to create particle field: particle count %d outside [1, %d]",
				p.ParticleCount, config.MaxParticleCount)
		}
	}

	palette, err := cfg.PaletteRGB()
	if err != nil {
		return nil, fmt.Errorf("failed to create particle field: %w", err)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("failed to create particle field: empty palette")
	}
	f.palette = palette

	if f.sampler == nil {
		f.sampler = glyph.NewRasterSampler()
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f.phaseSystem = systems.NewPhaseSystem(cfg.Timing)
	f.morphSystem = systems.NewMorphSystem(cfg.Motion.AmbientDrift)
	f.rotationSystem = systems.NewRotationSystem(cfg.Motion.PointerSmoothing, cfg.Motion.PointerRotation)

	f.ctx, f.cancel = context.WithCancel(context.Background())
	f.results = make(chan glyph.Result, resultBuffer)

	f.class = cfg.ClassFor(width)
	f.profile = cfg.Profile(f.class)
	f.rebuild()

	f.applyViewport()
	f.requestText()

	log.Printf("[ParticleField] Created: %d particles (%s), viewport %dx%d",
		f.profile.ParticleCount, f.class, width, height)
	return f, nil
}

// OnReveal registers the callback fired each time leavingText completes.
func (f *ParticleField) OnReveal(fn func()) {
	f.onReveal = fn
}

// Update advances the field by dt seconds.
func (f *ParticleField) Update(dt float64) {
	if f.inert || f.disposed {
		return
	}

	f.drainResults()

	if dt > 0 {
		f.clock += dt
	}

	tr, fired := f.phaseSystem.Update(&f.phase, f.clock, f.buffers.TextReady())
	if fired && tr.Reveal && f.onReveal != nil {
		f.onReveal()
	}

	f.rotationSystem.Update(&f.pointer, &f.rotation, f.phase.Phase)
	f.morphSystem.Update(f.buffers, &f.phase, f.clock, f.profile.ParticleSize)

	f.surface.SetRotation(f.rotation.X, f.rotation.Y)
	f.surface.MarkDirty()
}

// SetPointer records the latest pointer sample, normalized to [-1, 1] with
// +Y up. Only the most recent sample matters.
func (f *ParticleField) SetPointer(nx, ny float64) {
	if f.inert || f.disposed {
		return
	}
	f.pointer.TargetX = nx
	f.pointer.TargetY = ny
}

// ReleasePointer resets the pointer target to the center (touch end).
func (f *ParticleField) ReleasePointer() {
	f.SetPointer(0, 0)
}

// Resize reprojects for a new viewport. Crossing the mobile breakpoint
// rebuilds the particle set and restarts the cycle at ambient.
func (f *ParticleField) Resize(width, height int) {
	if f.inert || f.disposed || width <= 0 || height <= 0 {
		return
	}

	f.width, f.height = width, height
	f.applyViewport()

	class := f.cfg.ClassFor(width)
	if class == f.class {
		return
	}

	log.Printf("[ParticleField] Viewport class %s → %s, rebuilding", f.class, class)
	f.class = class
	f.profile = f.cfg.Profile(class)
	f.generation++
	f.rebuild()
	f.requestText()
}

// Dispose stops the field and releases its surface. Safe to call twice.
func (f *ParticleField) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true

	if f.cancel != nil {
		f.cancel()
		f.wg.Wait()
	}
	if f.surface != nil {
		f.surface.Dispose()
	}
	f.onReveal = nil
	log.Printf("[ParticleField] Disposed")
}

// Phase returns the current animation phase.
func (f *ParticleField) Phase() components.AnimationPhase {
	return f.phase.Phase
}

// Progress returns the linear progress of the current phase in [0, 1].
func (f *ParticleField) Progress() float64 {
	return f.phase.Progress
}

// Buffers returns the live particle buffers (nil for an inert field).
func (f *ParticleField) Buffers() *components.ParticleBuffers {
	return f.buffers
}

// Generation returns the current particle generation.
func (f *ParticleField) Generation() uint64 {
	return f.generation
}

// Class returns the active viewport class.
func (f *ParticleField) Class() config.ViewportClass {
	return f.class
}

// Rotation returns the whole-field rotation in radians.
func (f *ParticleField) Rotation() (x, y float64) {
	return f.rotation.X, f.rotation.Y
}

// Clock returns the field time in seconds.
func (f *ParticleField) Clock() float64 {
	return f.clock
}

// Inert reports whether the field was created without a surface.
func (f *ParticleField) Inert() bool {
	return f.inert
}

// Disposed reports whether Dispose has been called.
func (f *ParticleField) Disposed() bool {
	return f.disposed
}

// applyViewport 把视口尺寸同步到表面与相机
func (f *ParticleField) applyViewport() {
	cam := f.cfg.Camera
	aspect := 1.0
	if f.width > 0 && f.height > 0 {
		aspect = float64(f.width) / float64(f.height)
	}
	f.surface.Resize(f.width, f.height)
	f.surface.SetProjection(cam.FOV, aspect, cam.Near, cam.Far)
}

// rebuild 按当前档位重新生成粒子，回到 ambient
func (f *ParticleField) rebuild() {
	n := f.profile.ParticleCount
	nominal := f.profile.ParticleSize
	radius := f.cfg.Layout.AmbientRadius

	b := components.NewParticleBuffers(n, f.generation)
	for i := 0; i < n; i++ {
		i3 := i * 3

		x, y, z := f.shellPoint(radius)
		b.Positions[i3], b.Positions[i3+1], b.Positions[i3+2] = x, y, z

		c := f.palette[f.rng.Intn(len(f.palette))]
		b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2] = c[0], c[1], c[2]

		// 从很小的尺寸开始"长出来"
		size := nominal * (0.2 + f.rng.Float64()*0.3)
		b.Sizes[i] = size
		b.InitialSizes[i] = size

		b.Speeds[i] = 0.2 + f.rng.Float64()*0.3
		b.Phases[i] = f.rng.Float64() * 2 * math.Pi
	}
	copy(b.Original, b.Positions)

	f.buffers = b
	f.phase = components.PhaseComponent{Phase: components.PhaseAmbient, StartTime: f.clock}
	f.surface.Bind(b)
}

// shellPoint 在球壳 [r.Min, r.Max] 内按球坐标角度均匀取点
func (f *ParticleField) shellPoint(r config.Range) (x, y, z float64) {
	radius := r.Min + f.rng.Float64()*(r.Max-r.Min)
	theta := f.rng.Float64() * 2 * math.Pi
	phi := f.rng.Float64() * math.Pi

	return radius * math.Sin(phi) * math.Cos(theta),
		radius * math.Sin(phi) * math.Sin(theta),
		radius * math.Cos(phi)
}

// requestText 为当前代发起异步文字采样
func (f *ParticleField) requestText() {
	req := glyph.Request{
		Message:  f.cfg.Message,
		FontData: f.fontData,
		Size:     f.profile.TextSize,
		Depth:    f.cfg.Layout.TextDepth,
	}
	glyph.Go(f.ctx, &f.wg, f.sampler, req, f.generation, f.results)
}

// drainResults 非阻塞地取出所有已完成的采样结果
func (f *ParticleField) drainResults() {
	for {
		select {
		case r := <-f.results:
			f.applyResult(r)
		default:
			return
		}
	}
}

func (f *ParticleField) applyResult(r glyph.Result) {
	if r.Generation != f.generation {
		log.Printf("[ParticleField] Discarding stale glyph cloud (generation %d, current %d)", r.Generation, f.generation)
		return
	}
	if r.Err != nil {
		log.Printf("[ParticleField] Glyph sampling failed, staying ambient: %v", r.Err)
		return
	}
	if len(r.Points) == 0 {
		log.Printf("[ParticleField] Glyph cloud is empty, staying ambient")
		return
	}

	f.buffers.Text = f.assignText(r.Points)
	log.Printf("[ParticleField] Text layout ready: %d particles from %d glyph points", f.buffers.Count, len(r.Points))
}

// assignText 为每个粒子选一个文字目标点
//
// 前 min(N, M) 个粒子从点云中有放回地随机取点；点云不足或点非法时
// 落到文字周围的小球壳上。
func (f *ParticleField) assignText(points []glyph.Point) []float64 {
	n := f.buffers.Count
	m := len(points)
	text := make([]float64, n*3)

	for i := 0; i < n; i++ {
		i3 := i * 3
		if i < m {
			p := points[f.rng.Intn(m)]
			if isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z) {
				text[i3], text[i3+1], text[i3+2] = p.X, p.Y, p.Z
				continue
			}
		}
		text[i3], text[i3+1], text[i3+2] = f.shellPoint(f.cfg.Layout.FallbackRadius)
	}
	return text
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
