package field

import "github.com/gonewx/glyphfield/pkg/components"

// Surface is the drawable a ParticleField renders into.
//
// The field owns the particle buffers and writes them every tick. A surface
// only reads them, on the same goroutine, after MarkDirty.
type Surface interface {
	// SetProjection configures the perspective camera.
	SetProjection(fovDeg, aspect, near, far float64)
	// Resize sets the drawable size in pixels.
	Resize(width, height int)
	// Bind attaches the buffers of a (new) particle generation.
	Bind(b *components.ParticleBuffers)
	// SetRotation sets the whole-field rotation in radians.
	SetRotation(rotX, rotY float64)
	// MarkDirty tells the surface the buffers changed since the last draw.
	MarkDirty()
	// Dispose releases GPU or terminal resources. Called once.
	Dispose()
}
