// Package camera provides the perspective camera used to project the particle
// field onto a 2D surface.
//
// The camera sits on the +Z axis looking at the origin. Field rotation is
// applied as a model matrix before the view/projection, so every renderer
// (GPU window or terminal) projects particles the same way.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera with a configurable field of view, aspect
// ratio and clipping planes.
type Camera struct {
	FOV      float64 // vertical field of view in degrees
	Aspect   float64
	Near     float64
	Far      float64
	Distance float64 // distance from origin along +Z

	view       mgl64.Mat4
	projection mgl64.Mat4
	viewProj   mgl64.Mat4
}

// Projected is a particle position mapped to surface pixels.
type Projected struct {
	X, Y float64
	// Scale converts a world-space size at this depth to pixels.
	Scale float64
	// Visible is false when the point lies outside the clipping volume.
	Visible bool
}

// New creates a camera and computes its matrices.
func New(fovDeg, aspect, near, far, distance float64) *Camera {
	c := &Camera{
		FOV:      fovDeg,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Distance: distance,
	}
	c.UpdateProjection()
	return c
}

// SetProjection replaces the projection parameters.
func (c *Camera) SetProjection(fovDeg, aspect, near, far float64) {
	c.FOV, c.Aspect, c.Near, c.Far = fovDeg, aspect, near, far
	c.UpdateProjection()
}

// SetAspect updates the aspect ratio after a viewport resize.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the view and projection matrices.
func (c *Camera) UpdateProjection() {
	c.view = mgl64.LookAtV(
		mgl64.Vec3{0, 0, c.Distance},
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.viewProj = c.projection.Mul4(c.view)
}

// Model builds the field rotation matrix (X then Y, like a scene graph node).
func Model(rotX, rotY float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(rotY).Mul4(mgl64.HomogRotate3DX(rotX))
}

// Project maps a world point through model, view and projection to pixel
// coordinates on a width×height surface.
func (c *Camera) Project(model mgl64.Mat4, x, y, z float64, width, height int) Projected {
	fh := float64(height)
	return project(c.viewProj.Mul4(model), x, y, z, float64(width), fh, c.focal(fh))
}

// ProjectAll projects every particle of a stride-3 position buffer into dst,
// reusing dst's backing array.
func (c *Camera) ProjectAll(dst []Projected, positions []float64, rotX, rotY float64, width, height int) []Projected {
	dst = dst[:0]
	vp := c.viewProj.Mul4(Model(rotX, rotY))
	fw, fh := float64(width), float64(height)
	focal := c.focal(fh)

	for i := 0; i+2 < len(positions); i += 3 {
		dst = append(dst, project(vp, positions[i], positions[i+1], positions[i+2], fw, fh, focal))
	}
	return dst
}

// focal 透视尺寸衰减系数：投影矩阵 [1][1] = 1/tan(fov/2)
func (c *Camera) focal(height float64) float64 {
	return c.projection.At(1, 1) * 0.5 * height
}

func project(vp mgl64.Mat4, x, y, z, fw, fh, focal float64) Projected {
	clip := vp.Mul4x1(mgl64.Vec4{x, y, z, 1})
	w := clip.W()
	if w <= 0 {
		return Projected{}
	}

	ndcZ := clip.Z() / w
	p := Projected{
		X:     (clip.X()/w + 1) * 0.5 * fw,
		Y:     (1 - clip.Y()/w) * 0.5 * fh,
		Scale: focal / w,
	}
	p.Visible = ndcZ >= -1 && ndcZ <= 1 && p.X >= 0 && p.X <= fw && p.Y >= 0 && p.Y <= fh
	return p
}
