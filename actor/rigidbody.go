package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RigidBody is the narrow phase's view of a simulated body: a pose and a shape.
// Mass, velocity and sleeping state belong to the simulation; queries only read
// the transform and never mutate the body.
type RigidBody struct {
	Transform Transform

	// Collision shape
	Shape Shape
}

// NewRigidBody creates a new rigid body with the given pose and shape.
func NewRigidBody(transform Transform, shape Shape) *RigidBody {
	return &RigidBody{
		Transform: transform,
		Shape:     shape,
	}
}

func (rb *RigidBody) ShrinkSize() float64 {
	return rb.Shape.ShrinkSize()
}

// InitialSupportWorld returns the shape's seed point in world space.
func (rb *RigidBody) InitialSupportWorld() mgl64.Vec3 {
	return rb.Transform.ToWorld(rb.Shape.InitialSupport())
}

// SupportWorld returns the farthest core point along a world direction.
func (rb *RigidBody) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	// 1. Direction into local space (conjugate rotation)
	localDirection := rb.Transform.DirectionToLocal(direction)

	// 2. Support in local space
	localSupport := rb.Shape.Support(localDirection)

	// 3. Back to world space (rotation + translation)
	return rb.Transform.ToWorld(localSupport)
}

// OpposingSupportsWorld returns the world supports along direction and -direction.
func (rb *RigidBody) OpposingSupportsWorld(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	hi, lo := rb.Shape.OpposingSupports(rb.Transform.DirectionToLocal(direction))
	return rb.Transform.ToWorld(hi), rb.Transform.ToWorld(lo)
}

// SupportArrayWorld fills out[i] with the world support along directions[i].
// out may alias directions.
func (rb *RigidBody) SupportArrayWorld(directions, out []mgl64.Vec3) {
	for i := range directions {
		out[i] = rb.Transform.DirectionToLocal(directions[i])
	}
	rb.Shape.SupportArray(out[:len(directions)], out)
	for i := range directions {
		out[i] = rb.Transform.ToWorld(out[i])
	}
}

func (rb *RigidBody) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return rb.Transform.ToLocal(point)
}

func (rb *RigidBody) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return rb.Transform.ToWorld(point)
}

// Axes returns the body's local axes in world space.
func (rb *RigidBody) Axes() [3]mgl64.Vec3 {
	return rb.Transform.Axes()
}

// AABB returns the world bounds of the collision surface.
func (rb *RigidBody) AABB() AABB {
	return ComputeAABB(rb.Shape, rb.Transform)
}
