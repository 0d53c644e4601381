package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 3D space.
// Rotation is expected to be a unit quaternion.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformAt creates a transform at the given position with the given rotation.
func NewTransformAt(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{Position: position, Rotation: rotation.Normalize()}
}

// ToWorld maps a local point into world space.
func (t Transform) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local).Add(t.Position)
}

// ToLocal maps a world point into local space.
func (t Transform) ToLocal(world mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(world.Sub(t.Position))
}

// DirectionToLocal rotates a world direction into local space. The conjugate of a
// unit quaternion is its inverse, so no division is involved.
func (t Transform) DirectionToLocal(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(direction)
}

// DirectionToWorld rotates a local direction into world space.
func (t Transform) DirectionToWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(direction)
}

// Axes returns the local X, Y and Z axes expressed in world space.
func (t Transform) Axes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		t.Rotation.Rotate(mgl64.Vec3{1, 0, 0}),
		t.Rotation.Rotate(mgl64.Vec3{0, 1, 0}),
		t.Rotation.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

// Translated returns a copy of the transform moved by offset.
func (t Transform) Translated(offset mgl64.Vec3) Transform {
	return Transform{Position: t.Position.Add(offset), Rotation: t.Rotation}
}
