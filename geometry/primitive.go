// Package geometry provides the non-body convex operands of the narrow phase:
// analytic primitives, convex hulls, triangles and triangle meshes. All of them
// implement gjk.Convex so the same solver runs against them.
package geometry

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// PrimitiveType identifies the analytic shape of a Primitive.
type PrimitiveType int

const (
	PrimitiveBox PrimitiveType = iota
	PrimitiveSphere
	PrimitiveCylinder
)

func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveBox:
		return "box"
	case PrimitiveSphere:
		return "sphere"
	case PrimitiveCylinder:
		return "cylinder"
	}
	return "unknown"
}

// Primitive is an analytic world geometry. It is axis-aligned, exact (no
// shrink) and never moves.
type Primitive struct {
	Type   PrimitiveType
	Center mgl64.Vec3
	shape  actor.Shape
}

// NewBoxPrimitive creates an axis-aligned box.
func NewBoxPrimitive(center, halfExtents mgl64.Vec3) (*Primitive, error) {
	box, err := actor.NewBox(halfExtents)
	if err != nil {
		return nil, errors.Wrap(err, "box primitive")
	}
	return newPrimitive(PrimitiveBox, center, box, box.SetShrinkSize)
}

// NewSpherePrimitive creates a sphere.
func NewSpherePrimitive(center mgl64.Vec3, radius float64) (*Primitive, error) {
	sphere, err := actor.NewSphere(radius)
	if err != nil {
		return nil, errors.Wrap(err, "sphere primitive")
	}
	return newPrimitive(PrimitiveSphere, center, sphere, sphere.SetShrinkSize)
}

// NewCylinderPrimitive creates a cylinder whose axis is the world Y axis.
func NewCylinderPrimitive(center mgl64.Vec3, radius, halfHeight float64) (*Primitive, error) {
	cylinder, err := actor.NewCylinder(radius, halfHeight)
	if err != nil {
		return nil, errors.Wrap(err, "cylinder primitive")
	}
	return newPrimitive(PrimitiveCylinder, center, cylinder, cylinder.SetShrinkSize)
}

func newPrimitive(t PrimitiveType, center mgl64.Vec3, shape actor.Shape, setShrink func(float64) error) (*Primitive, error) {
	if err := setShrink(0); err != nil {
		return nil, errors.Wrapf(err, "%s primitive", t)
	}
	return &Primitive{Type: t, Center: center, shape: shape}, nil
}

func (p *Primitive) ShrinkSize() float64 {
	return 0
}

func (p *Primitive) InitialSupportWorld() mgl64.Vec3 {
	return p.Center
}

func (p *Primitive) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return p.shape.Support(direction).Add(p.Center)
}

func (p *Primitive) OpposingSupportsWorld(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	hi, lo := p.shape.OpposingSupports(direction)
	return hi.Add(p.Center), lo.Add(p.Center)
}

func (p *Primitive) SupportArrayWorld(directions, out []mgl64.Vec3) {
	p.shape.SupportArray(directions, out)
	for i := range directions {
		out[i] = out[i].Add(p.Center)
	}
}

func (p *Primitive) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(p.Center)
}

func (p *Primitive) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return point.Add(p.Center)
}

func (p *Primitive) Axes() [3]mgl64.Vec3 {
	return worldAxes
}

func (p *Primitive) AABB() actor.AABB {
	return actor.ComputeAABB(p.shape, actor.NewTransformAt(p.Center, mgl64.QuatIdent()))
}

var worldAxes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
