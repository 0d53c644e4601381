package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Capsule is a segment of length 2*HalfHeight along Y, inflated by Radius.
//
//	  ___________
//	 /           \
//	|  |-------|  |   (segment from -HalfHeight to +HalfHeight)
//	 \___________/
//
// Like the sphere, its default shrink is the radius so the core is the segment.
type Capsule struct {
	Radius     float64
	HalfHeight float64
	margin
}

func NewCapsule(radius, halfHeight float64) (*Capsule, error) {
	if err := checkDimensions(ShapeTypeCapsule, []string{"radius", "half height"}, radius, halfHeight); err != nil {
		return nil, err
	}
	return &Capsule{Radius: radius, HalfHeight: halfHeight, margin: margin{shrink: radius}}, nil
}

func (c *Capsule) Type() ShapeType {
	return ShapeTypeCapsule
}

func (c *Capsule) SetShrinkSize(shrink float64) error {
	return c.setShrink(shrink, c.Radius, ShapeTypeCapsule)
}

func (c *Capsule) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (c *Capsule) Support(direction mgl64.Vec3) mgl64.Vec3 {
	end := mgl64.Vec3{0, signOf(direction.Y()) * c.HalfHeight, 0}
	r := c.Radius - c.shrink
	l2 := direction.LenSqr()
	if r <= 0 {
		return end
	}
	if l2 <= directionEpsilon {
		return end.Add(mgl64.Vec3{0, r, 0})
	}
	return end.Add(direction.Mul(r / math.Sqrt(l2)))
}

func (c *Capsule) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	p := c.Support(direction)
	return p, p.Mul(-1)
}

func (c *Capsule) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(c.Support, directions, out)
}
