package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere represents a spherical collision shape.
// Its default shrink equals the radius, leaving a single core point at the center.
type Sphere struct {
	Radius float64
	margin
}

func NewSphere(radius float64) (*Sphere, error) {
	if err := checkDimension(ShapeTypeSphere, "radius", radius); err != nil {
		return nil, err
	}
	return &Sphere{Radius: radius, margin: margin{shrink: radius}}, nil
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

func (s *Sphere) SetShrinkSize(shrink float64) error {
	return s.setShrink(shrink, s.Radius, ShapeTypeSphere)
}

func (s *Sphere) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	r := s.Radius - s.shrink
	if r <= 0 {
		return mgl64.Vec3{}
	}
	l2 := direction.LenSqr()
	if l2 <= directionEpsilon {
		return mgl64.Vec3{0, r, 0}
	}
	return direction.Mul(r / math.Sqrt(l2))
}

func (s *Sphere) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	p := s.Support(direction)
	return p, p.Mul(-1)
}

func (s *Sphere) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(s.Support, directions, out)
}
