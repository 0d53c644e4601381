package actor

import "github.com/go-gl/mathgl/mgl64"

// Pyramid has a rectangular base of half sizes (X, Z) at y=-HalfExtents.Y()
// and its apex at y=+HalfExtents.Y().
type Pyramid struct {
	HalfExtents mgl64.Vec3
	margin
}

func NewPyramid(halfExtents mgl64.Vec3) (*Pyramid, error) {
	if err := checkDimensions(ShapeTypePyramid, []string{"base half width", "half height", "base half depth"},
		halfExtents.X(), halfExtents.Y(), halfExtents.Z()); err != nil {
		return nil, err
	}
	p := &Pyramid{HalfExtents: halfExtents}
	p.shrink = defaultShrink(p.limit())
	return p, nil
}

func (p *Pyramid) Type() ShapeType {
	return ShapeTypePyramid
}

func (p *Pyramid) limit() float64 {
	return minOf(p.HalfExtents.X(), p.HalfExtents.Y(), p.HalfExtents.Z())
}

func (p *Pyramid) SetShrinkSize(shrink float64) error {
	return p.setShrink(shrink, p.limit(), ShapeTypePyramid)
}

func (p *Pyramid) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

// Support compares the apex with the base corner facing direction.
// The apex wins ties.
func (p *Pyramid) Support(direction mgl64.Vec3) mgl64.Vec3 {
	s := p.shrink
	h := p.HalfExtents.Y() - s
	apex := mgl64.Vec3{0, h, 0}
	corner := mgl64.Vec3{
		signOf(direction.X()) * (p.HalfExtents.X() - s),
		-h,
		signOf(direction.Z()) * (p.HalfExtents.Z() - s),
	}
	if apex.Dot(direction) >= corner.Dot(direction) {
		return apex
	}
	return corner
}

func (p *Pyramid) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return p.Support(direction), p.Support(direction.Mul(-1))
}

func (p *Pyramid) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(p.Support, directions, out)
}
