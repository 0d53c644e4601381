package actor

import "github.com/go-gl/mathgl/mgl64"

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
	margin
}

// NewBox creates a box with the default shrink size.
func NewBox(halfExtents mgl64.Vec3) (*Box, error) {
	if err := checkDimensions(ShapeTypeBox, []string{"half width", "half height", "half depth"},
		halfExtents.X(), halfExtents.Y(), halfExtents.Z()); err != nil {
		return nil, err
	}
	b := &Box{HalfExtents: halfExtents}
	b.shrink = defaultShrink(b.limit())
	return b, nil
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) limit() float64 {
	return minOf(b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z())
}

// SetShrinkSize overrides the shrink size, up to the smallest half extent.
func (b *Box) SetShrinkSize(shrink float64) error {
	return b.setShrink(shrink, b.limit(), ShapeTypeBox)
}

func (b *Box) core() mgl64.Vec3 {
	s := b.shrink
	return mgl64.Vec3{b.HalfExtents.X() - s, b.HalfExtents.Y() - s, b.HalfExtents.Z() - s}
}

func (b *Box) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	c := b.core()
	return mgl64.Vec3{signOf(direction.X()) * c.X(), signOf(direction.Y()) * c.Y(), signOf(direction.Z()) * c.Z()}
}

// OpposingSupports uses the box central symmetry: the opposite support is the mirrored corner.
func (b *Box) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	p := b.Support(direction)
	return p, p.Mul(-1)
}

func (b *Box) SupportArray(directions, out []mgl64.Vec3) {
	c := b.core()
	for i := range directions {
		d := directions[i]
		out[i] = mgl64.Vec3{signOf(d.X()) * c.X(), signOf(d.Y()) * c.Y(), signOf(d.Z()) * c.Z()}
	}
}
