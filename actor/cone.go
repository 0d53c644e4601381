package actor

import "github.com/go-gl/mathgl/mgl64"

// Cone has its base disk at y=-HalfHeight and its apex at y=+HalfHeight.
type Cone struct {
	Radius     float64
	HalfHeight float64
	margin
}

func NewCone(radius, halfHeight float64) (*Cone, error) {
	if err := checkDimensions(ShapeTypeCone, []string{"radius", "half height"}, radius, halfHeight); err != nil {
		return nil, err
	}
	c := &Cone{Radius: radius, HalfHeight: halfHeight}
	c.shrink = defaultShrink(c.limit())
	return c, nil
}

func (c *Cone) Type() ShapeType {
	return ShapeTypeCone
}

func (c *Cone) limit() float64 {
	return minOf(c.Radius, c.HalfHeight)
}

func (c *Cone) SetShrinkSize(shrink float64) error {
	return c.setShrink(shrink, c.limit(), ShapeTypeCone)
}

func (c *Cone) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (c *Cone) Support(direction mgl64.Vec3) mgl64.Vec3 {
	h := c.HalfHeight - c.shrink
	apex := mgl64.Vec3{0, h, 0}
	base := rim(c.Radius-c.shrink, -h, direction)
	if apex.Dot(direction) >= base.Dot(direction) {
		return apex
	}
	return base
}

func (c *Cone) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return c.Support(direction), c.Support(direction.Mul(-1))
}

func (c *Cone) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(c.Support, directions, out)
}
