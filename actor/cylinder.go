package actor

import "github.com/go-gl/mathgl/mgl64"

// Cylinder is a right circular cylinder along Y.
type Cylinder struct {
	Radius     float64
	HalfHeight float64
	margin
}

func NewCylinder(radius, halfHeight float64) (*Cylinder, error) {
	if err := checkDimensions(ShapeTypeCylinder, []string{"radius", "half height"}, radius, halfHeight); err != nil {
		return nil, err
	}
	c := &Cylinder{Radius: radius, HalfHeight: halfHeight}
	c.shrink = defaultShrink(c.limit())
	return c, nil
}

func (c *Cylinder) Type() ShapeType {
	return ShapeTypeCylinder
}

func (c *Cylinder) limit() float64 {
	return minOf(c.Radius, c.HalfHeight)
}

func (c *Cylinder) SetShrinkSize(shrink float64) error {
	return c.setShrink(shrink, c.limit(), ShapeTypeCylinder)
}

func (c *Cylinder) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

// Support picks the rim of the cap facing direction; an axial direction
// returns the cap center.
func (c *Cylinder) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return rim(c.Radius-c.shrink, signOf(direction.Y())*(c.HalfHeight-c.shrink), direction)
}

func (c *Cylinder) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	p := c.Support(direction)
	return p, p.Mul(-1)
}

func (c *Cylinder) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(c.Support, directions, out)
}
