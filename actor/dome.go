package actor

import "github.com/go-gl/mathgl/mgl64"

// Dome is a hemisphere: the flat face lies on y=0 and the cap points towards +Y.
type Dome struct {
	Radius float64
	margin
}

func NewDome(radius float64) (*Dome, error) {
	if err := checkDimension(ShapeTypeDome, "radius", radius); err != nil {
		return nil, err
	}
	d := &Dome{Radius: radius}
	d.shrink = defaultShrink(radius)
	return d, nil
}

func (d *Dome) Type() ShapeType {
	return ShapeTypeDome
}

func (d *Dome) SetShrinkSize(shrink float64) error {
	return d.setShrink(shrink, d.Radius/2, ShapeTypeDome)
}

func (d *Dome) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{0, d.Radius / 2, 0}
}

func (d *Dome) Support(direction mgl64.Vec3) mgl64.Vec3 {
	r := d.Radius - d.shrink
	return zoneSupport(r, d.shrink, r, direction)
}

func (d *Dome) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return d.Support(direction), d.Support(direction.Mul(-1))
}

func (d *Dome) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(d.Support, directions, out)
}
