package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// TruncatedPyramid is a frustum with rectangular caps: base half sizes (x, z) at
// y=-HalfHeight, top half sizes at y=+HalfHeight.
type TruncatedPyramid struct {
	BaseHalfExtents mgl64.Vec2
	TopHalfExtents  mgl64.Vec2
	HalfHeight      float64
	margin
}

func NewTruncatedPyramid(base, top mgl64.Vec2, halfHeight float64) (*TruncatedPyramid, error) {
	err := checkDimensions(ShapeTypeTruncatedPyramid,
		[]string{"base half width", "base half depth", "top half width", "top half depth", "half height"},
		base.X(), base.Y(), top.X(), top.Y(), halfHeight)
	if err != nil {
		return nil, err
	}
	p := &TruncatedPyramid{BaseHalfExtents: base, TopHalfExtents: top, HalfHeight: halfHeight}
	p.shrink = defaultShrink(p.limit())
	return p, nil
}

func (p *TruncatedPyramid) Type() ShapeType {
	return ShapeTypeTruncatedPyramid
}

func (p *TruncatedPyramid) limit() float64 {
	return minOf(p.BaseHalfExtents.X(), p.BaseHalfExtents.Y(), p.TopHalfExtents.X(), p.TopHalfExtents.Y(), p.HalfHeight)
}

func (p *TruncatedPyramid) SetShrinkSize(shrink float64) error {
	return p.setShrink(shrink, p.limit(), ShapeTypeTruncatedPyramid)
}

func (p *TruncatedPyramid) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

// Support compares the top and base corners facing direction; the top wins ties.
func (p *TruncatedPyramid) Support(direction mgl64.Vec3) mgl64.Vec3 {
	s := p.shrink
	h := p.HalfHeight - s
	sx, sz := signOf(direction.X()), signOf(direction.Z())
	top := mgl64.Vec3{sx * (p.TopHalfExtents.X() - s), h, sz * (p.TopHalfExtents.Y() - s)}
	base := mgl64.Vec3{sx * (p.BaseHalfExtents.X() - s), -h, sz * (p.BaseHalfExtents.Y() - s)}
	if top.Dot(direction) >= base.Dot(direction) {
		return top
	}
	return base
}

func (p *TruncatedPyramid) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return p.Support(direction), p.Support(direction.Mul(-1))
}

func (p *TruncatedPyramid) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(p.Support, directions, out)
}

// TruncatedCone is a conical frustum along Y.
type TruncatedCone struct {
	BaseRadius float64
	TopRadius  float64
	HalfHeight float64
	margin
}

func NewTruncatedCone(baseRadius, topRadius, halfHeight float64) (*TruncatedCone, error) {
	err := checkDimensions(ShapeTypeTruncatedCone, []string{"base radius", "top radius", "half height"},
		baseRadius, topRadius, halfHeight)
	if err != nil {
		return nil, err
	}
	c := &TruncatedCone{BaseRadius: baseRadius, TopRadius: topRadius, HalfHeight: halfHeight}
	c.shrink = defaultShrink(c.limit())
	return c, nil
}

func (c *TruncatedCone) Type() ShapeType {
	return ShapeTypeTruncatedCone
}

func (c *TruncatedCone) limit() float64 {
	return minOf(c.BaseRadius, c.TopRadius, c.HalfHeight)
}

func (c *TruncatedCone) SetShrinkSize(shrink float64) error {
	return c.setShrink(shrink, c.limit(), ShapeTypeTruncatedCone)
}

func (c *TruncatedCone) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (c *TruncatedCone) Support(direction mgl64.Vec3) mgl64.Vec3 {
	s := c.shrink
	h := c.HalfHeight - s
	top := rim(c.TopRadius-s, h, direction)
	base := rim(c.BaseRadius-s, -h, direction)
	if top.Dot(direction) >= base.Dot(direction) {
		return top
	}
	return base
}

func (c *TruncatedCone) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return c.Support(direction), c.Support(direction.Mul(-1))
}

func (c *TruncatedCone) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(c.Support, directions, out)
}

// TruncatedDome is the slab 0 <= y <= Height of a sphere of the given Radius.
type TruncatedDome struct {
	Radius float64
	Height float64
	margin
}

func NewTruncatedDome(radius, height float64) (*TruncatedDome, error) {
	if err := checkDimensions(ShapeTypeTruncatedDome, []string{"radius", "height"}, radius, height); err != nil {
		return nil, err
	}
	if height >= radius {
		return nil, errors.Errorf("%s height %v must be below the radius %v", ShapeTypeTruncatedDome, height, radius)
	}
	d := &TruncatedDome{Radius: radius, Height: height}
	d.shrink = defaultShrink(height)
	return d, nil
}

func (d *TruncatedDome) Type() ShapeType {
	return ShapeTypeTruncatedDome
}

func (d *TruncatedDome) SetShrinkSize(shrink float64) error {
	return d.setShrink(shrink, d.Height/2, ShapeTypeTruncatedDome)
}

func (d *TruncatedDome) InitialSupport() mgl64.Vec3 {
	return mgl64.Vec3{0, d.Height / 2, 0}
}

func (d *TruncatedDome) Support(direction mgl64.Vec3) mgl64.Vec3 {
	s := d.shrink
	return zoneSupport(d.Radius-s, s, d.Height-s, direction)
}

func (d *TruncatedDome) OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return d.Support(direction), d.Support(direction.Mul(-1))
}

func (d *TruncatedDome) SupportArray(directions, out []mgl64.Vec3) {
	fillSupports(d.Support, directions, out)
}
