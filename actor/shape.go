package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeBox ShapeType = iota
	ShapeTypePyramid
	ShapeTypeCylinder
	ShapeTypeCone
	ShapeTypeSphere
	ShapeTypeDome
	ShapeTypeCapsule
	ShapeTypeTruncatedPyramid
	ShapeTypeTruncatedCone
	ShapeTypeTruncatedDome
)

var shapeTypeNames = [...]string{
	ShapeTypeBox:              "box",
	ShapeTypePyramid:          "pyramid",
	ShapeTypeCylinder:         "cylinder",
	ShapeTypeCone:             "cone",
	ShapeTypeSphere:           "sphere",
	ShapeTypeDome:             "dome",
	ShapeTypeCapsule:          "capsule",
	ShapeTypeTruncatedPyramid: "truncated pyramid",
	ShapeTypeTruncatedCone:    "truncated cone",
	ShapeTypeTruncatedDome:    "truncated dome",
}

func (t ShapeType) String() string {
	if t < 0 || int(t) >= len(shapeTypeNames) {
		return "unknown"
	}
	return shapeTypeNames[t]
}

const (
	// DefaultShrinkSize is the shrink distance given to polyhedral and flat-capped
	// shapes by their constructors.
	DefaultShrinkSize = 0.04

	// MaxShrinkFraction caps the default shrink relative to the smallest dimension,
	// so thin shapes keep a core with volume.
	MaxShrinkFraction = 0.25

	// directionEpsilon is the squared length below which a direction (or its
	// radial part) is treated as zero.
	directionEpsilon = 1e-24
)

// Shape is the interface implemented by every support-mapped convex shape.
//
// All support functions operate on the shape's core: the shape pulled inward by
// ShrinkSize. The collision surface is the core inflated by the shrink distance.
// Directions are local-space and need not be normalized; a zero direction returns
// some core point, never NaN.
type Shape interface {
	Type() ShapeType
	ShrinkSize() float64
	// InitialSupport returns a point known to lie inside the core.
	InitialSupport() mgl64.Vec3
	// Support returns the farthest core point along direction.
	Support(direction mgl64.Vec3) mgl64.Vec3
	// OpposingSupports returns the supports along direction and -direction.
	OpposingSupports(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3)
	// SupportArray fills out[i] with the support along directions[i].
	// out may alias directions.
	SupportArray(directions, out []mgl64.Vec3)
}

// margin holds the shrink distance shared by all shapes.
type margin struct {
	shrink float64
}

// ShrinkSize returns the distance the support boundary is pulled inward.
func (m *margin) ShrinkSize() float64 {
	return m.shrink
}

func (m *margin) setShrink(shrink, limit float64, shapeType ShapeType) error {
	if math.IsNaN(shrink) || shrink < 0 {
		return errors.Errorf("%s shrink size must be non-negative, got %v", shapeType, shrink)
	}
	if shrink > limit {
		return errors.Errorf("%s shrink size %v exceeds the shape limit %v", shapeType, shrink, limit)
	}
	m.shrink = shrink
	return nil
}

func defaultShrink(smallest float64) float64 {
	return math.Min(DefaultShrinkSize, MaxShrinkFraction*smallest)
}

func checkDimension(shapeType ShapeType, name string, value float64) error {
	if !(value > 0) || math.IsInf(value, 0) {
		return errors.Errorf("%s %s must be positive and finite, got %v", shapeType, name, value)
	}
	return nil
}

func checkDimensions(shapeType ShapeType, names []string, values ...float64) error {
	for i, v := range values {
		if err := checkDimension(shapeType, names[i], v); err != nil {
			return err
		}
	}
	return nil
}

func minOf(values ...float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

// signOf maps zero to +1 so ties resolve to the positive side.
func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// radial returns the unit XZ part of a direction, ok is false when it vanishes.
func radial(direction mgl64.Vec3) (x, z float64, ok bool) {
	l2 := direction[0]*direction[0] + direction[2]*direction[2]
	if l2 <= directionEpsilon {
		return 0, 0, false
	}
	inv := 1 / math.Sqrt(l2)
	return direction[0] * inv, direction[2] * inv, true
}

// rim returns the point of the horizontal disk (radius, y) farthest along direction.
func rim(radius, y float64, direction mgl64.Vec3) mgl64.Vec3 {
	x, z, ok := radial(direction)
	if !ok {
		return mgl64.Vec3{0, y, 0}
	}
	return mgl64.Vec3{radius * x, y, radius * z}
}

// zoneSupport is the support of a ball of the given radius clipped to lo <= y <= hi.
func zoneSupport(radius, lo, hi float64, direction mgl64.Vec3) mgl64.Vec3 {
	l2 := direction.LenSqr()
	if l2 <= directionEpsilon {
		return mgl64.Vec3{0, hi, 0}
	}
	p := direction.Mul(radius / math.Sqrt(l2))
	switch {
	case p[1] > hi:
		return rim(math.Sqrt(math.Max(0, radius*radius-hi*hi)), hi, direction)
	case p[1] < lo:
		return rim(math.Sqrt(math.Max(0, radius*radius-lo*lo)), lo, direction)
	}
	return p
}

// MaxVertex returns the first vertex maximizing the dot product with direction.
func MaxVertex(vertices []mgl64.Vec3, direction mgl64.Vec3) mgl64.Vec3 {
	best := vertices[0]
	bestDot := best.Dot(direction)
	for _, v := range vertices[1:] {
		if d := v.Dot(direction); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

func fillSupports(support func(mgl64.Vec3) mgl64.Vec3, directions, out []mgl64.Vec3) {
	for i := range directions {
		out[i] = support(directions[i])
	}
}

// ComputeAABB calculates the world axis-aligned bounding box of the shape's
// collision surface at the given transform.
func ComputeAABB(shape Shape, transform Transform) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		var axis mgl64.Vec3
		axis[i] = 1
		hi, lo := shape.OpposingSupports(transform.DirectionToLocal(axis))
		box.Max[i] = transform.ToWorld(hi)[i]
		box.Min[i] = transform.ToWorld(lo)[i]
	}
	return box.Expand(shape.ShrinkSize())
}
