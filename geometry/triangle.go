package geometry

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a one-sided world-space triangle. Its support is the corner with
// the largest projection, the first corner winning ties.
type Triangle struct {
	Vertices [3]mgl64.Vec3
	// Normal is the unit normal of the front face.
	Normal mgl64.Vec3
}

// NewTriangle builds a triangle whose front face is counter-clockwise.
// A degenerate triangle gets a zero normal.
func NewTriangle(p0, p1, p2 mgl64.Vec3) Triangle {
	return Triangle{Vertices: [3]mgl64.Vec3{p0, p1, p2}, Normal: planeNormal(p0, p1, p2)}
}

func planeNormal(p0, p1, p2 mgl64.Vec3) mgl64.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if l := n.Len(); l > gjk.MinFloat {
		return n.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// Cull reports whether the triangle can be skipped for a shape moving by
// displacement: the shape stays entirely in front of the plane beyond its
// contact margin, or entirely behind it.
func (t *Triangle) Cull(shape gjk.Convex, displacement mgl64.Vec3) bool {
	n := t.Normal
	reach := shape.ShrinkSize() + gjk.ContactTolerance
	travel := displacement.Dot(n)

	hi, lo := shape.OpposingSupportsWorld(n)

	// lowest core point along the normal
	low := lo.Sub(t.Vertices[0]).Dot(n)
	if low+min(travel, 0) > reach {
		return true
	}

	// one-sided: a shape that never reaches the front side is ignored
	high := hi.Sub(t.Vertices[0]).Dot(n)
	return high+max(travel, 0) < -reach
}

func (t *Triangle) ShrinkSize() float64 {
	return 0
}

func (t *Triangle) InitialSupportWorld() mgl64.Vec3 {
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Mul(1.0 / 3)
}

func (t *Triangle) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return actor.MaxVertex(t.Vertices[:], direction)
}

func (t *Triangle) OpposingSupportsWorld(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return t.SupportWorld(direction), t.SupportWorld(direction.Mul(-1))
}

func (t *Triangle) SupportArrayWorld(directions, out []mgl64.Vec3) {
	for i := range directions {
		out[i] = t.SupportWorld(directions[i])
	}
}

// ToLocal is the identity: triangles live in world space.
func (t *Triangle) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return point
}

func (t *Triangle) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return point
}

func (t *Triangle) Axes() [3]mgl64.Vec3 {
	return worldAxes
}

func (t *Triangle) AABB() actor.AABB {
	return actor.AABBFromPoints(t.Vertices[:]...)
}

// FrontNormal returns the normal of the front face. A degenerate triangle has
// none.
func (t *Triangle) FrontNormal() (mgl64.Vec3, bool) {
	return t.Normal, t.Normal != mgl64.Vec3{}
}
