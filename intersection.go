// Package narrowphase answers the narrow-phase collision queries of a rigid-body
// simulation: static intersection with contact points and normal, and time of
// first contact along a linear displacement.
//
// Every query is a pure function of its operands and of an optional simplex
// cache owned by the caller. Queries never fail: degenerate inputs and iteration
// caps degrade to "no contact".
package narrowphase

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/advance"
	"github.com/akmonengine/narrowphase/geometry"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/akmonengine/narrowphase/penetration"
)

// IntersectionData describes a contact. It is meaningful only when the query
// that returned it reported true.
type IntersectionData struct {
	// PointA and PointB lie on the collision surfaces, in world space, with the
	// operands moved to time Param.
	PointA mgl64.Vec3
	PointB mgl64.Vec3
	// Normal is the unit contact normal, from A towards B.
	Normal mgl64.Vec3
	// Param is the time of impact in [0,1]. Static queries report 1.
	Param float64
	// Separation is the signed distance between the surfaces, negative when
	// they penetrate.
	Separation float64
	// Triangle is the index of the mesh triangle, -1 outside mesh queries.
	Triangle int
}

var noContact = IntersectionData{Triangle: -1}

// StaticIntersect tests a and b in their current poses. Separated operands
// touch when their surfaces are closer than gjk.ContactTolerance. cache may be
// nil.
func (c *Collider) StaticIntersect(a, b gjk.Convex, cache *gjk.Cache) (IntersectionData, bool) {
	in := gjk.Input{A: a, B: b}
	data, ok := c.intersect(&in, cache)
	data.Param = 1
	return data, ok
}

// DynamicIntersect finds the first contact of a and b while they translate by
// displacementA and displacementB over the step. cache may be nil.
func (c *Collider) DynamicIntersect(a, b gjk.Convex, displacementA, displacementB mgl64.Vec3, cache *gjk.Cache) (IntersectionData, bool) {
	relative := displacementB.Sub(displacementA)
	res := advance.Advance(a, b, relative, cache)

	switch res.State {
	case advance.StateSeparated:
		return noContact, false
	case advance.StateFailed:
		if !res.Output.Converged {
			c.logger.Debug("distance solver did not converge",
				zap.Int("iterations", res.Output.Iterations),
				zap.Float64("t", res.T))
		} else {
			c.logger.Debug("conservative advancement exhausted",
				zap.Int("iterations", res.Iterations),
				zap.Float64("t", res.T))
		}
		return noContact, false
	}

	in := gjk.Input{A: a, B: b, OffsetB: relative.Mul(res.T)}
	var data IntersectionData
	if res.Output.Overlap {
		data = c.penetrate(&in)
	} else {
		data = surfaceContact(&in, res.Output)
	}

	shift := displacementA.Mul(res.T)
	data.PointA = data.PointA.Add(shift)
	data.PointB = data.PointB.Add(shift)
	data.Param = res.T
	return data, true
}

// intersect runs the static test on in, B translated by in.OffsetB.
func (c *Collider) intersect(in *gjk.Input, cache *gjk.Cache) (IntersectionData, bool) {
	out := gjk.Distance(in, cache)
	if !out.Converged {
		c.logger.Debug("distance solver did not converge", zap.Int("iterations", out.Iterations))
		return noContact, false
	}
	if out.Overlap {
		return c.penetrate(in), true
	}

	data := surfaceContact(in, out)
	if data.Separation >= gjk.ContactTolerance {
		return noContact, false
	}
	return data, true
}

// surfaceContact moves the closest core points out to the surfaces.
func surfaceContact(in *gjk.Input, out gjk.Output) IntersectionData {
	shrinkA, shrinkB := in.A.ShrinkSize(), in.B.ShrinkSize()
	return IntersectionData{
		PointA:     out.PointA.Add(out.Normal.Mul(shrinkA)),
		PointB:     out.PointB.Sub(out.Normal.Mul(shrinkB)),
		Normal:     out.Normal,
		Separation: out.Distance - shrinkA - shrinkB,
		Triangle:   -1,
	}
}

func (c *Collider) penetrate(in *gjk.Input) IntersectionData {
	res := penetration.Resolve(in)
	if res.Fallback {
		c.logger.Debug("penetration re-solve still overlapping, using axis estimate",
			zap.Int("axis", res.Axis),
			zap.Float64("depth", res.Depth))
	}

	shrinkA, shrinkB := in.A.ShrinkSize(), in.B.ShrinkSize()
	return IntersectionData{
		PointA:     res.PointA.Add(res.Normal.Mul(shrinkA)),
		PointB:     res.PointB.Sub(res.Normal.Mul(shrinkB)),
		Normal:     res.Normal,
		Separation: -(res.Depth + shrinkA + shrinkB),
		Triangle:   -1,
	}
}

// StaticIntersectPrimitive tests body against a fixed primitive.
func (c *Collider) StaticIntersectPrimitive(body *actor.RigidBody, primitive *geometry.Primitive, cache *gjk.Cache) (IntersectionData, bool) {
	return c.StaticIntersect(body, primitive, cache)
}

// DynamicIntersectPrimitive sweeps body against a fixed primitive.
func (c *Collider) DynamicIntersectPrimitive(body *actor.RigidBody, primitive *geometry.Primitive, displacement mgl64.Vec3, cache *gjk.Cache) (IntersectionData, bool) {
	return c.DynamicIntersect(body, primitive, displacement, mgl64.Vec3{}, cache)
}

// StaticIntersectHull tests body against a hull.
func (c *Collider) StaticIntersectHull(body *actor.RigidBody, hull *geometry.ConvexHull, cache *gjk.Cache) (IntersectionData, bool) {
	return c.StaticIntersect(body, hull, cache)
}

// DynamicIntersectHull sweeps body against a hull moving by hullDisplacement.
func (c *Collider) DynamicIntersectHull(body *actor.RigidBody, hull *geometry.ConvexHull, displacement, hullDisplacement mgl64.Vec3, cache *gjk.Cache) (IntersectionData, bool) {
	return c.DynamicIntersect(body, hull, displacement, hullDisplacement, cache)
}

// StaticIntersectTriangle tests body against the front face of a triangle.
func (c *Collider) StaticIntersectTriangle(body *actor.RigidBody, triangle *geometry.Triangle, cache *gjk.Cache) (IntersectionData, bool) {
	if triangle.Cull(body, mgl64.Vec3{}) {
		return noContact, false
	}
	return c.StaticIntersect(body, triangle, cache)
}

// DynamicIntersectTriangle sweeps body by displacement against the front face of a triangle.
func (c *Collider) DynamicIntersectTriangle(body *actor.RigidBody, triangle *geometry.Triangle, displacement mgl64.Vec3, cache *gjk.Cache) (IntersectionData, bool) {
	if triangle.Cull(body, displacement) {
		return noContact, false
	}
	return c.DynamicIntersect(body, triangle, displacement, mgl64.Vec3{}, cache)
}
