// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) distance algorithm.
//
// GJK computes the distance between two convex shapes by searching the point of
// their Minkowski difference closest to the origin. The algorithm builds a simplex
// incrementally from support points and converges toward that point in typically
// 3-6 iterations. When the simplex ends up enclosing the origin the shapes overlap
// and the penetration package takes over.
//
// Shapes are support-mapped and shrunk: all distances computed here are between
// the cores, and callers subtract the shrink sizes to get surface distances.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
//   - Ericson: "Real-Time Collision Detection" (2004), closest-point tests
package gjk

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Convex is the world-space support contract consumed by the solver.
// *actor.RigidBody implements it, as do the geometry adapters.
type Convex interface {
	// InitialSupportWorld returns a point inside the core.
	InitialSupportWorld() mgl64.Vec3
	SupportWorld(direction mgl64.Vec3) mgl64.Vec3
	OpposingSupportsWorld(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3)
	// SupportArrayWorld fills out[i] with the support along directions[i];
	// out may alias directions.
	SupportArrayWorld(directions, out []mgl64.Vec3)
	ShrinkSize() float64
	ToLocal(point mgl64.Vec3) mgl64.Vec3
	ToWorld(point mgl64.Vec3) mgl64.Vec3
	Axes() [3]mgl64.Vec3
	AABB() actor.AABB
}

// Input describes one distance query. B is translated by OffsetB.
type Input struct {
	A, B    Convex
	OffsetB mgl64.Vec3
}

func (in *Input) supportB(direction mgl64.Vec3) mgl64.Vec3 {
	return in.B.SupportWorld(direction).Add(in.OffsetB)
}

// Output is the result of a distance query.
type Output struct {
	// PointA and PointB are the closest core points. PointB includes OffsetB.
	PointA mgl64.Vec3
	PointB mgl64.Vec3
	// Normal is the unit direction from A towards B, zero on overlap.
	Normal mgl64.Vec3
	// Distance is the core distance, zero on overlap.
	Distance   float64
	Simplex    Simplex
	Iterations int
	// Overlap is set when the cores intersect.
	Overlap bool
	// Converged is false when MaxIterations was exhausted.
	Converged bool
}

// MinkowskiSupport computes a vertex of the Minkowski difference (A - B) in the
// given direction: the support of A along direction minus the support of B
// along -direction.
func MinkowskiSupport(in *Input, direction mgl64.Vec3) Vertex {
	a := in.A.SupportWorld(direction)
	b := in.supportB(direction.Mul(-1))
	return Vertex{W: a.Sub(b), A: a, B: b}
}

// Distance runs the GJK loop on the cores of in.A and in.B.
//
// Algorithm overview:
//  1. Seed the simplex from the cache, or from both initial support points
//  2. Find the point of the simplex closest to the origin and drop the vertices
//     that do not support it
//  3. If the simplex encloses the origin → overlap
//  4. Take the support point along the negated closest point
//  5. Stop when it does not get closer to the origin, when it duplicates a
//     vertex, or when the distance stops decreasing
//
// cache may be nil. Otherwise it is read first and overwritten with the final
// simplex.
func Distance(in *Input, cache *Cache) Output {
	var out Output
	simplex := &out.Simplex

	if cache != nil {
		cache.load(in, simplex)
	}
	if simplex.Count == 0 {
		a := in.A.InitialSupportWorld()
		b := in.B.InitialSupportWorld().Add(in.OffsetB)
		simplex.push(Vertex{W: a.Sub(b), A: a, B: b})
	}

	previousDist2 := math.MaxFloat64
	var closest mgl64.Vec3
	var weights [4]float64

	for out.Iterations < MaxIterations {
		out.Iterations++

		var mask uint8
		closest, weights, mask = simplex.solve()
		if mask == fullMask {
			out.Overlap = true
			out.Converged = true
			break
		}
		weights = simplex.reduce(mask, weights)

		dist2 := closest.LenSqr()
		if dist2 <= minSeparationSq {
			out.Overlap = true
			out.Converged = true
			break
		}

		// No progress: the previous simplex was already optimal.
		if previousDist2-dist2 <= ProgressTolerance*previousDist2 {
			out.Converged = true
			break
		}
		previousDist2 = dist2

		vertex := MinkowskiSupport(in, closest.Mul(-1))

		// The new support point does not bring the bound closer to the origin.
		if dist2-closest.Dot(vertex.W) <= RelativeTolerance*dist2 {
			out.Converged = true
			break
		}
		if simplex.contains(vertex.W) {
			out.Converged = true
			break
		}
		simplex.push(vertex)
	}

	if cache != nil {
		cache.store(in, simplex)
	}

	out.PointA, out.PointB = simplex.witnesses(weights)
	if out.Overlap {
		return out
	}
	out.Distance = math.Sqrt(closest.LenSqr())
	if out.Distance > MinFloat {
		out.Normal = closest.Mul(-1 / out.Distance)
	}
	return out
}
