// Package penetration estimates the minimum penetration of two overlapping
// convex cores.
//
// The resolver samples a fixed set of candidate separating axes, keeps the one
// with the smallest overlap and runs the distance solver again with B pushed out
// along that axis. The separated result is then walked back to the original
// configuration to produce contact points and a normal.
package penetration

import (
	"math"

	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MinOffset is the smallest push-out used by the directional re-solve.
	MinOffset = 100 * gjk.ContactTolerance

	// SnapCosine is the minimal alignment between the re-solved normal and the
	// winning axis for the axis to replace the normal when the contact features
	// have different dimensions.
	SnapCosine = 0.95

	// NormalSnapThreshold is used to clamp nearly-zero normal components to exactly zero.
	NormalSnapThreshold = 1e-10
)

// OneSided is implemented by shapes that only collide through a front face,
// like mesh triangles. FrontNormal reports false when the face is unusable.
type OneSided interface {
	FrontNormal() (mgl64.Vec3, bool)
}

// Result describes the penetration of the core of B into the core of A.
type Result struct {
	// PointA and PointB are the deepest core points. They include in.OffsetB.
	PointA mgl64.Vec3
	PointB mgl64.Vec3
	// Normal is the unit direction in which B should move to separate.
	Normal mgl64.Vec3
	// Depth is the core penetration depth, non-negative.
	Depth float64
	// Axis is the index of the winning candidate: the table in the frame of A,
	// then the table in the frame of B. It is -1 when a front face was used.
	Axis int
	// Fallback is set when the re-solve still overlapped and the raw axis
	// estimate was returned.
	Fallback bool
}

type candidate struct {
	direction mgl64.Vec3
	depth     float64
	pointA    mgl64.Vec3
	pointB    mgl64.Vec3
}

// overlap measures how far B has to move along d to clear A.
func overlap(in *gjk.Input, d mgl64.Vec3) candidate {
	a := in.A.SupportWorld(d)
	b := in.B.SupportWorld(d.Mul(-1)).Add(in.OffsetB)
	return candidate{direction: d, depth: a.Sub(b).Dot(d), pointA: a, pointB: b}
}

// frontAxis returns the separating direction imposed by a one-sided operand:
// B leaves A through the front of A, or A leaves B through the front of B.
func frontAxis(in *gjk.Input) (candidate, bool) {
	best := candidate{depth: math.Inf(1)}
	found := false
	if face, ok := in.A.(OneSided); ok {
		if n, ok := face.FrontNormal(); ok {
			best, found = overlap(in, n), true
		}
	}
	if face, ok := in.B.(OneSided); ok {
		if n, ok := face.FrontNormal(); ok {
			if c := overlap(in, n.Mul(-1)); c.depth < best.depth {
				best, found = c, true
			}
		}
	}
	return best, found
}

// bestAxis evaluates the table in the frames of both shapes and returns the
// first candidate with the minimum overlap. Swapping A and B negates every
// direction and keeps every depth, so the winner is the same axis reversed.
func bestAxis(in *gjk.Input) (candidate, int) {
	if c, ok := frontAxis(in); ok {
		return c, -1
	}

	frames := [2][len(candidateDirections)]mgl64.Vec3{
		frameDirections(in.A.Axes()),
		frameDirections(in.B.Axes()),
	}

	best := candidate{depth: math.Inf(1)}
	bestIndex := -1
	var supportA, supportB [len(candidateDirections)]mgl64.Vec3
	for f := range frames {
		directions := frames[f][:]
		in.A.SupportArrayWorld(directions, supportA[:])
		for i, d := range directions {
			supportB[i] = d.Mul(-1)
		}
		in.B.SupportArrayWorld(supportB[:], supportB[:])

		for i, d := range directions {
			b := supportB[i].Add(in.OffsetB)
			if depth := supportA[i].Sub(b).Dot(d); depth < best.depth {
				best = candidate{direction: d, depth: depth, pointA: supportA[i], pointB: b}
				bestIndex = f*len(candidateDirections) + i
			}
		}
	}
	return best, bestIndex
}

// Resolve computes the penetration of two overlapping cores.
//
// Algorithm overview:
//  1. Measure the overlap along the 26 table directions in the frame of A and
//     in the frame of B. A one-sided operand replaces the table by its front
//     normal
//  2. Keep the first axis with the smallest overlap
//  3. Push B out along that axis by twice the overlap and run the distance solver
//  4. Walk the separated result back by the push-out distance
//  5. If the contact features have different dimensions and the normal is close
//     to the axis, snap the normal to the axis
//
// The result always carries a finite unit normal.
func Resolve(in *gjk.Input) Result {
	axis, index := bestAxis(in)
	depth := math.Max(axis.depth, 0)

	fallback := Result{
		PointA:   axis.pointA,
		PointB:   axis.pointB,
		Normal:   snapNormalToAxis(axis.direction),
		Depth:    depth,
		Axis:     index,
		Fallback: true,
	}

	offset := axis.direction.Mul(math.Max(2*depth, MinOffset))
	out := gjk.Distance(&gjk.Input{A: in.A, B: in.B, OffsetB: in.OffsetB.Add(offset)}, nil)
	if out.Overlap || !out.Converged || out.Distance <= gjk.MinFloat {
		return fallback
	}

	pointA := out.PointA
	pointB := out.PointB.Sub(offset)
	normal := out.Normal
	depth = offset.Dot(normal) - out.Distance

	var aPoints, bPoints [4]mgl64.Vec3
	for i := 0; i < out.Simplex.Count; i++ {
		aPoints[i] = out.Simplex.Vertices[i].A
		bPoints[i] = out.Simplex.Vertices[i].B
	}
	dimA := gjk.Dimension(aPoints[:out.Simplex.Count])
	dimB := gjk.Dimension(bPoints[:out.Simplex.Count])

	if dimA != dimB && normal.Dot(axis.direction) >= SnapCosine {
		normal = axis.direction
		depth = offset.Dot(normal) - out.PointB.Sub(out.PointA).Dot(normal)
		if dimA < dimB {
			pointB = pointA.Sub(normal.Mul(depth))
		} else {
			pointA = pointB.Add(normal.Mul(depth))
		}
	}

	if depth < 0 {
		depth = 0
	}
	return Result{
		PointA: pointA,
		PointB: pointB,
		Normal: snapNormalToAxis(normal),
		Depth:  depth,
		Axis:   index,
	}
}

// snapNormalToAxis clamps nearly-zero components of a normal vector to exactly zero.
//
// Components with absolute value < NormalSnapThreshold are set to 0, then the
// vector is renormalized. A vector that vanishes entirely becomes +Y.
func snapNormalToAxis(normal mgl64.Vec3) mgl64.Vec3 {
	for i := range normal {
		if math.Abs(normal[i]) < NormalSnapThreshold || math.IsNaN(normal[i]) {
			normal[i] = 0
		}
	}

	length := math.Sqrt(normal.Dot(normal))
	if length <= gjk.MinFloat || math.IsInf(length, 0) {
		return mgl64.Vec3{0, 1, 0}
	}
	return normal.Mul(1.0 / length)
}
