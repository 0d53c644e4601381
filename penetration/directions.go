package penetration

import "github.com/go-gl/mathgl/mgl64"

const (
	invSqrt2 = 0.7071067811865476
	invSqrt3 = 0.5773502691896258
)

// candidateDirections are the 26 unit directions towards the faces, edges and
// corners of a cube. The order is part of the result: the first minimum wins.
var candidateDirections = [26]mgl64.Vec3{
	// faces
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},

	// edges
	{invSqrt2, invSqrt2, 0},
	{invSqrt2, -invSqrt2, 0},
	{-invSqrt2, invSqrt2, 0},
	{-invSqrt2, -invSqrt2, 0},
	{invSqrt2, 0, invSqrt2},
	{invSqrt2, 0, -invSqrt2},
	{-invSqrt2, 0, invSqrt2},
	{-invSqrt2, 0, -invSqrt2},
	{0, invSqrt2, invSqrt2},
	{0, invSqrt2, -invSqrt2},
	{0, -invSqrt2, invSqrt2},
	{0, -invSqrt2, -invSqrt2},

	// corners
	{invSqrt3, invSqrt3, invSqrt3},
	{invSqrt3, invSqrt3, -invSqrt3},
	{invSqrt3, -invSqrt3, invSqrt3},
	{invSqrt3, -invSqrt3, -invSqrt3},
	{-invSqrt3, invSqrt3, invSqrt3},
	{-invSqrt3, invSqrt3, -invSqrt3},
	{-invSqrt3, -invSqrt3, invSqrt3},
	{-invSqrt3, -invSqrt3, -invSqrt3},
}

// CandidateCount is the number of axes tested: the table in the frame of A,
// then in the frame of B.
const CandidateCount = 2 * len(candidateDirections)

// frameDirections expresses the table in the frame given by axes.
func frameDirections(axes [3]mgl64.Vec3) [len(candidateDirections)]mgl64.Vec3 {
	var out [len(candidateDirections)]mgl64.Vec3
	for i, d := range candidateDirections {
		out[i] = axes[0].Mul(d[0]).Add(axes[1].Mul(d[1])).Add(axes[2].Mul(d[2]))
	}
	return out
}
