package gjk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a point of the Minkowski difference A - B together with the two
// world-space support points it was built from.
type Vertex struct {
	W mgl64.Vec3 // A - B
	A mgl64.Vec3
	B mgl64.Vec3
}

// Simplex represents a set of 1-4 vertices in the Minkowski difference space.
// Bit i of a survivor mask refers to Vertices[i].
type Simplex struct {
	Vertices [4]Vertex
	Count    int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) push(v Vertex) {
	s.Vertices[s.Count] = v
	s.Count++
}

// contains reports whether w duplicates one of the simplex vertices.
func (s *Simplex) contains(w mgl64.Vec3) bool {
	for i := 0; i < s.Count; i++ {
		if s.Vertices[i].W.Sub(w).LenSqr() <= vertexMergeDistanceSq {
			return true
		}
	}
	return false
}

// fullMask is the survivor mask of an enclosing tetrahedron.
const fullMask = 0b1111

// solve returns the point of the simplex closest to the origin, the barycentric
// weight of every vertex and the mask of the vertices supporting that point.
func (s *Simplex) solve() (mgl64.Vec3, [4]float64, uint8) {
	v := &s.Vertices
	switch s.Count {
	case 1:
		return v[0].W, [4]float64{1}, 0b1
	case 2:
		p, w, mask := closestOnSegment(v[0].W, v[1].W)
		return p, [4]float64{w[0], w[1]}, mask
	case 3:
		p, w, mask := closestOnTriangle(v[0].W, v[1].W, v[2].W)
		return p, [4]float64{w[0], w[1], w[2]}, mask
	case 4:
		return closestOnTetrahedron(v[0].W, v[1].W, v[2].W, v[3].W)
	}
	return mgl64.Vec3{}, [4]float64{}, 0
}

// reduce keeps the vertices selected by mask along with their weights, in order.
func (s *Simplex) reduce(mask uint8, weights [4]float64) [4]float64 {
	var kept [4]float64
	n := 0
	for i := 0; i < s.Count; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		s.Vertices[n] = s.Vertices[i]
		kept[n] = weights[i]
		n++
	}
	s.Count = n
	return kept
}

// witnesses rebuilds the closest points on A and B from the barycentric weights.
func (s *Simplex) witnesses(weights [4]float64) (mgl64.Vec3, mgl64.Vec3) {
	var a, b mgl64.Vec3
	for i := 0; i < s.Count; i++ {
		a = a.Add(s.Vertices[i].A.Mul(weights[i]))
		b = b.Add(s.Vertices[i].B.Mul(weights[i]))
	}
	return a, b
}

func ratio(numerator, denominator float64) float64 {
	if denominator <= MinFloat {
		return 0
	}
	return numerator / denominator
}

// closestOnSegment classifies the origin against the Voronoi regions of the
// vertices and the interior of segment ab.
func closestOnSegment(a, b mgl64.Vec3) (mgl64.Vec3, [2]float64, uint8) {
	ab := b.Sub(a)
	t := -a.Dot(ab)
	if t <= 0 {
		return a, [2]float64{1, 0}, 0b01
	}
	denominator := ab.Dot(ab)
	if t >= denominator {
		return b, [2]float64{0, 1}, 0b10
	}
	u := ratio(t, denominator)
	return a.Add(ab.Mul(u)), [2]float64{1 - u, u}, 0b11
}

// closestOnTriangle classifies the origin with six half-space tests against the
// vertices and edges of triangle abc. When no region matches, the origin
// projects onto the interior.
func closestOnTriangle(a, b, c mgl64.Vec3) (mgl64.Vec3, [3]float64, uint8) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	d1 := -ab.Dot(a)
	d2 := -ac.Dot(a)
	if d1 <= 0 && d2 <= 0 {
		return a, [3]float64{1, 0, 0}, 0b001
	}

	d3 := -ab.Dot(b)
	d4 := -ac.Dot(b)
	if d3 >= 0 && d4 <= d3 {
		return b, [3]float64{0, 1, 0}, 0b010
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := ratio(d1, d1-d3)
		return a.Add(ab.Mul(v)), [3]float64{1 - v, v, 0}, 0b011
	}

	d5 := -ab.Dot(c)
	d6 := -ac.Dot(c)
	if d6 >= 0 && d5 <= d6 {
		return c, [3]float64{0, 0, 1}, 0b100
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := ratio(d2, d2-d6)
		return a.Add(ac.Mul(w)), [3]float64{1 - w, 0, w}, 0b101
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := ratio(d4-d3, (d4-d3)+(d5-d6))
		return b.Add(c.Sub(b).Mul(w)), [3]float64{0, 1 - w, w}, 0b110
	}

	denominator := va + vb + vc
	if denominator <= MinFloat {
		return closestOnDegenerateTriangle(a, b, c)
	}
	v := vb / denominator
	w := vc / denominator
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), [3]float64{1 - v - w, v, w}, 0b111
}

// closestOnDegenerateTriangle handles collinear corners by keeping the closest edge.
func closestOnDegenerateTriangle(a, b, c mgl64.Vec3) (mgl64.Vec3, [3]float64, uint8) {
	p, w, mask := closestOnSegment(a, b)
	best, weights, bestMask := p, [3]float64{w[0], w[1], 0}, mask

	p, w, mask = closestOnSegment(a, c)
	if p.LenSqr() < best.LenSqr() {
		best, weights = p, [3]float64{w[0], 0, w[1]}
		bestMask = mask&0b01 | (mask&0b10)<<1
	}

	p, w, mask = closestOnSegment(b, c)
	if p.LenSqr() < best.LenSqr() {
		best, weights = p, [3]float64{0, w[0], w[1]}
		bestMask = mask << 1
	}
	return best, weights, bestMask
}

// originOutsideFace reports whether the origin lies on the opposite side of the
// plane abc from d. A degenerate tetrahedron (d on the plane) counts as outside.
func originOutsideFace(a, b, c, d mgl64.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	signOrigin := -a.Dot(n)
	signD := d.Sub(a).Dot(n)
	if math.Abs(signD) <= MinFloat {
		return true
	}
	return signOrigin*signD < 0
}

// tetrahedronFaces lists the corners of each face followed by the opposite vertex.
var tetrahedronFaces = [4][4]int{
	{0, 1, 2, 3},
	{0, 2, 3, 1},
	{0, 3, 1, 2},
	{1, 3, 2, 0},
}

// closestOnTetrahedron tests the origin against each face in a fixed order and
// keeps the closest feature of the faces it lies outside of. The full mask means
// the tetrahedron encloses the origin.
func closestOnTetrahedron(a, b, c, d mgl64.Vec3) (mgl64.Vec3, [4]float64, uint8) {
	points := [4]mgl64.Vec3{a, b, c, d}

	var (
		best        mgl64.Vec3
		bestWeights [4]float64
		bestMask    uint8
		bestDist    = math.Inf(1)
	)
	for _, face := range tetrahedronFaces {
		i, j, k := face[0], face[1], face[2]
		if !originOutsideFace(points[i], points[j], points[k], points[face[3]]) {
			continue
		}
		p, w, mask := closestOnTriangle(points[i], points[j], points[k])
		if dist := p.LenSqr(); dist < bestDist {
			best, bestDist = p, dist
			bestWeights = [4]float64{}
			bestWeights[i], bestWeights[j], bestWeights[k] = w[0], w[1], w[2]
			bestMask = 0
			for bit, index := range [3]int{i, j, k} {
				if mask&(1<<bit) != 0 {
					bestMask |= 1 << index
				}
			}
		}
	}

	if bestMask == 0 {
		return mgl64.Vec3{}, [4]float64{}, fullMask
	}
	return best, bestWeights, bestMask
}

// Dimension returns the number of distinct points, up to VertexMergeDistance.
// One point is a vertex contact, two an edge and three or more a face.
func Dimension(points []mgl64.Vec3) int {
	distinct := 0
	for i, p := range points {
		duplicate := false
		for _, q := range points[:i] {
			if p.Sub(q).LenSqr() <= vertexMergeDistanceSq {
				duplicate = true
				break
			}
		}
		if !duplicate {
			distinct++
		}
	}
	return distinct
}
