package geometry

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// MinTriangleArea is the area below which a mesh triangle is rejected as degenerate.
const MinTriangleArea = 1e-12

// Mesh is a static world-space triangle mesh. It is read-only once built.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  [][3]int
	// Normals holds one unit normal per triangle.
	Normals []mgl64.Vec3
}

// NewMesh validates every triangle and computes the normals. All problems are
// reported together.
func NewMesh(vertices []mgl64.Vec3, indices [][3]int) (*Mesh, error) {
	var err error
	for i, v := range vertices {
		if !finite(v) {
			err = multierr.Append(err, errors.Errorf("vertex %d is not finite: %v", i, v))
		}
	}

	normals := make([]mgl64.Vec3, len(indices))
	for i, tri := range indices {
		valid := true
		for _, index := range tri {
			if index < 0 || index >= len(vertices) {
				err = multierr.Append(err, errors.Errorf("triangle %d: index %d out of range [0, %d)", i, index, len(vertices)))
				valid = false
			}
		}
		if !valid {
			continue
		}

		p0, p1, p2 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		if area := p1.Sub(p0).Cross(p2.Sub(p0)).Len() / 2; !(area >= MinTriangleArea) {
			err = multierr.Append(err, errors.Errorf("triangle %d is degenerate (area %v)", i, area))
			continue
		}
		normals[i] = planeNormal(p0, p1, p2)
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid mesh")
	}

	return &Mesh{Vertices: vertices, Indices: indices, Normals: normals}, nil
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices)
}

// Triangle returns triangle i as a convex operand.
func (m *Mesh) Triangle(i int) Triangle {
	tri := m.Indices[i]
	return Triangle{
		Vertices: [3]mgl64.Vec3{m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]},
		Normal:   m.Normals[i],
	}
}

// TriangleAABB returns the bounds of triangle i.
func (m *Mesh) TriangleAABB(i int) actor.AABB {
	tri := m.Indices[i]
	return actor.AABBFromPoints(m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]])
}

// Candidates lists every triangle whose bounds overlap the query bounds. It
// makes the mesh its own TriangleIndex, suitable for small meshes.
func (m *Mesh) Candidates(bounds actor.AABB, out []int) []int {
	out = out[:0]
	for i := range m.Indices {
		if m.TriangleAABB(i).Overlaps(bounds) {
			out = append(out, i)
		}
	}
	return out
}

// SweptBounds returns the bounds covering a convex operand along a linear
// displacement, the query box handed to a TriangleIndex.
func SweptBounds(c gjk.Convex, displacement mgl64.Vec3) actor.AABB {
	return c.AABB().Sweep(displacement)
}
