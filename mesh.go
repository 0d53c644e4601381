package narrowphase

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/geometry"
	"github.com/akmonengine/narrowphase/gjk"
)

// MaxMeshContacts bounds the contacts reported by one mesh query.
const MaxMeshContacts = 8

// candidateBuffer sizes the stack buffer handed to a TriangleIndex.
const candidateBuffer = 64

// KnownTriangle is a triangle in contact at the previous step, with the
// simplex cache of that contact.
type KnownTriangle struct {
	Triangle int
	Cache    gjk.Cache
}

// MeshContacts is the bounded result of a mesh query, ordered by (Param,
// Triangle). Caches[i] is the simplex cache of Contacts[i].
type MeshContacts struct {
	Count    int
	Contacts [MaxMeshContacts]IntersectionData
	Caches   [MaxMeshContacts]gjk.Cache
}

func (m *MeshContacts) Slice() []IntersectionData {
	return m.Contacts[:m.Count]
}

func contactBefore(a, b IntersectionData) bool {
	if a.Param != b.Param {
		return a.Param < b.Param
	}
	return a.Triangle < b.Triangle
}

// add inserts a contact in order. When the array is full the last contact is
// dropped; add reports whether a contact was dropped.
func (m *MeshContacts) add(data IntersectionData, cache gjk.Cache) bool {
	pos := m.Count
	for pos > 0 && contactBefore(data, m.Contacts[pos-1]) {
		pos--
	}
	if pos >= MaxMeshContacts {
		return true
	}

	full := m.Count == MaxMeshContacts
	for i := min(m.Count, MaxMeshContacts-1); i > pos; i-- {
		m.Contacts[i] = m.Contacts[i-1]
		m.Caches[i] = m.Caches[i-1]
	}
	m.Contacts[pos] = data
	m.Caches[pos] = cache
	if !full {
		m.Count++
	}
	return full
}

// IntersectMesh sweeps body by displacement against the triangles of mesh that
// index reports around the swept bounds.
func (c *Collider) IntersectMesh(body *actor.RigidBody, mesh *geometry.Mesh, index geometry.TriangleIndex, displacement mgl64.Vec3) MeshContacts {
	return c.IntersectMeshMixed(body, mesh, index, displacement, nil)
}

// IntersectMeshMixed is IntersectMesh for a body with persistent contacts. The
// known triangles are tested statically in the end pose with their caches and
// report Param 1; the other candidates are swept.
func (c *Collider) IntersectMeshMixed(body *actor.RigidBody, mesh *geometry.Mesh, index geometry.TriangleIndex, displacement mgl64.Vec3, known []KnownTriangle) MeshContacts {
	var contacts MeshContacts
	dropped := 0

	for i := range known {
		triangle := known[i].Triangle
		if triangle < 0 || triangle >= mesh.TriangleCount() || isKnown(known[:i], triangle) {
			continue
		}
		tri := mesh.Triangle(triangle)
		if tri.Cull(body, displacement) {
			continue
		}

		// Moving the triangle back by the displacement puts the body in its end pose.
		cache := known[i].Cache
		in := gjk.Input{A: body, B: &tri, OffsetB: displacement.Mul(-1)}
		data, ok := c.intersect(&in, &cache)
		if !ok {
			continue
		}
		data.PointA = data.PointA.Add(displacement)
		data.PointB = data.PointB.Add(displacement)
		data.Param = 1
		data.Triangle = triangle
		if contacts.add(data, cache) {
			dropped++
		}
	}

	var buffer [candidateBuffer]int
	bounds := geometry.SweptBounds(body, displacement).Expand(gjk.ContactTolerance)
	for _, triangle := range index.Candidates(bounds, buffer[:0]) {
		if isKnown(known, triangle) {
			continue
		}
		tri := mesh.Triangle(triangle)
		if tri.Cull(body, displacement) {
			continue
		}

		var cache gjk.Cache
		data, ok := c.DynamicIntersect(body, &tri, displacement, mgl64.Vec3{}, &cache)
		if !ok {
			continue
		}
		data.Triangle = triangle
		if contacts.add(data, cache) {
			dropped++
		}
	}

	if dropped > 0 {
		c.logger.Debug("mesh contacts truncated",
			zap.Int("kept", contacts.Count),
			zap.Int("dropped", dropped))
	}
	return contacts
}

func isKnown(known []KnownTriangle, triangle int) bool {
	for i := range known {
		if known[i].Triangle == triangle {
			return true
		}
	}
	return false
}
