package narrowphase

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/geometry"
	"github.com/akmonengine/narrowphase/gjk"
)

// Contact is a persistent pair of rigid bodies. The simulation sets the
// displacements of the step before each update; Cache carries the simplex from
// one update to the next.
type Contact struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody

	DisplacementA mgl64.Vec3
	DisplacementB mgl64.Vec3

	Cache gjk.Cache

	// Data is the result of the last update, meaningful when Touching is set.
	Data     IntersectionData
	Touching bool
}

// NewContact returns a pair of bodies that do not move.
func NewContact(bodyA, bodyB *actor.RigidBody) *Contact {
	return &Contact{BodyA: bodyA, BodyB: bodyB, Data: noContact}
}

// Update queries the pair: statically when neither body moves, swept otherwise.
func (ct *Contact) Update(c *Collider) {
	if ct.DisplacementA == (mgl64.Vec3{}) && ct.DisplacementB == (mgl64.Vec3{}) {
		ct.Data, ct.Touching = c.StaticIntersect(ct.BodyA, ct.BodyB, &ct.Cache)
		return
	}
	ct.Data, ct.Touching = c.DynamicIntersect(ct.BodyA, ct.BodyB, ct.DisplacementA, ct.DisplacementB, &ct.Cache)
}

// GeometryContact is a persistent pair of a rigid body and a static mesh. The
// triangles touched by an update become the known triangles of the next one.
type GeometryContact struct {
	Body  *actor.RigidBody
	Mesh  *geometry.Mesh
	Index geometry.TriangleIndex

	Displacement mgl64.Vec3

	Known    []KnownTriangle
	Contacts MeshContacts
}

// NewGeometryContact pairs body with mesh. A nil index scans the whole mesh.
func NewGeometryContact(body *actor.RigidBody, mesh *geometry.Mesh, index geometry.TriangleIndex) *GeometryContact {
	if index == nil {
		index = mesh
	}
	return &GeometryContact{
		Body:  body,
		Mesh:  mesh,
		Index: index,
		Known: make([]KnownTriangle, 0, MaxMeshContacts),
	}
}

// Update queries the mesh and keeps the contacts as known triangles for the next step.
func (gc *GeometryContact) Update(c *Collider) {
	gc.Contacts = c.IntersectMeshMixed(gc.Body, gc.Mesh, gc.Index, gc.Displacement, gc.Known)

	gc.Known = gc.Known[:0]
	for i := 0; i < gc.Contacts.Count; i++ {
		gc.Known = append(gc.Known, KnownTriangle{
			Triangle: gc.Contacts.Contacts[i].Triangle,
			Cache:    gc.Contacts.Caches[i],
		})
	}
}
