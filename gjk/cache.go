package gjk

import "github.com/go-gl/mathgl/mgl64"

// Cache keeps the final simplex of a query between simulation steps.
//
// Vertices are stored in each shape's local frame so that they follow the
// bodies. They are genuine support points, so a stale cache only costs
// iterations. A Cache is owned by one contact and must not be shared by
// concurrent queries.
type Cache struct {
	LocalA [4]mgl64.Vec3
	LocalB [4]mgl64.Vec3
	Count  int
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.Count = 0
}

// load re-expresses the cached vertices in world space, dropping duplicates.
func (c *Cache) load(in *Input, simplex *Simplex) {
	simplex.Reset()
	for i := 0; i < c.Count && i < len(c.LocalA); i++ {
		a := in.A.ToWorld(c.LocalA[i])
		b := in.B.ToWorld(c.LocalB[i]).Add(in.OffsetB)
		w := a.Sub(b)
		if simplex.contains(w) {
			continue
		}
		simplex.push(Vertex{W: w, A: a, B: b})
	}
}

func (c *Cache) store(in *Input, simplex *Simplex) {
	c.Count = simplex.Count
	for i := 0; i < simplex.Count; i++ {
		v := simplex.Vertices[i]
		c.LocalA[i] = in.A.ToLocal(v.A)
		c.LocalB[i] = in.B.ToLocal(v.B.Sub(in.OffsetB))
	}
}
