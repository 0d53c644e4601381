package geometry

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ConvexHull is a convex polyhedron given by its vertices in a local frame.
// The support function is a linear scan; the first maximum wins. Hulls are
// exact: they carry no shrink.
type ConvexHull struct {
	Vertices  []mgl64.Vec3
	Transform actor.Transform
	centroid  mgl64.Vec3
}

// NewConvexHull validates the vertices and returns the hull. Every invalid
// vertex is reported.
func NewConvexHull(vertices []mgl64.Vec3, transform actor.Transform) (*ConvexHull, error) {
	if len(vertices) == 0 {
		return nil, errors.New("convex hull needs at least one vertex")
	}

	var err error
	var sum mgl64.Vec3
	for i, v := range vertices {
		if !finite(v) {
			err = multierr.Append(err, errors.Errorf("convex hull vertex %d is not finite: %v", i, v))
			continue
		}
		sum = sum.Add(v)
	}
	if err != nil {
		return nil, err
	}

	return &ConvexHull{
		Vertices:  vertices,
		Transform: transform,
		centroid:  sum.Mul(1 / float64(len(vertices))),
	}, nil
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (h *ConvexHull) support(local mgl64.Vec3) mgl64.Vec3 {
	return actor.MaxVertex(h.Vertices, local)
}

func (h *ConvexHull) ShrinkSize() float64 {
	return 0
}

func (h *ConvexHull) InitialSupportWorld() mgl64.Vec3 {
	return h.Transform.ToWorld(h.centroid)
}

func (h *ConvexHull) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return h.Transform.ToWorld(h.support(h.Transform.DirectionToLocal(direction)))
}

func (h *ConvexHull) OpposingSupportsWorld(direction mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	local := h.Transform.DirectionToLocal(direction)
	best, worst := h.Vertices[0], h.Vertices[0]
	bestDot := best.Dot(local)
	worstDot := bestDot
	for _, v := range h.Vertices[1:] {
		d := v.Dot(local)
		if d > bestDot {
			best, bestDot = v, d
		}
		if d < worstDot {
			worst, worstDot = v, d
		}
	}
	return h.Transform.ToWorld(best), h.Transform.ToWorld(worst)
}

func (h *ConvexHull) SupportArrayWorld(directions, out []mgl64.Vec3) {
	for i := range directions {
		out[i] = h.SupportWorld(directions[i])
	}
}

func (h *ConvexHull) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return h.Transform.ToLocal(point)
}

func (h *ConvexHull) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return h.Transform.ToWorld(point)
}

func (h *ConvexHull) Axes() [3]mgl64.Vec3 {
	return h.Transform.Axes()
}

func (h *ConvexHull) AABB() actor.AABB {
	box := actor.AABB{Min: h.Transform.ToWorld(h.Vertices[0]), Max: h.Transform.ToWorld(h.Vertices[0])}
	for _, v := range h.Vertices[1:] {
		box = box.Union(actor.AABB{Min: h.Transform.ToWorld(v), Max: h.Transform.ToWorld(v)})
	}
	return box
}
