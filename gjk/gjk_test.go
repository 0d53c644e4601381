package gjk

import (
	"math"
	"testing"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions

func createBoxBody(position mgl64.Vec3, halfExtents mgl64.Vec3) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.Transform{Position: position, Rotation: mgl64.QuatIdent()},
		&actor.Box{HalfExtents: halfExtents},
	)
}

func createSphereBody(position mgl64.Vec3, radius float64) *actor.RigidBody {
	sphere, err := actor.NewSphere(radius)
	if err != nil {
		panic(err)
	}
	return actor.NewRigidBody(actor.Transform{Position: position, Rotation: mgl64.QuatIdent()}, sphere)
}

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

// MinkowskiSupport tests

func TestMinkowskiSupport(t *testing.T) {
	t.Run("two separated boxes along x-axis", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})

		v := MinkowskiSupport(&Input{A: a, B: b}, mgl64.Vec3{1, 0, 0})
		// max(A.x) - min(B.x) = 1 - 2 = -1
		if v.W.X() != -1 {
			t.Errorf("Expected W.X = -1, got %v", v.W.X())
		}
		if !vec3Equal(v.W, v.A.Sub(v.B), 0) {
			t.Errorf("W = %v is not A - B", v.W)
		}
	})

	t.Run("offset translates B", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
		b := createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})

		v := MinkowskiSupport(&Input{A: a, B: b, OffsetB: mgl64.Vec3{2, 0, 0}}, mgl64.Vec3{1, 0, 0})
		if v.W.X() != -3 || v.B.X() != 4 {
			t.Errorf("unexpected vertex with offset: %+v", v)
		}
	})
}

// Classifier tests

func TestClosestOnSegment(t *testing.T) {
	tests := []struct {
		name     string
		a, b     mgl64.Vec3
		expected mgl64.Vec3
		mask     uint8
	}{
		{"vertex a region", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{1, 0, 0}, 0b01},
		{"vertex b region", mgl64.Vec3{2, 1, 0}, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1, 1, 0}, 0b10},
		{"edge interior", mgl64.Vec3{-1, 1, 0}, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0, 1, 0}, 0b11},
		{"degenerate segment", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, 0b01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, w, mask := closestOnSegment(tt.a, tt.b)
			if mask != tt.mask {
				t.Errorf("mask = %b, want %b", mask, tt.mask)
			}
			if !vec3Equal(p, tt.expected, 1e-12) {
				t.Errorf("closest = %v, want %v", p, tt.expected)
			}
			if !vec3Equal(tt.a.Mul(w[0]).Add(tt.b.Mul(w[1])), p, 1e-12) {
				t.Errorf("weights %v do not rebuild %v", w, p)
			}
		})
	}
}

func TestClosestOnTriangle(t *testing.T) {
	// Triangle in the plane z=1
	a := mgl64.Vec3{0, 0, 1}
	b := mgl64.Vec3{2, 0, 1}
	c := mgl64.Vec3{0, 2, 1}

	tests := []struct {
		name     string
		shift    mgl64.Vec3 // moves the triangle instead of the origin
		expected mgl64.Vec3
		mask     uint8
	}{
		{"interior", mgl64.Vec3{-0.5, -0.5, 0}, mgl64.Vec3{0, 0, 1}, 0b111},
		{"vertex a", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1, 1, 1}, 0b001},
		{"vertex b", mgl64.Vec3{-3, 1, 0}, mgl64.Vec3{-1, 1, 1}, 0b010},
		{"vertex c", mgl64.Vec3{1, -3, 0}, mgl64.Vec3{1, -1, 1}, 0b100},
		{"edge ab", mgl64.Vec3{-1, 1, 0}, mgl64.Vec3{0, 1, 1}, 0b011},
		{"edge ac", mgl64.Vec3{1, -1, 0}, mgl64.Vec3{1, 0, 1}, 0b101},
		{"edge bc", mgl64.Vec3{-2, -2, 0}, mgl64.Vec3{-1, -1, 1}, 0b110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pa, pb, pc := a.Add(tt.shift), b.Add(tt.shift), c.Add(tt.shift)
			p, w, mask := closestOnTriangle(pa, pb, pc)
			if mask != tt.mask {
				t.Errorf("mask = %03b, want %03b", mask, tt.mask)
			}
			if !vec3Equal(p, tt.expected, 1e-12) {
				t.Errorf("closest = %v, want %v", p, tt.expected)
			}
			rebuilt := pa.Mul(w[0]).Add(pb.Mul(w[1])).Add(pc.Mul(w[2]))
			if !vec3Equal(rebuilt, p, 1e-12) {
				t.Errorf("weights %v rebuild %v, want %v", w, rebuilt, p)
			}
		})
	}

	t.Run("collinear corners", func(t *testing.T) {
		p, _, mask := closestOnTriangle(mgl64.Vec3{-1, 1, 0}, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{3, 1, 0})
		if !vec3Equal(p, mgl64.Vec3{0, 1, 0}, 1e-12) {
			t.Errorf("closest = %v, want (0, 1, 0)", p)
		}
		if mask == 0 {
			t.Error("empty mask for a degenerate triangle")
		}
	})
}

func TestClosestOnTetrahedron(t *testing.T) {
	t.Run("encloses origin", func(t *testing.T) {
		_, _, mask := closestOnTetrahedron(
			mgl64.Vec3{1, 1, 1}, mgl64.Vec3{-1, -1, 1}, mgl64.Vec3{-1, 1, -1}, mgl64.Vec3{1, -1, -1})
		if mask != fullMask {
			t.Errorf("mask = %04b, want full", mask)
		}
	})

	t.Run("origin below the base face", func(t *testing.T) {
		p, w, mask := closestOnTetrahedron(
			mgl64.Vec3{-1, -1, 1}, mgl64.Vec3{1, -1, 1}, mgl64.Vec3{0, 1, 1}, mgl64.Vec3{0, 0, 3})
		if mask != 0b0111 {
			t.Errorf("mask = %04b, want 0111", mask)
		}
		if !vec3Equal(p, mgl64.Vec3{0, 0, 1}, 1e-12) {
			t.Errorf("closest = %v, want (0, 0, 1)", p)
		}
		if w[3] != 0 {
			t.Errorf("apex weight = %v, want 0", w[3])
		}
	})

	t.Run("origin nearest to the apex", func(t *testing.T) {
		p, _, mask := closestOnTetrahedron(
			mgl64.Vec3{-1, -1, 3}, mgl64.Vec3{1, -1, 3}, mgl64.Vec3{0, 1, 3}, mgl64.Vec3{0, 0, 1})
		if mask != 0b1000 {
			t.Errorf("mask = %04b, want 1000", mask)
		}
		if !vec3Equal(p, mgl64.Vec3{0, 0, 1}, 1e-12) {
			t.Errorf("closest = %v", p)
		}
	})

	t.Run("flat tetrahedron", func(t *testing.T) {
		p, _, mask := closestOnTetrahedron(
			mgl64.Vec3{-1, -1, 2}, mgl64.Vec3{1, -1, 2}, mgl64.Vec3{1, 1, 2}, mgl64.Vec3{-1, 1, 2})
		if mask == fullMask {
			t.Error("a flat tetrahedron cannot enclose the origin")
		}
		if !vec3Equal(p, mgl64.Vec3{0, 0, 2}, 1e-12) {
			t.Errorf("closest = %v, want (0, 0, 2)", p)
		}
	})
}

// Distance tests

func TestDistance_Spheres(t *testing.T) {
	tests := []struct {
		name    string
		b       mgl64.Vec3
		overlap bool
	}{
		{"separated along x", mgl64.Vec3{3, 0, 0}, false},
		{"separated along z", mgl64.Vec3{0, 0, 3}, false},
		{"separated diagonally", mgl64.Vec3{1, 2, -2}, false},
		{"concentric", mgl64.Vec3{0, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createSphereBody(mgl64.Vec3{0, 0, 0}, 1)
			b := createSphereBody(tt.b, 1)
			out := Distance(&Input{A: a, B: b}, nil)

			if out.Overlap != tt.overlap {
				t.Fatalf("Overlap = %v, want %v", out.Overlap, tt.overlap)
			}
			if tt.overlap {
				return
			}
			if math.Abs(out.Distance-tt.b.Len()) > 1e-12 {
				t.Errorf("Distance = %v, want %v", out.Distance, tt.b.Len())
			}
			if !vec3Equal(out.Normal, tt.b.Normalize(), 1e-12) {
				t.Errorf("Normal = %v, want %v", out.Normal, tt.b.Normalize())
			}
		})
	}
}

func TestDistance_Boxes(t *testing.T) {
	rotated := actor.NewRigidBody(
		actor.NewTransformAt(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})),
		&actor.Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
	)

	tests := []struct {
		name     string
		a, b     *actor.RigidBody
		distance float64
		normal   mgl64.Vec3
		overlap  bool
	}{
		{
			name:     "face to face",
			a:        createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}),
			b:        createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1}),
			distance: 1,
			normal:   mgl64.Vec3{1, 0, 0},
		},
		{
			name:     "offset faces",
			a:        createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}),
			b:        createBoxBody(mgl64.Vec3{0.5, -4, 0.3}, mgl64.Vec3{1, 2, 1}),
			distance: 1,
			normal:   mgl64.Vec3{0, -1, 0},
		},
		{
			name:     "rotated corner to face",
			a:        rotated,
			b:        createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1}),
			distance: 2 - math.Sqrt2,
			normal:   mgl64.Vec3{1, 0, 0},
		},
		{
			name:    "overlapping",
			a:       createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}),
			b:       createBoxBody(mgl64.Vec3{1.5, 0.2, 0}, mgl64.Vec3{1, 1, 1}),
			overlap: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Distance(&Input{A: tt.a, B: tt.b}, nil)
			if !out.Converged {
				t.Fatalf("did not converge after %d iterations", out.Iterations)
			}
			if out.Overlap != tt.overlap {
				t.Fatalf("Overlap = %v, want %v", out.Overlap, tt.overlap)
			}
			if tt.overlap {
				return
			}
			if math.Abs(out.Distance-tt.distance) > 1e-6 {
				t.Errorf("Distance = %v, want %v", out.Distance, tt.distance)
			}
			if !vec3Equal(out.Normal, tt.normal, 1e-6) {
				t.Errorf("Normal = %v, want %v", out.Normal, tt.normal)
			}
			if math.Abs(out.PointB.Sub(out.PointA).Len()-out.Distance) > 1e-9 {
				t.Errorf("witness points %v %v do not match the distance", out.PointA, out.PointB)
			}
		})
	}
}

func TestDistance_Offset(t *testing.T) {
	a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createBoxBody(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})

	out := Distance(&Input{A: a, B: b, OffsetB: mgl64.Vec3{2, 0, 0}}, nil)
	if math.Abs(out.Distance-3) > 1e-9 {
		t.Errorf("Distance = %v, want 3", out.Distance)
	}
	if out.PointB.X() != 4 {
		t.Errorf("PointB = %v should include the offset", out.PointB)
	}
}

func TestDistance_CacheWarmStart(t *testing.T) {
	a := actor.NewRigidBody(
		actor.NewTransformAt(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(0.3, mgl64.Vec3{1, 2, 3}.Normalize())),
		&actor.Cylinder{Radius: 1, HalfHeight: 1.5},
	)
	b := actor.NewRigidBody(
		actor.NewTransformAt(mgl64.Vec3{2.5, 1, -0.5}, mgl64.QuatRotate(-0.8, mgl64.Vec3{0, 1, 1}.Normalize())),
		&actor.Box{HalfExtents: mgl64.Vec3{0.5, 0.7, 0.9}},
	)
	in := &Input{A: a, B: b}

	cold := Distance(in, nil)

	var cache Cache
	first := Distance(in, &cache)
	if cache.Count == 0 {
		t.Fatal("cache was not written")
	}
	warm := Distance(in, &cache)

	if math.Abs(cold.Distance-first.Distance) > 1e-12 {
		t.Errorf("cache write changed the result: %v vs %v", cold.Distance, first.Distance)
	}
	if math.Abs(warm.Distance-cold.Distance) > 1e-5 {
		t.Errorf("warm Distance = %v, cold = %v", warm.Distance, cold.Distance)
	}
	if warm.Iterations > cold.Iterations {
		t.Errorf("warm start took %d iterations, cold %d", warm.Iterations, cold.Iterations)
	}

	t.Run("stale cache", func(t *testing.T) {
		moved := actor.NewRigidBody(actor.NewTransformAt(mgl64.Vec3{-3, 0, 0}, mgl64.QuatIdent()), b.Shape)
		stale := Distance(&Input{A: a, B: moved}, &cache)
		fresh := Distance(&Input{A: a, B: moved}, nil)
		if math.Abs(stale.Distance-fresh.Distance) > 1e-5 {
			t.Errorf("stale cache Distance = %v, fresh = %v", stale.Distance, fresh.Distance)
		}
	})

	cache.Reset()
	if cache.Count != 0 {
		t.Errorf("Count = %d after Reset", cache.Count)
	}
	if reset := Distance(in, &cache); math.Abs(reset.Distance-cold.Distance) > 1e-12 || reset.Iterations != cold.Iterations {
		t.Errorf("query after Reset = (%v, %d), cold = (%v, %d)", reset.Distance, reset.Iterations, cold.Distance, cold.Iterations)
	}
}

func TestDistance_Deterministic(t *testing.T) {
	a := actor.NewRigidBody(actor.NewTransformAt(mgl64.Vec3{0.1, 0.2, 0.3}, mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0})),
		&actor.Cone{Radius: 1, HalfHeight: 1})
	b := createBoxBody(mgl64.Vec3{1, 2.5, 0}, mgl64.Vec3{1, 0.5, 1})

	first := Distance(&Input{A: a, B: b}, nil)
	second := Distance(&Input{A: a, B: b}, nil)
	if first != second {
		t.Errorf("repeated queries differ: %+v vs %+v", first, second)
	}
}

func TestDimension(t *testing.T) {
	tests := []struct {
		name   string
		points []mgl64.Vec3
		want   int
	}{
		{"vertex", []mgl64.Vec3{{1, 0, 0}, {1, 0, 0}, {1, 0, 1e-12}}, 1},
		{"edge", []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}}, 2},
		{"face", []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, 3},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dimension(tt.points); got != tt.want {
				t.Errorf("Dimension() = %d, want %d", got, tt.want)
			}
		})
	}
}

func BenchmarkDistance_Boxes(b *testing.B) {
	a := createBoxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	other := createBoxBody(mgl64.Vec3{2.5, 0.5, 0.2}, mgl64.Vec3{1, 1, 1})
	in := &Input{A: a, B: other}
	var cache Cache

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Distance(in, &cache)
	}
}
