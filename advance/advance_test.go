package advance

import (
	"math"
	"testing"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

func createBody(t *testing.T, position mgl64.Vec3, shape actor.Shape, err error) *actor.RigidBody {
	t.Helper()
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	return actor.NewRigidBody(actor.NewTransformAt(position, mgl64.QuatIdent()), shape)
}

func createBox(t *testing.T, position, halfExtents mgl64.Vec3) *actor.RigidBody {
	t.Helper()
	box, err := actor.NewBox(halfExtents)
	return createBody(t, position, box, err)
}

func createSphere(t *testing.T, position mgl64.Vec3, radius float64) *actor.RigidBody {
	t.Helper()
	sphere, err := actor.NewSphere(radius)
	return createBody(t, position, sphere, err)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name         string
		a, b         func(t *testing.T) *actor.RigidBody
		displacement mgl64.Vec3
		state        State
		toi          float64
	}{
		{
			name:         "boxes closing head on",
			a:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}) },
			b:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1}) },
			displacement: mgl64.Vec3{-2, 0, 0},
			state:        StateTouching,
			toi:          0.5,
		},
		{
			name:         "spheres closing head on",
			a:            func(t *testing.T) *actor.RigidBody { return createSphere(t, mgl64.Vec3{0, 0, 0}, 1) },
			b:            func(t *testing.T) *actor.RigidBody { return createSphere(t, mgl64.Vec3{5, 0, 0}, 1) },
			displacement: mgl64.Vec3{-4, 0, 0},
			state:        StateTouching,
			toi:          0.75,
		},
		{
			name:         "spheres passing by",
			a:            func(t *testing.T) *actor.RigidBody { return createSphere(t, mgl64.Vec3{0, 0, 0}, 1) },
			b:            func(t *testing.T) *actor.RigidBody { return createSphere(t, mgl64.Vec3{-3, 2.5, 0}, 1) },
			displacement: mgl64.Vec3{6, 0, 0},
			state:        StateSeparated,
			toi:          1,
		},
		{
			name:         "receding boxes",
			a:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}) },
			b:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1}) },
			displacement: mgl64.Vec3{0.5, 0, 0},
			state:        StateSeparated,
			toi:          1,
		},
		{
			name:         "falling short",
			a:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}) },
			b:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{0, 4, 0}, mgl64.Vec3{1, 1, 1}) },
			displacement: mgl64.Vec3{0, -1.5, 0},
			state:        StateSeparated,
			toi:          1,
		},
		{
			name:         "initial overlap",
			a:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}) },
			b:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{1, 0.5, 0}, mgl64.Vec3{1, 1, 1}) },
			displacement: mgl64.Vec3{-1, 0, 0},
			state:        StateOverlapped,
			toi:          0,
		},
		{
			name:         "thin wall is not tunneled",
			a:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.1, 2, 2}) },
			b:            func(t *testing.T) *actor.RigidBody { return createBox(t, mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{0.1, 0.1, 0.1}) },
			displacement: mgl64.Vec3{10, 0, 0},
			state:        StateTouching,
			toi:          0.48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a(t), tt.b(t)
			result := Advance(a, b, tt.displacement, nil)

			if result.State != tt.state {
				t.Fatalf("State = %v, want %v (T = %v)", result.State, tt.state, result.T)
			}
			if math.Abs(result.T-tt.toi) > 1e-4 {
				t.Errorf("T = %v, want %v", result.T, tt.toi)
			}
			if result.Iterations > MaxIterations {
				t.Errorf("Iterations = %d", result.Iterations)
			}
		})
	}
}

func TestAdvanceNormal(t *testing.T) {
	a := createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createBox(t, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})

	result := Advance(a, b, mgl64.Vec3{-2, 0, 0}, nil)
	if !result.Hit() {
		t.Fatalf("expected a hit, got %v", result.State)
	}
	if math.Abs(math.Abs(result.Output.Normal.X())-1) > 1e-9 {
		t.Errorf("Normal = %v, want ±X", result.Output.Normal)
	}
}

// The returned time must never be past genuine first contact.
func TestAdvanceNoOvershoot(t *testing.T) {
	cone, err := actor.NewCone(0.7, 1.1)
	if err != nil {
		t.Fatal(err)
	}
	a := actor.NewRigidBody(actor.NewTransformAt(mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 1}.Normalize())), cone)
	cylinder, err := actor.NewCylinder(0.5, 0.8)
	if err != nil {
		t.Fatal(err)
	}

	displacements := []mgl64.Vec3{{-6, 0.3, 0.1}, {-5, -1, 0.5}, {-7, 0.8, -0.6}, {-4.5, 0, 0}}
	for _, displacement := range displacements {
		b := actor.NewRigidBody(actor.NewTransformAt(mgl64.Vec3{4, 0.2, 0}, mgl64.QuatRotate(-0.9, mgl64.Vec3{0, 0, 1})), cylinder)

		result := Advance(a, b, displacement, nil)
		if !result.Hit() {
			continue
		}

		out := gjk.Distance(&gjk.Input{A: a, B: b, OffsetB: displacement.Mul(result.T)}, nil)
		if out.Overlap {
			t.Errorf("displacement %v: cores overlap at T = %v", displacement, result.T)
			continue
		}
		gap := out.Distance - a.ShrinkSize() - b.ShrinkSize()
		if gap < -1e-9 {
			t.Errorf("displacement %v: surfaces penetrate by %v at T = %v", displacement, -gap, result.T)
		}
		if gap > 2*gjk.ContactTolerance {
			t.Errorf("displacement %v: gap %v at T = %v is not a contact", displacement, gap, result.T)
		}
	}
}

// Spheres keep their whole radius as margin: the core distance is large while
// the surface gap is small, and contact must still be reached within tolerance.
func TestAdvanceLargeRadius(t *testing.T) {
	a := createSphere(t, mgl64.Vec3{0, 0, 0}, 1000)
	b := createSphere(t, mgl64.Vec3{2010, 0, 0}, 1000)
	displacement := mgl64.Vec3{-20, 0, 0}

	result := Advance(a, b, displacement, nil)
	if result.State != StateTouching {
		t.Fatalf("State = %v, want %v", result.State, StateTouching)
	}
	if result.T > 0.5 || 0.5-result.T > 1e-6 {
		t.Errorf("T = %.9f, want just below 0.5", result.T)
	}

	out := gjk.Distance(&gjk.Input{A: a, B: b, OffsetB: displacement.Mul(result.T)}, nil)
	gap := out.Distance - a.ShrinkSize() - b.ShrinkSize()
	if gap < -1e-9 || gap > gjk.ContactTolerance {
		t.Errorf("gap %v at T = %v is not a contact", gap, result.T)
	}
}

func TestReachable(t *testing.T) {
	a := createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createBox(t, mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 1, 1})

	if Reachable(a, b, mgl64.Vec3{10, 0, 0}) {
		t.Error("a sideways sweep far above A must be rejected")
	}
	if !Reachable(a, b, mgl64.Vec3{0, -4, 0}) {
		t.Error("a sweep through A must not be rejected")
	}

	result := Advance(a, b, mgl64.Vec3{10, 0, 0}, nil)
	if result.State != StateSeparated || result.Iterations != 0 {
		t.Errorf("rejected pair ran %d iterations, state %v", result.Iterations, result.State)
	}
}

func TestAdvanceCache(t *testing.T) {
	a := createBox(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := createSphere(t, mgl64.Vec3{0.3, 4, 0.2}, 0.5)

	var cache gjk.Cache
	cold := Advance(a, b, mgl64.Vec3{0, -4, 0}, nil)
	warm := Advance(a, b, mgl64.Vec3{0, -4, 0}, &cache)
	again := Advance(a, b, mgl64.Vec3{0, -4, 0}, &cache)

	for _, r := range []Result{warm, again} {
		if r.State != cold.State || math.Abs(r.T-cold.T) > 1e-6 {
			t.Errorf("cached advancement (%v, %v) differs from (%v, %v)", r.State, r.T, cold.State, cold.T)
		}
	}
}
