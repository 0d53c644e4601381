package main

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/akmonengine/narrowphase"
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/geometry"
)

// groundMesh builds a flat square of 2*n x 2*n unit quads at y=0, facing up.
func groundMesh(n int) (*geometry.Mesh, error) {
	size := 2 * n
	var vertices []mgl64.Vec3
	for z := 0; z <= size; z++ {
		for x := 0; x <= size; x++ {
			vertices = append(vertices, mgl64.Vec3{float64(x - n), 0, float64(z - n)})
		}
	}
	var indices [][3]int
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			i := z*(size+1) + x
			indices = append(indices, [3]int{i, i + size + 1, i + 1}, [3]int{i + 1, i + size + 1, i + size + 2})
		}
	}
	return geometry.NewMesh(vertices, indices)
}

func newBox(position mgl64.Vec3, rotation mgl64.Quat, halfExtents mgl64.Vec3) (*actor.RigidBody, error) {
	box, err := actor.NewBox(halfExtents)
	if err != nil {
		return nil, err
	}
	return actor.NewRigidBody(actor.NewTransformAt(position, rotation), box), nil
}

// SweptBoxes moves a box towards a resting box in a single step and reports
// the time of impact.
func SweptBoxes(collider *narrowphase.Collider) error {
	fmt.Println("Swept boxes")
	fmt.Println("===========")

	a, err := newBox(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})
	if err != nil {
		return err
	}
	b, err := newBox(mgl64.Vec3{3, 0, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})
	if err != nil {
		return err
	}

	contact := narrowphase.NewContact(a, b)
	contact.DisplacementB = mgl64.Vec3{-2, 0, 0}
	collider.NarrowPhase([]*narrowphase.Contact{contact})

	if !contact.Touching {
		fmt.Println("  no contact")
		return nil
	}
	fmt.Printf("  time of impact: %.6f\n", contact.Data.Param)
	fmt.Printf("  normal:         %v\n", contact.Data.Normal)
	fmt.Printf("  point on A:     %v\n", contact.Data.PointA)
	fmt.Printf("  point on B:     %v\n", contact.Data.PointB)
	fmt.Println()
	return nil
}

// FallingCube drops a tilted cube on a ground mesh, stopping it at the first
// contact of each step.
func FallingCube(collider *narrowphase.Collider) error {
	fmt.Println("Falling cube")
	fmt.Println("============")

	mesh, err := groundMesh(5)
	if err != nil {
		return err
	}
	grid, err := geometry.NewTriangleGrid(mesh, 1, 256)
	if err != nil {
		return err
	}
	cube, err := newBox(mgl64.Vec3{0.3, 4, -0.2}, mgl64.QuatRotate(0.4, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0.5, 0.5, 0.5})
	if err != nil {
		return err
	}

	contact := narrowphase.NewGeometryContact(cube, mesh, grid)
	gravity := mgl64.Vec3{0, -9.81, 0}
	velocity := mgl64.Vec3{}

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 120

	for step := 0; step < maxSteps; step++ {
		velocity = velocity.Add(gravity.Mul(dt))
		contact.Displacement = velocity.Mul(dt)
		collider.NarrowPhaseGeometry([]*narrowphase.GeometryContact{contact})

		if contact.Contacts.Count == 0 {
			cube.Transform = cube.Transform.Translated(contact.Displacement)
			continue
		}

		first := contact.Contacts.Contacts[0]
		cube.Transform = cube.Transform.Translated(contact.Displacement.Mul(first.Param))
		fmt.Printf("  step %d: %d contact(s), first on triangle %d at t=%.4f\n",
			step+1, contact.Contacts.Count, first.Triangle, first.Param)
		fmt.Printf("  cube resting at %v, separation %.6f\n", cube.Transform.Position, first.Separation)
		return nil
	}

	fmt.Println("  the cube never touched the ground")
	return nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	collider, err := narrowphase.NewCollider(narrowphase.Config{Workers: 2, Logger: logger})
	if err != nil {
		logger.Fatal("creating collider", zap.Error(err))
	}

	if err := SweptBoxes(collider); err != nil {
		logger.Fatal("swept boxes", zap.Error(err))
	}
	if err := FallingCube(collider); err != nil {
		logger.Fatal("falling cube", zap.Error(err))
	}
}
