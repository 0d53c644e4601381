// Package advance computes the time of first contact of two convex shapes under
// a linear relative displacement, by conservative advancement.
//
// For a pure translation the distance between two convex sets is a convex
// function of time, so its tangent at any instant is a lower bound. Each step
// moves the time estimate to the root of that tangent, which never passes the
// true time of impact, and the distance solver is restarted at the new instant.
package advance

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations bounds the number of restarts of the distance solver.
	MaxIterations = 32

	// MinClosingSpeed is the approach speed, in length units per step, below
	// which the shapes cannot possibly reach each other.
	MinClosingSpeed = 1e-9

	// MinTimeStep is the smallest time advance.
	MinTimeStep = 1e-9
)

// State is the outcome of an advancement.
type State int

const (
	// StateSeparated means no contact happens during the displacement.
	StateSeparated State = iota
	// StateTouching means the shapes come into contact at Result.T.
	StateTouching
	// StateOverlapped means the cores already overlap at the start.
	StateOverlapped
	// StateFailed means the solver did not converge; it is reported as no contact.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSeparated:
		return "separated"
	case StateTouching:
		return "touching"
	case StateOverlapped:
		return "overlapped"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result of Advance. Output is the distance result at T, computed with B
// translated by T*displacement.
type Result struct {
	State      State
	T          float64
	Output     gjk.Output
	Iterations int
}

// Hit reports whether contact was found during the step.
func (r Result) Hit() bool {
	return r.State == StateTouching || r.State == StateOverlapped
}

var axisDirections = [6]mgl64.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// coreBounds returns the world bounds of a core from its six axis supports.
func coreBounds(c gjk.Convex) actor.AABB {
	var supports [6]mgl64.Vec3
	c.SupportArrayWorld(axisDirections[:], supports[:])
	return actor.AABB{
		Min: mgl64.Vec3{supports[1][0], supports[3][1], supports[5][2]},
		Max: mgl64.Vec3{supports[0][0], supports[2][1], supports[4][2]},
	}
}

// Reachable reports whether the swept core bounds of B can come within the
// contact margin of A. A false answer proves there is no contact.
func Reachable(a, b gjk.Convex, displacement mgl64.Vec3) bool {
	margin := a.ShrinkSize() + b.ShrinkSize() + gjk.ContactTolerance
	return coreBounds(a).Expand(margin).Overlaps(coreBounds(b).Sweep(displacement))
}

// Advance finds the first time t in [0,1] at which B, translated by
// t*displacement, comes within gjk.ContactTolerance of A. displacement is the
// motion of B relative to A over the step. cache may be nil.
//
// Algorithm overview:
//  1. Reject the pair if the swept bounds never meet
//  2. Run the distance solver at the current time
//  3. Contact when the surface gap is within tolerance
//  4. No contact when the shapes do not approach along the normal, or when even
//     the tangent bound does not close the gap before t=1
//  5. Otherwise advance t to the root of the tangent, minus half the tolerance,
//     and restart from the advanced time
func Advance(a, b gjk.Convex, displacement mgl64.Vec3, cache *gjk.Cache) Result {
	result := Result{State: StateSeparated, T: 1}
	if !Reachable(a, b, displacement) {
		return result
	}

	margin := a.ShrinkSize() + b.ShrinkSize()
	t := 0.0
	final := false

	for result.Iterations < MaxIterations {
		result.Iterations++

		// restart from advanced time
		out := gjk.Distance(&gjk.Input{A: a, B: b, OffsetB: displacement.Mul(t)}, cache)
		result.Output = out
		result.T = t

		if !out.Converged {
			result.State = StateFailed
			return result
		}
		if out.Overlap {
			if t == 0 {
				result.State = StateOverlapped
			} else {
				result.State = StateTouching
			}
			return result
		}

		gap := out.Distance - margin
		if gap <= gjk.ContactTolerance {
			result.State = StateTouching
			return result
		}

		closing := -displacement.Dot(out.Normal)
		if closing <= MinClosingSpeed {
			result.State = StateSeparated
			result.T = 1
			return result
		}

		// The solver stops within RelativeTolerance of the distance. The slack is
		// taken from the surface gap and capped at half of what remains above
		// ContactTolerance/2, so every step is positive and the gap converges.
		slack := math.Min(gjk.RelativeTolerance*out.Distance, (gap-gjk.ContactTolerance/2)/2)
		step := (gap - gjk.ContactTolerance/2 - slack) / closing
		if t+step >= 1 {
			if final {
				result.State = StateSeparated
				return result
			}
			// Check the end pose once: the gap may close within tolerance.
			t = 1
			final = true
			continue
		}
		t = math.Min(t+math.Max(step, MinTimeStep), 1)
	}

	result.State = StateFailed
	return result
}
