package gjk

// Engine-wide numerical tolerances. They are package constants so that every
// replica of the simulation compares against exactly the same values.
const (
	// MinFloat guards every division: denominators below it select a fallback.
	MinFloat = 1e-12

	// VertexMergeDistance is the distance under which two Minkowski vertices are
	// considered the same point.
	VertexMergeDistance = 1e-9

	// MinSeparation is the core distance under which the shapes are treated as
	// overlapping.
	MinSeparation = 1e-7

	// ProgressTolerance is the minimal relative decrease of the squared distance
	// between two iterations; less than this means the solver has converged.
	ProgressTolerance = 1e-9

	// RelativeTolerance bounds the relative gap between the current squared
	// distance and its lower bound given by the newest support point.
	RelativeTolerance = 1e-6

	// ContactTolerance is the slack added to the shrink margins by static queries
	// and the target gap of conservative advancement.
	ContactTolerance = 1e-5

	// MaxIterations caps the distance loop.
	MaxIterations = 64
)

const (
	vertexMergeDistanceSq = VertexMergeDistance * VertexMergeDistance
	minSeparationSq       = MinSeparation * MinSeparation
)
