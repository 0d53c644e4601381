package geometry

import (
	"math"
	"sort"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// TriangleIndex enumerates the mesh triangles that may touch a query box.
// Candidates appends to out[:0] and returns the indices sorted and unique, so
// that results do not depend on the index layout.
type TriangleIndex interface {
	Candidates(bounds actor.AABB, out []int) []int
}

// CellKey - Coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - Indices of the triangles overlapping a cell
type Cell struct {
	triangleIndices []int
}

// TriangleGrid - Uniform spatial grid with hashing over the triangles of a mesh
type TriangleGrid struct {
	mesh     *Mesh
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewTriangleGrid builds a grid of numCells hashed cells (rounded up to a power
// of two) of the given size and inserts every triangle of mesh.
func NewTriangleGrid(mesh *Mesh, cellSize float64, numCells int) (*TriangleGrid, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, errors.Errorf("grid cell size must be positive and finite, got %v", cellSize)
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].triangleIndices = make([]int, 0, 8)
	}

	grid := &TriangleGrid{
		mesh:     mesh,
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
	for i := range mesh.Indices {
		grid.insert(i)
	}
	grid.sortCells()
	return grid, nil
}

// nextPowerOfTwo - Rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// insert - Adds a triangle to every cell its bounds occupy
func (g *TriangleGrid) insert(triangle int) {
	aabb := g.mesh.TriangleAABB(triangle)
	minCell := g.worldToCell(aabb.Min)
	maxCell := g.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := g.hashCell(CellKey{x, y, z})
				indices := g.cells[cellIdx].triangleIndices
				// a triangle spanning several cells may hash twice into the same one
				if n := len(indices); n > 0 && indices[n-1] == triangle {
					continue
				}
				g.cells[cellIdx].triangleIndices = append(indices, triangle)
			}
		}
	}
}

func (g *TriangleGrid) sortCells() {
	for i := range g.cells {
		if len(g.cells[i].triangleIndices) > 1 {
			sort.Ints(g.cells[i].triangleIndices)
		}
	}
}

// Candidates returns the sorted, unique triangles whose bounds overlap bounds.
// A box spanning more cells than the grid holds on some axis is answered by a
// scan of the whole mesh.
func (g *TriangleGrid) Candidates(bounds actor.AABB, out []int) []int {
	out = out[:0]
	minCell := g.worldToCell(bounds.Min)
	maxCell := g.worldToCell(bounds.Max)
	if g.exceeds(minCell, maxCell) {
		return g.mesh.Candidates(bounds, out)
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := g.hashCell(CellKey{x, y, z})
				for _, triangle := range g.cells[cellIdx].triangleIndices {
					if g.mesh.TriangleAABB(triangle).Overlaps(bounds) {
						out = append(out, triangle)
					}
				}
			}
		}
	}

	sort.Ints(out)
	unique := out[:0]
	for _, triangle := range out {
		if n := len(unique); n == 0 || unique[n-1] != triangle {
			unique = append(unique, triangle)
		}
	}
	return unique
}

// exceeds reports whether the cell range is wider than the grid on some axis.
func (g *TriangleGrid) exceeds(minCell, maxCell CellKey) bool {
	limit := len(g.cells)
	return maxCell.X-minCell.X >= limit ||
		maxCell.Y-minCell.Y >= limit ||
		maxCell.Z-minCell.Z >= limit
}

// maxCellCoordinate bounds cell coordinates so that the conversion to int
// cannot overflow.
const maxCellCoordinate = 1 << 40

// worldToCell - Converts a world position to cell coordinates
func (g *TriangleGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: g.cellCoordinate(pos.X()),
		Y: g.cellCoordinate(pos.Y()),
		Z: g.cellCoordinate(pos.Z()),
	}
}

func (g *TriangleGrid) cellCoordinate(v float64) int {
	c := math.Floor(v / g.cellSize)
	if math.IsNaN(c) {
		return 0
	}
	return int(math.Max(-maxCellCoordinate, math.Min(c, maxCellCoordinate)))
}

// hashCell - Hashes a cell to an index in the array
func (g *TriangleGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
