// Package world provides the in-memory voxel terrain the colony lives on.
package world

import "github.com/antymology/antsim/sim"

// Grid is a dense, fixed-size block store. It is not safe for concurrent use.
//
// Out-of-range reads: below the floor or outside the X/Z bounds is solid
// container (agents can neither walk nor dig there); above the ceiling is
// empty. Out-of-range writes are dropped.
type Grid struct {
	sizeX, sizeY, sizeZ int
	blocks              []sim.BlockKind
}

// NewGrid returns an all-empty grid. Panics on non-positive dimensions.
func NewGrid(sizeX, sizeY, sizeZ int) *Grid {
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		panic("world.NewGrid: dimensions must be > 0")
	}
	return &Grid{
		sizeX:  sizeX,
		sizeY:  sizeY,
		sizeZ:  sizeZ,
		blocks: make([]sim.BlockKind, sizeX*sizeY*sizeZ),
	}
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.sizeZ+z)*g.sizeY + y
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.sizeX && y >= 0 && y < g.sizeY && z >= 0 && z < g.sizeZ
}

// GetBlock implements sim.WorldGrid.
func (g *Grid) GetBlock(x, y, z int) sim.BlockKind {
	if g.inBounds(x, y, z) {
		return g.blocks[g.index(x, y, z)]
	}
	if y >= g.sizeY && x >= 0 && x < g.sizeX && z >= 0 && z < g.sizeZ {
		return sim.BlockEmpty
	}
	return sim.BlockContainer
}

// SetBlock implements sim.WorldGrid.
func (g *Grid) SetBlock(x, y, z int, kind sim.BlockKind) {
	if !g.inBounds(x, y, z) {
		return
	}
	g.blocks[g.index(x, y, z)] = kind
}

// Size returns the grid dimensions.
func (g *Grid) Size() (x, y, z int) {
	return g.sizeX, g.sizeY, g.sizeZ
}

// Count returns how many cells hold kind.
func (g *Grid) Count(kind sim.BlockKind) int {
	n := 0
	for _, b := range g.blocks {
		if b == kind {
			n++
		}
	}
	return n
}

// TopBlock returns the highest non-empty block of column (x, z).
// ok is false for an empty or out-of-range column.
func (g *Grid) TopBlock(x, z int) (y int, kind sim.BlockKind, ok bool) {
	if x < 0 || x >= g.sizeX || z < 0 || z >= g.sizeZ {
		return 0, sim.BlockEmpty, false
	}
	for y := g.sizeY - 1; y >= 0; y-- {
		if b := g.blocks[g.index(x, y, z)]; b != sim.BlockEmpty {
			return y, b, true
		}
	}
	return 0, sim.BlockEmpty, false
}
