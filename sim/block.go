package sim

import (
	"fmt"
	"math"
)

// BlockKind identifies the material occupying one grid cell.
type BlockKind uint8

const (
	BlockEmpty BlockKind = iota
	BlockMulch
	BlockAcidic
	BlockNest
	BlockContainer
	BlockSolid // any other solid material (stone, grass, ...)
)

var blockKindNames = map[BlockKind]string{
	BlockEmpty:     "empty",
	BlockMulch:     "mulch",
	BlockAcidic:    "acidic",
	BlockNest:      "nest",
	BlockContainer: "container",
	BlockSolid:     "solid",
}

func (b BlockKind) String() string {
	if name, ok := blockKindNames[b]; ok {
		return name
	}
	return fmt.Sprintf("block(%d)", uint8(b))
}

// Diggable reports whether an agent may remove a block of this kind.
func (b BlockKind) Diggable() bool {
	switch b {
	case BlockContainer, BlockEmpty, BlockAcidic, BlockNest:
		return false
	}
	return true
}

// WorldGrid is the terrain store agents read and mutate.
// Coordinates are not bounds-checked by callers; the implementation decides
// what out-of-range cells contain.
type WorldGrid interface {
	GetBlock(x, y, z int) BlockKind
	SetBlock(x, y, z int, kind BlockKind)
}

// GridPos is an integer cell coordinate. Y is the vertical axis.
type GridPos struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Below returns the cell directly beneath p.
func (p GridPos) Below() GridPos {
	return GridPos{X: p.X, Y: p.Y - 1, Z: p.Z}
}

// Distance is the Euclidean distance between two cells in grid units.
func (p GridPos) Distance(q GridPos) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	dz := float64(p.Z - q.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p GridPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func blockAt(grid WorldGrid, p GridPos) BlockKind {
	return grid.GetBlock(p.X, p.Y, p.Z)
}

func setBlockAt(grid WorldGrid, p GridPos, kind BlockKind) {
	grid.SetBlock(p.X, p.Y, p.Z, kind)
}

// surfaceSearchReach bounds the vertical window of FindSurface around a start height.
const surfaceSearchReach = 2

// FindSurface scans the column (x, z) from startY+2 down to startY-2 and
// returns the first height whose cell is empty and rests on a non-empty cell.
// ok is false when no such height exists in the window.
func FindSurface(grid WorldGrid, x, z, startY int) (y int, ok bool) {
	for y := startY + surfaceSearchReach; y >= startY-surfaceSearchReach; y-- {
		if grid.GetBlock(x, y, z) == BlockEmpty && grid.GetBlock(x, y-1, z) != BlockEmpty {
			return y, true
		}
	}
	return 0, false
}

// FindColumnSurface scans the whole column from top down to 0 and returns the
// first surface height, or fallback when the column has none.
func FindColumnSurface(grid WorldGrid, x, z, top, fallback int) int {
	for y := top; y >= 0; y-- {
		if grid.GetBlock(x, y, z) == BlockEmpty && grid.GetBlock(x, y-1, z) != BlockEmpty {
			return y
		}
	}
	return fallback
}
