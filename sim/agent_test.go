package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgent_Initialize_SnapsToSurface(t *testing.T) {
	// GIVEN ground topped at y=2 and a spawn point slightly above it
	grid := newFakeGrid().flat(1, 2)
	a := NewAgent(0, RoleWorker, testGenes, DefaultAgentConfig())

	// WHEN initialized
	a.Initialize(grid, GridPos{X: 0, Y: 4, Z: 0})

	// THEN it stands on the surface
	assert.True(t, a.Initialized)
	assert.Equal(t, GridPos{X: 0, Y: 3, Z: 0}, a.Position)

	// AND re-initialization is ignored
	a.Initialize(grid, GridPos{X: 1, Y: 3, Z: 1})
	assert.Equal(t, GridPos{X: 0, Y: 3, Z: 0}, a.Position)
}

func TestAgent_Initialize_FallsBackToSpawn(t *testing.T) {
	grid := newFakeGrid().flat(1, 2)
	a := NewAgent(0, RoleWorker, testGenes, DefaultAgentConfig())

	a.Initialize(grid, GridPos{X: 0, Y: 20, Z: 0})

	assert.Equal(t, GridPos{X: 0, Y: 20, Z: 0}, a.Position)
}

func TestAgent_SetHealth_Clamps(t *testing.T) {
	a := NewAgent(0, RoleWorker, testGenes, DefaultAgentConfig())
	a.setHealth(150)
	assert.Equal(t, 100.0, a.Health)
	a.setHealth(-5)
	assert.Equal(t, 0.0, a.Health)
}

func TestAgent_HungerThreshold(t *testing.T) {
	a := NewAgent(0, RoleWorker, GeneSet{FoodSeekingWeight: 1.5}, DefaultAgentConfig())
	assert.InDelta(t, 90.0, a.HungerThreshold(), 1e-9)
	assert.Equal(t, "worker", a.Role.String())
	assert.Equal(t, "queen", RoleQueen.String())
}

func TestBlockKind_Diggable(t *testing.T) {
	assert.True(t, BlockSolid.Diggable())
	assert.True(t, BlockMulch.Diggable())
	for _, b := range []BlockKind{BlockEmpty, BlockAcidic, BlockNest, BlockContainer} {
		assert.False(t, b.Diggable(), b.String())
	}
	assert.Equal(t, "block(42)", BlockKind(42).String())
}

func TestFindColumnSurface(t *testing.T) {
	grid := newFakeGrid().flat(1, 4)
	grid.floorY = -100
	assert.Equal(t, 5, FindColumnSurface(grid, 0, 0, 50, 10))
	assert.Equal(t, 10, FindColumnSurface(grid, 9, 9, 50, 10), "empty column keeps fallback")
}

func TestGeneSet_Clamp(t *testing.T) {
	g := GeneSet{ExplorationRate: 0, DiggingProbability: 0.9, FoodSeekingWeight: 1}.Clamp()
	assert.Equal(t, GeneSet{ExplorationRate: 0.1, DiggingProbability: 0.5, FoodSeekingWeight: 1}, g)
	assert.True(t, g.InRange())
}
