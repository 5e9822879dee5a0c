package sim

// fakeGrid is a sparse WorldGrid: unset cells are empty, and everything
// at or below floorY is container so agents always have ground.
type fakeGrid struct {
	blocks map[GridPos]BlockKind
	floorY int
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{blocks: make(map[GridPos]BlockKind), floorY: -1}
}

func (g *fakeGrid) GetBlock(x, y, z int) BlockKind {
	if y <= g.floorY {
		return BlockContainer
	}
	return g.blocks[GridPos{X: x, Y: y, Z: z}]
}

func (g *fakeGrid) SetBlock(x, y, z int, kind BlockKind) {
	p := GridPos{X: x, Y: y, Z: z}
	if kind == BlockEmpty {
		delete(g.blocks, p)
		return
	}
	g.blocks[p] = kind
}

// flat fills a square of columns [-r, r] with solid ground topped at y,
// so the walkable surface is y+1.
func (g *fakeGrid) flat(r, y int) *fakeGrid {
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			for h := 0; h <= y; h++ {
				g.SetBlock(x, h, z, BlockSolid)
			}
		}
	}
	return g
}

// scriptedRand replays fixed draws. Once exhausted it repeats the last value,
// or returns 0 when nothing was scripted.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

// testColony builds a registry from agents in order.
func testColony(agents ...*Agent) *Registry {
	r := NewRegistry()
	for _, a := range agents {
		r.Add(a)
	}
	return r
}

// placedAgent returns an initialized agent at pos with default physiology.
func placedAgent(id int, role Role, genes GeneSet, pos GridPos) *Agent {
	a := NewAgent(id, role, genes, DefaultAgentConfig())
	a.Position = pos
	a.Initialized = true
	return a
}

var testGenes = GeneSet{ExplorationRate: 0.5, DiggingProbability: 0.2, FoodSeekingWeight: 1.0}

func newTestPolicy(grid WorldGrid, colony Colony, rng RandSource) *Policy {
	return NewPolicy(grid, colony, rng, DefaultAgentConfig(), DefaultQueenConfig())
}
