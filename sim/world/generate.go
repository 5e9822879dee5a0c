package world

import (
	"math"

	"github.com/antymology/antsim/sim"
)

// Config controls terrain generation.
type Config struct {
	SizeX, SizeY, SizeZ int
	BaseHeight          int     // mean surface height
	Amplitude           float64 // hill height around the base
	Wavelength          float64 // hill spacing in columns
	MulchDensity        float64 // chance a surface block is mulch
	AcidicDensity       float64 // chance a surface block is acidic
	ContainerWalls      bool    // wrap the map in container columns
}

// DefaultConfig returns a 48x32x48 map of gentle hills.
func DefaultConfig() Config {
	return Config{
		SizeX:          48,
		SizeY:          32,
		SizeZ:          48,
		BaseHeight:     8,
		Amplitude:      3,
		Wavelength:     16,
		MulchDensity:   0.12,
		AcidicDensity:  0.04,
		ContainerWalls: true,
	}
}

// Generate builds terrain: a container floor, solid ground shaped by two
// phase-shifted waves plus jitter, and a surface layer sprinkled with mulch
// and acidic blocks. Mulch also appears one layer down at half density so
// food survives surface grazing.
func Generate(cfg Config, rng sim.RandSource) *Grid {
	g := NewGrid(cfg.SizeX, cfg.SizeY, cfg.SizeZ)
	wavelength := cfg.Wavelength
	if wavelength <= 0 {
		wavelength = 1
	}
	phaseX := rng.Float64() * 2 * math.Pi
	phaseZ := rng.Float64() * 2 * math.Pi

	for x := 0; x < cfg.SizeX; x++ {
		for z := 0; z < cfg.SizeZ; z++ {
			if cfg.ContainerWalls && (x == 0 || z == 0 || x == cfg.SizeX-1 || z == cfg.SizeZ-1) {
				for y := 0; y < cfg.SizeY; y++ {
					g.SetBlock(x, y, z, sim.BlockContainer)
				}
				continue
			}

			wave := math.Sin(float64(x)/wavelength*2*math.Pi+phaseX) +
				math.Cos(float64(z)/wavelength*2*math.Pi+phaseZ)
			height := cfg.BaseHeight + int(math.Round(cfg.Amplitude*wave/2)) + rng.Intn(3) - 1
			height = max(2, min(height, cfg.SizeY-3))

			g.SetBlock(x, 0, z, sim.BlockContainer)
			for y := 1; y < height; y++ {
				g.SetBlock(x, y, z, sim.BlockSolid)
			}
			top := height - 1
			switch r := rng.Float64(); {
			case r < cfg.MulchDensity:
				g.SetBlock(x, top, z, sim.BlockMulch)
			case r < cfg.MulchDensity+cfg.AcidicDensity:
				g.SetBlock(x, top, z, sim.BlockAcidic)
			}
			if top-1 > 0 && rng.Float64() < cfg.MulchDensity/2 {
				g.SetBlock(x, top-1, z, sim.BlockMulch)
			}
		}
	}
	return g
}
