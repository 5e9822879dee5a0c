package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/antymology/antsim/sim"
	"github.com/antymology/antsim/sim/trace"
	"github.com/antymology/antsim/sim/world"
)

var (
	watchFPS           int // Frames drawn per second
	watchStepsPerFrame int // Simulation steps per frame
)

// statusWidth is the number of columns reserved right of the map.
const statusWidth = 36

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the colony evolve in a top-down terminal view",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if watchFPS <= 0 || watchStepsPerFrame <= 0 {
			logrus.Fatalf("--fps and --steps-per-frame must be > 0")
		}
		colonyCfg, worldCfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		s, grid := buildSimulator(colonyCfg, worldCfg, trace.TraceConfig{Level: trace.TraceLevelNone})

		screen, err := tcell.NewScreen()
		if err != nil {
			logrus.Fatalf("Failed to create screen: %v", err)
		}
		if err := screen.Init(); err != nil {
			logrus.Fatalf("Failed to initialize screen: %v", err)
		}

		// Log lines would tear the screen.
		logrus.SetOutput(io.Discard)
		v := newViewer(screen, s, grid, watchStepsPerFrame)
		v.run(time.Second / time.Duration(watchFPS))
		screen.Fini()
		logrus.SetOutput(os.Stderr)

		s.Engine.Metrics().Print(os.Stdout)
	},
}

// viewer draws the colony top-down: one cell per grid column, agents on top.
type viewer struct {
	screen        tcell.Screen
	sim           *sim.Simulator
	grid          *world.Grid
	stepsPerFrame int
	paused        bool
}

func newViewer(screen tcell.Screen, s *sim.Simulator, grid *world.Grid, stepsPerFrame int) *viewer {
	return &viewer{screen: screen, sim: s, grid: grid, stepsPerFrame: stepsPerFrame}
}

func (v *viewer) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v.sim.Engine.Start()
	v.draw()
	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused {
				v.advance(v.stepsPerFrame)
			}
			v.draw()
		}
	}
}

func (v *viewer) advance(steps int) {
	for i := 0; i < steps; i++ {
		v.sim.Tick()
	}
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// handleKey applies a key press and reports whether the viewer keeps running.
func (v *viewer) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'p', ' ':
			v.paused = !v.paused
		case 'n':
			if v.paused {
				v.advance(1)
			}
		case 'e':
			v.sim.Engine.Evolve()
		}
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	mapW := max(0, width-statusWidth)
	sizeX, _, sizeZ := v.grid.Size()

	for x := 0; x < min(sizeX, mapW); x++ {
		for z := 0; z < min(sizeZ, height); z++ {
			y, kind, ok := v.grid.TopBlock(x, z)
			if !ok {
				continue
			}
			r, color := blockGlyph(kind, y)
			v.screen.SetContent(x, z, r, nil, tcell.StyleDefault.Foreground(color))
		}
	}

	snap := v.sim.Engine.Snapshot()
	for _, a := range snap.Agents {
		x, z := a.Position.X, a.Position.Z
		if !a.Alive || x < 0 || z < 0 || x >= min(sizeX, mapW) || z >= height {
			continue
		}
		r, color := agentGlyph(a)
		v.screen.SetContent(x, z, r, nil, tcell.StyleDefault.Foreground(color).Bold(true))
	}

	style := tcell.StyleDefault
	for i, line := range statusLines(snap, v.paused) {
		if i >= height {
			break
		}
		drawText(v.screen, mapW+1, i, line, style)
	}
	v.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// blockGlyph picks the map symbol for the top block of a column. Plain ground
// is shaded by height so hills read at a glance.
func blockGlyph(kind sim.BlockKind, y int) (rune, tcell.Color) {
	switch kind {
	case sim.BlockMulch:
		return '%', tcell.ColorGreen
	case sim.BlockAcidic:
		return '~', tcell.ColorYellow
	case sim.BlockNest:
		return '#', tcell.ColorFuchsia
	case sim.BlockContainer:
		return '█', tcell.ColorGray
	}
	shades := []rune{'.', ':', '+', '*'}
	return shades[min(len(shades)-1, max(0, y/4))], tcell.ColorOlive
}

func agentGlyph(a sim.AgentTelemetry) (rune, tcell.Color) {
	frac := 0.0
	if a.MaxHealth > 0 {
		frac = a.Health / a.MaxHealth
	}
	r := 'a'
	if a.Role == sim.RoleQueen.String() {
		r = 'Q'
	}
	switch {
	case frac > 0.66:
		return r, tcell.ColorAqua
	case frac > 0.33:
		return r, tcell.ColorOrange
	}
	return r, tcell.ColorRed
}

// statusLines renders the side panel.
func statusLines(snap sim.Snapshot, paused bool) []string {
	lines := []string{
		fmt.Sprintf("Generation   %d", snap.Generation),
		fmt.Sprintf("Phase        %s", snap.Phase),
		fmt.Sprintf("Time left    %.1f", snap.TimeRemaining),
		fmt.Sprintf("Alive        %d/%d", snap.Alive, snap.Population),
		fmt.Sprintf("Workers      %d", snap.AliveWorkers),
		fmt.Sprintf("Best ever    %.1f", snap.BestFitnessEver),
		"",
	}
	if q := snap.Queen; q != nil {
		lines = append(lines,
			fmt.Sprintf("Queen #%d     %s", q.ID, q.Band),
			fmt.Sprintf("  health     %.0f%%", q.HealthPercent),
			fmt.Sprintf("  nests      %d", q.NestsProduced),
		)
	} else {
		lines = append(lines, "Queen        none")
	}
	lines = append(lines, "", "[p]ause [n]ext [e]volve [q]uit")
	if paused {
		lines = append(lines, "PAUSED")
	}
	return lines
}
