// Package main is a terminal view of constrained search over a 2-D plane.
// The shaded area is the feasible region; dots are pool members.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/genetic"
)

const (
	autoStepInterval = 150 * time.Millisecond
	statusRows       = 2
)

var (
	styleFeasibleCell   = tcell.StyleDefault.Background(tcell.NewRGBColor(18, 48, 24))
	styleInfeasibleCell = tcell.StyleDefault.Background(tcell.NewRGBColor(28, 14, 14))
	styleStatus         = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHint           = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type Sandbox struct {
	screen tcell.Screen
	view   viewport

	seed     uint64
	mode     metricMode
	poolSize int
	engine   *genetic.Engine[genome, float64]
	auto     bool
	err      error
}

func NewSandbox(seed uint64, poolSize int) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	sb := &Sandbox{screen: screen, seed: seed, poolSize: poolSize}
	sb.handleResize()
	sb.reset()
	return sb, nil
}

func (sb *Sandbox) reset() {
	sb.engine = newEngine(sb.seed, sb.mode, sb.poolSize)
	sb.err = sb.engine.Initialize()
}

func (sb *Sandbox) step() {
	if sb.err != nil {
		return
	}
	sb.err = sb.engine.Step()
}

func (sb *Sandbox) handleResize() {
	w, h := sb.screen.Size()
	sb.view = viewport{left: 0, top: statusRows, width: max(w, 1), height: max(h-statusRows, 1)}
	sb.screen.Sync()
}

// handleInput returns false when the sandbox should exit
func (sb *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ', 'n':
			sb.step()
		case 'a':
			sb.auto = !sb.auto
		case 'r':
			sb.seed++
			sb.reset()
		case 'm':
			sb.mode = 1 - sb.mode
			sb.reset()
		}
	case *tcell.EventResize:
		sb.handleResize()
	}
	return true
}

func (sb *Sandbox) draw() {
	sb.screen.Clear()

	for cy := sb.view.top; cy < sb.view.top+sb.view.height; cy++ {
		for cx := sb.view.left; cx < sb.view.left+sb.view.width; cx++ {
			sb.screen.SetContent(cx, cy, ' ', nil, sb.cellStyle(cx, cy))
		}
	}

	if cx, cy, ok := sb.view.toCell(target[0], target[1]); ok {
		sb.screen.SetContent(cx, cy, '+', nil, sb.cellStyle(cx, cy).Foreground(tcell.ColorYellow))
	}

	pool := sb.engine.Pool()
	if pool != nil {
		for _, c := range pool.Members {
			cx, cy, ok := sb.view.toCell(c.Genome[0], c.Genome[1])
			if !ok {
				continue
			}
			fg := tcell.ColorRed
			if constraint.IsFeasible(region, c.Genome) {
				fg = tcell.ColorLime
			}
			sb.screen.SetContent(cx, cy, '●', nil, sb.cellStyle(cx, cy).Foreground(fg))
		}
		if best, err := sb.engine.GetBest(); err == nil {
			if cx, cy, ok := sb.view.toCell(best.Genome[0], best.Genome[1]); ok {
				sb.screen.SetContent(cx, cy, '◆', nil, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
			}
		}
	}

	sb.drawStatus(pool)
	sb.screen.Show()
}

// cellStyle shades a cell by the feasibility of its center point
func (sb *Sandbox) cellStyle(cx, cy int) tcell.Style {
	x, y := sb.view.toPlane(cx, cy)
	if constraint.IsFeasible(region, genome{x, y}) {
		return styleFeasibleCell
	}
	return styleInfeasibleCell
}

func (sb *Sandbox) drawStatus(pool *genetic.Pool[genome, float64]) {
	line := fmt.Sprintf("seed %d  metric %s", sb.seed, sb.mode)
	if pool != nil {
		st := pool.Stats
		line += fmt.Sprintf("  gen %d  best %.4f  feasible %d/%d", pool.Generation, st.BestObjective, st.Feasible, st.Size)
	}
	if sb.auto {
		line += "  [auto]"
	}
	if sb.err != nil {
		line += "  error: " + sb.err.Error()
	}
	sb.drawText(0, 0, line, styleStatus)
	sb.drawText(0, 1, "[space] step  [a] auto  [m] metric  [r] reseed  [q] quit", styleHint)
}

func (sb *Sandbox) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		sb.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (sb *Sandbox) run() {
	ticker := time.NewTicker(autoStepInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- sb.screen.PollEvent()
		}
	}()

	sb.draw()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !sb.handleInput(ev) {
				return
			}
			sb.draw()

		case <-ticker.C:
			if sb.auto {
				sb.step()
				sb.draw()
			}
		}
	}
}

func main() {
	seed := flag.Uint64("seed", 1, "generator seed")
	poolSize := flag.Int("pool", 40, "pool size")
	flag.Parse()

	sb, err := NewSandbox(*seed, *poolSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "constraint-sandbox: %v\n", err)
		os.Exit(1)
	}
	defer sb.screen.Fini()

	sb.run()
}
