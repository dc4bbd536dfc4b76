package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/render"
	"github.com/matzehuels/bigbang/pkg/render/sink"
)

const (
	frameInterval = 33 * time.Millisecond
	maxSpeed      = 32
	chromeLines   = 4 // header, blank, blank, help
)

// Fill glyphs. The largest word of each character is shaded differently so
// it stands out at terminal resolution.
const (
	glyphFill    = '█'
	glyphLargest = '▓'
)

var (
	tuiHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	tuiLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Bold(true)
	tuiStatusOK   = lipgloss.NewStyle().Foreground(colorGreen)
	tuiStatusRun  = lipgloss.NewStyle().Foreground(colorCyan)
	tuiStatusStop = lipgloss.NewStyle().Foreground(colorYellow)
)

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// =============================================================================
// animateModel - live view of a running simulation
// =============================================================================

// animateModel steps a simulation a few ticks per frame and draws the
// current bubble positions as colored cells.
type animateModel struct {
	engine  *bubble.Engine
	items   []bubble.Item
	sim     *bubble.Simulation
	ev      bubble.Event
	palette *render.Palette
	title   string

	cols, rows int
	speed      int
	paused     bool
	err        error
}

func newAnimateModel(e *bubble.Engine, items []bubble.Item, p *render.Palette, title string) (animateModel, error) {
	m := animateModel{
		engine:  e,
		items:   items,
		palette: p,
		title:   title,
		cols:    80,
		rows:    20,
		speed:   1,
	}
	if err := m.restart(); err != nil {
		return m, err
	}
	return m, nil
}

// restart starts a new run on the same engine, superseding the current one.
func (m *animateModel) restart() error {
	sim, err := m.engine.Run(m.items)
	if err != nil {
		return err
	}
	m.sim = sim
	m.ev = bubble.Event{Kind: bubble.EventTick, State: sim.State()}
	m.palette.Assign(categoriesOf(m.ev.Anchors))
	return nil
}

// advance steps the simulation up to n ticks.
func (m *animateModel) advance(n int) {
	for range n {
		ev, ok := m.sim.Next()
		if !ok {
			return
		}
		m.ev = ev
	}
}

func (m animateModel) Init() tea.Cmd {
	return nextFrame()
}

func (m animateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "s", "right":
			m.advance(1)
		case "r":
			m.err = m.restart()
		case "n":
			m.engine.SetSeed(m.engine.Seed() + 1)
			m.err = m.restart()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 20)
		m.rows = max(msg.Height-chromeLines, 5)
	case frameMsg:
		if !m.paused {
			m.advance(m.speed)
		}
		return m, nextFrame()
	}
	return m, nil
}

func (m animateModel) View() string {
	var b strings.Builder

	status := tuiStatusRun.Render("settling")
	switch {
	case m.sim.Err() != nil:
		status = tuiStatusStop.Render("superseded")
	case m.sim.Settled():
		status = tuiStatusOK.Render("settled")
	case m.paused:
		status = tuiStatusStop.Render("paused")
	}
	fmt.Fprintf(&b, "%s  %s  %s %s  %s %s  %s %s  %s\n\n",
		StyleTitle.Render(m.title),
		status,
		StyleDim.Render("tick"), StyleNumber.Render(fmt.Sprint(m.ev.Tick)),
		StyleDim.Render("alpha"), StyleNumber.Render(fmt.Sprintf("%.3f", m.ev.Alpha)),
		StyleDim.Render("seed"), StyleNumber.Render(fmt.Sprint(m.engine.Seed())),
		StyleDim.Render(fmt.Sprintf("%dx", m.speed)))

	w, h := m.engine.Canvas()
	b.WriteString(drawFrame(m.ev, w, h, m.cols, m.rows, m.palette))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	b.WriteString(tuiHelpStyle.Render("space pause  s step  +/- speed  r restart  n new seed  q quit"))
	return b.String()
}

func categoriesOf(anchors []bubble.Anchor) []string {
	out := make([]string, len(anchors))
	for i, a := range anchors {
		out[i] = a.Category
	}
	return out
}

// =============================================================================
// Frame drawing
// =============================================================================

type cell struct {
	ch rune
	fg string
	bg string
}

// drawFrame rasterizes ev onto a cols x rows character grid, keeping
// circles round by treating a cell as twice as tall as it is wide.
func drawFrame(ev bubble.Event, width, height float64, cols, rows int, p *render.Palette) string {
	s := min(float64(cols)/width, 2*float64(rows)/height)
	gw := max(1, int(math.Ceil(width*s)))
	gh := max(1, int(math.Ceil(height*s/2)))
	grid := make([][]cell, gh)
	for r := range grid {
		grid[r] = make([]cell, gw)
	}

	for _, bb := range ev.Bubbles {
		color := p.Color(bb.Category)
		ch := glyphFill
		if bb.Largest {
			ch = glyphLargest
		}
		c0, c1 := clampCell(int((bb.X-bb.Radius)*s), gw), clampCell(int((bb.X+bb.Radius)*s), gw)
		r0, r1 := clampCell(int((bb.Y-bb.Radius)*s/2), gh), clampCell(int((bb.Y+bb.Radius)*s/2), gh)
		for r := r0; r <= r1; r++ {
			y := (float64(r) + 0.5) / (s / 2)
			for c := c0; c <= c1; c++ {
				x := (float64(c) + 0.5) / s
				if (x-bb.X)*(x-bb.X)+(y-bb.Y)*(y-bb.Y) <= bb.Radius*bb.Radius {
					grid[r][c] = cell{ch: ch, fg: color}
				}
			}
		}
		// Bubbles smaller than a cell still get one.
		cc, cr := clampCell(int(bb.X*s), gw), clampCell(int(bb.Y*s/2), gh)
		if grid[cr][cc].ch == 0 {
			grid[cr][cc] = cell{ch: ch, fg: color}
		}
	}

	if ev.LabelsVisible {
		for _, bb := range ev.Bubbles {
			if bb.Label == "" || bb.Radius < sink.LabelMinRadius {
				continue
			}
			span := int(2 * bb.Radius * s)
			label := []rune(bb.Label)
			if len(label) > span {
				continue
			}
			r := clampCell(int(bb.Y*s/2), gh)
			start := int(bb.X*s) - len(label)/2
			for i, ch := range label {
				c := start + i
				if c < 0 || c >= gw {
					continue
				}
				grid[r][c] = cell{ch: ch, bg: p.Color(bb.Category)}
			}
		}
	}

	lines := make([]string, gh)
	for r, row := range grid {
		lines[r] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func clampCell(v, n int) int {
	return max(0, min(v, n-1))
}

// renderRow styles runs of identically colored cells together.
func renderRow(row []cell) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].fg == row[i].fg && row[j].bg == row[i].bg {
			ch := row[j].ch
			if ch == 0 {
				ch = ' '
			}
			run.WriteRune(ch)
			j++
		}
		b.WriteString(cellStyle(row[i]).Render(run.String()))
		i = j
	}
	return b.String()
}

func cellStyle(c cell) lipgloss.Style {
	switch {
	case c.bg != "":
		return tuiLabelStyle.Background(lipgloss.Color(c.bg))
	case c.fg != "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.fg))
	}
	return lipgloss.NewStyle()
}
