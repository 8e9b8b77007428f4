package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/lattice"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 240
	frameRate       = 60
)

type TickMsg time.Time

// Model drives the live terminal view of a lattice.
type Model struct {
	cfg     *config.Config
	stepper *lattice.Stepper
	canvas  *Canvas

	running  bool
	showHelp bool
	energy   []float64

	// World-to-canvas mapping, fitted to the grid with sag headroom.
	worldX, worldY float64
	worldW, worldH float64
}

// NewModel builds the initial view state around an already-built stepper.
func NewModel(cfg *config.Config, stepper *lattice.Stepper) Model {
	gridW := float64(cfg.Grid.Cols) * cfg.Grid.CellSize
	gridH := float64(cfg.Grid.Rows) * cfg.Grid.CellSize
	return Model{
		cfg:     cfg,
		stepper: stepper,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
		energy:  make([]float64, 0, historyCapacity),
		worldX:  cfg.Grid.OriginX - gridW*0.25,
		worldY:  cfg.Grid.OriginY - cfg.Grid.CellSize,
		worldW:  gridW * 1.5,
		worldH:  gridH*2 + 2*cfg.Grid.CellSize,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "w":
			m.stepper.ToggleWind()
		case "r":
			if err := lattice.BuildGrid(m.stepper.System(), m.cfg.GridSpec()); err == nil {
				m.stepper.Reset()
				m.energy = m.energy[:0]
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.stepper.Tick(m.cfg.Run.TimeScale * m.cfg.Run.Dt)
			m.recordEnergy()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) recordEnergy() {
	if len(m.energy) == historyCapacity {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:historyCapacity-1]
	}
	m.energy = append(m.energy, m.stepper.System().Energy())
}

func (m Model) View() string {
	m.draw()

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("springlab") + "\n")
	sys := m.stepper.System()

	writeStat := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	writeStat("masses", fmt.Sprintf("%d", sys.MassCount()))
	writeStat("springs", fmt.Sprintf("%d", sys.SpringCount()))
	writeStat("tick", fmt.Sprintf("%d", m.stepper.Ticks()))
	writeStat("time", fmt.Sprintf("%.2fs", m.stepper.Time()))
	writeStat("dropped", fmt.Sprintf("%d", sys.DroppedForces()))

	state := "paused"
	if m.running {
		state = "running"
	}
	writeStat("state", state)
	if m.stepper.WindEnabled() {
		stats.WriteString(labelStyle.Render("wind") + windOnStyle.Render("on") + "\n")
	} else {
		writeStat("wind", "off")
	}

	if len(m.energy) >= 2 {
		graph := asciigraph.Plot(m.energy,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("energy"))
		stats.WriteString(graphStyle.Render(graph))
	}

	if m.showHelp {
		stats.WriteString(helpStyle.Render("space pause · w wind · r rebuild · q quit"))
	} else {
		stats.WriteString(helpStyle.Render("? help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()))
}

func (m Model) draw() {
	m.canvas.Clear()
	sys := m.stepper.System()

	for i := 0; i < sys.SpringCount(); i++ {
		v := sys.SpringAt(i)
		x0, y0 := m.project(v.First.X, v.First.Y)
		x1, y1 := m.project(v.Second.X, v.Second.Y)
		m.canvas.Line(x0, y0, x1, y1)
	}
	for _, mass := range sys.Masses() {
		x, y := m.project(mass.Position.X, mass.Position.Y)
		m.canvas.Set(x, y)
	}
}

func (m Model) project(x, y float64) (int, int) {
	px := (x - m.worldX) / m.worldW * float64(canvasWidth*2)
	py := (y - m.worldY) / m.worldH * float64(canvasHeight*4)
	return int(px), int(py)
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config) error {
	stepper, err := cfg.NewStepper()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(NewModel(cfg, stepper)).Run()
	return err
}
