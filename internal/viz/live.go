package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkotak/gridflow/internal/grid"
	"github.com/nkotak/gridflow/internal/sim"
)

const historyCapacity = 600

type TickMsg time.Time

// Model drives the live terminal view: it steps the simulator on a
// tick, renders the field heatmap, and lets the user nudge process
// parameters while the run is going.
type Model struct {
	g       *grid.Raster
	proc    sim.Process
	stepper sim.Stepper

	z       []float64
	initial []float64
	t, dt   float64
	fps     int

	running     bool
	err         error
	modelName   string
	massHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

// NewModel initializes the live view for one process on one grid.
func NewModel(g *grid.Raster, proc sim.Process, stepper sim.Stepper, z0 []float64, dt float64, fps int, modelName string) Model {
	params := make(map[string]float64)
	if c, ok := proc.(sim.Configurable); ok {
		for k, v := range c.Params() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	initial := make([]float64, len(z0))
	copy(initial, z0)
	z := make([]float64, len(z0))
	copy(z, z0)

	if fps <= 0 {
		fps = 30
	}

	return Model{
		g:             g,
		proc:          proc,
		stepper:       stepper,
		z:             z,
		initial:       initial,
		dt:            dt,
		fps:           fps,
		running:       true,
		modelName:     modelName,
		massHistory:   make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	newZ, err := m.stepper.Step(m.g, m.proc, m.z, m.t, m.dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.z = newZ
	m.t += m.dt

	mass := 0.0
	for _, n := range m.g.CoreNodes() {
		mass += m.z[n] * m.g.CellAreaAtNode(n)
	}
	m.massHistory = append(m.massHistory, mass)
	if len(m.massHistory) > historyCapacity {
		m.massHistory = m.massHistory[1:]
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if c, ok := m.proc.(sim.Configurable); ok {
		if err := c.SetParam(key, newVal); err != nil {
			return
		}
	}
	m.params[key] = newVal
}

func (m *Model) reset() {
	m.t = 0
	m.err = nil
	copy(m.z, m.initial)
	m.massHistory = m.massHistory[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		if c, ok := m.proc.(sim.Configurable); ok {
			c.SetParam(k, v)
		}
	}
}

// View renders the live interface.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.modelName)) + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = fmt.Sprintf("STOPPED: %v", m.err)
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(Heatmap(m.g, m.z, true))
	s.WriteByte('\n')

	s.WriteString(LabelStyle.Render("time") + ValueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	if len(m.massHistory) > 0 {
		s.WriteString(LabelStyle.Render("mass") + ValueStyle.Render(fmt.Sprintf("%.4g", m.massHistory[len(m.massHistory)-1])) + "\n")
		s.WriteString(LabelStyle.Render("history") + Sparkline(m.massHistory, 40) + "\n")
	}

	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.5g", k, m.params[k])
		if i == m.selected {
			line = ActiveParamStyle.Render("> " + line)
		} else {
			line = ValueStyle.Render("  " + line)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString(HelpStyle.Render("space pause · r reset · tab param · up/down adjust · q quit"))
	return s.String()
}
