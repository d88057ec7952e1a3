// Package viz renders digestion runs in the terminal.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/bioproc/adsim/internal/kinetics"
	"github.com/bioproc/adsim/internal/reactor"
	"github.com/bioproc/adsim/internal/sim"
	"github.com/bioproc/adsim/internal/solver"
)

const (
	chartWidth      = 60
	chartHeight     = 6
	historyCapacity = 600
	ticksPerRun     = 600
)

var (
	chartStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives an interactive digestion run: the reactor is stepped
// adaptively in the background while parameters can be tuned live.
type Model struct {
	cfg   sim.Config
	law   kinetics.Law
	dig   *reactor.Digester
	integ *solver.RK45

	y    solver.State
	t    float64
	dt   float64
	span float64

	running bool
	err     error

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	histS, histB, histG []float64
}

// NewModel validates the configuration and prepares the live run.
func NewModel(cfg sim.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	law, err := kinetics.New(cfg.Kinetics, cfg.Params)
	if err != nil {
		return Model{}, err
	}

	params := make(map[string]float64)
	initial := make(map[string]float64)
	if tun, ok := law.(kinetics.Tunable); ok {
		for k, v := range tun.GetParams() {
			params[k] = v
			initial[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	span := cfg.T1 - cfg.T0
	m := Model{
		cfg:           cfg,
		law:           law,
		dig:           reactor.New(law, cfg.Yb),
		integ:         solver.NewRK45(solver.Options{RelTol: cfg.RelTol, AbsTol: cfg.AbsTol}),
		t:             cfg.T0,
		dt:            span / 100,
		span:          span,
		running:       true,
		params:        params,
		initialParams: initial,
		paramKeys:     keys,
	}
	m.y = solver.State{cfg.S0, cfg.B0, cfg.G0}
	m.record()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

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
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
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
	tun, ok := m.law.(kinetics.Tunable)
	if !ok {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if err := tun.SetParam(key, val); err != nil {
		return
	}
	m.params[key] = val
}

// step advances the reactor by one display frame of simulated time.
func (m *Model) step() {
	target := m.t + m.span/ticksPerRun
	for i := 0; m.t < target && i < 64; i++ {
		h := m.dt
		if m.t+h > target {
			h = target - m.t
		}
		y, taken, next, err := m.integ.Advance(m.dig.Derive, m.y, m.t, h)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.y = y
		m.t += taken
		if next > 0 && next < m.span {
			m.dt = next
		}
	}
	m.record()
}

func (m *Model) record() {
	m.histS = append(m.histS, m.y[reactor.IdxS])
	m.histB = append(m.histB, m.y[reactor.IdxB])
	m.histG = append(m.histG, m.y[reactor.IdxG])
	if len(m.histS) > historyCapacity {
		m.histS = m.histS[1:]
		m.histB = m.histB[1:]
		m.histG = m.histG[1:]
	}
}

func (m *Model) reset() {
	m.t = m.cfg.T0
	m.dt = m.span / 100
	m.y = solver.State{m.cfg.S0, m.cfg.B0, m.cfg.G0}
	m.histS = m.histS[:0]
	m.histB = m.histB[:0]
	m.histG = m.histG[:0]
	m.err = nil
	m.running = true
	if tun, ok := m.law.(kinetics.Tunable); ok {
		for k, v := range m.initialParams {
			m.params[k] = v
			tun.SetParam(k, v)
		}
	}
	m.record()
}

func (m Model) View() string {
	var charts strings.Builder
	for _, series := range []struct {
		name string
		data []float64
	}{
		{"Substrate", m.histS},
		{"Biomass", m.histB},
		{"Biogas", m.histG},
	} {
		if len(series.data) > 1 {
			chart := asciigraph.Plot(series.data,
				asciigraph.Height(chartHeight),
				asciigraph.Width(chartWidth),
				asciigraph.Caption(series.name))
			charts.WriteString(chartStyle.Render(chart) + "\n")
		}
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Kinetics)+" DIGESTER") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString("RUNNING\n\n")
	default:
		s.WriteString("PAUSED\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f d", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Substrate") + valueStyle.Render(fmt.Sprintf("%.3f g/L", m.y[reactor.IdxS])) + "\n")
	s.WriteString(labelStyle.Render("Biomass") + valueStyle.Render(fmt.Sprintf("%.3f g/L", m.y[reactor.IdxB])) + "\n")
	s.WriteString(labelStyle.Render("Biogas") + valueStyle.Render(fmt.Sprintf("%.3f g/L", m.y[reactor.IdxG])) + "\n")
	s.WriteString(labelStyle.Render("Yield Yb") + valueStyle.Render(fmt.Sprintf("%.2f", m.cfg.Yb)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth := 10
			ratio := 0.5
			if initial != 0 {
				ratio = val / (2 * initial)
			}
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-8s %s %.3f", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	s.WriteString(helpStyle.Render("\n──────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune ±5%"))

	return lipgloss.JoinHorizontal(lipgloss.Top, charts.String(), statsStyle.Render(s.String()))
}

// Run starts the interactive view and blocks until the user quits.
func Run(cfg sim.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
