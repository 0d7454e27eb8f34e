// Package ui provides the interactive breakpoint preview: a terminal view
// of every token's scaled value at a selectable breakpoint.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"vpscale/export"
	"vpscale/scale"
)

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Copy, k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev breakpoint"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next breakpoint"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy CSS"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PreviewModel is the bubbletea model of the breakpoint preview.
type PreviewModel struct {
	engine      *scale.Engine
	samples     map[string]float64
	breakpoints []scale.Breakpoint
	tokens      []string

	selected int
	width    int
	height   int
	keys     keyMap
	help     help.Model
	status   string
}

// NewPreview builds a preview over the engine's current configuration.
// Samples map token names to the reference values being scaled.
func NewPreview(engine *scale.Engine, samples map[string]float64) PreviewModel {
	cfg := engine.Config()
	breakpoints := append([]scale.Breakpoint(nil), cfg.Breakpoints...)
	sort.Slice(breakpoints, func(i, j int) bool {
		return breakpoints[i].Width < breakpoints[j].Width
	})

	return PreviewModel{
		engine:      engine,
		samples:     samples,
		breakpoints: breakpoints,
		tokens:      engine.TokenNames(),
		keys:        defaultKeys,
		help:        help.New(),
		width:       FullWidth,
	}
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.selected > 0 {
				m.selected--
			}
			m.status = ""
		case key.Matches(msg, m.keys.Next):
			if m.selected < len(m.breakpoints)-1 {
				m.selected++
			}
			m.status = ""
		case key.Matches(msg, m.keys.Copy):
			m.status = m.copyCSS()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if len(m.breakpoints) == 0 {
		return "no breakpoints configured\n"
	}
	mode := DetermineDisplayMode(m.width)
	bp := m.breakpoints[m.selected]

	var b strings.Builder
	b.WriteString(titleStyle.Render("vpscale preview"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	ratio, err := m.engine.Ratio(bp)
	if err == nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%gx%g  ratio %.4g", bp.Width, bp.Height, ratio)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderHeader(mode))
	b.WriteString("\n")
	for _, name := range m.tokens {
		b.WriteString(m.renderRow(name, bp, mode))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m PreviewModel) renderTabs() string {
	tabs := make([]string, len(m.breakpoints))
	for i, bp := range m.breakpoints {
		if i == m.selected {
			tabs[i] = activeTabStyle.Render(bp.Name)
		} else {
			tabs[i] = tabStyle.Render(bp.Name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m PreviewModel) renderHeader(mode DisplayMode) string {
	nameW := nameColumnWidth(m.width)
	cols := padCell("token", nameW)
	if mode != DisplayMinimal {
		cols += padCell("sample", valueCol)
	}
	cols += padCell("scaled", valueCol)
	if mode == DisplayFull {
		cols += "constraints"
	}
	return headerRowStyle.Render(cols)
}

// renderRow renders one token line at the given breakpoint.
func (m PreviewModel) renderRow(name string, bp scale.Breakpoint, mode DisplayMode) string {
	nameW := nameColumnWidth(m.width)
	sample := m.sampleFor(name)

	res, err := m.engine.ScaleValue(sample, bp, scale.Options{Token: name})
	if err != nil {
		return mutedStyle.Render(padCell(name, nameW) + "error: " + err.Error())
	}

	unit := m.engine.Config().Strategy.Tokens[name].Unit
	row := valueStyle.Render(padCell(truncate.StringWithTail(name, uint(nameW-1), "…"), nameW))
	if mode != DisplayMinimal {
		row += mutedStyle.Render(padCell(formatValue(sample, unit), valueCol))
	}
	row += styleFor(res.Constraints).Render(padCell(formatValue(res.Scaled, unit), valueCol))
	if mode == DisplayFull {
		row += mutedStyle.Render(constraintMarkers(res.Constraints))
	}
	return row
}

func (m PreviewModel) sampleFor(name string) float64 {
	if v, ok := m.samples[name]; ok && v != 0 {
		return v
	}
	return 16
}

// copyCSS puts the selected breakpoint's custom properties on the clipboard
// and returns a status line.
func (m PreviewModel) copyCSS() string {
	bp := m.breakpoints[m.selected]
	css, err := m.cssFor(bp)
	if err != nil {
		return "copy failed: " + err.Error()
	}
	if err := clipboard.WriteAll(css); err != nil {
		return "clipboard unavailable: " + err.Error()
	}
	return fmt.Sprintf("copied %s CSS to clipboard", bp.Name)
}

func (m PreviewModel) cssFor(bp scale.Breakpoint) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "[data-breakpoint=%q] {\n", bp.Name)
	cfg := m.engine.Config()
	for _, name := range m.tokens {
		res, err := m.engine.ScaleValue(m.sampleFor(name), bp, scale.Options{Token: name})
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  --%s: %g%s;\n", export.PropertyName(name), res.Scaled, cfg.Strategy.Tokens[name].Unit)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// RunPreview starts the interactive preview and blocks until it exits.
func RunPreview(engine *scale.Engine, samples map[string]float64) error {
	p := tea.NewProgram(NewPreview(engine, samples), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// padCell right-pads s to width using display cells, not bytes, so wide
// runes keep columns aligned.
func padCell(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func formatValue(v float64, unit string) string {
	return fmt.Sprintf("%g%s", v, unit)
}

// constraintMarkers renders which constraints were binding, shape-coded so
// the information survives without color.
func constraintMarkers(c scale.Constraints) string {
	var parts []string
	if c.MinApplied {
		parts = append(parts, "min")
	}
	if c.MaxApplied {
		parts = append(parts, "max")
	}
	if c.StepApplied {
		parts = append(parts, "step")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func styleFor(c scale.Constraints) lipgloss.Style {
	switch {
	case c.MinApplied || c.MaxApplied:
		return clampedStyle
	case c.StepApplied:
		return steppedStyle
	default:
		return valueStyle
	}
}
