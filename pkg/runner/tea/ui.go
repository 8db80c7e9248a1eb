package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/printers"
	palette "tableflip.dev/annals/pkg/render"
	"tableflip.dev/annals/pkg/store"
	"tableflip.dev/annals/pkg/timeline"
)

type mode int

const (
	modeNormal mode = iota
	modeFilter
	modeHelp
)

const helpLine = "j/k scroll, +/- zoom, / filter regions, a all regions, r reload, ? help, q quit"

type storeChangedMsg struct{ change store.Change }

// Model contains viewer state. The chart is rebuilt from the session after
// every zoom, filter or reload.
type Model struct {
	session *app.Session
	ctx     context.Context
	changes <-chan store.Change

	mode  mode
	input textinput.Model
	theme Theme

	columnWidth int
	columns     []string
	rows        []string
	offset      int

	status string
	err    error

	termWidth  int
	termHeight int
}

// New creates a viewer over s.
func New(ctx context.Context, s *app.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Region names, comma separated; empty shows all"
	ti.CharLimit = 512
	ti.Prompt = ""

	m := Model{
		session:     s,
		ctx:         ctx,
		mode:        modeNormal,
		input:       ti,
		theme:       DefaultTheme(),
		columnWidth: printers.DefaultChartColumnWidth,
		status:      helpLine,
	}
	if s != nil {
		m.rebuild(float64(s.Scale().StartYear))
	}
	return m
}

// Init starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return storeChangedMsg{change: c}
	}
}

// rebuild lays out the session again and scrolls so that anchor, a year,
// is on the first visible row.
func (m *Model) rebuild(anchor float64) {
	if m.session == nil {
		return
	}
	plan := m.session.Render()
	lines := strings.Split(strings.TrimRight(printers.Chart(plan, m.columnWidth), "\n"), "\n")
	m.rows = lines[1:]
	m.columns = make([]string, 0, len(plan.Columns))
	for _, c := range plan.Columns {
		m.columns = append(m.columns, c.Region)
	}

	s := m.session.Scale()
	if s.RowHeight > 0 {
		m.offset = int(timeline.YearToPixel(int(anchor), s) / s.RowHeight)
	}
	m.clampOffset()
}

// topYear is the year at the first visible chart row.
func (m Model) topYear() float64 {
	if m.session == nil {
		return 0
	}
	s := m.session.Scale()
	return timeline.PixelToYear(float64(m.offset)*s.RowHeight, s)
}

func (m Model) pageRows() int {
	// header, column titles, status and help lines
	h := m.termHeight - 4
	if m.mode == modeFilter {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) clampOffset() {
	last := len(m.rows) - m.pageRows()
	if m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) zoom(dir timeline.Direction) {
	anchor := m.topYear()
	if !m.session.Zoom(dir) {
		m.status = "Zoom limit reached"
		return
	}
	m.rebuild(anchor)
	m.status = fmt.Sprintf("Zoom %d years per row", m.session.YearsPerRow())
}

func (m *Model) applyFilter(input string) {
	anchor := m.topYear()
	var names []string
	for _, n := range strings.Split(input, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		m.session.ShowAll()
		m.status = "Showing all regions"
		m.rebuild(anchor)
		return
	}
	dropped := m.session.SetVisible(names)
	m.rebuild(anchor)
	if len(dropped) > 0 {
		m.status = "Unknown regions: " + strings.Join(dropped, ", ")
		return
	}
	m.status = fmt.Sprintf("Showing %d regions", len(m.session.Visible()))
}

func (m *Model) reload() {
	anchor := m.topYear()
	if err := m.session.Reload(m.ctx); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.rebuild(anchor)
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.clampOffset()
	case storeChangedMsg:
		m.reload()
		if m.err == nil {
			m.status = "Reloaded after " + msg.change.Type.String() + " change"
		}
		cmds = append(cmds, m.waitForChange())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
		case modeFilter:
			switch msg.String() {
			case "enter":
				m.applyFilter(m.input.Value())
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Filter cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "?":
				m.mode = modeHelp
			case "j", "down":
				m.scroll(1)
			case "k", "up":
				m.scroll(-1)
			case "ctrl+d", "pgdown", "space":
				m.scroll(m.pageRows() / 2)
			case "ctrl+u", "pgup":
				m.scroll(-m.pageRows() / 2)
			case "g", "home":
				m.offset = 0
			case "G", "end":
				m.offset = len(m.rows)
				m.clampOffset()
			case "+", "=", "i":
				m.zoom(timeline.ZoomIn)
			case "-", "o":
				m.zoom(timeline.ZoomOut)
			case "a":
				anchor := m.topYear()
				m.session.ShowAll()
				m.rebuild(anchor)
				m.status = "Showing all regions"
			case "r":
				m.reload()
				if m.err == nil {
					m.status = "Reloaded"
				}
			case "/", "f":
				m.mode = modeFilter
				m.input.SetValue(strings.Join(m.session.Visible(), ", "))
				m.input.CursorEnd()
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				cmds = append(cmds, textinput.Blink)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.session == nil {
		return "no timeline loaded\n"
	}
	if m.mode == modeHelp {
		return m.helpView()
	}

	var b strings.Builder
	s := m.session.Scale()
	header := fmt.Sprintf("%s  %d years per row  %s",
		timeline.FormatSpan(s.StartYear, s.EndYear), s.YearsPerRow, timeline.Century(m.topYear()))
	b.WriteString(m.theme.Mode.Render(header))
	b.WriteString("\n")
	b.WriteString(m.columnHeader())
	b.WriteString("\n")

	end := m.offset + m.pageRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for _, row := range m.rows[m.offset:end] {
		b.WriteString(m.fit(row))
		b.WriteString("\n")
	}

	if m.mode == modeFilter {
		b.WriteString("\n")
		b.WriteString(m.theme.Prompt.Render("Regions: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.theme.Error.Render("ERR: " + m.err.Error()))
	} else {
		b.WriteString(m.theme.Status.Render(m.status))
	}
	return b.String()
}

// columnHeader draws region titles in their palette colors.
func (m Model) columnHeader() string {
	pal := palette.NewPalette(m.session.Regions())
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", printers.ChartGutter))
	for _, name := range m.columns {
		title := runewidth.FillRight(runewidth.Truncate(name, m.columnWidth, "…"), m.columnWidth)
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(pal.Fill(name).Hex())).
			Bold(true)
		b.WriteString(m.theme.Axis.Render("│"))
		b.WriteString(style.Render(title))
	}
	return m.fit(b.String())
}

// fit cuts a line to the terminal width once the size is known.
func (m Model) fit(line string) string {
	if m.termWidth <= 0 {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(m.termWidth).Render(line)
}

func (m Model) helpView() string {
	lines := []string{
		"Timeline viewer",
		"",
		"  j / k        scroll one row",
		"  ctrl+d / u   scroll half a page",
		"  g / G        jump to top or bottom",
		"  + / -        zoom in or out",
		"  / or f       choose visible regions",
		"  a            show every region",
		"  r            reload from the store",
		"  q            quit",
		"",
		"press ? or esc to return",
	}
	return m.theme.Help.Render(strings.Join(lines, "\n"))
}
