package teaui

import (
	"context"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/store"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	p, err := store.Load(store.StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	s, err := app.NewSession(context.Background(), p, app.Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	m := New(context.Background(), s)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 400, Height: 60})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestViewShowsRegionsAndEvents(t *testing.T) {
	m := newTestModel(t)
	view := stripANSI(m.View())

	for _, want := range []string{"Western Europe", "China", "Warring States period", "100 years per row", "century BC"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestZoomKeysChangeYearsPerRow(t *testing.T) {
	m := newTestModel(t)
	rows := len(m.rows)

	m = press(t, m, "+")
	if got := m.session.YearsPerRow(); got != 50 {
		t.Fatalf("expected 50 years per row, got %d", got)
	}
	if len(m.rows) <= rows {
		t.Fatalf("expected more rows after zooming in, got %d then %d", rows, len(m.rows))
	}

	m = press(t, m, "-", "-")
	if got := m.session.YearsPerRow(); got != 200 {
		t.Fatalf("expected 200 years per row, got %d", got)
	}
}

func TestZoomLimit(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "-", "-", "-")
	if got := m.session.YearsPerRow(); got != 500 {
		t.Fatalf("expected 500 years per row, got %d", got)
	}
	if m.status != "Zoom limit reached" {
		t.Fatalf("expected zoom limit status, got %q", m.status)
	}
}

func TestFilterMode(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	if m.mode != modeFilter {
		t.Fatalf("expected filter mode, got %v", m.mode)
	}
	m.input.SetValue("China, Narnia")
	m = press(t, m, "enter")

	if m.mode != modeNormal {
		t.Fatalf("expected normal mode, got %v", m.mode)
	}
	if len(m.columns) != 1 || m.columns[0] != "China" {
		t.Fatalf("expected only China, got %v", m.columns)
	}
	if !strings.Contains(m.status, "Narnia") {
		t.Fatalf("expected unknown region in status, got %q", m.status)
	}
	view := stripANSI(m.View())
	if strings.Contains(view, "Roman") {
		t.Fatalf("expected Western Europe events hidden, got:\n%s", view)
	}

	m = press(t, m, "a")
	if len(m.columns) != 8 {
		t.Fatalf("expected all 8 regions, got %d", len(m.columns))
	}
}

func TestScrollClamps(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 400, Height: 6})
	m = next.(Model)

	m = press(t, m, "k")
	if m.offset != 0 {
		t.Fatalf("expected offset 0, got %d", m.offset)
	}
	m = press(t, m, "G")
	want := len(m.rows) - m.pageRows()
	if m.offset != want {
		t.Fatalf("expected offset %d, got %d", want, m.offset)
	}
	m = press(t, m, "j")
	if m.offset != want {
		t.Fatalf("expected offset to stay at %d, got %d", want, m.offset)
	}
}

func TestStoreChangeReloads(t *testing.T) {
	m := newTestModel(t)
	ctx := context.Background()

	p, err := store.Load(store.StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	d := event.Defaults()
	if _, err := d.Add(event.Draft{Name: "Han dynasty", Start: -202, End: 220, Region: "China"}, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := p.Replace(ctx, d); err != nil {
		t.Fatalf("replace: %v", err)
	}
	other, err := app.NewSession(ctx, p, app.Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	m.session = other

	next, _ := m.Update(storeChangedMsg{change: store.Change{Type: store.ChangeEvents}})
	m = next.(Model)
	if !strings.Contains(strings.Join(m.rows, "\n"), "Han dynasty") {
		t.Fatalf("expected reloaded chart to contain the new event")
	}
	if !strings.HasPrefix(m.status, "Reloaded after") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestHelpMode(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "?")
	if !strings.Contains(stripANSI(m.View()), "zoom in or out") {
		t.Fatalf("expected help text")
	}
	m = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode")
	}
}
