package viewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stlalpha/ansiview/internal/ansi"
	"github.com/stlalpha/ansiview/internal/config"
	"github.com/stlalpha/ansiview/internal/sauce"
)

func TestRenderLinesPlain(t *testing.T) {
	g := ansi.Decode("AB\nC", 80)
	lines := renderLines(g)
	want := []string{"AB", "C"}
	if len(lines) != len(want) {
		t.Fatalf("renderLines() returned %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderLinesGapsAndOverwrite(t *testing.T) {
	// A cell placed past column 0 gets space-filled up to it, and a
	// later write to the same column replaces the earlier glyph.
	g := ansi.Decode("\x1b[1;5HX\x1b[1;5HY", 80)
	lines := renderLines(g)
	if len(lines) != 1 || lines[0] != "    Y" {
		t.Errorf("renderLines() = %q, want [%q]", lines, "    Y")
	}
}

func TestRenderLinesOffGridCells(t *testing.T) {
	// ESC[1;0H parks the cursor at column -1 and the decoder records the
	// cell there. The renderer must drop it rather than index below the
	// row start.
	g := ansi.Decode("\x1b[1;0HXY", 80)
	lines := renderLines(g)
	if len(lines) != 1 || lines[0] != "Y" {
		t.Errorf("renderLines() = %q, want [%q]", lines, "Y")
	}

	// A negative row never reaches the renderer at all.
	g = ansi.Decode("\x1b[0;0HA", 80)
	lines = renderLines(g)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("renderLines() = %q, want one empty line", lines)
	}
}

func TestRenderLinesControlCharsBecomeSpaces(t *testing.T) {
	g := ansi.Decode("A\rB", 80)
	lines := renderLines(g)
	if len(lines) != 1 || lines[0] != "A B" {
		t.Errorf("renderLines() = %q, want [%q]", lines, "A B")
	}
}

func TestRenderLinesColoredRowKeepsGlyphs(t *testing.T) {
	// Styling varies with the terminal profile; the glyphs must survive
	// regardless.
	g := ansi.Decode("\x1b[31mAB", 80)
	lines := renderLines(g)
	if len(lines) != 1 || !strings.Contains(lines[0], "AB") {
		t.Errorf("renderLines() = %q, want glyphs AB present", lines)
	}
}

func TestSauceLines(t *testing.T) {
	if got := sauceLines(nil); len(got) != 1 || got[0] != "No SAUCE record." {
		t.Errorf("sauceLines(nil) = %q", got)
	}

	rec := &sauce.Record{
		Title:    "Dragon",
		Author:   "hollowone",
		Group:    "oftenhide",
		Date:     "20250101",
		TInfo1:   80,
		TInfo2:   25,
		Comments: []string{"hi"},
	}
	got := strings.Join(sauceLines(rec), "\n")
	for _, want := range []string{"Title  : Dragon", "Author : hollowone", "Size   : 80 x 25", "hi"} {
		if !strings.Contains(got, want) {
			t.Errorf("sauceLines() missing %q in %q", want, got)
		}
	}
}

func TestModelSaucePopupToggle(t *testing.T) {
	m, err := New("", "test.ans", []byte("hello"), config.DefaultConfig(), 0, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})
	m = updated.(Model)
	if !m.ready {
		t.Fatal("model not ready after WindowSizeMsg")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if !m.showSauce {
		t.Error("tab did not open the SAUCE popup")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.showSauce {
		t.Error("esc did not close the SAUCE popup")
	}
}

func TestModelWatchRequiresPath(t *testing.T) {
	if _, err := New("", "stdin", nil, config.DefaultConfig(), 0, true); err == nil {
		t.Error("New() with watch and no path did not error")
	}
}
