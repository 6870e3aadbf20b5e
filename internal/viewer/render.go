package viewer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stlalpha/ansiview/internal/ansi"
)

// styleCache maps a color-pair id to its lipgloss style. Bubble Tea
// programs are single-goroutine, so no locking is needed.
var styleCache = map[int]lipgloss.Style{}

func styleFor(pair int) lipgloss.Style {
	if s, ok := styleCache[pair]; ok {
		return s
	}
	fg, bg := ansi.PairColors(pair)
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(fg))).
		Background(lipgloss.Color(strconv.Itoa(bg)))
	styleCache[pair] = s
	return s
}

// renderLines turns a decoded grid into one styled string per row.
// Gaps between cells become spaces, later cells overwrite earlier ones
// at the same column, and control characters render as spaces. Rows
// styled white-on-black are left unstyled so the terminal's own default
// colors show through.
func renderLines(g *ansi.Grid) []string {
	lines := make([]string, g.Height())
	for y := range lines {
		lines[y] = renderRow(g.SortedRow(y))
	}
	return lines
}

func renderRow(cells []ansi.Cell) string {
	// Cursor-motion escapes with zero parameters park cells at negative
	// columns; nothing drawable lives left of column 0. The cells arrive
	// sorted, so the off-grid ones sit at the front.
	for len(cells) > 0 && cells[0].X < 0 {
		cells = cells[1:]
	}
	if len(cells) == 0 {
		return ""
	}
	width := cells[len(cells)-1].X + 1
	glyphs := make([]rune, width)
	pairs := make([]int, width)
	for i := range glyphs {
		glyphs[i] = ' '
	}
	for _, c := range cells {
		ch := c.Ch
		if ch < 0x20 {
			ch = ' '
		}
		glyphs[c.X] = ch
		pairs[c.X] = c.Pair
	}

	var b strings.Builder
	start := 0
	for i := 1; i <= width; i++ {
		if i < width && pairs[i] == pairs[start] {
			continue
		}
		run := string(glyphs[start:i])
		if fg, bg := ansi.PairColors(pairs[start]); fg == 7 && bg == 0 {
			b.WriteString(run)
		} else {
			b.WriteString(styleFor(pairs[start]).Render(run))
		}
		start = i
	}
	return b.String()
}
