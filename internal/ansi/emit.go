package ansi

import (
	"fmt"
	"strings"
)

// Emit reserializes a grid into a flat escape stream for dumping straight
// to a terminal. Output is restricted to SGR color selection and absolute
// cursor positioning, the two commands real terminals reliably support,
// and ends with an attribute reset. Cells are emitted row-major in column
// order; the stable sort preserves stream order at equal columns, so
// later writes paint over earlier ones exactly as they did on the
// original terminal.
func Emit(g *Grid) string {
	var b strings.Builder
	lastPair := -1

	for _, y := range g.RowIndexes() {
		if y < 0 {
			continue
		}
		for _, c := range g.SortedRow(y) {
			// Cells parked off-grid by zero position parameters have no
			// addressable screen location.
			if c.X < 0 {
				continue
			}
			if c.Pair != lastPair {
				fg, bg := PairColors(c.Pair)
				fmt.Fprintf(&b, "\x1b[%d;%dm", 30+fg, 40+bg)
				lastPair = c.Pair
			}
			fmt.Fprintf(&b, "\x1b[%d;%dH%c", y+1, c.X+1, c.Ch)
		}
	}

	b.WriteString("\x1b[0m\n")
	return b.String()
}
