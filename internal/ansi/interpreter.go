package ansi

import (
	"regexp"
	"strconv"
	"strings"
)

// escapeToken matches the escape subset consumed by the interpreter:
// ESC [ parameter-bytes final-letter. Anything the pattern does not match
// stays in the literal stream.
var escapeToken = regexp.MustCompile(`\x1b\[([0-9;]*)([A-Za-z])`)

// sgrForeground maps SGR color parameters 30-37 and 90-97 onto the 8 CGA
// color indexes. Bright variants fold onto the base color: bold intensity
// is not tracked in the grid.
var sgrForeground = map[int]int{
	30: 0, 31: 1, 32: 2, 33: 3, 34: 4, 35: 5, 36: 6, 37: 7,
	90: 0, 91: 1, 92: 2, 93: 3, 94: 4, 95: 5, 96: 6, 97: 7,
}

// decoder holds the cursor and color state for one Decode pass. A fresh
// value is created per call; nothing here is shared, so independent
// decodes may run concurrently.
type decoder struct {
	row, col int
	fg, bg   int
	pair     int
	width    int
	grid     *Grid
}

// Decode interprets text (CP437-decoded art content with interleaved
// escape sequences) into a sparse grid, wrapping literal output at
// lineWidth columns. Decoding is total: malformed escape tokens simply
// stay out of the grid, and any input produces some grid. Corrupted and
// truncated art files are expected input here, not exceptional ones, so
// nothing in this path aborts.
func Decode(text string, lineWidth int) *Grid {
	d := &decoder{
		fg:    defaultForeground,
		bg:    defaultBackground,
		width: lineWidth,
		grid:  NewGrid(),
	}

	// NULs render as blanks; substitute before the pass so the literal
	// loop only deals with drawable code points.
	text = strings.ReplaceAll(text, "\x00", " ")

	last := 0
	for _, loc := range escapeToken.FindAllStringSubmatchIndex(text, -1) {
		d.literal(text[last:loc[0]])
		d.escape(text[loc[2]:loc[3]], text[loc[4]])
		last = loc[1]
	}
	d.literal(text[last:])

	return d.grid
}

// literal places a run of glyphs at the cursor, honoring newlines and the
// wrap column.
func (d *decoder) literal(s string) {
	for _, ch := range s {
		if ch == '\n' {
			d.row++
			d.col = 0
			continue
		}
		if d.col >= d.width {
			d.row++
			d.col = 0
		}
		d.grid.Rows[d.row] = append(d.grid.Rows[d.row], Cell{X: d.col, Ch: ch, Pair: d.pair})
		d.col++
	}
}

// escape dispatches one escape token. Unknown final letters are consumed
// without effect: tolerating them beats aborting on art drawn by editors
// that emit sequences we do not model.
func (d *decoder) escape(params string, cmd byte) {
	nums := parseParams(params)

	switch cmd {
	case 'm':
		d.setGraphics(nums)
	case 'H':
		if len(nums) >= 2 {
			// 1-based in the stream, 0-based on the grid.
			d.row = nums[0] - 1
			d.col = nums[1] - 1
		}
	case 'A':
		d.row -= paramOr(nums, 1)
		if d.row < 0 {
			d.row = 0
		}
	case 'B':
		d.row += paramOr(nums, 1)
	case 'C':
		d.col += paramOr(nums, 1)
	case 'D':
		d.col -= paramOr(nums, 1)
		if d.col < 0 {
			d.col = 0
		}
	}
}

// setGraphics applies an SGR parameter list and recomputes the active
// pair id once the whole token has been processed.
func (d *decoder) setGraphics(nums []int) {
	if len(nums) == 0 {
		nums = []int{0}
	}
	for _, n := range nums {
		switch {
		case n == 0:
			d.fg = defaultForeground
			d.bg = defaultBackground
		case (n >= 30 && n <= 37) || (n >= 90 && n <= 97):
			d.fg = sgrForeground[n]
		case (n >= 40 && n <= 47) || (n >= 100 && n <= 107):
			d.bg = sgrForeground[n-10]
		}
	}
	d.pair = PairID(d.fg, d.bg)
}

// parseParams splits a semicolon-separated parameter list, skipping empty
// entries. An empty list means "use the command's default".
func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	var nums []int
	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

func paramOr(nums []int, def int) int {
	if len(nums) > 0 {
		return nums[0]
	}
	return def
}
