package ansi

// The CGA color space: 8 foreground by 8 background colors, each
// combination assigned a compact id. Pair id 0 is the "nothing selected
// yet" state and resolves to white on black, matching a freshly reset
// terminal. The table is a pure function of the fixed palette, built once
// at init and immutable afterwards, so it is safe to share between
// concurrent decodes.

const (
	defaultForeground = 7 // white
	defaultBackground = 0 // black
)

var (
	pairByColor [8][8]int
	colorByPair [65][2]int
)

func init() {
	id := 1
	for fg := 0; fg < 8; fg++ {
		for bg := 0; bg < 8; bg++ {
			pairByColor[fg][bg] = id
			colorByPair[id] = [2]int{fg, bg}
			id++
		}
	}
	colorByPair[0] = [2]int{defaultForeground, defaultBackground}
}

// PairID returns the compact id for a (foreground, background) selection.
// Out-of-range indexes return 0, the default pair.
func PairID(fg, bg int) int {
	if fg < 0 || fg > 7 || bg < 0 || bg > 7 {
		return 0
	}
	return pairByColor[fg][bg]
}

// PairColors resolves a pair id back to its (foreground, background)
// indexes. Unknown ids resolve to white on black.
func PairColors(id int) (fg, bg int) {
	if id < 0 || id >= len(colorByPair) {
		return defaultForeground, defaultBackground
	}
	return colorByPair[id][0], colorByPair[id][1]
}
