package ansi

import (
	"strings"
	"testing"
)

func TestEmitColorsAndPositioning(t *testing.T) {
	g := Decode("\x1b[31mAB\x1b[0mC", 80)
	out := Emit(g)

	// One color change for the red run, one for the reset run.
	if got := strings.Count(out, "\x1b[31;40m"); got != 1 {
		t.Errorf("red SGR emitted %d times, want 1", got)
	}
	if got := strings.Count(out, "\x1b[37;40m"); got != 1 {
		t.Errorf("default SGR emitted %d times, want 1", got)
	}

	// Absolute 1-based positions for each glyph.
	for _, want := range []string{"\x1b[1;1HA", "\x1b[1;2HB", "\x1b[1;3HC"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\x1b[0m\n") {
		t.Errorf("output does not end with reset: %q", out)
	}
}

func TestEmitRowOrder(t *testing.T) {
	// Rows written out of order in the stream come back in grid order.
	g := Decode("\x1b[3;1Hlow\x1b[1;1Htop", 80)
	out := Emit(g)

	topIdx := strings.Index(out, "\x1b[1;1Ht")
	lowIdx := strings.Index(out, "\x1b[3;1Hl")
	if topIdx == -1 || lowIdx == -1 {
		t.Fatalf("missing positioned glyphs in %q", out)
	}
	if topIdx > lowIdx {
		t.Error("row 1 emitted after row 3")
	}
}

func TestEmitOverwriteOrder(t *testing.T) {
	// Two cells at the same column: the later stream write must be
	// emitted last so it paints over the earlier one.
	g := Decode("a\x1b[1;1HZ", 80)
	out := Emit(g)

	aIdx := strings.Index(out, "\x1b[1;1Ha")
	zIdx := strings.Index(out, "\x1b[1;1HZ")
	if aIdx == -1 || zIdx == -1 {
		t.Fatalf("missing cells in %q", out)
	}
	if zIdx < aIdx {
		t.Error("overwriting cell emitted before the cell it replaces")
	}
}

func TestEmitOffGridCells(t *testing.T) {
	// Zero position parameters park the cursor at row/column -1. Those
	// cells have no addressable screen location and are dropped; the
	// on-grid glyphs still come through.
	g := Decode("\x1b[0;0HA\x1b[1;0HXY", 80)
	out := Emit(g)

	if strings.Contains(out, "A") || strings.Contains(out, "X") {
		t.Errorf("off-grid cells emitted: %q", out)
	}
	if !strings.Contains(out, "\x1b[1;1HY") {
		t.Errorf("output missing on-grid glyph: %q", out)
	}
	if !strings.HasSuffix(out, "\x1b[0m\n") {
		t.Errorf("output does not end with reset: %q", out)
	}
}

func TestEmitEmptyGrid(t *testing.T) {
	out := Emit(NewGrid())
	if out != "\x1b[0m\n" {
		t.Errorf("Emit(empty) = %q, want reset only", out)
	}
}

func TestPairTableInjective(t *testing.T) {
	seen := make(map[int]bool)
	for fg := 0; fg < 8; fg++ {
		for bg := 0; bg < 8; bg++ {
			id := PairID(fg, bg)
			if id == 0 {
				t.Fatalf("PairID(%d,%d) = 0, reserved for default", fg, bg)
			}
			if seen[id] {
				t.Fatalf("PairID(%d,%d) = %d already assigned", fg, bg, id)
			}
			seen[id] = true

			gotFg, gotBg := PairColors(id)
			if gotFg != fg || gotBg != bg {
				t.Errorf("PairColors(%d) = (%d,%d), want (%d,%d)", id, gotFg, gotBg, fg, bg)
			}
		}
	}
	if len(seen) != 64 {
		t.Errorf("distinct ids = %d, want 64", len(seen))
	}
}

func TestPairColorsDefault(t *testing.T) {
	if fg, bg := PairColors(0); fg != 7 || bg != 0 {
		t.Errorf("PairColors(0) = (%d,%d), want (7,0)", fg, bg)
	}
	if fg, bg := PairColors(999); fg != 7 || bg != 0 {
		t.Errorf("PairColors(999) = (%d,%d), want (7,0)", fg, bg)
	}
}
