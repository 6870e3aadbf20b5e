// Package art runs the full decode pipeline for one ANSI art file:
// SAUCE extraction, trailing-artifact cleanup, CP437 decoding and grid
// interpretation.
package art

import (
	"github.com/stlalpha/ansiview/internal/ansi"
	"github.com/stlalpha/ansiview/internal/logging"
	"github.com/stlalpha/ansiview/internal/sauce"
)

// Artwork bundles everything produced by one pass over a raw art buffer.
// It is read-only after Load; reloading a changed file means a fresh Load.
type Artwork struct {
	Sauce   *sauce.Record
	Grid    *ansi.Grid
	Columns int
}

// Load decodes raw art bytes. forceColumns overrides the SAUCE width hint
// when positive; otherwise the hint (or defaultCols) applies, bounded by
// maxCols. Load is total: any byte buffer yields an Artwork.
func Load(data []byte, defaultCols, maxCols, forceColumns int) *Artwork {
	rec, content := sauce.Extract(data)
	content = sauce.StripTrailingArtifacts(content)

	cols := forceColumns
	if cols <= 0 {
		cols = rec.Columns(defaultCols)
		if maxCols > 0 && cols > maxCols {
			cols = maxCols
		}
	}

	grid := ansi.Decode(ansi.DecodeCP437(content), cols)
	logging.Debug("decoded %d bytes into %dx%d grid (%d columns)", len(data), grid.Width(), grid.Height(), cols)

	return &Artwork{Sauce: rec, Grid: grid, Columns: cols}
}
