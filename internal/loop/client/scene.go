package client

import (
	"slices"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/loop/sim"
	"github.com/tomz197/snake/internal/object"
)

// cellKind is what occupies a drawn grid cell.
type cellKind uint8

const (
	cellHead cellKind = iota + 1
	cellBody
	cellFood
)

func (k cellKind) glyph() (rune, string) {
	switch k {
	case cellHead:
		return draw.BlockFull, draw.ColorBrightGreen
	case cellBody:
		return draw.BlockShade, draw.ColorGreen
	case cellFood:
		return draw.BlockFull, draw.ColorRed
	}
	return ' ', draw.ColorReset
}

// frameCells lists every cell a snapshot draws. The head wins over food if
// they ever share a cell.
func frameCells(snap sim.Snapshot) map[object.Cell]cellKind {
	cells := make(map[object.Cell]cellKind, len(snap.Segments)+1)
	cells[snap.Food] = cellFood
	for i, seg := range snap.Segments {
		if i == 0 {
			cells[seg] = cellHead
		} else {
			cells[seg] = cellBody
		}
	}
	return cells
}

// diffCells compares two frames. changed holds cells that are new or whose
// kind differs; removed holds cells drawn in prev but empty in next.
// Both are sorted row-major so output is stable.
func diffCells(prev, next map[object.Cell]cellKind) (changed, removed []object.Cell) {
	for c, k := range next {
		if pk, ok := prev[c]; !ok || pk != k {
			changed = append(changed, c)
		}
	}
	for c := range prev {
		if _, ok := next[c]; !ok {
			removed = append(removed, c)
		}
	}
	slices.SortFunc(changed, compareCells)
	slices.SortFunc(removed, compareCells)
	return changed, removed
}

func compareCells(a, b object.Cell) int {
	if a.Z != b.Z {
		return a.Z - b.Z
	}
	return a.X - b.X
}

// scene remembers what is on the terminal so each frame only paints the
// cells that changed.
type scene struct {
	drawn map[object.Cell]cellKind
}

// invalidate forgets the terminal contents; the next render repaints everything.
func (s *scene) invalidate() {
	s.drawn = nil
}

// render paints the difference between what is on screen and snap.
func (s *scene) render(cw *draw.ChunkWriter, b *draw.Board, snap sim.Snapshot) {
	next := frameCells(snap)
	changed, removed := diffCells(s.drawn, next)
	for _, c := range removed {
		b.EraseCell(cw, c.X, c.Z)
	}
	for _, c := range changed {
		glyph, color := next[c].glyph()
		b.PaintCell(cw, c.X, c.Z, glyph, color)
	}
	s.drawn = next
}
