package draw

import "strings"

// Board maps a square grid centered on the origin to terminal cells and
// centers it, with a one-character border, below a HUD area.
type Board struct {
	size     int // Grid cells per side
	half     int
	cellCols int // Terminal columns per grid cell
	hudRows  int // Rows reserved above the border

	termWidth  int
	termHeight int

	// 1-based terminal position of the top-left grid cell (inside the border).
	originCol int
	originRow int
}

// NewBoard creates a board for a grid of side size. Call Resize before drawing.
func NewBoard(size, cellCols, hudRows int) *Board {
	return &Board{
		size:     size,
		half:     size / 2,
		cellCols: cellCols,
		hudRows:  hudRows,
	}
}

// Width returns the board width in terminal columns, border included.
func (b *Board) Width() int {
	return b.size*b.cellCols + 2
}

// Height returns the board height in terminal rows, border included.
func (b *Board) Height() int {
	return b.size + 2
}

// Resize lays the board out on a terminal of the given size.
// Returns true if the layout changed.
func (b *Board) Resize(termWidth, termHeight int) bool {
	if termWidth == b.termWidth && termHeight == b.termHeight {
		return false
	}
	b.termWidth = termWidth
	b.termHeight = termHeight

	left := (termWidth-b.Width())/2 + 1
	top := (termHeight-b.hudRows-b.Height())/2 + 1 + b.hudRows
	if left < 1 {
		left = 1
	}
	if top < b.hudRows+1 {
		top = b.hudRows + 1
	}
	b.originCol = left + 1
	b.originRow = top + 1
	return true
}

// Fits reports whether the board, its border and the HUD fit the terminal.
func (b *Board) Fits() bool {
	return b.termWidth >= b.Width() && b.termHeight >= b.Height()+b.hudRows
}

// TerminalWidth returns the terminal column count from the last Resize.
func (b *Board) TerminalWidth() int {
	return b.termWidth
}

// TerminalHeight returns the terminal row count from the last Resize.
func (b *Board) TerminalHeight() int {
	return b.termHeight
}

// Left returns the 1-based column of the left border.
func (b *Board) Left() int {
	return b.originCol - 1
}

// Top returns the 1-based row of the top border.
func (b *Board) Top() int {
	return b.originRow - 1
}

// CenterCol returns the terminal column at the horizontal center of the board.
func (b *Board) CenterCol() int {
	return b.Left() + b.Width()/2
}

// CenterRow returns the terminal row at the vertical center of the board.
func (b *Board) CenterRow() int {
	return b.Top() + b.Height()/2
}

// CellPos converts grid coordinates to the 1-based terminal position of the
// cell's first column.
func (b *Board) CellPos(x, z int) (col, row int) {
	return b.originCol + (x+b.half)*b.cellCols, b.originRow + (z + b.half)
}

// PaintCell draws glyph (repeated to fill the cell) in the given color.
func (b *Board) PaintCell(cw *ChunkWriter, x, z int, glyph rune, color string) {
	col, row := b.CellPos(x, z)
	cw.MoveCursor(col, row)
	cw.WriteString(color)
	for range b.cellCols {
		cw.WriteRune(glyph)
	}
	cw.WriteString(ColorReset)
}

// EraseCell blanks a grid cell.
func (b *Board) EraseCell(cw *ChunkWriter, x, z int) {
	col, row := b.CellPos(x, z)
	cw.WriteAt(col, row, strings.Repeat(" ", b.cellCols))
}

// RenderBorder draws the box around the grid.
func (b *Board) RenderBorder(cw *ChunkWriter) {
	inner := strings.Repeat("─", b.size*b.cellCols)
	left := b.Left()
	right := left + b.Width() - 1
	top := b.Top()
	bottom := top + b.Height() - 1

	cw.WriteAt(left, top, "┌"+inner+"┐")
	for row := top + 1; row < bottom; row++ {
		cw.WriteAt(left, row, "│")
		cw.WriteAt(right, row, "│")
	}
	cw.WriteAt(left, bottom, "└"+inner+"┘")
}
