package machine

import (
	"strings"
)

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Framebuffer is the monochrome 64x32 display. The dirty flag is set by
// every mutation and cleared by the presenter.
type Framebuffer struct {
	cells [ScreenHeight][ScreenWidth]bool
	dirty bool
}

// Clear switches all cells off.
func (f *Framebuffer) Clear() {
	f.cells = [ScreenHeight][ScreenWidth]bool{}
	f.dirty = true
}

// Pixel returns whether the cell is on. Coordinates wrap around both axes.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.cells[wrap(y, ScreenHeight)][wrap(x, ScreenWidth)]
}

// Flip XORs a set sprite bit into the cell at the wrapped coordinates and
// returns whether an on cell was switched off.
func (f *Framebuffer) Flip(x, y int) bool {
	row := &f.cells[wrap(y, ScreenHeight)]
	x = wrap(x, ScreenWidth)
	collision := row[x]
	row[x] = !row[x]
	f.dirty = true
	return collision
}

// Dirty returns whether the framebuffer changed since the last call to Presented.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// Presented marks the current content as shown.
func (f *Framebuffer) Presented() {
	f.dirty = false
}

// Rows returns a copy of all cells, indexed by row then column.
func (f *Framebuffer) Rows() [ScreenHeight][ScreenWidth]bool {
	return f.cells
}

// String renders the framebuffer as text, '#' for on and '.' for off cells.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for _, row := range f.cells {
		for _, on := range row {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
