package headlessterm

// Line is a fixed-length row of cells plus a dirty flag.
type Line struct {
	Cells []Cell
	Dirty bool
}

// newLine returns a line of ncol blank cells.
func newLine(ncol int) *Line {
	l := &Line{Cells: make([]Cell, ncol)}
	l.clear(0, ncol)
	return l
}

// clear resets cells [start, end) to the blank state (space, default
// attrs, half-width, no marks) and marks the line dirty.
func (l *Line) clear(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(l.Cells) {
		end = len(l.Cells)
	}
	for i := start; i < end; i++ {
		l.Cells[i] = blankCell(DefaultAttrs)
	}
	if end > start {
		l.Dirty = true
	}
}

// Screen is a sequence of lines plus its dimensions. The visible screen
// and the scroll-capture buffer are both represented by this type.
type Screen struct {
	Lines []*Line
	NRow  int
	NCol  int
}

// newScreen allocates a screen of nrow blank lines of ncol columns each.
func newScreen(nrow, ncol int) *Screen {
	s := &Screen{Lines: make([]*Line, nrow), NRow: nrow, NCol: ncol}
	for i := range s.Lines {
		s.Lines[i] = newLine(ncol)
	}
	return s
}

// currentLine returns the line at the cursor's row, clamped into bounds.
func (t *Terminal) currentLine() *Line {
	r := t.cursor.Row
	if r >= t.screen.NRow {
		r = t.screen.NRow - 1
	}
	if r < 0 {
		r = 0
	}
	return t.screen.Lines[r]
}

// markDirty flags the screen-wide dirty bit and every line in [start, end).
func (t *Terminal) markDirty(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > t.screen.NRow {
		end = t.screen.NRow
	}
	for i := start; i < end; i++ {
		t.screen.Lines[i].Dirty = true
	}
	if end > start {
		t.dirty = true
	}
}

// clearLines resets n lines starting at row r to fully blank.
func (t *Terminal) clearLines(r, n int) {
	end := r + n
	if end > t.screen.NRow {
		end = t.screen.NRow
	}
	if r < 0 {
		r = 0
	}
	for i := r; i < end; i++ {
		t.screen.Lines[i].clear(0, t.screen.NCol)
	}
	if end > r {
		t.dirty = true
	}
}

// captureScroll copies lines into the scroll-capture buffer and emits
// MsgScroll. Grounded on tmt.c's savescroll(): the capture is a byte copy,
// never a pointer rotation, and the scroll buffer is sized to the visible
// screen's current dimensions.
func (t *Terminal) captureScroll(lines []*Line, n int) {
	for i := 0; i < n && i < len(t.scroll.Lines); i++ {
		copy(t.scroll.Lines[i].Cells, lines[i].Cells)
		t.scroll.Lines[i].Dirty = true
	}
	t.emit(MsgScroll, t.scroll)
}

// scrollUp removes the n lines starting at top, shifts the lines below up
// to fill the gap, and blanks the bottom n lines. If top == 0 the departing
// lines are captured to the scroll buffer first. n is clamped to
// nline-1-top, matching §4.3.
func (t *Terminal) scrollUp(top, n int) {
	nline := t.screen.NRow
	if n > nline-1-top {
		n = nline - 1 - top
	}
	if n <= 0 {
		return
	}

	departing := make([]*Line, n)
	copy(departing, t.screen.Lines[top:top+n])

	copy(t.screen.Lines[top:], t.screen.Lines[top+n:])
	copy(t.screen.Lines[nline-n:], departing)

	if top == 0 {
		t.captureScroll(departing, n)
	}

	t.clearLines(nline-n, n)
	t.markDirty(top, nline)
}

// scrollDown removes the n lines ending at the bottom of the screen,
// shifts the lines from top down to make room, and blanks the top n lines
// starting at top. No capture is emitted.
func (t *Terminal) scrollDown(top, n int) {
	nline := t.screen.NRow
	if n > nline-1-top {
		n = nline - 1 - top
	}
	if n <= 0 {
		return
	}

	incoming := make([]*Line, n)
	copy(incoming, t.screen.Lines[nline-n:])

	copy(t.screen.Lines[top+n:], t.screen.Lines[top:nline-n])
	copy(t.screen.Lines[top:], incoming)

	t.clearLines(top, n)
	t.markDirty(top, nline)
}
