package headlessterm

// ownerColumn returns the column the writer treats as "the cell to the
// left of the cursor", or the cursor's own column when the cursor sits at
// column 0. Combining marks and formatter replacement both anchor here.
func (t *Terminal) ownerColumn() int {
	col := t.cursor.Col
	if col > 0 {
		col--
	}
	return col
}

// writeRune places one decoded code point per §4.6.
func (t *Terminal) writeRune(w rune) {
	line := t.currentLine()
	ownerCol := t.ownerColumn()
	ownerType := line.Cells[ownerCol].Width

	switch markCategory(w) {
	case MarkFormat:
		t.writeFormatter(w)
		return
	case MarkNormal:
		t.attachMark(line, ownerCol, ownerType, w)
		return
	case MarkFullwidth:
		markCol := t.attachMark(line, ownerCol, ownerType, w)
		if ownerType == HalfWidth {
			t.promoteFullWidth(markCol)
		}
		return
	}

	if ownerType == Formatter {
		t.replaceFormatter(ownerCol, w)
		return
	}

	full := isFullWidth(w)
	useCols := 1
	if full {
		useCols = 2
	}

	if t.cursor.Col+useCols > t.screen.NCol {
		t.cursor.Col = 0
		t.cursor.Row++
	}
	if t.cursor.Row >= t.screen.NRow {
		t.cursor.Row = t.screen.NRow - 1
		t.scrollUp(0, 1)
	}

	cl := t.currentLine()
	cell := &cl.Cells[t.cursor.Col]
	*cell = Cell{Base: w, Attrs: t.attrs, Width: HalfWidth}
	if full {
		cell.Width = FullWidth
		companion := &cl.Cells[t.cursor.Col+1]
		*companion = Cell{Base: ' ', Attrs: t.attrs, Width: Ignored}
	}
	cl.Dirty = true
	t.dirty = true
	t.lastChar = w

	t.cursor.Col += useCols
}

// attachMark appends w to the combining-mark list of the owning base
// cell, stepping back one more column first if ownerCol is itself an
// Ignored full-width companion (so the mark lands on the real base, not
// the companion). Returns the column the mark was actually stored on.
func (t *Terminal) attachMark(line *Line, ownerCol int, ownerType WidthClass, w rune) int {
	col := ownerCol
	if ownerType == Ignored && col > 0 {
		col--
	}
	line.Cells[col].addMark(w)
	line.Dirty = true
	t.dirty = true
	return col
}

// writeFormatter stores w as a formatter placeholder at the cursor and
// advances the cursor one column, the same as an ordinary half-width cell
// (§4.6 step 4); its base will be replaced in place by the next
// non-mark, non-format input, without a further cursor advance.
func (t *Terminal) writeFormatter(w rune) {
	if t.cursor.Col >= t.screen.NCol {
		t.cursor.Col = 0
		t.cursor.Row++
		if t.cursor.Row >= t.screen.NRow {
			t.cursor.Row = t.screen.NRow - 1
			t.scrollUp(0, 1)
		}
	}
	line := t.currentLine()
	cell := &line.Cells[t.cursor.Col]
	*cell = Cell{Base: w, Attrs: t.attrs, Width: Formatter}
	line.Dirty = true
	t.dirty = true
	t.cursor.Col++
}

// replaceFormatter makes w the new base of the formatter cell at col,
// inheriting its stored marks and recomputing the width class from w.
func (t *Terminal) replaceFormatter(col int, w rune) {
	line := t.currentLine()
	cell := &line.Cells[col]
	marks := cell.Marks
	cell.Base = w
	cell.Marks = marks

	switch markCategory(w) {
	case MarkFormat:
		cell.Width = Formatter
	default:
		cell.Width = HalfWidth
		if isFullWidth(w) && col+1 < t.screen.NCol {
			cell.Width = FullWidth
			companion := &line.Cells[col+1]
			*companion = Cell{Base: ' ', Attrs: cell.Attrs, Width: Ignored}
		}
	}
	line.Dirty = true
	t.dirty = true
}

// promoteFullWidth reinterprets the half-width base cell at col as
// full-width because a mark attached to it forces full width (§4.6). If
// col is the last column, the base is first wrapped to the next line
// (scrolling if needed) and re-emitted there as full-width.
func (t *Terminal) promoteFullWidth(col int) {
	line := t.currentLine()
	base := line.Cells[col].Base
	attrs := line.Cells[col].Attrs
	marks := line.Cells[col].Marks

	if col+1 >= t.screen.NCol {
		line.clear(col, col+1)
		t.cursor.Col = 0
		t.cursor.Row++
		if t.cursor.Row >= t.screen.NRow {
			t.cursor.Row = t.screen.NRow - 1
			t.scrollUp(0, 1)
		}
		line = t.currentLine()
		col = 0
	}

	line.Cells[col] = Cell{Base: base, Attrs: attrs, Width: FullWidth, Marks: marks}
	line.Cells[col+1] = Cell{Base: ' ', Attrs: attrs, Width: Ignored}
	line.Dirty = true
	t.dirty = true
}
