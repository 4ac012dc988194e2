package headlessterm

import "fmt"

// Message identifies the kind of event a Callback is invoked for (§4.8).
type Message uint8

const (
	// MsgUpdate carries the screen view; emitted once at the end of Write
	// when any cell changed.
	MsgUpdate Message = iota
	// MsgMoved carries the cursor; emitted once at the end of Write when
	// the cursor position changed.
	MsgMoved
	// MsgBell carries no payload.
	MsgBell
	// MsgAnswer carries a reply string the embedder should forward to the child.
	MsgAnswer
	// MsgCursor carries "t" (show) or "f" (hide).
	MsgCursor
	// MsgScroll carries the scroll-capture Screen.
	MsgScroll
)

// Callback receives every event a Terminal emits during Write, inline and
// in the order the underlying input produced them.
type Callback func(t *Terminal, msg Message, payload any, opaque any)

// tabStops is a per-column bitmap of tab-stop positions.
type tabStops []bool

// newTabStops returns a tab line with a stop every 8 columns, matching the
// default terminfo tab width.
func newTabStops(ncol int) tabStops {
	ts := make(tabStops, ncol)
	for i := 0; i < ncol; i += 8 {
		ts[i] = true
	}
	return ts
}

func (ts tabStops) set(col int) {
	if col >= 0 && col < len(ts) {
		ts[col] = true
	}
}

func (ts tabStops) clear(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(ts) {
		end = len(ts)
	}
	for i := start; i < end; i++ {
		ts[i] = false
	}
}

func (ts tabStops) isSet(col int) bool {
	return col >= 0 && col < len(ts) && ts[col]
}

// Terminal is a single headless VT100/VT102 emulator instance: the grid,
// scroll-capture buffer, tab line, parser/decoder state, cursor,
// attributes, and callback slot described in §5 as an instance's shared
// resources. All of it is mutated exclusively by the parser and writer
// under the single-threaded discipline Write enforces by construction.
type Terminal struct {
	screen *Screen
	scroll *Screen
	tabs   tabStops

	cursor      Cursor
	savedCursor Cursor
	cursorStyle int

	attrs      Attrs
	savedAttrs Attrs
	acs        bool
	acsChars   [acsTableSize]rune

	parser  parserState
	decoder decoder

	lastChar rune
	dirty    bool

	cb     Callback
	opaque any
}

// Open constructs a Terminal of nrow rows by ncol columns. acsTable may be
// nil to use DefaultACSChars. nrow and ncol must each be at least 2.
func Open(nrow, ncol int, cb Callback, opaque any, acsTable *[acsTableSize]rune) (*Terminal, error) {
	if nrow < 2 || ncol < 2 {
		return nil, fmt.Errorf("headlessterm: open requires nrow >= 2 and ncol >= 2, got %dx%d", nrow, ncol)
	}
	t := &Terminal{
		screen: newScreen(nrow, ncol),
		scroll: newScreen(nrow, ncol),
		tabs:   newTabStops(ncol),
		attrs:  DefaultAttrs,
		cb:     cb,
		opaque: opaque,
	}
	if acsTable != nil {
		t.acsChars = *acsTable
	} else {
		t.acsChars = DefaultACSChars
	}
	return t, nil
}

// Close releases the Terminal's resources. The embedder remains
// responsible for its own opaque pointer.
func (t *Terminal) Close() {
	t.screen = nil
	t.scroll = nil
	t.cb = nil
	t.opaque = nil
}

// emit invokes the callback, if one was supplied to Open.
func (t *Terminal) emit(msg Message, payload any) {
	if t.cb != nil {
		t.cb(t, msg, payload, t.opaque)
	}
}

// Write feeds p to the parser one byte at a time, emitting callbacks
// inline, then emits a trailing UPDATE if any cell changed and a trailing
// MOVED if the cursor moved. It never blocks and always consumes all of p.
func (t *Terminal) Write(p []byte) (int, error) {
	before := t.cursor
	t.dirty = false

	for _, b := range p {
		t.feed(b)
	}

	if t.dirty {
		t.emit(MsgUpdate, t.screen)
	}
	if t.cursor != before {
		t.emit(MsgMoved, t.cursor)
	}
	return len(p), nil
}

// Screen returns the visible screen. The caller must not retain it past
// the next call that mutates the Terminal.
func (t *Terminal) Screen() *Screen {
	return t.screen
}

// Cursor returns the current cursor position.
func (t *Terminal) Cursor() Cursor {
	return t.cursor
}

// CursorStyle returns the DECSCUSR style last selected by `CSI <n> SP q`,
// or 0 if none has been.
func (t *Terminal) CursorStyle() int {
	return t.cursorStyle
}

// Clean clears every line's and the screen's dirty flag without altering content.
func (t *Terminal) Clean() {
	t.dirty = false
	for _, l := range t.screen.Lines {
		l.Dirty = false
	}
}

// CleanScroll clears the dirty flags of the scroll-capture buffer.
func (t *Terminal) CleanScroll() {
	for _, l := range t.scroll.Lines {
		l.Dirty = false
	}
}

// Resize changes the Terminal's dimensions, preserving content in the
// overlap rectangle, clearing newly-revealed cells, freeing no-longer
// visible lines, clamping the cursor, and rebuilding tab stops.
func (t *Terminal) Resize(nrow, ncol int) error {
	if nrow < 2 || ncol < 2 {
		return fmt.Errorf("headlessterm: resize requires nrow >= 2 and ncol >= 2, got %dx%d", nrow, ncol)
	}

	next := newScreen(nrow, ncol)
	overlapRow := min(nrow, t.screen.NRow)
	overlapCol := min(ncol, t.screen.NCol)
	for r := 0; r < overlapRow; r++ {
		copy(next.Lines[r].Cells, t.screen.Lines[r].Cells[:overlapCol])
		next.Lines[r].Dirty = true
	}
	t.screen = next
	t.scroll = newScreen(nrow, ncol)
	t.tabs = newTabStops(ncol)
	t.clampCursor()
	t.dirty = true
	return nil
}

// Reset restores default attributes, clears the grid, re-homes the
// cursor, and clears parser/decoder state, preserving the callback,
// opaque pointer, and dimensions (§3 lifecycle).
func (t *Terminal) Reset() {
	t.fullReset()
	t.emit(MsgCursor, "t")
	t.emit(MsgUpdate, t.screen)
	t.emit(MsgMoved, t.cursor)
}

func (t *Terminal) fullReset() {
	t.screen = newScreen(t.screen.NRow, t.screen.NCol)
	t.scroll = newScreen(t.screen.NRow, t.screen.NCol)
	t.tabs = newTabStops(t.screen.NCol)
	t.cursor = Cursor{}
	t.savedCursor = Cursor{}
	t.attrs = DefaultAttrs
	t.savedAttrs = DefaultAttrs
	t.acs = false
	t.cursorStyle = 0
	t.lastChar = 0
	t.decoder.reset()
	t.resetParser()
	t.dirty = true
}

// decodeAndWrite routes a GROUND-state byte through ACS translation or the
// UTF-8 decoder, writing a rune once one is fully assembled (§4.7).
func (t *Terminal) decodeAndWrite(b byte) {
	if t.acs && b < 0x80 {
		t.writeRune(t.translateACS(b))
		return
	}
	r, status := t.decoder.feed(b)
	switch status {
	case decodeIncomplete:
		return
	case decodeInvalid:
		t.writeRune(replacementChar)
	case decodeComplete:
		t.writeRune(r)
	}
}

func (t *Terminal) lineFeed() {
	t.cursor.Row++
	if t.cursor.Row >= t.screen.NRow {
		t.cursor.Row = t.screen.NRow - 1
		t.scrollUp(0, 1)
	}
}

func (t *Terminal) advanceTab() {
	for c := t.cursor.Col + 1; c < t.screen.NCol; c++ {
		if t.tabs.isSet(c) {
			t.cursor.Col = c
			return
		}
	}
	t.cursor.Col = t.screen.NCol - 1
}

func (t *Terminal) retreatTab() {
	for c := t.cursor.Col - 1; c > 0; c-- {
		if t.tabs.isSet(c) {
			t.cursor.Col = c
			return
		}
	}
	t.cursor.Col = 0
}

func (t *Terminal) setTabStop(col int) {
	t.tabs.set(col)
}

func (t *Terminal) saveCursor() {
	t.savedCursor = t.cursor
	t.savedAttrs = t.attrs
}

func (t *Terminal) restoreCursor() {
	t.cursor = t.savedCursor
	t.attrs = t.savedAttrs
}

// sgr dispatches the in-progress CSI parameter list to applySGR, treating
// an empty list as the single implicit parameter 0 ("CSI m" resets).
func (t *Terminal) sgr() {
	if t.parser.nparam == 0 {
		t.applySGR([]int{0})
		return
	}
	t.applySGR(t.parser.params[:t.parser.nparam])
}

// ed implements Erase in Display (CSI J), preserving the exclusive-bound
// quirk of param 1 described in §4.5: rows [0, cursorRow-1) are cleared,
// the row directly above the cursor is left untouched, and the cursor row
// is cleared only up to (not including) the cursor column.
func (t *Terminal) ed() {
	switch t.p0(0) {
	case 0:
		t.clearLines(t.cursor.Row+1, t.screen.NRow-t.cursor.Row-1)
		t.currentLine().clear(t.cursor.Col, t.screen.NCol)
	case 1:
		t.clearLines(0, max(0, t.cursor.Row-1))
		t.currentLine().clear(0, t.cursor.Col)
	case 2:
		t.captureScroll(t.screen.Lines, t.screen.NRow)
		t.clearLines(0, t.screen.NRow)
	}
}

// el implements Erase in Line (CSI K).
func (t *Terminal) el() {
	line := t.currentLine()
	switch t.p0(0) {
	case 0:
		line.clear(t.cursor.Col, t.screen.NCol)
	case 1:
		line.clear(0, t.cursor.Col+1)
	case 2:
		line.clear(0, t.screen.NCol)
	}
}

// ich implements Insert Character (CSI @): shift the cells from the cursor
// rightward by n, dropping whatever falls off the end, and clear the
// vacated region at the cursor.
func (t *Terminal) ich() {
	n := t.p1(0)
	line := t.currentLine()
	ncol := t.screen.NCol
	col := t.cursor.Col
	if col >= ncol {
		return
	}
	if n > ncol-col {
		n = ncol - col
	}
	copy(line.Cells[col+n:ncol], line.Cells[col:ncol-n])
	line.clear(col, col+n)
}

// dch implements Delete Character (CSI P): shift the cells after the
// cursor leftward by n and blank the n cells this vacates at the end.
func (t *Terminal) dch() {
	n := t.p1(0)
	line := t.currentLine()
	ncol := t.screen.NCol
	col := t.cursor.Col
	if col >= ncol {
		return
	}
	if n > ncol-col {
		n = ncol - col
	}
	copy(line.Cells[col:ncol-n], line.Cells[col+n:ncol])
	line.clear(ncol-n, ncol)
}

// rep implements Repeat (CSI b): re-emit the last printed character n
// more times through the ordinary writer path. A cursor at column 0 has
// no previous character on this line to repeat, matching tmt.c's rep()
// guard.
func (t *Terminal) rep() {
	if t.cursor.Col == 0 {
		return
	}
	n := t.p1(0)
	for i := 0; i < n; i++ {
		t.writeRune(t.lastChar)
	}
}

// dsr answers a cursor-position report (`CSI 6n`) with 1-based coordinates.
func (t *Terminal) dsr() {
	t.emit(MsgAnswer, fmt.Sprintf("\x1b[%d;%dR", t.cursor.Row+1, t.cursor.Col+1))
}
