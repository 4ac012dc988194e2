package headlessterm

// parserMode is one of the five states of the control-sequence parser
// (§4.5). The zero value is modeGround so a freshly zeroed parserState
// starts in GROUND without explicit initialization.
type parserMode uint8

const (
	modeGround parserMode = iota
	modeEsc
	modeCSIArg
	modeOSC
	modeSPIntermediate
)

const maxParams = 8

// parserState is the control-sequence parser's mutable state.
type parserState struct {
	mode    parserMode
	params  [maxParams]int
	nparam  int
	arg     int
	ignored bool
}

// p1 returns the i-th parameter, or 1 if it is absent or zero (the "P1"
// convention of §4.5).
func (t *Terminal) p1(i int) int {
	if i >= t.parser.nparam || t.parser.params[i] == 0 {
		return 1
	}
	return t.parser.params[i]
}

// p0 returns the i-th parameter, or 0 if absent (the "P0" convention).
func (t *Terminal) p0(i int) int {
	if i >= t.parser.nparam {
		return 0
	}
	return t.parser.params[i]
}

// pushArg commits the in-progress numeric accumulator as the next
// parameter, silently dropping it once maxParams is reached.
func (t *Terminal) pushArg() {
	if t.parser.nparam < maxParams {
		t.parser.params[t.parser.nparam] = t.parser.arg
		t.parser.nparam++
	}
	t.parser.arg = 0
}

// resetParser returns the parser to GROUND with all accumulated state
// cleared.
func (t *Terminal) resetParser() {
	t.parser = parserState{}
}

// clampCursor enforces the cursor-in-bounds invariant after any dispatched
// handler runs.
func (t *Terminal) clampCursor() {
	if t.cursor.Row > t.screen.NRow-1 {
		t.cursor.Row = t.screen.NRow - 1
	}
	if t.cursor.Col > t.screen.NCol-1 {
		t.cursor.Col = t.screen.NCol - 1
	}
}

// runHandler is the ritual every dispatched action goes through: commit
// the pending parameter, run the handler unless the sequence was marked
// ignored (an unsupported character-set designation), clamp the cursor,
// and reset the parser to GROUND.
func (t *Terminal) runHandler(h func()) {
	t.pushArg()
	if !t.parser.ignored {
		h()
	}
	t.clampCursor()
	t.resetParser()
}

// feed advances the parser (and, indirectly, the decoder and writer) by
// one input byte.
func (t *Terminal) feed(b byte) {
	switch t.parser.mode {
	case modeGround:
		t.feedGround(b)
	case modeEsc:
		t.feedEsc(b)
	case modeCSIArg:
		t.feedCSIArg(b)
	case modeOSC:
		t.feedOSC(b)
	case modeSPIntermediate:
		t.feedSP(b)
	}
}

func (t *Terminal) feedGround(b byte) {
	switch b {
	case 0x07:
		t.runHandler(func() { t.emit(MsgBell, nil) })
	case 0x08:
		t.runHandler(func() {
			if t.cursor.Col > 0 {
				t.cursor.Col--
			}
		})
	case 0x09:
		t.runHandler(t.advanceTab)
	case 0x0A:
		t.runHandler(t.lineFeed)
	case 0x0D:
		t.runHandler(func() { t.cursor.Col = 0 })
	case 0x1B:
		t.parser.mode = modeEsc
	default:
		t.decodeAndWrite(b)
	}
}

func (t *Terminal) feedEsc(b byte) {
	switch b {
	case 0x1B:
		// stay in ESC
	case 'H':
		t.runHandler(func() { t.setTabStop(t.cursor.Col) })
	case '7':
		t.runHandler(t.saveCursor)
	case '8':
		t.runHandler(t.restoreCursor)
	case '+', '*', '(', ')':
		t.parser.ignored = true
		t.parser.mode = modeCSIArg
	case 'c':
		t.runHandler(t.fullReset)
	case '[':
		t.parser.mode = modeCSIArg
	case ']':
		t.parser.mode = modeOSC
	default:
		t.resetParser()
	}
}

func (t *Terminal) feedCSIArg(b byte) {
	switch {
	case b >= '0' && b <= '9':
		t.parser.arg = t.parser.arg*10 + int(b-'0')
	case b == ';':
		t.pushArg()
	case b == '?':
		// private-mode marker, absorbed
	case b == ' ':
		t.parser.mode = modeSPIntermediate
	case b == 0x1B:
		t.parser.mode = modeEsc
	default:
		if h, ok := csiDispatch[b]; ok {
			t.runHandler(func() { h(t) })
		} else {
			t.resetParser()
		}
	}
}

func (t *Terminal) feedOSC(b byte) {
	switch b {
	case 0x07:
		t.resetParser()
	case 0x1B:
		t.parser.mode = modeEsc
	default:
		// accumulate-and-discard
	}
}

func (t *Terminal) feedSP(b byte) {
	if b == 'q' {
		t.runHandler(func() { t.cursorStyle = t.parser.params[0] })
		return
	}
	t.resetParser()
}

// csiDispatch maps a CSI final byte to its handler. Unlisted bytes reset
// the parser with no side effect (§4.5).
var csiDispatch = map[byte]func(*Terminal){
	'A': func(t *Terminal) { t.cursor.Row = max(0, t.cursor.Row-t.p1(0)) },
	'B': func(t *Terminal) { t.cursor.Row = min(t.screen.NRow-1, t.cursor.Row+t.p1(0)) },
	'C': func(t *Terminal) { t.cursor.Col = min(t.screen.NCol-1, t.cursor.Col+t.p1(0)) },
	'D': func(t *Terminal) { t.cursor.Col = max(0, t.cursor.Col-t.p1(0)) },
	'E': func(t *Terminal) {
		t.cursor.Col = 0
		t.cursor.Row = min(t.screen.NRow-1, t.cursor.Row+t.p1(0))
	},
	'F': func(t *Terminal) {
		t.cursor.Col = 0
		t.cursor.Row = max(0, t.cursor.Row-t.p1(0))
	},
	'G': func(t *Terminal) { t.cursor.Col = min(t.p1(0)-1, t.screen.NCol-1) },
	'd': func(t *Terminal) { t.cursor.Row = min(t.p1(0)-1, t.screen.NRow-1) },
	'H': func(t *Terminal) { t.cursor.Row = t.p1(0) - 1; t.cursor.Col = t.p1(1) - 1 },
	'f': func(t *Terminal) { t.cursor.Row = t.p1(0) - 1; t.cursor.Col = t.p1(1) - 1 },
	'I': func(t *Terminal) {
		for i := 0; i < t.p1(0); i++ {
			t.advanceTab()
		}
	},
	'Z': func(t *Terminal) {
		for i := 0; i < t.p1(0); i++ {
			t.retreatTab()
		}
	},
	'J': (*Terminal).ed,
	'K': (*Terminal).el,
	'L': func(t *Terminal) { t.scrollDown(t.cursor.Row, t.p1(0)) },
	'M': func(t *Terminal) { t.scrollUp(t.cursor.Row, t.p1(0)) },
	'P': (*Terminal).dch,
	'@': (*Terminal).ich,
	'S': func(t *Terminal) { t.scrollUp(0, t.p1(0)) },
	'T': func(t *Terminal) { t.scrollDown(0, t.p1(0)) },
	'X': func(t *Terminal) {
		line := t.currentLine()
		line.clear(t.cursor.Col, t.cursor.Col+t.p1(0))
	},
	'b': (*Terminal).rep,
	'c': func(t *Terminal) { t.emit(MsgAnswer, "\x1b[?6c") },
	'g': func(t *Terminal) {
		if t.p0(0) == 3 {
			t.tabs.clear(0, t.screen.NCol)
		}
	},
	'm': (*Terminal).sgr,
	'n': func(t *Terminal) {
		if t.p0(0) == 6 {
			t.dsr()
		}
	},
	'h': func(t *Terminal) {
		if t.p0(0) == 25 {
			t.emit(MsgCursor, "t")
		}
	},
	'l': func(t *Terminal) {
		if t.p0(0) == 25 {
			t.emit(MsgCursor, "f")
		}
	},
	's': (*Terminal).saveCursor,
	'u': (*Terminal).restoreCursor,
	'i': func(t *Terminal) {}, // media copy, recognised but a no-op
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
