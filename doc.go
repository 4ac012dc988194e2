// Package headlessterm provides a headless VT100/VT102-compatible terminal
// emulator core: no display, no PTY, no child process. It exists to let
// callers translate a byte stream produced by some other program into a
// grid of cells plus a cursor, and to get told, synchronously and in
// order, what changed while it did so.
//
// # Quick Start
//
//	term, err := headlessterm.Open(24, 80, myCallback, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	term.Write([]byte("\x1b[31mHello\x1b[0m"))
//
// myCallback is invoked inline, from within Write, every time something an
// embedder cares about happens:
//
//	func myCallback(t *headlessterm.Terminal, msg headlessterm.Message, payload any, opaque any) {
//	    switch msg {
//	    case headlessterm.MsgUpdate:
//	        redraw(payload.(*headlessterm.Screen))
//	    case headlessterm.MsgAnswer:
//	        ptyIn.Write([]byte(payload.(string)))
//	    }
//	}
//
// # Architecture
//
// A [Terminal] owns a visible [Screen], a same-shaped scroll-capture
// Screen that each scroll off the top overwrites, from its first row, with
// the lines that scroll departs, a tab line, and the
// cursor and attribute state the control-sequence parser mutates as it
// consumes input. [Write] is the only way bytes enter a Terminal; it
// drives a five-state parser (ground, escape, CSI argument, OSC, space
// intermediate) byte by byte, decoding UTF-8 and ACS text through [Cell]
// placement rules and dispatching recognized CSI final bytes to the
// corresponding cursor, erase, scroll, and attribute operations.
//
// # Single-threaded discipline
//
// A Terminal is not safe for concurrent use. Write does not block, spawn
// goroutines, or suspend partway through a callback; every callback for a
// given Write call happens on the calling goroutine, in the order the
// underlying bytes produced the events, before Write returns.
//
// # Cells
//
// Each grid position is a [Cell]: a base code point, its [Attrs], a
// [WidthClass] distinguishing ordinary, full-width, full-width-companion,
// and zero-width-formatter cells, and a short list of combining marks
// layered on the base rune.
//
// # Scroll capture and dirty tracking
//
// Lines scrolled off the top of the visible screen are copied into the
// scroll-capture Screen and reported via MsgScroll before the write that
// caused the scroll continues. Callers that redraw incrementally should
// use [Terminal.Clean] and [Terminal.CleanScroll] to clear dirty flags
// once they have consumed a MsgUpdate or MsgScroll payload.
package headlessterm
