package headlessterm

import "testing"

func TestOpenRejectsTooSmallDimensions(t *testing.T) {
	if _, err := Open(1, 10, nil, nil, nil); err == nil {
		t.Error("Open(1, 10, ...) should fail, nrow < 2")
	}
	if _, err := Open(10, 1, nil, nil, nil); err == nil {
		t.Error("Open(10, 1, ...) should fail, ncol < 2")
	}
}

func TestOpenDefaultACS(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	if term.acsChars != DefaultACSChars {
		t.Error("Open without an ACS table did not install DefaultACSChars")
	}
}

func TestWriteEmitsUpdateOnlyWhenDirty(t *testing.T) {
	term := newTestTerminal(t, 3, 5)
	var updates int
	term.cb = func(_ *Terminal, msg Message, _ any, _ any) {
		if msg == MsgUpdate {
			updates++
		}
	}

	term.Write([]byte("A"))
	if updates != 1 {
		t.Fatalf("updates after printable write = %d, want 1", updates)
	}

	updates = 0
	term.Write([]byte("\x1b[999999")) // incomplete CSI, no cell mutated
	if updates != 0 {
		t.Fatalf("updates after incomplete CSI = %d, want 0", updates)
	}
}

func TestWriteEmitsMovedOnlyOnCursorChange(t *testing.T) {
	term := newTestTerminal(t, 3, 5)
	var moved int
	term.cb = func(_ *Terminal, msg Message, _ any, _ any) {
		if msg == MsgMoved {
			moved++
		}
	}

	term.Write([]byte("A"))
	if moved != 1 {
		t.Fatalf("moved count after one printable char = %d, want 1", moved)
	}

	moved = 0
	term.Write([]byte("\x1b[1;31m")) // SGR only, no cursor motion
	if moved != 0 {
		t.Fatalf("moved count after SGR-only write = %d, want 0", moved)
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.screen.Lines[0].Cells[0].Base = 'A'
	term.screen.Lines[2].Cells[2].Base = 'Z'

	if err := term.Resize(2, 2); err != nil {
		t.Fatalf("Resize error: %v", err)
	}
	if term.screen.Lines[0].Cells[0].Base != 'A' {
		t.Errorf("overlap cell (0,0) = %q, want 'A'", term.screen.Lines[0].Cells[0].Base)
	}
	if term.screen.NRow != 2 || term.screen.NCol != 2 {
		t.Fatalf("dims after resize = %dx%d, want 2x2", term.screen.NRow, term.screen.NCol)
	}
}

func TestResizeClampsCursor(t *testing.T) {
	term := newTestTerminal(t, 5, 5)
	term.cursor = Cursor{Row: 4, Col: 4}
	term.Resize(2, 2)
	if term.cursor.Row >= 2 || term.cursor.Col >= 2 {
		t.Fatalf("cursor after shrink = %+v, want clamped within 2x2", term.cursor)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.attrs.Bold = true
	term.cursor = Cursor{Row: 2, Col: 2}
	term.screen.Lines[0].Cells[0].Base = 'X'

	term.Reset()

	if term.attrs != DefaultAttrs {
		t.Errorf("attrs after Reset = %+v, want defaults", term.attrs)
	}
	if term.cursor != (Cursor{}) {
		t.Errorf("cursor after Reset = %+v, want origin", term.cursor)
	}
	if term.screen.Lines[0].Cells[0].Base != ' ' {
		t.Errorf("cell after Reset = %q, want blank", term.screen.Lines[0].Cells[0].Base)
	}
}

func TestCleanClearsDirtyFlags(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.Write([]byte("A"))
	if !term.screen.Lines[0].Dirty {
		t.Fatal("line should be dirty after a write")
	}
	term.Clean()
	if term.screen.Lines[0].Dirty || term.dirty {
		t.Error("Clean() did not clear dirty flags")
	}
}

func TestACSModeTranslatesBytes(t *testing.T) {
	term := newTestTerminal(t, 3, 5)
	term.Write([]byte("\x1b[11m")) // SGR 11: enable ACS
	term.Write([]byte{acsPositions[0]})
	if term.screen.Lines[0].Cells[0].Base != DefaultACSChars[0] {
		t.Errorf("ACS cell = %q, want %q", term.screen.Lines[0].Cells[0].Base, DefaultACSChars[0])
	}
}
