package headlessterm

import "testing"

func TestApplySGRReset(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.attrs.Bold = true
	term.applySGR([]int{0})
	if term.attrs != DefaultAttrs {
		t.Errorf("attrs after SGR 0 = %+v, want %+v", term.attrs, DefaultAttrs)
	}
}

func TestApplySGRBoldAndUnset(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.applySGR([]int{1})
	if !term.attrs.Bold {
		t.Fatal("SGR 1 did not set Bold")
	}
	term.applySGR([]int{22})
	if term.attrs.Bold {
		t.Fatal("SGR 22 did not clear Bold")
	}
}

func TestApplySGRPaletteColor(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.applySGR([]int{31})
	want := Color{Kind: ColorPalette, Code: PaletteRed}
	if term.attrs.Fg != want {
		t.Errorf("Fg after SGR 31 = %+v, want %+v", term.attrs.Fg, want)
	}

	term.applySGR([]int{39})
	if term.attrs.Fg != DefaultColor {
		t.Errorf("Fg after SGR 39 = %+v, want default", term.attrs.Fg)
	}
}

func TestApplySGRBrightColor(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.applySGR([]int{91})
	want := Color{Kind: ColorPalette, Code: PaletteRed + 8}
	if term.attrs.Fg != want {
		t.Errorf("Fg after SGR 91 = %+v, want %+v", term.attrs.Fg, want)
	}
}

func TestApplySGRTrueColor(t *testing.T) {
	term := newTestTerminal(t, 3, 3)
	term.applySGR([]int{38, 2, 10, 20, 30})
	want := Color{Kind: ColorRGB, R: 10, G: 20, B: 30}
	if term.attrs.Fg != want {
		t.Errorf("Fg after 38;2;10;20;30 = %+v, want %+v", term.attrs.Fg, want)
	}
}
