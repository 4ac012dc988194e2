package headlessterm

// acsTableSize is the number of entries in the alternate-character-set
// translation table (§4.7, §6).
const acsTableSize = 31

// acsPositions are the raw input bytes tacs() in original_source/tmt.c
// recognises; index i maps to DefaultACSChars[i] (or an embedder-supplied
// table of the same shape).
var acsPositions = [acsTableSize]byte{
	0020, 0021, 0030, 0031, 0333, 0004, 0261, 0370, 0361, 0260,
	0331, 0277, 0332, 0300, 0305, 0176, 0304, 0304, 0304, 0137,
	0303, 0264, 0301, 0302, 0263, 0363, 0362, 0343, 0330, 0234,
	0376,
}

// DefaultACSChars is the stock terminfo-order line-drawing glyph table
// used when Open is not given a custom one (§6).
var DefaultACSChars = [acsTableSize]rune{
	'>', '<', '^', 'v', '#', '+', ':', 'o', '#', '#',
	'+', '+', '+', '+', '+', '~', '-', '-', '-', '_',
	'+', '+', '+', '+', '|', '<', '>', '*', '!', 'f',
	'o',
}

// translateACS maps a raw input byte through the ACS table, returning the
// byte unchanged if it isn't one of the designated positions.
func (t *Terminal) translateACS(b byte) rune {
	for i, pos := range acsPositions {
		if pos == b {
			return t.acsChars[i]
		}
	}
	return rune(b)
}
