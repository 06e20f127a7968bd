package fonts

// CodeFor maps r to its WinAnsi (CP1252) code. ok is false when the rune has
// no WinAnsi glyph.
func CodeFor(r rune) (byte, bool) {
	switch {
	case r >= 0x20 && r <= 0x7E:
		return byte(r), true
	case r >= 0xA0 && r <= 0xFF:
		return byte(r), true
	}
	c, ok := winAnsiSpecials[r]
	return c, ok
}

// Encode transcodes s to WinAnsi bytes for a Type1 text string. Runes with no
// WinAnsi glyph become '?', whose width equals the measurement fallback so
// drawn text and Advance stay consistent.
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := CodeFor(r)
		if !ok {
			c = '?'
		}
		out = append(out, c)
	}
	return out
}

// The CP1252 0x80..0x9F range, where WinAnsi departs from Latin-1.
var winAnsiSpecials = map[rune]byte{
	'€': 0x80, // euro
	'‚': 0x82, // quotesinglbase
	'ƒ': 0x83, // florin
	'„': 0x84, // quotedblbase
	'…': 0x85, // ellipsis
	'†': 0x86, // dagger
	'‡': 0x87, // daggerdbl
	'ˆ': 0x88, // circumflex
	'‰': 0x89, // perthousand
	'Š': 0x8A, // Scaron
	'‹': 0x8B, // guilsinglleft
	'Œ': 0x8C, // OE
	'Ž': 0x8E, // Zcaron
	'‘': 0x91, // quoteleft
	'’': 0x92, // quoteright
	'“': 0x93, // quotedblleft
	'”': 0x94, // quotedblright
	'•': 0x95, // bullet
	'–': 0x96, // endash
	'—': 0x97, // emdash
	'˜': 0x98, // tilde
	'™': 0x99, // trademark
	'š': 0x9A, // scaron
	'›': 0x9B, // guilsinglright
	'œ': 0x9C, // oe
	'ž': 0x9E, // zcaron
	'Ÿ': 0x9F, // Ydieresis
}
