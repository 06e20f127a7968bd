// Package fonts provides advance-width metrics and WinAnsi text encoding for
// the standard-14 fonts the compositor draws with. Widths are expressed in
// glyph space (1/1000 em) per the Adobe AFM files and scaled by the requested
// size on measurement.
package fonts

// Metrics measures text for one base font.
type Metrics struct {
	name         string
	widths       [224]int // WinAnsi codes 0x20..0xFF; 0 marks an unassigned code
	defaultWidth int
}

// Name returns the PDF BaseFont name.
func (m *Metrics) Name() string { return m.name }

// Advance returns the rendered width of s at the given size, in points.
// Runes outside WinAnsi fall back to the font's default width, which matches
// the '?' glyph Encode substitutes for them.
func (m *Metrics) Advance(s string, size float64) float64 {
	sum := 0
	for _, r := range s {
		sum += m.runeWidth(r)
	}
	return float64(sum) / 1000 * size
}

func (m *Metrics) runeWidth(r rune) int {
	if c, ok := CodeFor(r); ok {
		if w := m.widths[c-0x20]; w > 0 {
			return w
		}
	}
	return m.defaultWidth
}

// Helvetica carries the AFM advance widths for the Helvetica core font, the
// only face the header-band compositor uses (12pt body, 8pt caption).
var Helvetica = &Metrics{
	name:         "Helvetica",
	defaultWidth: 556,
	widths: [224]int{
		278, 278, 355, 556, 556, 889, 667, 191, // space ! " # $ % & '
		333, 333, 389, 584, 278, 333, 278, 278, // ( ) * + , - . /
		556, 556, 556, 556, 556, 556, 556, 556, // 0 1 2 3 4 5 6 7
		556, 556, 278, 278, 584, 584, 584, 556, // 8 9 : ; < = > ?
		1015, 667, 667, 722, 722, 667, 611, 778, // @ A B C D E F G
		722, 278, 500, 667, 556, 833, 722, 778, // H I J K L M N O
		667, 778, 722, 667, 611, 722, 667, 944, // P Q R S T U V W
		667, 667, 611, 278, 278, 278, 469, 556, // X Y Z [ \ ] ^ _
		333, 556, 556, 500, 556, 556, 278, 556, // ` a b c d e f g
		556, 222, 222, 500, 222, 833, 556, 556, // h i j k l m n o
		556, 556, 333, 500, 278, 556, 500, 722, // p q r s t u v w
		500, 500, 500, 334, 260, 334, 584, 0, // x y z { | } ~
		556, 0, 222, 556, 333, 1000, 556, 556, // 0x80: € _ ‚ ƒ „ … † ‡
		333, 1000, 667, 333, 1000, 0, 611, 0, // 0x88: ˆ ‰ Š ‹ Œ _ Ž _
		0, 222, 222, 333, 333, 350, 556, 1000, // 0x90: _ ‘ ’ “ ” • – —
		333, 1000, 500, 333, 944, 0, 500, 667, // 0x98: ˜ ™ š › œ _ ž Ÿ
		278, 333, 556, 556, 556, 556, 260, 556, // nbsp ¡ ¢ £ ¤ ¥ ¦ §
		333, 737, 370, 556, 584, 333, 737, 333, // ¨ © ª « ¬ shy ® ¯
		400, 584, 333, 333, 333, 556, 537, 278, // ° ± ² ³ ´ µ ¶ ·
		333, 333, 365, 556, 834, 834, 834, 611, // ¸ ¹ º » ¼ ½ ¾ ¿
		667, 667, 667, 667, 667, 667, 1000, 722, // À Á Â Ã Ä Å Æ Ç
		667, 667, 667, 667, 278, 278, 278, 278, // È É Ê Ë Ì Í Î Ï
		722, 722, 778, 778, 778, 778, 778, 584, // Ð Ñ Ò Ó Ô Õ Ö ×
		778, 722, 722, 722, 722, 667, 667, 611, // Ø Ù Ú Û Ü Ý Þ ß
		556, 556, 556, 556, 556, 556, 889, 500, // à á â ã ä å æ ç
		556, 556, 556, 556, 278, 278, 278, 278, // è é ê ë ì í î ï
		556, 556, 556, 556, 556, 556, 556, 584, // ð ñ ò ó ô õ ö ÷
		611, 556, 556, 556, 556, 500, 556, 500, // ø ù ú û ü ý þ ÿ
	},
}
