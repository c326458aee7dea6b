package plot

// Built-in bitmap font: 8x8 glyphs for ASCII 32-127 laid out in a 16x6 grid
// on a 128x48 single-channel (alpha) atlas.
const (
	GlyphWidth  float32 = 8
	GlyphHeight float32 = 8

	fontAtlasCols   = 16
	fontAtlasWidth  = 128
	fontAtlasHeight = 48
)

// FontTexture is the texture handle DrawList commands use for bitmap-font
// glyphs. Backends map it to their own font texture.
const FontTexture uint32 = 1

// fontGlyphs holds one row bitmask per scanline, indexed by char-32.
// Glyphs that are missing render blank.
var fontGlyphs = [96][8]byte{
	0:  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // ' '
	1:  {0x18, 0x18, 0x18, 0x18, 0x18, 0x00, 0x18, 0x00}, // '!'
	2:  {0x66, 0x66, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // '"'
	3:  {0x24, 0x7E, 0x24, 0x24, 0x7E, 0x24, 0x00, 0x00}, // '#'
	4:  {0x18, 0x3E, 0x60, 0x3C, 0x06, 0x7C, 0x18, 0x00}, // '$'
	5:  {0x62, 0x64, 0x08, 0x10, 0x26, 0x46, 0x00, 0x00}, // '%'
	6:  {0x38, 0x6C, 0x38, 0x76, 0xDC, 0xCC, 0x76, 0x00}, // '&'
	7:  {0x18, 0x18, 0x30, 0x00, 0x00, 0x00, 0x00, 0x00}, // '\''
	8:  {0x0C, 0x18, 0x30, 0x30, 0x30, 0x18, 0x0C, 0x00}, // '('
	9:  {0x30, 0x18, 0x0C, 0x0C, 0x0C, 0x18, 0x30, 0x00}, // ')'
	10: {0x00, 0x66, 0x3C, 0xFF, 0x3C, 0x66, 0x00, 0x00}, // '*'
	11: {0x00, 0x18, 0x18, 0x7E, 0x18, 0x18, 0x00, 0x00}, // '+'
	12: {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x30}, // ','
	13: {0x00, 0x00, 0x00, 0x7E, 0x00, 0x00, 0x00, 0x00}, // '-'
	14: {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00}, // '.'
	15: {0x02, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x40, 0x00}, // '/'
	16: {0x3C, 0x66, 0x6E, 0x76, 0x66, 0x66, 0x3C, 0x00}, // '0'
	17: {0x18, 0x38, 0x18, 0x18, 0x18, 0x18, 0x7E, 0x00}, // '1'
	18: {0x3C, 0x66, 0x06, 0x1C, 0x30, 0x60, 0x7E, 0x00}, // '2'
	19: {0x3C, 0x66, 0x06, 0x1C, 0x06, 0x66, 0x3C, 0x00}, // '3'
	20: {0x0C, 0x1C, 0x3C, 0x6C, 0x7E, 0x0C, 0x0C, 0x00}, // '4'
	21: {0x7E, 0x60, 0x7C, 0x06, 0x06, 0x66, 0x3C, 0x00}, // '5'
	22: {0x1C, 0x30, 0x60, 0x7C, 0x66, 0x66, 0x3C, 0x00}, // '6'
	23: {0x7E, 0x06, 0x0C, 0x18, 0x30, 0x30, 0x30, 0x00}, // '7'
	24: {0x3C, 0x66, 0x66, 0x3C, 0x66, 0x66, 0x3C, 0x00}, // '8'
	25: {0x3C, 0x66, 0x66, 0x3E, 0x06, 0x0C, 0x38, 0x00}, // '9'
	26: {0x00, 0x00, 0x18, 0x18, 0x00, 0x18, 0x18, 0x00}, // ':'
	27: {0x00, 0x00, 0x18, 0x18, 0x00, 0x18, 0x18, 0x30}, // ';'
	28: {0x06, 0x0C, 0x18, 0x30, 0x18, 0x0C, 0x06, 0x00}, // '<'
	29: {0x00, 0x00, 0x7E, 0x00, 0x7E, 0x00, 0x00, 0x00}, // '='
	30: {0x60, 0x30, 0x18, 0x0C, 0x18, 0x30, 0x60, 0x00}, // '>'
	31: {0x3C, 0x66, 0x06, 0x1C, 0x18, 0x00, 0x18, 0x00}, // '?'
	32: {0x3C, 0x66, 0x6E, 0x6A, 0x6E, 0x60, 0x3C, 0x00}, // '@'
	33: {0x18, 0x3C, 0x66, 0x66, 0x7E, 0x66, 0x66, 0x00}, // 'A'
	34: {0x7C, 0x66, 0x66, 0x7C, 0x66, 0x66, 0x7C, 0x00}, // 'B'
	35: {0x3C, 0x66, 0x60, 0x60, 0x60, 0x66, 0x3C, 0x00}, // 'C'
	36: {0x78, 0x6C, 0x66, 0x66, 0x66, 0x6C, 0x78, 0x00}, // 'D'
	37: {0x7E, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x7E, 0x00}, // 'E'
	38: {0x7E, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x60, 0x00}, // 'F'
	39: {0x3C, 0x66, 0x60, 0x6E, 0x66, 0x66, 0x3E, 0x00}, // 'G'
	40: {0x66, 0x66, 0x66, 0x7E, 0x66, 0x66, 0x66, 0x00}, // 'H'
	41: {0x7E, 0x18, 0x18, 0x18, 0x18, 0x18, 0x7E, 0x00}, // 'I'
	42: {0x3E, 0x0C, 0x0C, 0x0C, 0x0C, 0x6C, 0x38, 0x00}, // 'J'
	43: {0x66, 0x6C, 0x78, 0x70, 0x78, 0x6C, 0x66, 0x00}, // 'K'
	44: {0x60, 0x60, 0x60, 0x60, 0x60, 0x60, 0x7E, 0x00}, // 'L'
	45: {0x63, 0x77, 0x7F, 0x6B, 0x63, 0x63, 0x63, 0x00}, // 'M'
	46: {0x66, 0x76, 0x7E, 0x7E, 0x6E, 0x66, 0x66, 0x00}, // 'N'
	47: {0x3C, 0x66, 0x66, 0x66, 0x66, 0x66, 0x3C, 0x00}, // 'O'
	48: {0x7C, 0x66, 0x66, 0x7C, 0x60, 0x60, 0x60, 0x00}, // 'P'
	49: {0x3C, 0x66, 0x66, 0x66, 0x6A, 0x6C, 0x36, 0x00}, // 'Q'
	50: {0x7C, 0x66, 0x66, 0x7C, 0x6C, 0x66, 0x66, 0x00}, // 'R'
	51: {0x3C, 0x66, 0x60, 0x3C, 0x06, 0x66, 0x3C, 0x00}, // 'S'
	52: {0x7E, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x00}, // 'T'
	53: {0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x3C, 0x00}, // 'U'
	54: {0x66, 0x66, 0x66, 0x66, 0x66, 0x3C, 0x18, 0x00}, // 'V'
	55: {0x63, 0x63, 0x63, 0x6B, 0x7F, 0x77, 0x63, 0x00}, // 'W'
	56: {0x66, 0x66, 0x3C, 0x18, 0x3C, 0x66, 0x66, 0x00}, // 'X'
	57: {0x66, 0x66, 0x66, 0x3C, 0x18, 0x18, 0x18, 0x00}, // 'Y'
	58: {0x7E, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x7E, 0x00}, // 'Z'
	59: {0x1C, 0x18, 0x18, 0x18, 0x18, 0x18, 0x1C, 0x00}, // '['
	60: {0x40, 0x60, 0x30, 0x18, 0x0C, 0x06, 0x02, 0x00}, // '\\'
	61: {0x38, 0x18, 0x18, 0x18, 0x18, 0x18, 0x38, 0x00}, // ']'
	62: {0x18, 0x3C, 0x66, 0x00, 0x00, 0x00, 0x00, 0x00}, // '^'
	63: {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7E, 0x00}, // '_'
	64: {0x30, 0x18, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00}, // '`'
	65: {0x00, 0x00, 0x3C, 0x06, 0x3E, 0x66, 0x3E, 0x00}, // 'a'
	66: {0x60, 0x60, 0x7C, 0x66, 0x66, 0x66, 0x7C, 0x00}, // 'b'
	67: {0x00, 0x00, 0x3C, 0x66, 0x60, 0x66, 0x3C, 0x00}, // 'c'
	68: {0x06, 0x06, 0x3E, 0x66, 0x66, 0x66, 0x3E, 0x00}, // 'd'
	69: {0x00, 0x00, 0x3C, 0x66, 0x7E, 0x60, 0x3C, 0x00}, // 'e'
	70: {0x1C, 0x30, 0x30, 0x7C, 0x30, 0x30, 0x30, 0x00}, // 'f'
	71: {0x00, 0x00, 0x3E, 0x66, 0x66, 0x3E, 0x06, 0x3C}, // 'g'
	72: {0x60, 0x60, 0x7C, 0x66, 0x66, 0x66, 0x66, 0x00}, // 'h'
	73: {0x18, 0x00, 0x38, 0x18, 0x18, 0x18, 0x3C, 0x00}, // 'i'
	74: {0x0C, 0x00, 0x1C, 0x0C, 0x0C, 0x0C, 0x6C, 0x38}, // 'j'
	75: {0x60, 0x60, 0x66, 0x6C, 0x78, 0x6C, 0x66, 0x00}, // 'k'
	76: {0x38, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C, 0x00}, // 'l'
	77: {0x00, 0x00, 0x76, 0x7F, 0x6B, 0x6B, 0x63, 0x00}, // 'm'
	78: {0x00, 0x00, 0x7C, 0x66, 0x66, 0x66, 0x66, 0x00}, // 'n'
	79: {0x00, 0x00, 0x3C, 0x66, 0x66, 0x66, 0x3C, 0x00}, // 'o'
	80: {0x00, 0x00, 0x7C, 0x66, 0x66, 0x7C, 0x60, 0x60}, // 'p'
	81: {0x00, 0x00, 0x3E, 0x66, 0x66, 0x3E, 0x06, 0x06}, // 'q'
	82: {0x00, 0x00, 0x6C, 0x76, 0x60, 0x60, 0x60, 0x00}, // 'r'
	83: {0x00, 0x00, 0x3E, 0x60, 0x3C, 0x06, 0x7C, 0x00}, // 's'
	84: {0x30, 0x30, 0x7C, 0x30, 0x30, 0x30, 0x1C, 0x00}, // 't'
	85: {0x00, 0x00, 0x66, 0x66, 0x66, 0x66, 0x3E, 0x00}, // 'u'
	86: {0x00, 0x00, 0x66, 0x66, 0x66, 0x3C, 0x18, 0x00}, // 'v'
	87: {0x00, 0x00, 0x63, 0x6B, 0x6B, 0x7F, 0x36, 0x00}, // 'w'
	88: {0x00, 0x00, 0x66, 0x3C, 0x18, 0x3C, 0x66, 0x00}, // 'x'
	89: {0x00, 0x00, 0x66, 0x66, 0x66, 0x3E, 0x06, 0x3C}, // 'y'
	90: {0x00, 0x00, 0x7E, 0x0C, 0x18, 0x30, 0x7E, 0x00}, // 'z'
	91: {0x0E, 0x18, 0x18, 0x70, 0x18, 0x18, 0x0E, 0x00}, // '{'
	92: {0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x00}, // '|'
	93: {0x70, 0x18, 0x18, 0x0E, 0x18, 0x18, 0x70, 0x00}, // '}'
	94: {0x00, 0x00, 0x76, 0xDC, 0x00, 0x00, 0x00, 0x00}, // '~'
}

// FontAtlas returns the built-in font atlas as alpha bytes, row-major,
// width*height long.
func FontAtlas() (width, height int, alpha []byte) {
	alpha = make([]byte, fontAtlasWidth*fontAtlasHeight)
	for idx, rows := range fontGlyphs {
		col := idx % fontAtlasCols
		row := idx / fontAtlasCols
		for y, bits := range rows {
			for x := 0; x < 8; x++ {
				if bits&(0x80>>x) != 0 {
					alpha[(row*8+y)*fontAtlasWidth+col*8+x] = 255
				}
			}
		}
	}
	return fontAtlasWidth, fontAtlasHeight, alpha
}

// glyphUV returns normalized atlas coordinates for r.
func glyphUV(r rune) (u0, v0, u1, v1 float32) {
	char := unicodeFallback(r)
	if char < 32 || char > 127 {
		char = '?'
	}
	idx := int(char - 32)
	col := float32(idx % fontAtlasCols)
	row := float32(idx / fontAtlasCols)
	return col * 8 / fontAtlasWidth, row * 8 / fontAtlasHeight,
		(col + 1) * 8 / fontAtlasWidth, (row + 1) * 8 / fontAtlasHeight
}

// unicodeFallback maps a few symbols used in labels to ASCII equivalents.
func unicodeFallback(r rune) rune {
	if r >= 32 && r <= 127 {
		return r
	}
	switch r {
	case '\u2212', '\u2013', '\u2014': // minus sign, dashes
		return '-'
	case '\u00b7', '\u2022':
		return '*'
	case '\u00b5':
		return 'u'
	default:
		return r
	}
}

// MeasureText returns the size of text drawn with AddText at scale.
func MeasureText(text string, scale float32) Vec2 {
	if scale <= 0 {
		scale = 1
	}
	n := 0
	for range text {
		n++
	}
	return Vec2{X: float32(n) * GlyphWidth * scale, Y: GlyphHeight * scale}
}
