package ansi

import "golang.org/x/text/encoding/charmap"

// DecodeCP437 converts raw CP437 bytes to a UTF-8 string. Bytes below
// 0x80, including ESC, pass through unchanged so escape sequences survive
// the conversion; high bytes become the box-drawing and symbol runes of
// the IBM PC character set. CodePage437 assigns a rune to every byte
// value, so decoding never fails on malformed input.
func DecodeCP437(data []byte) string {
	out, err := charmap.CodePage437.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
