package mojibake

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Corrupt produces the mojibake that Reverse repairs: every byte of text's
// UTF-8 encoding is decoded as Windows-1252, and bytes Windows-1252 leaves
// undefined are decoded as Latin-1. Reverse(Corrupt(t)) yields t for any
// valid UTF-8 t.
func Corrupt(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) * 2)
	for i := 0; i < len(text); i++ {
		b := text[i]
		r := charmap.Windows1252.DecodeByte(b)
		if r == utf8.RuneError {
			r = rune(b)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
