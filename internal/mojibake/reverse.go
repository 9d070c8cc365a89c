package mojibake

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Status is the outcome of a Reverse call that did not hit an anomaly.
type Status int

const (
	// StatusUnchanged means the reconstructed bytes are not valid UTF-8,
	// so the input does not look double-encoded. Callers must keep the
	// original text.
	StatusUnchanged Status = iota

	// StatusRepaired means the reconstructed bytes decode as UTF-8.
	// Result.Text holds the repaired text, which may equal the input
	// (pure ASCII, for example).
	StatusRepaired
)

// String returns "repaired" or "unchanged".
func (s Status) String() string {
	switch s {
	case StatusRepaired:
		return "repaired"
	default:
		return "unchanged"
	}
}

// Stats counts how each code point of the input was mapped back to bytes.
type Stats struct {
	// Windows1252 counts code points found in the Windows-1252 table.
	// ASCII lands here too.
	Windows1252 int `json:"windows1252"`

	// Latin1 counts code points in U+0080..U+00FF that Windows-1252 leaves
	// undefined and Latin-1 maps to their own value.
	Latin1 int `json:"latin1"`

	// Passthrough counts code points above U+00FF that were copied as
	// their own UTF-8 encoding. A non-zero value means part of the input
	// was not itself mojibake.
	Passthrough int `json:"passthrough"`
}

// Result is what Reverse produces for well-formed input.
type Result struct {
	Status Status

	// Text is the repaired text when Status is StatusRepaired and the
	// unmodified input otherwise.
	Text string

	Stats Stats

	// InvalidOffset is the offset of the first byte of the reconstructed
	// buffer that breaks UTF-8 decoding, or -1 when the buffer is valid.
	InvalidOffset int
}

// FatalError reports input that no mapping can represent. Ranging over a
// Go string yields utf8.RuneError for every malformed byte, and encoding that
// rune would silently replace the original byte with U+FFFD.
type FatalError struct {
	// Offset is the byte offset of the malformed sequence in the input.
	Offset int

	// Byte is the malformed byte at Offset.
	Byte byte
}

// Error satisfies the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("mojibake: input is not valid UTF-8: byte 0x%02X at offset %d", e.Byte, e.Offset)
}

// Reverse undoes one round of UTF-8 -> Windows-1252 -> UTF-8 corruption.
//
// Code points are processed left to right and each one is mapped through an
// ordered capability check:
//
//  1. Windows-1252 table
//  2. Latin-1 (any code point up to U+00FF)
//  3. the code point's own UTF-8 encoding
//
// The collected bytes are then validated as UTF-8 as a whole. A non-nil error
// is returned only for malformed input, in which case Result is zero.
func Reverse(text string) (Result, error) {
	var stats Stats
	buf := make([]byte, 0, len(text))

	for i, r := range text {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			buf = append(buf, b)
			stats.Windows1252++
			continue
		}
		if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			buf = append(buf, b)
			stats.Latin1++
			continue
		}
		if r == utf8.RuneError {
			// A literal U+FFFD in the text is three bytes wide and is
			// legitimate passthrough; a one-byte RuneError is a malformed
			// input byte.
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return Result{}, &FatalError{Offset: i, Byte: text[i]}
			}
		}
		buf = utf8.AppendRune(buf, r)
		stats.Passthrough++
	}

	if off := firstInvalid(buf); off >= 0 {
		return Result{
			Status:        StatusUnchanged,
			Text:          text,
			Stats:         stats,
			InvalidOffset: off,
		}, nil
	}

	return Result{
		Status:        StatusRepaired,
		Text:          string(buf),
		Stats:         stats,
		InvalidOffset: -1,
	}, nil
}

// firstInvalid returns the offset of the first byte that does not start a
// valid UTF-8 sequence, or -1.
func firstInvalid(p []byte) int {
	if utf8.Valid(p) {
		return -1
	}
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
