// Package mojibake reverses UTF-8 text that was misread as Windows-1252
// (or Latin-1) and then re-encoded as UTF-8.
//
// Every code point of the damaged text is mapped back to the single byte it
// was decoded from: Windows-1252 first, Latin-1 second, and the code point's
// own UTF-8 encoding as a last resort. The resulting byte buffer is accepted
// only when it is valid UTF-8.
//
// The package is pure: no file I/O and no shared state. The Windows-1252 and
// Latin-1 tables come from golang.org/x/text/encoding/charmap.
package mojibake
