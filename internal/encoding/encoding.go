// Package encoding normalizes raw log-file bytes into valid UTF-8 text.
//
// Game client logs mix encodings: newer client builds emit UTF-8, while
// older builds wrote single-byte text where the training-message marker
// 0xA5 decodes as ¥ under Windows-1252. A single file can legitimately
// contain lines from both builds, and a file cut off mid multi-byte
// sequence must not corrupt the complete lines around it, so fallback
// decoding happens per line rather than per file.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// macRomanPatch remaps accented Latin letters from their Mac OS Roman
// byte values onto the Windows-1252 bytes for the same Unicode character,
// so that a Windows-1252 decode of a patched line yields the intended
// letter instead of an unrelated symbol. 0xA5 is deliberately absent:
// it must decode as ¥ (the training marker), not the Mac Roman bullet.
var macRomanPatch = map[byte]byte{
	0x80: 0xC4, // Ä
	0x81: 0xC5, // Å
	0x82: 0xC7, // Ç
	0x83: 0xC9, // É
	0x84: 0xD1, // Ñ
	0x85: 0xD6, // Ö
	0x86: 0xDC, // Ü
	0x87: 0xE1, // á
	0x88: 0xE0, // à
	0x89: 0xE2, // â
	0x8A: 0xE4, // ä
	0x8B: 0xE3, // ã
	0x8C: 0xE5, // å
	0x8D: 0xE7, // ç
	0x8E: 0xE9, // é
	0x8F: 0xE8, // è
	0x90: 0xEA, // ê
	0x91: 0xEB, // ë
	0x92: 0xED, // í
	0x93: 0xEC, // ì
	0x94: 0xEE, // î
	0x95: 0xEF, // ï
	0x96: 0xF1, // ñ
	0x97: 0xF3, // ó
	0x98: 0xF2, // ò
	0x99: 0xF4, // ô
	0x9A: 0xF6, // ö
	0x9B: 0xF5, // õ
	0x9C: 0xFA, // ú
	0x9D: 0xF9, // ù
	0x9E: 0xFB, // û
	0x9F: 0xFC, // ü
}

// DecodeLogBytes converts raw log-file bytes to a UTF-8 string.
// It never fails: every input produces some string.
func DecodeLogBytes(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	// Mixed or legacy encoding. Split on the raw newline byte (safe for
	// both UTF-8 and Windows-1252, neither uses 0x0A inside a sequence)
	// and repair only the lines that need it.
	lines := bytes.Split(raw, []byte{'\n'})
	decoded := make([]string, len(lines))
	for i, line := range lines {
		if utf8.Valid(line) {
			decoded[i] = string(line)
			continue
		}
		decoded[i] = decodeLegacyLine(line)
	}
	return strings.Join(decoded, "\n")
}

// decodeLegacyLine patches Mac Roman accented bytes onto their
// Windows-1252 equivalents, then decodes the line as Windows-1252.
func decodeLegacyLine(line []byte) string {
	var sb strings.Builder
	sb.Grow(len(line))
	for _, b := range line {
		if repl, ok := macRomanPatch[b]; ok {
			b = repl
		}
		sb.WriteRune(charmap.Windows1252.DecodeByte(b))
	}
	return sb.String()
}
