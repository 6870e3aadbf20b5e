package sauce

import (
	"bytes"
	"regexp"
)

// danglingEscape matches a bare ESC, an ESC[, or an ESC[ with parameter
// bytes but no terminating letter, sitting at the very end of the buffer.
var danglingEscape = regexp.MustCompile(`\x1b(\[[0-9;]*)?$`)

// StripTrailingArtifacts removes the junk that commonly trails drawable
// content after SAUCE stripping: runs of the DOS EOF marker (0x1A) and an
// incomplete escape sequence truncated at end of file. Hand-edited and
// cut-off art files frequently end mid-sequence; feeding the interpreter
// a dangling ESC[ fragment would turn it into literal glyphs.
func StripTrailingArtifacts(buf []byte) []byte {
	buf = bytes.TrimRight(buf, "\x1a")
	if loc := danglingEscape.FindIndex(buf); loc != nil {
		buf = buf[:loc[0]]
	}
	return bytes.TrimRight(buf, "\x1a")
}
