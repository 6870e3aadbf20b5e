// Package terminalio adapts decoded art output to the connected
// terminal's character encoding. Retro clients (SyncTERM, NetRunner)
// want raw CP437 bytes; everything modern wants UTF-8.
package terminalio

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// OutputMode selects the character encoding strategy for terminal output.
type OutputMode int

const (
	ModeAuto  OutputMode = iota // detect from the client's TERM value
	ModeUTF8                    // force UTF-8 output
	ModeCP437                   // force raw CP437 byte output
)

// ParseOutputMode maps a config/flag string to an OutputMode. Unknown
// values fall back to auto.
func ParseOutputMode(s string) OutputMode {
	switch strings.ToLower(s) {
	case "utf8", "utf-8":
		return ModeUTF8
	case "cp437", "raw":
		return ModeCP437
	default:
		return ModeAuto
	}
}

// ansiState tracks the escape-sequence scanner inside CP437Writer.
type ansiState int

const (
	stateGround ansiState = iota
	stateEscape           // saw ESC
	stateCSI              // saw ESC [
)

// CP437Writer encodes printable UTF-8 text to CP437 while passing ANSI
// escape sequences through byte-for-byte. Escape sequences are plain
// ASCII and must not be run through the encoder: a parameter byte could
// otherwise be mangled by substitution.
type CP437Writer struct {
	w       io.Writer
	encoder transform.Transformer
	state   ansiState
	seq     bytes.Buffer // accumulates an in-flight escape sequence
}

// NewCP437Writer wraps w with selective CP437 encoding.
func NewCP437Writer(w io.Writer) *CP437Writer {
	return &CP437Writer{
		w:       w,
		encoder: encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder()),
	}
}

// Write implements io.Writer. Text runs are encoded to CP437; escape
// sequences pass through raw. Runes with no CP437 equivalent are
// substituted by the encoder, never dropped.
func (cw *CP437Writer) Write(p []byte) (int, error) {
	var text bytes.Buffer

	flushText := func() error {
		if text.Len() == 0 {
			return nil
		}
		raw := append([]byte(nil), text.Bytes()...)
		text.Reset()
		encoded, _, err := transform.Bytes(cw.encoder, raw)
		if err != nil {
			// The encoder substitutes rather than fails for unmapped
			// runes; a transform error here means a torn multi-byte
			// rune at a chunk boundary. Pass the original through so
			// nothing is silently lost.
			_, werr := cw.w.Write(raw)
			return werr
		}
		_, err = cw.w.Write(encoded)
		return err
	}
	flushSeq := func() error {
		if cw.seq.Len() == 0 {
			return nil
		}
		_, err := cw.w.Write(cw.seq.Bytes())
		cw.seq.Reset()
		return err
	}

	for i, b := range p {
		switch cw.state {
		case stateGround:
			if b == 0x1b {
				if err := flushText(); err != nil {
					return i, err
				}
				cw.seq.WriteByte(b)
				cw.state = stateEscape
			} else {
				text.WriteByte(b)
			}

		case stateEscape:
			cw.seq.WriteByte(b)
			if b == '[' {
				cw.state = stateCSI
			} else {
				// Two-byte ESC sequence; emit and return to ground.
				if err := flushSeq(); err != nil {
					return i, err
				}
				cw.state = stateGround
			}

		case stateCSI:
			cw.seq.WriteByte(b)
			if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') {
				if err := flushSeq(); err != nil {
					return i, err
				}
				cw.state = stateGround
			}
		}
	}

	if err := flushText(); err != nil {
		return len(p), err
	}
	// A sequence still in flight stays buffered until the next Write
	// completes it.
	return len(p), nil
}

// NewWriter returns w wrapped appropriately for mode. term is the
// client's TERM value, consulted in auto mode: the classic CP437
// terminals identify as "ansi" or "scoansi" rather than an xterm
// variant.
func NewWriter(w io.Writer, mode OutputMode, term string) io.Writer {
	if mode == ModeAuto {
		switch strings.ToLower(term) {
		case "ansi", "ansi-bbs", "scoansi", "pcansi":
			mode = ModeCP437
		default:
			mode = ModeUTF8
		}
	}
	if mode == ModeCP437 {
		return NewCP437Writer(w)
	}
	return w
}
