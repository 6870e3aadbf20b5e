package terminalio

import (
	"bytes"
	"testing"
)

func TestCP437WriterEncodesText(t *testing.T) {
	var out bytes.Buffer
	w := NewCP437Writer(&out)

	// │ is 0xB3 and █ is 0xDB in CP437.
	if _, err := w.Write([]byte("A│█")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := []byte{'A', 0xB3, 0xDB}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("output = %v, want %v", out.Bytes(), want)
	}
}

func TestCP437WriterPassesEscapes(t *testing.T) {
	var out bytes.Buffer
	w := NewCP437Writer(&out)

	input := []byte("\x1b[1;31m░\x1b[0m")
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := []byte("\x1b[1;31m\xb0\x1b[0m")
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("output = %q, want %q", out.Bytes(), want)
	}
}

func TestCP437WriterSplitSequence(t *testing.T) {
	// An escape sequence torn across two writes must come out intact.
	var out bytes.Buffer
	w := NewCP437Writer(&out)

	if _, err := w.Write([]byte("x\x1b[3")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := w.Write([]byte("1mY")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := []byte("x\x1b[31mY")
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("output = %q, want %q", out.Bytes(), want)
	}
}

func TestParseOutputMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"utf8", ModeUTF8},
		{"UTF-8", ModeUTF8},
		{"cp437", ModeCP437},
		{"raw", ModeCP437},
		{"auto", ModeAuto},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		if got := ParseOutputMode(tt.in); got != tt.want {
			t.Errorf("ParseOutputMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWriterAutoDetect(t *testing.T) {
	var out bytes.Buffer

	if _, ok := NewWriter(&out, ModeAuto, "ansi-bbs").(*CP437Writer); !ok {
		t.Error("TERM=ansi-bbs did not select the CP437 writer")
	}
	if _, ok := NewWriter(&out, ModeAuto, "xterm-256color").(*CP437Writer); ok {
		t.Error("TERM=xterm-256color selected the CP437 writer")
	}
	if _, ok := NewWriter(&out, ModeCP437, "xterm").(*CP437Writer); !ok {
		t.Error("forced cp437 mode did not select the CP437 writer")
	}
}
