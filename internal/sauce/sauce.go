// Package sauce locates, parses and strips SAUCE metadata trailers from
// ANSI art files. SAUCE (Standard Architecture for Universal Comment
// Extensions) is a fixed-layout 128-byte record appended to the end of a
// file, optionally preceded by a COMNT block of 64-byte comment lines.
// The layout is a bit-exact de-facto standard; the offsets below must not
// change or the parser stops interoperating with existing art archives.
package sauce

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
)

const (
	// RecordSize is the fixed size of a SAUCE trailer.
	RecordSize = 128

	signature        = "SAUCE"
	commentSignature = "COMNT"
	commentLineSize  = 64

	// eofMarker is the DOS end-of-file byte that traditionally separates
	// drawable content from the SAUCE trailer.
	eofMarker = 0x1A
)

// Record is a parsed SAUCE trailer. It is immutable once parsed.
type Record struct {
	Version  string // 2 characters, "00" in practice
	Title    string
	Author   string
	Group    string
	Date     string // CCYYMMDD
	FileSize uint32 // declared size of the file without the trailer
	DataType byte
	FileType byte
	TInfo1   uint16 // for ANSI data: intended column width
	TInfo2   uint16 // for ANSI data: intended row count
	TInfo3   uint16
	TInfo4   uint16
	Flags    byte
	TInfoS   string // free-text info string (usually the font name)

	// CommentCount is the count declared in the trailer. Comments holds
	// the lines actually recovered; the two differ when the COMNT block
	// is missing or truncated.
	CommentCount byte
	Comments     []string
}

// Columns returns the artwork's declared column width, or fallback when
// the record is absent or declares none. Widths above 80 are capped:
// oversized TInfo1 values in the wild are almost always editor bugs.
func (r *Record) Columns(fallback int) int {
	if r == nil || r.TInfo1 == 0 {
		return fallback
	}
	if r.TInfo1 > 80 {
		return 80
	}
	return int(r.TInfo1)
}

// Rows returns the artwork's declared row count, or 0 when unknown.
func (r *Record) Rows() int {
	if r == nil {
		return 0
	}
	return int(r.TInfo2)
}

// Extract inspects the tail of buf for a SAUCE trailer. It returns the
// parsed record and buf with the trailer (and, when present, the COMNT
// block) removed. When no trailer exists the record is nil and buf is
// returned unchanged. Extract never fails: any malformed trailer content
// decodes to something, and a missing or short comment block leaves the
// record valid with empty comments.
//
// When CommentCount is nonzero but the COMNT signature is not at its
// expected position, only the 128-byte trailer is stripped. The orphaned
// comment bytes stay in the content and will render as garbage glyphs;
// guessing where they start would corrupt artwork more often than it
// would help, so we deliberately leave them alone.
func Extract(buf []byte) (*Record, []byte) {
	if len(buf) < RecordSize {
		return nil, buf
	}
	start := len(buf) - RecordSize
	trailer := buf[start:]
	if !bytes.HasPrefix(trailer, []byte(signature)) {
		return nil, buf
	}

	rec := parseRecord(trailer)
	strip := RecordSize

	if rec.CommentCount > 0 {
		span := len(commentSignature) + int(rec.CommentCount)*commentLineSize
		if span <= start && bytes.HasPrefix(buf[start-span:], []byte(commentSignature)) {
			block := buf[start-span+len(commentSignature) : start]
			rec.Comments = parseComments(block, int(rec.CommentCount))
			strip += span
		}
	}

	return rec, buf[:len(buf)-strip]
}

// parseRecord decodes the fixed field layout of a 128-byte trailer.
func parseRecord(t []byte) *Record {
	return &Record{
		Version:      decodeCP437(t[5:7]),
		Title:        decodeCP437(trimNUL(t[7:42])),
		Author:       decodeCP437(trimNUL(t[42:62])),
		Group:        decodeCP437(trimNUL(t[62:82])),
		Date:         decodeCP437(t[82:90]),
		FileSize:     binary.LittleEndian.Uint32(t[90:94]),
		DataType:     t[94],
		FileType:     t[95],
		TInfo1:       binary.LittleEndian.Uint16(t[96:98]),
		TInfo2:       binary.LittleEndian.Uint16(t[98:100]),
		TInfo3:       binary.LittleEndian.Uint16(t[100:102]),
		TInfo4:       binary.LittleEndian.Uint16(t[102:104]),
		CommentCount: t[104],
		Flags:        t[105],
		TInfoS:       decodeCP437(trimNUL(t[106:128])),
	}
}

// parseComments splits a COMNT block into its fixed 64-byte lines,
// preserving order.
func parseComments(block []byte, count int) []string {
	comments := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line := block[i*commentLineSize : (i+1)*commentLineSize]
		comments = append(comments, decodeCP437(trimNUL(line)))
	}
	return comments
}

func trimNUL(b []byte) []byte {
	return bytes.TrimRight(b, "\x00")
}

// decodeCP437 decodes CP437 bytes to UTF-8. CodePage437 assigns a rune to
// every byte value, so decoding cannot fail on malformed input.
func decodeCP437(b []byte) string {
	out, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
