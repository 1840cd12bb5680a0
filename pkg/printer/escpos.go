package printer

import (
	"bytes"
	"strings"
)

// ESC/POS command bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment is an ESC/POS justification mode
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Character sizes
const (
	FontNormal byte = 0x00
	FontDouble byte = 0x11 // double width and height
	FontTall   byte = 0x01
)

// Paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for a printer that fits charWidth
// characters per line. Non-positive widths fall back to 58mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{esc, '@'})
	return d
}

// Align sets the justification of the following lines.
func (d *Document) Align(a Alignment) *Document {
	d.buf.Write([]byte{esc, 'a', byte(a)})
	return d
}

// Bold turns emphasis on or off.
func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

// FontSize sets the character size.
func (d *Document) FontSize(size byte) *Document {
	d.buf.Write([]byte{gs, '!', size})
	return d
}

// Text writes s followed by a line feed. Empty strings are skipped.
func (d *Document) Text(s string) *Document {
	if s == "" {
		return d
	}
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

// Separator prints a full-width rule of char.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(lf)
	return d
}

// KeyValue prints key on the left and value on the right of one line.
// Keys that do not fit are truncated so the value stays whole.
func (d *Document) KeyValue(key, value string) *Document {
	if room := d.width - len(value) - 1; len(key) > room && room > 0 {
		key = key[:room]
	}
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(lf)
	return d
}

// Feed advances the paper n lines.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// Cut sends a partial paper cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

// Bytes returns the accumulated stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
