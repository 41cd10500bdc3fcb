package sshkeysign

import "encoding/binary"

// Reader decodes the SSH wire primitives (byte, uint32, string) from a
// byte slice.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc4251#section-5
//
// A read that would pass the end of the input fails with
// ErrBufferTooShort and leaves the cursor where it was. Slices handed
// out by ReadString and Remaining alias the input and must not outlive
// it.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// Remaining returns the unread tail of the input without consuming it.
func (r *Reader) Remaining() []byte {
	return r.data[r.pos:]
}

// ReadUint8 consumes a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.Len() < 1 {
		return 0, ErrBufferTooShort
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint32 consumes a big-endian 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Len() < 4 {
		return 0, ErrBufferTooShort
	}
	u := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return u, nil
}

// ReadString consumes an SSH string: a uint32 length followed by that
// many raw bytes. The returned slice aliases the input.
func (r *Reader) ReadString() ([]byte, error) {
	if r.Len() < 4 {
		return nil, ErrBufferTooShort
	}
	n := int(binary.BigEndian.Uint32(r.data[r.pos:]))
	if r.Len()-4 < n {
		return nil, ErrBufferTooShort
	}
	r.pos += 4
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

// Writer encodes the SSH wire primitives into a growable buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(b uint8) {
	w.buf = append(w.buf, b)
}

// WriteUint32 appends a big-endian 32-bit integer.
func (w *Writer) WriteUint32(u uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, u)
}

// WriteString appends an SSH string: uint32 length then the payload.
func (w *Writer) WriteString(s []byte) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(len(s)))
	w.buf = append(w.buf, s...)
}
