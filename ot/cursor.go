package ot

// ByteCursor is a sequential big-endian reader over a font's byte buffer.
// Every read advances the position by the width of the value read. All
// movement is bounds-checked: reads and seeks beyond the buffer fail with a
// FontError of kind KindOutOfBounds and leave the position unchanged.
//
// Glyph decoding is a pure function of (buffer, start offset), so concurrent
// decodes may each own an independent cursor into the same immutable buffer
// without synchronization.
type ByteCursor struct {
	data binarySegm
	pos  int
}

// NewCursor wraps a byte buffer in a cursor positioned at offset 0.
// The buffer is not copied and must not change while the cursor is in use.
func NewCursor(b []byte) *ByteCursor {
	return &ByteCursor{data: b}
}

// Pos returns the current byte position.
func (c *ByteCursor) Pos() int {
	return c.pos
}

// Len returns the total size of the underlying buffer.
func (c *ByteCursor) Len() int {
	return len(c.data)
}

// Seek sets the absolute byte position.
func (c *ByteCursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return errBounds(pos)
	}
	c.pos = pos
	return nil
}

// Skip moves the position relative to the current one. delta may be negative.
func (c *ByteCursor) Skip(delta int) error {
	return c.Seek(c.pos + delta)
}

// ReadU8 reads one unsigned byte.
func (c *ByteCursor) ReadU8() (uint8, error) {
	if c.pos+1 > len(c.data) {
		return 0, errBounds(c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadU16 reads an unsigned 16-bit big-endian value.
func (c *ByteCursor) ReadU16() (uint16, error) {
	buf, err := c.data.view(c.pos, 2)
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return u16(buf), nil
}

// ReadI16 reads a signed 16-bit big-endian value.
func (c *ByteCursor) ReadI16() (int16, error) {
	n, err := c.ReadU16()
	return int16(n), err
}

// ReadU32 reads an unsigned 32-bit big-endian value.
func (c *ByteCursor) ReadU32() (uint32, error) {
	buf, err := c.data.view(c.pos, 4)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return u32(buf), nil
}
