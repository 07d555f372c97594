package perfevent

import "encoding/binary"

// cursor is an endian-aware, position-tracked reader over a record's
// body bytes. It mirrors the shape of a bufio.Reader: every read
// method advances the cursor and, on a short read, records the first
// error seen in err rather than panicking or silently truncating.
// Once err is set, every subsequent read is a no-op that returns the
// zero value, so callers can read a whole record's fields in a
// straight-line sequence and check err once at the end (the same
// pattern Records.Next uses to accumulate r.err across parseSample).
type cursor struct {
	buf   []byte
	order binary.ByteOrder
	off   int
	err   error
}

func newCursor(buf []byte, order binary.ByteOrder) *cursor {
	return &cursor{buf: buf, order: order}
}

// need reports whether n more bytes are available, recording a
// TruncatedRecord failure under field's name if not.
func (c *cursor) need(field string, n int) bool {
	if c.err != nil {
		return false
	}
	if n < 0 || len(c.buf)-c.off < n {
		c.err = truncatedf(field, n, len(c.buf)-c.off)
		return false
	}
	return true
}

func (c *cursor) skip(n int) {
	if !c.need("skip", n) {
		return
	}
	c.off += n
}

func (c *cursor) bytes(field string, n int) []byte {
	if !c.need(field, n) {
		return nil
	}
	out := make([]byte, n)
	copy(out, c.buf[c.off:c.off+n])
	c.off += n
	return out
}

// rawData returns a zero-copy view of the next n bytes without
// copying them, for fields that must borrow the input record (the
// Sample stack view, the Raw fallback payload).
func (c *cursor) rawData(field string, n int) RawData {
	if !c.need(field, n) {
		return emptyRawData
	}
	v := rawDataOf(c.buf[c.off : c.off+n])
	c.off += n
	return v
}

func (c *cursor) u8(field string) uint8 {
	if !c.need(field, 1) {
		return 0
	}
	x := c.buf[c.off]
	c.off++
	return x
}

func (c *cursor) u16(field string) uint16 {
	if !c.need(field, 2) {
		return 0
	}
	x := c.order.Uint16(c.buf[c.off:])
	c.off += 2
	return x
}

func (c *cursor) u32(field string) uint32 {
	if !c.need(field, 4) {
		return 0
	}
	x := c.order.Uint32(c.buf[c.off:])
	c.off += 4
	return x
}

func (c *cursor) i32(field string) int32 {
	return int32(c.u32(field))
}

func (c *cursor) u32If(field string, cond bool) uint32 {
	if !cond {
		return 0
	}
	return c.u32(field)
}

func (c *cursor) u64(field string) uint64 {
	if !c.need(field, 8) {
		return 0
	}
	x := c.order.Uint64(c.buf[c.off:])
	c.off += 8
	return x
}

func (c *cursor) u64If(field string, cond bool) uint64 {
	if !cond {
		return 0
	}
	return c.u64(field)
}

// u64s fills out with n words read in the cursor's byte order, for
// callchains and register arrays.
func (c *cursor) u64s(field string, n int) []uint64 {
	if n < 0 || n > len(c.buf) {
		n = -1 // cannot fit; need reports it as truncated
	}
	if !c.need(field, n*8) {
		return nil
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = c.order.Uint64(c.buf[c.off:])
		c.off += 8
	}
	return out
}

// cstring reads bytes up to the first NUL (exclusive) or the end of
// the buffer, whichever comes first, and advances past the
// terminating NUL if one was found. It never fails: an unterminated
// string is not a truncation, it's just a string that runs to the end
// of the record.
func (c *cursor) cstring() []byte {
	if c.err != nil {
		return nil
	}
	rest := c.buf[c.off:]
	for i, b := range rest {
		if b == 0 {
			s := make([]byte, i)
			copy(s, rest[:i])
			c.off += i + 1
			return s
		}
	}
	s := make([]byte, len(rest))
	copy(s, rest)
	c.off = len(c.buf)
	return s
}
