package perfevent

import "encoding/binary"

// RawData is a zero-copy view over a record's body bytes. Get never
// panics: a subrange that runs past the end of the view is clamped to
// the view's bounds rather than indexed out of bounds.
type RawData struct {
	b []byte
}

// rawDataOf wraps b without copying it.
func rawDataOf(b []byte) RawData {
	return RawData{b}
}

// emptyRawData is the zero-length view used when a record has no
// stack or no raw payload.
var emptyRawData = RawData{}

// Len returns the number of bytes in the view.
func (d RawData) Len() int {
	return len(d.b)
}

// Bytes returns the view's bytes. The caller must not retain the slice
// beyond the lifetime of the record this view was taken from.
func (d RawData) Bytes() []byte {
	return d.b
}

// Get returns the subrange [lo, hi) of d. Out-of-range or inverted
// bounds yield an empty view rather than a panic or an error, matching
// the "never panics on out-of-range" invariant for RawData subranges.
func (d RawData) Get(lo, hi int) RawData {
	if lo < 0 {
		lo = 0
	}
	if hi > len(d.b) {
		hi = len(d.b)
	}
	if lo >= hi {
		return emptyRawData
	}
	return RawData{d.b[lo:hi]}
}

// RawRegs is a view over a contiguous run of 64-bit register words,
// decoded in the byte order the session was recorded in.
type RawRegs struct {
	b     []byte
	order binary.ByteOrder
}

func rawRegsOf(b []byte, order binary.ByteOrder) RawRegs {
	return RawRegs{b, order}
}

// Get returns the i'th 64-bit word. Like RawData, it never panics: an
// out-of-range index returns 0.
func (r RawRegs) Get(i int) uint64 {
	off := i * 8
	if off < 0 || off+8 > len(r.b) {
		return 0
	}
	return r.order.Uint64(r.b[off:])
}

// Len returns the number of complete 64-bit words in the view.
func (r RawRegs) Len() int {
	return len(r.b) / 8
}
