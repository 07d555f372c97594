package etw

import "github.com/google/uuid"

// guidFromBytes interprets a 16-byte Windows GUID (as laid out by the
// GUID/CLSID C struct: Data1 and Data2/Data3 little-endian, Data4
// verbatim) as a uuid.UUID. RFC 4122 stores the same 16 bytes
// big-endian throughout, so the first three fields need a byte-order
// swap; the trailing 8 bytes of Data4 are already in the right order
// in both representations.
func guidFromBytes(b []byte) uuid.UUID {
	var u uuid.UUID
	if len(b) < 16 {
		return u
	}
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:16], b[8:16])
	return u
}
