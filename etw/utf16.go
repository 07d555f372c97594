package etw

import "unicode/utf16"

// utf16StringAt decodes the UTF-16LE string starting at byte offset
// off in buf, terminating at the first zero code unit or the end of
// buf, whichever comes first. Callers must not assume any fixed upper
// bound on the string's length: it's discovered by scanning, matching
// how every offset-addressed name in TRACE_EVENT_INFO is stored.
//
// An offset outside buf, or one that never finds a terminator within
// the remaining bytes, yields whatever could be decoded rather than a
// failure: malformed trailing string data is not reason enough to
// refuse the rest of the schema.
func utf16StringAt(buf []byte, off int) string {
	if off < 0 || off >= len(buf) {
		return ""
	}
	rest := buf[off:]

	var units []uint16
	for i := 0; i+1 < len(rest); i += 2 {
		u := uint16(rest[i]) | uint16(rest[i+1])<<8
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
