// Package perfevent decodes Linux perf_event_open ring-buffer records
// into a typed, format-independent Event value.
//
// Decoding starts from a RawEvent — the record's kind, misc flags, and
// body bytes, exactly as they arrive in the ring buffer — plus the
// SessionParams describing how the session that produced the record was
// configured (which optional sample fields are present, the register
// count and mask, and so on). Decode reads the body strictly in the
// order the kernel writes it; sample_type and read_format are bitmasks,
// so which fields are present depends entirely on the caller-supplied
// SessionParams, not on anything in the record itself.
//
// This package does not open perf.data files, does not track event
// attribute IDs across a whole session, and does not interpret
// callchains or build IDs beyond exposing them as Go values. Those are
// all a session's concern, not a single record's.
package perfevent // import "github.com/jrmuizel/samply/perfevent"
