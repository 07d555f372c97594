package etw

// Property is one property descriptor decoded out of a
// TraceEventInfo: its name, raw type information straight from
// EVENT_PROPERTY_INFO, and — if it names a manifest value map this
// package understands — the resolved map.
type Property struct {
	Name string

	// Flags, InType, OutType are read directly off the underlying
	// EVENT_PROPERTY_INFO; this package doesn't interpret them beyond
	// the struct-vs-scalar test needed to decide whether a map lookup
	// applies.
	Flags   uint32
	InType  uint16
	OutType uint16

	// Map is the property's resolved value map, or nil if the
	// property has none (MapNameOffset == 0) or its map flag was
	// unsupported. If resolution failed outright (e.g. the OS call
	// itself errored), Map is also nil but TraceEventInfo.Property
	// returns that failure as an error rather than dropping it here.
	Map *ValueMap
}

// ValueMap is a resolved ETW manifest value map: either an
// enumeration (IsBitmap == false) or a flag set (IsBitmap == true),
// each entry a ULONG value paired with its symbolic name.
type ValueMap struct {
	IsBitmap bool
	Entries  map[uint32]string
}

// MapLogger receives a diagnostic whenever a property's value map
// can't be resolved. A nil MapLogger discards diagnostics.
// *zap.SugaredLogger satisfies this directly, so callers can pass one
// straight in without an adapter.
type MapLogger interface {
	Warnf(format string, args ...any)
}
