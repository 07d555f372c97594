package etw

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// TraceEventInfo is a logical view over a TRACE_EVENT_INFO buffer, as
// returned by TdhGetEventInformation: a fixed header, followed by
// PropertyCount EVENT_PROPERTY_INFO descriptors, followed by a pool of
// NUL-terminated UTF-16 strings the header and descriptors point into
// by byte offset. It never copies buf; every accessor reads straight
// out of it.
type TraceEventInfo struct {
	buf []byte
}

// New wraps buf as a TraceEventInfo. buf must outlive the returned
// value, since names are decoded lazily on each accessor call rather
// than up front; the strings an accessor returns are copies and do
// not depend on buf.
func New(buf []byte) *TraceEventInfo {
	return &TraceEventInfo{buf: buf}
}

func (t *TraceEventInfo) u32At(off int) uint32 {
	if off < 0 || off+4 > len(t.buf) {
		return 0
	}
	return binary.LittleEndian.Uint32(t.buf[off:])
}

func (t *TraceEventInfo) u16At(off int) uint16 {
	if off < 0 || off+2 > len(t.buf) {
		return 0
	}
	return binary.LittleEndian.Uint16(t.buf[off:])
}

func (t *TraceEventInfo) u8At(off int) uint8 {
	if off < 0 || off >= len(t.buf) {
		return 0
	}
	return t.buf[off]
}

// ProviderGUID is the GUID of the provider that logged the event.
func (t *TraceEventInfo) ProviderGUID() uuid.UUID {
	return guidFromBytes(t.sliceAt(offProviderGUID, 16))
}

func (t *TraceEventInfo) sliceAt(off, n int) []byte {
	if off < 0 || off+n > len(t.buf) {
		return nil
	}
	return t.buf[off : off+n]
}

// EventID is the manifest-defined event identifier.
func (t *TraceEventInfo) EventID() uint16 {
	return t.u16At(offEventDescriptor + descOffID)
}

// Opcode is the event's opcode byte (EVENT_DESCRIPTOR.Opcode).
func (t *TraceEventInfo) Opcode() uint8 {
	return t.u8At(offEventDescriptor + descOffOpcode)
}

// EventVersion is the event's schema version byte.
func (t *TraceEventInfo) EventVersion() uint8 {
	return t.u8At(offEventDescriptor + descOffVersion)
}

// Level is the event's severity level byte.
func (t *TraceEventInfo) Level() uint8 {
	return t.u8At(offEventDescriptor + descOffLevel)
}

// DecodingSource reports which schema format (manifest XML, WBEM/MOF,
// WPP, TraceLogging) produced this blob.
func (t *TraceEventInfo) DecodingSource() DecodingSource {
	return decodingSourceFromU32(t.u32At(offDecodingSource))
}

// ProviderName is the provider's human-readable name.
func (t *TraceEventInfo) ProviderName() string {
	return utf16StringAt(t.buf, int(t.u32At(offProviderNameOffset)))
}

// TaskName is the task's human-readable name.
func (t *TraceEventInfo) TaskName() string {
	return utf16StringAt(t.buf, int(t.u32At(offTaskNameOffset)))
}

// OpcodeName is the opcode's human-readable name, or the empty string
// if the event carries no opcode name (OpcodeNameOffset == 0).
func (t *TraceEventInfo) OpcodeName() string {
	off := t.u32At(offOpcodeNameOffset)
	if off == 0 {
		return ""
	}
	return utf16StringAt(t.buf, int(off))
}

// PropertyCount is the number of top-level property descriptors
// trailing the header.
func (t *TraceEventInfo) PropertyCount() uint32 {
	return t.u32At(offPropertyCount)
}

// descriptorOffset returns the byte offset of property i's
// EVENT_PROPERTY_INFO, per the trailing-flexible-array-member layout:
// the header declares a one-element array, so the true offset of
// element i is sizeof(TRACE_EVENT_INFO) minus one descriptor width
// (traceEventInfoFixedSize), plus i descriptor widths.
func descriptorOffset(i uint32) int {
	return traceEventInfoFixedSize + int(i)*eventPropertyInfoSize
}

// Property decodes the i-th property descriptor, i ∈ [0, PropertyCount).
// logger receives a diagnostic if the property carries a value map this
// package cannot interpret (an unsupported map flag or entry type); a
// nil logger discards it. A non-nil error is an OsCallFailure from
// resolving the property's value map — per §7 this must surface to the
// caller rather than be silently dropped, so Property still returns
// the rest of the descriptor alongside it.
func (t *TraceEventInfo) Property(i uint32, logger MapLogger) (Property, error) {
	if i >= t.PropertyCount() {
		return Property{}, nil
	}
	off := descriptorOffset(i)

	flags := t.u32At(off + propOffFlags)
	name := utf16StringAt(t.buf, int(t.u32At(off+propOffNameOffset)))

	p := Property{
		Name:    name,
		Flags:   flags,
		InType:  t.u16At(off + propOffInType),
		OutType: t.u16At(off + propOffOutType),
	}

	if flags&propertyFlagStruct != 0 {
		return p, nil
	}
	mapNameOff := int32(t.u32At(off + propOffMapNameOffset))
	if mapNameOff == 0 {
		return p, nil
	}

	mapName := utf16StringAt(t.buf, int(mapNameOff))
	m, err := resolveValueMap(t.ProviderGUID(), mapName, logger)
	if err != nil {
		if logger != nil {
			logger.Warnf("etw: resolving value map %q for property %q: %v", mapName, name, err)
		}
		return p, err
	}
	p.Map = m
	return p, nil
}
