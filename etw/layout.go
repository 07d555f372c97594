package etw

// Byte offsets and sizes below mirror the published TDH TRACE_EVENT_INFO
// and EVENT_PROPERTY_INFO layouts (tdh.h). Go has no struct-overlay-on-bytes
// equivalent to the Rust source's `#[repr(C)]` cast, so each field is named
// as a documented fixed offset and read directly out of the buffer, the
// same way the teacher's perffile/format.go names on-disk perf structures
// (eventAttrV0, fileHeader) as commented offset tables rather than typed
// overlays.
const (
	// traceEventInfoFixedSize is sizeof(TRACE_EVENT_INFO) minus the
	// one EVENT_PROPERTY_INFO the struct declares inline as its
	// trailing flexible array member — i.e. the byte offset at which
	// property 0's descriptor begins.
	traceEventInfoFixedSize = 112

	eventPropertyInfoSize = 24

	offProviderGUID       = 0  // GUID, 16 bytes
	offEventGUID          = 16 // GUID, 16 bytes
	offEventDescriptor    = 32 // EVENT_DESCRIPTOR, 16 bytes
	offDecodingSource     = 48 // DECODING_SOURCE (u32)
	offProviderNameOffset = 52
	offLevelNameOffset    = 56
	offChannelNameOffset  = 60
	offKeywordsOffset     = 64
	offTaskNameOffset     = 68
	offOpcodeNameOffset   = 72
	offEventMessageOffset = 76
	offProviderMsgOffset  = 80
	offBinaryXMLOffset    = 84
	offBinaryXMLSize      = 88
	offActivityIDNameOff  = 92
	offRelatedActIDOff    = 96
	offPropertyCount      = 100
	offTopLevelPropCount  = 104
	offFlags              = 108

	// EVENT_DESCRIPTOR fields, relative to offEventDescriptor.
	descOffID      = 0 // u16
	descOffVersion = 2 // u8
	descOffChannel = 3 // u8
	descOffLevel   = 4 // u8
	descOffOpcode  = 5 // u8
	descOffTask    = 6 // u16
	descOffKeyword = 8 // u64

	// EVENT_PROPERTY_INFO fields, relative to a property's own offset.
	propOffFlags         = 0  // u32, PROPERTY_FLAGS
	propOffNameOffset    = 4  // u32
	propOffInType        = 8  // u16 (non-struct union)
	propOffOutType       = 10 // u16 (non-struct union)
	propOffMapNameOffset = 12 // i32 (non-struct union)

	// propertyFlagStruct marks a property whose type is a nested
	// struct of other properties rather than a scalar; such
	// properties have no MapNameOffset to resolve.
	propertyFlagStruct = 0x1
)

// DecodingSource is the ETW DECODING_SOURCE enum: which schema format
// produced this TRACE_EVENT_INFO.
type DecodingSource uint32

const (
	DecodingSourceXMLFile DecodingSource = iota
	DecodingSourceWbem
	DecodingSourceWPP
	DecodingSourceTlg
	DecodingSourceMax
)

func (d DecodingSource) String() string {
	switch d {
	case DecodingSourceXMLFile:
		return "XMLFile"
	case DecodingSourceWbem:
		return "Wbem"
	case DecodingSourceWPP:
		return "WPP"
	case DecodingSourceTlg:
		return "Tlg"
	default:
		return "Max"
	}
}

func decodingSourceFromU32(v uint32) DecodingSource {
	if v > uint32(DecodingSourceTlg) {
		return DecodingSourceMax
	}
	return DecodingSource(v)
}
