// Package etw decodes the Windows Event Tracing schema blob
// (TRACE_EVENT_INFO, as returned by TdhGetEventInformation) into typed
// provider/task/opcode identity and per-property metadata.
//
// It does not call TdhGetEventInformation itself, does not open an ETW
// session or consume EVENT_RECORD payloads, and does not decode a
// property's value against its type — only the schema that describes
// how a caller would do so. Value-map (enum/bitmap) resolution is the
// one operation here that reaches out to the OS, via
// TdhGetEventMapInformation; everything else is a pure read over the
// supplied buffer.
package etw
