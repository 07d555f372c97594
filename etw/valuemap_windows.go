//go:build windows

package etw

import (
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"
)

var (
	modtdh                        = windows.NewLazySystemDLL("tdh.dll")
	procTdhGetEventMapInformation = modtdh.NewProc("TdhGetEventMapInformation")
)

const errInsufficientBuffer = 122 // ERROR_INSUFFICIENT_BUFFER

// eventRecordSize is large enough to hold a zeroed EVENT_RECORD with
// only EventHeader.ProviderId populated; TdhGetEventMapInformation
// reads nothing else off it.
const eventRecordSize = 128

// eventHeaderProviderIDOffset is the byte offset of EVENT_HEADER.ProviderId
// within EVENT_RECORD (EventHeader is EVENT_RECORD's first field; Size,
// HeaderType, Flags, EventProperty, ThreadId, ProcessId and TimeStamp
// precede ProviderId within EVENT_HEADER).
const eventHeaderProviderIDOffset = 24

// getEventMapInformation calls TdhGetEventMapInformation for mapName
// under providerGUID, following the two-phase probe/allocate protocol
// from §4.4/§9: probe with a null buffer expecting
// ERROR_INSUFFICIENT_BUFFER, then allocate exactly the reported size
// and call again.
func getEventMapInformation(providerGUID uuid.UUID, mapName string) ([]byte, error) {
	event := make([]byte, eventRecordSize)
	copy(event[eventHeaderProviderIDOffset:], guidToWindowsBytes(providerGUID))

	mapNamePtr, err := windows.UTF16PtrFromString(mapName)
	if err != nil {
		return nil, err
	}

	var size uint32
	status, _, _ := procTdhGetEventMapInformation.Call(
		uintptr(unsafe.Pointer(&event[0])),
		uintptr(unsafe.Pointer(mapNamePtr)),
		0,
		uintptr(unsafe.Pointer(&size)),
	)
	if uint32(status) != errInsufficientBuffer {
		return nil, osCallFailuref("TdhGetEventMapInformation(probe)", uint32(status))
	}

	buf := make([]byte, size)
	status, _, _ = procTdhGetEventMapInformation.Call(
		uintptr(unsafe.Pointer(&event[0])),
		uintptr(unsafe.Pointer(mapNamePtr)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if status != 0 {
		return nil, osCallFailuref("TdhGetEventMapInformation", uint32(status))
	}
	return buf, nil
}

// guidToWindowsBytes is the inverse of guidFromBytes: it lays u back
// out in Windows GUID field order (Data1/Data2/Data3 little-endian).
func guidToWindowsBytes(u uuid.UUID) []byte {
	b := make([]byte, 16)
	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	copy(b[8:16], u[8:16])
	return b
}
