package etw

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// EVENT_MAP_INFO layout (tdh.h): a fixed 16-byte header followed by
// EntryCount EVENT_MAP_ENTRY records, 8 bytes each.
const (
	mapInfoOffNameOffset  = 0
	mapInfoOffFlag        = 4
	mapInfoOffEntryCount  = 8
	mapInfoOffValueType   = 12
	mapInfoHeaderSize     = 16
	mapEntrySize          = 8
	mapEntryOffOutputOff  = 0
	mapEntryOffValue      = 4
	mapInfoFlagValueMap   = 1
	mapInfoFlagBitmap     = 2
	mapEntryValueTypeULong = 0
)

// resolveValueMap looks up the manifest value map named mapName for
// the provider identified by providerGUID, via the OS TDH service, and
// decodes it into a ValueMap. Per §7/§9, an unsupported map flag is
// not an error: it degrades to (nil, nil) with a diagnostic logged.
func resolveValueMap(providerGUID uuid.UUID, mapName string, logger MapLogger) (*ValueMap, error) {
	buf, err := getEventMapInformation(providerGUID, mapName)
	if err != nil {
		return nil, err
	}
	return parseEventMapInfo(buf, logger)
}

// parseEventMapInfo decodes a buffer returned by
// TdhGetEventMapInformation. Only VALUEMAP and BITMAP maps with ULONG
// entry values are supported, matching §4.4; anything else logs a
// diagnostic and returns (nil, nil) rather than falling through
// silently.
func parseEventMapInfo(buf []byte, logger MapLogger) (*ValueMap, error) {
	if len(buf) < mapInfoHeaderSize {
		return nil, nil
	}
	flag := binary.LittleEndian.Uint32(buf[mapInfoOffFlag:])

	if flag != mapInfoFlagValueMap && flag != mapInfoFlagBitmap {
		if logger != nil {
			logger.Warnf("etw: unsupported event map flag %#x", flag)
		}
		return nil, nil
	}

	valueType := binary.LittleEndian.Uint32(buf[mapInfoOffValueType:])
	if valueType != mapEntryValueTypeULong {
		if logger != nil {
			logger.Warnf("etw: unsupported event map entry value type %d", valueType)
		}
		return nil, nil
	}

	count := binary.LittleEndian.Uint32(buf[mapInfoOffEntryCount:])
	entries := make(map[uint32]string, count)
	for i := uint32(0); i < count; i++ {
		off := mapInfoHeaderSize + int(i)*mapEntrySize
		if off+mapEntrySize > len(buf) {
			break
		}
		value := binary.LittleEndian.Uint32(buf[off+mapEntryOffValue:])
		outputOff := binary.LittleEndian.Uint32(buf[off+mapEntryOffOutputOff:])
		entries[value] = utf16StringAt(buf, int(outputOff))
	}

	return &ValueMap{IsBitmap: flag == mapInfoFlagBitmap, Entries: entries}, nil
}
