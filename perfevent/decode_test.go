package perfevent

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() SessionParams {
	return SessionParams{Order: binary.LittleEndian}
}

func TestDecodeFork(t *testing.T) {
	data := []byte{
		0x01, 0, 0, 0, // pid
		0x02, 0, 0, 0, // ppid
		0x03, 0, 0, 0, // tid
		0x04, 0, 0, 0, // ptid
		0x10, 0, 0, 0, 0, 0, 0, 0, // timestamp
	}
	ev, err := Decode(RawEvent{Kind: RecordKindFork, Data: data}, defaultParams())
	require.NoError(t, err)

	fork, ok := ev.(*ForkEvent)
	require.True(t, ok)
	assert.Equal(t, int32(1), fork.PID)
	assert.Equal(t, int32(2), fork.PPID)
	assert.Equal(t, int32(3), fork.TID)
	assert.Equal(t, int32(4), fork.PTID)
	assert.Equal(t, uint64(16), fork.Timestamp)
}

func TestDecodeCommExecve(t *testing.T) {
	data := []byte{
		0x07, 0, 0, 0, // pid
		0x08, 0, 0, 0, // tid
		'b', 'a', 's', 'h', 0, 0x99, // name, NUL, trailing garbage
	}
	ev, err := Decode(RawEvent{Kind: RecordKindComm, Misc: uint16(recordMiscCommExec), Data: data}, defaultParams())
	require.NoError(t, err)

	comm, ok := ev.(*CommEvent)
	require.True(t, ok)
	assert.Equal(t, int32(7), comm.PID)
	assert.Equal(t, int32(8), comm.TID)
	assert.Equal(t, "bash", string(comm.Name))
	assert.True(t, comm.IsExecve)
}

func TestDecodeCommNameTrimsAtFirstNUL(t *testing.T) {
	data := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	data = append(data, []byte("abc\x00defgh")...)
	ev, err := Decode(RawEvent{Kind: RecordKindComm, Data: data}, defaultParams())
	require.NoError(t, err)
	comm := ev.(*CommEvent)
	assert.Equal(t, "abc", string(comm.Name))
}

func TestDecodeMmapUser(t *testing.T) {
	data := make([]byte, 0, 64)
	buf64 := func(v uint64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v)
		return b
	}
	buf32 := func(v uint32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		return b
	}
	data = append(data, buf32(100)...) // pid
	data = append(data, buf32(100)...) // tid
	data = append(data, buf64(0x400000)...)
	data = append(data, buf64(0x1000)...)
	data = append(data, buf64(0)...)
	data = append(data, []byte("/usr/bin/ls\x00")...)

	ev, err := Decode(RawEvent{Kind: RecordKindMmap, Misc: miscWithCPUMode(CPUModeUser), Data: data}, defaultParams())
	require.NoError(t, err)

	mmap, ok := ev.(*MmapEvent)
	require.True(t, ok)
	assert.Equal(t, int32(100), mmap.PID)
	assert.Equal(t, int32(100), mmap.TID)
	assert.Equal(t, uint64(0x400000), mmap.Address)
	assert.Equal(t, uint64(0x1000), mmap.Length)
	assert.True(t, mmap.IsExecutable)
	require.True(t, mmap.HasDsoKey)
	assert.Equal(t, DsoUser, mmap.DsoKey.Kind)
	assert.Equal(t, "ls", mmap.DsoKey.Name)
	assert.Equal(t, "/usr/bin/ls", mmap.DsoKey.Path)
}

func TestDecodeSampleTidTimeCallchain(t *testing.T) {
	var data []byte
	put64 := func(v uint64) {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v)
		data = append(data, b...)
	}
	put32 := func(v uint32) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		data = append(data, b...)
	}
	put32(1) // pid
	put32(1) // tid
	put64(42) // time
	put64(2)  // callchain len
	put64(0xAA)
	put64(0xBB)

	p := defaultParams()
	p.SampleFormat = SampleFormatTID | SampleFormatTime | SampleFormatCallchain

	ev, err := Decode(RawEvent{Kind: RecordKindSample, Data: data}, p)
	require.NoError(t, err)

	s, ok := ev.(*SampleEvent)
	require.True(t, ok)
	require.NotNil(t, s.PID)
	require.NotNil(t, s.TID)
	assert.Equal(t, int32(1), *s.PID)
	assert.Equal(t, int32(1), *s.TID)
	require.NotNil(t, s.Timestamp)
	assert.Equal(t, uint64(42), *s.Timestamp)
	assert.Nil(t, s.CPU)
	assert.Nil(t, s.Period)
	assert.Nil(t, s.Regs)
	assert.Equal(t, []uint64{0xAA, 0xBB}, s.Callchain)
	assert.Equal(t, 0, s.Stack.Len())
	assert.Equal(t, uint64(0), s.DynamicStackSize)
}

func TestDecodeSwitchOutWhilePreempt(t *testing.T) {
	misc := uint16(recordMiscSwitchOut) | uint16(recordMiscSwitchOutPreempt)
	ev, err := Decode(RawEvent{Kind: RecordKindSwitch, Misc: misc, Data: nil}, defaultParams())
	require.NoError(t, err)

	sw, ok := ev.(*ContextSwitchEvent)
	require.True(t, ok)
	assert.Equal(t, ContextSwitchOutWhileRunning, sw.Kind)
}

func TestDecodeMmap2BuildIDAlwaysTwentyBytes(t *testing.T) {
	var data []byte
	put32 := func(v uint32) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		data = append(data, b...)
	}
	put64 := func(v uint64) {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v)
		data = append(data, b...)
	}
	put32(1)          // pid
	put32(1)          // tid
	put64(0x1000)     // address
	put64(0x2000)     // length
	put64(0)          // page_offset

	data = append(data, 4)    // build_id_len
	data = append(data, 0)    // reserved1
	data = append(data, 0, 0) // reserved2
	region := make([]byte, 20)
	copy(region, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	data = append(data, region...)

	put32(5) // protection
	put32(6) // flags
	data = append(data, []byte("/lib/x.so\x00")...)

	ev, err := Decode(RawEvent{Kind: RecordKindMmap2, Misc: uint16(recordMiscMmapBuildID), Data: data}, defaultParams())
	require.NoError(t, err)

	mmap2, ok := ev.(*Mmap2Event)
	require.True(t, ok)
	require.True(t, mmap2.FileID.HasBuildID)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, mmap2.FileID.BuildID)
}

func TestDecodeTruncatedRecordSurfacesError(t *testing.T) {
	_, err := Decode(RawEvent{Kind: RecordKindFork, Data: []byte{1, 2, 3}}, defaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeUnknownKindIsRaw(t *testing.T) {
	ev, err := Decode(RawEvent{Kind: RecordKind(999), Data: []byte{1, 2, 3}}, defaultParams())
	require.NoError(t, err)
	raw, ok := ev.(*RawEventRecord)
	require.True(t, ok)
	assert.Equal(t, 3, raw.Data.Len())
}

func TestSessionParamsValidate(t *testing.T) {
	p := SessionParams{}
	assert.ErrorIs(t, p.Validate(), errNoByteOrder)

	p.Order = binary.LittleEndian
	p.RegsCount = -1
	assert.ErrorIs(t, p.Validate(), errNegativeRegsCount)

	p.RegsCount = 0
	assert.NoError(t, p.Validate())
}
