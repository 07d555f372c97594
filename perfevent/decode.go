package perfevent

import "encoding/binary"

// RawEvent is one record straight off the ring buffer: its header
// (Kind, Misc) and body bytes (Data), with no interpretation applied
// yet.
type RawEvent struct {
	Kind RecordKind
	Misc uint16
	Data []byte
}

// SessionParams describes how the perf_event_open session that
// produced a RawEvent was configured. Decode needs these to know
// which optional sample fields are present and how wide the register
// arrays are; none of this is recoverable from a single record.
type SessionParams struct {
	// Order is the byte order the session recorded in. The kernel
	// never mixes byte orders within one session, so this is
	// supplied by the caller rather than inferred per-record.
	Order binary.ByteOrder

	SampleFormat SampleFormat
	ReadFormat   ReadFormat

	// RegsCount is the number of 64-bit words present whenever a
	// PERF_SAMPLE_REGS_USER/INTR array with a nonzero ABI is
	// recorded; it's the population count of the session's
	// requested register mask.
	RegsCount int

	// SampleRegsUser is the bitmask of registers
	// PERF_SAMPLE_REGS_USER was configured to capture.
	SampleRegsUser uint64
}

// Validate reports whether p is self-consistent enough to decode
// with: a byte order must be supplied, and a negative register count
// can never correspond to a real session.
func (p SessionParams) Validate() error {
	if p.Order == nil {
		return errNoByteOrder
	}
	if p.RegsCount < 0 {
		return errNegativeRegsCount
	}
	return nil
}

// Decode parses raw into an Event according to p. Unknown record
// kinds decode to *RawEventRecord rather than failing: per §7, an
// unrecognized kind is not an error, it's the contract for records
// this package doesn't need to interpret. A structural failure —
// a field read running past the end of raw.Data — surfaces as a
// non-nil error; Decode never panics.
func Decode(raw RawEvent, p SessionParams) (Event, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := newCursor(raw.Data, p.Order)

	var ev Event
	switch raw.Kind {
	case RecordKindExit, RecordKindFork:
		ev = decodeProcessEvent(c, raw.Kind)
	case RecordKindComm:
		ev = decodeComm(c, raw.Misc)
	case RecordKindMmap:
		ev = decodeMmap(c, raw.Misc)
	case RecordKindMmap2:
		ev = decodeMmap2(c, raw.Misc)
	case RecordKindLost:
		ev = decodeLost(c)
	case RecordKindThrottle, RecordKindUnthrottle:
		ev = decodeThrottle(c, raw.Kind)
	case RecordKindSwitch:
		ev = decodeSwitch(raw.Misc)
	case RecordKindSample:
		ev = decodeSample(c, p)
	default:
		ev = &RawEventRecord{Kind: raw.Kind, Misc: raw.Misc, Data: rawDataOf(raw.Data)}
	}

	if c.err != nil {
		return nil, c.err
	}
	return ev, nil
}

func decodeProcessEvent(c *cursor, kind RecordKind) Event {
	p := ProcessEvent{
		PID:       c.i32("pid"),
		PPID:      c.i32("ppid"),
		TID:       c.i32("tid"),
		PTID:      c.i32("ptid"),
		Timestamp: c.u64("timestamp"),
	}
	if kind == RecordKindExit {
		return &ExitEvent{p}
	}
	return &ForkEvent{p}
}

func decodeComm(c *cursor, misc uint16) *CommEvent {
	pid := c.i32("pid")
	tid := c.i32("tid")
	name := c.cstring()
	return &CommEvent{
		PID:      pid,
		TID:      tid,
		Name:     name,
		IsExecve: misc&uint16(recordMiscCommExec) != 0,
	}
}

func decodeMmap(c *cursor, misc uint16) *MmapEvent {
	pid := c.i32("pid")
	tid := c.i32("tid")
	addr := c.u64("address")
	length := c.u64("length")
	pgoff := c.u64("page_offset")
	path := c.cstring()

	e := &MmapEvent{
		PID: pid, TID: tid,
		Address: addr, Length: length, PgOff: pgoff,
		IsExecutable: misc&uint16(recordMiscMmapData) == 0,
		Path:         path,
	}
	e.DsoKey, e.HasDsoKey = detectDso(path, misc)
	return e
}

func decodeMmap2(c *cursor, misc uint16) *Mmap2Event {
	pid := c.i32("pid")
	tid := c.i32("tid")
	addr := c.u64("address")
	length := c.u64("length")
	pgoff := c.u64("page_offset")

	var fileID Mmap2FileID
	if misc&uint16(recordMiscMmapBuildID) != 0 {
		buildIDLen := c.u8("build_id_len")
		_ = c.u8("reserved1")
		_ = c.u16("reserved2")
		// The on-disk build-id region is always exactly 20 bytes;
		// only the first buildIDLen of them are the identifier.
		region := c.bytes("build_id", 20)
		if int(buildIDLen) > len(region) {
			buildIDLen = uint8(len(region))
		}
		id := make([]byte, buildIDLen)
		copy(id, region[:buildIDLen])
		fileID = Mmap2FileID{HasBuildID: true, BuildID: id}
	} else {
		major := c.u32("major")
		minor := c.u32("minor")
		ino := c.u64("ino")
		inoGen := c.u64("ino_generation")
		fileID = Mmap2FileID{Major: major, Minor: minor, Ino: ino, InoGeneration: inoGen}
	}

	protection := c.u32("protection")
	flags := c.u32("flags")
	path := c.cstring()

	e := &Mmap2Event{
		PID: pid, TID: tid,
		Address: addr, Length: length, PgOff: pgoff,
		FileID:     fileID,
		Protection: protection, Flags: flags,
		Path: path,
	}
	e.DsoKey, e.HasDsoKey = detectDso(path, misc)
	return e
}

func decodeLost(c *cursor) *LostEvent {
	return &LostEvent{ID: c.u64("id"), Count: c.u64("count")}
}

func decodeThrottle(c *cursor, kind RecordKind) Event {
	timestamp := c.u64("timestamp")
	id := c.u64("id")
	t := ThrottleEvent{ID: id, Timestamp: timestamp}
	if kind == RecordKindThrottle {
		return &ThrottleBeginEvent{t}
	}
	return &ThrottleEndEvent{t}
}

func decodeSwitch(misc uint16) *ContextSwitchEvent {
	isOut := misc&uint16(recordMiscSwitchOut) != 0
	isOutPreempt := misc&uint16(recordMiscSwitchOutPreempt) != 0
	kind := ContextSwitchIn
	if isOut {
		if isOutPreempt {
			kind = ContextSwitchOutWhileRunning
		} else {
			kind = ContextSwitchOutWhileIdle
		}
	}
	return &ContextSwitchEvent{Kind: kind}
}

// decodeSample parses the PERF_RECORD_SAMPLE body. Every field is
// read in the exact order the kernel writes it, gated on its
// SampleFormat bit; this order is the wire format, not an
// implementation choice, so it must never be reordered for apparent
// convenience.
func decodeSample(c *cursor, p SessionParams) *SampleEvent {
	t := p.SampleFormat
	var e SampleEvent

	c.u64If("identifier", t&SampleFormatIdentifier != 0)
	c.u64If("ip", t&SampleFormatIP != 0)

	if t&SampleFormatTID != 0 {
		pid := c.i32("pid")
		tid := c.i32("tid")
		e.PID, e.TID = &pid, &tid
	}
	if t&SampleFormatTime != 0 {
		ts := c.u64("time")
		e.Timestamp = &ts
	}
	c.u64If("addr", t&SampleFormatAddr != 0)
	c.u64If("id", t&SampleFormatID != 0)
	c.u64If("stream_id", t&SampleFormatStreamID != 0)

	if t&SampleFormatCPU != 0 {
		cpu := c.u32("cpu")
		_ = c.u32("cpu_reserved")
		e.CPU = &cpu
	}
	if t&SampleFormatPeriod != 0 {
		period := c.u64("period")
		e.Period = &period
	}

	if t&SampleFormatRead != 0 {
		decodeReadFormat(c, p.ReadFormat)
	}

	if t&SampleFormatCallchain != 0 {
		n := int(c.u64("callchain_len"))
		e.Callchain = c.u64s("callchain", n)
	}

	rawSize := c.u32If("raw_size", t&SampleFormatRaw != 0)
	c.skip(int(rawSize))

	if t&SampleFormatBranchStack != 0 {
		nr := c.u64("branch_nr")
		c.u64If("branch_hw_index", t&branchStackHWIndexFlag(p) != 0)
		for i := uint64(0); i < nr && c.err == nil; i++ {
			c.u64("branch_from")
			c.u64("branch_to")
			c.u64("branch_flags")
		}
	}

	if t&SampleFormatRegsUser != 0 {
		abi := c.u64("regs_user_abi")
		if abi != 0 {
			words := c.bytes("regs_user", p.RegsCount*8)
			regs := NewRegs(p.SampleRegsUser, rawRegsOf(words, p.Order))
			e.Regs = &regs
		}
	}

	if t&SampleFormatStackUser != 0 {
		size := int(c.u64("stack_user_size"))
		e.Stack = c.rawData("stack_user", size)
		if size != 0 {
			e.DynamicStackSize = c.u64("stack_user_dyn_size")
		}
	} else {
		e.Stack = emptyRawData
	}

	c.u64If("weight", t&SampleFormatWeight != 0)
	c.u64If("data_src", t&SampleFormatDataSrc != 0)
	c.u64If("transaction", t&SampleFormatTransaction != 0)

	if t&SampleFormatRegsIntr != 0 {
		abi := c.u64("regs_intr_abi")
		if abi != 0 {
			c.skip(p.RegsCount * 8)
		}
	}

	c.u64If("phys_addr", t&SampleFormatPhysAddr != 0)

	if t&SampleFormatAux != 0 {
		size := c.u64("aux_size")
		c.skip(int(size))
	}

	c.u64If("data_page_size", t&SampleFormatDataPageSize != 0)
	c.u64If("code_page_size", t&SampleFormatCodePageSize != 0)

	return &e
}

// branchStackHWIndexFlag isolates whether a PERF_SAMPLE_BRANCH_STACK
// record carries a leading hw_idx word. In the kernel,
// PERF_SAMPLE_BRANCH_HW_INDEX is a branch_sample_type bit, not a
// sample_type bit; SessionParams has no branch_sample_type field, so
// this decoder reads the flag out of p.SampleFormat instead.
func branchStackHWIndexFlag(p SessionParams) SampleFormat {
	return p.SampleFormat & sampleFormatBranchHWIndex
}

// sampleFormatBranchHWIndex is the SampleFormat bit this decoder tests
// for PERF_SAMPLE_BRANCH_HW_INDEX. It's kept separate from the
// SampleFormat const block because it is not a kernel sample_type bit
// and doesn't gate a field of its own — it only ever modifies the
// layout of the branch stack sub-record.
const sampleFormatBranchHWIndex SampleFormat = 1 << 25

// decodeReadFormat consumes a PERF_SAMPLE_READ sub-record. None of its
// fields appear on SampleEvent — like the session's event-group
// composition itself, per-counter read values are a session-level
// concern, not part of this decoder's per-record output — so this
// only needs to advance the cursor by the right amount.
func decodeReadFormat(c *cursor, f ReadFormat) {
	if f&ReadFormatGroup == 0 {
		c.u64("read_value")
		c.u64If("read_time_enabled", f&ReadFormatTotalTimeEnabled != 0)
		c.u64If("read_time_running", f&ReadFormatTotalTimeRunning != 0)
		c.u64If("read_id", f&ReadFormatID != 0)
		return
	}

	nr := c.u64("read_nr")
	c.u64If("read_time_enabled", f&ReadFormatTotalTimeEnabled != 0)
	c.u64If("read_time_running", f&ReadFormatTotalTimeRunning != 0)
	for i := uint64(0); i < nr && c.err == nil; i++ {
		c.u64("read_value")
		c.u64If("read_id", f&ReadFormatID != 0)
	}
}
