package perfevent

// RecordKind is the on-disk perf_event_header.type of a record. This
// corresponds to the perf_event_type enum from
// include/uapi/linux/perf_event.h.
type RecordKind uint32

const (
	RecordKindMmap       RecordKind = 1
	RecordKindLost       RecordKind = 2
	RecordKindComm       RecordKind = 3
	RecordKindExit       RecordKind = 4
	RecordKindThrottle   RecordKind = 5
	RecordKindUnthrottle RecordKind = 6
	RecordKindFork       RecordKind = 7
	RecordKindRead       RecordKind = 8
	RecordKindSample     RecordKind = 9
	RecordKindMmap2      RecordKind = 10
	RecordKindSwitch     RecordKind = 14
)

// recordMisc is the on-disk perf_event_header.misc bitmask. This
// corresponds to the PERF_RECORD_MISC_* macros from
// include/uapi/linux/perf_event.h.
type recordMisc uint16

const (
	recordMiscCPUModeMask recordMisc = 7

	recordMiscMmapData  recordMisc = 1 << 13 // RecordKindMmap/Mmap2 events
	recordMiscCommExec  recordMisc = 1 << 13 // RecordKindComm events
	recordMiscSwitchOut recordMisc = 1 << 13 // RecordKindSwitch events

	// recordMiscSwitchOutPreempt applies to RecordKindSwitch
	// records. It indicates that the thread was preempted in a
	// TASK_RUNNING state rather than blocking voluntarily.
	recordMiscSwitchOutPreempt recordMisc = 1 << 14

	// recordMiscMmapBuildID applies to RecordKindMmap2 records. It
	// indicates the event carries a build ID rather than an
	// inode/device pair.
	recordMiscMmapBuildID recordMisc = 1 << 14

	// recordMiscCommExec's bit doubles as recordMiscForkExec on Fork
	// records (perf-tool internal use), unused by this decoder.
)

// CPUMode indicates the privilege level the record was captured in
// (hdr.Misc & recordMiscCPUModeMask). This corresponds to
// PERF_RECORD_MISC_CPUMODE_* from include/uapi/linux/perf_event.h.
type CPUMode uint16

const (
	CPUModeUnknown CPUMode = iota
	CPUModeKernel
	CPUModeUser
	CPUModeHypervisor
	CPUModeGuestKernel
	CPUModeGuestUser
)

// SampleFormat is a bitmask of the fields recorded by a sample. This
// corresponds to the perf_event_sample_format enum from
// include/uapi/linux/perf_event.h.
type SampleFormat uint64

const (
	SampleFormatIP SampleFormat = 1 << iota
	SampleFormatTID
	SampleFormatTime
	SampleFormatAddr
	SampleFormatRead
	SampleFormatCallchain
	SampleFormatID
	SampleFormatCPU
	SampleFormatPeriod
	SampleFormatStreamID
	SampleFormatRaw
	SampleFormatBranchStack
	SampleFormatRegsUser
	SampleFormatStackUser
	SampleFormatWeight
	SampleFormatDataSrc
	SampleFormatIdentifier
	SampleFormatTransaction
	SampleFormatRegsIntr
	SampleFormatPhysAddr
	SampleFormatAux
	SampleFormatCGroup
	SampleFormatDataPageSize
	SampleFormatCodePageSize
)

// ReadFormat is a bitmask of the fields present in the PERF_SAMPLE_READ
// sub-record. This corresponds to the perf_event_read_format enum
// from include/uapi/linux/perf_event.h.
type ReadFormat uint64

const (
	ReadFormatTotalTimeEnabled ReadFormat = 1 << iota
	ReadFormatTotalTimeRunning
	ReadFormatID
	ReadFormatGroup
)
