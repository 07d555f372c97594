package perfevent

import "fmt"

// Event is the tagged union of decoded perf records. Every concrete
// type in this package that represents a decoded record implements
// Event; switch on the dynamic type to handle a specific variant, the
// same way callers of the teacher's Record interface switch on
// *RecordMmap, *RecordComm, and so on.
type Event interface {
	isEvent()
	fmt.Stringer
}

// SampleEvent is a PERF_RECORD_SAMPLE record. Every field but
// DynamicStackSize and Stack is optional: its presence is controlled
// by the SessionParams.SampleFormat bit the caller supplied, not by
// anything in the record itself.
type SampleEvent struct {
	Timestamp *uint64
	PID, TID  *int32
	CPU       *uint32
	Period    *uint64
	Regs      *Regs

	// DynamicStackSize is the kernel-reported live portion of
	// Stack; it is 0 whenever Stack is empty.
	DynamicStackSize uint64
	Stack            RawData

	Callchain []uint64
}

func (*SampleEvent) isEvent() {}

func (e *SampleEvent) String() string {
	s := "{"
	if e.Timestamp != nil {
		s += fmt.Sprintf("Timestamp:%d ", *e.Timestamp)
	}
	if e.PID != nil {
		s += fmt.Sprintf("PID:%d TID:%d ", *e.PID, *e.TID)
	}
	if e.CPU != nil {
		s += fmt.Sprintf("CPU:%d ", *e.CPU)
	}
	if e.Period != nil {
		s += fmt.Sprintf("Period:%d ", *e.Period)
	}
	if e.Regs != nil {
		s += fmt.Sprintf("Regs:%v ", *e.Regs)
	}
	s += fmt.Sprintf("DynamicStackSize:%d StackLen:%d", e.DynamicStackSize, e.Stack.Len())
	if e.Callchain != nil {
		s += fmt.Sprintf(" Callchain:%#x", e.Callchain)
	}
	return s + "}"
}

// CommEvent is a PERF_RECORD_COMM record: a process or thread (re)set
// its name, typically because of an execve.
type CommEvent struct {
	PID, TID int32
	Name     []byte
	IsExecve bool
}

func (*CommEvent) isEvent() {}

func (e *CommEvent) String() string {
	return fmt.Sprintf("{PID:%d TID:%d Name:%q IsExecve:%v}", e.PID, e.TID, e.Name, e.IsExecve)
}

// ProcessEvent carries the fields common to Exit and Fork records.
type ProcessEvent struct {
	PID, PPID, TID, PTID int32
	Timestamp            uint64
}

func (e ProcessEvent) String() string {
	return fmt.Sprintf("{PID:%d PPID:%d TID:%d PTID:%d Timestamp:%d}", e.PID, e.PPID, e.TID, e.PTID, e.Timestamp)
}

// ExitEvent is a PERF_RECORD_EXIT record.
type ExitEvent struct{ ProcessEvent }

func (*ExitEvent) isEvent() {}

// ForkEvent is a PERF_RECORD_FORK record.
type ForkEvent struct{ ProcessEvent }

func (*ForkEvent) isEvent() {}

// Mmap2FileID is the union of ways a Mmap2Event identifies the backing
// file: either a device/inode pair, or a build ID. Exactly one of
// the device/inode fields (Major, Minor, Ino, InoGeneration) and
// BuildID is populated, signaled by HasBuildID.
type Mmap2FileID struct {
	HasBuildID bool

	Major, Minor       uint32
	Ino, InoGeneration uint64

	// BuildID holds only the first build_id_len bytes of content hash
	// actually present; the on-disk region is always 20 bytes
	// regardless of the record's build_id_len.
	BuildID []byte
}

func (f Mmap2FileID) String() string {
	if f.HasBuildID {
		return fmt.Sprintf("BuildID:%x", f.BuildID)
	}
	return fmt.Sprintf("Major:%d Minor:%d Ino:%d InoGeneration:%d", f.Major, f.Minor, f.Ino, f.InoGeneration)
}

// MmapEvent is a PERF_RECORD_MMAP record. The kernel stopped emitting
// these in favor of Mmap2Event, except synthetic records for the
// kernel image itself (pid -1), which `perf record` still emits as
// plain Mmap, not Mmap2.
type MmapEvent struct {
	PID, TID               int32
	Address, Length, PgOff uint64
	IsExecutable           bool
	DsoKey                 DsoKey
	HasDsoKey              bool
	Path                   []byte
}

func (*MmapEvent) isEvent() {}

func (e *MmapEvent) String() string {
	s := fmt.Sprintf("{PID:%d TID:%d Address:%#x Length:%#x PgOff:%#x IsExecutable:%v",
		e.PID, e.TID, e.Address, e.Length, e.PgOff, e.IsExecutable)
	if e.HasDsoKey {
		s += fmt.Sprintf(" DsoKey:%v", e.DsoKey)
	}
	return s + fmt.Sprintf(" Path:%q}", e.Path)
}

// Mmap2Event is a PERF_RECORD_MMAP2 record: the modern replacement for
// MmapEvent, additionally carrying file identity and mapping
// protection/flags.
type Mmap2Event struct {
	PID, TID               int32
	Address, Length, PgOff uint64
	FileID                 Mmap2FileID
	Protection, Flags      uint32
	DsoKey                 DsoKey
	HasDsoKey              bool
	Path                   []byte
}

func (*Mmap2Event) isEvent() {}

func (e *Mmap2Event) String() string {
	s := fmt.Sprintf("{PID:%d TID:%d Address:%#x Length:%#x PgOff:%#x FileID:%v Protection:%#x Flags:%#x",
		e.PID, e.TID, e.Address, e.Length, e.PgOff, e.FileID, e.Protection, e.Flags)
	if e.HasDsoKey {
		s += fmt.Sprintf(" DsoKey:%v", e.DsoKey)
	}
	return s + fmt.Sprintf(" Path:%q}", e.Path)
}

// LostEvent is a PERF_RECORD_LOST record: the ring buffer overflowed
// and Count samples belonging to event ID were dropped.
type LostEvent struct {
	ID    uint64
	Count uint64
}

func (*LostEvent) isEvent() {}

func (e *LostEvent) String() string {
	return fmt.Sprintf("{ID:%d Count:%d}", e.ID, e.Count)
}

// ThrottleEvent carries the fields common to Throttle and Unthrottle
// records.
type ThrottleEvent struct {
	ID        uint64
	Timestamp uint64
}

func (e ThrottleEvent) String() string {
	return fmt.Sprintf("{ID:%d Timestamp:%d}", e.ID, e.Timestamp)
}

// ThrottleBeginEvent is a PERF_RECORD_THROTTLE record.
type ThrottleBeginEvent struct{ ThrottleEvent }

func (*ThrottleBeginEvent) isEvent() {}

// ThrottleEndEvent is a PERF_RECORD_UNTHROTTLE record.
type ThrottleEndEvent struct{ ThrottleEvent }

func (*ThrottleEndEvent) isEvent() {}

// ContextSwitchKind discriminates the ContextSwitchEvent variants.
//
// The "Idle"/"Running" naming below preserves the source this package
// was ported from rather than the kernel's documented meaning:
// PERF_RECORD_MISC_SWITCH_OUT_PREEMPT means the outgoing thread was
// preempted and is still runnable, which OutWhileRunning matches; the
// non-preempt case typically means the thread blocked, which
// OutWhileIdle does not accurately describe. Preserved as-is pending
// review; see DESIGN.md's Open Question decisions.
type ContextSwitchKind int

const (
	ContextSwitchIn ContextSwitchKind = iota
	ContextSwitchOutWhileIdle
	ContextSwitchOutWhileRunning
)

func (k ContextSwitchKind) String() string {
	switch k {
	case ContextSwitchIn:
		return "In"
	case ContextSwitchOutWhileIdle:
		return "OutWhileIdle"
	case ContextSwitchOutWhileRunning:
		return "OutWhileRunning"
	default:
		return "ContextSwitchKind(?)"
	}
}

// ContextSwitchEvent is a PERF_RECORD_SWITCH record.
type ContextSwitchEvent struct {
	Kind ContextSwitchKind
}

func (*ContextSwitchEvent) isEvent() {}

func (e *ContextSwitchEvent) String() string {
	return fmt.Sprintf("{Kind:%v}", e.Kind)
}

// RawEventRecord is the fallback Event for record kinds this package
// doesn't interpret: the original header plus an opaque, zero-copy
// view of the body.
type RawEventRecord struct {
	Kind RecordKind
	Misc uint16
	Data RawData
}

func (*RawEventRecord) isEvent() {}

func (e *RawEventRecord) String() string {
	return fmt.Sprintf("{Kind:%d Misc:%#x DataLen:%d}", e.Kind, e.Misc, e.Data.Len())
}
