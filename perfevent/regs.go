package perfevent

import "fmt"

// Regs is a sparse register set: a bitmask of which architectural
// registers were captured, paired with the dense array of words that
// were. The word for register i, if present, sits at an index equal
// to the number of set bits in Mask strictly below i — the kernel
// only writes words for the registers PERF_SAMPLE_REGS_USER/INTR
// asked for, packed in ascending bit-position order.
type Regs struct {
	Mask uint64
	raw  RawRegs
}

// NewRegs builds a Regs over raw, interpreting mask as the set of
// captured registers.
func NewRegs(mask uint64, raw RawRegs) Regs {
	return Regs{mask, raw}
}

// Get returns the word for register index reg, if the session
// captured it.
func (r Regs) Get(reg uint) (uint64, bool) {
	if r.Mask&(1<<reg) == 0 {
		return 0, false
	}
	var idx int
	for i := uint(0); i < reg; i++ {
		if r.Mask&(1<<i) != 0 {
			idx++
		}
	}
	return r.raw.Get(idx), true
}

func (r Regs) String() string {
	return fmt.Sprintf("Regs{Mask:%#x}", r.Mask)
}
