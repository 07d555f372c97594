package perfevent

import (
	"bytes"
)

// DsoKeyKind discriminates the variants of DsoKey.
type DsoKeyKind int

const (
	DsoKernel DsoKeyKind = iota
	DsoGuestKernel
	DsoVdso32
	DsoVdsoX32
	DsoVdso64
	DsoVsyscall
	DsoKernelModule
	DsoUser
)

// DsoKey identifies the mapped object a Mmap/Mmap2 record refers to:
// the kernel image, a guest kernel, one of the vDSO/vsyscall pages, a
// named kernel module, or a user binary. Equality and hashing are
// structural: two DsoKey values with the same Kind and payload compare
// equal, so DsoKey is safe to use as a map key.
type DsoKey struct {
	Kind DsoKeyKind

	// Name holds the kernel module name (DsoKernelModule, already
	// bracketed, e.g. "[snd-seq-device]") or the basename
	// (DsoUser).
	Name string

	// Path holds the original full mapping path (DsoUser only).
	Path string
}

func (k DsoKey) String() string {
	switch k.Kind {
	case DsoKernel:
		return "[kernel.kallsyms]"
	case DsoGuestKernel:
		return "[guest.kernel.kallsyms]"
	case DsoVdso32:
		return "[vdso32]"
	case DsoVdsoX32:
		return "[vdsox32]"
	case DsoVdso64:
		return "[vdso]"
	case DsoVsyscall:
		return "[vsyscall]"
	case DsoKernelModule, DsoUser:
		return k.Name
	default:
		return "<unknown dso>"
	}
}

// detectDso maps a record's mapping path and misc flags to the DSO it
// identifies. It reports ok == false when the path doesn't identify a
// DSO at all (anonymous mappings, the stack, the heap, vvar). Rule
// order is load-bearing: the bracket-prefix check for kernel modules
// must run before filename extraction, or a path like
// "[bpf_prog]" would be misclassified once its (nonexistent) directory
// component is stripped.
func detectDso(path []byte, misc uint16) (DsoKey, bool) {
	switch {
	case bytes.Equal(path, []byte("//anon")),
		bytes.Equal(path, []byte("[stack]")),
		bytes.Equal(path, []byte("[heap]")),
		bytes.Equal(path, []byte("[vvar]")):
		return DsoKey{}, false
	}

	cpumode := recordMisc(misc) & recordMiscCPUModeMask

	if bytes.HasPrefix(path, []byte("[kernel.kallsyms]")) {
		if CPUMode(cpumode) == CPUModeGuestKernel {
			return DsoKey{Kind: DsoGuestKernel}, true
		}
		return DsoKey{Kind: DsoKernel}, true
	}
	if bytes.HasPrefix(path, []byte("[guest.kernel.kallsyms")) {
		return DsoKey{Kind: DsoGuestKernel}, true
	}
	switch {
	case bytes.Equal(path, []byte("[vdso32]")):
		return DsoKey{Kind: DsoVdso32}, true
	case bytes.Equal(path, []byte("[vdsox32]")):
		return DsoKey{Kind: DsoVdsoX32}, true
	case bytes.Equal(path, []byte("[vdso]")):
		// TODO: on a 32-bit recording host this could also be Vdso32.
		return DsoKey{Kind: DsoVdso64}, true
	case bytes.Equal(path, []byte("[vsyscall]")):
		return DsoKey{Kind: DsoVsyscall}, true
	}

	isKernelMode := CPUMode(cpumode) == CPUModeKernel || CPUMode(cpumode) == CPUModeGuestKernel
	if isKernelMode && bytes.HasPrefix(path, []byte("[")) {
		return DsoKey{Kind: DsoKernelModule, Name: string(path)}, true
	}

	filename := path
	if i := bytes.LastIndexByte(path, '/'); i >= 0 {
		filename = path[i+1:]
	}

	if isKernelMode {
		if kmod, ok := bytes.CutSuffix(filename, []byte(".ko")); ok {
			// "/lib/modules/5.13/kernel/sound/core/snd-seq-device.ko"
			// -> "[snd-seq-device]"
			return DsoKey{Kind: DsoKernelModule, Name: "[" + string(kmod) + "]"}, true
		}
		if CPUMode(cpumode) == CPUModeGuestKernel {
			return DsoKey{Kind: DsoGuestKernel}, true
		}
		return DsoKey{Kind: DsoKernel}, true
	}

	switch CPUMode(cpumode) {
	case CPUModeUser, CPUModeGuestUser:
		return DsoKey{Kind: DsoUser, Name: string(filename), Path: string(path)}, true
	default:
		return DsoKey{}, false
	}
}
