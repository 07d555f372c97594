package perfevent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func miscWithCPUMode(mode CPUMode) uint16 {
	return uint16(mode)
}

func TestDetectDsoNonDsoPaths(t *testing.T) {
	for _, path := range []string{"//anon", "[stack]", "[heap]", "[vvar]"} {
		for _, mode := range []CPUMode{CPUModeKernel, CPUModeUser, CPUModeGuestKernel, CPUModeGuestUser} {
			_, ok := detectDso([]byte(path), miscWithCPUMode(mode))
			assert.False(t, ok, "path %q mode %v should not be a DSO", path, mode)
		}
	}
}

func TestDetectDsoKallsymsOverride(t *testing.T) {
	key, ok := detectDso([]byte("[kernel.kallsyms]_text"), miscWithCPUMode(CPUModeUser))
	require.True(t, ok)
	assert.Equal(t, DsoKernel, key.Kind)

	key, ok = detectDso([]byte("[kernel.kallsyms]_text"), miscWithCPUMode(CPUModeGuestKernel))
	require.True(t, ok)
	assert.Equal(t, DsoGuestKernel, key.Kind)
}

func TestDetectDsoGuestKallsymsPrefix(t *testing.T) {
	key, ok := detectDso([]byte("[guest.kernel.kallsyms]_text"), miscWithCPUMode(CPUModeUser))
	require.True(t, ok)
	assert.Equal(t, DsoGuestKernel, key.Kind)
}

func TestDetectDsoVdsoVariants(t *testing.T) {
	cases := map[string]DsoKeyKind{
		"[vdso32]":  DsoVdso32,
		"[vdsox32]": DsoVdsoX32,
		"[vdso]":    DsoVdso64,
		"[vsyscall]": DsoVsyscall,
	}
	for path, wantKind := range cases {
		key, ok := detectDso([]byte(path), miscWithCPUMode(CPUModeUser))
		require.True(t, ok)
		assert.Equal(t, wantKind, key.Kind)
	}
}

func TestDetectDsoKernelModuleBracket(t *testing.T) {
	key, ok := detectDso([]byte("[bpf_prog]"), miscWithCPUMode(CPUModeKernel))
	require.True(t, ok)
	assert.Equal(t, DsoKernelModule, key.Kind)
	assert.Equal(t, "[bpf_prog]", key.Name)
}

func TestDetectDsoKmodNaming(t *testing.T) {
	key, ok := detectDso([]byte("/lib/modules/5.13/kernel/x/foo.ko"), miscWithCPUMode(CPUModeKernel))
	require.True(t, ok)
	assert.Equal(t, DsoKernelModule, key.Kind)
	assert.Equal(t, "[foo]", key.Name)
}

func TestDetectDsoUserBasename(t *testing.T) {
	key, ok := detectDso([]byte("/usr/bin/ls"), miscWithCPUMode(CPUModeUser))
	require.True(t, ok)
	assert.Equal(t, DsoUser, key.Kind)
	assert.Equal(t, "ls", key.Name)
	assert.Equal(t, "/usr/bin/ls", key.Path)
}

func TestDetectDsoKernelPlainPath(t *testing.T) {
	key, ok := detectDso([]byte("some-kernel-image"), miscWithCPUMode(CPUModeKernel))
	require.True(t, ok)
	assert.Equal(t, DsoKernel, key.Kind)
}

func TestDetectDsoUnknownCPUMode(t *testing.T) {
	_, ok := detectDso([]byte("/some/path"), miscWithCPUMode(CPUModeHypervisor))
	assert.False(t, ok)
}
