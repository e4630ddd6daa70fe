package scripting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerith-games/vigna/scripting"
)

func TestNewVMAppliesDefaultSandbox(t *testing.T) {
	vm, err := scripting.NewVM(nil)
	require.NoError(t, err)
	defer vm.Close()

	require.NoError(t, vm.State().DoString("return 1"))

	err = vm.State().DoString("return os.time()")
	require.Error(t, err, "os library should be stripped")
}

func TestNewVMWithoutSandboxKeepsOS(t *testing.T) {
	vm, err := scripting.NewVM(&scripting.VMConfig{})
	require.NoError(t, err)
	defer vm.Close()

	require.NoError(t, vm.State().DoString("return os.time()"))
}

func TestChargeMemoryRejectsPastTheLimit(t *testing.T) {
	vm, err := scripting.NewVM(&scripting.VMConfig{
		Resources: &scripting.ResourceLimits{MaxMemoryUsage: 100, MaxExecutionTime: time.Second},
	})
	require.NoError(t, err)
	defer vm.Close()

	require.NoError(t, vm.ChargeMemory(64))
	err = vm.ChargeMemory(64)
	assert.Error(t, err, "second charge pushes usage past the 100-byte budget")

	vm.ReleaseMemory(64)
	assert.NoError(t, vm.ChargeMemory(64))
}

func TestChargeMemoryIsUnboundedWhenResourcesOmitted(t *testing.T) {
	vm, err := scripting.NewVM(&scripting.VMConfig{})
	require.NoError(t, err)
	defer vm.Close()

	assert.NoError(t, vm.ChargeMemory(1<<40))
}
