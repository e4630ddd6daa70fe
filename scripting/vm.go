// Package scripting bridges a vigna registry to Lua mod scripts: a VM runs
// sandboxed gopher-lua state, a Compiler deduplicates concurrent compiles of
// the same chunk, and Bridge exposes entity/component CRUD plus construct
// and destroy sinks to a registered "ecs" global table.
package scripting

import (
	"context"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ResourceLimits bounds a VM's execution, mirroring the limits a mod host
// enforces on untrusted scripts.
type ResourceLimits struct {
	MaxExecutionTime time.Duration
	MaxMemoryUsage   int64
}

// SandboxConfig selects which standard library surfaces are stripped from a
// VM before any mod script runs in it.
type SandboxConfig struct {
	FileSystemRestricted bool
	NetworkRestricted    bool
	OSCommandsBlocked    bool
}

// VMConfig configures a new VM.
type VMConfig struct {
	Sandbox   *SandboxConfig
	Resources *ResourceLimits
}

// DefaultVMConfig locks a VM down: no filesystem, no os, no debug library.
func DefaultVMConfig() *VMConfig {
	return &VMConfig{
		Sandbox: &SandboxConfig{
			FileSystemRestricted: true,
			NetworkRestricted:    true,
			OSCommandsBlocked:    true,
		},
		Resources: &ResourceLimits{
			MaxExecutionTime: 100 * time.Millisecond,
			MaxMemoryUsage:   10 * 1024 * 1024,
		},
	}
}

// VM wraps a single gopher-lua state.
type VM struct {
	state      *lua.LState
	config     *VMConfig
	memoryUsed int64
}

// NewVM creates a sandboxed Lua VM. A nil config uses DefaultVMConfig.
func NewVM(config *VMConfig) (*VM, error) {
	if config == nil {
		config = DefaultVMConfig()
	}
	state := lua.NewState()
	if state == nil {
		return nil, NewScriptError(ErrVMCreationFailed, "lua.NewState returned nil")
	}
	if config.Sandbox != nil {
		applySandbox(state, config.Sandbox)
	}
	return &VM{state: state, config: config}, nil
}

// Close releases the underlying Lua state. Safe to call once.
func (vm *VM) Close() {
	if vm.state != nil {
		vm.state.Close()
		vm.state = nil
	}
}

// State exposes the underlying gopher-lua state for binding registration.
func (vm *VM) State() *lua.LState { return vm.state }

// executionContext returns a context that expires after Resources'
// MaxExecutionTime, or a non-expiring one if no limit was configured.
func (vm *VM) executionContext() (context.Context, context.CancelFunc) {
	if vm.config.Resources == nil || vm.config.Resources.MaxExecutionTime <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), vm.config.Resources.MaxExecutionTime)
}

// ChargeMemory records n additional bytes of script-attributable usage,
// refusing if it would push the VM over Resources.MaxMemoryUsage.
func (vm *VM) ChargeMemory(n int64) error {
	if vm.config.Resources == nil || vm.config.Resources.MaxMemoryUsage <= 0 {
		return nil
	}
	if vm.memoryUsed+n > vm.config.Resources.MaxMemoryUsage {
		return NewScriptError(ErrMemoryLimitExceeded, "script exceeded its memory budget")
	}
	vm.memoryUsed += n
	return nil
}

// ReleaseMemory gives back n bytes previously charged through ChargeMemory.
func (vm *VM) ReleaseMemory(n int64) {
	vm.memoryUsed -= n
	if vm.memoryUsed < 0 {
		vm.memoryUsed = 0
	}
}

func applySandbox(state *lua.LState, sandbox *SandboxConfig) {
	if sandbox.FileSystemRestricted {
		state.SetGlobal("io", lua.LNil)
		state.SetGlobal("dofile", lua.LNil)
		state.SetGlobal("loadfile", lua.LNil)
	}
	if sandbox.OSCommandsBlocked {
		state.SetGlobal("os", lua.LNil)
	}
	state.SetGlobal("debug", lua.LNil)
	state.SetGlobal("package", lua.LNil)
	state.SetGlobal("require", lua.LNil)
}
