package scripting

import (
	"context"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"golang.org/x/sync/singleflight"
)

// Compiler parses and compiles Lua source into reusable bytecode. Several
// mods requiring the same shared script concurrently collapse into a single
// parse/compile via singleflight; the resulting proto is cached by name for
// every later VM that wants to run it.
type Compiler struct {
	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]*lua.FunctionProto
}

// NewCompiler returns an empty Compiler.
func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[string]*lua.FunctionProto)}
}

// Compile returns the compiled prototype for a named chunk, compiling it at
// most once even under concurrent callers requesting the same name.
func (c *Compiler) Compile(name, source string) (*lua.FunctionProto, error) {
	c.mu.RLock()
	if proto, ok := c.cache[name]; ok {
		c.mu.RUnlock()
		return proto, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do(name, func() (interface{}, error) {
		chunk, err := parse.Parse(strings.NewReader(source), name)
		if err != nil {
			return nil, WrapError(err, ErrCompileFailed, name, "parsing script")
		}
		proto, err := lua.Compile(chunk, name)
		if err != nil {
			return nil, WrapError(err, ErrCompileFailed, name, "compiling script")
		}
		c.mu.Lock()
		c.cache[name] = proto
		c.mu.Unlock()
		return proto, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*lua.FunctionProto), nil
}

// Run loads a compiled prototype into vm and calls it with no arguments,
// aborting if it runs past vm's MaxExecutionTime.
func (c *Compiler) Run(vm *VM, proto *lua.FunctionProto) error {
	ctx, cancel := vm.executionContext()
	defer cancel()
	vm.State().SetContext(ctx)
	defer vm.State().RemoveContext()

	lfunc := vm.State().NewFunctionFromProto(proto)
	vm.State().Push(lfunc)
	if err := vm.State().PCall(0, lua.MultRet, nil); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return NewScriptError(ErrExecutionTimeout, "script exceeded its execution time budget").withScript(proto.SourceName)
		}
		return WrapError(err, ErrRuntimeFailed, proto.SourceName, "running script")
	}
	return nil
}

// Forget evicts a cached prototype, forcing the next Compile of name to
// reparse the source.
func (c *Compiler) Forget(name string) {
	c.mu.Lock()
	delete(c.cache, name)
	c.mu.Unlock()
}
