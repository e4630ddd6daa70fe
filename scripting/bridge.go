package scripting

import (
	lua "github.com/yuin/gopher-lua"

	vigna "github.com/nerith-games/vigna"
	"github.com/nerith-games/vigna/components"
	"github.com/nerith-games/vigna/storage"
)

// Bridge wires a *vigna.Registry[uint32] world into a VM's global "ecs"
// table: entity lifecycle, the component types this host knows about, and
// construct/destroy notifications routed to Lua callbacks.
type Bridge struct {
	world *vigna.Registry[uint32]
	vm    *VM
}

// entityMemoryCost is the flat byte charge levied against a VM's
// Resources.MaxMemoryUsage for each Lua-created entity.
const entityMemoryCost = 64

// NewBridge wraps world for script access.
func NewBridge(world *vigna.Registry[uint32]) *Bridge {
	return &Bridge{world: world}
}

// Register installs the "ecs" global table into vm, backed by b.world.
func (b *Bridge) Register(vm *VM) error {
	b.vm = vm
	state := vm.State()
	ecsTable := state.NewTable()

	state.SetField(ecsTable, "create_entity", state.NewFunction(b.luaCreateEntity))
	state.SetField(ecsTable, "destroy_entity", state.NewFunction(b.luaDestroyEntity))
	state.SetField(ecsTable, "is_valid", state.NewFunction(b.luaIsValid))

	state.SetField(ecsTable, "set_position", state.NewFunction(b.luaSetPosition))
	state.SetField(ecsTable, "get_position", state.NewFunction(b.luaGetPosition))
	state.SetField(ecsTable, "set_velocity", state.NewFunction(b.luaSetVelocity))
	state.SetField(ecsTable, "get_velocity", state.NewFunction(b.luaGetVelocity))
	state.SetField(ecsTable, "set_health", state.NewFunction(b.luaSetHealth))
	state.SetField(ecsTable, "get_health", state.NewFunction(b.luaGetHealth))

	state.SetField(ecsTable, "on_construct", state.NewFunction(b.luaOnConstruct))
	state.SetField(ecsTable, "on_destroy", state.NewFunction(b.luaOnDestroy))

	state.SetGlobal("ecs", ecsTable)
	return nil
}

func (b *Bridge) luaCreateEntity(L *lua.LState) int {
	if err := b.vm.ChargeMemory(entityMemoryCost); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	e := b.world.Create()
	L.Push(lua.LNumber(e))
	return 1
}

func (b *Bridge) luaDestroyEntity(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	b.world.Destroy(e)
	b.vm.ReleaseMemory(entityMemoryCost)
	return 0
}

func (b *Bridge) luaIsValid(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	L.Push(lua.LBool(b.world.Valid(e)))
	return 1
}

func (b *Bridge) luaSetPosition(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	vigna.EmplaceOrReplace(b.world, e, components.Position{X: x, Y: y})
	return 0
}

func (b *Bridge) luaGetPosition(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	pos, ok := vigna.TryGet[components.Position](b.world, e)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(pos.X))
	L.Push(lua.LNumber(pos.Y))
	return 2
}

func (b *Bridge) luaSetVelocity(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	dx := float64(L.CheckNumber(2))
	dy := float64(L.CheckNumber(3))
	vigna.EmplaceOrReplace(b.world, e, components.Velocity{DX: dx, DY: dy})
	return 0
}

func (b *Bridge) luaGetVelocity(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	vel, ok := vigna.TryGet[components.Velocity](b.world, e)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(vel.DX))
	L.Push(lua.LNumber(vel.DY))
	return 2
}

func (b *Bridge) luaSetHealth(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	current := int(L.CheckNumber(2))
	max := int(L.CheckNumber(3))
	vigna.EmplaceOrReplace(b.world, e, components.Health{Current: current, Max: max})
	return 0
}

func (b *Bridge) luaGetHealth(L *lua.LState) int {
	e := uint32(L.CheckNumber(1))
	hp, ok := vigna.TryGet[components.Health](b.world, e)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(hp.Current))
	L.Push(lua.LNumber(hp.Max))
	return 2
}

// component names on_construct/on_destroy accept. Scripts can only observe
// the component set the host exposes, not arbitrary Go types.
const (
	componentPosition = "position"
	componentVelocity = "velocity"
	componentHealth   = "health"
)

func (b *Bridge) luaOnConstruct(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	switch name {
	case componentPosition:
		vigna.OnConstruct[components.Position](b.world).ConnectFunc(func(ev storage.Event[*vigna.Registry[uint32], uint32]) {
			b.invoke(L, fn, ev.Entity)
		})
	case componentVelocity:
		vigna.OnConstruct[components.Velocity](b.world).ConnectFunc(func(ev storage.Event[*vigna.Registry[uint32], uint32]) {
			b.invoke(L, fn, ev.Entity)
		})
	case componentHealth:
		vigna.OnConstruct[components.Health](b.world).ConnectFunc(func(ev storage.Event[*vigna.Registry[uint32], uint32]) {
			b.invoke(L, fn, ev.Entity)
		})
	default:
		L.RaiseError("%s", NewScriptError(ErrUnknownComponent, "unknown component: "+name).Error())
	}
	return 0
}

func (b *Bridge) luaOnDestroy(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	switch name {
	case componentPosition:
		vigna.OnDestroy[components.Position](b.world).ConnectFunc(func(ev storage.Event[*vigna.Registry[uint32], uint32]) {
			b.invoke(L, fn, ev.Entity)
		})
	case componentVelocity:
		vigna.OnDestroy[components.Velocity](b.world).ConnectFunc(func(ev storage.Event[*vigna.Registry[uint32], uint32]) {
			b.invoke(L, fn, ev.Entity)
		})
	case componentHealth:
		vigna.OnDestroy[components.Health](b.world).ConnectFunc(func(ev storage.Event[*vigna.Registry[uint32], uint32]) {
			b.invoke(L, fn, ev.Entity)
		})
	default:
		L.RaiseError("%s", NewScriptError(ErrUnknownComponent, "unknown component: "+name).Error())
	}
	return 0
}

func (b *Bridge) invoke(L *lua.LState, fn *lua.LFunction, e uint32) {
	L.Push(fn)
	L.Push(lua.LNumber(e))
	if err := L.PCall(1, 0, nil); err != nil {
		L.RaiseError("%s", WrapError(err, ErrRuntimeFailed, "", "running ecs callback").Error())
	}
}
