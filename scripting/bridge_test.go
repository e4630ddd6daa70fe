package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	vigna "github.com/nerith-games/vigna"
	"github.com/nerith-games/vigna/components"
	"github.com/nerith-games/vigna/ecsconfig"
	"github.com/nerith-games/vigna/scripting"
)

func newBridgedVM(t *testing.T) (*scripting.VM, *vigna.Registry[uint32]) {
	t.Helper()
	world := vigna.New[uint32](ecsconfig.Default())
	vm, err := scripting.NewVM(&scripting.VMConfig{})
	require.NoError(t, err)
	require.NoError(t, scripting.NewBridge(world).Register(vm))
	return vm, world
}

func TestScriptCreatesEntityAndSetsPosition(t *testing.T) {
	vm, world := newBridgedVM(t)
	defer vm.Close()

	require.NoError(t, vm.State().DoString(`
		e = ecs.create_entity()
		ecs.set_position(e, 3, 4)
	`))

	entity := uint32(vm.State().GetGlobal("e").(lua.LNumber))
	pos, ok := vigna.TryGet[components.Position](world, entity)
	require.True(t, ok)
	assert.Equal(t, 3.0, pos.X)
	assert.Equal(t, 4.0, pos.Y)
}

func TestScriptSetAndGetPositionRoundTrips(t *testing.T) {
	vm, world := newBridgedVM(t)
	defer vm.Close()

	entity := world.Create()
	vigna.Emplace(world, entity, components.Position{X: 1, Y: 2})

	require.NoError(t, vm.State().DoString(`
		function bump(id)
			local x, y = ecs.get_position(id)
			ecs.set_position(id, x + 1, y + 1)
		end
	`))

	err := vm.State().CallByParam(lua.P{
		Fn:      vm.State().GetGlobal("bump"),
		NRet:    0,
		Protect: true,
	}, lua.LNumber(entity))
	require.NoError(t, err)

	pos, ok := vigna.TryGet[components.Position](world, entity)
	require.True(t, ok)
	assert.Equal(t, 2.0, pos.X)
	assert.Equal(t, 3.0, pos.Y)
}

func TestScriptDestroyEntityInvalidatesIt(t *testing.T) {
	vm, world := newBridgedVM(t)
	defer vm.Close()

	entity := world.Create()
	require.True(t, world.Valid(entity))

	require.NoError(t, vm.State().DoString(`function kill(id) ecs.destroy_entity(id) end`))
	err := vm.State().CallByParam(lua.P{
		Fn:      vm.State().GetGlobal("kill"),
		NRet:    0,
		Protect: true,
	}, lua.LNumber(entity))
	require.NoError(t, err)

	assert.False(t, world.Valid(entity))
}

func TestOnConstructFiresLuaCallback(t *testing.T) {
	vm, world := newBridgedVM(t)
	defer vm.Close()

	require.NoError(t, vm.State().DoString(`
		seen = nil
		ecs.on_construct("position", function(id) seen = id end)
	`))

	e := world.Create()
	vigna.Emplace(world, e, components.Position{X: 1, Y: 1})

	seen := vm.State().GetGlobal("seen")
	require.NotEqual(t, lua.LNil, seen)
	assert.Equal(t, float64(e), float64(seen.(lua.LNumber)))
}

func TestOnConstructRejectsUnknownComponent(t *testing.T) {
	vm, _ := newBridgedVM(t)
	defer vm.Close()

	err := vm.State().DoString(`ecs.on_construct("nonexistent", function(id) end)`)
	require.Error(t, err)
}
