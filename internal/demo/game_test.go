package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vigna "github.com/nerith-games/vigna"
	"github.com/nerith-games/vigna/components"
	"github.com/nerith-games/vigna/ecsconfig"
	"github.com/nerith-games/vigna/internal/demo"
)

func TestNewGameWithSpritesUpdatesWithoutError(t *testing.T) {
	cfg := ecsconfig.Default()
	g := demo.NewGame(cfg, 5)
	require.NotNil(t, g)
	require.NoError(t, g.Update())
}

func TestUpdateRunsRepeatedlyWithoutError(t *testing.T) {
	cfg := ecsconfig.Default()
	g := demo.NewGame(cfg, 1)
	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
}

func TestPhysicsViewExcludesFrozenEntities(t *testing.T) {
	world := vigna.New[uint32](ecsconfig.Default())
	e := world.Create()
	vigna.Emplace(world, e, components.Position{X: 10, Y: 10})
	vigna.Emplace(world, e, components.Velocity{DX: 5, DY: 5})
	vigna.EmplaceTag[components.Frozen](world, e)

	view := vigna.NewView2[components.Position, components.Velocity](
		world, vigna.ExcludeTag[components.Frozen](world),
	)
	visited := 0
	view.Each(func(uint32, *components.Position, *components.Velocity) { visited++ })
	assert.Equal(t, 0, visited, "frozen entities should be excluded from the physics view")
}
