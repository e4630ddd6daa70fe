// Package demo implements a small bouncing-sprite scene driven entirely by
// a vigna registry, exercising component CRUD and multi-type views inside
// an ebiten game loop.
package demo

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	vigna "github.com/nerith-games/vigna"
	"github.com/nerith-games/vigna/components"
	"github.com/nerith-games/vigna/ecsconfig"
)

// Game owns the registry and the physics/render systems that walk it each
// frame.
type Game struct {
	cfg    ecsconfig.Config
	world  *vigna.Registry[uint32]
	frames int
}

// NewGame seeds a small world with bouncing sprites.
func NewGame(cfg ecsconfig.Config, spriteCount int) *Game {
	g := &Game{cfg: cfg, world: vigna.New[uint32](cfg)}
	for i := 0; i < spriteCount; i++ {
		e := g.world.Create()
		vigna.Emplace(g.world, e, components.Position{
			X: float64(32 + (i*47)%(cfg.WindowWidth-64)),
			Y: float64(32 + (i*71)%(cfg.WindowHeight-64)),
		})
		vigna.Emplace(g.world, e, components.Velocity{
			DX: float64(1 + i%3),
			DY: float64(1 + (i+1)%4),
		})
		vigna.Emplace(g.world, e, components.Sprite{Image: "ball", Layer: i % 2})
	}
	return g
}

// Update advances the physics step: every entity with a Position and a
// Velocity and no Frozen tag moves, bouncing off the window edges.
func (g *Game) Update() error {
	g.frames++
	view := vigna.NewView2[components.Position, components.Velocity](
		g.world, vigna.ExcludeTag[components.Frozen](g.world),
	)
	view.Each(func(_ uint32, pos *components.Position, vel *components.Velocity) {
		pos.X += vel.DX
		pos.Y += vel.DY
		if pos.X < 0 || pos.X > float64(g.cfg.WindowWidth) {
			vel.DX = -vel.DX
		}
		if pos.Y < 0 || pos.Y > float64(g.cfg.WindowHeight) {
			vel.DY = -vel.DY
		}
	})
	return nil
}

// Draw renders every entity holding a Position and a Sprite.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 32, 255})
	view := vigna.NewView2[components.Position, components.Sprite](g.world)
	count := 0
	view.Each(func(_ uint32, pos *components.Position, spr *components.Sprite) {
		count++
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), 8, 8, spriteColor(spr.Layer), false)
	})
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s - frame %d, entities %d", g.cfg.Title, g.frames, count))
}

// Layout reports the fixed window size from configuration.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.WindowWidth, g.cfg.WindowHeight
}

func spriteColor(layer int) color.Color {
	if layer%2 == 0 {
		return color.RGBA{220, 160, 40, 255}
	}
	return color.RGBA{80, 180, 220, 255}
}

// Run opens the window and starts the ebiten loop.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.WindowWidth, g.cfg.WindowHeight)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
