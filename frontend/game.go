// Package frontend runs the controller inside an ebiten window: arrow keys
// and mouse feed the input snapshot, the scheduler ticks at the configured
// rate, and a flat placeholder stands in for the animated character.
package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/config"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	debugui_ebiten "github.com/plus3/puppet/ecs/debugui/ebiten"
	"go.uber.org/zap"
)

// Game implements ebiten.Game.
type Game struct {
	Scheduler *ecs.Scheduler
	Renderer  *Renderer
	Input     *Input
	Resolver  *control.StateResolverSystem
	Logger    *zap.Logger

	// UI and Reloads are optional.
	UI      *debugui_ebiten.ImguiBackend
	Reloads <-chan *config.Config

	clock *clock
}

func NewGame(scheduler *ecs.Scheduler, tps int) *Game {
	return &Game{
		Scheduler: scheduler,
		Logger:    zap.NewNop(),
		clock:     newClock(tps),
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.applyReloads()

	dt := g.clock.delta()
	if g.UI != nil {
		g.UI.BeginFrame()
	}
	g.Scheduler.Once(dt)
	if g.UI != nil {
		g.UI.EndFrame()
	}
	return nil
}

// applyReloads takes the latest pending config, if any. Only the player
// speed is applied live; other settings need a restart.
func (g *Game) applyReloads() {
	if g.Reloads == nil || g.Resolver == nil {
		return
	}
	select {
	case cfg, ok := <-g.Reloads:
		if !ok {
			g.Reloads = nil
			return
		}
		g.Resolver.Speed = cfg.Player.Speed
		g.Logger.Info("config reloaded", zap.Float32("speed", cfg.Player.Speed))
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.Renderer != nil {
		g.Renderer.Draw(screen)
	}
	if g.UI != nil {
		g.UI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Input != nil {
		g.Input.Resize(outsideWidth, outsideHeight)
	}
	if g.UI != nil {
		g.UI.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
