package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/config"
)

// ApplyWindow configures the ebiten window. VSync maps to a Fifo-style
// present mode; TPS is the simulation rate.
func ApplyWindow(cfg config.WindowConfig, tps int) {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetTPS(tps)
}
