package frontend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	gridColor       = color.RGBA{R: 48, G: 52, B: 62, A: 255}

	stateColors = map[control.StateCode]color.RGBA{
		control.Idle:    {R: 179, G: 229, B: 252, A: 255},
		control.Special: {R: 255, G: 179, B: 186, A: 255},
		control.Moving:  {R: 186, G: 255, B: 201, A: 255},
	}
)

const (
	pixelsPerUnit = 200
	gridStep      = 0.25
	markerSize    = 24
)

// Renderer draws a top-down stand-in for the character: a marker at the
// player's ground-plane position, coloured by state, plus a text overlay.
type Renderer struct {
	Player  *ecs.Singleton[control.PlayerState]
	Catalog *ecs.Singleton[control.ClipCatalog]
	Targets *ecs.Query[struct{ *anim.Player }]
	Library *anim.Library
}

func NewRenderer(storage *ecs.Storage, lib *anim.Library) *Renderer {
	return &Renderer{
		Player:  ecs.NewSingleton[control.PlayerState](storage),
		Catalog: ecs.NewSingleton[control.ClipCatalog](storage),
		Targets: ecs.NewQuery[struct{ *anim.Player }](storage),
		Library: lib,
	}
}

// project maps a translation to screen space: -X is up, -Z is right.
func project(t control.Vec3, width, height int) (float32, float32) {
	return float32(width)/2 - t.Z*pixelsPerUnit, float32(height)/2 + t.X*pixelsPerUnit
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawGrid(screen, w, h)

	p := r.Player.Get()
	if p == nil {
		return
	}

	sx, sy := project(p.Translation(), w, h)
	vector.DrawFilledRect(screen, sx-markerSize/2, sy-markerSize/2, markerSize, markerSize, stateColors[p.State], false)

	ebitenutil.DebugPrint(screen, r.status(p))
}

func (r *Renderer) status(p *control.PlayerState) string {
	text := fmt.Sprintf("state: %s\npos: (%.3f, %.3f)", p.State, p.I, p.J)

	r.Targets.Execute()
	if _, target, err := r.Targets.Single(); err == nil && r.Library != nil {
		text += fmt.Sprintf("\nclip: %s frame %d", r.Library.Name(target.Player.Current), target.Player.Frame(r.Library))
	} else if catalog := r.Catalog.Get(); catalog != nil {
		text += fmt.Sprintf("\nclip: %s (waiting for scene)", catalog.Name(p.State))
	}
	return text
}

func drawGrid(screen *ebiten.Image, w, h int) {
	step := float32(gridStep * pixelsPerUnit)
	cx, cy := float32(w)/2, float32(h)/2
	for x := cx; x < float32(w); x += step {
		vector.StrokeLine(screen, x, 0, x, float32(h), 1, gridColor, false)
		vector.StrokeLine(screen, 2*cx-x, 0, 2*cx-x, float32(h), 1, gridColor, false)
	}
	for y := cy; y < float32(h); y += step {
		vector.StrokeLine(screen, 0, y, float32(w), y, 1, gridColor, false)
		vector.StrokeLine(screen, 0, 2*cy-y, float32(w), 2*cy-y, 1, gridColor, false)
	}
}
