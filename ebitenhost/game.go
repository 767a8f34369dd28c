// Package ebitenhost runs a dragkit Controller inside an ebiten game loop:
// it polls device input, steps the controller once per tick and draws the
// node tree as flat rectangles.
package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/phanxgames/dragkit"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    color.Color
	ShowStatus    bool
	Logger        *zap.Logger
}

// Game implements ebiten.Game around a Controller.
type Game struct {
	cfg      RunConfig
	ctrl     *dragkit.Controller
	input    *Input
	injector *dragkit.Injector
	runner   *dragkit.TestRunner
	renderer Renderer
	log      *zap.Logger
}

// NewGame creates a game driving ctrl.
func NewGame(ctrl *dragkit.Controller, cfg RunConfig) *Game {
	if cfg.Background == nil {
		cfg.Background = color.RGBA{0x20, 0x22, 0x28, 0xff}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		cfg:      cfg,
		ctrl:     ctrl,
		input:    NewInput(ctrl),
		injector: dragkit.NewInjector(ctrl),
		log:      log,
	}
}

// Injector returns the synthetic input queue consumed before device input.
func (g *Game) Injector() *dragkit.Injector { return g.injector }

// SetTestRunner attaches a scripted runner. The game exits once it is done.
func (g *Game) SetTestRunner(r *dragkit.TestRunner) { g.runner = r }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.Step()
		if g.runner.Done() && g.injector.Pending() == 0 && !g.ctrl.Busy() {
			for _, f := range g.runner.Failures() {
				g.log.Error("script expectation failed", zap.String("failure", f))
			}
			if n := len(g.runner.Failures()); n > 0 {
				return fmt.Errorf("script: %d expectation(s) failed", n)
			}
			return ebiten.Termination
		}
	}
	if !g.injector.Step() {
		g.input.Poll()
	}
	g.ctrl.Update(1 / float32(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.renderer.Draw(screen, g.ctrl.Root())
	if !g.cfg.ShowStatus {
		return
	}
	status := "idle"
	if s := g.ctrl.Session(); s != nil {
		status = fmt.Sprintf("%s %s %s valid=%t", s.Mode, s.State, s.Element.Name, s.Valid)
	}
	ebitenutil.DebugPrint(screen, status)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it closes or a script finishes.
func Run(g *Game) error {
	title, w, h := g.cfg.Title, g.cfg.Width, g.cfg.Height
	if title == "" {
		title = "dragkit"
	}
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	defer g.ctrl.Destroy()
	return ebiten.RunGame(g)
}
