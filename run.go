package smooothy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Resizable  bool
	ShowStatus bool
	// Status, when set with ShowStatus, supplies an extra line for the
	// status widget.
	Status func() string
	// UpdateFunc runs once per tick before Scene.Update. Returning an error
	// stops the game loop.
	UpdateFunc func() error
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	update func() error
}

func (g *game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout reports the outside size as the logical screen size and forwards
// any change to Scene.Resize.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until the window closes or
// UpdateFunc returns an error. It enables live input on the scene.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	scene.LiveInput = true
	scene.Resize(float64(cfg.Width), float64(cfg.Height))

	if cfg.ShowStatus {
		scene.Root().AddChild(NewStatusWidget(cfg.Status))
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&game{scene: scene, update: cfg.UpdateFunc}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
