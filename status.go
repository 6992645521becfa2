package smooothy

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statusRefresh is how often, in seconds, the status widget redraws.
const statusRefresh = 0.25

// NewStatusWidget creates a node that shows the current FPS and TPS, plus
// the line returned by extra when it is non-nil.
// It draws into its own image with ebitenutil.DebugPrint.
func NewStatusWidget(extra func() string) *Node {
	img := ebiten.NewImage(160, 48)

	node := NewContainer("status_widget")
	node.SetCustomImage(img)

	elapsed := statusRefresh
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < statusRefresh {
			return
		}
		elapsed = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})

		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		if extra != nil {
			msg += "\n" + extra()
		}
		ebitenutil.DebugPrint(img, msg)
	}

	return node
}
