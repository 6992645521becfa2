package smooothy

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// labelInset is the offset of a node label from the node's top-left corner.
const labelInset = 6

// whitePixel is a 1x1 white image scaled and tinted to draw solid boxes.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw renders the node tree in painter order (parents before children,
// children in slice order) onto screen, then captures any queued
// screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	// Frame tasks may have moved nodes after Update refreshed transforms.
	updateWorldTransform(s.root, identityTransform, false)

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	drawNode(screen, s.root)
	s.flushScreenshots(screen)
}

// fillColor returns the color a node is drawn with, honoring the "active"
// class when an ActiveColor is set.
func (n *Node) fillColor() Color {
	if n.ActiveColor.A > 0 && (n.HasClass(ClassActive) || n.HasClass(ClassActiveDot)) {
		return n.ActiveColor
	}
	return n.Color
}

func drawNode(target *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	m := n.worldTransform

	switch {
	case n.customImage != nil:
		var op ebiten.DrawImageOptions
		op.GeoM.SetElement(0, 0, m[0])
		op.GeoM.SetElement(1, 0, m[1])
		op.GeoM.SetElement(0, 1, m[2])
		op.GeoM.SetElement(1, 1, m[3])
		op.GeoM.SetElement(0, 2, m[4])
		op.GeoM.SetElement(1, 2, m[5])
		target.DrawImage(n.customImage, &op)
	case n.Width > 0 && n.Height > 0:
		if c := n.fillColor(); c.A > 0 {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(n.Width*m[0], n.Height*m[3])
			op.GeoM.Translate(m[4], m[5])
			op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
			target.DrawImage(solidImage(), &op)
		}
	}

	if n.Label != "" {
		ebitenutil.DebugPrintAt(target, n.Label, int(m[4])+labelInset, int(m[5])+labelInset)
	}

	if len(n.children) == 0 {
		return
	}

	childTarget := target
	if n.Clip {
		b := n.WorldBounds()
		r := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height)).Intersect(target.Bounds())
		if r.Empty() {
			return
		}
		childTarget = target.SubImage(r).(*ebiten.Image)
	}
	for _, c := range n.children {
		drawNode(childTarget, c)
	}
}
