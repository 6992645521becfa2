package smooothy

import (
	"math"
	"time"
)

// Tap limits for links inside a slider. A press only activates a link when
// it is released quickly and never strays further than tapSlop on either
// axis; anything else was a drag that happened to start over the link.
const (
	tapMaxDuration = 200 * time.Millisecond
	tapSlop        = 5.0 // inclusive: travelling exactly tapSlop is still a tap
)

// tapTracker tells a deliberate tap from a drag that passed over a link.
type tapTracker struct {
	startX, startY float64
	startTime      time.Time
	moved          bool
}

func (t *tapTracker) down(x, y float64, now time.Time) {
	t.startX, t.startY = x, y
	t.startTime = now
	t.moved = false
}

func (t *tapTracker) move(x, y float64) {
	if t.startTime.IsZero() {
		return
	}
	if math.Abs(x-t.startX) > tapSlop || math.Abs(y-t.startY) > tapSlop {
		t.moved = true
	}
}

// up ends the gesture and reports whether it was a tap.
func (t *tapTracker) up(x, y float64, now time.Time) bool {
	if t.startTime.IsZero() {
		return false
	}
	t.move(x, y)
	tap := !t.moved && now.Sub(t.startTime) < tapMaxDuration
	t.startTime = time.Time{}
	t.moved = false
	return tap
}

// linkGuard disables direct activation of one link and re-issues it only for
// taps on the link's parent.
type linkGuard struct {
	link    *Node
	surface *Node
	tracker tapTracker
	active  bool // a press started on the surface
}

// guardLinks disables every link under root and subscribes tap detection on
// each link's parent. Handles are added to subs.
func guardLinks(scene *Scene, root *Node, subs *Subscriptions) []*linkGuard {
	links := root.QueryAll((*Node).IsLink)
	guards := make([]*linkGuard, 0, len(links))
	for _, link := range links {
		surface := link.Parent
		if surface == nil {
			continue
		}
		link.Interactable = false
		g := &linkGuard{link: link, surface: surface}
		guards = append(guards, g)

		subs.Add(
			scene.OnPointerDown(func(ctx PointerContext) {
				if !surface.Contains(ctx.Node) {
					return
				}
				g.active = true
				g.tracker.down(ctx.GlobalX, ctx.GlobalY, scene.Now())
			}),
			scene.OnPointerMove(func(ctx PointerContext) {
				if g.active {
					g.tracker.move(ctx.GlobalX, ctx.GlobalY)
				}
			}),
			scene.OnPointerUp(func(ctx PointerContext) {
				if !g.active {
					return
				}
				g.active = false
				if g.tracker.up(ctx.GlobalX, ctx.GlobalY, scene.Now()) {
					scene.debugLogf("link %q activated", g.link.Href)
					g.link.Activate()
				}
			}),
		)
	}
	return guards
}
