package smooothy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Structural tags the Slider looks for under its root node.
const (
	TagSlider       = "slider"        // slide container, required
	TagInterface    = "interface"     // holds the optional dots and arrows
	TagDots         = "dots"          // one child per slide
	TagArrows       = "arrows"        // first child is "previous", the rest "next"
	TagSlideContent = "slide-content" // marked active on the current slide
	TagDot          = "dot"           // marked active on the current dot
)

// State classes toggled on slide change.
const (
	ClassActive    = "active"
	ClassActiveDot = "active-dot"
)

// dotPulse is the scale the active dot marker starts from before settling
// back to 1.
const (
	dotPulse         = 1.3
	dotPulseDuration = 0.25
)

// Slider binds a Core to a richer host: indicator dots, arrow buttons,
// keyboard shortcuts, active markers on the current slide and dot, and tap
// detection for links inside slides. It holds the Core rather than
// extending it; navigation rules live in the Engine.
type Slider struct {
	core  *Core
	scene *Scene
	root  *Node

	dots   []*Node
	arrows []*Node

	visible   bool
	subs      Subscriptions
	links     []*linkGuard
	pulse     *FrameTask
	pulseTw   *TweenGroup
	destroyed bool

	// OnSlideChange is called after the active markers have been updated.
	OnSlideChange func(current, previous int)
}

// NewSlider finds the node tagged TagSlider under root, mounts a Core on it
// and wires whatever interface elements are present. It returns
// ErrNoContainer when no slider container exists.
func NewSlider(scene *Scene, root *Node, cfg Config) (*Slider, error) {
	if scene == nil || root == nil {
		return nil, fmt.Errorf("new slider: %w", ErrNoContainer)
	}
	container := root.Query(TagSlider)
	if container == nil {
		return nil, fmt.Errorf("new slider %q: %w", root.Name, ErrNoContainer)
	}
	core, err := NewCore(scene, container, cfg)
	if err != nil {
		return nil, fmt.Errorf("new slider %q: %w", root.Name, err)
	}

	s := &Slider{
		core:    core,
		scene:   scene,
		root:    root,
		visible: true,
	}

	if iface := root.Query(TagInterface); iface != nil {
		s.createInterface(iface)
	}
	s.subs.Add(scene.OnKeyDown(s.handleKey))
	s.links = guardLinks(scene, container, &s.subs)

	core.SetOnChange(s.handleSlideChange)
	// Apply the initial active markers even though nothing changed.
	s.handleSlideChange(0, 0)
	return s, nil
}

// Core returns the mounted slider core.
func (s *Slider) Core() *Core { return s.core }

// Engine returns the slider state machine.
func (s *Slider) Engine() *Engine { return s.core.engine }

// CurrentIndex returns the display index.
func (s *Slider) CurrentIndex() int { return s.core.engine.CurrentIndex() }

// GoToIndex navigates to index.
func (s *Slider) GoToIndex(index int) { s.core.GoToIndex(index) }

// GoToNext advances one slide.
func (s *Slider) GoToNext() { s.core.GoToNext() }

// GoToPrev steps back one slide.
func (s *Slider) GoToPrev() { s.core.GoToPrev() }

// SetVisible gates keyboard handling. Hidden sliders ignore key presses.
func (s *Slider) SetVisible(v bool) { s.visible = v }

// Visible reports whether the slider responds to key presses.
func (s *Slider) Visible() bool { return s.visible }

func (s *Slider) createInterface(iface *Node) {
	if dots := iface.Query(TagDots); dots != nil {
		s.dots = append([]*Node(nil), dots.Children()...)
		for i, dot := range s.dots {
			dot.OnClick = func(ClickContext) { s.GoToIndex(i) }
		}
	}
	if arrows := iface.Query(TagArrows); arrows != nil {
		s.arrows = append([]*Node(nil), arrows.Children()...)
		for i, arrow := range s.arrows {
			if i == 0 {
				arrow.OnClick = func(ClickContext) { s.GoToPrev() }
			} else {
				arrow.OnClick = func(ClickContext) { s.GoToNext() }
			}
		}
	}
}

// marker returns the node tagged tag inside the element at index of list,
// or nil when either is missing.
func marker(list []*Node, index int, tag string) *Node {
	if index < 0 || index >= len(list) {
		return nil
	}
	el := list[index]
	if el.HasTag(tag) {
		return el
	}
	return el.Query(tag)
}

func (s *Slider) handleSlideChange(current, previous int) {
	items := s.core.items
	if m := marker(items, previous, TagSlideContent); m != nil {
		m.RemoveClass(ClassActive)
	}
	if m := marker(items, current, TagSlideContent); m != nil {
		m.AddClass(ClassActive)
	}

	if m := marker(s.dots, previous, TagDot); m != nil {
		m.RemoveClass(ClassActiveDot)
	}
	if m := marker(s.dots, current, TagDot); m != nil {
		m.AddClass(ClassActiveDot)
		s.pulseDot(m)
	}

	s.scene.debugLogf("slider %q slide %d -> %d", s.core.container.Name, previous, current)
	if s.OnSlideChange != nil {
		s.OnSlideChange(current, previous)
	}
}

// pulseDot restarts the scale tween on the newly active dot marker.
func (s *Slider) pulseDot(dot *Node) {
	s.stopPulse()
	s.pulseTw = TweenScale(dot, dotPulse, dotPulse, 1, 1, dotPulseDuration, ease.OutQuad)
	dot.SetScale(dotPulse, dotPulse)
	s.pulse = s.scene.Play(s.pulseTw)
}

// stopPulse settles any running pulse at its final scale.
func (s *Slider) stopPulse() {
	s.pulse.Stop()
	if s.pulseTw != nil {
		s.pulseTw.Finish()
		s.pulseTw = nil
	}
}

func (s *Slider) handleKey(ctx KeyContext) {
	if !s.visible {
		return
	}
	if d, ok := KeyDigit(ctx.Key); ok {
		if s.core.engine.cfg.Infinite || d < s.core.engine.Count() {
			s.GoToIndex(d)
		}
		return
	}
	switch ctx.Key {
	case ebiten.KeyArrowLeft:
		s.GoToPrev()
	case ebiten.KeyArrowRight:
		s.GoToNext()
	case ebiten.KeySpace:
		ctx.PreventDefault()
		s.GoToNext()
	}
}

// Destroy releases every subscription added by the slider and its core and
// stops all animation. The node tree is left as is.
func (s *Slider) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.subs.RemoveAll()
	s.stopPulse()
	for _, n := range s.dots {
		n.OnClick = nil
	}
	for _, n := range s.arrows {
		n.OnClick = nil
	}
	s.core.Destroy()
}
