package smooothy

import (
	"fmt"
	"math"
)

// Core mounts an Engine on a container node. The container's direct
// children are the slides; they are captured once at construction.
//
// Core lays the slides out in a row, translates the container by the eased
// position every frame, turns pointer gestures on the container into
// engine calls, and tracks the container width across resizes.
type Core struct {
	scene     *Scene
	container *Node
	items     []*Node
	engine    *Engine

	subs      Subscriptions
	task      *FrameTask
	pointerID int // pointer driving the current drag
	destroyed bool

	onChange func(current, previous int)
}

// NewCore builds a slider core over container's children. It returns
// ErrNoContainer when scene or container is nil and ErrNoSlides when the
// container has no children.
func NewCore(scene *Scene, container *Node, cfg Config) (*Core, error) {
	if scene == nil || container == nil {
		return nil, fmt.Errorf("new core: %w", ErrNoContainer)
	}
	items := append([]*Node(nil), container.Children()...)
	engine, err := NewEngine(len(items), cfg)
	if err != nil {
		return nil, fmt.Errorf("new core %q: %w", container.Name, err)
	}

	c := &Core{
		scene:     scene,
		container: container,
		items:     items,
		engine:    engine,
		pointerID: -1,
	}
	engine.OnChange = c.handleChange

	c.setupStyles()
	c.setupEvents()
	c.UpdateDimensions()
	c.task = scene.Schedule(c.update)
	return c, nil
}

// Engine returns the underlying state machine.
func (c *Core) Engine() *Engine { return c.engine }

// Container returns the node the slider is mounted on.
func (c *Core) Container() *Node { return c.container }

// Items returns the slides captured at construction. The returned slice
// MUST NOT be mutated.
func (c *Core) Items() []*Node { return c.items }

// SetOnChange sets the hook called with (current, previous) when the display
// index changes.
func (c *Core) SetOnChange(fn func(current, previous int)) {
	c.onChange = fn
}

// GoToIndex navigates to index; see Engine.GoToIndex.
func (c *Core) GoToIndex(index int) { c.engine.GoToIndex(index) }

// GoToNext advances one slide; see Engine.GoToNext.
func (c *Core) GoToNext() { c.engine.GoToNext() }

// GoToPrev steps back one slide; see Engine.GoToPrev.
func (c *Core) GoToPrev() { c.engine.GoToPrev() }

func (c *Core) handleChange(current, previous int) {
	if c.onChange != nil {
		c.onChange(current, previous)
	}
}

// setupStyles sets the grab affordance on draggable containers. Slide sizes
// are applied by UpdateDimensions.
func (c *Core) setupStyles() {
	if c.engine.cfg.Draggable {
		c.container.Cursor = CursorGrab
	}
}

func (c *Core) setupEvents() {
	if c.engine.cfg.Draggable {
		c.subs.Add(
			c.scene.OnPointerDown(c.handlePointerDown),
			c.scene.OnPointerMove(c.handlePointerMove),
			c.scene.OnPointerUp(c.handlePointerUp),
		)
	}
	c.subs.Add(c.scene.OnResize(func(ResizeContext) { c.handleResize() }))
}

// handlePointerDown starts a drag for a primary press inside the container.
// The pressed node captures the pointer so the gesture keeps reporting to it
// after the pointer leaves the viewport.
func (c *Core) handlePointerDown(ctx PointerContext) {
	if c.pointerID >= 0 || ctx.Button != MouseButtonLeft || !c.container.Contains(ctx.Node) {
		return
	}
	c.pointerID = ctx.PointerID
	c.scene.CapturePointer(ctx.PointerID, ctx.Node)
	c.engine.PointerDown(ctx.GlobalX, ctx.GlobalY)
	c.container.Cursor = CursorGrabbing
}

func (c *Core) handlePointerMove(ctx PointerContext) {
	if ctx.PointerID != c.pointerID {
		return
	}
	c.engine.PointerMove(ctx.GlobalX, ctx.GlobalY)
}

func (c *Core) handlePointerUp(ctx PointerContext) {
	if ctx.PointerID != c.pointerID {
		return
	}
	c.scene.ReleasePointer(c.pointerID)
	c.pointerID = -1
	c.container.Cursor = CursorGrab
	c.engine.PointerUp()
}

func (c *Core) handleResize() {
	c.UpdateDimensions()
	if !c.engine.Dragging() {
		c.engine.Resnap()
	}
}

// UpdateDimensions re-reads the container width into the engine and lays
// the slides out in a row. It does not move the target position.
func (c *Core) UpdateDimensions() {
	w := c.container.Width
	c.engine.SetItemWidth(w)
	for i, item := range c.items {
		item.SetSize(w, c.container.Height)
		item.SetPosition(float64(i)*w, 0)
	}
	c.scene.debugLogf("slider %q item width %v", c.container.Name, w)
}

// update is the per-frame animation step.
func (c *Core) update(float64) {
	pos := c.engine.Step()
	if c.engine.cfg.Infinite {
		c.loopLayout(pos)
	}
	c.container.SetPosition(pos, c.container.Y)
}

// loopLayout moves each slide to the copy of its row slot nearest the
// viewport so that an unbounded logical index never scrolls past the
// content. Slot i sits at i*w + k*N*w for the integer k that keeps it within
// half a span of the visible offset.
func (c *Core) loopLayout(pos float64) {
	w := c.engine.ItemWidth()
	n := len(c.items)
	if w <= 0 || n < 2 {
		return
	}
	span := float64(n) * w
	view := -pos
	for i, item := range c.items {
		base := float64(i) * w
		k := math.Floor((view-base)/span + 0.5)
		x := base + k*span
		if item.X != x {
			item.SetPosition(x, item.Y)
		}
	}
}

// Destroy stops the animation task and removes every subscription. Calling
// Destroy more than once is a no-op.
func (c *Core) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.task.Stop()
	c.subs.RemoveAll()
	c.engine.PointerCancel()
	if c.pointerID >= 0 {
		c.scene.ReleasePointer(c.pointerID)
	}
	c.pointerID = -1
}

// Destroyed reports whether Destroy has been called.
func (c *Core) Destroyed() bool { return c.destroyed }
