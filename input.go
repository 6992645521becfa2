package smooothy

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	maxPointers  = 10  // pointer 0 = mouse, 1-9 = touch
	dragDeadZone = 4.0 // pixels a press may travel and still click
)

// --- Event contexts ---

// KeyContext carries key press data. Handlers call PreventDefault to stop
// Scene.DefaultKeyAction from running for this press.
type KeyContext struct {
	Key       ebiten.Key
	Modifiers KeyModifiers
	prevented *bool
}

// PreventDefault suppresses the scene's default action for this key press.
func (k KeyContext) PreventDefault() {
	if k.prevented != nil {
		*k.prevented = true
	}
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (k KeyContext) DefaultPrevented() bool {
	return k.prevented != nil && *k.prevented
}

// ResizeContext carries the new scene size.
type ResizeContext struct {
	Width, Height float64
}

// KeyDigit returns the digit for the number-row and numpad digit keys.
func KeyDigit(k ebiten.Key) (int, bool) {
	switch {
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return int(k - ebiten.KeyDigit0), true
	case k >= ebiten.KeyNumpad0 && k <= ebiten.KeyNumpad9:
		return int(k - ebiten.KeyNumpad0), true
	}
	return 0, false
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	moved    bool        // travelled past the drag dead zone since press
	button   MouseButton // button captured at press time
	hasFocus bool        // lastX/lastY hold a real position
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

// handlerList keeps registration order. Handlers may add or remove
// registrations while being dispatched.
type handlerList[T any] struct {
	items []handler[T]
}

func (l *handlerList[T]) add(id uint32, fn func(T)) {
	l.items = append(l.items, handler[T]{id: id, fn: fn})
}

func (l *handlerList[T]) remove(id uint32) {
	for i := range l.items {
		if l.items[i].id == id {
			copy(l.items[i:], l.items[i+1:])
			l.items[len(l.items)-1] = handler[T]{}
			l.items = l.items[:len(l.items)-1]
			return
		}
	}
}

// has reports whether id is still registered.
func (l *handlerList[T]) has(id uint32) bool {
	for i := range l.items {
		if l.items[i].id == id {
			return true
		}
	}
	return false
}

// dispatch calls every handler registered when dispatch began, skipping any
// removed by an earlier handler in the same dispatch.
func (l *handlerList[T]) dispatch(v T) {
	for _, h := range slices.Clone(l.items) {
		if l.has(h.id) {
			h.fn(v)
		}
	}
}

type handlerRegistry struct {
	pointerDown handlerList[PointerContext]
	pointerUp   handlerList[PointerContext]
	pointerMove handlerList[PointerContext]
	keyDown     handlerList[KeyContext]
	resize      handlerList[ResizeContext]
	nextID      uint32
}

func (r *handlerRegistry) count() int {
	return len(r.pointerDown.items) + len(r.pointerUp.items) + len(r.pointerMove.items) +
		len(r.keyDown.items) + len(r.resize.items)
}

// CallbackHandle allows removing a registered scene-level callback.
// The zero value is valid and Remove on it is a no-op.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown.remove(h.id)
	case EventPointerUp:
		h.reg.pointerUp.remove(h.id)
	case EventPointerMove:
		h.reg.pointerMove.remove(h.id)
	case EventKeyDown:
		h.reg.keyDown.remove(h.id)
	case EventResize:
		h.reg.resize.remove(h.id)
	}
}

// Active reports whether the callback is still registered.
func (h CallbackHandle) Active() bool {
	if h.reg == nil {
		return false
	}
	switch h.event {
	case EventPointerDown:
		return h.reg.pointerDown.has(h.id)
	case EventPointerUp:
		return h.reg.pointerUp.has(h.id)
	case EventPointerMove:
		return h.reg.pointerMove.has(h.id)
	case EventKeyDown:
		return h.reg.keyDown.has(h.id)
	case EventResize:
		return h.reg.resize.has(h.id)
	}
	return false
}

// Subscriptions collects handles so an owner can release them together.
type Subscriptions []CallbackHandle

// Add appends handles.
func (s *Subscriptions) Add(h ...CallbackHandle) {
	*s = append(*s, h...)
}

// RemoveAll removes every collected handle and empties the set.
func (s *Subscriptions) RemoveAll() {
	for _, h := range *s {
		h.Remove()
	}
	*s = (*s)[:0]
}

// --- Scene-level event registration ---

func (s *Scene) nextHandlerID() uint32 {
	s.handlers.nextID++
	return s.handlers.nextID
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.pointerDown.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events. It
// fires wherever the pointer is released, like a window-level listener.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.pointerUp.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer movement, with
// or without a button held.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.pointerMove.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnKeyDown registers a scene-level callback for key presses.
func (s *Scene) OnKeyDown(fn func(KeyContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.keyDown.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventKeyDown}
}

// OnResize registers a scene-level callback for size changes.
func (s *Scene) OnResize(fn func(ResizeContext)) CallbackHandle {
	id := s.nextHandlerID()
	s.handlers.resize.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// NumHandlers returns the number of registered scene-level callbacks.
func (s *Scene) NumHandlers() int {
	return s.handlers.count()
}

// CapturePointer routes every following event of pointerID to node instead
// of the node under the pointer, until ReleasePointer or the pointer is
// released.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer ends a capture started with CapturePointer.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// Captured returns the node capturing pointerID, or nil.
func (s *Scene) Captured(pointerID int) *Node {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	return s.captured[pointerID]
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's
// Width x Height box.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.Width <= 0 || n.Height <= 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Invisible subtrees are skipped; a non-interactable node is
// skipped but its children are still considered.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		if !insideClip(n, worldX, worldY) {
			continue
		}
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// insideClip reports whether the point is inside every clipping ancestor.
func insideClip(n *Node, wx, wy float64) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Clip && !p.WorldBounds().Contains(wx, wy) {
			return false
		}
	}
	return true
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update. Injected events take priority;
// live Ebitengine input is polled only when LiveInput is set and nothing was
// injected this frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.LiveInput {
		return
	}
	mods := readModifiers()
	s.processMousePointer(mods)
	s.processTouchPointers(mods)
	s.processKeys(mods)
	s.applyCursor()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range s.touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processKeys dispatches keys that went down this tick.
func (s *Scene) processKeys(mods KeyModifiers) {
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.processKey(k, mods)
	}
}

// processKey dispatches one key press to handlers, then runs the default
// action unless a handler prevented it.
func (s *Scene) processKey(key ebiten.Key, mods KeyModifiers) {
	var prevented bool
	ctx := KeyContext{Key: key, Modifiers: mods, prevented: &prevented}
	s.handlers.keyDown.dispatch(ctx)
	if !prevented && s.DefaultKeyAction != nil {
		s.DefaultKeyAction(ctx)
	}
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(wx, wy)
	}

	movedSinceLast := !ps.hasFocus || wx != ps.lastX || wy != ps.lastY

	switch {
	case pressed && !ps.down:
		if movedSinceLast {
			s.firePointer(&s.handlers.pointerMove, nil, target, pointerID, wx, wy, button, mods)
		}
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.hitNode = target
		ps.moved = false
		s.firePointer(&s.handlers.pointerDown, nodePointerDown, target, pointerID, wx, wy, ps.button, mods)

	case !pressed && ps.down:
		if movedSinceLast {
			s.firePointer(&s.handlers.pointerMove, nil, target, pointerID, wx, wy, ps.button, mods)
		}
		if !ps.moved && ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button, mods)
		}
		s.firePointer(&s.handlers.pointerUp, nodePointerUp, target, pointerID, wx, wy, ps.button, mods)
		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.moved = false

	case movedSinceLast:
		if ps.down && !ps.moved {
			dx := wx - ps.startX
			dy := wy - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > dragDeadZone {
				ps.moved = true
			}
		}
		b := button
		if ps.down {
			b = ps.button
		}
		s.firePointer(&s.handlers.pointerMove, nil, target, pointerID, wx, wy, b, mods)
	}

	ps.lastX, ps.lastY = wx, wy
	ps.hasFocus = true
}

// --- Event dispatch ---

func nodePointerDown(n *Node) func(PointerContext) { return n.OnPointerDown }
func nodePointerUp(n *Node) func(PointerContext) { return n.OnPointerUp }

func (s *Scene) firePointer(list *handlerList[PointerContext], perNode func(*Node) func(PointerContext),
	node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	var lx, ly float64
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
	}
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	// Scene-level handlers first.
	list.dispatch(ctx)
	if node != nil && perNode != nil {
		if fn := perNode(node); fn != nil {
			fn(ctx)
		}
	}
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := ClickContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	// Bubbles from the hit node up to the root.
	for p := node; p != nil; p = p.Parent {
		if p.OnClick != nil {
			p.OnClick(ctx)
		}
	}
}

// --- Cursor ---

// applyCursor sets the system cursor from the node under (or captured by)
// the mouse pointer, walking up to the nearest ancestor that asks for one.
func (s *Scene) applyCursor() {
	ps := &s.pointers[0]
	n := ps.hitNode
	if n == nil {
		n = s.hitTest(ps.lastX, ps.lastY)
	}
	shape := CursorDefault
	for p := n; p != nil; p = p.Parent {
		if p.Cursor != CursorDefault {
			shape = p.Cursor
			break
		}
	}
	if shape != s.cursor {
		s.cursor = shape
		ebiten.SetCursorShape(shape.ebitenCursor())
	}
}
