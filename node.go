package smooothy

import "github.com/hajimehoshi/ebiten/v2"

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// nodeIDCounter is a plain counter; the scene is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the host element the slider mounts on. Nodes form a tree rooted at
// Scene.Root; children are positioned relative to their parent.
//
// Tags play the role of structural markers ("slider", "dots",
// "slide-content", ...) and are looked up with Query. Classes are mutable
// state markers ("active") toggled by the slider controller.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Width and Height are in local units before scale.
	X, Y          float64
	ScaleX        float64
	ScaleY        float64
	Width, Height float64

	// Computed during Scene.Update.
	worldTransform [6]float64
	transformDirty bool

	// Visibility & interaction
	Visible      bool
	Interactable bool
	// Clip restricts drawing of descendants to this node's bounds.
	Clip bool

	// Appearance
	Color       Color
	ActiveColor Color // used instead of Color while the node has the "active" class
	Label       string
	Cursor      CursorShape
	customImage *ebiten.Image

	// Structure
	tags    map[string]struct{}
	classes map[string]struct{}

	// Href marks the node as a link. Activate calls OnActivate.
	Href       string
	OnActivate func(n *Node)

	// Per-node callbacks (nil by default)
	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnClick       func(ClickContext)
	OnUpdate      func(dt float64)

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a node with no visual representation. Containers are
// hit-testable only when they are interactable and have a size.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewBox creates a solid rectangle of the given size.
func NewBox(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Width: w, Height: h, Color: c}
	nodeDefaults(n)
	n.Interactable = true
	return n
}

// NewLink creates an interactive box that navigates to href when activated.
func NewLink(name, href string, w, h float64, c Color) *Node {
	n := NewBox(name, w, h, c)
	n.Href = href
	n.Label = href
	return n
}

// SetCustomImage sets an image drawn in place of the node's solid fill.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// CustomImage returns the user-provided image, or nil if not set.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("smooothy: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("smooothy: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// AddChildren appends each child in order.
func (n *Node) AddChildren(children ...*Node) {
	for _, c := range children {
		n.AddChild(c)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("smooothy: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at index, or nil when index is out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// --- Tags and classes ---

// Tag adds structural markers to the node and returns it for chaining.
func (n *Node) Tag(tags ...string) *Node {
	if n.tags == nil {
		n.tags = make(map[string]struct{}, len(tags))
	}
	for _, t := range tags {
		n.tags[t] = struct{}{}
	}
	return n
}

// HasTag reports whether the node carries tag.
func (n *Node) HasTag(tag string) bool {
	_, ok := n.tags[tag]
	return ok
}

// Query returns the first descendant (depth-first, excluding n) carrying tag,
// or nil.
func (n *Node) Query(tag string) *Node {
	for _, c := range n.children {
		if c.HasTag(tag) {
			return c
		}
		if found := c.Query(tag); found != nil {
			return found
		}
	}
	return nil
}

// QueryAll returns every descendant (depth-first, excluding n) matching fn.
func (n *Node) QueryAll(fn func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.children {
			if fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// AddClass sets a state marker on the node.
func (n *Node) AddClass(class string) {
	if n.classes == nil {
		n.classes = make(map[string]struct{}, 1)
	}
	n.classes[class] = struct{}{}
}

// RemoveClass clears a state marker. Removing an absent class is a no-op.
func (n *Node) RemoveClass(class string) {
	delete(n.classes, class)
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	_, ok := n.classes[class]
	return ok
}

// --- Links ---

// IsLink reports whether the node has a navigation target.
func (n *Node) IsLink() bool {
	return n.Href != ""
}

// Activate performs the node's link navigation by calling OnActivate.
func (n *Node) Activate() {
	if n.OnActivate != nil {
		n.OnActivate(n)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.customImage = nil
	n.OnActivate = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnClick = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
