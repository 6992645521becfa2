package smooothy

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, input state, frame
// tasks and render settings. All methods must be called from the goroutine
// running the game loop.
type Scene struct {
	root  *Node
	debug bool

	width, height float64

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// LiveInput enables polling Ebitengine for mouse, touch and keyboard
	// state. Run sets it; headless tests leave it off and inject input.
	LiveInput bool

	// DefaultKeyAction runs for every key press no handler prevented.
	DefaultKeyAction func(KeyContext)

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Input state
	handlers    handlerRegistry
	captured    [maxPointers]*Node
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	touchMap    [maxPointers]ebiten.TouchID
	touchUsed   [maxPointers]bool
	touchIDs    []ebiten.TouchID
	keyBuf      []ebiten.Key
	injectQueue []syntheticEvent

	// Frame tasks
	tasks   []*FrameTask
	taskBuf []*FrameTask

	now func() time.Time

	testRunner      *TestRunner
	screenshotQueue []string
	cursor          CursorShape
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	return &Scene{
		root:          root,
		now:           time.Now,
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Size returns the last size passed to Resize.
func (s *Scene) Size() (w, h float64) {
	return s.width, s.height
}

// Resize records a new scene size and notifies resize handlers when it
// changed. Run calls it from Layout.
func (s *Scene) Resize(w, h float64) {
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	ctx := ResizeContext{Width: w, Height: h}
	s.handlers.resize.dispatch(ctx)
	s.debugLogf("resize %vx%v", w, h)
}

// SetClock overrides the time source used for gesture timing.
// Passing nil restores time.Now.
func (s *Scene) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Now returns the current time from the scene clock.
func (s *Scene) Now() time.Time {
	return s.now()
}

// Update processes input, runs node update hooks and advances frame tasks.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// Refresh world transforms first so hit testing sees this frame's
	// positions.
	updateWorldTransform(s.root, identityTransform, false)

	s.processInput()
	runNodeUpdates(s.root, dt)
	s.runTasks(dt)
}

// runNodeUpdates calls OnUpdate depth-first on every node that has one.
func runNodeUpdates(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, c := range n.children {
		runNodeUpdates(c, dt)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and scene and slider activity is logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
