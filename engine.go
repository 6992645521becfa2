package smooothy

import (
	"errors"
	"fmt"
	"math"
)

// snapEpsilon is the remaining distance below which the easing loop snaps
// the current position onto the target.
const snapEpsilon = 0.1

var (
	// ErrNoSlides is returned when a slider is built over an empty item set.
	ErrNoSlides = errors.New("smooothy: slider needs at least one slide")
	// ErrNoContainer is returned when the slide container cannot be found.
	ErrNoContainer = errors.New("smooothy: no slide container")
	// ErrInvalidFriction is returned when Config.Friction is outside (0, 1].
	ErrInvalidFriction = errors.New("smooothy: friction must be in (0, 1]")
	// ErrInvalidThreshold is returned when Config.Threshold is negative.
	ErrInvalidThreshold = errors.New("smooothy: threshold must not be negative")
)

// Config holds slider options. Start from DefaultConfig and override fields;
// the zero value disables both infinite mode and dragging.
type Config struct {
	// Infinite enables circular indexing. The logical target index becomes
	// unbounded and the display index wraps into [0, N).
	Infinite bool `yaml:"infinite"`
	// Draggable enables pointer gesture capture on the container.
	Draggable bool `yaml:"draggable"`
	// AnimationSpeed is carried for configuration compatibility. The easing
	// loop is driven by Friction alone.
	AnimationSpeed float64 `yaml:"animation_speed"`
	// Friction is the per-frame interpolation factor in (0, 1]. Higher is
	// snappier; 1 jumps straight to the target.
	Friction float64 `yaml:"friction"`
	// Threshold is the minimum drag distance in pixels that commits a slide
	// change on release.
	Threshold float64 `yaml:"threshold"`
}

// DefaultConfig returns the stock slider options.
func DefaultConfig() Config {
	return Config{
		Infinite:       true,
		Draggable:      true,
		AnimationSpeed: 0.8,
		Friction:       0.15,
		Threshold:      50,
	}
}

// Validate reports whether the numeric options are usable.
func (c Config) Validate() error {
	if !(c.Friction > 0 && c.Friction <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidFriction, c.Friction)
	}
	if c.Threshold < 0 || math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.Threshold)
	}
	return nil
}

// Engine is the host-independent slider state machine. It tracks the display
// index, the logical target index, the eased and target positions, and an
// in-progress drag. All mutation happens on the caller's goroutine; Engine
// performs no locking.
//
// Invariants maintained between calls:
//
//	currentIndex == normalize(targetIndex)            (infinite)
//	currentIndex == targetIndex in [0, N)             (bounded)
//	targetPosition == -targetIndex*itemWidth          (unless dragging)
type Engine struct {
	cfg   Config
	count int

	currentIndex    int
	targetIndex     int
	currentPosition float64
	targetPosition  float64

	dragging  bool
	startX    float64
	startY    float64
	dragDelta float64

	itemWidth float64

	// OnChange is called with the new and previous display index whenever a
	// navigation call changes the display index.
	OnChange func(current, previous int)
}

// NewEngine creates an engine for count slides. count must be at least one
// and cfg must pass Validate.
func NewEngine(count int, cfg Config) (*Engine, error) {
	if count < 1 {
		return nil, fmt.Errorf("new engine: %w", ErrNoSlides)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Engine{cfg: cfg, count: count}, nil
}

// Config returns the options the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Count returns the number of slides.
func (e *Engine) Count() int { return e.count }

// CurrentIndex returns the display index, always in [0, Count()).
func (e *Engine) CurrentIndex() int { return e.currentIndex }

// TargetIndex returns the logical index. In infinite mode it may be negative
// or >= Count(); its distance from zero encodes the wrap count.
func (e *Engine) TargetIndex() int { return e.targetIndex }

// CurrentPosition returns the eased offset written to the host each frame.
func (e *Engine) CurrentPosition() float64 { return e.currentPosition }

// TargetPosition returns the offset the easing loop converges on.
func (e *Engine) TargetPosition() float64 { return e.targetPosition }

// Dragging reports whether a pointer gesture is in progress.
func (e *Engine) Dragging() bool { return e.dragging }

// DragDelta returns the horizontal offset of the current drag.
func (e *Engine) DragDelta() float64 { return e.dragDelta }

// ItemWidth returns the cached slide width.
func (e *Engine) ItemWidth() float64 { return e.itemWidth }

// normalize wraps index into [0, count).
func normalize(index, count int) int {
	return ((index % count) + count) % count
}

// GoToIndex navigates to index. In infinite mode any integer is accepted and
// kept as the logical target; otherwise the index is clamped to the slide
// range. The target position is always recomputed, and OnChange fires only
// when the display index changes.
func (e *Engine) GoToIndex(index int) {
	previous := e.currentIndex

	if e.cfg.Infinite {
		e.currentIndex = normalize(index, e.count)
		e.targetIndex = index
	} else {
		e.currentIndex = max(0, min(index, e.count-1))
		e.targetIndex = e.currentIndex
	}

	e.targetPosition = -float64(e.targetIndex) * e.itemWidth

	if e.currentIndex != previous && e.OnChange != nil {
		e.OnChange(e.currentIndex, previous)
	}
}

// GoToNext advances one slide. In bounded mode it does nothing on the last
// slide.
func (e *Engine) GoToNext() {
	next := e.targetIndex + 1
	if !e.cfg.Infinite && next >= e.count {
		return
	}
	e.GoToIndex(next)
}

// GoToPrev steps back one slide. In bounded mode it does nothing on the
// first slide.
func (e *Engine) GoToPrev() {
	prev := e.targetIndex - 1
	if !e.cfg.Infinite && prev < 0 {
		return
	}
	e.GoToIndex(prev)
}

// PointerDown starts a drag at (x, y).
func (e *Engine) PointerDown(x, y float64) {
	e.dragging = true
	e.startX = x
	e.startY = y
}

// PointerMove tracks the pointer while dragging. The target position follows
// the pointer directly; the index does not change until release.
func (e *Engine) PointerMove(x, _ float64) {
	if !e.dragging {
		return
	}
	delta := x - e.startX
	e.dragDelta = delta
	e.targetPosition = -float64(e.targetIndex)*e.itemWidth + delta
}

// PointerUp ends a drag. A drag further than the threshold commits one step
// (dragging right reveals the previous slide); anything shorter snaps back.
// It reports whether the drag was in progress.
func (e *Engine) PointerUp() bool {
	if !e.dragging {
		return false
	}
	e.dragging = false

	switch {
	case math.Abs(e.dragDelta) > e.cfg.Threshold && e.dragDelta > 0:
		e.GoToPrev()
		// Bounded mode at the first slide leaves the index alone; the target
		// still has to return from the dragged offset.
		e.Resnap()
	case math.Abs(e.dragDelta) > e.cfg.Threshold:
		e.GoToNext()
		e.Resnap()
	default:
		e.GoToIndex(e.targetIndex)
	}

	e.dragDelta = 0
	return true
}

// PointerCancel abandons a drag without committing a slide change.
func (e *Engine) PointerCancel() {
	if !e.dragging {
		return
	}
	e.dragging = false
	e.dragDelta = 0
	e.Resnap()
}

// SetItemWidth caches the slide width. Negative widths are treated as zero.
// The target position is not re-derived; call Resnap for that.
func (e *Engine) SetItemWidth(w float64) {
	e.itemWidth = max(w, 0)
}

// Resnap re-derives the target position from the logical index without
// firing OnChange.
func (e *Engine) Resnap() {
	e.targetPosition = -float64(e.targetIndex) * e.itemWidth
}

// Step advances the easing loop by one frame and returns the current
// position. While dragging the position is left untouched.
func (e *Engine) Step() float64 {
	if e.dragging {
		return e.currentPosition
	}
	distance := e.targetPosition - e.currentPosition
	e.currentPosition += distance * e.cfg.Friction
	if math.Abs(distance) < snapEpsilon {
		e.currentPosition = e.targetPosition
	}
	return e.currentPosition
}
