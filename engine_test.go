package smooothy

import (
	"errors"
	"math"
	"testing"
)

func newTestEngine(t *testing.T, count int, infinite bool) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Infinite = infinite
	e, err := NewEngine(count, cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.SetItemWidth(100)
	return e
}

func TestNewEngineErrors(t *testing.T) {
	tests := []struct {
		name  string
		count int
		cfg   func(*Config)
		want  error
	}{
		{"no slides", 0, nil, ErrNoSlides},
		{"negative count", -3, nil, ErrNoSlides},
		{"zero friction", 3, func(c *Config) { c.Friction = 0 }, ErrInvalidFriction},
		{"friction above one", 3, func(c *Config) { c.Friction = 1.5 }, ErrInvalidFriction},
		{"NaN friction", 3, func(c *Config) { c.Friction = math.NaN() }, ErrInvalidFriction},
		{"negative threshold", 3, func(c *Config) { c.Threshold = -1 }, ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			_, err := NewEngine(tt.count, cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewEngine(%d) error = %v, want %v", tt.count, err, tt.want)
			}
		})
	}
}

func TestNewEngineSingleSlide(t *testing.T) {
	e := newTestEngine(t, 1, true)
	e.GoToNext()
	if e.CurrentIndex() != 0 || e.TargetIndex() != 1 {
		t.Errorf("expected current 0 target 1, got %d/%d", e.CurrentIndex(), e.TargetIndex())
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if !c.Infinite || !c.Draggable {
		t.Error("expected infinite and draggable by default")
	}
	if c.AnimationSpeed != 0.8 || c.Friction != 0.15 || c.Threshold != 50 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		index, count, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{7, 5, 2},
		{-1, 5, 4},
		{-2, 5, 3},
		{-10, 5, 0},
		{-11, 5, 4},
		{3, 1, 0},
	}
	for _, tt := range tests {
		if got := normalize(tt.index, tt.count); got != tt.want {
			t.Errorf("normalize(%d, %d) = %d, want %d", tt.index, tt.count, got, tt.want)
		}
	}
}

func TestGoToIndexInfiniteWraps(t *testing.T) {
	e := newTestEngine(t, 5, true)
	for i := -12; i <= 12; i++ {
		e.GoToIndex(i)
		if e.TargetIndex() != i {
			t.Errorf("GoToIndex(%d): target = %d", i, e.TargetIndex())
		}
		if want := normalize(i, 5); e.CurrentIndex() != want {
			t.Errorf("GoToIndex(%d): current = %d, want %d", i, e.CurrentIndex(), want)
		}
		if want := -float64(i) * 100; e.TargetPosition() != want {
			t.Errorf("GoToIndex(%d): target position = %v, want %v", i, e.TargetPosition(), want)
		}
	}
}

func TestGoToIndexBoundedClamps(t *testing.T) {
	e := newTestEngine(t, 5, false)
	tests := []struct {
		index, want int
	}{
		{2, 2},
		{9, 4},
		{-3, 0},
		{4, 4},
	}
	for _, tt := range tests {
		e.GoToIndex(tt.index)
		if e.CurrentIndex() != tt.want || e.TargetIndex() != tt.want {
			t.Errorf("GoToIndex(%d): current/target = %d/%d, want %d",
				tt.index, e.CurrentIndex(), e.TargetIndex(), tt.want)
		}
	}
}

func TestNavigationScenario(t *testing.T) {
	e := newTestEngine(t, 5, true)

	e.GoToIndex(7)
	if e.CurrentIndex() != 2 || e.TargetIndex() != 7 {
		t.Fatalf("after GoToIndex(7): %d/%d, want 2/7", e.CurrentIndex(), e.TargetIndex())
	}
	e.GoToNext()
	if e.CurrentIndex() != 3 || e.TargetIndex() != 8 {
		t.Fatalf("after GoToNext: %d/%d, want 3/8", e.CurrentIndex(), e.TargetIndex())
	}

	e2 := newTestEngine(t, 5, true)
	e2.GoToPrev()
	e2.GoToPrev()
	if e2.CurrentIndex() != 3 || e2.TargetIndex() != -2 {
		t.Fatalf("after two GoToPrev: %d/%d, want 3/-2", e2.CurrentIndex(), e2.TargetIndex())
	}
	if e2.TargetPosition() != 200 {
		t.Errorf("expected target position 200, got %v", e2.TargetPosition())
	}
}

func TestBoundedEdgesAreNoOps(t *testing.T) {
	e := newTestEngine(t, 3, false)
	calls := 0
	e.OnChange = func(int, int) { calls++ }

	e.GoToPrev()
	if e.CurrentIndex() != 0 || calls != 0 {
		t.Errorf("GoToPrev at 0: current %d, calls %d", e.CurrentIndex(), calls)
	}

	e.GoToIndex(2)
	calls = 0
	e.GoToNext()
	if e.CurrentIndex() != 2 || e.TargetIndex() != 2 || calls != 0 {
		t.Errorf("GoToNext at last: current %d target %d calls %d", e.CurrentIndex(), e.TargetIndex(), calls)
	}
}

func TestOnChangeFiresOnlyOnDisplayChange(t *testing.T) {
	e := newTestEngine(t, 5, true)
	type change struct{ current, previous int }
	var got []change
	e.OnChange = func(c, p int) { got = append(got, change{c, p}) }

	e.GoToIndex(0) // same display index
	e.GoToIndex(2)
	e.GoToIndex(7) // display index still 2
	e.GoToNext()
	e.GoToIndex(-1)

	want := []change{{2, 0}, {3, 2}, {4, 3}}
	if len(got) != len(want) {
		t.Fatalf("expected %d changes, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStepConverges(t *testing.T) {
	e := newTestEngine(t, 5, true)
	e.GoToIndex(1) // target -100

	prev := e.CurrentPosition()
	dist := math.Abs(e.TargetPosition() - prev)
	for i := 0; i < 10; i++ {
		pos := e.Step()
		nd := math.Abs(e.TargetPosition() - pos)
		want := dist * (1 - e.Config().Friction)
		if math.Abs(nd-want) > 1e-9 {
			t.Fatalf("step %d: distance %v, want %v", i, nd, want)
		}
		dist = nd
	}

	for i := 0; i < 500 && e.CurrentPosition() != e.TargetPosition(); i++ {
		e.Step()
	}
	if e.CurrentPosition() != -100 {
		t.Errorf("expected exact snap to -100, got %v", e.CurrentPosition())
	}
}

func TestStepSnapsWithinEpsilon(t *testing.T) {
	e := newTestEngine(t, 2, true)
	e.GoToIndex(1)
	e.currentPosition = -99.95
	if pos := e.Step(); pos != -100 {
		t.Errorf("expected snap to -100, got %v", pos)
	}
}

func TestStepFrozenWhileDragging(t *testing.T) {
	e := newTestEngine(t, 3, true)
	e.GoToIndex(1)
	e.PointerDown(0, 0)
	before := e.CurrentPosition()
	e.Step()
	if e.CurrentPosition() != before {
		t.Errorf("position moved during drag: %v -> %v", before, e.CurrentPosition())
	}
}

func TestPointerMoveFollowsDrag(t *testing.T) {
	e := newTestEngine(t, 5, true)
	e.GoToIndex(2)

	e.PointerMove(500, 0) // ignored, not dragging
	if e.TargetPosition() != -200 {
		t.Fatalf("move without drag changed target: %v", e.TargetPosition())
	}

	e.PointerDown(300, 40)
	e.PointerMove(270, 90)
	if e.DragDelta() != -30 {
		t.Errorf("expected drag delta -30, got %v", e.DragDelta())
	}
	if e.TargetPosition() != -230 {
		t.Errorf("expected target -230, got %v", e.TargetPosition())
	}
	if e.CurrentIndex() != 2 {
		t.Errorf("index changed during drag: %d", e.CurrentIndex())
	}
}

func TestPointerUpThreshold(t *testing.T) {
	tests := []struct {
		name        string
		infinite    bool
		start       int
		delta       float64
		wantCurrent int
		wantTarget  int
	}{
		{"left past threshold", true, 0, -60, 1, 1},
		{"right past threshold", true, 0, 60, 4, -1},
		{"short drag", true, 2, 30, 2, 2},
		{"exactly threshold", true, 2, -50, 2, 2},
		{"bounded right at first", false, 0, 80, 0, 0},
		{"bounded left at last", false, 4, -80, 4, 4},
		{"bounded left", false, 1, -80, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 5, tt.infinite)
			e.GoToIndex(tt.start)
			e.PointerDown(500, 0)
			e.PointerMove(500+tt.delta, 0)
			if !e.PointerUp() {
				t.Fatal("PointerUp reported no drag")
			}
			if e.CurrentIndex() != tt.wantCurrent || e.TargetIndex() != tt.wantTarget {
				t.Errorf("current/target = %d/%d, want %d/%d",
					e.CurrentIndex(), e.TargetIndex(), tt.wantCurrent, tt.wantTarget)
			}
			if want := -float64(tt.wantTarget) * 100; e.TargetPosition() != want {
				t.Errorf("target position = %v, want %v", e.TargetPosition(), want)
			}
			if e.Dragging() || e.DragDelta() != 0 {
				t.Error("drag state not reset")
			}
		})
	}
}

func TestPointerUpWithoutDrag(t *testing.T) {
	e := newTestEngine(t, 3, true)
	calls := 0
	e.OnChange = func(int, int) { calls++ }
	if e.PointerUp() {
		t.Error("expected PointerUp to report no drag")
	}
	if calls != 0 || e.TargetIndex() != 0 {
		t.Error("PointerUp without drag changed state")
	}
}

func TestPointerCancel(t *testing.T) {
	e := newTestEngine(t, 3, true)
	e.PointerDown(100, 0)
	e.PointerMove(20, 0)
	e.PointerCancel()
	if e.Dragging() || e.DragDelta() != 0 || e.TargetPosition() != 0 || e.CurrentIndex() != 0 {
		t.Errorf("cancel left state: dragging=%v delta=%v target=%v index=%d",
			e.Dragging(), e.DragDelta(), e.TargetPosition(), e.CurrentIndex())
	}
}

func TestSetItemWidthAndResnap(t *testing.T) {
	e := newTestEngine(t, 4, true)
	e.GoToIndex(3)

	e.SetItemWidth(250)
	if e.TargetPosition() != -300 {
		t.Errorf("SetItemWidth should not move the target, got %v", e.TargetPosition())
	}
	e.Resnap()
	if e.TargetPosition() != -750 {
		t.Errorf("expected -750 after Resnap, got %v", e.TargetPosition())
	}

	e.SetItemWidth(-10)
	if e.ItemWidth() != 0 {
		t.Errorf("expected negative width clamped to 0, got %v", e.ItemWidth())
	}
}
