package smooothy

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestTapTracker(t *testing.T) {
	type move struct{ x, y float64 }
	tests := []struct {
		name    string
		moves   []move
		upX     float64
		upY     float64
		elapsed time.Duration
		want    bool
	}{
		{"quick small tap", nil, 2, 1, 150 * time.Millisecond, true},
		{"far release", nil, 10, 0, 50 * time.Millisecond, false},
		{"slow press", nil, 0, 0, 200 * time.Millisecond, false},
		{"exactly slop", nil, 5, -5, 10 * time.Millisecond, true},
		{"wandered and came back", []move{{3, 0}, {12, 0}, {1, 0}}, 0, 0, 100 * time.Millisecond, false},
		{"vertical wander", []move{{0, 6}}, 0, 0, 100 * time.Millisecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr tapTracker
			tr.down(0, 0, testEpoch)
			for _, m := range tt.moves {
				tr.move(m.x, m.y)
			}
			if got := tr.up(tt.upX, tt.upY, testEpoch.Add(tt.elapsed)); got != tt.want {
				t.Errorf("up = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTapTrackerUpWithoutDown(t *testing.T) {
	var tr tapTracker
	if tr.up(0, 0, testEpoch) {
		t.Error("expected no tap without a press")
	}
	tr.down(0, 0, testEpoch)
	tr.up(0, 0, testEpoch)
	if tr.up(0, 0, testEpoch) {
		t.Error("second release without a press reported a tap")
	}
}

// linkFixture mounts a slider whose first slide content holds an 8x8 link
// at the content origin.
type linkFixture struct {
	*sliderFixture
	link      *Node
	slider    *Slider
	now       time.Time
	activated int
}

func newLinkFixture(t *testing.T) *linkFixture {
	t.Helper()
	lf := &linkFixture{sliderFixture: newSliderFixture(3, true), now: testEpoch}
	lf.link = NewLink("link", "https://example.com", 8, 8, ColorWhite)
	lf.link.OnActivate = func(*Node) { lf.activated++ }
	lf.contents[0].AddChild(lf.link)
	lf.scene.SetClock(func() time.Time { return lf.now })
	lf.slider = lf.mount(t, DefaultConfig())
	return lf
}

// step queues ev, advances the clock by d and runs one frame.
func (lf *linkFixture) step(d time.Duration, ev func()) {
	ev()
	lf.now = lf.now.Add(d)
	lf.scene.Update()
}

func TestGuardedLinkDisablesDirectActivation(t *testing.T) {
	lf := newLinkFixture(t)
	if lf.link.Interactable {
		t.Error("expected link to be non-interactable once guarded")
	}
	if len(lf.slider.links) != 1 || lf.slider.links[0].surface != lf.contents[0] {
		t.Errorf("expected one guard on the content node, got %d", len(lf.slider.links))
	}
}

func TestGuardedLinkTap(t *testing.T) {
	lf := newLinkFixture(t)
	lf.step(0, func() { lf.scene.InjectPress(4, 4) })
	lf.step(120*time.Millisecond, func() { lf.scene.InjectRelease(5, 5) })
	if lf.activated != 1 {
		t.Errorf("expected 1 activation, got %d", lf.activated)
	}
	if lf.slider.CurrentIndex() != 0 {
		t.Errorf("tap changed slide to %d", lf.slider.CurrentIndex())
	}
}

func TestGuardedLinkRejectsDragAndSlowPress(t *testing.T) {
	tests := []struct {
		name  string
		steps []func(lf *linkFixture)
	}{
		{"slow press", []func(*linkFixture){
			func(lf *linkFixture) { lf.step(0, func() { lf.scene.InjectPress(4, 4) }) },
			func(lf *linkFixture) { lf.step(300*time.Millisecond, func() { lf.scene.InjectRelease(4, 4) }) },
		}},
		{"drag out and back", []func(*linkFixture){
			func(lf *linkFixture) { lf.step(0, func() { lf.scene.InjectPress(4, 4) }) },
			func(lf *linkFixture) { lf.step(20*time.Millisecond, func() { lf.scene.InjectMove(30, 4) }) },
			func(lf *linkFixture) { lf.step(20*time.Millisecond, func() { lf.scene.InjectRelease(4, 4) }) },
		}},
		{"press elsewhere on the slide", []func(*linkFixture){
			func(lf *linkFixture) { lf.step(0, func() { lf.scene.InjectPress(60, 40) }) },
			func(lf *linkFixture) { lf.step(20*time.Millisecond, func() { lf.scene.InjectRelease(4, 4) }) },
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := newLinkFixture(t)
			for _, st := range tt.steps {
				st(lf)
			}
			if lf.activated != 0 {
				t.Errorf("expected no activation, got %d", lf.activated)
			}
		})
	}
}

func TestGuardedLinkReleasedOnDestroy(t *testing.T) {
	lf := newLinkFixture(t)
	lf.slider.Destroy()
	lf.step(0, func() { lf.scene.InjectPress(4, 4) })
	lf.step(50*time.Millisecond, func() { lf.scene.InjectRelease(4, 4) })
	if lf.activated != 0 {
		t.Errorf("expected no activation after Destroy, got %d", lf.activated)
	}
}
