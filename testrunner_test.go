package smooothy

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "click", "x": 10, "y": 20},
		{"action": "key", "key": "ArrowRight"},
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 5},
		{"action": "resize", "width": 320, "height": 200},
		{"action": "wait", "frames": 2},
		{"action": "screenshot", "label": "end"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].X != 10 || runner.steps[1].Key != "ArrowRight" || runner.steps[2].Frames != 5 {
		t.Errorf("steps decoded wrong: %+v", runner.steps)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{bad`},
		{"empty steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "fly"}]}`},
		{"unknown key", `{"steps": [{"action": "key", "key": "F13"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene()
	data := []byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First step call: click queues press+release (2 events).
	runner.step(s)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	s.processInput()
	s.processInput()

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()
	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i+1)
		}
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerStep_KeyAndResize(t *testing.T) {
	s := NewScene()
	data := []byte(`{"steps": [
		{"action": "resize", "width": 320, "height": 200},
		{"action": "key", "key": "Space"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	var keys []ebiten.Key
	s.OnKeyDown(func(ctx KeyContext) { keys = append(keys, ctx.Key) })
	s.SetTestRunner(runner)

	for range 4 {
		s.Update()
	}
	if w, h := s.Size(); w != 320 || h != 200 {
		t.Errorf("Size = %vx%v, want 320x200", w, h)
	}
	if len(keys) != 1 || keys[0] != ebiten.KeySpace {
		t.Errorf("expected Space, got %v", keys)
	}
	if !runner.Done() {
		t.Error("expected runner done")
	}
}

func TestRunnerDrivesSlider(t *testing.T) {
	f := newSliderFixture(3, true)
	s := f.mount(t, DefaultConfig())

	data := []byte(`{"steps": [
		{"action": "drag", "fromX": 90, "fromY": 25, "toX": 10, "toY": 25, "frames": 4},
		{"action": "key", "key": "ArrowRight"},
		{"action": "click", "x": 5, "y": 105}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	f.scene.SetTestRunner(runner)

	var seen []int
	s.OnSlideChange = func(cur, _ int) { seen = append(seen, cur) }
	for i := 0; i < 100 && !runner.Done(); i++ {
		f.scene.Update()
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	want := []int{1, 2, 0}
	if len(seen) != len(want) {
		t.Fatalf("expected changes %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("change %d = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()
	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if len(s.screenshotQueue) != 0 {
		t.Error("runner advanced before the inject queue drained")
	}

	s.processInput()
	s.processInput()
	runner.step(s)
	if len(s.screenshotQueue) != 1 {
		t.Errorf("expected screenshot after drain, got %v", s.screenshotQueue)
	}
}
