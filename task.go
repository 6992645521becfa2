package smooothy

// FrameTask is a recurring callback run once per Scene.Update until stopped.
// It replaces a self-rescheduling animation frame callback with an owned
// handle that can be cancelled.
type FrameTask struct {
	fn      func(dt float64)
	stopped bool
}

// Stop cancels the task. The task does not run again, including later in the
// frame it was stopped in. Stop is idempotent.
func (t *FrameTask) Stop() {
	if t == nil {
		return
	}
	t.stopped = true
	t.fn = nil
}

// Stopped reports whether Stop has been called.
func (t *FrameTask) Stopped() bool {
	return t == nil || t.stopped
}

// Schedule registers fn to run every frame, after input processing and node
// update hooks, and returns its handle.
func (s *Scene) Schedule(fn func(dt float64)) *FrameTask {
	t := &FrameTask{fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// NumTasks returns the number of live frame tasks.
func (s *Scene) NumTasks() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// runTasks runs every live task once, then compacts out stopped tasks.
// Tasks scheduled during the run start on the next frame.
func (s *Scene) runTasks(dt float64) {
	s.taskBuf = append(s.taskBuf[:0], s.tasks...)
	for _, t := range s.taskBuf {
		if !t.stopped {
			t.fn(dt)
		}
	}
	clear(s.taskBuf)

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	clear(s.tasks[len(live):])
	s.tasks = live
}
