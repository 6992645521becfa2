package smooothy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one with TweenScale and either call Update(dt)
// yourself or hand it to Scene.Play. If the target node is disposed, the
// group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Finish jumps every field to its end value and marks the group done.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		// Set past the end; gween clamps to the final value.
		val, _ := g.tweens[i].Set(1e9)
		*g.fields[i] = float64(val)
	}
	g.Done = true
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY
// from the given start values to the targets.
func TweenScale(node *Node, fromSX, fromSY, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(fromSX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(fromSY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// Play runs g every frame until it is done and returns the task driving it.
// Stopping the task leaves the fields wherever the tween had reached.
func (s *Scene) Play(g *TweenGroup) *FrameTask {
	var task *FrameTask
	task = s.Schedule(func(dt float64) {
		g.Update(float32(dt))
		if g.Done {
			task.Stop()
		}
	})
	return task
}
