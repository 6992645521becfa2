// Package smooothy is a drag and swipe carousel for [Ebitengine].
//
// A slider is mounted on a container [Node] whose children are the slides.
// It eases toward the selected slide every frame, follows mouse and touch
// drags, wraps around in infinite mode, and keeps dot indicators, arrow
// buttons, keyboard shortcuts and "active" markers in sync.
//
// # Quick start
//
// Build a node tree using the structural tags, then mount a [Slider] on it:
//
//	scene := smooothy.NewScene()
//	root := smooothy.NewContainer("carousel")
//
//	track := smooothy.NewContainer("track").Tag(smooothy.TagSlider)
//	track.SetSize(640, 360)
//	for i := range 5 {
//		track.AddChild(smooothy.NewBox(fmt.Sprint("slide", i), 0, 0, colors[i]))
//	}
//	root.AddChild(track)
//	scene.Root().AddChild(root)
//
//	slider, err := smooothy.NewSlider(scene, root, smooothy.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer slider.Destroy()
//
//	smooothy.Run(scene, smooothy.RunConfig{Title: "Slides", Width: 640, Height: 360})
//
// # Layers
//
// [Engine] is the pure state machine: display and logical index, eased and
// target position, drag tracking. It has no host dependency and can be
// driven directly.
//
// [Core] binds an Engine to a container: it lays the slides out in a row,
// subscribes to pointer and resize events on the [Scene], and runs a
// [FrameTask] that writes the eased position to the container every tick.
//
// [Slider] holds a Core and adds the interface: dots (tag [TagDots]),
// arrows ([TagArrows]), keyboard, active classes ([ClassActive],
// [ClassActiveDot]) and tap detection for link nodes.
//
// # Scene
//
// [Scene] is a small retained-mode node tree. Scene-level subscriptions
// ([Scene.OnPointerDown], [Scene.OnKeyDown], [Scene.OnResize], ...) return a
// [CallbackHandle] whose Remove unregisters the callback. Input can be
// injected for tests and scripted runs with [Scene.InjectDrag],
// [Scene.InjectKey] and friends, or with a JSON [TestRunner].
//
// Everything runs on the game loop goroutine; nothing is safe for
// concurrent use.
//
// [Ebitengine]: https://ebitengine.org
package smooothy
