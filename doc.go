// Package dragkit is a pointer-driven interaction engine for 2D node trees:
// reordering items between containers, moving items freely, and resizing
// items by their edges.
//
// The package has no rendering or device dependencies. A host feeds raw
// pointer, key and focus events into a [Controller] and calls
// [Controller.Update] once per frame; the ebitenhost package does this for
// [Ebitengine] games.
//
// # Quick start
//
//	root := dragkit.NewNode("root", 800, 600)
//	list := dragkit.NewContainer("list", dragkit.LayoutHorizontal)
//	root.AddChild(list)
//	list.AddChild(dragkit.NewNode("a", 100, 40))
//	list.AddChild(dragkit.NewNode("b", 100, 40))
//
//	ctrl := dragkit.NewController(root, dragkit.NewReorderStrategy(), dragkit.DefaultOptions())
//	ctrl.OnDropFinalized(func(s *dragkit.Session) {
//		fmt.Println(s.Element.Name, s.Outcome)
//	})
//
//	ctrl.PointerDown(dragkit.PointerEvent{X: 10, Y: 10})
//	ctrl.PointerMove(dragkit.PointerEvent{X: 160, Y: 10})
//	ctrl.PointerUp(dragkit.PointerEvent{X: 160, Y: 10})
//
// # Sessions
//
// A pointer down on a draggable node creates a [Session] in the grabbed
// state. Once the pointer travels [Options.DragThreshold] pixels the session
// becomes active and the [Strategy] tracks every move. Release finalizes it;
// Escape, focus loss or [Controller.Abort] abort it. Invalid drops and aborts
// restore the element, optionally with a tween (via [gween]).
//
// Handlers registered with OnDragStart and OnDrop may call [Session.Defer]
// to suspend the session until the returned channel receives a verdict,
// which may be sent from any goroutine.
//
// # Strategies
//
//   - [ReorderStrategy] floats a proxy under the pointer and moves the real
//     element between sibling gaps, across containers.
//   - [TranslateStrategy] moves the element (or a clone) in its parent's
//     content space with optional bounds, axis locks and snapping.
//   - [ResizeStrategy] drags the leading or trailing edge along one axis,
//     through explicit handle children or virtual handle zones.
//
// Lifecycle notifications can be mirrored into a [Donburi] world with the
// dragkit/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package dragkit
