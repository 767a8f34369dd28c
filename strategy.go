package dragkit

// Strategy implements one interaction mode. The Controller owns the session
// lifecycle and calls into the strategy at each step:
//
//   - Grab inspects a pointer-down and fills in s.Element (and s.Edge for
//     resize). Returning false rejects the grab and no session is created.
//   - Start runs once, when the threshold is crossed and no handler vetoed.
//   - Update runs for every pointer sample while active, including
//     samples synthesized by auto-scroll.
//   - Finish applies the outcome on finalize; Abort restores. Both may
//     return an animation that must end before the session is released.
type Strategy interface {
	Mode() Mode
	Grab(c *Controller, s *Session, ev PointerEvent) bool
	Start(c *Controller, s *Session)
	Update(c *Controller, s *Session)
	Finish(c *Controller, s *Session, valid bool) *Animation
	Abort(c *Controller, s *Session) *Animation
}

// dropValidator is implemented by strategies that reject some drops as a
// matter of policy before EventDrop fires.
type dropValidator interface {
	validDrop(c *Controller, s *Session) bool
}

// defaultDraggable accepts any attached, non-handle, non-proxy node.
func defaultDraggable(n *Node) bool {
	return n.Parent != nil && n.Handle == EdgeNone && n.Flags&FlagProxy == 0
}

// defaultContainer treats flow containers as reorder containers.
func defaultContainer(n *Node) bool {
	return n.Layout != LayoutNone
}
