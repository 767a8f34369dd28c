package dragkit

// ReorderStrategy moves the real element between sibling gaps of one or
// more containers while a floating clone follows the pointer.
type ReorderStrategy struct{}

// NewReorderStrategy creates the container reorder strategy.
func NewReorderStrategy() *ReorderStrategy {
	return &ReorderStrategy{}
}

// Mode returns ModeReorder.
func (r *ReorderStrategy) Mode() Mode { return ModeReorder }

// Grab accepts the draggable child of a container under the pointer.
func (r *ReorderStrategy) Grab(c *Controller, s *Session, ev PointerEvent) bool {
	hit := HitTest(c.root, ev.X, ev.Y, nil)
	if hit == nil {
		return false
	}
	el := hit.Closest(func(n *Node) bool {
		return n.Parent != nil && c.isContainer(n.Parent) && c.isDraggable(n)
	})
	if el == nil {
		return false
	}
	s.Element = el
	return true
}

// Start floats a clone of the element in the overlay at the element's
// current screen position.
func (r *ReorderStrategy) Start(c *Controller, s *Session) {
	at := c.overlay.WorldToLocal(s.Element.WorldOrigin())
	c.proxies.create(s, s.Element, c.overlay, at)
}

// Update moves the proxy to the raw pointer and relocates the element
// before or after the sibling under the pointer, split at the sibling's
// center.
func (r *ReorderStrategy) Update(c *Controller, s *Session) {
	p := s.Current
	c.proxies.moveTo(s, c.overlay.WorldToLocal(p.Sub(s.Offset)))

	el := s.Element
	skip := func(n *Node) bool {
		return n == el || n.Flags&FlagProxy != 0
	}
	hit := HitTest(c.root, p.X, p.Y, skip)
	if hit == nil {
		return
	}
	container := hit.Closest(c.isContainer)
	if container == nil || el.Contains(container) {
		return
	}
	s.retarget(container)

	target := childAt(container, p.X, p.Y, skip)
	if target == nil {
		// Empty space: join the container at the end unless the element
		// already lives there.
		if el.Parent != container {
			container.AddChild(el)
		}
		return
	}
	if insertBefore(container, target.WorldRect(), p) {
		if target.PreviousSibling() != el {
			container.InsertBefore(el, target)
		}
	} else if target.NextSibling() != el {
		container.InsertAfter(el, target)
	}
}

// insertBefore reports whether p falls on the leading half of rect r in
// container's flow direction.
func insertBefore(container *Node, r Rect, p Vec2) bool {
	center := r.Center()
	if container.Layout == LayoutVertical {
		return p.Y < center.Y
	}
	if container.RightToLeft {
		return p.X > center.X
	}
	return p.X < center.X
}

// validDrop rejects a drop back onto the original slot when configured.
func (r *ReorderStrategy) validDrop(c *Controller, s *Session) bool {
	if !c.opts.IgnoreSamePositionDrop {
		return true
	}
	return !s.Original.Matches(s.Element)
}

// Finish keeps the new placement of a valid drop and restores an invalid one.
func (r *ReorderStrategy) Finish(c *Controller, s *Session, valid bool) *Animation {
	if valid {
		if s.Original.Matches(s.Element) {
			s.Outcome = OutcomeUnchanged
		} else {
			s.Outcome = OutcomeChanged
		}
		return nil
	}
	restorePosition(s.Element, s.Original)
	s.Outcome = OutcomeRestored
	return nil
}

// Abort restores the original placement.
func (r *ReorderStrategy) Abort(c *Controller, s *Session) *Animation {
	restorePosition(s.Element, s.Original)
	return nil
}

// restorePosition puts n back at p, preferring the next sibling as anchor so
// concurrent structural changes elsewhere in the container are tolerated.
func restorePosition(n *Node, p Position) {
	switch {
	case p.Container == nil:
		n.RemoveFromParent()
	case p.Next != nil && p.Next.Parent == p.Container && p.Next != n:
		p.Container.InsertBefore(n, p.Next)
	case p.Previous != nil && p.Previous.Parent == p.Container && p.Previous != n:
		p.Container.InsertAfter(n, p.Previous)
	case p.Previous == nil:
		p.Container.AddChildAt(n, 0)
	default:
		p.Container.AddChild(n)
	}
}
