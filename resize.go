package dragkit

import "math"

// ResizeStrategy changes one dimension of an element by dragging its
// leading or trailing edge.
type ResizeStrategy struct{}

// NewResizeStrategy creates the edge resize strategy.
func NewResizeStrategy() *ResizeStrategy {
	return &ResizeStrategy{}
}

// Mode returns ModeResize.
func (r *ResizeStrategy) Mode() Mode { return ModeResize }

// EffectiveHandleSize returns the size of each virtual handle. Handles
// shrink symmetrically when the element is too small to host them at full
// size, down to zero.
func EffectiveHandleSize(configured, extent, reserved float64, handles int) float64 {
	if handles <= 0 {
		return 0
	}
	size := math.Min(configured, (extent-reserved)/float64(handles))
	if size < 0 {
		return 0
	}
	return size
}

// Grab accepts a pointer down on an explicit handle child, or inside the
// virtual handle zone of a resizable element.
func (r *ResizeStrategy) Grab(c *Controller, s *Session, ev PointerEvent) bool {
	hit := HitTest(c.root, ev.X, ev.Y, nil)
	if hit == nil {
		return false
	}
	if hit.Handle != EdgeNone && hit.Parent != nil && c.isDraggable(hit.Parent) {
		s.Element = hit.Parent
		s.Edge = hit.Handle
		return true
	}
	el := hit.Closest(c.isDraggable)
	if el == nil {
		return false
	}
	edge := c.edgeAt(el, ev.Pos())
	if edge == EdgeNone {
		return false
	}
	s.Element = el
	s.Edge = edge
	return true
}

// edgeAt hit-tests the virtual handle zones of n at screen point p.
func (c *Controller) edgeAt(n *Node, p Vec2) Edge {
	rect := n.WorldRect()
	if !rect.Contains(p.X, p.Y) {
		return EdgeNone
	}
	axis := c.opts.Axis
	extent := extentOf(rect, axis)
	size := c.opts.HandleSize
	if c.opts.DynamicHandleSize {
		size = EffectiveHandleSize(size, extent, c.opts.ReservedSpace, c.opts.handleCount())
	}
	if size <= 0 {
		return EdgeNone
	}
	local := along(p, axis) - startOf(rect, axis)
	if c.opts.LeadingHandle && local >= 0 && local <= size {
		return EdgeLeading
	}
	if c.opts.TrailingHandle && local <= extent && local >= extent-size {
		return EdgeTrailing
	}
	return EdgeNone
}

// Start fixes the anchor (the edge opposite the grabbed one) in the
// parent's content space.
func (r *ResizeStrategy) Start(c *Controller, s *Session) {
	el := s.Element
	axis := c.opts.Axis
	if c.opts.CloneTarget {
		c.proxies.create(s, el, el.Parent, Vec2{el.X, el.Y})
	}
	lo := startOf(s.StartRect, axis)
	hi := lo + extentOf(s.StartRect, axis)
	if s.Edge == EdgeTrailing {
		s.edgeAnchor, s.edgeStart = lo, hi
	} else {
		s.edgeAnchor, s.edgeStart = hi, lo
	}
	s.pointerEdge = along(el.Parent.WorldToLocal(s.Start), axis)
	s.Outcome = OutcomeUnchanged
}

// Update moves the active edge by the pointer travel, clamps the extent and
// flips the active edge when edge switching is allowed and the drag crossed
// the anchor.
func (r *ResizeStrategy) Update(c *Controller, s *Session) {
	subj := s.subject()
	if subj.Parent == nil {
		return
	}
	axis := c.opts.Axis
	p := along(subj.Parent.WorldToLocal(s.Current), axis)
	edgePos := s.edgeStart + (p - s.pointerEdge)

	edge := s.Edge
	var extent float64
	if c.opts.AllowEdgeSwitch {
		raw := edgePos - s.edgeAnchor
		if raw >= 0 {
			edge, extent = EdgeTrailing, raw
		} else {
			edge, extent = EdgeLeading, -raw
		}
	} else if edge == EdgeTrailing {
		extent = edgePos - s.edgeAnchor
	} else {
		extent = s.edgeAnchor - edgePos
	}
	lo, hi := c.opts.sizeLimits(axis)
	extent = Clamp(extent, math.Max(lo, 0), hi)

	start := s.edgeAnchor
	if edge == EdgeLeading {
		start = s.edgeAnchor - extent
	}
	setAxis(subj, axis, start, extent)
	s.Edge = edge

	if subj.LocalRect() == s.StartRect {
		s.Outcome = OutcomeUnchanged
	} else {
		s.Outcome = OutcomeChanged
	}
	if subj.Parent.Layout != LayoutNone {
		subj.Parent.relayout()
	}
}

func setAxis(n *Node, axis Axis, start, extent float64) {
	if axis == AxisVertical {
		n.Y, n.Height = start, extent
		return
	}
	n.X, n.Width = start, extent
}

// Finish commits a valid resize and reports changed or unchanged; an
// invalid one is restored.
func (r *ResizeStrategy) Finish(c *Controller, s *Session, valid bool) *Animation {
	if !valid {
		s.Outcome = OutcomeRestored
		return r.restore(c, s)
	}
	subj := s.subject()
	if subj != s.Element {
		s.Element.X, s.Element.Y = subj.X, subj.Y
		s.Element.Width, s.Element.Height = subj.Width, subj.Height
		if p := s.Element.Parent; p != nil && p.Layout != LayoutNone {
			p.relayout()
		}
	}
	if s.Element.LocalRect() == s.StartRect {
		s.Outcome = OutcomeUnchanged
	} else {
		s.Outcome = OutcomeChanged
	}
	return nil
}

// Abort restores the start geometry.
func (r *ResizeStrategy) Abort(c *Controller, s *Session) *Animation {
	return r.restore(c, s)
}

func (r *ResizeStrategy) restore(c *Controller, s *Session) *Animation {
	subj := s.subject()
	anim := c.animateRect(subj, s.StartRect)
	if anim == nil {
		if p := subj.Parent; p != nil && p.Layout != LayoutNone {
			p.relayout()
		}
	}
	return anim
}
