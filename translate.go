package dragkit

// TranslateStrategy moves an element (or a clone of it) freely in its
// parent's content space, optionally bounded, axis-locked and snapped.
// Related elements follow with the leader's effective delta, so a group
// keeps its shape even when the leader is clamped.
type TranslateStrategy struct{}

// NewTranslateStrategy creates the free translate strategy.
func NewTranslateStrategy() *TranslateStrategy {
	return &TranslateStrategy{}
}

// Mode returns ModeTranslate.
func (t *TranslateStrategy) Mode() Mode { return ModeTranslate }

// Grab accepts the nearest draggable node under the pointer.
func (t *TranslateStrategy) Grab(c *Controller, s *Session, ev PointerEvent) bool {
	hit := HitTest(c.root, ev.X, ev.Y, nil)
	if hit == nil {
		return false
	}
	el := hit.Closest(c.isDraggable)
	if el == nil {
		return false
	}
	s.Element = el
	return true
}

// Start captures the pointer anchor in the parent's content space, clones
// the element when configured and records related start positions.
func (t *TranslateStrategy) Start(c *Controller, s *Session) {
	el := s.Element
	s.anchor = el.Parent.WorldToLocal(s.Start)
	if c.opts.CloneTarget {
		c.proxies.create(s, el, el.Parent, Vec2{el.X, el.Y})
	}
	captureRelated(s)
}

// captureRelated records start positions for related elements that have
// none yet, so RelatedStart is at least as long as Related.
func captureRelated(s *Session) {
	for i := len(s.RelatedStart); i < len(s.Related); i++ {
		var p Vec2
		if r := s.Related[i]; r != nil {
			p = Vec2{r.X, r.Y}
		}
		s.RelatedStart = append(s.RelatedStart, p)
	}
}

// Update positions the subject at start + pointer travel (scroll included),
// then snaps and constrains it, and shifts related elements by the same
// effective delta.
func (t *TranslateStrategy) Update(c *Controller, s *Session) {
	subj := s.subject()
	parent := subj.Parent
	if parent == nil {
		return
	}
	start := s.StartRect.Origin()
	pos := start.Add(parent.WorldToLocal(s.Current).Sub(s.anchor))
	if c.opts.Snap != nil {
		pos = c.opts.Snap(pos)
	}
	pos = c.applyConstraints(subj, start, pos)
	subj.X, subj.Y = pos.X, pos.Y

	delta := pos.Sub(start)
	captureRelated(s)
	for i, r := range s.Related {
		if r == nil || r.IsDisposed() {
			continue
		}
		r.X = s.RelatedStart[i].X + delta.X
		r.Y = s.RelatedStart[i].Y + delta.Y
	}
}

// applyConstraints applies axis locks, the parent's scroll extents when
// Constrain is set, and the explicit X/Y ranges, in that order.
func (c *Controller) applyConstraints(n *Node, start, pos Vec2) Vec2 {
	if c.opts.LockX {
		pos.X = start.X
	}
	if c.opts.LockY {
		pos.Y = start.Y
	}
	if c.opts.Constrain && n.Parent != nil {
		w, h := n.Parent.ContentSize()
		if !c.opts.LockX {
			pos.X = Clamp(pos.X, 0, w-n.Width)
		}
		if !c.opts.LockY {
			pos.Y = Clamp(pos.Y, 0, h-n.Height)
		}
	}
	if !c.opts.LockX {
		pos.X = c.opts.XRange.Clamp(pos.X)
	}
	if !c.opts.LockY {
		pos.Y = c.opts.YRange.Clamp(pos.Y)
	}
	return pos
}

// Finish commits a valid drop (copying the proxy position onto the element
// when cloning) and animates everything back on an invalid one.
func (t *TranslateStrategy) Finish(c *Controller, s *Session, valid bool) *Animation {
	if !valid {
		s.Outcome = OutcomeRestored
		return t.restore(c, s)
	}
	subj := s.subject()
	if subj != s.Element {
		s.Element.X, s.Element.Y = subj.X, subj.Y
	}
	if s.Element.X == s.StartRect.X && s.Element.Y == s.StartRect.Y {
		s.Outcome = OutcomeUnchanged
	} else {
		s.Outcome = OutcomeChanged
	}
	return nil
}

// Abort animates every moved node back to its start position.
func (t *TranslateStrategy) Abort(c *Controller, s *Session) *Animation {
	return t.restore(c, s)
}

func (t *TranslateStrategy) restore(c *Controller, s *Session) *Animation {
	nodes := []*Node{s.subject()}
	starts := []Vec2{s.StartRect.Origin()}
	captureRelated(s)
	for i, r := range s.Related {
		if r == nil || r.IsDisposed() {
			continue
		}
		nodes = append(nodes, r)
		starts = append(starts, s.RelatedStart[i])
	}
	return c.animateBack(nodes, starts)
}
