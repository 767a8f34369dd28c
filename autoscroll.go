package dragkit

// autoScroller scrolls the nearest scrollable ancestor of the dragged
// element while the pointer rests inside the boundary zone. It is stepped
// from Controller.Update; every step that moved the scroll offset requests
// a synthetic update through the controller's serialized update path.
type autoScroller struct {
	target *Node
}

func scrollableOf(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.Closest(func(p *Node) bool { return p.Scrollable })
}

// zoneVelocity returns the scroll direction factor in [-1, 1] for a pointer
// at p relative to the span [lo, hi] with a boundary zone of size zone. The
// factor grows linearly toward the edge.
func zoneVelocity(p, lo, hi, zone float64) float64 {
	if zone <= 0 || hi-lo <= 0 {
		return 0
	}
	if zone > (hi-lo)/2 {
		zone = (hi - lo) / 2
	}
	switch {
	case p < lo+zone:
		return -Clamp((lo+zone-p)/zone, 0, 1)
	case p > hi-zone:
		return Clamp((p-(hi-zone))/zone, 0, 1)
	}
	return 0
}

// step scrolls for dt seconds and reports whether the offset changed.
func (a *autoScroller) step(c *Controller, s *Session, dt float32) bool {
	var from *Node
	if s.Element != nil {
		from = s.Element.Parent
	}
	a.target = scrollableOf(from)
	if a.target == nil || dt <= 0 {
		return false
	}
	r := a.target.WorldRect()
	p := s.Current
	if !r.Contains(p.X, p.Y) {
		return false
	}
	speed := c.opts.ScrollSpeed * float64(dt)
	vx := zoneVelocity(p.X, r.X, r.Right(), c.opts.ScrollZone)
	vy := zoneVelocity(p.Y, r.Y, r.Bottom(), c.opts.ScrollZone)
	if vx == 0 && vy == 0 {
		return false
	}
	ox, oy := a.target.ScrollX, a.target.ScrollY
	a.target.ScrollTo(ox+vx*speed, oy+vy*speed)
	return a.target.ScrollX != ox || a.target.ScrollY != oy
}

func (a *autoScroller) stop() {
	a.target = nil
}
