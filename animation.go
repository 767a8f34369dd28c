package dragkit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via TweenPosition or TweenRect and call Update(dt) each frame.
// When the tweens end the exact target values are written, so a restored
// node lands on its captured geometry without float32 drift. If the target
// node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	ends   [4]float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
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
		if finished {
			*g.fields[i] = g.ends[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	g.Done = true
	if g.target != nil && g.target.IsDisposed() {
		return
	}
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.ends[g.count] = to
	g.count++
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenRect creates a TweenGroup that animates position and size of node to r.
func TweenRect(node *Node, r Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, r.X, duration, fn)
	g.add(&node.Y, r.Y, duration, fn)
	g.add(&node.Width, r.Width, duration, fn)
	g.add(&node.Height, r.Height, duration, fn)
	return g
}

// Animation is a set of tween groups that together hold a session open
// until every group finished.
type Animation struct {
	groups []*TweenGroup
	Done   bool
}

// Add appends a group to the animation.
func (a *Animation) Add(g *TweenGroup) {
	a.groups = append(a.groups, g)
}

// Update advances every group by dt seconds.
func (a *Animation) Update(dt float32) {
	if a.Done {
		return
	}
	done := true
	for _, g := range a.groups {
		g.Update(dt)
		if !g.Done {
			done = false
		}
	}
	a.Done = done
}

// Finish short-circuits the animation, leaving every field at its end value.
func (a *Animation) Finish() {
	for _, g := range a.groups {
		g.Finish()
	}
	a.Done = true
}

// animateBack moves each node back to the matching start position. With a
// zero duration the nodes are placed immediately and nil is returned.
func (c *Controller) animateBack(nodes []*Node, starts []Vec2) *Animation {
	d := float32(c.opts.AbortAnimation.Seconds())
	if d <= 0 {
		for i, n := range nodes {
			n.X, n.Y = starts[i].X, starts[i].Y
		}
		return nil
	}
	fn := c.opts.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	a := &Animation{}
	for i, n := range nodes {
		if n.X == starts[i].X && n.Y == starts[i].Y {
			continue
		}
		a.Add(TweenPosition(n, starts[i].X, starts[i].Y, d, fn))
	}
	if len(a.groups) == 0 {
		return nil
	}
	return a
}

// animateRect restores node to r, animated when a duration is configured.
func (c *Controller) animateRect(node *Node, r Rect) *Animation {
	d := float32(c.opts.AbortAnimation.Seconds())
	if d <= 0 || node.LocalRect() == r {
		node.X, node.Y, node.Width, node.Height = r.X, r.Y, r.Width, r.Height
		return nil
	}
	fn := c.opts.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	a := &Animation{}
	a.Add(TweenRect(node, r, d, fn))
	return a
}
