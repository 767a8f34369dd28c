package dragkit

// HitTest finds the topmost visible, interactable node under the screen
// point (x, y), searching root and its descendants in painter order (later
// children are on top). Subtrees for which skip returns true are ignored;
// skip may be nil. Scrollable nodes clip hits on their children to their
// own bounds.
func HitTest(root *Node, x, y float64, skip func(*Node) bool) *Node {
	if root == nil {
		return nil
	}
	return hitNode(root, x, y, skip)
}

func hitNode(n *Node, x, y float64, skip func(*Node) bool) *Node {
	if !n.Visible || !n.Interactable || n.disposed {
		return nil
	}
	if skip != nil && skip(n) {
		return nil
	}
	inside := n.WorldRect().Contains(x, y)
	if !n.Scrollable || inside {
		// Iterate backward (reverse painter order): topmost visual node first.
		for i := len(n.children) - 1; i >= 0; i-- {
			if hit := hitNode(n.children[i], x, y, skip); hit != nil {
				return hit
			}
		}
	}
	if inside {
		return n
	}
	return nil
}

// childAt returns the direct child of container under (x, y), ignoring
// children for which skip returns true.
func childAt(container *Node, x, y float64, skip func(*Node) bool) *Node {
	for i := len(container.children) - 1; i >= 0; i-- {
		c := container.children[i]
		if !c.Visible || c.disposed || (skip != nil && skip(c)) {
			continue
		}
		if c.WorldRect().Contains(x, y) {
			return c
		}
	}
	return nil
}
