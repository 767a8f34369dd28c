package dragkit

import (
	"fmt"

	"go.uber.org/zap"
)

// WithDebug enables tree sanity checks on every grab: disposed elements
// panic, deep trees and crowded containers are logged as warnings.
func WithDebug() ControllerOption {
	return func(c *Controller) { c.debug = true }
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is handed to a session.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("dragkit debug: %s on disposed node %q", op, n.Name))
	}
}

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

func treeDepth(n *Node) int {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// debugCheckTree warns when the element sits too deep or its container has
// too many children for per-move hit testing to stay cheap.
func (c *Controller) debugCheckTree(n *Node) {
	if d := treeDepth(n); d > debugMaxTreeDepth {
		c.log.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name), zap.Int("depth", d), zap.Int("threshold", debugMaxTreeDepth))
	}
	if p := n.Parent; p != nil && len(p.children) > debugMaxChildCount {
		c.log.Warn("container child count exceeds threshold",
			zap.String("node", p.Name), zap.Int("children", len(p.children)), zap.Int("threshold", debugMaxChildCount))
	}
}
