package dragkit

// nodeIDCounter is not atomic; trees are only touched from the frame loop.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// NodeFlags is a bitmask of observable interaction states toggled on nodes
// by session transitions. Renderers read them; the engine never branches on
// them.
type NodeFlags uint16

const (
	FlagDragging   NodeFlags = 1 << iota // element is the subject of an active session
	FlagProxy                            // node is a disposable stand-in
	FlagInvalid                          // current drop/resize is invalid
	FlagResizing                         // element is being resized
	FlagDropTarget                       // container currently receiving the element
	FlagRestoring                        // element is animating back to its start
)

// Node is the scene element every interaction manipulates. A single flat
// struct is used for elements, containers and handles alike.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Geometry (local, relative to the parent's content origin)
	X, Y          float64
	Width, Height float64

	// Scrolling. ContentWidth/ContentHeight are the scroll extents; zero
	// means the content is the same size as the node.
	ScrollX, ScrollY            float64
	ContentWidth, ContentHeight float64
	Scrollable                  bool

	// Layout
	Layout      Layout
	Gap         float64
	RightToLeft bool

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Handle marks a child node as an explicit resize handle of its parent.
	Handle Edge

	Color Color
	Flags NodeFlags

	// Metadata
	UserData any

	disposed bool
}

// NewNode creates a leaf node with the given size.
func NewNode(name string, width, height float64) *Node {
	return &Node{
		ID:           nextNodeID(),
		Name:         name,
		Width:        width,
		Height:       height,
		Visible:      true,
		Interactable: true,
		Color:        ColorWhite,
	}
}

// NewContainer creates a container node that lays its children out with the
// given flow.
func NewContainer(name string, layout Layout) *Node {
	n := NewNode(name, 0, 0)
	n.Layout = layout
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, -1)
}

// AddChildAt inserts child at the given index; a negative index appends.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("dragkit: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("dragkit: adding child would create a cycle")
	}
	old := child.Parent
	if old != nil {
		old.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if old != nil && old != n {
		old.relayout()
	}
	n.relayout()
}

// InsertBefore inserts child directly before ref. A nil ref, or a ref that
// is not a child of n, appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == ref {
		return
	}
	idx := -1
	if ref != nil && ref.Parent == n {
		idx = n.IndexOf(ref)
		if child.Parent == n && n.IndexOf(child) < idx {
			idx--
		}
	}
	n.AddChildAt(child, idx)
}

// InsertAfter inserts child directly after ref. A nil ref, or a ref that is
// not a child of n, inserts at the front.
func (n *Node) InsertAfter(child, ref *Node) {
	if child == ref {
		return
	}
	idx := 0
	if ref != nil && ref.Parent == n {
		idx = n.IndexOf(ref) + 1
		if child.Parent == n && n.IndexOf(child) < idx {
			idx--
		}
	}
	n.AddChildAt(child, idx)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("dragkit: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.relayout()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the index of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.IndexOf(n)
	if i < 0 || i+1 >= len(n.Parent.children) {
		return nil
	}
	return n.Parent.children[i+1]
}

// PreviousSibling returns the sibling before n, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.IndexOf(n)
	if i <= 0 {
		return nil
	}
	return n.Parent.children[i-1]
}

// Clone returns a detached deep copy of n with fresh IDs. Flags are not
// copied.
func (n *Node) Clone() *Node {
	c := *n
	c.ID = nextNodeID()
	c.Parent = nil
	c.Flags = 0
	c.disposed = false
	c.children = nil
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = &c
		c.children = append(c.children, cc)
	}
	return &c
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Geometry queries ---

// WorldOrigin returns the screen position of the node's top-left corner.
func (n *Node) WorldOrigin() Vec2 {
	if n.Parent == nil {
		return Vec2{n.X, n.Y}
	}
	return n.Parent.ContentOrigin().Add(Vec2{n.X, n.Y})
}

// ContentOrigin returns the screen position of the origin children are
// positioned against, which is the world origin shifted by the scroll
// offset.
func (n *Node) ContentOrigin() Vec2 {
	return n.WorldOrigin().Sub(Vec2{n.ScrollX, n.ScrollY})
}

// WorldRect returns the node's bounds in screen space.
func (n *Node) WorldRect() Rect {
	o := n.WorldOrigin()
	return Rect{X: o.X, Y: o.Y, Width: n.Width, Height: n.Height}
}

// LocalRect returns the node's bounds in its parent's content space.
func (n *Node) LocalRect() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// WorldToLocal converts a screen point into n's content space (the space
// n's children are positioned in).
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	return ScreenToLocal(p, n.ContentOrigin())
}

// LocalToWorld converts a point in n's content space to screen space.
func (n *Node) LocalToWorld(p Vec2) Vec2 {
	return LocalToScreen(p, n.ContentOrigin())
}

// ContentSize returns the scroll extents of n.
func (n *Node) ContentSize() (float64, float64) {
	w, h := n.ContentWidth, n.ContentHeight
	if w < n.Width {
		w = n.Width
	}
	if h < n.Height {
		h = n.Height
	}
	return w, h
}

// ScrollTo sets the scroll offset, clamped to the scrollable range.
func (n *Node) ScrollTo(x, y float64) {
	w, h := n.ContentSize()
	n.ScrollX = Clamp(x, 0, w-n.Width)
	n.ScrollY = Clamp(y, 0, h-n.Height)
}

// Closest returns the nearest node, starting at n itself and walking up the
// parents, for which match returns true.
func (n *Node) Closest(match func(*Node) bool) *Node {
	for p := n; p != nil; p = p.Parent {
		if match(p) {
			return p
		}
	}
	return nil
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// --- Layout ---

// relayout positions children sequentially for flow containers. Proxy
// nodes keep their own positions.
func (n *Node) relayout() {
	if n.Layout == LayoutNone {
		return
	}
	var pos float64
	for _, c := range n.children {
		if c.Flags&FlagProxy != 0 {
			continue
		}
		switch n.Layout {
		case LayoutHorizontal:
			if n.RightToLeft {
				c.X = n.Width - pos - c.Width
			} else {
				c.X = pos
			}
			c.Y = 0
			pos += c.Width + n.Gap
		case LayoutVertical:
			c.X = 0
			c.Y = pos
			pos += c.Height + n.Gap
		}
	}
	if pos > 0 {
		pos -= n.Gap
	}
	if n.Layout == LayoutHorizontal {
		n.ContentWidth = pos
	} else {
		n.ContentHeight = pos
	}
}

// Relayout re-runs the flow layout after children were resized.
func (n *Node) Relayout() {
	n.relayout()
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
