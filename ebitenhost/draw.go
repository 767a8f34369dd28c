package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/dragkit"
)

// rectCommand is one filled rectangle in screen space.
type rectCommand struct {
	rect  dragkit.Rect
	color dragkit.Color
}

var (
	tintDragging   = dragkit.Color{R: 0.55, G: 0.75, B: 1, A: 1}
	tintInvalid    = dragkit.Color{R: 1, G: 0.45, B: 0.45, A: 1}
	tintDropTarget = dragkit.Color{R: 0.6, G: 1, B: 0.6, A: 1}
	tintRestoring  = dragkit.Color{R: 1, G: 0.9, B: 0.5, A: 1}
)

// nodeColor returns n's color tinted by its interaction flags. Proxies are
// drawn translucent.
func nodeColor(n *dragkit.Node) dragkit.Color {
	c := n.Color
	switch {
	case n.Flags&dragkit.FlagInvalid != 0:
		c = mul(c, tintInvalid)
	case n.Flags&dragkit.FlagRestoring != 0:
		c = mul(c, tintRestoring)
	case n.Flags&(dragkit.FlagDragging|dragkit.FlagResizing) != 0:
		c = mul(c, tintDragging)
	case n.Flags&dragkit.FlagDropTarget != 0:
		c = mul(c, tintDropTarget)
	}
	if n.Flags&dragkit.FlagProxy != 0 {
		c.A *= 0.6
	}
	return c
}

func mul(a, b dragkit.Color) dragkit.Color {
	return dragkit.Color{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A * b.A}
}

func intersect(a, b dragkit.Rect) (dragkit.Rect, bool) {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return dragkit.Rect{}, false
	}
	return dragkit.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// collect appends the draw commands of the subtree at n in painter order.
// Scrollable nodes clip their descendants.
func collect(n *dragkit.Node, clip dragkit.Rect, out []rectCommand) []rectCommand {
	if !n.Visible || n.IsDisposed() {
		return out
	}
	r, ok := intersect(n.WorldRect(), clip)
	if !ok && n.Scrollable {
		return out
	}
	if ok && n.Width > 0 && n.Height > 0 {
		out = append(out, rectCommand{rect: r, color: nodeColor(n)})
	}
	if n.Scrollable {
		clip = r
	}
	for _, child := range n.Children() {
		out = collect(child, clip, out)
	}
	return out
}

// Renderer draws a node tree as flat colored rectangles.
type Renderer struct {
	pixel *ebiten.Image
	cmds  []rectCommand
}

// Draw renders the tree under root onto dst.
func (r *Renderer) Draw(dst *ebiten.Image, root *dragkit.Node) {
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}
	b := dst.Bounds()
	screen := dragkit.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	r.cmds = collect(root, screen, r.cmds[:0])

	var op ebiten.DrawImageOptions
	for i := range r.cmds {
		cmd := &r.cmds[i]
		op.GeoM.Reset()
		op.GeoM.Scale(cmd.rect.Width, cmd.rect.Height)
		op.GeoM.Translate(cmd.rect.X, cmd.rect.Y)
		op.ColorScale.Reset()
		a := float32(cmd.color.A)
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
		dst.DrawImage(r.pixel, &op)
	}
}
