package dragkit

import "math"

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp limits v to [lo, hi]. When lo > hi the lower bound wins, so an
// element larger than its bounds pins to the leading side.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampRect moves inner the minimum distance needed to lie inside outer.
// Size is preserved.
func ClampRect(inner, outer Rect) Rect {
	inner.X = Clamp(inner.X, outer.X, outer.Right()-inner.Width)
	inner.Y = Clamp(inner.Y, outer.Y, outer.Bottom()-inner.Height)
	return inner
}

// ScreenToLocal converts a screen-space point into the offset space of a
// target whose content origin sits at origin on screen.
func ScreenToLocal(p, origin Vec2) Vec2 {
	return Vec2{p.X - origin.X, p.Y - origin.Y}
}

// LocalToScreen is the inverse of ScreenToLocal.
func LocalToScreen(p, origin Vec2) Vec2 {
	return Vec2{p.X + origin.X, p.Y + origin.Y}
}

// extentOf returns the rectangle's size along axis.
func extentOf(r Rect, axis Axis) float64 {
	if axis == AxisVertical {
		return r.Height
	}
	return r.Width
}

// startOf returns the rectangle's leading coordinate along axis.
func startOf(r Rect, axis Axis) float64 {
	if axis == AxisVertical {
		return r.Y
	}
	return r.X
}

// along picks the component of v for axis.
func along(v Vec2, axis Axis) float64 {
	if axis == AxisVertical {
		return v.Y
	}
	return v.X
}
