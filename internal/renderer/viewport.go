package renderer

// Viewport is a rectangle in window coordinates: logical pixels, origin at
// the top-left corner, y growing downward.
type Viewport struct {
	X, Y, W, H float32
}

func (v Viewport) Contains(x, y float32) bool {
	return x >= v.X && x < v.X+v.W && y >= v.Y && y < v.Y+v.H
}

func (v Viewport) Aspect() float32 {
	if v.H <= 0 {
		return 1
	}
	return v.W / v.H
}

func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0
}

// Intersect clips v to o.
func (v Viewport) Intersect(o Viewport) Viewport {
	x0, y0 := maxf(v.X, o.X), maxf(v.Y, o.Y)
	x1, y1 := minf(v.X+v.W, o.X+o.W), minf(v.Y+v.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Viewport{X: x0, Y: y0}
	}
	return Viewport{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// FramebufferRect converts to GL framebuffer pixels, bottom-left origin.
// scale is framebuffer pixels per logical pixel, windowHeight is logical.
func (v Viewport) FramebufferRect(windowHeight, scale float32) (x, y, w, h int32) {
	x = int32(v.X * scale)
	y = int32((windowHeight - v.Y - v.H) * scale)
	w = int32(v.W * scale)
	h = int32(v.H * scale)
	return x, y, w, h
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
