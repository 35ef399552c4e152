package renderer

import "testing"

func TestViewportContains(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		x, y float32
		want bool
	}{
		{10, 20, true},
		{109, 69, true},
		{110, 20, false},
		{50, 70, false},
		{9, 30, false},
	}
	for _, tt := range tests {
		if got := vp.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestViewportFramebufferRect(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, W: 100, H: 50}

	x, y, w, h := vp.FramebufferRect(200, 2)

	if x != 20 || y != 260 || w != 200 || h != 100 {
		t.Errorf("Unexpected framebuffer rect (%d, %d, %d, %d)", x, y, w, h)
	}
}

func TestViewportIntersect(t *testing.T) {
	a := Viewport{X: 0, Y: 0, W: 100, H: 100}

	got := a.Intersect(Viewport{X: 50, Y: 80, W: 100, H: 100})
	if got != (Viewport{X: 50, Y: 80, W: 50, H: 20}) {
		t.Errorf("Unexpected intersection %+v", got)
	}

	if !a.Intersect(Viewport{X: 200, Y: 200, W: 10, H: 10}).Empty() {
		t.Error("Disjoint viewports should intersect to an empty one")
	}
}

func TestViewportAspect(t *testing.T) {
	if (Viewport{W: 640, H: 320}).Aspect() != 2 {
		t.Error("Expected aspect 2")
	}
	if (Viewport{W: 640}).Aspect() != 1 {
		t.Error("Zero height should report aspect 1")
	}
}
