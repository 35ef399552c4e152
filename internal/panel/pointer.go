package panel

import (
	"ModelPreview/internal/input"
)

// PointerDown starts a drag when it lands inside a ready panel. Left drags
// rotate, right drags or Shift+left pan.
func (p *Panel) PointerDown(button input.Button, x, y float32, mods input.Modifiers) bool {
	if p.state != StateReady || !p.Contains(x, y) {
		return false
	}
	switch {
	case button == input.ButtonLeft && !mods.Shift:
		p.drag = dragRotate
	case button == input.ButtonLeft, button == input.ButtonRight:
		p.drag = dragPan
	default:
		return false
	}
	p.lastX, p.lastY = x, y
	return true
}

// PointerMove continues a drag. The pointer may leave the viewport while
// the button is held.
func (p *Panel) PointerMove(x, y float32) bool {
	if p.drag == dragNone {
		return false
	}
	dx, dy := x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y

	h := p.viewport.H
	if p.drag == dragRotate {
		return p.controls.Rotate(dx, dy, h)
	}
	return p.controls.Pan(dx, dy, h)
}

func (p *Panel) PointerUp() {
	p.drag = dragNone
}

func (p *Panel) Dragging() bool {
	return p.drag != dragNone
}

// Wheel zooms the camera and consumes the event when zoom is enabled.
func (p *Panel) Wheel(ev *input.Event) {
	if p.state != StateReady || !p.Contains(ev.X, ev.Y) {
		return
	}
	if p.controls.Zoom(ev.DeltaY) {
		ev.PreventDefault()
	}
}
