package panel

import (
	"ModelPreview/internal/input"
)

// suppress keeps pinch and Ctrl+wheel over the panel from reaching the
// page zoom. Events outside the viewport pass untouched.
func (p *Panel) suppress(ev *input.Event) {
	if p.state == StateUnmounted || !p.viewport.Contains(ev.X, ev.Y) {
		return
	}
	switch ev.Kind {
	case input.KindWheel:
		if ev.Ctrl || ev.Super {
			ev.PreventDefault()
		}
	case input.KindGestureStart:
		ev.PreventDefault()
	}
}
