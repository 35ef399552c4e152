package engine

import (
	"ModelPreview/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func mapButton(b glfw.MouseButton) (input.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft, true
	case glfw.MouseButtonRight:
		return input.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	}
	return 0, false
}

func mapModifiers(m glfw.ModifierKey) input.Modifiers {
	return input.Modifiers{
		Shift: m&glfw.ModShift != 0,
		Ctrl:  m&glfw.ModControl != 0,
		Super: m&glfw.ModSuper != 0,
	}
}

func isModifierKey(k glfw.Key) bool {
	switch k {
	case glfw.KeyLeftShift, glfw.KeyRightShift,
		glfw.KeyLeftControl, glfw.KeyRightControl,
		glfw.KeyLeftSuper, glfw.KeyRightSuper:
		return true
	}
	return false
}

// wheelEvent converts a GLFW scroll offset into a page wheel event. GLFW
// reports positive y for scrolling up, pages expect negative deltaY there.
func wheelEvent(x, y, xoff, yoff float64, mods input.Modifiers) *input.Event {
	return &input.Event{
		Kind:      input.KindWheel,
		X:         float32(x),
		Y:         float32(y),
		DeltaX:    float32(-xoff),
		DeltaY:    float32(-yoff),
		Modifiers: mods,
	}
}
