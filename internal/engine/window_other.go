//go:build !windows

package engine

import (
	"ModelPreview/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// styleTitleBar is only supported on Windows.
func styleTitleBar(*glfw.Window, config.Color) {}
