//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"ModelPreview/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_BORDER_COLOR  = 34
	DWMWA_CAPTION_COLOR = 35
)

// styleTitleBar paints the caption and border in the page color.
func styleTitleBar(window *glfw.Window, c config.Color) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}

	colorBGR := colorRef(c)
	for _, attr := range []uintptr{DWMWA_BORDER_COLOR, DWMWA_CAPTION_COLOR} {
		procDwmSetWindowAttribute.Call(
			uintptr(unsafe.Pointer(hwnd)),
			attr,
			uintptr(unsafe.Pointer(&colorBGR)),
			unsafe.Sizeof(colorBGR),
		)
	}
}
