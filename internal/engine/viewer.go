package engine

import (
	"context"
	"fmt"
	"runtime"

	"ModelPreview/internal/config"
	"ModelPreview/internal/gallery"
	"ModelPreview/internal/input"
	"ModelPreview/internal/loader"
	"ModelPreview/internal/logger"
	"ModelPreview/internal/renderer"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Viewer owns the window, the GL renderer and the gallery drawn into it.
// Everything here runs on the goroutine that called Run.
type Viewer struct {
	cfg     config.Viewer
	entries []gallery.ModelEntry

	window  *glfw.Window
	rend    *renderer.OpenGLRenderer
	surface *input.Surface
	gallery *gallery.Gallery

	width, height int // window size in screen coordinates
	title         string
	mods          input.Modifiers
}

func NewViewer(cfg config.Viewer, entries []gallery.ModelEntry) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Viewer{
		cfg:     cfg,
		entries: entries,
		rend:    &renderer.OpenGLRenderer{},
		surface: input.NewSurface(),
	}, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(v.cfg.WindowWidth), int(v.cfg.WindowHeight), v.cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	v.window = window

	window.MakeContextCurrent()
	if v.cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	styleTitleBar(window, v.cfg.Colors.Page)

	v.width, v.height = window.GetSize()
	if err := v.rend.Init(float32(v.height), v.framebufferScale()); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	defer v.rend.Cleanup()

	assets := loader.New(v.cfg.AssetDir, loader.NewGLTFDecoder())
	v.gallery = gallery.New(v.entries, gallery.Deps{Loader: assets, Renderer: v.rend, Surface: v.surface}, v.cfg)
	v.gallery.Resize(float32(v.width), float32(v.height))

	window.SetSizeCallback(v.sizeCallback)
	window.SetFramebufferSizeCallback(v.framebufferCallback)
	window.SetCursorPosCallback(v.cursorCallback)
	window.SetMouseButtonCallback(v.mouseButtonCallback)
	window.SetScrollCallback(v.scrollCallback)
	window.SetKeyCallback(v.keyCallback)

	v.gallery.Mount(ctx)
	defer v.gallery.Unmount()

	logger.Log.Info("Viewer started",
		zap.Int("width", v.width),
		zap.Int("height", v.height),
		zap.String("assets", v.cfg.AssetDir),
		zap.Int("models", len(v.entries)))

	v.renderLoop(ctx)
	return nil
}

func (v *Viewer) renderLoop(ctx context.Context) {
	page := v.cfg.Colors.Page
	for !v.window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Log.Info("Viewer stopping", zap.Error(ctx.Err()))
			return
		}

		v.gallery.Update()

		v.rend.ClearWindow(float32(v.width), mgl.Vec3{page.R, page.G, page.B})
		v.gallery.Render()

		if title := v.gallery.Title(); title != v.title {
			v.window.SetTitle(title)
			v.title = title
		}

		v.window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (v *Viewer) framebufferScale() float32 {
	fbw, _ := v.window.GetFramebufferSize()
	if v.width == 0 {
		return 1
	}
	return float32(fbw) / float32(v.width)
}

func (v *Viewer) sizeCallback(w *glfw.Window, width, height int) {
	v.width, v.height = width, height
	v.rend.UpdateViewport(float32(height), v.framebufferScale())
	v.gallery.Resize(float32(width), float32(height))
}

func (v *Viewer) framebufferCallback(w *glfw.Window, width, height int) {
	v.rend.UpdateViewport(float32(v.height), v.framebufferScale())
}

func (v *Viewer) cursorCallback(w *glfw.Window, xpos, ypos float64) {
	v.gallery.PointerMove(float32(xpos), float32(ypos))
}

func (v *Viewer) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := mapButton(button)
	if !ok || action == glfw.Repeat {
		return
	}
	v.mods = mapModifiers(mods)
	v.gallery.PointerButton(b, action == glfw.Press, v.mods)
}

func (v *Viewer) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	x, y := w.GetCursorPos()
	v.gallery.HandleWheel(wheelEvent(x, y, xoff, yoff, v.mods))
}

// keyCallback only tracks modifiers, scroll events carry none.
func (v *Viewer) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	v.mods = mapModifiers(mods)
	if isModifierKey(key) {
		// mods lags by one event for the modifier key itself.
		pressed := action != glfw.Release
		switch key {
		case glfw.KeyLeftShift, glfw.KeyRightShift:
			v.mods.Shift = pressed
		case glfw.KeyLeftControl, glfw.KeyRightControl:
			v.mods.Ctrl = pressed
		case glfw.KeyLeftSuper, glfw.KeyRightSuper:
			v.mods.Super = pressed
		}
	}
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// Gallery is nil until Run has created the window.
func (v *Viewer) Gallery() *gallery.Gallery {
	return v.gallery
}

func (v *Viewer) Surface() *input.Surface {
	return v.surface
}
