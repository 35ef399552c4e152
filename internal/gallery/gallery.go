// Package gallery lays out one preview panel per model entry and owns the
// page behavior around them: scrolling, page zoom and hover titles.
package gallery

import (
	"context"

	"ModelPreview/internal/config"
	"ModelPreview/internal/input"
	"ModelPreview/internal/logger"
	"ModelPreview/internal/panel"
	"ModelPreview/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type Deps struct {
	Loader   panel.AssetLoader
	Renderer renderer.Render
	Surface  *input.Surface
}

type Gallery struct {
	entries []ModelEntry
	panels  []*panel.Panel
	deps    Deps
	layout  config.Layout
	colors  config.Colors
	title   string

	width, height float32
	zoom          float32
	scroll        float32
	page          PageLayout

	pointerX, pointerY float32
	hovered            int
	active             *panel.Panel
	mounted            bool
}

// New creates one panel per entry. A panel's identity is its index.
func New(entries []ModelEntry, deps Deps, cfg config.Viewer) *Gallery {
	g := &Gallery{
		entries: entries,
		deps:    deps,
		layout:  cfg.Layout,
		colors:  cfg.Colors,
		title:   cfg.Title,
		width:   float32(cfg.WindowWidth),
		height:  float32(cfg.WindowHeight),
		zoom:    1,
		hovered: -1,
	}

	opts := panel.DefaultOptions()
	opts.Background = vec(cfg.Colors.Placeholder)
	opts.Placeholder = vec(cfg.Colors.Placeholder)
	pdeps := panel.Deps{Loader: deps.Loader, Renderer: deps.Renderer, Surface: deps.Surface}
	for _, e := range entries {
		g.panels = append(g.panels, panel.New(e.Path, e.Lighting, pdeps, opts))
	}
	g.relayout()
	return g
}

func vec(c config.Color) mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

func (g *Gallery) Panels() []*panel.Panel {
	return g.panels
}

func (g *Gallery) Entries() []ModelEntry {
	return g.entries
}

func (g *Gallery) Layout() PageLayout {
	return g.page
}

func (g *Gallery) Zoom() float32 {
	return g.zoom
}

func (g *Gallery) Scroll() float32 {
	return g.scroll
}

func (g *Gallery) Mount(ctx context.Context) {
	if g.mounted {
		return
	}
	g.mounted = true
	for _, p := range g.panels {
		p.Mount(ctx)
	}
	logger.Log.Info("Gallery mounted", zap.Int("panels", len(g.panels)))
}

// Unmount tears the panels down, last first.
func (g *Gallery) Unmount() {
	if !g.mounted {
		return
	}
	g.mounted = false
	g.active = nil
	for i := len(g.panels) - 1; i >= 0; i-- {
		g.panels[i].Unmount()
	}
	logger.Log.Info("Gallery unmounted")
}

func (g *Gallery) Update() {
	for _, p := range g.panels {
		p.Update()
	}
}

// Resize takes the window size in logical pixels.
func (g *Gallery) Resize(width, height float32) {
	g.width, g.height = width, height
	g.relayout()
}

func (g *Gallery) relayout() {
	g.page = Compute(g.layout, g.width, g.height, len(g.panels), g.zoom, g.scroll)
	g.scroll = mgl32.Clamp(g.scroll, 0, g.page.MaxScroll)
	for i, p := range g.panels {
		p.SetViewport(g.page.Cards[i].Canvas)
	}
	g.updateHover()
}

func (g *Gallery) window() renderer.Viewport {
	return renderer.Viewport{W: g.width, H: g.height}
}

// Render paints the page background, the heading, the card frames and
// every visible panel with its title.
func (g *Gallery) Render() {
	rend := g.deps.Renderer
	win := g.window()
	rend.Clear(win, vec(g.colors.Page))

	if !win.Intersect(g.page.Heading).Empty() {
		rend.DrawText(g.page.HeadingText, g.title, g.textStyle(g.layout.HeadingFont, g.colors.Heading))
	}

	titles := g.textStyle(g.layout.TitleFont, g.colors.Title)
	for i, p := range g.panels {
		card := g.page.Cards[i]
		if win.Intersect(card.Frame).Empty() {
			continue
		}
		rend.Clear(card.Frame, vec(g.colors.Card))
		p.Render()
		rend.DrawText(card.TitleText, g.entries[i].Name, titles)
	}
}

// textStyle scales a page font size by the page zoom.
func (g *Gallery) textStyle(size float32, c config.Color) renderer.TextStyle {
	return renderer.TextStyle{Size: size * g.zoom, Color: vec(c)}
}

func (g *Gallery) panelAt(x, y float32) *panel.Panel {
	for _, p := range g.panels {
		if p.Contains(x, y) {
			return p
		}
	}
	return nil
}

// HandleWheel routes a wheel event: the panel under the pointer first, then
// the window listeners, then the page default unless something prevented it.
func (g *Gallery) HandleWheel(ev *input.Event) {
	if p := g.panelAt(ev.X, ev.Y); p != nil {
		p.Wheel(ev)
	}
	if g.deps.Surface.Dispatch(ev) {
		return
	}
	if ev.Ctrl || ev.Super {
		g.zoomPage(ev.DeltaY)
		return
	}
	g.scrollPage(ev.DeltaY)
}

// HandleGesture dispatches a pinch start. The page has no default for it.
func (g *Gallery) HandleGesture(ev *input.Event) {
	if !g.deps.Surface.Dispatch(ev) {
		logger.Log.Debug("Gesture reached the page", zap.Float32("x", ev.X), zap.Float32("y", ev.Y))
	}
}

func (g *Gallery) scrollPage(deltaY float32) {
	next := mgl32.Clamp(g.scroll+deltaY*g.layout.ScrollStep, 0, g.page.MaxScroll)
	if next == g.scroll {
		return
	}
	g.scroll = next
	g.relayout()
}

func (g *Gallery) zoomPage(deltaY float32) {
	step := g.layout.ZoomStep
	if deltaY > 0 {
		step = -step
	} else if deltaY == 0 {
		return
	}
	next := mgl32.Clamp(g.zoom+step, g.layout.MinZoom, g.layout.MaxZoom)
	if next == g.zoom {
		return
	}
	g.zoom = next
	g.relayout()
	logger.Log.Debug("Page zoom", zap.Float32("zoom", g.zoom))
}

func (g *Gallery) PointerMove(x, y float32) {
	g.pointerX, g.pointerY = x, y
	if g.active != nil {
		g.active.PointerMove(x, y)
	}
	g.updateHover()
}

func (g *Gallery) PointerButton(button input.Button, pressed bool, mods input.Modifiers) {
	if !pressed {
		if g.active != nil {
			g.active.PointerUp()
			g.active = nil
		}
		return
	}
	if g.active != nil {
		return
	}
	if p := g.panelAt(g.pointerX, g.pointerY); p != nil && p.PointerDown(button, g.pointerX, g.pointerY, mods) {
		g.active = p
	}
}

func (g *Gallery) updateHover() {
	g.hovered = -1
	for i, card := range g.page.Cards {
		if card.Frame.Contains(g.pointerX, g.pointerY) {
			g.hovered = i
			return
		}
	}
}

// Hovered returns the entry under the pointer.
func (g *Gallery) Hovered() (ModelEntry, bool) {
	if g.hovered < 0 {
		return ModelEntry{}, false
	}
	return g.entries[g.hovered], true
}

// Title is the window title: the page heading plus the hovered card name.
func (g *Gallery) Title() string {
	if e, ok := g.Hovered(); ok {
		return g.title + " - " + e.Name
	}
	return g.title
}
