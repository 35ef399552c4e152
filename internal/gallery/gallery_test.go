package gallery

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ModelPreview/internal/config"
	"ModelPreview/internal/input"
	"ModelPreview/internal/lighting"
	"ModelPreview/internal/loader"
	"ModelPreview/internal/panel"
	"ModelPreview/internal/renderer"
	"ModelPreview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textCall struct {
	vp    renderer.Viewport
	text  string
	style renderer.TextStyle
}

type nopRenderer struct {
	clears int
	draws  int
	texts  []textCall
}

func (r *nopRenderer) Upload(*scene.Node) error { return nil }
func (r *nopRenderer) Release(*scene.Node) {}
func (r *nopRenderer) Clear(renderer.Viewport, mgl32.Vec3) {
	r.clears++
}
func (r *nopRenderer) Draw(renderer.Viewport, *renderer.Camera, []*scene.Light, *scene.Node) {
	r.draws++
}
func (r *nopRenderer) DrawText(vp renderer.Viewport, s string, style renderer.TextStyle) {
	r.texts = append(r.texts, textCall{vp: vp, text: s, style: style})
}

type cubeDecoder struct{}

func (cubeDecoder) Decode(string) (*scene.Node, error) {
	return scene.NewMeshNode("tri", &scene.Mesh{
		Positions: []float32{-1, -1, 0, 1, -1, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}), nil
}

func newGallery(t *testing.T, entries []ModelEntry) (*Gallery, *input.Surface, *nopRenderer) {
	t.Helper()
	dir := t.TempDir()
	for _, e := range entries {
		if e.Name == "missing" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Path), []byte("glb"), 0o644))
	}
	surface := input.NewSurface()
	rend := &nopRenderer{}
	g := New(entries, Deps{Loader: loader.New(dir, cubeDecoder{}), Renderer: rend, Surface: surface}, config.Default())
	return g, surface, rend
}

func settle(t *testing.T, g *Gallery) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		g.Update()
		loading := false
		for _, p := range g.Panels() {
			if p.State() == panel.StateLoading {
				loading = true
			}
		}
		if !loading {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("panels still loading")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDefaultEntries(t *testing.T) {
	entries := DefaultEntries()

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Table", "Samsung", "fox", "Iphone 16 Plus Green", "Gaming Chair", "Asus ROG"}, names)
	assert.Equal(t, "/table.glb", entries[0].Path)
	assert.Equal(t, 5, lighting.Count(entries[0].Lighting))
	assert.Equal(t, float32(10), entries[5].Lighting.Spot[0].Intensity)

	samsung := entries[1].Lighting
	assert.Equal(t, "/samsung.glb", entries[1].Path)
	assert.Equal(t, float32(3), samsung.Ambient.Intensity)
	require.Len(t, samsung.Directional, 1)
	assert.Equal(t, mgl32.Vec3{15, 10, 18}, samsung.Directional[0].Position)
	assert.Equal(t, float32(19), samsung.Directional[0].Intensity)
	require.Len(t, samsung.Point, 1)
	assert.Zero(t, samsung.Point[0].Intensity)
	require.Len(t, samsung.Spot, 1)
	assert.Equal(t, float32(0.1), samsung.Spot[0].Angle)

	entries[2].Lighting.Directional[0].Intensity = 99
	assert.Equal(t, float32(5), entries[3].Lighting.Directional[0].Intensity, "entries must not share slices")
}

func TestColumns(t *testing.T) {
	l := config.Default().Layout

	tests := []struct {
		width float32
		want  int
	}{
		{320, 1},
		{767, 1},
		{768, 2},
		{1023, 2},
		{1024, 3},
		{1920, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Columns(l, tt.width), "width %v", tt.width)
	}
}

func TestComputeWideWindow(t *testing.T) {
	l := config.Default().Layout

	page := Compute(l, 1280, 900, 6, 1, 0)

	require.Len(t, page.Cards, 6)
	assert.Equal(t, 3, page.Columns)
	assert.InDelta(t, 128, page.Heading.X, 1e-3)
	assert.InDelta(t, 1024, page.Heading.W, 1e-3)

	first := page.Cards[0].Canvas
	assert.InDelta(t, 144, first.X, 1e-3)
	assert.InDelta(t, 24+48+16, first.Y, 1e-3)
	assert.InDelta(t, 320, first.H, 1e-3)
	assert.InDelta(t, (1024-48)/3.0-32, first.W, 1e-3)

	fourth := page.Cards[3].Frame
	assert.InDelta(t, 128, fourth.X, 1e-3, "fourth card starts the second row")
	assert.InDelta(t, 24+48+396+24, fourth.Y, 1e-3)

	assert.InDelta(t, 12, page.MaxScroll, 1e-3)
}

func TestComputeCentersShortContent(t *testing.T) {
	l := config.Default().Layout

	page := Compute(l, 1280, 2000, 6, 1, 0)

	assert.InDelta(t, (2000-864)/2.0, page.Heading.Y, 1e-3)
	assert.Zero(t, page.MaxScroll)
}

func TestComputeNarrowWindow(t *testing.T) {
	l := config.Default().Layout

	page := Compute(l, 600, 900, 2, 1, 0)

	assert.Equal(t, 1, page.Columns)
	assert.InDelta(t, 24, page.Cards[0].Frame.X, 1e-3)
	assert.InDelta(t, 552, page.Cards[0].Frame.W, 1e-3)
}

func TestComputeZoomDropsColumns(t *testing.T) {
	l := config.Default().Layout

	page := Compute(l, 1280, 900, 6, 2, 0)

	assert.Equal(t, 1, page.Columns, "zoomed page is 640 wide")
	assert.InDelta(t, 640, page.Cards[0].Canvas.H, 1e-3)
}

func TestComputeScrollShiftsCards(t *testing.T) {
	l := config.Default().Layout

	base := Compute(l, 1280, 600, 6, 1, 0)
	scrolled := Compute(l, 1280, 600, 6, 1, 100)
	clamped := Compute(l, 1280, 600, 6, 1, 1e6)

	assert.InDelta(t, base.Cards[0].Frame.Y-100, scrolled.Cards[0].Frame.Y, 1e-3)
	assert.InDelta(t, base.Cards[0].Frame.Y-base.MaxScroll, clamped.Cards[0].Frame.Y, 1e-3)
}

func TestGalleryMountUnmount(t *testing.T) {
	g, surface, _ := newGallery(t, DefaultEntries())

	g.Mount(context.Background())
	assert.Equal(t, 2*len(g.Panels()), surface.Count())
	for i, p := range g.Panels() {
		assert.Equal(t, g.Entries()[i].Path, p.ModelPath())
	}

	settle(t, g)
	for _, p := range g.Panels() {
		assert.Equal(t, panel.StateReady, p.State())
	}

	g.Unmount()
	assert.Equal(t, 0, surface.Count())
	g.Unmount()
}

func TestGalleryIsolatesFailures(t *testing.T) {
	entries := DefaultEntries()[:3]
	entries[1].Name = "missing"
	g, _, rend := newGallery(t, entries)
	g.Mount(context.Background())
	defer g.Unmount()

	settle(t, g)

	assert.Equal(t, panel.StateReady, g.Panels()[0].State())
	assert.Equal(t, panel.StateFailed, g.Panels()[1].State())
	assert.Equal(t, panel.StateReady, g.Panels()[2].State())

	g.Render()
	assert.Equal(t, 2, rend.draws)
}

func TestRenderDrawsHeadingAndTitles(t *testing.T) {
	g, _, rend := newGallery(t, DefaultEntries())
	cfg := config.Default()

	g.Render()

	require.Len(t, rend.texts, 1+len(g.Entries()), "the default window shows every card")
	heading := rend.texts[0]
	assert.Equal(t, "3D Model Previews", heading.text)
	assert.Equal(t, float32(24), heading.style.Size)
	assert.Equal(t, vec(cfg.Colors.Heading), heading.style.Color)
	assert.Equal(t, g.Layout().HeadingText, heading.vp)

	for i, e := range g.Entries() {
		call := rend.texts[i+1]
		card := g.Layout().Cards[i]
		assert.Equal(t, e.Name, call.text)
		assert.Equal(t, card.TitleText, call.vp)
		assert.Equal(t, float32(18), call.style.Size)
		assert.InDelta(t, card.Title.Y+16, call.vp.Y, 1e-3, "name sits below the title margin")
		assert.InDelta(t, 28, call.vp.H, 1e-3)
	}
}

func TestRenderScalesTextWithZoom(t *testing.T) {
	g, _, rend := newGallery(t, DefaultEntries())
	g.HandleWheel(&input.Event{Kind: input.KindWheel, X: 5, Y: 5, DeltaY: -1, Modifiers: input.Modifiers{Ctrl: true}})

	g.Render()

	require.NotEmpty(t, rend.texts)
	assert.InDelta(t, 24*1.1, rend.texts[0].style.Size, 1e-4)
}

func TestCtrlWheelOverLoadingPanelIsSuppressed(t *testing.T) {
	g, _, _ := newGallery(t, DefaultEntries())
	g.Mount(context.Background())
	defer g.Unmount()
	c := g.Layout().Cards[0].Canvas

	ev := &input.Event{Kind: input.KindWheel, X: c.X + 10, Y: c.Y + 10, DeltaY: -1, Modifiers: input.Modifiers{Ctrl: true}}
	g.HandleWheel(ev)

	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, float32(1), g.Zoom())
}

func TestCtrlWheelOutsidePanelsZoomsPage(t *testing.T) {
	g, _, _ := newGallery(t, DefaultEntries())
	g.Mount(context.Background())
	defer g.Unmount()

	g.HandleWheel(&input.Event{Kind: input.KindWheel, X: 5, Y: 5, DeltaY: -1, Modifiers: input.Modifiers{Ctrl: true}})
	assert.InDelta(t, 1.1, g.Zoom(), 1e-5)

	for i := 0; i < 100; i++ {
		g.HandleWheel(&input.Event{Kind: input.KindWheel, X: 5, Y: 5, DeltaY: 1, Modifiers: input.Modifiers{Ctrl: true}})
	}
	assert.InDelta(t, 0.5, g.Zoom(), 1e-5)
}

func TestWheelRouting(t *testing.T) {
	g, _, _ := newGallery(t, DefaultEntries())
	g.Mount(context.Background())
	defer g.Unmount()
	g.Resize(1280, 600)
	settle(t, g)

	c := g.Layout().Cards[0].Canvas
	p := g.Panels()[0]
	d := p.Controls().Distance()

	g.HandleWheel(&input.Event{Kind: input.KindWheel, X: c.X + 10, Y: c.Y + 10, DeltaY: 1})
	assert.Greater(t, p.Controls().Distance(), d, "wheel over a ready panel zooms its camera")
	assert.Zero(t, g.Scroll())

	g.HandleWheel(&input.Event{Kind: input.KindWheel, X: 5, Y: 5, DeltaY: 1})
	assert.InDelta(t, 40, g.Scroll(), 1e-5, "wheel over the page scrolls it")
	assert.InDelta(t, c.Y-40, p.Viewport().Y, 1e-3)
}

func TestGestureOverPanel(t *testing.T) {
	g, surface, _ := newGallery(t, DefaultEntries())
	g.Mount(context.Background())
	c := g.Layout().Cards[4].Canvas

	ev := &input.Event{Kind: input.KindGestureStart, X: c.X + 1, Y: c.Y + 1}
	g.HandleGesture(ev)
	assert.True(t, ev.DefaultPrevented())

	g.Unmount()
	ev = &input.Event{Kind: input.KindGestureStart, X: c.X + 1, Y: c.Y + 1}
	assert.False(t, surface.Dispatch(ev))
}

func TestDragRotatesOnePanel(t *testing.T) {
	g, _, _ := newGallery(t, DefaultEntries())
	g.Mount(context.Background())
	defer g.Unmount()
	settle(t, g)

	c := g.Layout().Cards[1].Canvas
	before := g.Panels()[0].Camera().Position
	target := g.Panels()[1].Camera().Position

	g.PointerMove(c.X+50, c.Y+50)
	g.PointerButton(input.ButtonLeft, true, input.Modifiers{})
	g.PointerMove(c.X+120, c.Y+50)
	g.PointerButton(input.ButtonLeft, false, input.Modifiers{})

	assert.NotEqual(t, target, g.Panels()[1].Camera().Position)
	assert.Equal(t, before, g.Panels()[0].Camera().Position)
	assert.False(t, g.Panels()[1].Dragging())
}

func TestTitleFollowsHover(t *testing.T) {
	g, _, _ := newGallery(t, DefaultEntries())

	assert.Equal(t, "3D Model Previews", g.Title())

	f := g.Layout().Cards[2].Frame
	g.PointerMove(f.X+1, f.Y+1)
	assert.Equal(t, "3D Model Previews - fox", g.Title())

	g.PointerMove(1, 1)
	_, ok := g.Hovered()
	assert.False(t, ok)
}
