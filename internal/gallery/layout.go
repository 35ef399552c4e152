package gallery

import (
	"math"

	"ModelPreview/internal/config"
	"ModelPreview/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Card is one grid cell in window coordinates. TitleText is the line box the
// name is centered in, the rest of the Title strip is margin.
type Card struct {
	Frame     renderer.Viewport
	Canvas    renderer.Viewport
	Title     renderer.Viewport
	TitleText renderer.Viewport
}

type PageLayout struct {
	Heading     renderer.Viewport
	HeadingText renderer.Viewport
	Cards       []Card
	Columns   int
	MaxScroll float32 // logical pixels at zoom 1
}

// Columns is the grid column count for a page width.
func Columns(l config.Layout, width float32) int {
	switch {
	case width < l.MediumWidth:
		return 1
	case width < l.LargeWidth:
		return 2
	default:
		return 3
	}
}

// Compute lays out n cards for a window. Page metrics are in page pixels;
// zoom maps them to window pixels, so a zoomed page is narrower and may
// drop columns. scroll is in page pixels.
func Compute(l config.Layout, windowW, windowH float32, n int, zoom, scroll float32) PageLayout {
	if zoom <= 0 {
		zoom = 1
	}
	pageW, pageH := windowW/zoom, windowH/zoom

	cols := Columns(l, pageW)
	contentW := pageW - 2*l.PagePadding
	if contentW > l.MaxContentWidth {
		contentW = l.MaxContentWidth
	}
	if contentW < 0 {
		contentW = 0
	}
	left := (pageW - contentW) / 2

	cardW := (contentW - float32(cols-1)*l.Gap) / float32(cols)
	if cardW < 0 {
		cardW = 0
	}
	cardH := l.CardPadding + l.CanvasHeight + l.TitleHeight + l.CardPadding

	rows := int(math.Ceil(float64(n) / float64(cols)))
	gridH := float32(rows)*cardH + float32(max(rows-1, 0))*l.Gap
	contentH := l.HeadingHeight + gridH

	top := l.PagePadding
	if contentH+2*l.PagePadding < pageH {
		top = (pageH - contentH) / 2
	}
	maxScroll := contentH + 2*l.PagePadding - pageH
	if maxScroll < 0 {
		maxScroll = 0
	}
	top -= mgl32.Clamp(scroll, 0, maxScroll)

	toWindow := func(x, y, w, h float32) renderer.Viewport {
		return renderer.Viewport{X: x * zoom, Y: y * zoom, W: w * zoom, H: h * zoom}
	}

	out := PageLayout{
		Heading:     toWindow(left, top, contentW, l.HeadingHeight),
		HeadingText: toWindow(left, top, contentW, l.HeadingHeight-l.HeadingMargin),
		Cards:       make([]Card, n),
		Columns:     cols,
		MaxScroll:   maxScroll,
	}
	gridTop := top + l.HeadingHeight
	for i := 0; i < n; i++ {
		col, row := i%cols, i/cols
		x := left + float32(col)*(cardW+l.Gap)
		y := gridTop + float32(row)*(cardH+l.Gap)
		inner := cardW - 2*l.CardPadding
		titleY := y + l.CardPadding + l.CanvasHeight
		out.Cards[i] = Card{
			Frame:     toWindow(x, y, cardW, cardH),
			Canvas:    toWindow(x+l.CardPadding, y+l.CardPadding, inner, l.CanvasHeight),
			Title:     toWindow(x+l.CardPadding, titleY, inner, l.TitleHeight),
			TitleText: toWindow(x+l.CardPadding, titleY+l.TitleMargin, inner, l.TitleHeight-l.TitleMargin),
		}
	}
	return out
}

